// Package geocoding resolves Mexican postal codes to city, state and
// neighborhood data, constrained to the restaurant's service area
// (Chilpancingo de los Bravo, Guerrero, codes 39000-39099).
package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrOutsideServiceArea marks a well-formed postal code that home delivery
// does not serve. Callers distinguish it from transient lookup failures.
var ErrOutsideServiceArea = errors.New("postal code outside the Chilpancingo service area (39000-39099)")

const (
	serviceAreaMin = 39000
	serviceAreaMax = 39099

	defaultPrimaryURL  = "https://api.zippopotam.us/mx"
	defaultFallbackURL = "https://api-sepomex.hckdrk.mx/query/info_cp"
)

var postalCodeRe = regexp.MustCompile(`^\d{5}$`)

// Neighborhood is one settlement within a postal code.
type Neighborhood struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
	Zone string `json:"zone"`
}

// PostalCodeInfo is the resolved location data for a postal code.
type PostalCodeInfo struct {
	PostalCode    string         `json:"postal_code"`
	City          string         `json:"city"`
	State         string         `json:"state"`
	Neighborhoods []Neighborhood `json:"neighborhoods"`
}

// Client queries the primary postal-code API and falls back to SEPOMEX when
// the primary yields nothing usable.
type Client struct {
	httpClient  *http.Client
	primaryURL  string
	fallbackURL string
}

// NewClient creates a geocoding client with the given per-request timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		primaryURL:  defaultPrimaryURL,
		fallbackURL: defaultFallbackURL,
	}
}

// NewClientWithURLs creates a client against explicit API endpoints. Tests
// point this at local servers.
func NewClientWithURLs(httpClient *http.Client, primaryURL, fallbackURL string) *Client {
	return &Client{
		httpClient:  httpClient,
		primaryURL:  primaryURL,
		fallbackURL: fallbackURL,
	}
}

// ValidPostalCode reports whether cp is five digits inside the service area.
func ValidPostalCode(cp string) bool {
	cp = strings.TrimSpace(cp)
	if !postalCodeRe.MatchString(cp) {
		return false
	}
	n, _ := strconv.Atoi(cp)
	return n >= serviceAreaMin && n <= serviceAreaMax
}

// Resolve looks up a postal code. It returns ErrOutsideServiceArea (wrapped)
// for codes the delivery service does not cover, and a plain error when both
// APIs fail.
func (c *Client) Resolve(ctx context.Context, postalCode string) (*PostalCodeInfo, error) {
	postalCode = strings.TrimSpace(postalCode)
	if !postalCodeRe.MatchString(postalCode) {
		return nil, fmt.Errorf("postal code must be exactly 5 digits, got %q", postalCode)
	}
	if !ValidPostalCode(postalCode) {
		return nil, fmt.Errorf("postal code %s: %w", postalCode, ErrOutsideServiceArea)
	}

	if info, err := c.resolvePrimary(ctx, postalCode); err == nil && len(info.Neighborhoods) > 0 {
		return info, nil
	}

	info, err := c.resolveFallback(ctx, postalCode)
	if err != nil {
		return nil, fmt.Errorf("could not resolve postal code %s: %w", postalCode, err)
	}
	return info, nil
}

// zippopotam.us response shape.
type zippoResponse struct {
	PlaceName string `json:"place name"`
	State     string `json:"state"`
	Places    []struct {
		PlaceName string `json:"place name"`
		State     string `json:"state"`
	} `json:"places"`
}

func (c *Client) resolvePrimary(ctx context.Context, postalCode string) (*PostalCodeInfo, error) {
	var decoded zippoResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/%s", c.primaryURL, postalCode), &decoded); err != nil {
		return nil, err
	}

	var neighborhoods []Neighborhood
	for i, place := range decoded.Places {
		name := strings.ToLower(place.PlaceName)
		state := strings.ToLower(place.State)
		if !strings.Contains(name, "chilpancingo") && !strings.Contains(state, "guerrero") {
			continue
		}
		neighborhoods = append(neighborhoods, Neighborhood{
			ID:   strconv.Itoa(i + 1),
			Name: place.PlaceName,
			Kind: "Colonia",
			Zone: "Urbana",
		})
	}
	if len(neighborhoods) == 0 {
		return nil, fmt.Errorf("no neighborhoods for %s in primary API", postalCode)
	}

	city := decoded.PlaceName
	if city == "" {
		city = "Chilpancingo de los Bravo"
	}
	state := decoded.State
	if state == "" {
		state = "Guerrero"
	}
	return &PostalCodeInfo{
		PostalCode:    postalCode,
		City:          city,
		State:         state,
		Neighborhoods: UniqueNeighborhoods(neighborhoods),
	}, nil
}

// SEPOMEX response shape.
type sepomexEntry struct {
	Response struct {
		Municipio  string `json:"municipio"`
		Estado     string `json:"estado"`
		Asenta     string `json:"d_asenta"`
		TipoAsenta string `json:"d_tipo_asenta"`
		Zona       string `json:"d_zona"`
	} `json:"response"`
}

func (c *Client) resolveFallback(ctx context.Context, postalCode string) (*PostalCodeInfo, error) {
	var decoded []sepomexEntry
	if err := c.getJSON(ctx, fmt.Sprintf("%s/%s", c.fallbackURL, postalCode), &decoded); err != nil {
		return nil, err
	}

	var neighborhoods []Neighborhood
	var city, state string
	for i, entry := range decoded {
		municipio := strings.ToLower(entry.Response.Municipio)
		estado := strings.ToLower(entry.Response.Estado)
		if !strings.Contains(municipio, "chilpancingo") || !strings.Contains(estado, "guerrero") {
			continue
		}
		if city == "" {
			city = entry.Response.Municipio
			state = entry.Response.Estado
		}
		if strings.TrimSpace(entry.Response.Asenta) == "" {
			continue
		}
		kind := entry.Response.TipoAsenta
		if kind == "" {
			kind = "Colonia"
		}
		zone := entry.Response.Zona
		if zone == "" {
			zone = "Urbana"
		}
		neighborhoods = append(neighborhoods, Neighborhood{
			ID:   strconv.Itoa(i + 1),
			Name: entry.Response.Asenta,
			Kind: kind,
			Zone: zone,
		})
	}
	if len(neighborhoods) == 0 {
		return nil, fmt.Errorf("postal code %s: %w", postalCode, ErrOutsideServiceArea)
	}

	return &PostalCodeInfo{
		PostalCode:    postalCode,
		City:          city,
		State:         state,
		Neighborhoods: UniqueNeighborhoods(neighborhoods),
	}, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", url, err)
	}
	return nil
}

// UniqueNeighborhoods removes case-insensitive duplicates and sorts by name.
func UniqueNeighborhoods(in []Neighborhood) []Neighborhood {
	seen := make(map[string]bool)
	out := make([]Neighborhood, 0, len(in))
	for _, n := range in {
		key := strings.ToLower(strings.TrimSpace(n.Name))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
