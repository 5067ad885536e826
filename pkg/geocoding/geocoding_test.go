package geocoding_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"ristorante/pkg/geocoding"

	"github.com/stretchr/testify/assert"
)

func TestValidPostalCode(t *testing.T) {
	assert.True(t, geocoding.ValidPostalCode("39000"))
	assert.True(t, geocoding.ValidPostalCode("39099"))
	assert.True(t, geocoding.ValidPostalCode(" 39010 "))

	assert.False(t, geocoding.ValidPostalCode("38999"))
	assert.False(t, geocoding.ValidPostalCode("39100"))
	assert.False(t, geocoding.ValidPostalCode("3901"))
	assert.False(t, geocoding.ValidPostalCode("39A10"))
	assert.False(t, geocoding.ValidPostalCode(""))
}

func TestResolve_PrimarySuccess(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/39010", r.URL.Path)
		fmt.Fprint(w, `{
			"place name": "Chilpancingo de los Bravo",
			"state": "Guerrero",
			"places": [
				{"place name": "Centro", "state": "Guerrero"},
				{"place name": "Obrera", "state": "Guerrero"},
				{"place name": "Centro", "state": "Guerrero"}
			]
		}`)
	}))
	defer primary.Close()

	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("fallback must not be called when the primary succeeds")
	}))
	defer fallback.Close()

	client := geocoding.NewClientWithURLs(primary.Client(), primary.URL, fallback.URL)
	info, err := client.Resolve(context.Background(), "39010")
	assert.NoError(t, err)
	assert.Equal(t, "Chilpancingo de los Bravo", info.City)
	assert.Equal(t, "Guerrero", info.State)
	// Duplicates collapse and names come back sorted.
	assert.Len(t, info.Neighborhoods, 2)
	assert.Equal(t, "Centro", info.Neighborhoods[0].Name)
	assert.Equal(t, "Obrera", info.Neighborhoods[1].Name)
}

func TestResolve_FallbackWhenPrimaryFails(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer primary.Close()

	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/39010", r.URL.Path)
		fmt.Fprint(w, `[
			{"response": {"municipio": "Chilpancingo de los Bravo", "estado": "Guerrero", "d_asenta": "San Mateo", "d_tipo_asenta": "Colonia", "d_zona": "Urbana"}},
			{"response": {"municipio": "Acapulco", "estado": "Guerrero", "d_asenta": "Ignorada"}}
		]`)
	}))
	defer fallback.Close()

	client := geocoding.NewClientWithURLs(primary.Client(), primary.URL, fallback.URL)
	info, err := client.Resolve(context.Background(), "39010")
	assert.NoError(t, err)
	assert.Equal(t, "Chilpancingo de los Bravo", info.City)
	// The entry outside the municipality is filtered out.
	assert.Len(t, info.Neighborhoods, 1)
	assert.Equal(t, "San Mateo", info.Neighborhoods[0].Name)
}

func TestResolve_OutsideServiceArea(t *testing.T) {
	client := geocoding.NewClientWithURLs(http.DefaultClient, "http://unused.invalid", "http://unused.invalid")

	_, err := client.Resolve(context.Background(), "40000")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, geocoding.ErrOutsideServiceArea))

	// Malformed codes are a different error, not a service-area refusal.
	_, err = client.Resolve(context.Background(), "123")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, geocoding.ErrOutsideServiceArea))
}

func TestResolve_BothAPIsFailing(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()

	client := geocoding.NewClientWithURLs(broken.Client(), broken.URL, broken.URL)
	_, err := client.Resolve(context.Background(), "39010")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, geocoding.ErrOutsideServiceArea))
}

func TestUniqueNeighborhoods(t *testing.T) {
	out := geocoding.UniqueNeighborhoods([]geocoding.Neighborhood{
		{Name: "Obrera"},
		{Name: "centro"},
		{Name: "Centro"},
		{Name: "  "},
	})
	assert.Len(t, out, 2)
	assert.Equal(t, "Obrera", out[0].Name)
	assert.Equal(t, "centro", out[1].Name)
}
