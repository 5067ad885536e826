package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ristorante/internal/models"
	"ristorante/pkg/geocoding"

	"github.com/stretchr/testify/assert"
)

func TestBuildApp_HealthAndMenu(t *testing.T) {
	repos, err := buildRepositories("")
	assert.NoError(t, err)
	seedProducts(repos.products, repos.days)

	app := buildApp(repos, nil, geocoding.NewClient(time.Second), "test-secret")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/api/menu/", nil)
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var menu []models.Product
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&menu))
	assert.Len(t, menu, 3)
}

func TestBuildApp_ReportsRequireAuth(t *testing.T) {
	repos, err := buildRepositories("")
	assert.NoError(t, err)

	app := buildApp(repos, nil, geocoding.NewClient(time.Second), "test-secret")

	req := httptest.NewRequest(http.MethodGet, "/api/reportes/ingresos", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
