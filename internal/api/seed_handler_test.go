package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDatabase(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/seed-database", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Database seeded successfully", body["message"])
	assert.Equal(t, float64(6), body["destinationsCreated"])
	assert.Equal(t, 1, ts.seeder.calls)
}

func TestSeedDatabaseFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.seeder.err = errors.New("duplicate key error collection: travel.destinations")

	w := ts.do(t, http.MethodPost, "/api/seed-database", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to seed database", decodeBody(t, w)["detail"])
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
