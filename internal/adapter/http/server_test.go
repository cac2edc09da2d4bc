package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	httpadapter "github.com/couchcryptid/climate-design-engine/internal/adapter/http"
	"github.com/couchcryptid/climate-design-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type mockBundles map[string]domain.Bundle

func (m mockBundles) Get(_ context.Context, key string) (domain.Bundle, bool) {
	b, ok := m[key]
	return b, ok
}

const cachedKey = "SYN001|9f86d081884c7d65"

func newTestServer(readyErr error) *httpadapter.Server {
	bundles := mockBundles{
		cachedKey: {
			SourceKey:    cachedKey,
			Header:       domain.ClimateHeader{Station: "SYN001", City: "Testville", Latitude: 40},
			Statistics:   domain.ClimateStatistics{AnnualAvgDrybulb: 52.3, WSF: 0.51},
			DesignSource: domain.DesignSourceDerived,
		},
	}
	return httpadapter.NewServer(":0", &mockReadiness{err: readyErr}, bundles, slog.Default())
}

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv := newTestServer(fmt.Errorf("not ready yet"))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "not ready yet", body["error"])
}

func TestReadyzChecksEveryDependency(t *testing.T) {
	tests := []struct {
		name       string
		checks     httpadapter.ReadinessChecks
		wantStatus int
		wantErr    string
	}{
		{"all ready", httpadapter.ReadinessChecks{&mockReadiness{}, &mockReadiness{}}, http.StatusOK, ""},
		{"cache down", httpadapter.ReadinessChecks{&mockReadiness{}, &mockReadiness{err: fmt.Errorf("redis cache not ready")}}, http.StatusServiceUnavailable, "redis cache not ready"},
		{"pipeline idle", httpadapter.ReadinessChecks{&mockReadiness{err: fmt.Errorf("no bundles yet")}, &mockReadiness{}}, http.StatusServiceUnavailable, "no bundles yet"},
		{"empty", httpadapter.ReadinessChecks{}, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httpadapter.NewServer(":0", tt.checks, mockBundles{}, slog.Default())
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

			srv.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantErr, body["error"])
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestBundleReturnsCachedBundle(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/bundles/"+url.PathEscape(cachedKey), nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var b domain.Bundle
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	assert.Equal(t, cachedKey, b.SourceKey)
	assert.Equal(t, "SYN001", b.Header.Station)
	assert.InDelta(t, 52.3, b.Statistics.AnnualAvgDrybulb, 1e-9)
	assert.Equal(t, domain.DesignSourceDerived, b.DesignSource)
}

func TestBundleAcceptsEscapedSlashes(t *testing.T) {
	const pathKey = "weather/SYN001.epw"
	srv := httpadapter.NewServer(":0", &mockReadiness{}, mockBundles{pathKey: {SourceKey: pathKey}}, slog.Default())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/bundles/"+url.PathEscape(pathKey), nil)

	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var b domain.Bundle
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	assert.Equal(t, pathKey, b.SourceKey)
}

func TestBundleReturns404OnMiss(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/bundles/UNKNOWN", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "UNKNOWN", body["source_key"])
}

func TestBundleRejectsOtherMethods(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/bundles/"+url.PathEscape(cachedKey), nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
