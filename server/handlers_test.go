package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"car-dashboard/cache"
	"car-dashboard/config"
	"car-dashboard/models"
	"car-dashboard/services"
	"car-dashboard/utils"
)

func testTable() models.Table {
	return models.Table{
		Columns: []string{"Marque", "Prix", "Source"},
		Rows: []models.Row{
			{"Marque": models.String("Dacia"), "Prix": models.Int(85000), "Source": models.String("avito")},
			{"Marque": models.String("Renault"), "Prix": models.Int(60000), "Source": models.String("moteur")},
		},
	}
}

func newTestServer(load cache.LoadFunc) *Server {
	gin.SetMode(gin.TestMode)
	logger := utils.NewLogger(false)
	cfg := &config.Config{
		CacheTTL:     5 * time.Minute,
		TopBrands:    10,
		ExportPrefix: "voitures_filtered",
		Debug:        true,
	}
	return New(cfg, cache.New(cfg.CacheTTL, load, logger), services.NewInsightService(logger), logger)
}

func doRequest(s *Server, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	s.Handler().ServeHTTP(w, req)
	return w
}

func staticLoad(ctx context.Context) (models.Table, error) {
	return testTable(), nil
}

func TestHandleListings(t *testing.T) {
	s := newTestServer(staticLoad)

	w := doRequest(s, http.MethodGet, "/api/listings?Source=avito")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}

	var resp struct {
		Total    int `json:"total"`
		Filtered int `json:"filtered"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if resp.Total != 2 || resp.Filtered != 1 {
		t.Errorf("total/filtered: got %d/%d, want 2/1", resp.Total, resp.Filtered)
	}
}

func TestHandleKPIs(t *testing.T) {
	s := newTestServer(staticLoad)

	w := doRequest(s, http.MethodGet, "/api/kpis")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}

	var r models.KPIReport
	if err := json.Unmarshal(w.Body.Bytes(), &r); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if r.TotalListings != 2 {
		t.Errorf("TotalListings: got %d, want 2", r.TotalListings)
	}
	if r.AveragePrice == nil || *r.AveragePrice != 72500 {
		t.Errorf("AveragePrice: got %v, want 72500", r.AveragePrice)
	}
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"fetch", &models.FetchError{Err: errors.New("timeout")}, http.StatusBadGateway},
		{"processing", &models.ProcessingError{Err: errors.New("scalar payload")}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		s := newTestServer(func(ctx context.Context) (models.Table, error) {
			return models.Table{}, tt.err
		})

		w := doRequest(s, http.MethodGet, "/api/listings")
		if w.Code != tt.want {
			t.Errorf("%s: status got %d, want %d", tt.name, w.Code, tt.want)
		}
		if !strings.Contains(w.Body.String(), "Error") {
			t.Errorf("%s: body should carry the error kind, got %s", tt.name, w.Body.String())
		}
	}
}

func TestHandleCountsRejectsUnknownColumn(t *testing.T) {
	s := newTestServer(staticLoad)

	w := doRequest(s, http.MethodGet, "/api/counts?column=Nope")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", w.Code)
	}
}

func TestHandleExport(t *testing.T) {
	s := newTestServer(staticLoad)

	w := doRequest(s, http.MethodGet, "/api/export?Marque=Dacia")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}

	cd := w.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "voitures_filtered_") || !strings.Contains(cd, ".csv") {
		t.Errorf("Content-Disposition: got %q", cd)
	}

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("csv line count: got %d, want 2", len(lines))
	}
	if lines[0] != "Marque,Prix,Source" {
		t.Errorf("csv header: got %q", lines[0])
	}
}

func TestHandleRefreshClearsCache(t *testing.T) {
	calls := 0
	s := newTestServer(func(ctx context.Context) (models.Table, error) {
		calls++
		return testTable(), nil
	})

	doRequest(s, http.MethodGet, "/api/listings")
	doRequest(s, http.MethodGet, "/api/stats")
	if calls != 1 {
		t.Fatalf("load calls before refresh: got %d, want 1", calls)
	}

	if w := doRequest(s, http.MethodPost, "/api/refresh"); w.Code != http.StatusOK {
		t.Fatalf("refresh status: got %d, want 200", w.Code)
	}

	doRequest(s, http.MethodGet, "/api/listings")
	if calls != 2 {
		t.Errorf("load calls after refresh: got %d, want 2", calls)
	}
}

func TestHandleMeta(t *testing.T) {
	s := newTestServer(staticLoad)

	w := doRequest(s, http.MethodGet, "/api/meta")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}

	var meta struct {
		SnapshotID string `json:"snapshot_id"`
		Rows       int    `json:"rows"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &meta); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if meta.SnapshotID == "" {
		t.Error("snapshot_id should be set")
	}
	if meta.Rows != 2 {
		t.Errorf("rows: got %d, want 2", meta.Rows)
	}
}

func TestHealthz(t *testing.T) {
	s := newTestServer(staticLoad)
	if w := doRequest(s, http.MethodGet, "/healthz"); w.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", w.Code)
	}
}
