package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"car-dashboard/models"
	"car-dashboard/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLogger(false) }

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLoadEndToEnd(t *testing.T) {
	srv := serve(t, http.StatusOK,
		`{"data": [{"Km": "120 000 km", "Prix": "85.000 MAD", "Marque": "Dacia"}]}`)

	f := New(srv.URL, 5*time.Second, newTestLogger())
	table, err := f.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Len() != 1 {
		t.Fatalf("row count: got %d, want 1", table.Len())
	}

	row := table.Rows[0]
	if got := row.Cell("Km"); got.Kind != models.KindInt || got.Int != 120000 {
		t.Errorf("Km: got %v, want 120000", got)
	}
	if got := row.Cell("Prix"); got.Kind != models.KindInt || got.Int != 85000 {
		t.Errorf("Prix: got %v, want 85000", got)
	}
	if got := row.Cell("Marque").Text(); got != "Dacia" {
		t.Errorf("Marque: got %q, want Dacia", got)
	}
}

func TestLoadEmptyList(t *testing.T) {
	srv := serve(t, http.StatusOK, `[]`)

	f := New(srv.URL, 5*time.Second, newTestLogger())
	table, err := f.Load(context.Background())
	if err != nil {
		t.Fatalf("empty payload must not be an error, got %v", err)
	}
	if !table.Empty() {
		t.Errorf("expected an empty table, got %d rows", table.Len())
	}
}

func TestLoadScalarPayload(t *testing.T) {
	srv := serve(t, http.StatusOK, `"unexpected-scalar"`)

	f := New(srv.URL, 5*time.Second, newTestLogger())
	table, err := f.Load(context.Background())

	var pe *models.ProcessingError
	if !errors.As(err, &pe) {
		t.Fatalf("got %v, want *models.ProcessingError", err)
	}
	if !table.Empty() {
		t.Errorf("table should be empty on error")
	}
}

func TestLoadHTTPFailure(t *testing.T) {
	srv := serve(t, http.StatusInternalServerError, `boom`)

	f := New(srv.URL, 5*time.Second, newTestLogger())
	table, err := f.Load(context.Background())

	var fe *models.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("got %v, want *models.FetchError", err)
	}
	if !table.Empty() {
		t.Errorf("table should be empty on error")
	}
}

func TestLoadTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	f := New(srv.URL, 30*time.Millisecond, newTestLogger())
	table, err := f.Load(context.Background())

	var fe *models.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("timeout must classify as *models.FetchError, got %v", err)
	}
	if !table.Empty() {
		t.Errorf("table should be empty on timeout")
	}
}

func TestLoadConnectionRefused(t *testing.T) {
	srv := serve(t, http.StatusOK, `[]`)
	url := srv.URL
	srv.Close()

	f := New(url, time.Second, newTestLogger())
	_, err := f.Load(context.Background())

	var fe *models.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("connection error must classify as *models.FetchError, got %v", err)
	}
}
