package web

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jpperkins30-ai/real-estate-platform-sub010/internal/config"
	"github.com/jpperkins30-ai/real-estate-platform-sub010/internal/store"
)

func newTestServer() *Server {
	ms := store.NewMemoryStore()

	md := "state-md"
	ms.AddContainer(store.GeoContainer{ID: "state-md", Name: "Maryland", Kind: store.KindState})
	ms.AddContainer(store.GeoContainer{ID: "county-stm", ParentID: &md, Name: "St. Mary's", Kind: store.KindCounty})
	ms.AddContainer(store.GeoContainer{ID: "county-cal", ParentID: &md, Name: "Calvert", Kind: store.KindCounty})
	ms.AddContainer(store.GeoContainer{ID: "state-tx", Name: "Texas", Kind: store.KindState})

	ms.AddProperty(store.Property{
		ID:          "prop-1",
		ParentID:    "county-stm",
		Name:        "46230 Lexwood Dr",
		Status:      store.StatusActive,
		Price:       285000,
		Location:    store.Location{Street: "46230 Lexwood Dr", City: "Lexington Park", ZipCode: "20653"},
		Owner:       store.Owner{Name: "Harold Brooks"},
		Identifiers: store.Identifiers{ParcelID: "08-123456", TaxAccountNumber: "081234560000"},
		UpdatedAt:   time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	ms.AddProperty(store.Property{
		ID:        "prop-2",
		ParentID:  "county-cal",
		Name:      "210 Solomons Island Rd",
		Status:    store.StatusPending,
		Price:     412500,
		UpdatedAt: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
	})

	cfg := &config.Config{}
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(cfg, ms, logger)
}

func get(t *testing.T, srv *Server, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	var body map[string]interface{}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			// Some endpoints return arrays; callers decode those themselves.
			return rec, nil
		}
	}
	return rec, body
}

func TestSearchEndpoint(t *testing.T) {
	srv := newTestServer()

	rec, body := get(t, srv, "/api/properties/search?parcelId=08-123456")
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	if body["searchMethod"] != "direct" {
		t.Errorf("got searchMethod %v, want direct", body["searchMethod"])
	}
	props := body["properties"].([]interface{})
	if len(props) != 1 {
		t.Fatalf("got %d properties, want 1", len(props))
	}
}

func TestSearchEndpointFuzzy(t *testing.T) {
	srv := newTestServer()

	// Formatting variant of the stored parcel ID resolves through the
	// similarity fallback.
	rec, body := get(t, srv, "/api/properties/search?parcelId=08123456")
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	if body["searchMethod"] != "fuzzy" {
		t.Errorf("got searchMethod %v, want fuzzy", body["searchMethod"])
	}
}

func TestSearchEndpointBadParams(t *testing.T) {
	srv := newTestServer()

	for _, path := range []string{
		"/api/properties/search?minValue=abc",
		"/api/properties/search?minBedrooms=two",
		"/api/properties/search?threshold=1.5",
	} {
		rec, _ := get(t, srv, path)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: got status %d, want 400", path, rec.Code)
		}
	}
}

func TestSearchEndpointScoped(t *testing.T) {
	srv := newTestServer()

	rec, body := get(t, srv, "/api/properties/search?stateId=state-md")
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	if total := body["total"].(float64); total != 2 {
		t.Errorf("got total %v, want 2", total)
	}

	// State with no counties matches nothing.
	_, body = get(t, srv, "/api/properties/search?stateId=state-tx")
	if total := body["total"].(float64); total != 0 {
		t.Errorf("got total %v, want 0", total)
	}
}

func TestGetProperty(t *testing.T) {
	srv := newTestServer()

	rec, body := get(t, srv, "/api/properties/prop-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	if body["id"] != "prop-1" {
		t.Errorf("got id %v, want prop-1", body["id"])
	}

	rec, _ = get(t, srv, "/api/properties/no-such")
	if rec.Code != http.StatusNotFound {
		t.Errorf("got status %d, want 404", rec.Code)
	}
}

func TestGetScopedProperty(t *testing.T) {
	srv := newTestServer()

	tests := []struct {
		name string
		path string
		want int
	}{
		{"valid path", "/api/states/state-md/counties/county-stm/properties/prop-1", http.StatusOK},
		{"wrong county", "/api/states/state-md/counties/county-cal/properties/prop-1", http.StatusBadRequest},
		{"wrong state", "/api/states/state-tx/counties/county-stm/properties/prop-1", http.StatusBadRequest},
		{"missing property", "/api/states/state-md/counties/county-stm/properties/ghost", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := get(t, srv, tt.path)
			if rec.Code != tt.want {
				t.Errorf("got status %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestListContainers(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/states", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	var states []store.GeoContainer
	if err := json.Unmarshal(rec.Body.Bytes(), &states); err != nil {
		t.Fatalf("failed to decode states: %v", err)
	}
	if len(states) != 2 {
		t.Errorf("got %d states, want 2", len(states))
	}

	req = httptest.NewRequest(http.MethodGet, "/api/states/state-md/counties", nil)
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	var counties []store.GeoContainer
	if err := json.Unmarshal(rec.Body.Bytes(), &counties); err != nil {
		t.Fatalf("failed to decode counties: %v", err)
	}
	if len(counties) != 2 {
		t.Errorf("got %d counties, want 2", len(counties))
	}

	rec, _ = get(t, srv, "/api/states/no-such/counties")
	if rec.Code != http.StatusNotFound {
		t.Errorf("got status %d, want 404", rec.Code)
	}
}

func TestGetStats(t *testing.T) {
	srv := newTestServer()

	rec, body := get(t, srv, "/api/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	if total := body["total_properties"].(float64); total != 2 {
		t.Errorf("got total_properties %v, want 2", total)
	}
	byStatus := body["by_status"].(map[string]interface{})
	if byStatus["active"].(float64) != 1 {
		t.Errorf("got active %v, want 1", byStatus["active"])
	}
}
