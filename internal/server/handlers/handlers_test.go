package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mbodji/autodiag/internal/domain/models"
	"github.com/mbodji/autodiag/internal/server/handlers"
	"github.com/mbodji/autodiag/internal/server/router"
	"github.com/mbodji/autodiag/internal/service/reporting"
)

type memRepo struct {
	entries []models.MileageEntry
	events  []models.MaintenanceEvent
	saved   []models.MaintenanceSummary
}

func (m *memRepo) InsertMileageEntry(_ context.Context, e models.MileageEntry) error {
	m.entries = append(m.entries, e)
	return nil
}

func (m *memRepo) ListMileageEntries(_ context.Context, vehicleID string) ([]models.MileageEntry, error) {
	var out []models.MileageEntry
	for _, e := range m.entries {
		if e.VehicleID == vehicleID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memRepo) InsertMaintenanceEvent(_ context.Context, e models.MaintenanceEvent) error {
	m.events = append(m.events, e)
	return nil
}

func (m *memRepo) ListMaintenanceEvents(_ context.Context, vehicleID string) ([]models.MaintenanceEvent, error) {
	var out []models.MaintenanceEvent
	for _, e := range m.events {
		if e.VehicleID == vehicleID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memRepo) SaveSummary(_ context.Context, s models.MaintenanceSummary) error {
	m.saved = append(m.saved, s)
	return nil
}

func newTestRouter(repo *memRepo) http.Handler {
	reportingSvc := reporting.NewService(repo, nil, 0, nil)
	diag := handlers.NewDiagnosticsHandler(nil)
	vehicle := handlers.NewVehicleHandler(repo, reportingSvc, nil)
	return router.New(diag, vehicle, nil)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestClassifyCharging(t *testing.T) {
	h := newTestRouter(&memRepo{})
	fullLoad := map[string]bool{"headlights": true, "blower": true, "rear_defrost": true}

	tests := []struct {
		name    string
		voltage any
		load    map[string]bool
		want    string
	}{
		{"high boundary", 14.8, fullLoad, "HIGH"},
		{"ok boundary", 13.2, fullLoad, "OK"},
		{"just below ok", 13.1999, fullLoad, "LOW"},
		{"just below high", 14.7999, fullLoad, "OK"},
		{"string voltage parses", "14.2", fullLoad, "OK"},
		{"garbage voltage", "twelve", fullLoad, "UNKNOWN"},
		{"missing voltage", nil, fullLoad, "UNKNOWN"},
		{"partial load", 14.2, map[string]bool{"headlights": true, "blower": true}, "UNKNOWN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := map[string]any{"load": tt.load}
			if tt.voltage != nil {
				payload["voltage"] = tt.voltage
			}
			rec := doJSON(t, h, http.MethodPost, "/api/diagnostics/charging", payload)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}

			var resp struct {
				System string `json:"system"`
				Status string `json:"status"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.System != "charging" {
				t.Errorf("system = %q, want charging", resp.System)
			}
			if resp.Status != tt.want {
				t.Errorf("status = %q, want %q", resp.Status, tt.want)
			}
		})
	}
}

func TestClassifyCharging_MalformedJSON(t *testing.T) {
	h := newTestRouter(&memRepo{})
	req := httptest.NewRequest(http.MethodPost, "/api/diagnostics/charging", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestException(t *testing.T) {
	h := newTestRouter(&memRepo{})

	rec := doJSON(t, h, http.MethodGet, "/api/diagnostics/exception?strength=strong", nil)
	var ex models.Exception
	if err := json.Unmarshal(rec.Body.Bytes(), &ex); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !ex.Eligible {
		t.Error("strong should be eligible")
	}
	if len(ex.AllowedDependents) != 1 || ex.AllowedDependents[0] != "battery" {
		t.Errorf("allowed dependents = %v, want [battery]", ex.AllowedDependents)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/diagnostics/exception?strength=weak", nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &ex); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if ex.Eligible || len(ex.AllowedDependents) != 0 {
		t.Errorf("weak should be ineligible with no dependents, got %+v", ex)
	}
}

func TestMileageRoundTrip(t *testing.T) {
	repo := &memRepo{}
	h := newTestRouter(repo)

	rec := doJSON(t, h, http.MethodPost, "/api/vehicles/veh-1/mileage", map[string]any{
		"date":    time.Now().Format(time.RFC3339),
		"mileage": 41000,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if len(repo.entries) != 1 || repo.entries[0].VehicleID != "veh-1" {
		t.Fatalf("stored entries = %+v", repo.entries)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/vehicles/veh-1/mileage", nil)
	var entries []models.MileageEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(entries) != 1 || entries[0].Mileage != 41000 {
		t.Errorf("listed entries = %+v", entries)
	}

	// Missing mileage is a client error, not a sentinel case.
	rec = doJSON(t, h, http.MethodPost, "/api/vehicles/veh-1/mileage", map[string]any{
		"date": time.Now().Format(time.RFC3339),
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSummaryEndpoint(t *testing.T) {
	now := time.Now()
	repo := &memRepo{
		entries: []models.MileageEntry{
			{VehicleID: "veh-1", Date: now.AddDate(0, 0, -14), Mileage: 40000},
			{VehicleID: "veh-1", Date: now, Mileage: 41400},
		},
		events: []models.MaintenanceEvent{
			{VehicleID: "veh-1", Date: now.AddDate(0, 0, -30), Type: models.MaintenanceOilChange, Mileage: 38400},
		},
	}
	h := newTestRouter(repo)

	rec := doJSON(t, h, http.MethodGet, "/api/vehicles/veh-1/summary", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var summary models.MaintenanceSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if summary.WeeklyAverage != 700 {
		t.Errorf("weekly average = %v, want 700", summary.WeeklyAverage)
	}
	if summary.MilesRemaining == nil || *summary.MilesRemaining != 2000 {
		t.Errorf("miles remaining = %v, want 2000", summary.MilesRemaining)
	}

	// Unknown vehicle degrades to sentinels, not an error.
	rec = doJSON(t, h, http.MethodGet, "/api/vehicles/ghost/summary", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if summary.MilesRemaining != nil || summary.MilesRemText != "Unknown" {
		t.Errorf("ghost vehicle summary = %+v, want Unknown sentinels", summary)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/vehicles/veh-1/summary?interval=bogus", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for bad interval", rec.Code)
	}
}
