package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dukerupert/calboard/internal/calendar"
	"github.com/dukerupert/calboard/internal/config"
	"github.com/dukerupert/calboard/internal/database"
	"github.com/dukerupert/calboard/internal/model"
	"github.com/dukerupert/calboard/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func listEvents(t *testing.T, h http.Handler) []model.Event {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/events", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var events []model.Event
	if err := json.Unmarshal(rec.Body.Bytes(), &events); err != nil {
		t.Fatalf("decode events: %v", err)
	}
	return events
}

func TestRoutes(t *testing.T) {
	cfg := config.Default()
	srv := New(cfg, nil, testLogger())
	router := srv.Router()

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{"GET", "/", http.StatusOK},
		{"GET", "/health", http.StatusOK},
		{"GET", "/api/events", http.StatusOK},
		{"GET", "/api/form", http.StatusOK},
		{"GET", "/static/calendar.js", http.StatusOK},
		{"GET", "/missing", http.StatusNotFound},
		{"DELETE", "/api/events", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		if rec.Code != tt.want {
			t.Errorf("%s %s = %d, want %d", tt.method, tt.path, rec.Code, tt.want)
		}
	}
}

func TestPersistAcrossRestart(t *testing.T) {
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := config.Default()
	first := New(cfg, db, testLogger()).Router()

	for _, body := range []string{
		`{"start":"2024-01-02T09:00:00Z","end":"2024-01-02T09:15:00Z","title":"Standup"}`,
		`{"start":"2024-01-02T12:00:00Z","end":"2024-01-02T13:00:00Z","title":"Lunch"}`,
	} {
		if rec := post(t, first, "/api/selection", body); rec.Code != http.StatusOK {
			t.Fatalf("select status = %d, body %s", rec.Code, rec.Body.String())
		}
	}
	before := listEvents(t, first)

	// A fresh server over the same database restores the list in order.
	second := New(cfg, db, testLogger()).Router()
	after := listEvents(t, second)

	if len(after) != 2 {
		t.Fatalf("restored %d events, want 2", len(after))
	}
	for i := range before {
		if after[i].ID != before[i].ID || after[i].Title != before[i].Title || !after[i].Start.Equal(before[i].Start) {
			t.Errorf("event %d = %+v, want %+v", i, after[i], before[i])
		}
	}

	raw, found, err := store.NewKVStore(db).Get(calendar.StorageKey)
	if err != nil || !found {
		t.Fatalf("stored key missing: found %v err %v", found, err)
	}
	if !strings.HasPrefix(raw, `[{"id":`) {
		t.Errorf("stored value = %s", raw)
	}
}

func TestPersistDisabled(t *testing.T) {
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := config.Default()
	cfg.Persist = false
	router := New(cfg, db, testLogger()).Router()

	post(t, router, "/api/selection", `{"start":"2024-01-02T09:00:00Z","end":"2024-01-02T09:15:00Z","title":"Standup"}`)
	if n := len(listEvents(t, router)); n != 1 {
		t.Fatalf("events = %d, want 1", n)
	}

	if _, found, _ := store.NewKVStore(db).Get(calendar.StorageKey); found {
		t.Error("events written to storage with persistence disabled")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if body["persist"] != false {
		t.Errorf("persist = %v, want false", body["persist"])
	}
	if _, ok := body["saved_at"]; ok {
		t.Errorf("saved_at reported without persistence: %v", body)
	}

	restarted := New(cfg, db, testLogger()).Router()
	if n := len(listEvents(t, restarted)); n != 0 {
		t.Errorf("events after restart = %d, want 0", n)
	}
}

func TestDeleteOnlyEvent(t *testing.T) {
	srv := New(config.Default(), nil, testLogger())
	router := srv.Router()

	rec := post(t, router, "/api/selection", `{"start":"2024-01-02T09:00:00Z","end":"2024-01-02T09:15:00Z","title":"Standup"}`)
	var created struct {
		Event model.Event `json:"event"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = post(t, router, "/api/events/"+created.Event.ID+"/click", `{"confirmed":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("click status = %d", rec.Code)
	}
	if n := len(listEvents(t, router)); n != 0 {
		t.Errorf("events = %d, want 0", n)
	}
}

func TestHealth(t *testing.T) {
	srv := New(config.Default(), nil, testLogger())

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" || body["mode"] != "prompt" {
		t.Errorf("body = %v", body)
	}
}

func TestHealthReportsLastSave(t *testing.T) {
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	router := New(config.Default(), db, testLogger()).Router()
	post(t, router, "/api/selection", `{"start":"2024-01-02T09:00:00Z","end":"2024-01-02T09:15:00Z","title":"Standup"}`)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["persist"] != true {
		t.Errorf("persist = %v, want true", body["persist"])
	}
	if _, ok := body["saved_at"]; !ok {
		t.Errorf("saved_at missing: %v", body)
	}
}
