package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/napleton/fueltrakr/internal/core/domain"
)

func TestEntriesCreate_FillsDefaultsAndGeoPoint(t *testing.T) {
	var gotPath string
	var gotDoc map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotDoc); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		if r.URL.Query().Get("refresh") != "wait_for" {
			t.Errorf("expected refresh=wait_for, got %q", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"result":"created"}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{Node: server.URL, IndexPrefix: "test"}, fastRetry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lat, lon := 41.8781, -87.6298
	rec, err := client.Entries().Create(context.Background(), domain.EntryRecord{
		UserID:         "u1",
		StockNumber:    "STK1",
		Gallons:        12.5,
		PricePerGallon: 3.40,
		TotalAmount:    42.50,
		Odometer:       45000,
		FuelType:       "regular",
		Latitude:       &lat,
		Longitude:      &lon,
		Timestamp:      time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.ID == "" {
		t.Error("expected generated id")
	}
	if rec.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
	if gotPath != "/test_fuel_entries/_doc/"+rec.ID {
		t.Errorf("unexpected path %s", gotPath)
	}

	geo, ok := gotDoc["geo_location"].(map[string]any)
	if !ok {
		t.Fatalf("expected geo_location in document, got %v", gotDoc)
	}
	if geo["lat"] != lat || geo["lon"] != lon {
		t.Errorf("unexpected geo_location %v", geo)
	}
}

func TestEntriesByUser_ParsesHits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/test_fuel_entries/_search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		term := body["query"].(map[string]any)["term"].(map[string]any)
		if term["user_id"] != "u1" {
			t.Errorf("expected user_id term, got %v", term)
		}

		_, _ = w.Write([]byte(`{
			"hits": {
				"total": {"value": 2},
				"hits": [
					{"_id": "e1", "_source": {"id": "e1", "user_id": "u1", "gallons": 12.5}},
					{"_id": "e2", "_source": {"id": "e2", "user_id": "u1", "gallons": 8.2}}
				]
			}
		}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{Node: server.URL, IndexPrefix: "test"}, fastRetry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := client.Entries().ByUser(context.Background(), "u1", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != "e1" || entries[0].Gallons != 12.5 {
		t.Errorf("unexpected first entry %+v", entries[0])
	}
}

func TestUsersByEmail_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hits": {"total": {"value": 0}, "hits": []}}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{Node: server.URL, IndexPrefix: "test"}, fastRetry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = client.Users().ByEmail(context.Background(), "ghost@napleton.com")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetDoc_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"found":false}`, http.StatusNotFound)
	}))
	defer server.Close()

	client, err := NewClient(Config{Node: server.URL, IndexPrefix: "test"}, fastRetry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out domain.UserRecord
	err = client.GetDoc(context.Background(), "test_users", "missing", &out)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
