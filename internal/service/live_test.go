package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/napleton/fueltrakr/internal/core/config"
	"github.com/napleton/fueltrakr/internal/core/domain"
)

// fakeBackend stands in for both the GoTrue auth API and the edge-function
// backend, which share one origin in tests.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("grant_type") != "password" {
			http.Error(w, `{"error":"unsupported grant"}`, http.StatusBadRequest)
			return
		}
		var creds map[string]string
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds["email"] != "admin@napleton.com" || creds["password"] != "admin123" {
			http.Error(w, `{"error":"invalid login credentials"}`, http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "live-token",
			"refresh_token": "live-refresh",
			"token_type":    "bearer",
			"expires_in":    3600,
			"user":          map[string]string{"id": "u1", "email": "admin@napleton.com"},
		})
	})

	requireBearer := func(w http.ResponseWriter, r *http.Request) bool {
		if r.Header.Get("Authorization") != "Bearer live-token" {
			http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
			return false
		}
		return true
	}

	mux.HandleFunc("/profile", func(w http.ResponseWriter, r *http.Request) {
		if !requireBearer(w, r) {
			return
		}
		_ = json.NewEncoder(w).Encode(domain.User{
			ID: "u1", Email: "admin@napleton.com", Name: "Admin User", Role: domain.RoleAdmin,
		})
	})

	mux.HandleFunc("/fuel-entries", func(w http.ResponseWriter, r *http.Request) {
		if !requireBearer(w, r) {
			return
		}
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode([]domain.FuelEntry{
				{ID: "e1", UserID: "u1", StockNumber: "STK9", FuelAmount: 10, FuelCost: 35},
			})
		case http.MethodPost:
			var input domain.CreateFuelEntry
			_ = json.NewDecoder(r.Body).Decode(&input)
			_ = json.NewEncoder(w).Encode(domain.FuelEntry{
				ID:          "e-new",
				UserID:      "u1",
				UserName:    "Admin User",
				StockNumber: input.StockNumber,
				Mileage:     input.Mileage,
				FuelAmount:  input.FuelAmount,
				FuelCost:    input.FuelCost,
				SubmittedAt: time.Now().UTC(),
			})
		}
	})

	mux.HandleFunc("/admin/users", func(w http.ResponseWriter, r *http.Request) {
		if !requireBearer(w, r) {
			return
		}
		_ = json.NewEncoder(w).Encode([]domain.User{
			{ID: "u1", Email: "admin@napleton.com", Name: "Admin User", Role: domain.RoleAdmin},
			{ID: "u2", Email: "porter@napleton.com", Name: "John Porter", Role: domain.RolePorter},
		})
	})

	mux.HandleFunc("/admin/export", func(w http.ResponseWriter, r *http.Request) {
		if !requireBearer(w, r) {
			return
		}
		_, _ = w.Write([]byte("id,user\ne1,Admin User\n"))
	})

	return httptest.NewServer(mux)
}

func liveServices(serverURL string) *Services {
	cfg := config.AppConfig{}
	cfg.Supabase.FunctionsURL = serverURL
	cfg.Supabase.AuthURL = serverURL
	cfg.Supabase.Timeout = 2 * time.Second
	cfg.Retry = config.RetrySettings{MaxRetries: 0, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}
	return New(cfg, nil)
}

func TestLiveSignInAndProfile(t *testing.T) {
	server := fakeBackend(t)
	defer server.Close()
	svc := liveServices(server.URL)
	ctx := context.Background()

	sess, err := svc.Auth.SignIn(ctx, "admin@napleton.com", "admin123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.AccessToken != "live-token" {
		t.Errorf("unexpected token %s", sess.AccessToken)
	}
	if sess.User.Role != domain.RoleAdmin {
		t.Errorf("expected admin role, got %s", sess.User.Role)
	}

	// The session store should now restore this session.
	restored := svc.Auth.Session(ctx)
	if restored == nil {
		t.Fatal("expected restored session")
	}
	if restored.User.Email != "admin@napleton.com" {
		t.Errorf("unexpected restored user %s", restored.User.Email)
	}
}

func TestLiveSignIn_BadCredentials(t *testing.T) {
	server := fakeBackend(t)
	defer server.Close()
	svc := liveServices(server.URL)

	sess, err := svc.Auth.SignIn(context.Background(), "admin@napleton.com", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	if sess != nil {
		t.Error("expected no session")
	}
	if !strings.Contains(err.Error(), "credentials") {
		t.Errorf("expected credentials message, got %q", err)
	}
}

func TestLiveFuelEntries(t *testing.T) {
	server := fakeBackend(t)
	defer server.Close()
	svc := liveServices(server.URL)
	ctx := context.Background()

	sess, err := svc.Auth.SignIn(ctx, "admin@napleton.com", "admin123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := svc.Fuel.UserEntries(ctx, *sess)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "e1" {
		t.Errorf("unexpected entries %+v", entries)
	}

	entry, err := svc.Fuel.SubmitEntry(ctx, *sess, domain.CreateFuelEntry{
		StockNumber: "STK77", Mileage: 1000, FuelAmount: 5, FuelCost: 20,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.ID != "e-new" || entry.StockNumber != "STK77" {
		t.Errorf("unexpected entry %+v", entry)
	}
}

func TestLiveFetchFailureSurfacesError(t *testing.T) {
	server := fakeBackend(t)
	svc := liveServices(server.URL)
	ctx := context.Background()

	sess, err := svc.Auth.SignIn(ctx, "admin@napleton.com", "admin123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Backend gone: the fetch must fail loudly, not degrade to empty.
	server.Close()
	entries, err := svc.Fuel.UserEntries(ctx, *sess)
	if err == nil {
		t.Fatal("expected error after backend shutdown")
	}
	if entries != nil {
		t.Errorf("expected nil entries on failure, got %v", entries)
	}

	if _, err := svc.Admin.Users(ctx, *sess); err == nil {
		t.Fatal("expected admin users fetch to fail")
	} else if !strings.Contains(err.Error(), "network error while fetching users") {
		t.Errorf("expected actionable message, got %q", err)
	}
}

func TestLiveAdminExport(t *testing.T) {
	server := fakeBackend(t)
	defer server.Close()
	svc := liveServices(server.URL)
	ctx := context.Background()

	sess, err := svc.Auth.SignIn(ctx, "admin@napleton.com", "admin123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := svc.Admin.ExportCSV(ctx, *sess)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(string(data), "id,user") {
		t.Errorf("unexpected export payload %q", data)
	}
}
