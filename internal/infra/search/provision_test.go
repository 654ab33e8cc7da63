package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/napleton/fueltrakr/internal/infra/api"
)

func fastRetry() api.RetryConfig {
	return api.RetryConfig{
		MaxRetries:  0,
		BaseDelay:   1 * time.Millisecond,
		MaxDelay:    5 * time.Millisecond,
		ShouldRetry: api.DefaultShouldRetry,
	}
}

// fakeES tracks index existence and counts create calls.
type fakeES struct {
	mu      sync.Mutex
	indices map[string]bool
	creates int
}

func (f *fakeES) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		index := strings.TrimPrefix(r.URL.Path, "/")
		switch r.Method {
		case http.MethodHead:
			if f.indices[index] {
				w.WriteHeader(http.StatusOK)
			} else {
				w.WriteHeader(http.StatusNotFound)
			}
		case http.MethodPut:
			f.creates++
			f.indices[index] = true
			_, _ = w.Write([]byte(`{"acknowledged":true}`))
		default:
			http.Error(w, "unexpected method", http.StatusMethodNotAllowed)
		}
	})
}

func TestEnsureIndices_Idempotent(t *testing.T) {
	fake := &fakeES{indices: map[string]bool{}}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	client, err := NewClient(Config{Node: server.URL, IndexPrefix: "test"}, fastRetry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	if err := client.EnsureIndices(ctx); err != nil {
		t.Fatalf("first provisioning failed: %v", err)
	}
	if fake.creates != 2 {
		t.Fatalf("expected 2 creates on first run, got %d", fake.creates)
	}

	if err := client.EnsureIndices(ctx); err != nil {
		t.Fatalf("second provisioning failed: %v", err)
	}
	if fake.creates != 2 {
		t.Errorf("expected no additional creates on second run, got %d total", fake.creates)
	}

	for _, index := range []string{"test_users", "test_fuel_entries"} {
		if !fake.indices[index] {
			t.Errorf("expected index %s to exist", index)
		}
	}
}

func TestResolveBaseURL(t *testing.T) {
	// "deployment:" + base64("example.com$abc123")
	cloudID := "deployment:ZXhhbXBsZS5jb20kYWJjMTIz"

	tests := []struct {
		name   string
		cfg    Config
		expect string
		hasErr bool
	}{
		{"node", Config{Node: "http://localhost:9200"}, "http://localhost:9200", false},
		{"default", Config{}, "http://localhost:9200", false},
		{"cloud id", Config{CloudID: cloudID}, "https://abc123.example.com", false},
		{"cloud id wins", Config{CloudID: cloudID, Node: "http://ignored:9200"}, "https://abc123.example.com", false},
		{"malformed cloud id", Config{CloudID: "nocolon"}, "", true},
	}

	for _, tt := range tests {
		got, err := resolveBaseURL(tt.cfg)
		if tt.hasErr {
			if err == nil {
				t.Errorf("%s: expected error", tt.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
			continue
		}
		if got != tt.expect {
			t.Errorf("%s: got %s, want %s", tt.name, got, tt.expect)
		}
	}
}

func TestAuthHeader(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		expect string
	}{
		{"api key", Config{APIKey: "secret"}, "ApiKey secret"},
		{"api key wins", Config{APIKey: "secret", Username: "elastic", Password: "pw"}, "ApiKey secret"},
		{"basic", Config{Username: "elastic", Password: "pw"}, "Basic ZWxhc3RpYzpwdw=="},
		{"none", Config{}, ""},
	}

	for _, tt := range tests {
		if got := authHeader(tt.cfg); got != tt.expect {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.expect)
		}
	}
}
