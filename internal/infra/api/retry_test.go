package api

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultShouldRetry(t *testing.T) {
	tests := []struct {
		err    error
		expect bool
	}{
		{&TransportError{Op: "GET /x", Err: errors.New("connection refused")}, true},
		{&TransportError{Op: "GET /x", Err: errors.New("dial tcp: i/o timeout")}, true},
		{errors.New("Network request failed"), true},
		{errors.New("Failed to fetch"), true},
		{&StatusError{Code: 503, Body: "network unreachable upstream"}, true},
		{&StatusError{Code: 400, Body: "bad request"}, false},
		{&StatusError{Code: 500, Body: "internal server error"}, false},
		{errors.New("parse response: unexpected end of JSON input"), false},
		{nil, false},
	}

	for _, tt := range tests {
		if got := DefaultShouldRetry(tt.err); got != tt.expect {
			t.Errorf("DefaultShouldRetry(%v) = %v, want %v", tt.err, got, tt.expect)
		}
	}
}

func TestBackoff(t *testing.T) {
	base := 1 * time.Second
	max := 30 * time.Second

	tests := []struct {
		attempt int
		expect  time.Duration
	}{
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second}, // capped
		{10, 30 * time.Second},
	}

	for _, tt := range tests {
		if got := Backoff(tt.attempt, base, max); got != tt.expect {
			t.Errorf("Backoff(%d) = %v, want %v", tt.attempt, got, tt.expect)
		}
	}
}

func TestBackoffNeverExceedsMax(t *testing.T) {
	base := 250 * time.Millisecond
	max := 5 * time.Second

	for k := 1; k <= 64; k++ {
		if got := Backoff(k, base, max); got > max {
			t.Fatalf("Backoff(%d) = %v exceeds max %v", k, got, max)
		}
	}
}
