package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/napleton/fueltrakr/internal/core/domain"
	"github.com/napleton/fueltrakr/internal/infra/memory"
	"github.com/napleton/fueltrakr/internal/infra/supabase"
	"github.com/napleton/fueltrakr/internal/metrics"
)

// Fuel handles fuel-entry submission and retrieval.
type Fuel struct {
	demo     bool
	store    *memory.Store
	backend  *supabase.Client
	validate *validator.Validate
}

// PhotoUpload is the stored location of an uploaded photo.
type PhotoUpload struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

// SubmitEntry validates and records a fill-up. Demo mode prepends to the
// in-memory list; live mode posts to the backend. Either way the returned
// entry is fully populated with a generated id and submission time.
func (f *Fuel) SubmitEntry(ctx context.Context, sess domain.Session, input domain.CreateFuelEntry) (*domain.FuelEntry, error) {
	if err := f.validateEntry(input); err != nil {
		return nil, err
	}

	if f.demo {
		entry := f.store.CreateEntry(sess.User, input)
		metrics.EntriesSubmitted.WithLabelValues("demo").Inc()
		slog.Info("fuel entry recorded", "id", entry.ID, "stock", entry.StockNumber)
		return entry, nil
	}

	var entry domain.FuelEntry
	err := f.backend.Functions.Post(ctx, "/fuel-entries", input, supabase.BearerHeader(sess.AccessToken), &entry)
	if err != nil {
		slog.Error("fuel entry submission failed", "error", err)
		return nil, fmt.Errorf("failed to submit fuel entry: %w", err)
	}

	metrics.EntriesSubmitted.WithLabelValues("live").Inc()
	slog.Info("fuel entry recorded", "id", entry.ID, "stock", entry.StockNumber)
	return &entry, nil
}

// UserEntries returns the caller's entries, newest first. A fetch failure is
// returned as an error, never silently degraded to an empty list.
func (f *Fuel) UserEntries(ctx context.Context, sess domain.Session) ([]domain.FuelEntry, error) {
	if f.demo {
		return f.store.Entries(), nil
	}

	var entries []domain.FuelEntry
	err := f.backend.Functions.Get(ctx, "/fuel-entries", supabase.BearerHeader(sess.AccessToken), &entries)
	if err != nil {
		slog.Error("failed to fetch fuel entries", "error", err)
		return nil, fmt.Errorf("failed to fetch fuel entries: %w", err)
	}
	return entries, nil
}

// UploadPhoto stores a receipt or VIN photo and returns its location. Demo
// mode returns a placeholder without touching the network.
func (f *Fuel) UploadPhoto(ctx context.Context, sess domain.Session, filename string, photo io.Reader) (*PhotoUpload, error) {
	if f.demo {
		return &PhotoUpload{
			URL:  "https://via.placeholder.com/300x200?text=Demo+Receipt",
			Path: "demo/receipt.jpg",
		}, nil
	}

	var upload PhotoUpload
	err := f.backend.Functions.PostMultipart(ctx, "/upload-photo", "photo", filename, photo,
		supabase.BearerHeader(sess.AccessToken), &upload)
	if err != nil {
		slog.Error("photo upload failed", "error", err)
		return nil, fmt.Errorf("network error while uploading photo: %w", err)
	}
	return &upload, nil
}

// validateEntry enforces the intake constraints, most importantly that the
// vehicle is identified by stock number or VIN.
func (f *Fuel) validateEntry(input domain.CreateFuelEntry) error {
	if input.StockNumber == "" && input.VIN == "" {
		return &domain.ValidationError{Field: "stockNumber", Reason: "either stock number or VIN is required"}
	}

	if err := f.validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &domain.ValidationError{
				Field:  fe.Field(),
				Reason: fmt.Sprintf("failed %s constraint", fe.Tag()),
			}
		}
		return &domain.ValidationError{Reason: err.Error()}
	}
	return nil
}
