package search

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/napleton/fueltrakr/internal/core/domain"
)

// Entries provides typed access to the fuel_entries collection.
type Entries struct {
	c *Client
}

// Entries returns the fuel-entry collection service.
func (c *Client) Entries() *Entries {
	return &Entries{c: c}
}

func (e *Entries) index() string {
	return e.c.IndexName(KindFuelEntries)
}

// Create indexes a new entry record. A missing id and created_at are filled
// in; coordinates, when present, are mirrored into the geo_point field.
func (e *Entries) Create(ctx context.Context, rec domain.EntryRecord) (*domain.EntryRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	doc, err := toDocument(rec)
	if err != nil {
		return nil, err
	}
	if rec.Latitude != nil && rec.Longitude != nil {
		doc["geo_location"] = map[string]float64{
			"lat": *rec.Latitude,
			"lon": *rec.Longitude,
		}
	}

	if err := e.c.IndexDoc(ctx, e.index(), rec.ID, doc); err != nil {
		return nil, fmt.Errorf("index fuel entry: %w", err)
	}
	return &rec, nil
}

// ByID fetches a single entry record.
func (e *Entries) ByID(ctx context.Context, id string) (*domain.EntryRecord, error) {
	var rec domain.EntryRecord
	if err := e.c.GetDoc(ctx, e.index(), id, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ByUser returns a user's entries, newest first.
func (e *Entries) ByUser(ctx context.Context, userID string, limit int) ([]domain.EntryRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	body := map[string]any{
		"query": map[string]any{
			"term": map[string]any{"user_id": userID},
		},
		"sort": []any{map[string]any{"timestamp": "desc"}},
		"size": limit,
	}
	return e.search(ctx, body)
}

// SearchParams filters an entry search. Zero values are ignored.
type SearchParams struct {
	UserID      string
	StockNumber string
	VIN         string
	FuelType    string
	Start       *time.Time
	End         *time.Time
	MinAmount   *float64
	MaxAmount   *float64
	Limit       int
	Offset      int
}

// Find returns entries matching the params, newest first.
func (e *Entries) Find(ctx context.Context, params SearchParams) ([]domain.EntryRecord, error) {
	var filters []any
	addTerm := func(field, value string) {
		if value != "" {
			filters = append(filters, map[string]any{"term": map[string]any{field: value}})
		}
	}
	addTerm("user_id", params.UserID)
	addTerm("stock_number", params.StockNumber)
	addTerm("vin", params.VIN)
	addTerm("fuel_type", params.FuelType)

	if params.Start != nil || params.End != nil {
		bounds := map[string]any{}
		if params.Start != nil {
			bounds["gte"] = params.Start.Format(time.RFC3339)
		}
		if params.End != nil {
			bounds["lte"] = params.End.Format(time.RFC3339)
		}
		filters = append(filters, map[string]any{"range": map[string]any{"timestamp": bounds}})
	}
	if params.MinAmount != nil || params.MaxAmount != nil {
		bounds := map[string]any{}
		if params.MinAmount != nil {
			bounds["gte"] = *params.MinAmount
		}
		if params.MaxAmount != nil {
			bounds["lte"] = *params.MaxAmount
		}
		filters = append(filters, map[string]any{"range": map[string]any{"total_amount": bounds}})
	}

	query := map[string]any{"match_all": map[string]any{}}
	if len(filters) > 0 {
		query = map[string]any{"bool": map[string]any{"filter": filters}}
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 100
	}
	body := map[string]any{
		"query": query,
		"sort":  []any{map[string]any{"timestamp": "desc"}},
		"size":  limit,
		"from":  params.Offset,
	}
	return e.search(ctx, body)
}

// Stats summarizes a user's fuel purchases. An empty userID aggregates the
// whole collection.
type Stats struct {
	Count        int     `json:"count"`
	TotalGallons float64 `json:"total_gallons"`
	TotalAmount  float64 `json:"total_amount"`
}

func (e *Entries) Stats(ctx context.Context, userID string) (*Stats, error) {
	query := map[string]any{"match_all": map[string]any{}}
	if userID != "" {
		query = map[string]any{"term": map[string]any{"user_id": userID}}
	}
	body := map[string]any{
		"query": query,
		"size":  0,
		"aggs": map[string]any{
			"total_gallons": map[string]any{"sum": map[string]any{"field": "gallons"}},
			"total_amount":  map[string]any{"sum": map[string]any{"field": "total_amount"}},
		},
	}

	result, err := e.c.Search(ctx, e.index(), body)
	if err != nil {
		return nil, fmt.Errorf("fuel stats: %w", err)
	}

	stats := &Stats{Count: result.Hits.Total.Value}
	var sum struct {
		Value float64 `json:"value"`
	}
	if raw, ok := result.Aggregations["total_gallons"]; ok {
		if err := json.Unmarshal(raw, &sum); err == nil {
			stats.TotalGallons = sum.Value
		}
	}
	if raw, ok := result.Aggregations["total_amount"]; ok {
		if err := json.Unmarshal(raw, &sum); err == nil {
			stats.TotalAmount = sum.Value
		}
	}
	return stats, nil
}

// Delete removes an entry record.
func (e *Entries) Delete(ctx context.Context, id string) error {
	return e.c.DeleteDoc(ctx, e.index(), id)
}

// DeleteByUser removes every entry owned by a user, used when the user is
// deleted.
func (e *Entries) DeleteByUser(ctx context.Context, userID string) error {
	body := map[string]any{
		"query": map[string]any{
			"term": map[string]any{"user_id": userID},
		},
	}
	return e.c.DeleteByQuery(ctx, e.index(), body)
}

func (e *Entries) search(ctx context.Context, body any) ([]domain.EntryRecord, error) {
	result, err := e.c.Search(ctx, e.index(), body)
	if err != nil {
		return nil, fmt.Errorf("search fuel entries: %w", err)
	}

	records := make([]domain.EntryRecord, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		var rec domain.EntryRecord
		if err := json.Unmarshal(hit.Source, &rec); err != nil {
			return nil, fmt.Errorf("parse fuel entry %s: %w", hit.ID, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func toDocument(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	doc := map[string]any{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("rebuild document: %w", err)
	}
	return doc, nil
}
