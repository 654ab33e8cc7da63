package search

// Collection kinds provisioned in the search store.
const (
	KindUsers       = "users"
	KindFuelEntries = "fuel_entries"
)

// IndexMappings holds the fixed field mappings per collection.
var IndexMappings = map[string]map[string]any{
	KindUsers: {
		"properties": map[string]any{
			"id":         map[string]any{"type": "keyword"},
			"email":      map[string]any{"type": "keyword"},
			"name":       map[string]any{"type": "text"},
			"role":       map[string]any{"type": "keyword"},
			"created_at": map[string]any{"type": "date"},
			"updated_at": map[string]any{"type": "date"},
		},
	},
	KindFuelEntries: {
		"properties": map[string]any{
			"id":               map[string]any{"type": "keyword"},
			"user_id":          map[string]any{"type": "keyword"},
			"stock_number":     map[string]any{"type": "keyword"},
			"vin":              map[string]any{"type": "keyword"},
			"gallons":          map[string]any{"type": "float"},
			"price_per_gallon": map[string]any{"type": "float"},
			"total_amount":     map[string]any{"type": "float"},
			"odometer":         map[string]any{"type": "integer"},
			"fuel_type":        map[string]any{"type": "keyword"},
			"location":         map[string]any{"type": "text"},
			"geo_location":     map[string]any{"type": "geo_point"},
			"receipt_photo":    map[string]any{"type": "keyword"},
			"vin_photo":        map[string]any{"type": "keyword"},
			"notes":            map[string]any{"type": "text"},
			"timestamp":        map[string]any{"type": "date"},
			"created_at":       map[string]any{"type": "date"},
		},
	},
}
