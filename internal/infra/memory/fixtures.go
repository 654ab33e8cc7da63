package memory

import (
	"time"

	"github.com/napleton/fueltrakr/internal/core/domain"
)

// Demo fixture data. Credentials exist only for demo mode and never reach a
// live backend.

func demoUsers() []domain.User {
	return []domain.User{
		{
			ID:    "demo-admin",
			Email: "admin@napleton.com",
			Name:  "Admin User",
			Role:  domain.RoleAdmin,
		},
		{
			ID:    "demo-porter",
			Email: "porter@napleton.com",
			Name:  "John Porter",
			Role:  domain.RolePorter,
		},
	}
}

func demoCredentials() map[string]string {
	return map[string]string{
		"admin@napleton.com":  "admin123",
		"porter@napleton.com": "porter123",
	}
}

func demoEntries(now time.Time) []domain.FuelEntry {
	yesterday := now.Add(-24 * time.Hour)
	twoDaysAgo := now.Add(-48 * time.Hour)

	return []domain.FuelEntry{
		{
			ID:          "demo-entry-1",
			UserID:      "demo-porter",
			UserName:    "John Porter",
			StockNumber: "STK123",
			Mileage:     45000,
			FuelAmount:  12.5,
			FuelCost:    42.50,
			Timestamp:   yesterday,
			Notes:       "Regular maintenance fill-up",
			Location: &domain.Location{
				Latitude:  41.8781,
				Longitude: -87.6298,
				Address:   "Chicago, IL",
			},
			SubmittedAt: yesterday,
		},
		{
			ID:          "demo-entry-2",
			UserID:      "demo-porter",
			UserName:    "John Porter",
			StockNumber: "STK456",
			Mileage:     32000,
			FuelAmount:  8.2,
			FuelCost:    28.15,
			Timestamp:   twoDaysAgo,
			Notes:       "Quick top-off",
			Location: &domain.Location{
				Latitude:  41.8881,
				Longitude: -87.6198,
				Address:   "Chicago, IL",
			},
			SubmittedAt: twoDaysAgo,
		},
	}
}
