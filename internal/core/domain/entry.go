package domain

import (
	"time"
)

// FuelEntry is a recorded fill-up. Entries are immutable once created;
// either StockNumber or VIN identifies the vehicle.
type FuelEntry struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	UserName     string    `json:"userName"`
	StockNumber  string    `json:"stockNumber,omitempty"`
	VIN          string    `json:"vin,omitempty"`
	Mileage      int       `json:"mileage"`
	FuelAmount   float64   `json:"fuelAmount"`
	FuelCost     float64   `json:"fuelCost"`
	Timestamp    time.Time `json:"timestamp"`
	Notes        string    `json:"notes,omitempty"`
	Location     *Location `json:"location,omitempty"`
	ReceiptPhoto string    `json:"receiptPhoto,omitempty"`
	VINPhoto     string    `json:"vinPhoto,omitempty"`
	SubmittedAt  time.Time `json:"submittedAt"`
}

// Location is an optional capture point for an entry.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

// CreateFuelEntry carries the caller-supplied fields for a new entry.
// Validation bounds mirror the intake form limits.
type CreateFuelEntry struct {
	StockNumber  string    `json:"stockNumber,omitempty" validate:"required_without=VIN,omitempty,max=50"`
	VIN          string    `json:"vin,omitempty"         validate:"omitempty,len=17"`
	Mileage      int       `json:"mileage"               validate:"gte=0,lte=1000000"`
	FuelAmount   float64   `json:"fuelAmount"            validate:"gt=0,lte=500"`
	FuelCost     float64   `json:"fuelCost"              validate:"gt=0,lte=10000"`
	Timestamp    time.Time `json:"timestamp"`
	Notes        string    `json:"notes,omitempty"       validate:"max=500"`
	Location     *Location `json:"location,omitempty"`
	ReceiptPhoto string    `json:"receiptPhoto,omitempty"`
	VINPhoto     string    `json:"vinPhoto,omitempty"`
}

// EntryRecord is the indexed form of a fuel entry in the search store.
// Field names follow the accounting export schema.
type EntryRecord struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	StockNumber    string    `json:"stock_number"`
	VIN            string    `json:"vin,omitempty"`
	Gallons        float64   `json:"gallons"`
	PricePerGallon float64   `json:"price_per_gallon"`
	TotalAmount    float64   `json:"total_amount"`
	Odometer       int       `json:"odometer"`
	FuelType       string    `json:"fuel_type"`
	Location       string    `json:"location"`
	Latitude       *float64  `json:"latitude,omitempty"`
	Longitude      *float64  `json:"longitude,omitempty"`
	ReceiptPhoto   string    `json:"receipt_photo,omitempty"`
	VINPhoto       string    `json:"vin_photo,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
	CreatedAt      time.Time `json:"created_at"`
}
