package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/napleton/fueltrakr/internal/core/domain"
)

var header = []string{
	"id", "user", "stock_number", "vin", "mileage",
	"fuel_amount", "fuel_cost", "timestamp", "notes", "submitted_at",
}

// Write renders fuel entries as an accounting CSV with a stable column order.
func Write(w io.Writer, entries []domain.FuelEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, e := range entries {
		row := []string{
			e.ID,
			e.UserName,
			e.StockNumber,
			e.VIN,
			strconv.Itoa(e.Mileage),
			strconv.FormatFloat(e.FuelAmount, 'f', 2, 64),
			strconv.FormatFloat(e.FuelCost, 'f', 2, 64),
			e.Timestamp.UTC().Format(time.RFC3339),
			e.Notes,
			e.SubmittedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %s: %w", e.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Render returns the CSV as bytes.
func Render(entries []domain.FuelEntry) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Filename returns the conventional export file name for a given day.
func Filename(now time.Time) string {
	return "fueltrakr-export-" + now.UTC().Format("2006-01-02") + ".csv"
}
