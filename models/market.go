package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Market represents one sprinter instrument in the shared catalog.
// Rows are keyed by ISIN and shared by every client watching the
// instrument; they are created on first successful scrape and updated
// in place by the periodic refresh.
type Market struct {
	ISIN         string          `gorm:"primaryKey;column:isin" json:"isin"`
	Title        string          `gorm:"not null" json:"title"`
	Type         string          `json:"type"` // Long, Short
	Bid          decimal.Decimal `gorm:"type:decimal(15,4)" json:"bid"`
	Ask          decimal.Decimal `gorm:"type:decimal(15,4)" json:"ask"`
	Day          string          `json:"day"` // signed one-day change, percent formatted
	Leverage     decimal.Decimal `gorm:"type:decimal(10,2)" json:"leverage"`
	StopLoss     string          `json:"stop_loss"`
	Reference    string          `json:"reference"`
	ReferencePct string          `json:"reference_pct"`
	Ended        bool            `gorm:"not null;default:false" json:"ended"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// DecimalFromQuote converts a quote-page number ("12,34") to a decimal.
// The source formats numbers with a decimal comma and occasional
// grouping dots; unparseable input yields zero.
func DecimalFromQuote(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// MigrateMarketModels runs database migrations for catalog models
func MigrateMarketModels(db *gorm.DB) error {
	return db.AutoMigrate(&Market{})
}
