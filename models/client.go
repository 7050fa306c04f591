package models

import (
	"time"

	"gorm.io/gorm"
)

// Client represents one end user of the tracking service. The id is the
// opaque numeric identifier owned by the external chat platform; the
// service never generates its own client ids.
type Client struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Settings  *Settings `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"settings,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Settings holds the per-client display toggles. Exactly one row exists
// per client: it is created together with the Client row and removed by
// cascade when the client is deleted, never independently.
type Settings struct {
	ClientID  int64 `gorm:"primaryKey;autoIncrement:false" json:"client_id"`
	ISIN      bool  `gorm:"not null;default:true" json:"isin"`
	Bid       bool  `gorm:"not null;default:true" json:"bid"`
	Ask       bool  `gorm:"not null;default:true" json:"ask"`
	Day       bool  `gorm:"not null;default:true" json:"day"`
	Leverage  bool  `gorm:"not null;default:true" json:"leverage"`
	StopLoss  bool  `gorm:"not null;default:true" json:"stop_loss"`
	Reference bool  `gorm:"not null;default:true" json:"reference"`
}

// ClientMarket links a client to a catalog market. MarkedForDeletion is
// the user-local soft-delete flag driven by the two-phase removal
// workflow; it never affects other clients watching the same market.
type ClientMarket struct {
	ClientID          int64     `gorm:"primaryKey;autoIncrement:false" json:"client_id"`
	MarketISIN        string    `gorm:"primaryKey;column:market_isin" json:"market_isin"`
	Client            Client    `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"-"`
	Market            Market    `gorm:"foreignKey:MarketISIN;references:ISIN;constraint:OnDelete:CASCADE" json:"market,omitempty"`
	MarkedForDeletion bool      `gorm:"not null;default:false" json:"marked_for_deletion"`
	CreatedAt         time.Time `json:"created_at"`
}

// Setting name constants accepted by the settings toggle API
const (
	SettingISIN      = "isin"
	SettingBid       = "bid"
	SettingAsk       = "ask"
	SettingDay       = "day"
	SettingLeverage  = "leverage"
	SettingStopLoss  = "stop_loss"
	SettingReference = "reference"
)

// settingColumns maps a recognized setting name to its database column.
var settingColumns = map[string]string{
	SettingISIN:      "isin",
	SettingBid:       "bid",
	SettingAsk:       "ask",
	SettingDay:       "day",
	SettingLeverage:  "leverage",
	SettingStopLoss:  "stop_loss",
	SettingReference: "reference",
}

// SettingColumn resolves a setting name to its column, reporting
// whether the name is one of the seven recognized toggles.
func SettingColumn(name string) (string, bool) {
	col, ok := settingColumns[name]
	return col, ok
}

// ValidSettingNames returns the recognized setting names
func ValidSettingNames() []string {
	return []string{
		SettingISIN,
		SettingBid,
		SettingAsk,
		SettingDay,
		SettingLeverage,
		SettingStopLoss,
		SettingReference,
	}
}

// MigrateClientModels runs database migrations for client-related models
func MigrateClientModels(db *gorm.DB) error {
	return db.AutoMigrate(
		&Client{},
		&Settings{},
		&ClientMarket{},
	)
}
