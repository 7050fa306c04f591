package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sprinter_backend/models"
	"sprinter_backend/services/scraper"
)

// Sentinel errors returned by store operations
var (
	ErrNotFound       = errors.New("record not found")
	ErrUnknownSetting = errors.New("unrecognized setting name")
)

// Store wraps the owned database handle with the watchlist persistence
// operations. Every statement is parameterized through GORM, and every
// operation reports failure to its caller; multi-statement operations
// run in a transaction.
type Store struct {
	db *gorm.DB
}

// New creates a store around an open database handle
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// RegisterClient inserts the client together with its default-enabled
// settings row. Calling it for a known client is a no-op.
func (s *Store) RegisterClient(id int64) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		client := models.Client{ID: id}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&client).Error; err != nil {
			return err
		}
		settings := models.Settings{
			ClientID:  id,
			ISIN:      true,
			Bid:       true,
			Ask:       true,
			Day:       true,
			Leverage:  true,
			StopLoss:  true,
			Reference: true,
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&settings).Error
	})
	if err != nil {
		return fmt.Errorf("failed to register client %d: %w", id, err)
	}
	return nil
}

// UnregisterClient deletes the client; the settings row and all
// watchlist links go with it by cascade. Idempotent.
func (s *Store) UnregisterClient(id int64) error {
	if err := s.db.Delete(&models.Client{}, id).Error; err != nil {
		return fmt.Errorf("failed to unregister client %d: %w", id, err)
	}
	return nil
}

func marketFromQuote(q scraper.Quote) models.Market {
	return models.Market{
		ISIN:         q.ISIN,
		Title:        q.Title,
		Type:         q.Type,
		Bid:          models.DecimalFromQuote(q.Bid),
		Ask:          models.DecimalFromQuote(q.Ask),
		Day:          q.Day,
		Leverage:     models.DecimalFromQuote(q.Leverage),
		StopLoss:     q.StopLoss,
		Reference:    q.Reference,
		ReferencePct: q.ReferencePct,
	}
}

// AddMarket inserts the market only if the identifier is not yet known.
// The add path must not clobber fresher data a concurrent refresh may
// already have written; overwriting is the refresh path's job.
func (s *Store) AddMarket(q scraper.Quote) error {
	m := marketFromQuote(q)
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&m).Error; err != nil {
		return fmt.Errorf("failed to add market %s: %w", q.ISIN, err)
	}
	return nil
}

// RefreshMarket unconditionally overwrites all non-key fields of a
// known market so the row always reflects the latest fetch. Updating
// clears a previously set ended flag: the instrument scraped again.
func (s *Store) RefreshMarket(q scraper.Quote) error {
	m := marketFromQuote(q)
	res := s.db.Model(&models.Market{}).Where("isin = ?", q.ISIN).Updates(map[string]interface{}{
		"title":         m.Title,
		"type":          m.Type,
		"bid":           m.Bid,
		"ask":           m.Ask,
		"day":           m.Day,
		"leverage":      m.Leverage,
		"stop_loss":     m.StopLoss,
		"reference":     m.Reference,
		"reference_pct": m.ReferencePct,
		"ended":         false,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to refresh market %s: %w", q.ISIN, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("refresh market %s: %w", q.ISIN, ErrNotFound)
	}
	return nil
}

// MarkMarketEnded flags a known market as ended without touching its
// last recorded quote fields.
func (s *Store) MarkMarketEnded(isin string) error {
	res := s.db.Model(&models.Market{}).Where("isin = ?", isin).Update("ended", true)
	if res.Error != nil {
		return fmt.Errorf("failed to mark market %s ended: %w", isin, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("mark market %s ended: %w", isin, ErrNotFound)
	}
	return nil
}

// Link adds the market to the client's watchlist if it is not already
// on it. A new link always starts without a deletion mark.
func (s *Store) Link(clientID int64, isin string) error {
	cm := models.ClientMarket{ClientID: clientID, MarketISIN: isin}
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&cm).Error; err != nil {
		return fmt.Errorf("failed to link market %s to client %d: %w", isin, clientID, err)
	}
	return nil
}

// Unlink removes the market from the client's watchlist. Idempotent.
func (s *Store) Unlink(clientID int64, isin string) error {
	err := s.db.Where("client_id = ? AND market_isin = ?", clientID, isin).
		Delete(&models.ClientMarket{}).Error
	if err != nil {
		return fmt.Errorf("failed to unlink market %s from client %d: %w", isin, clientID, err)
	}
	return nil
}

// ToggleSetting updates one named display toggle for the client. The
// name must be one of the seven recognized settings; anything else is
// rejected before any statement reaches the database.
func (s *Store) ToggleSetting(clientID int64, name string, value bool) error {
	column, ok := models.SettingColumn(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSetting, name)
	}
	res := s.db.Model(&models.Settings{}).Where("client_id = ?", clientID).Update(column, value)
	if res.Error != nil {
		return fmt.Errorf("failed to toggle setting %s for client %d: %w", name, clientID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("toggle setting %s for client %d: %w", name, clientID, ErrNotFound)
	}
	return nil
}

// WatchlistEntry is one row of a client's watchlist read
type WatchlistEntry struct {
	ISIN              string `json:"isin"`
	Title             string `json:"title"`
	MarkedForDeletion bool   `json:"marked_for_deletion"`
}

// ClientMarkets returns the client's watchlist as (identifier, deletion
// mark) pairs, ordered by market title ascending.
func (s *Store) ClientMarkets(clientID int64) ([]WatchlistEntry, error) {
	var entries []WatchlistEntry
	err := s.db.Model(&models.ClientMarket{}).
		Select("client_markets.market_isin AS isin, markets.title AS title, client_markets.marked_for_deletion").
		Joins("JOIN markets ON markets.isin = client_markets.market_isin").
		Where("client_markets.client_id = ?", clientID).
		Order("markets.title ASC").
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read watchlist for client %d: %w", clientID, err)
	}
	return entries, nil
}

// Watchlist returns the client's watchlist rows with the full market
// record attached, ordered by market title ascending.
func (s *Store) Watchlist(clientID int64) ([]models.ClientMarket, error) {
	var rows []models.ClientMarket
	err := s.db.Joins("Market").
		Where("client_markets.client_id = ?", clientID).
		Order(`"Market"."title" ASC`).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read watchlist for client %d: %w", clientID, err)
	}
	return rows, nil
}

// Market returns the full catalog row for one identifier
func (s *Store) Market(isin string) (*models.Market, error) {
	var m models.Market
	if err := s.db.First(&m, "isin = ?", isin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("market %s: %w", isin, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read market %s: %w", isin, err)
	}
	return &m, nil
}

// ClientSettings returns the client's settings row
func (s *Store) ClientSettings(clientID int64) (*models.Settings, error) {
	var settings models.Settings
	if err := s.db.First(&settings, "client_id = ?", clientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("settings for client %d: %w", clientID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read settings for client %d: %w", clientID, err)
	}
	return &settings, nil
}

// MarketISINs returns every identifier in the catalog; this feeds the
// periodic refresh.
func (s *Store) MarketISINs() ([]string, error) {
	var isins []string
	if err := s.db.Model(&models.Market{}).Order("isin").Pluck("isin", &isins).Error; err != nil {
		return nil, fmt.Errorf("failed to list market identifiers: %w", err)
	}
	return isins, nil
}

// PurgeOrphanMarkets deletes catalog rows no watchlist references
// anymore and returns how many were removed.
func (s *Store) PurgeOrphanMarkets() (int64, error) {
	sub := s.db.Model(&models.ClientMarket{}).Select("market_isin")
	res := s.db.Where("isin NOT IN (?)", sub).Delete(&models.Market{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to purge orphan markets: %w", res.Error)
	}
	return res.RowsAffected, nil
}
