package watchlist

import (
	"context"
	"fmt"
	"log"

	"sprinter_backend/models"
	"sprinter_backend/services/paging"
	"sprinter_backend/services/scraper"
	"sprinter_backend/services/store"
)

// Service coordinates the scraper and the store: adding an instrument
// to a watchlist, refreshing the shared catalog, and reading a paged
// overview back out.
type Service struct {
	store   *store.Store
	scraper *scraper.Scraper
}

// NewService creates a watchlist service
func NewService(st *store.Store, sc *scraper.Scraper) *Service {
	return &Service{store: st, scraper: sc}
}

// AddOutcome classifies the user-visible result of an add request.
// Invalid input and unavailable instruments are expected outcomes, not
// errors; only persistence failures surface as errors.
type AddOutcome int

const (
	Added AddOutcome = iota
	InvalidISIN
	Unavailable
)

// Add validates the raw identifier, verifies it resolves at the quote
// source, ingests the instrument and links it to the client's
// watchlist. The returned market is the stored catalog row.
func (s *Service) Add(ctx context.Context, clientID int64, raw string) (AddOutcome, *models.Market, error) {
	isin, err := scraper.NormalizeISIN(raw)
	if err != nil {
		return InvalidISIN, nil, nil
	}

	ok, err := s.scraper.Resolves(ctx, isin)
	if err != nil {
		// Transport trouble on the validation probe is a source
		// condition, handled like any other unavailable instrument.
		log.Printf("Resolve check failed for %s: %v", isin, err)
		return Unavailable, nil, nil
	}
	if !ok {
		return Unavailable, nil, nil
	}

	active, _ := s.scraper.Ingest(ctx, []string{isin})
	if len(active) == 0 {
		return Unavailable, nil, nil
	}
	quote := active[0]

	if err := s.store.AddMarket(quote); err != nil {
		return 0, nil, err
	}
	if err := s.store.Link(clientID, isin); err != nil {
		return 0, nil, err
	}

	market, err := s.store.Market(isin)
	if err != nil {
		return 0, nil, err
	}
	return Added, market, nil
}

// Refresh re-fetches every instrument in the catalog and writes the
// results back: active quotes overwrite their rows, unavailable ones
// get the ended flag. The whole catalog is refreshed in one pass.
func (s *Service) Refresh(ctx context.Context) error {
	isins, err := s.store.MarketISINs()
	if err != nil {
		return fmt.Errorf("failed to list catalog: %w", err)
	}
	if len(isins) == 0 {
		return nil
	}

	active, unavailable := s.scraper.Ingest(ctx, isins)

	failed := 0
	for _, quote := range active {
		if err := s.store.RefreshMarket(quote); err != nil {
			log.Printf("Error refreshing market %s: %v", quote.ISIN, err)
			failed++
		}
	}
	for _, u := range unavailable {
		if err := s.store.MarkMarketEnded(u.ISIN); err != nil {
			log.Printf("Error marking market %s ended: %v", u.ISIN, err)
			failed++
		}
	}

	log.Printf("Catalog refresh completed: %d active, %d unavailable, %d write failures",
		len(active), len(unavailable), failed)
	if failed > 0 {
		return fmt.Errorf("catalog refresh: %d of %d writes failed", failed, len(isins))
	}
	return nil
}

// OverviewPage is one page of a client's watchlist with full market rows
type OverviewPage struct {
	Entries    []models.ClientMarket `json:"entries"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
	Total      int                   `json:"total"`
}

// Overview reads the client's watchlist, title-ordered, and returns the
// requested page.
func (s *Service) Overview(clientID int64, page, size int) (*OverviewPage, error) {
	rows, err := s.store.Watchlist(clientID)
	if err != nil {
		return nil, err
	}
	return &OverviewPage{
		Entries:    paging.Page(rows, page, size),
		Page:       page,
		PageSize:   size,
		TotalPages: paging.Count(len(rows), size),
		Total:      len(rows),
	}, nil
}
