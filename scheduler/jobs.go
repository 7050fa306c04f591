package scheduler

import (
	"context"
	"log"
	"time"
)

// refreshCatalog re-ingests the whole catalog and writes results back
func (s *Scheduler) refreshCatalog() {
	log.Println("Refreshing market catalog...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := s.watchlist.Refresh(ctx); err != nil {
		log.Printf("Error refreshing catalog: %v", err)
	}
}

// purgeOrphanMarkets removes catalog rows no watchlist references
func (s *Scheduler) purgeOrphanMarkets() {
	log.Println("Purging orphan markets...")

	removed, err := s.store.PurgeOrphanMarkets()
	if err != nil {
		log.Printf("Error purging orphan markets: %v", err)
		return
	}
	log.Printf("Purged %d orphan markets", removed)
}
