package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
	"gorm.io/gorm"

	"sprinter_backend/config"
	"sprinter_backend/services/scraper"
	"sprinter_backend/services/store"
	"sprinter_backend/services/watchlist"
)

// Scheduler manages scheduled jobs
type Scheduler struct {
	cron      *gocron.Scheduler
	store     *store.Store
	watchlist *watchlist.Service
	interval  int
}

// NewScheduler creates a new scheduler instance
func NewScheduler(db *gorm.DB, cfg *config.Config) *Scheduler {
	st := store.New(db)
	sc := scraper.New(cfg.QuoteBaseURL)
	return &Scheduler{
		cron:      gocron.NewScheduler(time.UTC),
		store:     st,
		watchlist: watchlist.NewService(st, sc),
		interval:  cfg.RefreshIntervalMin,
	}
}

// Start starts all scheduled jobs
func (s *Scheduler) Start() {
	log.Println("Starting scheduler...")

	// Refresh every tracked instrument from the quote source
	s.cron.Every(s.interval).Minutes().Do(func() {
		s.refreshCatalog()
	})

	// Drop catalog rows nobody watches anymore, weekly on Sunday at 01:00
	s.cron.Every(1).Week().Sunday().At("01:00").Do(func() {
		s.purgeOrphanMarkets()
	})

	s.cron.StartAsync()
	log.Println("Scheduler started successfully")
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("Scheduler stopped")
}
