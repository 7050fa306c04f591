package scraper

import (
	"context"
	"log"
	"sync"
)

// Scraper fans a batch of identifiers out through fetch and parse and
// partitions the results into active quotes and unavailable instruments.
type Scraper struct {
	fetcher *Fetcher
}

// New creates a scraper for the given quote source base URL
func New(baseURL string) *Scraper {
	return &Scraper{fetcher: NewFetcher(baseURL)}
}

// Unavailable identifies an instrument that could not be ingested,
// either because the fetch returned no data or because the page no
// longer parses as a live quote.
type Unavailable struct {
	ISIN  string `json:"isin"`
	Ended bool   `json:"ended"`
}

// Ingest fetches all identifiers concurrently, parses the fetched
// documents concurrently, and returns the active and unavailable sets.
// Every distinct input identifier lands in exactly one of the two
// lists; output order is unspecified, callers correlate by ISIN.
func (s *Scraper) Ingest(ctx context.Context, isins []string) ([]Quote, []Unavailable) {
	// One fetch and one verdict per distinct identifier.
	seen := make(map[string]bool, len(isins))
	unique := make([]string, 0, len(isins))
	for _, isin := range isins {
		if !seen[isin] {
			seen[isin] = true
			unique = append(unique, isin)
		}
	}

	bodies := s.fetcher.FetchAll(ctx, unique)

	var (
		mu          sync.Mutex
		wg          sync.WaitGroup
		active      []Quote
		unavailable []Unavailable
	)
	for _, isin := range unique {
		wg.Add(1)
		go func(isin, body string) {
			defer wg.Done()
			if body == "" {
				mu.Lock()
				unavailable = append(unavailable, Unavailable{ISIN: isin, Ended: true})
				mu.Unlock()
				return
			}
			q, err := Parse(isin, body)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Printf("Instrument %s unavailable: %v", isin, err)
				unavailable = append(unavailable, Unavailable{ISIN: isin, Ended: true})
				return
			}
			active = append(active, q)
		}(isin, bodies[isin])
	}
	wg.Wait()

	return active, unavailable
}

// Resolves reports whether an identifier resolves at the quote source
func (s *Scraper) Resolves(ctx context.Context, isin string) (bool, error) {
	return s.fetcher.Resolves(ctx, isin)
}
