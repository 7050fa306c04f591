package scraper

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Fetcher performs HTTP GET requests against the quote-search endpoint.
// It carries two clients: one that follows redirects (the search page
// redirects to the instrument page, whose body we scrape) and one that
// does not, used for identifier validation where the bare 302 response
// is itself the positive signal.
type Fetcher struct {
	baseURL    string
	client     *http.Client
	noRedirect *http.Client
}

// NewFetcher creates a fetcher for the given quote source base URL
func NewFetcher(baseURL string) *Fetcher {
	return &Fetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		noRedirect: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (f *Fetcher) searchURL(isin string) string {
	return f.baseURL + "/zoeken?q=" + url.QueryEscape(isin)
}

// Fetch issues one redirect-following GET for the identifier and
// returns the document body. Transport failures and non-200 statuses
// both yield the empty "no data" marker; a single bad identifier must
// never abort the batch it belongs to.
func (f *Fetcher) Fetch(ctx context.Context, isin string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.searchURL(isin), nil)
	if err != nil {
		log.Printf("Error building request for %s: %v", isin, err)
		return ""
	}

	resp, err := f.client.Do(req)
	if err != nil {
		log.Printf("Error fetching %s: %v", isin, err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("Error reading body for %s: %v", isin, err)
		return ""
	}
	return string(body)
}

// FetchAll fetches documents for a batch of identifiers concurrently
// and returns the body per identifier. Identifiers that produced no
// data map to the empty string.
func (f *Fetcher) FetchAll(ctx context.Context, isins []string) map[string]string {
	bodies := make(map[string]string, len(isins))

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, isin := range isins {
		wg.Add(1)
		go func(isin string) {
			defer wg.Done()
			body := f.Fetch(ctx, isin)
			mu.Lock()
			bodies[isin] = body
			mu.Unlock()
		}(isin)
	}
	wg.Wait()

	return bodies
}

// Resolves reports whether the identifier resolves to an instrument
// page. The search endpoint answers a known identifier with a redirect;
// redirects are deliberately not followed here, so a 302 status is the
// positive signal.
func (f *Fetcher) Resolves(ctx context.Context, isin string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.searchURL(isin), nil)
	if err != nil {
		return false, fmt.Errorf("failed to build request for %s: %w", isin, err)
	}

	resp, err := f.noRedirect.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to resolve %s: %w", isin, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode == http.StatusFound, nil
}
