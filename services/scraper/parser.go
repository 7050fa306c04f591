package scraper

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Quote is the structured record extracted from one instrument page.
// Values keep the source's locale formatting (decimal comma, percent
// suffix); numeric interpretation happens at the store boundary.
type Quote struct {
	ISIN              string `json:"isin"`
	Title             string `json:"title"`
	Type              string `json:"type"`
	Bid               string `json:"bid"`
	Ask               string `json:"ask"`
	Day               string `json:"day"`
	Leverage          string `json:"leverage"`
	StopLoss          string `json:"stop_loss"`
	Reference         string `json:"reference"`
	ReferencePct      string `json:"reference_pct"`
	ReferenceCombined string `json:"reference_combined"`
}

// endedMarker is the breadcrumb text the source uses for delisted instruments.
const endedMarker = "Beëindigd"

// The instrument type is the first word of the h1 heading, which reads
// like "Sprinter Long AEX 850".
var typePattern = regexp.MustCompile(`(\S+)\s\S*[0-9]`)

// Parse turns one document body into a Quote. Any structural defect
// (missing title breadcrumb, ended marker, missing type heading, too
// few metric cells) returns an error, which callers treat as the
// instrument being unavailable: a stale or delisted sprinter is an
// expected condition, not a system fault.
func Parse(isin, body string) (Quote, error) {
	q := Quote{ISIN: isin}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return q, fmt.Errorf("failed to parse document: %w", err)
	}

	var names []string
	doc.Find("span[itemprop=name]").Each(func(_ int, s *goquery.Selection) {
		names = append(names, strings.TrimSpace(s.Text()))
	})
	if len(names) == 0 {
		return q, errors.New("missing title breadcrumb")
	}
	for _, name := range names {
		if name == endedMarker {
			return q, errors.New("instrument is marked as ended")
		}
	}
	q.Title = names[len(names)-1]

	heading := strings.TrimSpace(doc.Find("h1.text-body").First().Text())
	match := typePattern.FindStringSubmatch(heading)
	if match == nil {
		return q, fmt.Errorf("missing or malformed type heading %q", heading)
	}
	q.Type = match[1]

	labels := doc.Find("h3.meta__heading").Length()
	if labels < metricLabelCount {
		return q, fmt.Errorf("expected %d metric headings, found %d", metricLabelCount, labels)
	}

	var values []string
	doc.Find("span[class^='meta__value meta__value--l']").Each(func(_ int, s *goquery.Selection) {
		values = append(values, strings.TrimSpace(s.Text()))
	})
	if len(values) < metricValueCount {
		return q, fmt.Errorf("expected %d metric values, found %d", metricValueCount, len(values))
	}

	for _, rule := range quoteSchema {
		rule.assign(&q, values)
	}
	return q, nil
}
