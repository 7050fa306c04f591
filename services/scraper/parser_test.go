package scraper

import (
	"strings"
	"testing"
)

const activePage = `<!DOCTYPE html>
<html>
<body>
<nav>
  <span itemprop="name">Home</span>
  <span itemprop="name">Sprinters</span>
  <span itemprop="name">Sprinter Long AEX</span>
</nav>
<h1 class="text-body">Long 9,8 op AEX</h1>
<div class="meta">
  <h3 class="meta__heading no-margin">Bied</h3>
  <h3 class="meta__heading no-margin">Laat</h3>
  <h3 class="meta__heading no-margin">% 1 dag</h3>
  <h3 class="meta__heading no-margin">Hefboom</h3>
  <h3 class="meta__heading no-margin">Stop loss-niveau</h3>
  <h3 class="meta__heading no-margin">Referentiekoers*</h3>
  <span class="meta__value meta__value--lg">20,81</span>
  <span class="meta__value meta__value--lg">20,88</span>
  <span class="meta__value meta__value--lg">+1,91 %</span>
  <span class="meta__value meta__value--lg">9,8</span>
  <span class="meta__value meta__value--lg">788,0</span>
  <span class="meta__value meta__value--lg">850,12</span>
  <span class="meta__value meta__value--lg">-0,4%</span>
</div>
</body>
</html>`

const endedPage = `<!DOCTYPE html>
<html>
<body>
<nav>
  <span itemprop="name">Home</span>
  <span itemprop="name">Beëindigd</span>
  <span itemprop="name">Sprinter Long AEX</span>
</nav>
<h1 class="text-body">Long 9,8 op AEX</h1>
</body>
</html>`

func TestParseActivePage(t *testing.T) {
	q, err := Parse("NL0000000001", activePage)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if q.ISIN != "NL0000000001" {
		t.Errorf("ISIN = %q, want NL0000000001", q.ISIN)
	}
	if q.Title != "Sprinter Long AEX" {
		t.Errorf("Title = %q, want Sprinter Long AEX", q.Title)
	}
	if q.Type != "Long" {
		t.Errorf("Type = %q, want Long", q.Type)
	}
	if q.Bid != "20,81" || q.Ask != "20,88" {
		t.Errorf("Bid/Ask = %q/%q, want 20,81/20,88", q.Bid, q.Ask)
	}
	if q.Day != "+1,91" {
		t.Errorf("Day = %q, want +1,91 (percent suffix stripped)", q.Day)
	}
	if q.Leverage != "9,8" {
		t.Errorf("Leverage = %q, want 9,8", q.Leverage)
	}
	if q.StopLoss != "788,0" {
		t.Errorf("StopLoss = %q, want 788,0", q.StopLoss)
	}
	if q.Reference != "850,12" || q.ReferencePct != "-0,4%" {
		t.Errorf("Reference split = %q/%q, want 850,12/-0,4%%", q.Reference, q.ReferencePct)
	}
	if q.ReferenceCombined != "850,12 -0,4%" {
		t.Errorf("ReferenceCombined = %q, want %q", q.ReferenceCombined, "850,12 -0,4%")
	}
}

func TestParseEndedPage(t *testing.T) {
	if _, err := Parse("NL0000000002", endedPage); err == nil {
		t.Fatal("Parse of ended page must fail")
	}
}

func TestParseMalformedPages(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty document", "<html><body></body></html>"},
		{"missing type heading", strings.Replace(activePage, `<h1 class="text-body">Long 9,8 op AEX</h1>`, "", 1)},
		{"missing metric values", strings.ReplaceAll(activePage, "meta__value meta__value--lg", "other")},
		{"missing metric headings", strings.ReplaceAll(activePage, "meta__heading", "other")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse("NL0000000003", tt.body); err == nil {
				t.Fatalf("Parse must fail for %s", tt.name)
			}
		})
	}
}

func TestNormalizeISIN(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"NL0000000001", "NL0000000001", true},
		{"nl0000000001", "NL0000000001", true},
		{"add nl00ing00x12 please", "NL00ING00X12", true},
		{"DE0000000001", "", false},
		{"NL123", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, err := NormalizeISIN(tt.raw)
		if tt.ok && (err != nil || got != tt.want) {
			t.Errorf("NormalizeISIN(%q) = %q, %v; want %q", tt.raw, got, err, tt.want)
		}
		if !tt.ok && err == nil {
			t.Errorf("NormalizeISIN(%q) must fail", tt.raw)
		}
	}
}
