package scraper

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidISIN is returned when user input contains no sprinter identifier.
var ErrInvalidISIN = errors.New("not a valid sprinter ISIN")

// Sprinter identifiers are NL ISINs: the country prefix followed by ten
// alphanumeric characters.
var isinPattern = regexp.MustCompile(`(?i)NL[0-9A-Z]{10}`)

// NormalizeISIN extracts the identifier embedded in raw user input and
// returns it uppercased. Input with no identifier yields ErrInvalidISIN.
func NormalizeISIN(raw string) (string, error) {
	match := isinPattern.FindString(raw)
	if match == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidISIN, raw)
	}
	return strings.ToUpper(match), nil
}
