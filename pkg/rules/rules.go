// pkg/rules/rules.go
package rules

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/ecomdata/sales-ingress/pkg/model"
)

// NormalizationRule maps product-name text matching a pattern to a canonical
// name. Rules are evaluated top to bottom; the first match wins. Matching is
// case-insensitive.
type NormalizationRule struct {
	Pattern   string
	Canonical string
	re        *regexp.Regexp
}

// NewNormalizationRule compiles a case-insensitive rule.
func NewNormalizationRule(pattern, canonical string) (NormalizationRule, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return NormalizationRule{}, fmt.Errorf("invalid normalization pattern %q: %w", pattern, err)
	}
	return NormalizationRule{Pattern: pattern, Canonical: canonical, re: re}, nil
}

func mustRule(pattern, canonical string) NormalizationRule {
	r, err := NewNormalizationRule(pattern, canonical)
	if err != nil {
		panic(err)
	}
	return r
}

// Matches reports whether the raw product name matches this rule.
func (r NormalizationRule) Matches(name string) bool {
	return r.re.MatchString(name)
}

// Rules is the static configuration consumed by every pipeline stage:
// acceptable value ranges, the outlier clipping tolerance, the date-format
// priority list, and the ordered product normalization table. Rules are
// read-only at runtime; changing them changes behavior deterministically.
type Rules struct {
	QuantityMin int
	QuantityMax int
	PriceMin    float64
	PriceMax    float64
	DateMin     time.Time
	DateMax     time.Time

	// OutlierTolerance is a multiplicative factor: values up to
	// bound*tolerance above the max (or down to bound/tolerance below the
	// min) are clipped to the bound; anything further out is unrecoverable.
	OutlierTolerance float64

	// DateLayouts are tried in order; the first successful parse wins.
	DateLayouts []string

	Normalization []NormalizationRule
}

// Default returns the rule set used when no rules file is configured.
func Default() *Rules {
	return &Rules{
		QuantityMin:      1,
		QuantityMax:      100,
		PriceMin:         0.01,
		PriceMax:         1000.00,
		DateMin:          time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC),
		DateMax:          time.Date(2030, 12, 31, 0, 0, 0, 0, time.UTC),
		OutlierTolerance: 1.10,
		DateLayouts: []string{
			"2006-01-02",
			"2006/01/02",
			"02/01/2006",
			"01/02/2006",
			"January 2, 2006",
			"02-01-06",
			"01/02/06",
		},
		Normalization: []NormalizationRule{
			mustRule(`co(?:ke|ca)[-\s]?cola\s*500\s*ml`, "Coca-Cola 500ml"),
			mustRule(`co(?:ke|ca)[-\s]?cola`, "Coca-Cola"),
			mustRule(`pepsi`, "Pepsi"),
			mustRule(`sprite`, "Sprite"),
			mustRule(`usb[-\s]?c`, "USB-C Cable"),
			mustRule(`usbc`, "USB-C Cable"),
			mustRule(`webcam`, "Webcam"),
			mustRule(`mouse`, "Mouse"),
			mustRule(`keyboard`, "Keyboard"),
			mustRule(`laptop`, "Laptop"),
			mustRule(`monitor`, "Monitor"),
			mustRule(`tablet`, "Tablet"),
			mustRule(`printer`, "Printer"),
			mustRule(`headphones`, "Headphones"),
			mustRule(`charger`, "Charger"),
			mustRule(`smartphone`, "Smartphone"),
		},
	}
}

// Validate ensures the rule set is internally consistent.
func (r *Rules) Validate() error {
	if r.QuantityMin < 1 || r.QuantityMax < r.QuantityMin {
		return fmt.Errorf("invalid quantity bounds [%d,%d]", r.QuantityMin, r.QuantityMax)
	}
	if r.PriceMin <= 0 || r.PriceMax < r.PriceMin {
		return fmt.Errorf("invalid price bounds [%v,%v]", r.PriceMin, r.PriceMax)
	}
	if r.DateMax.Before(r.DateMin) {
		return fmt.Errorf("invalid date range [%s,%s]",
			r.DateMin.Format(model.DateLayout), r.DateMax.Format(model.DateLayout))
	}
	if r.OutlierTolerance < 1.0 {
		return fmt.Errorf("outlier tolerance must be >= 1.0, got %v", r.OutlierTolerance)
	}
	if len(r.DateLayouts) == 0 {
		return fmt.Errorf("at least one date layout is required")
	}
	return nil
}

// ParseDate tries the configured layouts in priority order and returns the
// first successful parse. Ties are impossible: layouts are tried in order,
// never scored.
func (r *Rules) ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range r.DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// InDateRange reports whether a date falls within the configured valid range.
func (r *Rules) InDateRange(t time.Time) bool {
	return !t.Before(r.DateMin) && !t.After(r.DateMax)
}

// CanonicalName applies the normalization table to a raw product name.
// Returns the canonical name and true on the first matching rule; otherwise
// the fallback transform (trimmed, title-cased) and false.
func (r *Rules) CanonicalName(name string) (string, bool) {
	for _, rule := range r.Normalization {
		if rule.Matches(name) {
			return rule.Canonical, true
		}
	}
	return TitleCase(strings.TrimSpace(name)), false
}

// TitleCase capitalizes the first letter of each space-separated word,
// lowercasing the rest. The fallback transform for unmapped product names.
func TitleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		first, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(first)) + w[size:]
	}
	return strings.Join(words, " ")
}
