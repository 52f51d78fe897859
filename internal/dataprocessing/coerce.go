package dataprocessing

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// missingValues are the cell texts treated as "no value" before any
// coercion is attempted
var missingValues = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// dateLayouts are tried in order by ParseDate
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	time.RFC3339Nano,
	"2006/01/02",
	"2006/01/02 15:04:05",
	"01/02/2006",
	"01/02/2006 15:04:05",
	"20060102",
}

// IsMissing reports whether a raw cell carries no value
func IsMissing(raw string) bool {
	_, ok := missingValues[strings.TrimSpace(raw)]
	return ok
}

// ParseText returns the raw text, or nil when the cell is missing
func ParseText(raw string) *string {
	if IsMissing(raw) {
		return nil
	}
	v := raw
	return &v
}

// ParseDecimal coerces a cell to a decimal. Missing or unparsable input
// yields an invalid NullDecimal.
func ParseDecimal(raw string) decimal.NullDecimal {
	if IsMissing(raw) {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// ParseDate coerces a cell to a timestamp in UTC. Only the layouts in
// dateLayouts are recognised; anything else yields nil.
func ParseDate(raw string) *time.Time {
	if IsMissing(raw) {
		return nil
	}
	value := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
