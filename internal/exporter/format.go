package exporter

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// formatMoney renders a decimal with at least 2 decimal places. Extra
// precision is kept so written values stay exact.
func formatMoney(d decimal.Decimal) string {
	if d.Equal(d.Round(2)) {
		return d.StringFixed(2)
	}
	return d.String()
}

// formatNullMoney renders a nullable decimal; null becomes an empty cell
func formatNullMoney(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return formatMoney(d.Decimal)
}

// formatQuantity renders a count in its shortest exact form: 5, 2.5, -3
func formatQuantity(d decimal.Decimal) string {
	return d.String()
}

func formatNullQuantity(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return formatQuantity(d.Decimal)
}

func formatText(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// formatDate writes a calendar date, appending the time of day only when
// it is not midnight
func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	u := t.UTC()
	if u.Hour() == 0 && u.Minute() == 0 && u.Second() == 0 && u.Nanosecond() == 0 {
		return u.Format(dateLayout)
	}
	return u.Format(dateTimeLayout)
}
