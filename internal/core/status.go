package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// statusTolerance absorbs floating-point rounding from upstream systems:
// a bill whose paid amount is within one cent of its total counts as PAID.
var statusTolerance = decimal.NewFromFloat(0.01)

// DeriveBillStatus computes a bill's status from its paid and total amounts.
// Status is never trusted from storage — every write recomputes it here.
func DeriveBillStatus(paid, total decimal.Decimal) BillStatus {
	if paid.Sub(total).Abs().LessThan(statusTolerance) {
		return BillPaid
	}
	if paid.IsPositive() {
		return BillPartial
	}
	return BillPending
}

// DocumentPrefix returns the year-month series prefix for a document date,
// e.g. ("AP", 2024-01-15) → "AP-202401-".
func DocumentPrefix(kind string, date time.Time) string {
	return fmt.Sprintf("%s-%s-", kind, date.Format("200601"))
}

// FormatDocumentNumber renders a sequence number in its series,
// e.g. ("AP-202401-", 8) → "AP-202401-008".
func FormatDocumentNumber(prefix string, seq int) string {
	return fmt.Sprintf("%s%03d", prefix, seq)
}

// NextSequence returns the sequence number that follows lastNumber within its
// series. An empty lastNumber starts the series at 1. A suffix that does not
// parse as an integer is a hard error: silently restarting at 001 could
// collide with an existing number.
func NextSequence(prefix, lastNumber string) (int, error) {
	if lastNumber == "" {
		return 1, nil
	}
	suffix := strings.TrimPrefix(lastNumber, prefix)
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, fmt.Errorf("document number %q has a non-numeric suffix: %w", lastNumber, err)
	}
	return n + 1, nil
}
