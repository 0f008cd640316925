package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrTotalMismatch is returned when a claimed total does not match the
// catalog-derived total within the configured tolerance.
var ErrTotalMismatch = errors.New("total price does not match catalog prices")

// Line is one order line with its catalog unit price at checkout time.
type Line struct {
	ProductID uint
	UnitPrice float64
	Quantity  int
}

// Verifier decides whether a caller-supplied order total is acceptable.
// The trust boundary for client-computed totals lives entirely behind this
// interface.
type Verifier interface {
	Verify(lines []Line, claimedTotal float64) error
}

// ClientTrust accepts whatever total the client sent. This is the default
// policy.
type ClientTrust struct{}

func (ClientTrust) Verify([]Line, float64) error { return nil }

// CatalogTotal recomputes the total from catalog unit prices and rejects
// claims outside the tolerance. Decimal arithmetic avoids accumulating
// float error across lines.
type CatalogTotal struct {
	Tolerance float64
}

func (v CatalogTotal) Verify(lines []Line, claimedTotal float64) error {
	total := decimal.Zero
	for _, line := range lines {
		unit := decimal.NewFromFloat(line.UnitPrice)
		total = total.Add(unit.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	diff := total.Sub(decimal.NewFromFloat(claimedTotal)).Abs()
	if diff.GreaterThan(decimal.NewFromFloat(v.Tolerance)) {
		return ErrTotalMismatch
	}
	return nil
}
