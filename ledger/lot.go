package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/fifotax/fifotax/date"
	"github.com/fifotax/fifotax/util"
)

// Lot is an open slice of shares from a single buy. Cost holds the TOTAL
// remaining acquisition cost (buy commission included) rather than a
// per-share basis, so split rescaling and partial consumption never lose
// value to division rounding. A Lot belongs to exactly one LotLedger and is
// reduced in place until exhausted.
type Lot struct {
	AcquireDate date.Date
	Quantity    decimal.Decimal
	Cost        decimal.Decimal
}

func newLot(tx *Tx) *Lot {
	return &Lot{
		AcquireDate: tx.TradeDate,
		Quantity:    tx.Shares,
		Cost:        AcquisitionCost(tx.Shares, tx.AmountPerShare, tx.Commission),
	}
}

// CostPerShare is for display only. Internal accounting always works on the
// total Cost.
func (l *Lot) CostPerShare() decimal.Decimal {
	if l.Quantity.IsZero() {
		return decimal.Zero
	}
	return l.Cost.Div(l.Quantity)
}

// reduce removes q shares from the lot and returns their share of the cost.
// A full reduction transfers the exact remaining Cost, so no basis is ever
// stranded in rounding residue.
func (l *Lot) reduce(q decimal.Decimal) decimal.Decimal {
	util.Assertf(q.IsPositive() && q.LessThanOrEqual(l.Quantity),
		"Lot.reduce: %s is not in (0, %s]\n", q, l.Quantity)
	if q.Equal(l.Quantity) {
		cost := l.Cost
		l.Quantity = decimal.Zero
		l.Cost = decimal.Zero
		return cost
	}
	cost := l.Cost.Mul(q).Div(l.Quantity)
	l.Quantity = l.Quantity.Sub(q)
	l.Cost = l.Cost.Sub(cost)
	return cost
}

// applySplit rescales the share count. Cost is untouched: total basis is
// invariant across a split, and the per-share basis implicitly divides by
// the multiplier.
func (l *Lot) applySplit(multiplier decimal.Decimal) {
	l.Quantity = l.Quantity.Mul(multiplier)
}
