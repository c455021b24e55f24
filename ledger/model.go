package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/fifotax/fifotax/date"
)

type TxAction int

const (
	NO_ACTION TxAction = iota
	BUY
	SELL
)

func (a TxAction) String() string {
	switch a {
	case BUY:
		return "Buy"
	case SELL:
		return "Sell"
	default:
		return "-"
	}
}

// HoldingPeriod classifies a closed lot by the time between acquisition
// and disposal, relative to the one year long-term threshold.
type HoldingPeriod int

const (
	SHORT_TERM HoldingPeriod = iota
	LONG_TERM
)

func (p HoldingPeriod) String() string {
	switch p {
	case LONG_TERM:
		return "Long"
	default:
		return "Short"
	}
}

// Tx is a single trade event. Shares is always positive; Action carries the
// direction. Commission is the total fee attributable to the trade (it may
// be negative, for netted rebates). Txs are never modified after ingestion.
type Tx struct {
	Action         TxAction
	Shares         decimal.Decimal
	AmountPerShare decimal.Decimal
	Commission     decimal.Decimal
	TradeDate      date.Date
}

// ClosedLot is the realized result of matching (part of) a sell against
// (part of) an open lot. Cost is the acquisition basis of the matched
// shares (buy commission included); Proceeds is the matched share value net
// of the attributable sell commission. Immutable once emitted.
type ClosedLot struct {
	Security    string
	Quantity    decimal.Decimal
	AcquireDate date.Date
	DisposeDate date.Date
	Cost        decimal.Decimal
	Proceeds    decimal.Decimal
	Period      HoldingPeriod
}

func (r *ClosedLot) Gain() decimal.Decimal {
	return r.Proceeds.Sub(r.Cost)
}

// SameTrade reports whether two records came from the same acquisition and
// disposal dates of the same security, and so can render as one report row.
func (r *ClosedLot) SameTrade(other *ClosedLot) bool {
	return r.Security == other.Security &&
		r.AcquireDate.Equal(other.AcquireDate) &&
		r.DisposeDate.Equal(other.DisposeDate)
}
