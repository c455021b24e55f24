package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fifotax/fifotax/date"
	"github.com/fifotax/fifotax/util"
)

// LotLedger tracks the open lots of one security as a FIFO queue: buys
// append at the tail, sells consume from the head, oldest acquisition
// first. Events must arrive in non-decreasing date order; the ledger
// rejects stragglers rather than reordering them.
type LotLedger struct {
	security string
	lots     []*Lot
	lastDate date.Date
}

func NewLotLedger(security string) *LotLedger {
	return &LotLedger{security: security}
}

func (l *LotLedger) Security() string {
	return l.security
}

func (l *LotLedger) checkTx(tx *Tx) error {
	var reason string
	if tx.Action == NO_ACTION {
		reason = "no action (Buy or Sell)"
	} else if (tx.TradeDate == date.Date{}) {
		reason = "no trade date"
	} else if !tx.Shares.IsPositive() {
		reason = fmt.Sprintf("non-positive share count (%s)", tx.Shares)
	} else if tx.AmountPerShare.IsNegative() {
		reason = fmt.Sprintf("negative amount per share (%s)", tx.AmountPerShare)
	} else if tx.TradeDate.Before(l.lastDate) {
		reason = fmt.Sprintf(
			"trade date %v precedes the last processed date %v; "+
				"transactions must be supplied in non-decreasing date order",
			tx.TradeDate, l.lastDate)
	}
	if reason != "" {
		return &TxValidationError{Security: l.security, Reason: reason}
	}
	return nil
}

// AddTx ingests one transaction. Buys open a new lot at the queue tail and
// return no records. Sells consume the oldest lots first and return one
// ClosedLot per matched slice. A sell larger than the open holdings fails
// with InsufficientSharesError before any lot is touched, so a rejected
// transaction always leaves the ledger exactly as it was.
func (l *LotLedger) AddTx(tx *Tx) ([]*ClosedLot, error) {
	if err := l.checkTx(tx); err != nil {
		return nil, err
	}
	switch tx.Action {
	case BUY:
		l.lastDate = tx.TradeDate
		l.lots = append(l.lots, newLot(tx))
		return nil, nil
	case SELL:
		available := l.OpenQuantity()
		if tx.Shares.GreaterThan(available) {
			return nil, &InsufficientSharesError{
				Security:  l.security,
				TradeDate: tx.TradeDate,
				Requested: tx.Shares,
				Available: available,
			}
		}
		l.lastDate = tx.TradeDate
		return l.sellFifo(tx), nil
	}
	util.Assertf(false, "LotLedger.AddTx: unhandled action %v\n", tx.Action)
	return nil, nil
}

// sellFifo walks the queue head first. The caller has already verified that
// the open holdings cover the sale.
func (l *LotLedger) sellFifo(tx *Tx) []*ClosedLot {
	closed := make([]*ClosedLot, 0, 1)
	outstanding := tx.Shares
	for outstanding.IsPositive() {
		util.Assertf(len(l.lots) > 0,
			"sellFifo: lot queue for %s exhausted with %s shares unmatched\n",
			l.security, outstanding)
		head := l.lots[0]
		q := decimal.Min(head.Quantity, outstanding)
		acquired := head.AcquireDate
		cost := head.reduce(q)
		if head.Quantity.IsZero() {
			l.lots = l.lots[1:]
		}
		closed = append(closed, &ClosedLot{
			Security:    l.security,
			Quantity:    q,
			AcquireDate: acquired,
			DisposeDate: tx.TradeDate,
			Cost:        cost,
			Proceeds:    SellProceeds(tx, q),
			Period:      ClassifyHoldingPeriod(acquired, tx.TradeDate),
		})
		outstanding = outstanding.Sub(q)
	}
	return closed
}

// ApplySplit rescales every currently open lot. Lots bought later are
// unaffected; they arrive at post-split prices. A multiplier of 1 is a
// legal no-op.
func (l *LotLedger) ApplySplit(multiplier decimal.Decimal) error {
	if !multiplier.IsPositive() {
		return &InvalidSplitMultiplierError{
			Security: l.security, Multiplier: multiplier}
	}
	for _, lot := range l.lots {
		lot.applySplit(multiplier)
	}
	return nil
}

func (l *LotLedger) OpenQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, lot := range l.lots {
		total = total.Add(lot.Quantity)
	}
	return total
}

func (l *LotLedger) OpenCost() decimal.Decimal {
	total := decimal.Zero
	for _, lot := range l.lots {
		total = total.Add(lot.Cost)
	}
	return total
}

// OpenLots returns copies of the open lots, oldest first.
func (l *LotLedger) OpenLots() []Lot {
	lots := make([]Lot, 0, len(l.lots))
	for _, lot := range l.lots {
		lots = append(lots, *lot)
	}
	return lots
}

func (l *LotLedger) NumOpenLots() int {
	return len(l.lots)
}
