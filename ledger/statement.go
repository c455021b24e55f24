package ledger

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fifotax/fifotax/util"
)

// Statement aggregates one run's activity across securities: a LotLedger
// per security code, created lazily on first reference, plus every
// closed-lot record produced so far in production order. Build one per run
// and discard it after reporting. Not safe for concurrent use.
type Statement struct {
	ledgers *util.DefaultMap[string, *LotLedger]
	reports []*ClosedLot
	numTxs  int
}

func NewStatement() *Statement {
	return &Statement{
		ledgers: util.NewDefaultMap(func(security string) *LotLedger {
			return NewLotLedger(security)
		}),
	}
}

// AddTx routes a transaction to its security's ledger and accumulates the
// closed lots it produces. A sell for a never-seen code gets a fresh empty
// ledger and fails its holdings check. Errors carry the 1-based index of
// the transaction within the run.
func (s *Statement) AddTx(security string, tx *Tx) error {
	s.numTxs++
	closed, err := s.ledgers.Get(security).AddTx(tx)
	if err != nil {
		return fmt.Errorf("transaction #%d: %w", s.numTxs, err)
	}
	s.reports = append(s.reports, closed...)
	return nil
}

// Split applies a stock split to the open lots of security. Splitting a
// code with no transaction history is rejected; there is nothing to rescale
// and it almost certainly means a typoed code.
func (s *Statement) Split(security string, multiplier decimal.Decimal) error {
	ledger, ok := s.ledgers.GetIfSet(security)
	if !ok {
		return &UnknownSecurityError{Security: security}
	}
	return ledger.ApplySplit(multiplier)
}

// GetReports returns the closed-lot records accumulated so far, in the
// order they were produced. The result is a copy: calling again without
// intervening mutation yields an equal sequence, and callers may re-sort
// freely.
func (s *Statement) GetReports() []*ClosedLot {
	reports := make([]*ClosedLot, len(s.reports))
	copy(reports, s.reports)
	return reports
}

func (s *Statement) NumReports() int {
	return len(s.reports)
}

func (s *Statement) NumTxs() int {
	return s.numTxs
}

func (s *Statement) Securities() []string {
	secs := s.ledgers.Keys()
	sort.Strings(secs)
	return secs
}

// Ledger returns the ledger for security, or nil if the code has never been
// referenced.
func (s *Statement) Ledger(security string) *LotLedger {
	ledger, ok := s.ledgers.GetIfSet(security)
	if !ok {
		return nil
	}
	return ledger
}

// OpenPosition is the open-lot state of one security.
type OpenPosition struct {
	Security string
	Lots     []Lot
	Quantity decimal.Decimal
	Cost     decimal.Decimal
}

// OpenPositions reports the securities still holding shares, sorted by
// code, with their open lots oldest first.
func (s *Statement) OpenPositions() []*OpenPosition {
	positions := make([]*OpenPosition, 0, s.ledgers.Len())
	for _, sec := range s.Securities() {
		ledger, _ := s.ledgers.GetIfSet(sec)
		if ledger.NumOpenLots() == 0 {
			continue
		}
		positions = append(positions, &OpenPosition{
			Security: sec,
			Lots:     ledger.OpenLots(),
			Quantity: ledger.OpenQuantity(),
			Cost:     ledger.OpenCost(),
		})
	}
	return positions
}
