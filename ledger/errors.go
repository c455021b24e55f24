package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fifotax/fifotax/date"
)

// InsufficientSharesError rejects a sell whose quantity exceeds the open
// holdings of its security. The ledger is left untouched.
type InsufficientSharesError struct {
	Security  string
	TradeDate date.Date
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientSharesError) Error() string {
	return fmt.Sprintf(
		"Sell order on %v of %s shares of %s is more than the current holdings (%s)",
		e.TradeDate, e.Requested, e.Security, e.Available)
}

// UnknownSecurityError rejects a split for a security with no recorded
// transactions.
type UnknownSecurityError struct {
	Security string
}

func (e *UnknownSecurityError) Error() string {
	return fmt.Sprintf("No transactions recorded for security %s", e.Security)
}

type InvalidSplitMultiplierError struct {
	Security   string
	Multiplier decimal.Decimal
}

func (e *InvalidSplitMultiplierError) Error() string {
	return fmt.Sprintf(
		"Invalid split multiplier %s for %s: must be positive",
		e.Multiplier, e.Security)
}

// TxValidationError rejects a malformed transaction at ingestion. The
// engine never infers or corrects bad input.
type TxValidationError struct {
	Security string
	Reason   string
}

func (e *TxValidationError) Error() string {
	return fmt.Sprintf("Invalid transaction for %s: %s", e.Security, e.Reason)
}
