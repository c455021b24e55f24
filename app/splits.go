package app

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fifotax/fifotax/date"
	"github.com/fifotax/fifotax/ledger"
	"github.com/fifotax/fifotax/util"
)

// SplitEvent is one entry of the stock-split side file: a JSON list of
// {"date": "2006-01-02", "symbol": "SYM", "multiplier": "2"} objects.
// Splits are not part of Tiger activity statements, so the user supplies
// them out of band.
type SplitEvent struct {
	Date       date.Date
	Symbol     string
	Multiplier decimal.Decimal
}

type rawSplitEvent struct {
	Date       string          `json:"date"`
	Symbol     string          `json:"symbol"`
	Multiplier decimal.Decimal `json:"multiplier"`
}

// LoadSplits parses and validates the split side file, returning the events
// sorted by date (input order on ties).
func LoadSplits(reader io.Reader) ([]*SplitEvent, error) {
	var raws []rawSplitEvent
	jsonDec := json.NewDecoder(reader)
	jsonDec.DisallowUnknownFields()
	if err := jsonDec.Decode(&raws); err != nil {
		return nil, fmt.Errorf("Failed to parse splits file: %v", err)
	}

	seen := util.NewSet[string]()
	events := make([]*SplitEvent, 0, len(raws))
	for i, raw := range raws {
		if raw.Symbol == "" {
			return nil, fmt.Errorf("Splits file entry %d has no symbol", i+1)
		}
		d, err := date.Parse(date.DefaultFormat, raw.Date)
		if err != nil {
			return nil, fmt.Errorf("Splits file entry %d for %s: %v", i+1, raw.Symbol, err)
		}
		if !raw.Multiplier.IsPositive() {
			return nil, fmt.Errorf(
				"Splits file entry %d for %s: multiplier %s must be positive",
				i+1, raw.Symbol, raw.Multiplier)
		}
		key := raw.Symbol + "@" + d.String()
		if seen.Has(key) {
			return nil, fmt.Errorf(
				"Splits file has multiple entries for %s on %v", raw.Symbol, d)
		}
		seen.Add(key)
		events = append(events, &SplitEvent{
			Date: d, Symbol: raw.Symbol, Multiplier: raw.Multiplier})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	return events, nil
}

// splitCursor walks the date-sorted split events alongside the transaction
// stream.
type splitCursor struct {
	events []*SplitEvent
	next   int
}

// applyThrough applies every not-yet-applied split dated on or before
// cutoff. A split sits at the start of its day: a transaction on the same
// date processes after it.
func (c *splitCursor) applyThrough(stmt *ledger.Statement, cutoff date.Date) error {
	for c.next < len(c.events) && !c.events[c.next].Date.After(cutoff) {
		ev := c.events[c.next]
		if err := stmt.Split(ev.Symbol, ev.Multiplier); err != nil {
			return fmt.Errorf("split of %s on %v: %w", ev.Symbol, ev.Date, err)
		}
		c.next++
	}
	return nil
}

// applyRemaining applies the splits dated after the final transaction.
// They emit no reports but still rescale the open holdings.
func (c *splitCursor) applyRemaining(stmt *ledger.Statement) error {
	for c.next < len(c.events) {
		ev := c.events[c.next]
		if err := stmt.Split(ev.Symbol, ev.Multiplier); err != nil {
			return fmt.Errorf("split of %s on %v: %w", ev.Symbol, ev.Date, err)
		}
		c.next++
	}
	return nil
}
