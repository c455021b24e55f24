package ledger

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fifotax/fifotax/util"
)

// Schedule NEC (Form 1040-NR) column headings, kept verbatim from the form
// so the emitted CSV can be transcribed straight onto it.
var NecHeader = []string{
	"(a) Kind of property and description\n" +
		"(if necessary, attach statement of\n" +
		"descriptive details not shown below)",
	"(b) Date acquired\nmm/dd/yyyy",
	"(c) Date sold\nmm/dd/yyyy",
	"(d) Sales price",
	"(e) Cost or\nother basis",
	"(f) LOSS\nIf (e) is more than (d),\nsubtract (d) from (e).",
	"(g) GAIN\nIf (d) is more than (e),\nsubtract (e) from (d).",
}

const necDateFormat = "01/02/2006"

// SortForReport orders records for presentation: security, then acquisition
// date, then disposal date. Production order breaks ties.
func SortForReport(records []*ClosedLot) []*ClosedLot {
	sorted := make([]*ClosedLot, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Security != b.Security {
			return a.Security < b.Security
		}
		if !a.AcquireDate.Equal(b.AcquireDate) {
			return a.AcquireDate.Before(b.AcquireDate)
		}
		return a.DisposeDate.Before(b.DisposeDate)
	})
	return sorted
}

// MergeSameTrade coalesces records belonging to the same acquisition and
// disposal dates of the same security into single rows, summing quantity,
// cost and proceeds. The holding period is identical across merged records
// since both dates are. Records are sorted with SortForReport first, so
// slices of one logical trade merge no matter how the sells interleaved.
// Input records are never modified.
func MergeSameTrade(records []*ClosedLot) []*ClosedLot {
	sorted := SortForReport(records)
	merged := make([]*ClosedLot, 0, len(sorted))
	for _, r := range sorted {
		if n := len(merged); n > 0 && merged[n-1].SameTrade(r) {
			acc := merged[n-1]
			acc.Quantity = acc.Quantity.Add(r.Quantity)
			acc.Cost = acc.Cost.Add(r.Cost)
			acc.Proceeds = acc.Proceeds.Add(r.Proceeds)
			continue
		}
		cp := *r
		merged = append(merged, &cp)
	}
	return merged
}

// NecRenderTable shapes closed-lot records into Schedule NEC rows. descs
// maps security codes to instrument descriptions; codes without an entry
// fall back to the bare code. Exactly one of the loss and gain columns is
// populated per row (a zero gain lands in the gain column). The footer
// carries the line 16 style totals.
func NecRenderTable(
	records []*ClosedLot, descs map[string]string, merge bool,
	renderFullValues bool) *RenderTable {

	if merge {
		records = MergeSameTrade(records)
	} else {
		records = SortForReport(records)
	}

	ph := _PrintHelper{PrintAllDecimals: renderFullValues}
	table := &RenderTable{Header: NecHeader}

	totalSales := decimal.Zero
	totalCosts := decimal.Zero
	totalLoss := decimal.Zero
	totalGain := decimal.Zero

	for _, r := range records {
		desc, ok := descs[r.Security]
		if !ok {
			desc = r.Security
		}
		gain := r.Gain()
		lossStr := util.Tern(gain.IsNegative(), ph.CurrStr(gain.Neg()), "")
		gainStr := util.Tern(gain.IsNegative(), "", ph.CurrStr(gain))

		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("%s - %s shares", desc, r.Quantity),
			r.AcquireDate.Format(necDateFormat),
			r.DisposeDate.Format(necDateFormat),
			ph.CurrStr(r.Proceeds),
			ph.CurrStr(r.Cost),
			lossStr,
			gainStr,
		})

		totalSales = totalSales.Add(r.Proceeds)
		totalCosts = totalCosts.Add(r.Cost)
		if gain.IsNegative() {
			totalLoss = totalLoss.Add(gain.Neg())
		} else {
			totalGain = totalGain.Add(gain)
		}
	}

	table.Footer = []string{
		"Total", "", "",
		ph.CurrStr(totalSales),
		ph.CurrStr(totalCosts),
		ph.CurrStr(totalLoss),
		ph.CurrStr(totalGain),
	}
	return table
}
