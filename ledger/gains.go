package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fifotax/fifotax/date"
	"github.com/fifotax/fifotax/util"
)

// ClassifyHoldingPeriod applies the one year long-term threshold: disposals
// strictly within a calendar year of acquisition are short term.
func ClassifyHoldingPeriod(acquired date.Date, disposed date.Date) HoldingPeriod {
	if disposed.Before(acquired.AddYears(1)) {
		return SHORT_TERM
	}
	return LONG_TERM
}

// AcquisitionCost is the full basis of a buy: share value plus commission.
func AcquisitionCost(shares, amountPerShare, commission decimal.Decimal) decimal.Decimal {
	return shares.Mul(amountPerShare).Add(commission)
}

// SellProceeds values the matched portion of a sell: share value minus the
// commission prorated over the sold shares. Matching the whole sale carries
// the whole commission, with no division involved.
func SellProceeds(tx *Tx, matched decimal.Decimal) decimal.Decimal {
	return matched.Mul(tx.AmountPerShare).
		Sub(prorate(tx.Commission, matched, tx.Shares))
}

func prorate(amount, part, whole decimal.Decimal) decimal.Decimal {
	if part.Equal(whole) {
		return amount
	}
	return amount.Mul(part).Div(whole)
}

// GainsSummary totals a set of closed-lot records. Gain and Loss accumulate
// the positive and negative records separately, Loss as a positive number;
// Net is Gain - Loss. The short/long term nets split Net by holding period.
type GainsSummary struct {
	Proceeds     decimal.Decimal
	Cost         decimal.Decimal
	Gain         decimal.Decimal
	Loss         decimal.Decimal
	Net          decimal.Decimal
	ShortTermNet decimal.Decimal
	LongTermNet  decimal.Decimal
}

func SummarizeGains(records []*ClosedLot) *GainsSummary {
	s := &GainsSummary{}
	for _, r := range records {
		s.Proceeds = s.Proceeds.Add(r.Proceeds)
		s.Cost = s.Cost.Add(r.Cost)
		gain := r.Gain()
		if gain.IsNegative() {
			s.Loss = s.Loss.Add(gain.Neg())
		} else {
			s.Gain = s.Gain.Add(gain)
		}
		if r.Period == LONG_TERM {
			s.LongTermNet = s.LongTermNet.Add(gain)
		} else {
			s.ShortTermNet = s.ShortTermNet.Add(gain)
		}
	}
	s.Net = s.Gain.Sub(s.Loss)
	return s
}

// GainsByYear buckets records by disposal year and summarizes each bucket.
func GainsByYear(records []*ClosedLot) map[int]*GainsSummary {
	recsByYear := map[int][]*ClosedLot{}
	for _, r := range records {
		year := r.DisposeDate.Year()
		recsByYear[year] = append(recsByYear[year], r)
	}
	summaries := make(map[int]*GainsSummary, len(recsByYear))
	for year, recs := range recsByYear {
		summaries[year] = SummarizeGains(recs)
	}
	return summaries
}

func YearsSorted(byYear map[int]*GainsSummary) []int {
	years := util.MapKeys(byYear)
	sort.Ints(years)
	return years
}
