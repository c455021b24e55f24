package ledger

import (
	"fmt"
	"io"

	tw "github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
)

type _PrintHelper struct {
	PrintAllDecimals bool
}

func (h _PrintHelper) CurrStr(val decimal.Decimal) string {
	if h.PrintAllDecimals {
		return val.String()
	}
	return val.StringFixed(2)
}

func (h _PrintHelper) DollarStr(val decimal.Decimal) string {
	return "$" + h.CurrStr(val)
}

func (h _PrintHelper) PlusMinusDollar(val decimal.Decimal, showPlus bool) string {
	if val.IsNegative() {
		return fmt.Sprintf("-$%s", h.CurrStr(val.Neg()))
	}
	plus := ""
	if showPlus {
		plus = "+"
	}
	return fmt.Sprintf("%s$%s", plus, h.CurrStr(val))
}

type RenderTable struct {
	Header []string
	Rows   [][]string
	Footer []string
	Notes  []string
	Errors []error
}

// RenderGainsTable lays out one GainsSummary in the shape of the console
// totals: cost basis and sales, then the loss/gain decomposition and nets.
func RenderGainsTable(summary *GainsSummary, renderFullValues bool) *RenderTable {
	ph := _PrintHelper{PrintAllDecimals: renderFullValues}

	table := &RenderTable{}
	table.Header = []string{"Total", "Amount"}
	table.Rows = [][]string{
		{"Costs", ph.DollarStr(summary.Cost)},
		{"Sales", ph.DollarStr(summary.Proceeds)},
		{"Loss", ph.DollarStr(summary.Loss)},
		{"Gain", ph.DollarStr(summary.Gain)},
		{"Profit", ph.PlusMinusDollar(summary.Net, false)},
		{"Short term net", ph.PlusMinusDollar(summary.ShortTermNet, false)},
		{"Long term net", ph.PlusMinusDollar(summary.LongTermNet, false)},
	}
	return table
}

/*
RenderAnnualGainsTable generates a RenderTable that will render out to this:

	| Year      | Net Gain | Short Term | Long Term |
	+-----------+----------+------------+-----------+
	| 2022      | xxxx.xx  | xxxx.xx    | xxxx.xx   |
	| 2023      | xxxx.xx  | xxxx.xx    | xxxx.xx   |
	| All years | xxxx.xx  | xxxx.xx    | xxxx.xx   |
*/
func RenderAnnualGainsTable(
	byYear map[int]*GainsSummary, renderFullValues bool) *RenderTable {

	ph := _PrintHelper{PrintAllDecimals: renderFullValues}

	table := &RenderTable{}
	table.Header = []string{"Year", "Net Gain", "Short Term", "Long Term"}

	allNet := decimal.Zero
	allShort := decimal.Zero
	allLong := decimal.Zero
	for _, year := range YearsSorted(byYear) {
		summary := byYear[year]
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("%d", year),
			ph.PlusMinusDollar(summary.Net, false),
			ph.PlusMinusDollar(summary.ShortTermNet, false),
			ph.PlusMinusDollar(summary.LongTermNet, false),
		})
		allNet = allNet.Add(summary.Net)
		allShort = allShort.Add(summary.ShortTermNet)
		allLong = allLong.Add(summary.LongTermNet)
	}
	table.Rows = append(table.Rows, []string{
		"All years",
		ph.PlusMinusDollar(allNet, false),
		ph.PlusMinusDollar(allShort, false),
		ph.PlusMinusDollar(allLong, false),
	})

	return table
}

// RenderHoldingsTable lays out the still-open lots, one row per lot, for
// carrying a year's end state forward.
func RenderHoldingsTable(
	positions []*OpenPosition, renderFullValues bool) *RenderTable {

	ph := _PrintHelper{PrintAllDecimals: renderFullValues}

	table := &RenderTable{}
	table.Header = []string{"Security", "Acquired", "Quantity", "Cost", "Cost/Share"}

	totalCost := decimal.Zero
	for _, pos := range positions {
		for i := range pos.Lots {
			lot := &pos.Lots[i]
			table.Rows = append(table.Rows, []string{
				pos.Security,
				lot.AcquireDate.String(),
				lot.Quantity.String(),
				ph.DollarStr(lot.Cost),
				ph.DollarStr(lot.CostPerShare()),
			})
		}
		totalCost = totalCost.Add(pos.Cost)
	}
	table.Footer = []string{"Total", "", "", ph.DollarStr(totalCost), ""}

	return table
}

func PrintRenderTable(title string, tableModel *RenderTable, writer io.Writer) {
	for _, err := range tableModel.Errors {
		fmt.Fprintf(writer, "[!] %v. Printing parsed information state:\n", err)
	}
	fmt.Fprintf(writer, "%s\n", title)

	table := tw.NewWriter(writer)
	table.SetHeader(tableModel.Header)
	table.SetBorder(false)
	table.SetRowLine(true)

	for _, row := range tableModel.Rows {
		table.Append(row)
	}

	table.SetFooter(tableModel.Footer)

	table.Render()

	for _, note := range tableModel.Notes {
		fmt.Fprintln(writer, note)
	}
}
