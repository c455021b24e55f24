package tiger

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fifotax/fifotax/date"
	"github.com/fifotax/fifotax/ledger"
	"github.com/fifotax/fifotax/log"
)

const (
	tradesSection      = "Trades"
	instrumentsSection = "Financial Instrument Information"
	dataMarker         = "DATA"

	// The instrument section carries its symbol and description at fixed
	// positions.
	instSymbolCol = 4
	instDescCol   = 6
)

// Trade is one execution row from the Trades section of an activity
// statement, normalized to exchange (US Eastern) time. Quantity is signed:
// buys positive, sells negative. Fees is the sum of the commission/charge
// columns as a positive cost.
type Trade struct {
	Symbol   string
	Time     time.Time
	Quantity decimal.Decimal
	Price    decimal.Decimal
	Fees     decimal.Decimal
}

// Tx converts the execution to a ledger transaction, at day granularity.
func (t *Trade) Tx() *ledger.Tx {
	action := ledger.BUY
	shares := t.Quantity
	if shares.IsNegative() {
		action = ledger.SELL
		shares = shares.Neg()
	}
	return &ledger.Tx{
		Action:         action,
		Shares:         shares,
		AmountPerShare: t.Price,
		Commission:     t.Fees,
		TradeDate:      date.NewFromTime(t.Time),
	}
}

// StatementData is everything extracted from one activity statement.
type StatementData struct {
	// Trades, sorted by trade time. Executions at the same time keep their
	// statement order.
	Trades []*Trade
	// Security code to "SYM (DESCRIPTION)" strings, from the Financial
	// Instrument Information section.
	Descriptions map[string]string
}

type colIndex map[string]int

func parseTradeHeaderRow(row []string) colIndex {
	ci := make(colIndex, len(row))
	for i, col := range row {
		if col != "" {
			ci[col] = i
		}
	}
	return ci
}

func (ci colIndex) get(row []string, name string) (string, error) {
	i, ok := ci[name]
	if !ok {
		return "", fmt.Errorf("no '%s' column in the current Trades header", name)
	}
	if i >= len(row) {
		return "", fmt.Errorf("row is too short for the '%s' column (%d)", name, i)
	}
	return row[i], nil
}

// Section header rows repeat the section name with the next three cells
// empty. They can re-appear mid file when the column format changes.
func isTradeHeaderRow(row []string) bool {
	return row[1] == "" && row[2] == "" && row[3] == ""
}

func parseDecimalCell(data string) (decimal.Decimal, error) {
	data = strings.TrimSpace(data)
	if data == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(data)
}

var gmt8 = time.FixedZone("GMT+8", 8*60*60)

const (
	tradeTimeLayout = "2006-01-02\n15:04:05"
	gmt8Suffix      = ", GMT+8"
	easternSuffix   = ", US/Eastern"
)

// Trade times embed a newline between date and time, plus a zone suffix
// which has varied across statement revisions.
func parseTradeTime(data string, eastern *time.Location) (time.Time, error) {
	if strings.HasSuffix(data, gmt8Suffix) {
		t, err := time.ParseInLocation(
			tradeTimeLayout, strings.TrimSuffix(data, gmt8Suffix), gmt8)
		if err != nil {
			return time.Time{}, err
		}
		return t.In(eastern), nil
	}
	if strings.HasSuffix(data, easternSuffix) {
		return time.ParseInLocation(
			tradeTimeLayout, strings.TrimSuffix(data, easternSuffix), eastern)
	}
	return time.Time{}, fmt.Errorf("unrecognized trade time format '%s'", data)
}

// The fee and charge columns vary across statement revisions, but always
// sit between Amount and Realized P/L. Tiger lists them as negative
// amounts; their sum is negated into a positive cost.
func sumFeeColumns(row []string, ci colIndex) (decimal.Decimal, error) {
	amtIdx, ok := ci["Amount"]
	if !ok {
		return decimal.Zero, fmt.Errorf("no 'Amount' column in the current Trades header")
	}
	rplIdx, ok := ci["Realized P/L"]
	if !ok {
		return decimal.Zero, fmt.Errorf("no 'Realized P/L' column in the current Trades header")
	}
	sum := decimal.Zero
	for i := amtIdx + 1; i < rplIdx; i++ {
		if i >= len(row) {
			return decimal.Zero, fmt.Errorf("row is too short for the fee columns (%d)", i)
		}
		v, err := parseDecimalCell(row[i])
		if err != nil {
			return decimal.Zero, fmt.Errorf("Error parsing fee column %d: %v", i, err)
		}
		sum = sum.Add(v)
	}
	return sum.Neg(), nil
}

func parseTrade(
	row []string, ci colIndex, symbol string,
	eastern *time.Location) (*Trade, error) {

	qtyStr, err := ci.get(row, "Quantity")
	if err != nil {
		return nil, err
	}
	qty, err := parseDecimalCell(qtyStr)
	if err != nil {
		return nil, fmt.Errorf("Error parsing quantity: %v", err)
	}

	priceStr, err := ci.get(row, "Trade Price")
	if err != nil {
		return nil, err
	}
	price, err := parseDecimalCell(priceStr)
	if err != nil {
		return nil, fmt.Errorf("Error parsing trade price: %v", err)
	}

	fees, err := sumFeeColumns(row, ci)
	if err != nil {
		return nil, err
	}

	timeStr, err := ci.get(row, "Trade Time")
	if err != nil {
		return nil, err
	}
	tradeTime, err := parseTradeTime(timeStr, eastern)
	if err != nil {
		return nil, fmt.Errorf("Error parsing trade time: %v", err)
	}

	return &Trade{
		Symbol:   symbol,
		Time:     tradeTime,
		Quantity: qty,
		Price:    price,
		Fees:     fees,
	}, nil
}

// ParseStatement reads one Tiger Brokers activity statement. Statements
// stack sections of unequal-width rows; only the Trades and Financial
// Instrument Information sections are consumed. Within Trades, DATA rows
// carrying a symbol are per-symbol summary rows; the execution rows under
// them leave the symbol cell empty. desc names the source (eg. the file
// path) for error messages.
func ParseStatement(reader io.Reader, desc string) (*StatementData, error) {
	eastern, err := time.LoadLocation("America/New_York")
	if err != nil {
		return nil, fmt.Errorf("Loading exchange time zone: %v", err)
	}

	csvR := csv.NewReader(reader)
	csvR.FieldsPerRecord = -1
	records, err := csvR.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("Failed to parse CSV file %s: %v", desc, err)
	}

	data := &StatementData{Descriptions: map[string]string{}}
	var ci colIndex
	curSymbol := ""

	for i, row := range records {
		lineNum := i + 1
		if len(row) < 4 {
			continue
		}
		switch row[0] {
		case tradesSection:
			if isTradeHeaderRow(row) {
				ci = parseTradeHeaderRow(row)
				continue
			}
			if row[3] != dataMarker {
				continue
			}
			if ci == nil {
				return nil, fmt.Errorf(
					"Error parsing %s at line %d: Trades data row before any Trades header",
					desc, lineNum)
			}
			symbol, err := ci.get(row, "Symbol")
			if err != nil {
				return nil, fmt.Errorf("Error parsing %s at line %d: %v", desc, lineNum, err)
			}
			if symbol != "" {
				curSymbol = symbol
				continue
			}
			if curSymbol == "" {
				return nil, fmt.Errorf(
					"Error parsing %s at line %d: execution row before any symbol summary row",
					desc, lineNum)
			}
			trade, err := parseTrade(row, ci, curSymbol, eastern)
			if err != nil {
				return nil, fmt.Errorf("Error parsing %s at line %d: %v", desc, lineNum, err)
			}
			log.Tracef("tiger", "%s line %d: %s %s @ %s fees %s at %v",
				desc, lineNum, trade.Symbol, trade.Quantity, trade.Price,
				trade.Fees, trade.Time)
			data.Trades = append(data.Trades, trade)
		case instrumentsSection:
			if row[3] != dataMarker {
				continue
			}
			if len(row) <= instDescCol {
				return nil, fmt.Errorf(
					"Error parsing %s at line %d: instrument row has no description column",
					desc, lineNum)
			}
			sym := row[instSymbolCol]
			data.Descriptions[sym] = fmt.Sprintf("%s (%s)", sym, row[instDescCol])
		}
	}

	sort.SliceStable(data.Trades, func(i, j int) bool {
		return data.Trades[i].Time.Before(data.Trades[j].Time)
	})
	return data, nil
}
