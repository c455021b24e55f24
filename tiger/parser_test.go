package tiger_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fifotax/fifotax/ledger"
	"github.com/fifotax/fifotax/tiger"
)

const tradesHeader = "Trades,,,,Symbol,Trade Time,Quantity,Trade Price," +
	"Amount,Commission,Fee,Realized P/L"

// Statements from later years drop the separate Fee column
const tradesHeaderV2 = "Trades,,,,Symbol,Trade Time,Quantity,Trade Price," +
	"Amount,Fee,Realized P/L"

func timeCell(day string, clock string, zone string) string {
	return "\"" + day + "\n" + clock + ", " + zone + "\""
}

func summaryRow(symbol string) string {
	return "Trades,,,DATA," + symbol + ",,,,,,,"
}

func execRow(tc string, rest string) string {
	return "Trades,,,DATA,," + tc + "," + rest
}

func parseStatement(rows ...string) (*tiger.StatementData, error) {
	reader := strings.NewReader(strings.Join(rows, "\n"))
	return tiger.ParseStatement(reader, "test.csv")
}

func TestParseStatement(t *testing.T) {
	rq := require.New(t)

	data, err := parseStatement(
		"Statement,Header,Field Name,Field Value",
		"Statement,Data,BrokerName,Tiger Brokers",
		"Account Information,Data,Name,",
		tradesHeader,
		summaryRow("AAPL"),
		// Early morning GMT+8: the trade date shifts back a day in New York
		execRow(timeCell("2021-02-03", "05:00:00", "GMT+8"), "5,95,-475,-0.5,-0.25,0"),
		execRow(timeCell("2021-02-01", "22:30:00", "GMT+8"), "10,100,-1000,-1,-0.5,0"),
		"Trades,Total,,,,1500",
		summaryRow("TSLA"),
		execRow(timeCell("2021-03-01", "21:45:00", "GMT+8"), "3,600,-1800,-1,0,0"),
		tradesHeaderV2,
		"Trades,,,DATA,TIGR,,,,,,",
		"Trades,,,DATA,AAPL,,,,,,",
		execRow(timeCell("2021-07-06", "10:15:00", "US/Eastern"), "-10,150,1500,-2,0"),
		"Financial Instrument Information,,,,Symbol,,Description",
		"Financial Instrument Information,,,DATA,AAPL,,APPLE INC",
		"Financial Instrument Information,,,DATA,TSLA,,TESLA INC",
	)
	rq.Nil(err)

	expTrades := []struct {
		symbol string
		time   string
		qty    string
		price  string
		fees   string
	}{
		{"AAPL", "2021-02-01 09:30:00 -0500", "10", "100", "1.5"},
		{"AAPL", "2021-02-02 16:00:00 -0500", "5", "95", "0.75"},
		{"TSLA", "2021-03-01 08:45:00 -0500", "3", "600", "1"},
		{"AAPL", "2021-07-06 10:15:00 -0400", "-10", "150", "2"},
	}
	rq.Equal(len(expTrades), len(data.Trades))
	for i, exp := range expTrades {
		tr := data.Trades[i]
		rq.Equal(exp.symbol, tr.Symbol)
		rq.Equal(exp.time, tr.Time.Format("2006-01-02 15:04:05 -0700"))
		rq.Equal(exp.qty, tr.Quantity.String())
		rq.Equal(exp.price, tr.Price.String())
		rq.Equal(exp.fees, tr.Fees.String())
	}

	rq.Equal(map[string]string{
		"AAPL": "AAPL (APPLE INC)",
		"TSLA": "TSLA (TESLA INC)",
	}, data.Descriptions)
}

func TestTradeToTx(t *testing.T) {
	rq := require.New(t)

	data, err := parseStatement(
		tradesHeader,
		summaryRow("AAPL"),
		execRow(timeCell("2021-02-01", "22:30:00", "GMT+8"), "10,100,-1000,-1,-0.5,0"),
		execRow(timeCell("2021-07-06", "10:15:00", "US/Eastern"), "-4,150,600,-2,0,0"),
	)
	rq.Nil(err)

	buy := data.Trades[0].Tx()
	rq.Equal(ledger.BUY, buy.Action)
	rq.Equal("10", buy.Shares.String())
	rq.Equal("100", buy.AmountPerShare.String())
	rq.Equal("1.5", buy.Commission.String())
	rq.Equal("2021-02-01", buy.TradeDate.String())

	sell := data.Trades[1].Tx()
	rq.Equal(ledger.SELL, sell.Action)
	rq.Equal("4", sell.Shares.String())
	rq.Equal("2", sell.Commission.String())
	rq.Equal("2021-07-06", sell.TradeDate.String())
}

func TestParseStatementErrors(t *testing.T) {
	rq := require.New(t)

	// Execution with no symbol summary row above it
	_, err := parseStatement(
		tradesHeader,
		execRow(timeCell("2021-02-01", "22:30:00", "GMT+8"), "10,100,-1000,-1,-0.5,0"),
	)
	rq.NotNil(err)
	rq.Contains(err.Error(), "execution row before any symbol summary row")

	// Data row with no header above it
	_, err = parseStatement(
		summaryRow("AAPL"),
	)
	rq.NotNil(err)
	rq.Contains(err.Error(), "Trades data row before any Trades header")

	// Header missing a required column
	_, err = parseStatement(
		"Trades,,,,Symbol,Trade Time,Trade Price,Amount,Commission,Realized P/L",
		summaryRow("AAPL"),
		execRow(timeCell("2021-02-01", "22:30:00", "GMT+8"), "100,-1000,-1,0"),
	)
	rq.NotNil(err)
	rq.Contains(err.Error(), "no 'Quantity' column")

	// Unparseable trade time
	_, err = parseStatement(
		tradesHeader,
		summaryRow("AAPL"),
		execRow("garbage", "10,100,-1000,-1,-0.5,0"),
	)
	rq.NotNil(err)
	rq.Contains(err.Error(), "unrecognized trade time format")

	// Unparseable quantity
	_, err = parseStatement(
		tradesHeader,
		summaryRow("AAPL"),
		execRow(timeCell("2021-02-01", "22:30:00", "GMT+8"), "abc,100,-1000,-1,-0.5,0"),
	)
	rq.NotNil(err)
	rq.Contains(err.Error(), "Error parsing quantity")
}

func TestParseStatementEmptyAndIrrelevantSections(t *testing.T) {
	rq := require.New(t)

	data, err := parseStatement(
		"Statement,Header,Field Name,Field Value",
		"Deposits & Withdrawals,Data,USD,2021-01-05,Deposit,5000",
	)
	rq.Nil(err)
	rq.Equal(0, len(data.Trades))
	rq.Equal(0, len(data.Descriptions))
}
