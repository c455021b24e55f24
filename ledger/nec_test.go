package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fifotax/fifotax/ledger"
)

func TestSortForReport(t *testing.T) {
	rq := require.New(t)

	in := []*ledger.ClosedLot{
		mkRecord("FOO", "1", 5, 10, "10", "12", ledger.SHORT_TERM),
		mkRecord("BAR", "1", 6, 11, "10", "12", ledger.SHORT_TERM),
		mkRecord("FOO", "1", 4, 12, "10", "12", ledger.SHORT_TERM),
		mkRecord("FOO", "1", 4, 9, "10", "12", ledger.SHORT_TERM),
	}

	sorted := ledger.SortForReport(in)
	rq.Same(in[1], sorted[0])
	rq.Same(in[3], sorted[1])
	rq.Same(in[2], sorted[2])
	rq.Same(in[0], sorted[3])

	// The input slice keeps its order
	rq.Equal("FOO", in[0].Security)
	rq.Equal("BAR", in[1].Security)
}

func TestMergeSameTrade(t *testing.T) {
	rq := require.New(t)
	crq := NewCustomRequire(t)

	a1 := mkRecord("FOO", "3", 1, 10, "30", "45", ledger.SHORT_TERM)
	a2 := mkRecord("FOO", "2", 1, 10, "20", "30", ledger.SHORT_TERM)
	b := mkRecord("FOO", "5", 1, 11, "50", "70", ledger.SHORT_TERM)
	c := mkRecord("BAR", "5", 1, 10, "50", "70", ledger.SHORT_TERM)

	merged := ledger.MergeSameTrade([]*ledger.ClosedLot{a1, b, a2, c})
	crq.Equal([]*ledger.ClosedLot{
		mkRecord("BAR", "5", 1, 10, "50", "70", ledger.SHORT_TERM),
		mkRecord("FOO", "5", 1, 10, "50", "75", ledger.SHORT_TERM),
		mkRecord("FOO", "5", 1, 11, "50", "70", ledger.SHORT_TERM),
	}, merged)

	// Merging works on copies; the accumulated records are not modified
	crq.Equal(dec("3"), a1.Quantity)
	crq.Equal(dec("30"), a1.Cost)
	rq.NotSame(a1, merged[1])
}

func TestNecRenderTable(t *testing.T) {
	rq := require.New(t)

	records := []*ledger.ClosedLot{
		mkRecord("FOO", "2", 1, 400, "100", "150", ledger.LONG_TERM),
		mkRecord("FOO", "1", 3, 400, "60", "40", ledger.LONG_TERM),
		mkRecord("BAR", "1", 2, 20, "30", "30", ledger.SHORT_TERM),
	}
	descs := map[string]string{"FOO": "FOO (FOOCORP INC)"}

	table := ledger.NecRenderTable(records, descs, true, false)
	rq.Equal(ledger.NecHeader, table.Header)
	rq.Equal([][]string{
		// Securities without an instrument description fall back to the code
		{"BAR - 1 shares", "01/03/2021", "01/21/2021", "30.00", "30.00", "", "0.00"},
		{"FOO (FOOCORP INC) - 2 shares", "01/02/2021", "02/05/2022", "150.00", "100.00", "", "50.00"},
		{"FOO (FOOCORP INC) - 1 shares", "01/04/2021", "02/05/2022", "40.00", "60.00", "20.00", ""},
	}, table.Rows)
	rq.Equal([]string{"Total", "", "", "220.00", "190.00", "20.00", "50.00"},
		table.Footer)
}

func TestNecRenderTableMergeOption(t *testing.T) {
	rq := require.New(t)

	records := []*ledger.ClosedLot{
		mkRecord("FOO", "3", 1, 10, "30", "45", ledger.SHORT_TERM),
		mkRecord("FOO", "2", 1, 10, "20", "30", ledger.SHORT_TERM),
	}

	merged := ledger.NecRenderTable(records, nil, true, false)
	rq.Equal(1, len(merged.Rows))
	rq.Equal("FOO - 5 shares", merged.Rows[0][0])

	separate := ledger.NecRenderTable(records, nil, false, false)
	rq.Equal(2, len(separate.Rows))
	rq.Equal("FOO - 3 shares", separate.Rows[0][0])
	rq.Equal("FOO - 2 shares", separate.Rows[1][0])
	// Totals are identical either way
	rq.Equal(merged.Footer, separate.Footer)
}

func TestNecRenderTableFullValues(t *testing.T) {
	rq := require.New(t)

	records := []*ledger.ClosedLot{
		mkRecord("FOO", "1", 1, 10, "10.333333333333", "20.5", ledger.SHORT_TERM),
	}

	table := ledger.NecRenderTable(records, nil, false, true)
	rq.Equal([]string{
		"FOO - 1 shares", "01/02/2021", "01/11/2021",
		"20.5", "10.333333333333", "", "10.166666666667",
	}, table.Rows[0])
}
