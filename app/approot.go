package app

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fifotax/fifotax/app/outfmt"
	"github.com/fifotax/fifotax/ledger"
	"github.com/fifotax/fifotax/log"
	"github.com/fifotax/fifotax/tiger"
)

type DescribedReader struct {
	Desc   string
	Reader io.Reader
}

type Options struct {
	// Merge same-day partial executions of one order into a single report
	// row.
	MergeSameTrade bool
	// Also print each file's report rows to the console, not just the CSV.
	PrintNecRows bool
	// Render full decimal precision instead of rounding to cents.
	RenderFullValues bool
}

func NewOptions() Options {
	return Options{MergeSameTrade: true}
}

// reportName strips the directory and extension from a statement file's
// description, leaving the base name its reports are filed under.
func reportName(desc string) string {
	base := filepath.Base(desc)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

/* RunNecApp processes each activity statement in order through a single
 * Statement, so holdings bought in one file can be sold in a later one.
 * Splits take effect between transactions, before the first transaction
 * dated on or after the split date.
 *
 * Each input file produces a Schedule NEC table of the sales it closed
 * (written via necWriter) plus a totals table on stdWriter. After all files,
 * the aggregate per-year gains and the remaining open holdings are written
 * to stdWriter.
 *
 * A failed transaction aborts the run before its file's report is written;
 * everything already written for earlier files stays on disk.
 */
func RunNecApp(
	csvFileReaders []DescribedReader,
	splitsReader io.Reader,
	options Options,
	necWriter outfmt.ReportWriter,
	stdWriter outfmt.ReportWriter,
	errPrinter log.ErrorPrinter) (retErr error) {

	var splitEvents []*SplitEvent
	if splitsReader != nil {
		events, err := LoadSplits(splitsReader)
		if err != nil {
			errPrinter.Ln("Error:", err)
			retErr = err
			return
		}
		splitEvents = events
	}
	splits := &splitCursor{events: splitEvents}

	stmt := ledger.NewStatement()
	descs := map[string]string{}

	for _, csvReader := range csvFileReaders {
		fmt.Println("Processing:", csvReader.Desc)
		data, err := tiger.ParseStatement(csvReader.Reader, csvReader.Desc)
		if err != nil {
			errPrinter.Ln("Error:", err)
			retErr = err
			return
		}
		log.Verbosef("Parsed %d trades from %s\n", len(data.Trades), csvReader.Desc)
		for sym, d := range data.Descriptions {
			descs[sym] = d
		}

		startReports := stmt.NumReports()
		for _, trade := range data.Trades {
			tx := trade.Tx()
			if err := splits.applyThrough(stmt, tx.TradeDate); err != nil {
				errPrinter.Ln("Error:", err)
				retErr = err
				return
			}
			if err := stmt.AddTx(trade.Symbol, tx); err != nil {
				errPrinter.Ln("Error:", err)
				retErr = err
				return
			}
		}

		name := reportName(csvReader.Desc)
		fileRecords := stmt.GetReports()[startReports:]
		necTable := ledger.NecRenderTable(
			fileRecords, descs, options.MergeSameTrade, options.RenderFullValues)

		if csvWriter, ok := necWriter.(*outfmt.CSVWriter); ok {
			if fpath, err := csvWriter.FilePath(outfmt.NecReport, name); err == nil {
				fmt.Println("Storing results to:", fpath)
			}
		}
		if err := necWriter.PrintRenderTable(outfmt.NecReport, name, necTable); err != nil {
			errPrinter.Ln("Error:", err)
			retErr = err
			return
		}
		if options.PrintNecRows {
			if err := stdWriter.PrintRenderTable(outfmt.NecReport, name, necTable); err != nil {
				errPrinter.Ln("Error:", err)
				retErr = err
				return
			}
		}

		gainsTable := ledger.RenderGainsTable(
			ledger.SummarizeGains(fileRecords), options.RenderFullValues)
		if err := stdWriter.PrintRenderTable(outfmt.FileGains, name, gainsTable); err != nil {
			errPrinter.Ln("Error:", err)
			retErr = err
			return
		}
	}

	// Splits dated after the last transaction still rescale the holdings.
	if err := splits.applyRemaining(stmt); err != nil {
		errPrinter.Ln("Error:", err)
		retErr = err
		return
	}

	if records := stmt.GetReports(); len(records) > 0 {
		annualTable := ledger.RenderAnnualGainsTable(
			ledger.GainsByYear(records), options.RenderFullValues)
		if err := stdWriter.PrintRenderTable(outfmt.AnnualGains, "", annualTable); err != nil {
			errPrinter.Ln("Error:", err)
			retErr = err
			return
		}
	}

	if positions := stmt.OpenPositions(); len(positions) > 0 {
		holdingsTable := ledger.RenderHoldingsTable(positions, options.RenderFullValues)
		if err := stdWriter.PrintRenderTable(outfmt.Holdings, "", holdingsTable); err != nil {
			errPrinter.Ln("Error:", err)
			retErr = err
			return
		}
	}

	return
}
