package outfmt

import (
	"fmt"
	"io"

	"github.com/fifotax/fifotax/ledger"
)

type STDWriter struct {
	w io.Writer
}

func NewSTDWriter(w io.Writer) *STDWriter {
	return &STDWriter{
		w: w,
	}
}

// Write implements io.Writer. tablewriter cannot surface write errors, so
// they panic here instead of vanishing.
func (w *STDWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	if err != nil {
		panic(fmt.Errorf("STDWriter.Write: %w", err))
	}
	return n, err
}

// PrintRenderTable implements ReportWriter.
func (w *STDWriter) PrintRenderTable(outType OutputType, name string, tableModel *ledger.RenderTable) error {
	var title string
	switch outType {
	case NecReport:
		title = fmt.Sprintf("Schedule NEC rows for %s", name)
	case FileGains:
		title = fmt.Sprintf("Totals for %s", name)
	case AnnualGains:
		title = "Annual Gains"
	case Holdings:
		title = "Open Holdings"
	default:
		panic(fmt.Sprint("OutputType ", outType, " is not implemented"))
	}
	ledger.PrintRenderTable(title, tableModel, w)

	fmt.Fprintln(w, "")
	return nil
}
