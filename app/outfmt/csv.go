package outfmt

import (
	"encoding/csv"
	"fmt"
	"os"
	"path"

	"github.com/fifotax/fifotax/ledger"
)

type CSVWriter struct {
	OutDir string
}

func NewCSVWriter(outDir string) (*CSVWriter, error) {
	if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("Creating CSV output directory: %w", err)
	}
	return &CSVWriter{OutDir: outDir}, nil
}

// FilePath returns where a table of outType for name is written.
func (w *CSVWriter) FilePath(outType OutputType, name string) (string, error) {
	var fn string
	switch outType {
	case NecReport:
		fn = fmt.Sprintf("%s.nec.csv", name)
	case FileGains:
		fn = fmt.Sprintf("%s.totals.csv", name)
	case AnnualGains:
		fn = "annual-gains.csv"
	case Holdings:
		fn = "holdings.csv"
	default:
		return "", fmt.Errorf("OutputType %v not implemented", outType)
	}
	return path.Join(w.OutDir, fn), nil
}

// PrintRenderTable implements ReportWriter.
func (w *CSVWriter) PrintRenderTable(outType OutputType, name string, tableModel *ledger.RenderTable) error {
	fpath, err := w.FilePath(outType, name)
	if err != nil {
		return err
	}

	fp, err := os.Create(fpath)
	if err != nil {
		return fmt.Errorf("Create file %q: %w", fpath, err)
	}
	defer fp.Close()

	csvWriter := csv.NewWriter(fp)

	if err := csvWriter.Write(tableModel.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, row := range tableModel.Rows {
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	if len(tableModel.Footer) > 0 {
		if err := csvWriter.Write(tableModel.Footer); err != nil {
			return fmt.Errorf("write footer: %w", err)
		}
	}
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}

	for _, note := range tableModel.Notes {
		fmt.Fprintln(fp, note)
	}

	return nil
}
