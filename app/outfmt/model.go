package outfmt

import (
	"github.com/fifotax/fifotax/ledger"
)

type OutputType int

const (
	NecReport OutputType = iota
	FileGains
	AnnualGains
	Holdings
)

// ReportWriter renders one table model of the given type. name
// distinguishes per-statement outputs (the statement's base name); the
// run-wide types ignore it.
type ReportWriter interface {
	PrintRenderTable(outType OutputType, name string, tableModel *ledger.RenderTable) error
}
