package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fifotax/fifotax/app"
	"github.com/fifotax/fifotax/app/outfmt"
	"github.com/fifotax/fifotax/log"
)

var SplitsFile string
var OutputDir = "."
var NoMergeSameTrade = false
var PrintNecRows = false
var RenderFullValues = false

func runRootCmd(cmd *cobra.Command, args []string) {
	csvReaders := make([]app.DescribedReader, 0, len(args))
	for i := 0; i < len(args); i++ {
		// CSV passed in
		csvName := args[i]
		fp, err := os.Open(csvName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer fp.Close()
		csvReaders = append(csvReaders, app.DescribedReader{Desc: csvName, Reader: fp})
	}

	var splitsReader io.Reader
	if SplitsFile != "" {
		fp, err := os.Open(SplitsFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer fp.Close()
		splitsReader = fp
	}

	necWriter, err := outfmt.NewCSVWriter(OutputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	options := app.NewOptions()
	options.MergeSameTrade = !NoMergeSameTrade
	options.PrintNecRows = PrintNecRows
	options.RenderFullValues = RenderFullValues

	err = app.RunNecApp(
		csvReaders,
		splitsReader,
		options,
		necWriter,
		outfmt.NewSTDWriter(os.Stdout),
		&log.StderrErrorPrinter{})
	if err != nil {
		os.Exit(1)
	}
}

func cmdName() string {
	binName := os.Args[0]
	return filepath.Base(binName)
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   cmdName() + " [TIGER_CSV ...]",
	Short: "FIFO capital gains calculator for Tiger Brokers statements",
	Long: `A cli tool which matches the trades in Tiger Brokers activity statements
first-in first-out, and reports the capital gain of each closed lot in the
format of Schedule NEC (Form 1040-NR).

Each CSV provided should be an activity statement export, with its Trades
and Financial Instrument Information sections intact. Files are processed
in the order given, against one continuous set of holdings, so positions
opened in one year's statement can be sold in the next year's.

For each input file, the rows of its closed lots are stored to
<name>.nec.csv in the output directory, and totals are printed to the
console. Commissions are folded into the cost of bought shares and
subtracted from the proceeds of sold shares.

Stock splits do not appear in activity statements, so they can be provided
separately with --splits, as a JSON list of objects like
{"date": "2022-07-18", "symbol": "GOOG", "multiplier": 20}.
`,
	Run:     runRootCmd,
	Args:    cobra.MinimumNArgs(1),
	Version: app.FifotaxVersion,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(onInit)

	// Persistent flags, which are global to the app cli
	RootCmd.PersistentFlags().BoolVarP(&log.VerboseEnabled, "verbose", "v", false,
		"Print verbose output")
	RootCmd.Flags().StringVarP(&SplitsFile, "splits", "s", "",
		"JSON file of stock split events to apply between transactions")
	RootCmd.Flags().StringVarP(&OutputDir, "out-dir", "o", ".",
		"Directory to store the Schedule NEC csv files in")
	RootCmd.Flags().BoolVar(&NoMergeSameTrade, "no-merge", false,
		"Do not merge partial executions of the same order into one report row")
	RootCmd.Flags().BoolVar(&PrintNecRows, "print-nec", false,
		"Also print each file's Schedule NEC rows to the console")
	RootCmd.Flags().BoolVar(&RenderFullValues, "full-values", false,
		"Print full decimal values, instead of rounding to cents")
}

// onInit performs global or common actions before running command functions.
func onInit() {
	log.MaybeLoadTraceSetting()
}
