package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/xschem-go/pkg/xschem/xlog"
)

var (
	// Global flags
	verbose   int
	batchMode bool
	schMode   bool
	symMode   bool
	tclScript string
)

var rootCmd = &cobra.Command{
	Use:   "xschem",
	Short: "xschem - schematic and symbol capture",
	Long: `xschem is a schematic capture tool: build hierarchical schematics from
symbols, wires and annotation geometry, then export netlists for
downstream simulation.

No display backend is linked into this binary: a file argument is rejected
with an error unless -b is given or XSCHEM_START_WINDOW is set to the empty
string, and the -s, -y and --tcl flags are accepted but not acted on.

Examples:
  xschem -b top.sch                   # Batch mode, no window
  xschem -s amp.sch                   # Schematic mode flag
  xschem -y nand2.sym                 # Symbol mode flag
  xschem --tcl "set netlist_dir /tmp" # Setup script flag
  xschem hash top.sch                 # Content hash of a sheet file
  xschem expand 'data[3:0]'           # Expand a bussed name`,
	Version: "0.1.0",
	Args:    cobra.ArbitraryArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		xlog.SetVerbosity(verbose)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		if startWindowSuppressed() {
			xlog.Dbg(1, "xschem: window auto-open suppressed (batch mode or XSCHEM_START_WINDOW=\"\")")
			return nil
		}
		return fmt.Errorf("no display backend linked; use -b for batch mode or a subcommand (see --help)")
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// startWindowSuppressed reports whether auto-opening a window is disabled:
// batch mode, or XSCHEM_START_WINDOW set to the empty string.
func startWindowSuppressed() bool {
	if batchMode {
		return true
	}
	v, ok := os.LookupEnv("XSCHEM_START_WINDOW")
	return ok && v == ""
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&verbose, "verbose", "v", 0, "debug verbosity level")
	rootCmd.PersistentFlags().BoolVarP(&batchMode, "batch", "b", false, "batch mode: never open a window")
	rootCmd.PersistentFlags().BoolVarP(&schMode, "schematic", "s", false, "treat the given file as a schematic")
	rootCmd.PersistentFlags().BoolVarP(&symMode, "symbol", "y", false, "treat the given file as a symbol")
	rootCmd.PersistentFlags().StringVar(&tclScript, "tcl", "", "setup script injected into the embedded console at startup")
}
