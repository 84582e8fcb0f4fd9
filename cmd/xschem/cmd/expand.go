package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/xschem-go/pkg/xschem/xhash"
)

var expandCmd = &cobra.Command{
	Use:   "expand <name>...",
	Short: "Expand bussed names",
	Long: `Expand bussed instance or net names into their per-bit lists,
e.g. 'data[3:0]' becomes data[3],data[2],data[1],data[0].`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExpand,
}

func init() {
	rootCmd.AddCommand(expandCmd)
}

func runExpand(cmd *cobra.Command, args []string) error {
	for _, name := range args {
		expanded, mult := xhash.ExpandLabel(name)
		fmt.Printf("%s: %s (%d)\n", name, expanded, mult)
	}
	return nil
}
