package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/xschem-go/pkg/xschem/xhash"
)

var hashCmd = &cobra.Command{
	Use:   "hash <file>...",
	Short: "Content hash of sheet/symbol files",
	Long: `Compute the content hash of .sch/.sym files.

Path annotation lines (** sch_path:, -- sch_path:, // sym_path:) are
excluded, and CRLF line endings hash identically to LF, so the same sheet
hashes the same on every platform.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runHash,
}

func init() {
	rootCmd.AddCommand(hashCmd)
}

func runHash(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("error reading %s: %w", path, err)
		}
		fmt.Printf("%08x  %s\n", xhash.HashFile(data), path)
	}
	return nil
}
