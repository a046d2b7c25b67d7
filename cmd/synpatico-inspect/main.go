// Command synpatico-inspect is a diagnostic CLI over the synpatico
// engine: fingerprint a JSON document, dump its Shape, or round-trip
// it through an Encode/Decode pair, without standing up an agent or a
// real upstream.
//
// Grounded on orbas1-Synnergy's cmd/cli package-level command-tree
// style: one *cobra.Command var per (sub)command, wired together in
// func init(), rooted here instead of split into its own cli package
// since this binary has no sibling entry point to share it with.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "synpatico-inspect",
	Short: "Inspect structural fingerprints, shapes, and packets",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
