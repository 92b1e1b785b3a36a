package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "randgram",
	Short: "Generate random strings from a PEG-like grammar",
	Long: `randgram provides four features:
- Generates random strings derived from a grammar's rules.
- Compiles and validates a grammar file into a portable artifact.
- Watches a grammar file and regenerates samples on every change.
- Verifies generated samples round-trip through the grammar's parser.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the CLI, printing any returned error to stderr.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
