package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/nodai-oss/randgram/config"
	verifypkg "github.com/nodai-oss/randgram/verify"
)

var verifyFlags = struct {
	count   *int
	seed    *string
	cfgPath *string
	verbose *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "verify <grammar-file> <rule>",
		Short:   "Check that generated samples round-trip through the parser",
		Example: `  randgram verify grammar.rg sentence -n 200`,
		Args:    cobra.ExactArgs(2),
		RunE:    runVerify,
	}
	verifyFlags.count = cmd.Flags().IntP("count", "n", 100, "number of samples to check")
	verifyFlags.seed = cmd.Flags().StringP("seed", "s", "", "deterministic seed label")
	verifyFlags.cfgPath = cmd.Flags().StringP("config", "c", "", "path to a JSON or YAML generator config file")
	verifyFlags.verbose = cmd.Flags().BoolP("verbose", "v", false, "print every sample's result, not just failures")
	rootCmd.AddCommand(cmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	grammarPath, rule := args[0], args[1]

	g, _, err := loadGrammar(grammarPath)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(*verifyFlags.cfgPath)
	if err != nil {
		return err
	}

	var rng *rand.Rand
	if *verifyFlags.seed == "" {
		rng = rand.New(rand.NewSource(rand.Int63()))
	} else {
		rng = rand.New(rand.NewSource(config.SeedFromLabel(*verifyFlags.seed)))
	}

	report := verifypkg.Run(g, rule, *verifyFlags.count, cfg, rng)
	for _, r := range report.Results {
		if r.Error != nil || *verifyFlags.verbose {
			fmt.Println(r.String())
		}
	}
	fmt.Fprintf(os.Stderr, "%d passed, %d failed\n", report.Passed(), report.Failed())
	if !report.OK() {
		return fmt.Errorf("verify: %d of %d samples failed to round-trip", report.Failed(), len(report.Results))
	}
	return nil
}
