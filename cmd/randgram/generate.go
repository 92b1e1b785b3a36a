package main

import (
	"fmt"
	"math/rand"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/nodai-oss/randgram/compiler"
	"github.com/nodai-oss/randgram/config"
	"github.com/nodai-oss/randgram/engine"
	"github.com/nodai-oss/randgram/grammar"
	"github.com/nodai-oss/randgram/reparser"
)

var generateFlags = struct {
	compiled *string
	count    *int
	seed     *string
	cfgPath  *string
	parallel *int
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "generate [grammar-file] <start-rule>",
		Short:   "Generate random strings derived from a grammar rule",
		Example: `  randgram generate grammar.rg sentence -n 10`,
		Args:    cobra.RangeArgs(1, 2),
		RunE:    runGenerate,
	}
	generateFlags.compiled = cmd.Flags().String("compiled", "", "load a compiled artifact from `compile` instead of a grammar file")
	generateFlags.count = cmd.Flags().IntP("count", "n", 1, "number of samples to generate")
	generateFlags.seed = cmd.Flags().StringP("seed", "s", "", "deterministic seed label (same label, same samples)")
	generateFlags.cfgPath = cmd.Flags().StringP("config", "c", "", "path to a JSON or YAML generator config file")
	generateFlags.parallel = cmd.Flags().IntP("parallel", "j", 1, "number of worker goroutines")
	rootCmd.AddCommand(cmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	var grammarPath, rule string
	if *generateFlags.compiled != "" {
		rule = args[0]
	} else {
		if len(args) < 2 {
			return fmt.Errorf("generate requires a grammar file and a start rule (or --compiled and a start rule)")
		}
		grammarPath, rule = args[0], args[1]
	}

	var g *grammar.Grammar
	if *generateFlags.compiled != "" {
		cg, err := loadCompiledGrammar(*generateFlags.compiled)
		if err != nil {
			return err
		}
		g, err = compiler.Compile(cg.Source)
		if err != nil {
			return fmt.Errorf("recompiling %s: %w", *generateFlags.compiled, err)
		}
	} else {
		var err error
		g, _, err = loadGrammar(grammarPath)
		if err != nil {
			return err
		}
	}

	cfg, err := loadConfig(*generateFlags.cfgPath)
	if err != nil {
		return err
	}

	workers := *generateFlags.parallel
	if workers < 1 {
		workers = 1
	}
	n := *generateFlags.count
	if n < 0 {
		n = 0
	}

	results := make([]string, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	jobs := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				rng := sampleRNG(*generateFlags.seed, i)
				s, err := engine.Generate(g, rule, cfg, rng, reparser.Parse)
				results[i] = s
				errs[i] = err
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for i := 0; i < n; i++ {
		if errs[i] != nil {
			fmt.Fprintf(os.Stderr, "sample %d: %v\n", i, errs[i])
			continue
		}
		fmt.Println(results[i])
	}
	return nil
}

// sampleRNG derives an independent random source per sample index so
// parallel generation needs no shared-*rand.Rand locking, and a seed
// label yields the same sample at each index whichever worker runs it.
// When seed is empty, each sample's stream still differs (seeded from
// the process-global source), giving non-deterministic but independent
// output per run.
func sampleRNG(seedLabel string, index int) *rand.Rand {
	if seedLabel == "" {
		return rand.New(rand.NewSource(rand.Int63() + int64(index)))
	}
	base := config.SeedFromLabel(seedLabel)
	return rand.New(rand.NewSource(base + int64(index)))
}

func loadConfig(path string) (config.GeneratorConfig, error) {
	if path == "" {
		return config.Default(), nil
	}
	if isYAMLPath(path) {
		cfg, err := config.LoadYAML(path)
		if err != nil {
			return config.GeneratorConfig{}, err
		}
		return *cfg, nil
	}
	cfg, err := config.LoadJSON(path)
	if err != nil {
		return config.GeneratorConfig{}, err
	}
	return *cfg, nil
}

func isYAMLPath(path string) bool {
	for _, suffix := range []string{".yaml", ".yml"} {
		if len(path) >= len(suffix) && path[len(path)-len(suffix):] == suffix {
			return true
		}
	}
	return false
}
