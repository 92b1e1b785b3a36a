package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/nodai-oss/randgram/engine"
	"github.com/nodai-oss/randgram/reparser"
)

var watchFlags = struct {
	count   *int
	cfgPath *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "watch <grammar-file> <start-rule>",
		Short:   "Regenerate samples every time a grammar file changes",
		Example: `  randgram watch grammar.rg sentence -n 3`,
		Args:    cobra.ExactArgs(2),
		RunE:    runWatch,
	}
	watchFlags.count = cmd.Flags().IntP("count", "n", 1, "samples to generate per change")
	watchFlags.cfgPath = cmd.Flags().StringP("config", "c", "", "path to a JSON or YAML generator config file")
	rootCmd.AddCommand(cmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	grammarPath, rule := args[0], args[1]

	cfg, err := loadConfig(*watchFlags.cfgPath)
	if err != nil {
		return err
	}

	regenerate := func() {
		g, _, err := loadGrammar(grammarPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return
		}
		rng := rand.New(rand.NewSource(rand.Int63()))
		for i := 0; i < *watchFlags.count; i++ {
			s, err := engine.Generate(g, rule, cfg, rng, reparser.Parse)
			if err != nil {
				fmt.Fprintf(os.Stderr, "sample %d: %v\n", i, err)
				continue
			}
			fmt.Println(s)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(grammarPath); err != nil {
		return fmt.Errorf("watching %s: %w", grammarPath, err)
	}

	fmt.Fprintf(os.Stderr, "watching %s; regenerating on every change (ctrl-c to stop)\n", grammarPath)
	regenerate()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				fmt.Fprintln(os.Stderr, "---")
				regenerate()
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", werr)
		}
	}
}
