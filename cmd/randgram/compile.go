package main

import (
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/cobra"
)

// CompiledGrammar is the on-disk artifact `compile` writes: the
// grammar's validated source text plus its rule index, so a later
// `generate --compiled` invocation can skip straight to re-parsing a
// known-good file without first discovering whether it even compiles.
// grammar.Grammar's AST is intentionally a private tagged union (see
// grammar.Expression), not a wire format, so the artifact carries
// source text rather than a serialized tree.
type CompiledGrammar struct {
	Rules  []string `cbor:"rules"`
	Source string   `cbor:"source"`
}

var compileFlags = struct {
	output *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "compile [grammar-file]",
		Short:   "Validate a grammar and write a compiled artifact",
		Example: `  randgram compile grammar.rg -o grammar.cbor`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runCompile,
	}
	compileFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	}

	g, src, err := loadGrammar(path)
	if err != nil {
		return err
	}

	cg := CompiledGrammar{Rules: g.Names(), Source: src}
	b, err := cbor.Marshal(cg)
	if err != nil {
		return fmt.Errorf("encoding compiled grammar: %w", err)
	}

	if *compileFlags.output == "" {
		_, err := os.Stdout.Write(b)
		return err
	}
	if err := os.WriteFile(*compileFlags.output, b, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", *compileFlags.output, err)
	}
	fmt.Fprintf(os.Stderr, "%d rules compiled to %s\n", len(cg.Rules), *compileFlags.output)
	return nil
}

// loadCompiledGrammar reads and decodes a CompiledGrammar artifact
// written by `compile`. It does not recompile the embedded source;
// callers that need a grammar.Grammar compile cg.Source themselves.
func loadCompiledGrammar(path string) (*CompiledGrammar, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading compiled grammar %s: %w", path, err)
	}
	var cg CompiledGrammar
	if err := cbor.Unmarshal(b, &cg); err != nil {
		return nil, fmt.Errorf("decoding compiled grammar %s: %w", path, err)
	}
	return &cg, nil
}
