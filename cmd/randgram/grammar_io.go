package main

import (
	"fmt"
	"io"
	"os"

	"github.com/nodai-oss/randgram/compiler"
	"github.com/nodai-oss/randgram/grammar"
)

// readGrammarSource reads raw grammar-definition source text from path,
// or from stdin when path is "-" or empty.
func readGrammarSource(path string) (string, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading grammar from stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading grammar file %s: %w", path, err)
	}
	return string(b), nil
}

// loadGrammar reads and compiles the grammar at path, returning both
// the compiled grammar and the raw source it was compiled from.
func loadGrammar(path string) (*grammar.Grammar, string, error) {
	src, err := readGrammarSource(path)
	if err != nil {
		return nil, "", err
	}
	g, err := compiler.Compile(src)
	if err != nil {
		return nil, "", fmt.Errorf("compiling %s: %w", displayPath(path), err)
	}
	return g, src, nil
}

func displayPath(path string) string {
	if path == "" || path == "-" {
		return "stdin"
	}
	return path
}
