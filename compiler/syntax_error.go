package compiler

import "fmt"

// SyntaxError is raised by the lexer or parser and carries the
// position at which it occurred.
type SyntaxError struct {
	Message string
	Pos     Position
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: syntax error: %s", e.Pos.Line, e.Pos.Col, e.Message)
}

func newSyntaxError(pos Position, message string) *SyntaxError {
	return &SyntaxError{Message: message, Pos: pos}
}

// raiseSyntaxError panics with a *SyntaxError; parseGrammar recovers it
// and turns it into a returned error.
func raiseSyntaxError(pos Position, message string) {
	panic(newSyntaxError(pos, message))
}
