package zon

import "fmt"

// SyntaxError reports a parse failure at a source location. Parsing is
// all-or-nothing: the first syntax error aborts the whole parse.
type SyntaxError struct {
	Message string
	Pos     Position
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

func syntaxErrorf(pos Position, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
	}
}
