package berrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for everything the codec can reject. Lexical errors
// come out of tokenization, format errors out of detokenization.
var (
	ErrNumericRange      = errors.New("Overflow")
	ErrLineTooLong       = errors.New("Line buffer overflow")
	ErrLibraryLineNumber = errors.New("Line number not allowed in library")

	ErrMalformedLine    = errors.New("Bad record")
	ErrTruncatedProgram = errors.New("Unexpected end of program")
	ErrUnknownToken     = errors.New("Unknown token")
)

// LexicalError reports malformed source text. Line and Col are
// 1-based positions into the source being tokenized.
type LexicalError struct {
	Line int
	Col  int
	Err  error
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("%s in line %d, column %d", e.Err, e.Line, e.Col)
}

func (e *LexicalError) Unwrap() error {
	return e.Err
}

// FormatError reports a malformed or incompatible binary program.
// Record is the 1-based line record index, Offset the byte offset
// into the program where the fault was found.
type FormatError struct {
	Record int
	Offset int
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s in record %d at offset %d", e.Err, e.Record, e.Offset)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
