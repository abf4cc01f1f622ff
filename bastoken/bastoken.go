// Package bastoken converts BASIC programs between source text and
// the tokenized binary form the interpreter loads. Tokenize and
// Detokenize are pure functions over complete in-memory buffers; all
// file handling belongs to the caller.
package bastoken

import (
	"github.com/retrocomp/bastool/token"
)

// the token set is fixed, built once and shared read-only
var tokens = token.NewTable()

// Options selects the tokenizing mode.
type Options struct {
	// Library drops the line number field from every record. Source
	// lines that carry explicit numbers have them stripped, so the
	// text can be included as subroutine text under any numbering.
	Library bool

	// RejectNumbers makes an explicit line number in library mode an
	// error instead of stripping it.
	RejectNumbers bool
}

// ListOptions controls detokenized output.
type ListOptions struct {
	// SynthesizeNumbers assigns sequential numbers to library records,
	// which carry none of their own. Numbered programs always list
	// with their stored numbers.
	SynthesizeNumbers bool

	NumberBase int // first synthesized number, 10 when zero
	NumberStep int // increment between lines, 10 when zero
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isIdentChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_'
}
