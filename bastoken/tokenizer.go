package bastoken

import (
	"strconv"
	"strings"

	"github.com/retrocomp/bastool/berrors"
	"github.com/retrocomp/bastool/numeric"
	"github.com/retrocomp/bastool/progline"
	"github.com/retrocomp/bastool/token"
)

const (
	autoNumberBase = 10
	autoNumberStep = 10
	maxLineNumber  = 0xFFFF
)

// Tokenize encodes a complete source text. Lines split on line feeds,
// carriage returns are dropped and blank lines carry no record. A
// leading line number at column zero numbers the line; unnumbered
// lines continue from the last number in steps of ten.
func Tokenize(src string, opts Options) ([]byte, error) {
	t := &tokenizer{
		table: tokens,
		opts:  opts,
		w:     progline.NewWriter(opts.Library),
		next:  autoNumberBase,
	}

	for i, line := range strings.Split(src, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := t.addLine(i+1, line); err != nil {
			return nil, err
		}
	}
	return t.w.Finalize(), nil
}

type tokenizer struct {
	table *token.Table
	opts  Options
	w     *progline.Writer
	next  int
}

func (t *tokenizer) addLine(idx int, line string) error {
	text := line
	num := 0

	if isDigit(line[0]) {
		p := 0
		for p < len(line) && isDigit(line[p]) {
			p++
		}
		v, err := strconv.Atoi(line[:p])
		if err != nil || v < 1 || v > maxLineNumber {
			return &berrors.LexicalError{Line: idx, Col: 1, Err: berrors.ErrNumericRange}
		}
		num = v
		text = line[p:]
		// the listing puts a single space after the number
		text = strings.TrimPrefix(text, " ")
	}

	if t.opts.Library && num != 0 {
		if t.opts.RejectNumbers {
			return &berrors.LexicalError{Line: idx, Col: 1, Err: berrors.ErrLibraryLineNumber}
		}
		num = 0
	}
	if !t.opts.Library {
		if num == 0 {
			num = t.next
		}
		t.next = num + autoNumberStep
	}

	if strings.TrimSpace(text) == "" {
		return nil
	}

	payload, err := t.scan(idx, len(line)-len(text), text)
	if err != nil {
		return err
	}
	if len(payload) > progline.MaxPayload {
		return &berrors.LexicalError{Line: idx, Col: 1, Err: berrors.ErrLineTooLong}
	}
	return t.w.WriteLine(num, payload)
}

// scan tokenizes one line of statement text. base is the column the
// text started at, for error positions.
func (t *tokenizer) scan(idx, base int, s string) ([]byte, error) {
	var out []byte

	for i := 0; i < len(s); {
		ch := s[i]
		switch {
		case ch == '"':
			// verbatim through the closing quote; an unterminated
			// string runs to end of line, the interpreter complains
			// at run time, not here
			j := i + 1
			for j < len(s) && s[j] != '"' {
				j++
			}
			if j < len(s) {
				j++
			}
			out = append(out, s[i:j]...)
			i = j

		case ch == ' ' || ch == '\t':
			out = append(out, ch)
			i++

		default:
			if e := t.table.Match(s, i); e != nil {
				out = append(out, e.Bytes()...)
				i += len(e.Spelling)
				// the listing renders every token with one trailing
				// space, so one source space after it is implied
				if i < len(s) && s[i] == ' ' {
					i++
				}
				if e.Remark {
					out = append(out, s[i:]...)
					i = len(s)
				}
				continue
			}

			if isDigit(ch) || ch == '.' && i+1 < len(s) && isDigit(s[i+1]) {
				lit := scanNumber(s, i)
				field, err := numeric.Encode(lit)
				if err != nil {
					return nil, &berrors.LexicalError{Line: idx, Col: base + i + 1, Err: err}
				}
				out = append(out, field...)
				i += len(lit)
				continue
			}

			if isLetter(ch) {
				// no keyword matched here, so the whole identifier
				// run travels verbatim
				j := i
				for j < len(s) && isIdentChar(s[j]) {
					j++
				}
				if j < len(s) && s[j] == '$' {
					j++
				}
				out = append(out, s[i:j]...)
				i = j
				continue
			}

			out = append(out, ch)
			i++
		}
	}
	return out, nil
}

// scanNumber returns the numeric literal starting at pos: digits, an
// optional fraction, and an exponent only when digits follow it.
func scanNumber(s string, pos int) string {
	i := pos
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E' || s[i] == 'd' || s[i] == 'D') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	return s[pos:i]
}
