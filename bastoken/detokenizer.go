package bastoken

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/retrocomp/bastool/berrors"
	"github.com/retrocomp/bastool/numeric"
	"github.com/retrocomp/bastool/progline"
	"github.com/retrocomp/bastool/token"
)

// Detokenize expands an encoded program back into source text, one
// line per record. Numbered records always list with their stored
// number; library records get sequential numbers only when asked.
func Detokenize(prog []byte, opts ListOptions) (string, error) {
	base := opts.NumberBase
	if base == 0 {
		base = autoNumberBase
	}
	step := opts.NumberStep
	if step == 0 {
		step = autoNumberStep
	}

	r, err := progline.NewReader(prog)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	next := base
	for {
		ln, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		text, err := expand(r.Record(), ln)
		if err != nil {
			return "", err
		}

		if ln.Number != 0 {
			sb.WriteString(strconv.Itoa(ln.Number))
			sb.WriteByte(' ')
		} else if opts.SynthesizeNumbers {
			sb.WriteString(strconv.Itoa(next))
			sb.WriteByte(' ')
			next += step
		}
		sb.WriteString(text)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// expand regenerates the text of one record from its payload bytes.
func expand(rec int, ln progline.Line) (string, error) {
	var sb strings.Builder
	p := ln.Payload

	for i := 0; i < len(p); {
		b := p[i]
		switch {
		case b == '"':
			// verbatim through the closing quote, token-valued bytes
			// inside a string stay literal
			j := i + 1
			for j < len(p) && p[j] != '"' {
				j++
			}
			if j < len(p) {
				j++
			}
			sb.Write(p[i:j])
			i = j

		case numeric.IsMark(b):
			text, n, err := numeric.Decode(p[i:])
			if err != nil {
				return "", &berrors.FormatError{Record: rec, Offset: ln.Offset + i, Err: err}
			}
			sb.WriteString(text)
			i += n

		case b >= token.SingleBase:
			code := int(b)
			width := 1
			if b == token.ExtPrefix {
				if i+1 >= len(p) {
					return "", &berrors.FormatError{Record: rec, Offset: ln.Offset + i, Err: berrors.ErrMalformedLine}
				}
				code = token.ExtBase + int(p[i+1])
				width = 2
			}
			e := tokens.LookupCode(code)
			if e == nil {
				return "", &berrors.FormatError{Record: rec, Offset: ln.Offset + i, Err: berrors.ErrUnknownToken}
			}
			sb.WriteString(e.Spelling)
			i += width
			if i < len(p) {
				sb.WriteByte(' ')
			}
			if e.Remark {
				// mirror of the tokenizer's comment rule
				sb.Write(p[i:])
				i = len(p)
			}

		case b == '\t' || b >= 0x20 && b < 0x7F:
			sb.WriteByte(b)
			i++

		default:
			return "", &berrors.FormatError{Record: rec, Offset: ln.Offset + i, Err: berrors.ErrUnknownToken}
		}
	}
	return sb.String(), nil
}
