// Package numeric encodes numeric literals between their source text
// and the fixed-width binary fields used inside a token stream.
// Integers keep their magnitude in one or two bytes behind a marker;
// floating literals are normalized to significant digits plus a
// decimal exponent and packed as BCD, so decoding reproduces the
// canonical spelling exactly.
package numeric

import (
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/retrocomp/bastool/berrors"
)

// Markers reserve the payload bytes that introduce a numeric field.
const (
	Int1Mark  = 0x0F // one byte magnitude follows
	Int2Mark  = 0x1C // two byte little-endian magnitude follows
	FloatMark = 0x1D // int8 exponent and 4 BCD mantissa bytes follow
)

const (
	maxMantissa   = 8 // significant digits held by the BCD field
	floatFieldLen = 6 // marker, exponent, mantissa
)

// IsMark reports whether b starts a numeric field.
func IsMark(b byte) bool {
	return b == Int1Mark || b == Int2Mark || b == FloatMark
}

// Encode converts one numeric literal to its binary field, marker
// included. Integers wider than 16 bits, mantissas beyond 8
// significant digits and exponents outside int8 all fail with
// ErrNumericRange.
func Encode(lit string) ([]byte, error) {
	if !strings.ContainsAny(lit, ".eEdD") {
		return encodeInt(lit)
	}
	return encodeFloat(lit)
}

func encodeInt(lit string) ([]byte, error) {
	v, err := strconv.ParseUint(lit, 10, 64)
	if err != nil || v > 0xFFFF {
		return nil, berrors.ErrNumericRange
	}

	if b, err := safecast.Conv[uint8](v); err == nil {
		return []byte{Int1Mark, b}, nil
	}
	return []byte{Int2Mark, byte(v), byte(v >> 8)}, nil
}

func encodeFloat(lit string) ([]byte, error) {
	digits, exp, err := normalize(lit)
	if err != nil {
		return nil, err
	}

	e, err := safecast.Conv[int8](exp)
	if err != nil {
		return nil, berrors.ErrNumericRange
	}

	field := []byte{FloatMark, byte(e), 0xFF, 0xFF, 0xFF, 0xFF}
	for i := 0; i < len(digits); i++ {
		d := digits[i] - '0'
		if i%2 == 0 {
			field[2+i/2] = d<<4 | 0x0F
		} else {
			field[2+i/2] = field[2+i/2]&0xF0 | d
		}
	}
	return field, nil
}

// normalize reduces a floating literal to its significant digits and
// a decimal exponent e, with value = 0.digits * 10^e. Zero comes back
// as no digits at all.
func normalize(lit string) (string, int, error) {
	mant := lit
	exp := 0

	if i := strings.IndexAny(lit, "eEdD"); i >= 0 {
		mant = lit[:i]
		v, err := strconv.Atoi(lit[i+1:])
		if err != nil {
			return "", 0, berrors.ErrNumericRange
		}
		exp = v
	}

	intPart := mant
	fracPart := ""
	if i := strings.IndexByte(mant, '.'); i >= 0 {
		intPart, fracPart = mant[:i], mant[i+1:]
	}
	all := intPart + fracPart
	if all == "" {
		return "", 0, berrors.ErrNumericRange
	}
	for i := 0; i < len(all); i++ {
		if all[i] < '0' || all[i] > '9' {
			return "", 0, berrors.ErrNumericRange
		}
	}

	first := strings.IndexFunc(all, func(r rune) bool { return r != '0' })
	if first < 0 {
		return "", 0, nil
	}
	last := len(all) - 1
	for all[last] == '0' {
		last--
	}

	digits := all[first : last+1]
	if len(digits) > maxMantissa {
		return "", 0, berrors.ErrNumericRange
	}
	return digits, len(intPart) - first + exp, nil
}

// Decode expands the numeric field at the front of buf into its
// canonical text and reports how many bytes the field occupied.
func Decode(buf []byte) (string, int, error) {
	if len(buf) == 0 {
		return "", 0, berrors.ErrMalformedLine
	}

	switch buf[0] {
	case Int1Mark:
		if len(buf) < 2 {
			return "", 0, berrors.ErrMalformedLine
		}
		return strconv.Itoa(int(buf[1])), 2, nil

	case Int2Mark:
		if len(buf) < 3 {
			return "", 0, berrors.ErrMalformedLine
		}
		return strconv.Itoa(int(buf[1]) | int(buf[2])<<8), 3, nil

	case FloatMark:
		if len(buf) < floatFieldLen {
			return "", 0, berrors.ErrMalformedLine
		}
		digits, err := unpack(buf[2:floatFieldLen])
		if err != nil {
			return "", 0, err
		}
		return render(digits, int(int8(buf[1]))), floatFieldLen, nil
	}

	return "", 0, berrors.ErrUnknownToken
}

func unpack(mant []byte) (string, error) {
	var digits []byte
	done := false

	for _, b := range mant {
		for _, nib := range []byte{b >> 4, b & 0x0F} {
			switch {
			case nib == 0x0F:
				done = true
			case nib > 9 || done: // digits after the pad nibble
				return "", berrors.ErrMalformedLine
			default:
				digits = append(digits, '0'+nib)
			}
		}
	}
	return string(digits), nil
}

// render produces the one canonical spelling for a normalized value.
// The rules match what the tokenizer's own normalization would pick,
// so rendering and re-encoding is lossless.
func render(digits string, e int) string {
	k := len(digits)
	switch {
	case k == 0:
		return "0.0"
	case e > 0 && e <= maxMantissa && e >= k:
		return digits + strings.Repeat("0", e-k) + ".0"
	case e > 0 && e < k:
		return digits[:e] + "." + digits[e:]
	case e <= 0 && e >= -2:
		return "0." + strings.Repeat("0", -e) + digits
	}

	m := digits[:1]
	if k > 1 {
		m += "." + digits[1:]
	}
	if e-1 < 0 {
		return m + "E-" + strconv.Itoa(1-e)
	}
	return m + "E+" + strconv.Itoa(e-1)
}
