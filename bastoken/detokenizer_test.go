package bastoken

import (
	"testing"

	"github.com/retrocomp/bastool/berrors"
	"github.com/stretchr/testify/assert"
)

func Test_Detokenize(t *testing.T) {
	tests := []struct {
		prog []byte
		exp  string
	}{
		{prog: []byte{0xFF, 0x00, 0x00}, exp: ""},
		{prog: []byte{0xFF, 0x0A, 0x00, 0x03, 0x97, 0x0F, 0x01, 0x00, 0x00, 0x00},
			exp: "10 PRINT 1\n"},
		{prog: []byte{0xFF, 0x0A, 0x00, 0x06, 0x97, 0x22, 0x45, 0x4E, 0x44, 0x22, 0x00, 0x00, 0x00},
			exp: "10 PRINT \"END\"\n"}, // token bytes inside a string stay text
		{prog: []byte{0xFF, 0x0A, 0x00, 0x07, 0x82, 'A', 0xB7, 'B', 0x20, 0x83, 0xA6, 0x00, 0x00, 0x00},
			exp: "10 IF A<> B THEN END\n"},
		{prog: []byte{0xFF, 0x0A, 0x00, 0x07, 0xFE, 0x26, 0xFE, 0x27, 0x9F, 0x0F, 0x64, 0x00, 0x00, 0x00},
			exp: "10 ON ERROR GOTO 100\n"},
		{prog: []byte{0xFF, 0x0A, 0x00, 0x07, 0x97, 0x1D, 0x01, 0x31, 0x4F, 0xFF, 0xFF, 0x00, 0x00, 0x00},
			exp: "10 PRINT 3.14\n"},
		{prog: []byte{0xFF, 0x0A, 0x00, 0x01, 0x97, 0x00, 0x00, 0x00},
			exp: "10 PRINT\n"}, // no trailing space after a token at end of line
	}

	for _, tt := range tests {
		got, err := Detokenize(tt.prog, ListOptions{})
		assert.NoError(t, err, "Detokenize(% x)", tt.prog)
		assert.Equal(t, tt.exp, got, "Detokenize(% x)", tt.prog)
	}
}

func Test_DetokenizeRem(t *testing.T) {
	remark := "this PRINT is not a keyword"
	prog := append([]byte{0xFF, 0x0A, 0x00, byte(1 + len(remark)), 0x80}, remark...)
	prog = append(prog, 0x00, 0x00, 0x00)

	got, err := Detokenize(prog, ListOptions{})
	assert.NoError(t, err)
	assert.Equal(t, "10 REM "+remark+"\n", got)
}

func Test_SynthesizeNumbers(t *testing.T) {
	lib, err := Tokenize("PRINT 1\nPRINT 2\nPRINT 3", Options{Library: true})
	assert.NoError(t, err)

	// library records list without numbers unless asked
	got, err := Detokenize(lib, ListOptions{})
	assert.NoError(t, err)
	assert.Equal(t, "PRINT 1\nPRINT 2\nPRINT 3\n", got)

	got, err = Detokenize(lib, ListOptions{SynthesizeNumbers: true})
	assert.NoError(t, err)
	assert.Equal(t, "10 PRINT 1\n20 PRINT 2\n30 PRINT 3\n", got)

	got, err = Detokenize(lib, ListOptions{SynthesizeNumbers: true, NumberBase: 100, NumberStep: 5})
	assert.NoError(t, err)
	assert.Equal(t, "100 PRINT 1\n105 PRINT 2\n110 PRINT 3\n", got)
}

func Test_DetokenizeErrors(t *testing.T) {
	tests := []struct {
		name string
		prog []byte
		exp  error
	}{
		{name: "reserved byte", prog: []byte{0xFF, 0x0A, 0x00, 0x01, 0x05, 0x00, 0x00, 0x00},
			exp: berrors.ErrUnknownToken},
		{name: "unassigned extended code", prog: []byte{0xFF, 0x0A, 0x00, 0x02, 0xFE, 0x7F, 0x00, 0x00, 0x00},
			exp: berrors.ErrUnknownToken},
		{name: "extended prefix at end of payload", prog: []byte{0xFF, 0x0A, 0x00, 0x01, 0xFE, 0x00, 0x00, 0x00},
			exp: berrors.ErrMalformedLine},
		{name: "truncated numeric field", prog: []byte{0xFF, 0x0A, 0x00, 0x02, 0x1D, 0x01, 0x00, 0x00, 0x00},
			exp: berrors.ErrMalformedLine},
		{name: "payload longer than program", prog: []byte{0xFF, 0x0A, 0x00, 0x20, 0x97, 0x00},
			exp: berrors.ErrTruncatedProgram},
		{name: "missing sentinel", prog: []byte{0xFF, 0x0A, 0x00, 0x01, 0x97, 0x00},
			exp: berrors.ErrTruncatedProgram},
	}

	for _, tt := range tests {
		_, err := Detokenize(tt.prog, ListOptions{})
		assert.ErrorIs(t, err, tt.exp, tt.name)

		var fe *berrors.FormatError
		assert.ErrorAs(t, err, &fe, tt.name)
	}
}

func Test_FormatErrorPosition(t *testing.T) {
	prog := []byte{0xFF, 0x0A, 0x00, 0x02, 0x97, 0x05, 0x00, 0x00, 0x00}

	_, err := Detokenize(prog, ListOptions{})
	var fe *berrors.FormatError
	if assert.ErrorAs(t, err, &fe) {
		assert.Equal(t, 1, fe.Record)
		assert.Equal(t, 5, fe.Offset) // the reserved byte, not the record start
	}
}

// text -> binary -> text -> binary settles after one pass
func Test_RoundTripText(t *testing.T) {
	tests := []string{
		"10 PRINT \"Hello World\"\n20 GOTO 10\n",
		"10 FOR I=1 TO 10\n20 PRINT I,3.14\n30 NEXT\n",
		"10 LET A=PEEK(512)+1\n20 IF A<>0 THEN PRINT CHR$(65)\n",
		"10 REM setup\n20 ' all verbatim: PRINT GOTO \"X\n",
		"10 WHILE TRUE\n20 PRINT RND(1)\n30 WEND\n",
	}

	for _, src := range tests {
		prog, err := Tokenize(src, Options{})
		assert.NoError(t, err, "Tokenize(%q)", src)

		text, err := Detokenize(prog, ListOptions{})
		assert.NoError(t, err, "Detokenize of %q", src)

		again, err := Tokenize(text, Options{})
		assert.NoError(t, err, "re-Tokenize of %q", text)
		assert.Equal(t, prog, again, "round trip of %q", src)

		// and the listing itself is now stable
		final, err := Detokenize(again, ListOptions{})
		assert.NoError(t, err)
		assert.Equal(t, text, final)
	}
}

// binary -> text -> binary is bit exact for programs this codec made
func Test_RoundTripBinary(t *testing.T) {
	sources := []struct {
		src  string
		opts Options
	}{
		{src: "10 PRINT 1\n20 PRINT 2\n", opts: Options{}},
		{src: "5 INPUT A\n PRINT A*2\n", opts: Options{}},
		{src: "PRINT 1\nPRINT 2\nPRINT 3\n", opts: Options{Library: true}},
	}

	for _, tt := range sources {
		prog, err := Tokenize(tt.src, tt.opts)
		assert.NoError(t, err)

		text, err := Detokenize(prog, ListOptions{})
		assert.NoError(t, err)

		again, err := Tokenize(text, tt.opts)
		assert.NoError(t, err)
		assert.Equal(t, prog, again, "binary round trip of %q", tt.src)
	}
}
