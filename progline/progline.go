// Package progline frames tokenized BASIC lines as self-delimiting
// binary records. A program is a one-byte file mode, a run of line
// records and an end-of-program sentinel. Numbered records carry a
// 16-bit little-endian line number; library records carry none and
// get their numbers back at listing time.
package progline

import (
	"bytes"
	"fmt"
	"io"

	"fortio.org/safecast"
	"github.com/retrocomp/bastool/berrors"
)

const (
	MagicProgram = 0xFF // numbered program file
	MagicLibrary = 0xFD // library file, records carry no line numbers
	Terminator   = 0x00 // closes every line record

	// MaxPayload bounds a single record, both directions. A decoded
	// length beyond it is treated as corruption, not an allocation
	// request.
	MaxPayload = 4096

	maxShortLen = 0xFA // longest payload framed with a one-byte length
	lenEscape   = 0xFB // two-byte length follows
)

// Line is one decoded record. Number is zero for library records.
type Line struct {
	Number  int
	Payload []byte
	Offset  int // program offset of the first payload byte
}

// Writer assembles an encoded program.
type Writer struct {
	buf     bytes.Buffer
	library bool
	done    bool
}

// NewWriter starts a program in the requested mode.
func NewWriter(library bool) *Writer {
	w := &Writer{library: library}
	if library {
		w.buf.WriteByte(MagicLibrary)
	} else {
		w.buf.WriteByte(MagicProgram)
	}
	return w
}

// WriteLine frames one record. The number is ignored in library mode.
// Blank payloads carry no record at all.
func (w *Writer) WriteLine(number int, payload []byte) error {
	if len(payload) == 0 {
		return nil
	}
	if len(payload) > MaxPayload {
		return berrors.ErrLineTooLong
	}

	if !w.library {
		n, err := safecast.Conv[uint16](number)
		if err != nil || n == 0 {
			return fmt.Errorf("line number %d out of range", number)
		}
		w.buf.WriteByte(byte(n))
		w.buf.WriteByte(byte(n >> 8))
	}

	if len(payload) <= maxShortLen {
		w.buf.WriteByte(byte(len(payload)))
	} else {
		w.buf.WriteByte(lenEscape)
		w.buf.WriteByte(byte(len(payload)))
		w.buf.WriteByte(byte(len(payload) >> 8))
	}
	w.buf.Write(payload)
	w.buf.WriteByte(Terminator)
	return nil
}

// Finalize appends the end-of-program sentinel and returns the bytes.
func (w *Writer) Finalize() []byte {
	if !w.done {
		w.buf.WriteByte(0x00)
		if !w.library {
			w.buf.WriteByte(0x00)
		}
		w.done = true
	}
	return w.buf.Bytes()
}

// Reader splits an encoded program back into line records.
type Reader struct {
	prog    []byte
	pos     int
	rec     int
	library bool
	done    bool
}

// NewReader validates the file mode byte and positions on the first
// record.
func NewReader(prog []byte) (*Reader, error) {
	if len(prog) == 0 {
		return nil, &berrors.FormatError{Record: 0, Offset: 0, Err: berrors.ErrTruncatedProgram}
	}

	r := &Reader{prog: prog, pos: 1}
	switch prog[0] {
	case MagicProgram:
	case MagicLibrary:
		r.library = true
	default:
		return nil, &berrors.FormatError{Record: 0, Offset: 0, Err: berrors.ErrMalformedLine}
	}
	return r, nil
}

// Library reports the file mode the program was encoded in.
func (r *Reader) Library() bool {
	return r.library
}

// Next decodes one record, or io.EOF at the sentinel.
func (r *Reader) Next() (Line, error) {
	if r.done {
		return Line{}, io.EOF
	}
	r.rec++

	var ln Line
	if !r.library {
		if r.pos+2 > len(r.prog) {
			return Line{}, r.fail(berrors.ErrTruncatedProgram)
		}
		ln.Number = int(r.prog[r.pos]) | int(r.prog[r.pos+1])<<8
		if ln.Number == 0 {
			r.done = true
			return Line{}, io.EOF
		}
		r.pos += 2
	}

	if r.pos >= len(r.prog) {
		return Line{}, r.fail(berrors.ErrTruncatedProgram)
	}
	size := int(r.prog[r.pos])
	r.pos++
	switch {
	case r.library && size == 0x00:
		r.done = true
		return Line{}, io.EOF
	case size == lenEscape:
		if r.pos+2 > len(r.prog) {
			return Line{}, r.fail(berrors.ErrTruncatedProgram)
		}
		size = int(r.prog[r.pos]) | int(r.prog[r.pos+1])<<8
		r.pos += 2
	case size == 0x00 || size > maxShortLen:
		// 0xFC..0xFF are reserved, 0x00 is only a sentinel
		return Line{}, r.fail(berrors.ErrMalformedLine)
	}
	if size == 0 || size > MaxPayload {
		return Line{}, r.fail(berrors.ErrMalformedLine)
	}

	if r.pos+size > len(r.prog) {
		return Line{}, r.fail(berrors.ErrTruncatedProgram)
	}
	ln.Offset = r.pos
	ln.Payload = r.prog[r.pos : r.pos+size]
	r.pos += size

	if r.pos >= len(r.prog) {
		return Line{}, r.fail(berrors.ErrTruncatedProgram)
	}
	if r.prog[r.pos] != Terminator {
		return Line{}, r.fail(berrors.ErrMalformedLine)
	}
	r.pos++

	return ln, nil
}

// Record reports the index of the record Next returned last, 1-based.
func (r *Reader) Record() int {
	return r.rec
}

func (r *Reader) fail(err error) error {
	return &berrors.FormatError{Record: r.rec, Offset: r.pos, Err: err}
}
