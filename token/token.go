package token

import "strings"

// Reserved wire bytes. Codes 0x80 through 0xFD are single-byte tokens,
// ExtPrefix escapes to the extended page where the code is 0x100 plus
// the following byte.
const (
	SingleBase = 0x80
	ExtPrefix  = 0xFE
	ExtBase    = 0x100
)

// Entry is one keyword or operator spelling and its token code.
type Entry struct {
	Spelling  string // canonical uppercase spelling
	Code      int    // 0x80..0xFD, or 0x100.. on the extended page
	WordBound bool   // match must not run into an identifier
	Remark    bool   // remainder of the line is verbatim text
}

// Bytes returns the wire encoding of the entry's code.
func (e *Entry) Bytes() []byte {
	if e.Code < ExtBase {
		return []byte{byte(e.Code)}
	}
	return []byte{ExtPrefix, byte(e.Code - ExtBase)}
}

// Table is the fixed token set. It is built once and never mutated,
// so it is safe to share between concurrent callers.
type Table struct {
	byCode     map[int]*Entry
	bySpelling map[string]*Entry
	maxLen     int
}

// statement and structure keywords, the REM family, and the
// multi-character operators all fit on the single-byte page
var singlePage = []struct {
	start     int
	spellings string
}{
	{0x80, `REM ' IF THEN ELSE ENDIF WHILE WEND DO LOOP REPEAT UNTIL FOR NEXT PROC ENDPROC`},
	{0x90, `CASE ENDCASE WHEN TO DOWNTO STEP LET PRINT INPUT READ DATA LOCAL CALL RETURN GOSUB GOTO`},
	{0xA0, `SYS EXIT POKE DOKE RESTORE DIM END STOP CLS INK LINE RECT MOVE PLOT ELLIPSE TEXT`},
	{0xB0, `IMAGE SPRITE FROM TILEDRAW REF TRUE FALSE <> <= >= << >>`},
}

// less common statements and the function names live on the extended
// page behind the ExtPrefix byte
var extPage = []struct {
	start     int
	spellings string
}{
	{0x100, `CLEAR NEW RUN ASSERT LIST SAVE LOAD CAT FKEY FRAME SOLID BY PALETTE DRAW HIDE FLIP
		SOUND SFX ANCHOR GLOAD DEFCHR LEFT RIGHT FORWARD TURTLE CLOSE TILEMAP PENUP PENDOWN FAST HOME LOCALE`},
	{0x120, `CURSOR RENUMBER DELETE EDIT MON OLD ON ERROR PIN OUTPUT WAIT OPEN LIBRARY MOUSE SHOW NOISE`},
	{0x140, `RND( INT( TIME( ASC( CHR$( LEN( ABS( SGN( MID$( LEFT$( RIGHT$( INSTR( PEEK( DEEK( MAX( MIN(
		SIN( COS( TAN( ATAN( LOG( EXP( VAL( STR$( SQR( SPC( TAB( POW( UPPER$( LOWER$( ISVAL( EOF(`},
}

// NewTable builds the full token set.
func NewTable() *Table {
	t := &Table{
		byCode:     make(map[int]*Entry),
		bySpelling: make(map[string]*Entry),
	}

	for _, blk := range singlePage {
		t.add(blk.start, blk.spellings)
	}
	for _, blk := range extPage {
		t.add(blk.start, blk.spellings)
	}

	return t
}

func (t *Table) add(start int, spellings string) {
	code := start
	for _, sp := range strings.Fields(spellings) {
		e := &Entry{
			Spelling:  sp,
			Code:      code,
			WordBound: isIdentChar(sp[len(sp)-1]),
			Remark:    sp == "REM" || sp == "'",
		}
		t.byCode[e.Code] = e
		t.bySpelling[sp] = e
		if len(sp) > t.maxLen {
			t.maxLen = len(sp)
		}
		code++
	}
}

// LookupCode finds the entry for an exact token code.
func (t *Table) LookupCode(code int) *Entry {
	return t.byCode[code]
}

// LookupSpelling finds the entry whose spelling matches s exactly,
// ignoring case.
func (t *Table) LookupSpelling(s string) *Entry {
	return t.bySpelling[strings.ToUpper(s)]
}

// Match finds the longest table spelling that matches line at pos,
// ignoring case. A boundary-required entry whose match is immediately
// followed by an identifier character is rejected and the next longest
// candidate tried, so a keyword never swallows the front of a longer
// identifier.
func (t *Table) Match(line string, pos int) *Entry {
	max := t.maxLen
	if rem := len(line) - pos; rem < max {
		max = rem
	}

	for n := max; n > 0; n-- {
		e, ok := t.bySpelling[strings.ToUpper(line[pos:pos+n])]
		if !ok {
			continue
		}
		if e.WordBound && pos+n < len(line) && isIdentChar(line[pos+n]) {
			continue
		}
		return e
	}
	return nil
}

func isIdentChar(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || '0' <= ch && ch <= '9' || ch == '_'
}
