package berrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_LexicalError(t *testing.T) {
	err := &LexicalError{Line: 3, Col: 7, Err: ErrNumericRange}

	assert.Equal(t, "Overflow in line 3, column 7", err.Error())
	assert.True(t, errors.Is(err, ErrNumericRange))
	assert.False(t, errors.Is(err, ErrLineTooLong))
}

func Test_FormatError(t *testing.T) {
	err := &FormatError{Record: 2, Offset: 17, Err: ErrUnknownToken}

	assert.Equal(t, "Unknown token in record 2 at offset 17", err.Error())
	assert.True(t, errors.Is(err, ErrUnknownToken))

	var fe *FormatError
	assert.True(t, errors.As(err, &fe))
}
