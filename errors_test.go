package main

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClasses(t *testing.T) {
	tests := []struct {
		msg   string
		class errorClass
	}{
		{EEXPECTEDTHEN, syntaxError},
		{EUNKNOWNCOMMAND, syntaxError},
		{EINVALIDLINENUMBER, semanticError},
		{EINVALIDVARIABLE, semanticError},
		{EPROGRAMFULL, resourceError},
		{EGOSUBOVERFLOW, resourceError},
		{EDIVISIONBYZERO, runtimeFault},
		{EINTERRUPTED, runtimeFault},
		{EFILENOTFOUND, ioError},
		{ELPRINTFILE, ioError},
	}

	for _, tt := range tests {
		err := runtimeError(tt.msg)
		assert.Equal(t, tt.class, errorClassOf(err), tt.msg)
		assert.Equal(t, tt.msg, errorMessage(err))
	}
}

func TestErrorText(t *testing.T) {
	err := &basicError{msg: ELINENOTFOUND, class: runtimeFault}
	assert.Equal(t, "LINE NOT FOUND", err.Error())

	err.lineNo = 120
	assert.Equal(t, "LINE NOT FOUND IN 120", err.Error())
	assert.Equal(t, "LINE NOT FOUND", errorMessage(err))

	wrapped := fmt.Errorf("loading: %w", err)
	assert.Equal(t, runtimeFault, errorClassOf(wrapped))
}

func TestRuntimeErrorf(t *testing.T) {
	err := runtimeErrorf(EDIRECTONLY, "LIST")

	assert.Equal(t, "CAN'T USE LIST IN A PROGRAM", err.Error())
	assert.Equal(t, semanticError, errorClassOf(err))
}

func TestForeignErrors(t *testing.T) {
	err := fmt.Errorf("open x: %w", fs.ErrNotExist)

	assert.Equal(t, ioError, errorClassOf(err))
	assert.Equal(t, err.Error(), errorMessage(err))
	assert.False(t, errors.Is(runtimeError(EFILENOTFOUND), fs.ErrNotExist))
}

func TestErrorClassNames(t *testing.T) {
	assert.Equal(t, "syntax", syntaxError.String())
	assert.Equal(t, "I/O", ioError.String())
	assert.Equal(t, "errorClass(42)", errorClass(42).String())
}

func TestEveryMessageHasAClass(t *testing.T) {
	for _, msg := range []string{
		EINVALIDLINENUMBER, ELINETOOLONG, EPROGRAMFULL, EUNTERMINATEDSTRING,
		ELPRINTFILE, EEXPECTEDINPUTVAR, EEXPECTEDLETVAR, EINVALIDVARIABLE,
		EEXPECTEDEQUALS, ELINENOTFOUND, EGOSUBOVERFLOW, ERETURNWITHOUTGOSUB,
		EEXPECTEDOPERATOR, EEXPECTEDTHEN, EDIVISIONBYZERO, EEXPECTEDRPAREN,
		EEXPECTEDNUMBER, EINVALIDNUMBER, EUNKNOWNCOMMAND, EFILENAMEREQUIRED,
		EFILENOTFOUND, ECANNOTOPENFILE, EINTERRUPTED, EDIRECTONLY,
	} {
		_, ok := errorMap[msg]
		assert.True(t, ok, msg)
	}
}
