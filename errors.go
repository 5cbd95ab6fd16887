package main

import (
	"errors"
	"fmt"
)

//
// Manifest constants for the interpreter error messages
//

const (
	EINVALIDLINENUMBER  = "INVALID LINE NUMBER"
	ELINETOOLONG        = "LINE TOO LONG"
	EPROGRAMFULL        = "PROGRAM MEMORY FULL"
	EUNTERMINATEDSTRING = "UNTERMINATED STRING"
	ELPRINTFILE         = "COULD NOT OPEN LPRINT.OUT FILE"
	EEXPECTEDINPUTVAR   = "EXPECTED VARIABLE FOR INPUT"
	EEXPECTEDLETVAR     = "EXPECTED VARIABLE FOR LET"
	EINVALIDVARIABLE    = "INVALID VARIABLE"
	EEXPECTEDEQUALS     = "EXPECTED '=' IN LET"
	ELINENOTFOUND       = "LINE NOT FOUND"
	EGOSUBOVERFLOW      = "GOSUB STACK OVERFLOW"
	ERETURNWITHOUTGOSUB = "RETURN WITHOUT GOSUB"
	EEXPECTEDOPERATOR   = "EXPECTED OPERATOR IN IF"
	EEXPECTEDTHEN       = "EXPECTED 'THEN' IN IF"
	EDIVISIONBYZERO     = "DIVISION BY ZERO"
	EEXPECTEDRPAREN     = "EXPECTED ')'"
	EEXPECTEDNUMBER     = "EXPECTED NUMBER"
	EINVALIDNUMBER      = "INVALID NUMBER"
	EUNKNOWNCOMMAND     = "UNKNOWN COMMAND"
	EFILENAMEREQUIRED   = "FILENAME REQUIRED"
	EFILENOTFOUND       = "FILE NOT FOUND"
	ECANNOTOPENFILE     = "CANNOT OPEN FILE"
	EINTERRUPTED        = "INTERRUPTED"
	EDIRECTONLY         = "CAN'T USE %s IN A PROGRAM"
)

//
// Error classes
//

type errorClass int

const (
	syntaxError errorClass = iota + 1
	semanticError
	resourceError
	runtimeFault
	ioError
)

var errorClassNames = map[errorClass]string{
	syntaxError:   "syntax",
	semanticError: "semantic",
	resourceError: "resource",
	runtimeFault:  "runtime",
	ioError:       "I/O",
}

func (ec errorClass) String() string {

	if name, ok := errorClassNames[ec]; ok {
		return name
	}

	return fmt.Sprintf("errorClass(%d)", int(ec))
}

//
// Every error raised while parsing or executing a statement is one
// of these.  lineNo is filled in by the run loop, and is 0 for errors
// raised by an immediate statement
//

type basicError struct {
	msg    string
	class  errorClass
	lineNo int
}

func (e *basicError) Error() string {

	if e.lineNo != 0 {
		return fmt.Sprintf("%s IN %d", e.msg, e.lineNo)
	}

	return e.msg
}

//
// Maps each fixed message to its class.  Built once by initErrors
//

var errorMap map[string]errorClass

func initErrors() {

	errorMap = make(map[string]errorClass)

	errorMap[EUNTERMINATEDSTRING] = syntaxError
	errorMap[EEXPECTEDINPUTVAR] = syntaxError
	errorMap[EEXPECTEDLETVAR] = syntaxError
	errorMap[EEXPECTEDEQUALS] = syntaxError
	errorMap[EEXPECTEDOPERATOR] = syntaxError
	errorMap[EEXPECTEDTHEN] = syntaxError
	errorMap[EEXPECTEDRPAREN] = syntaxError
	errorMap[EEXPECTEDNUMBER] = syntaxError
	errorMap[EINVALIDNUMBER] = syntaxError
	errorMap[EUNKNOWNCOMMAND] = syntaxError
	errorMap[EFILENAMEREQUIRED] = syntaxError

	errorMap[EINVALIDLINENUMBER] = semanticError
	errorMap[EINVALIDVARIABLE] = semanticError
	errorMap[EDIRECTONLY] = semanticError

	errorMap[ELINETOOLONG] = resourceError
	errorMap[EPROGRAMFULL] = resourceError
	errorMap[EGOSUBOVERFLOW] = resourceError
	errorMap[ERETURNWITHOUTGOSUB] = resourceError

	errorMap[EDIVISIONBYZERO] = runtimeFault
	errorMap[ELINENOTFOUND] = runtimeFault
	errorMap[EINTERRUPTED] = runtimeFault

	errorMap[ELPRINTFILE] = ioError
	errorMap[EFILENOTFOUND] = ioError
	errorMap[ECANNOTOPENFILE] = ioError
}

//
// It should not be possible for the lookup to fail, every message
// above is in the map
//

func getErrorClass(msg string) errorClass {

	class, ok := errorMap[msg]
	basicAssert(ok, "No error class for "+msg)

	return class
}

func runtimeError(msg string) error {

	return &basicError{msg: msg, class: getErrorClass(msg)}
}

//
// Same as runtimeError, for the messages that take arguments.  The
// class is looked up by the unformatted message
//

func runtimeErrorf(f string, args ...any) error {

	return &basicError{msg: fmt.Sprintf(f, args...), class: getErrorClass(f)}
}

//
// Fetch the class of an arbitrary error.  Anything which is not one
// of ours is treated as an I/O error, since the only foreign errors
// that reach the top level come from the os package
//

func errorClassOf(err error) errorClass {

	var be *basicError

	if errors.As(err, &be) {
		return be.class
	}

	return ioError
}

func errorMessage(err error) string {

	var be *basicError

	if errors.As(err, &be) {
		return be.msg
	}

	return err.Error()
}
