package main

import (
	"io"
	"sync/atomic"
	"time"
)

//
// Constants
//

const VERSION = "5.0"

const dialectName = "core"

const maxLines = 500

//
// Maximum length of the statement text of a stored line, not
// counting the line number
//

const maxLineLen = 127

const stackSize = 64

const numVariables = 26

const minLineNo = 1
const maxLineNo = 65535

const lprintFilename = "lprint.out"

const myPrompt = "> "

const executePrompt = "? "

const readyMsg = "READY"

const okMsg = "OK"

const bellSeq = "\a"

//
// Result of storing a line in the program store
//

const (
	storeNone = iota
	storeDeleted
	storeReplaced
	storeInserted
)

//
// Type definitions
//

type programLine struct {
	lineNo int
	text   string
}

//
// The program store.  Lines are kept sorted ascending by line number,
// with no duplicates.  The program counter is an index into lines
//

type program struct {
	lines []programLine
}

//
// One slot per variable letter, A through Z
//

type symtab struct {
	values [numVariables]int8
}

//
// The execution cursor.  It always points into a private copy of
// the line being interpreted, never into the program store
//

type cursor struct {
	buf string
	pos int
}

//
// Source of text lines: the REPL prompt, and INPUT statements.
// readLine returns io.EOF at end of input, and errPromptAborted
// if the user hit ^C at the prompt
//

type lineReader interface {
	readLine(prompt string) (string, error)
	close()
}

//
// Non-persistent state of a program run
//

type run struct {
	gosubStack    []int
	pc            int
	numStatements int64
	running       bool
	executing     bool
	jumped        bool
}

type stats struct {
	elapsed time.Time
	utime   int64
	stime   int64
}

//
// The interpreter context.  Everything the statement handlers touch
// hangs off of this, and only the goroutine running the REPL ever
// writes to it.  The signal handler only sets the interrupted flag
//

type interp struct {
	prog           program
	vars           symtab
	r              run
	s              stats
	out            io.Writer
	console        lineReader
	input          lineReader
	lprintFilename string
	interrupted    atomic.Bool
	exiting        bool
	debug          bool
	traceDump      bool
	printStats     bool
}

var buildTimestampStr string

//
// Raised (via panic) by internal consistency checks.  file and line
// locate the Go code that found the problem
//

type basicErrorInfo struct {
	msg  string
	file string
	line int
}

//
// Command line settings
//

type options struct {
	filename   string
	debug      bool
	traceDump  bool
	printStats bool
}
