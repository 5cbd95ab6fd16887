package main

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//
// Build an interpreter that reads its prompt lines and INPUT replies
// from input, and collects everything it prints.  Prompts go nowhere,
// so the output is exactly what the interpreter itself printed
//

func newTestInterp(t *testing.T, input string) (*interp, *bytes.Buffer) {
	t.Helper()

	out := &bytes.Buffer{}
	ip := newInterp(out)

	rd := newPlainReader(strings.NewReader(input), io.Discard)
	ip.console = rd
	ip.input = rd

	ip.lprintFilename = filepath.Join(t.TempDir(), lprintFilename)

	return ip, out
}

func storeLines(t *testing.T, ip *interp, lines ...string) {
	t.Helper()

	for _, line := range lines {
		require.NoError(t, ip.storeLine(line), "storing %q", line)
	}
}

//
// Feed a whole session through the REPL and return what it printed
//

func runSession(t *testing.T, input string) (*interp, string) {
	t.Helper()

	ip, out := newTestInterp(t, input)
	ip.repl()

	return ip, out.String()
}

func requireBasicError(t *testing.T, err error, msg string) *basicError {
	t.Helper()

	var be *basicError
	require.True(t, errors.As(err, &be), "expected a basicError, got %v", err)
	assert.Equal(t, msg, be.msg)

	return be
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		args []string
		want options
		ok   bool
	}{
		{nil, options{}, true},
		{[]string{"prog.bas"}, options{filename: "prog.bas"}, true},
		{[]string{"--debug", "prog.bas"}, options{filename: "prog.bas", debug: true}, true},
		{[]string{"--dump", "--stats"}, options{traceDump: true, printStats: true}, true},
		{[]string{"--verbose"}, options{}, false},
		{[]string{"a.bas", "b.bas"}, options{filename: "a.bas"}, false},
	}

	for _, tt := range tests {
		got, ok := parseArgs(tt.args)
		assert.Equal(t, tt.ok, ok, "args %v", tt.args)
		if tt.ok {
			assert.Equal(t, tt.want, got, "args %v", tt.args)
		}
	}
}

func TestVersionInfo(t *testing.T) {
	ip, out := newTestInterp(t, "")

	ip.printVersionInfo()

	assert.Equal(t, "BASIC++ (core) v5.0\n64 kbytes Free\n", out.String())
}

func TestSessionScenario(t *testing.T) {
	_, out := runSession(t, strings.Join([]string{
		"10 LET A=5",
		"20 LET B=10",
		"30 IF A<B THEN PRINT A",
		"40 END",
		"RUN",
	}, "\n")+"\n")

	assert.Equal(t, "5\nOK\nREADY\n\n", out)
}

func TestSessionBlankLine(t *testing.T) {
	_, out := runSession(t, "\n   \n")

	assert.Equal(t, "READY\nREADY\n\n", out)
}

func TestSessionImmediateError(t *testing.T) {
	_, out := runSession(t, "FROB 12\n")

	assert.Equal(t, "\aERROR: UNKNOWN COMMAND\nOK\nREADY\n\n", out)
}

func TestSessionInvalidLineNumber(t *testing.T) {
	ip, out := runSession(t, "0 PRINT 1\n70000 PRINT 2\n10 PRINT 3\n")

	assert.Equal(t,
		"\aERROR: INVALID LINE NUMBER\n\aERROR: INVALID LINE NUMBER\n\n",
		out)
	require.Equal(t, 1, ip.prog.count())
	assert.Equal(t, 10, ip.prog.line(0).lineNo)
}

func TestSessionQuit(t *testing.T) {
	ip, out := runSession(t, "PRINT 1\nQUIT\nPRINT 2\n")

	assert.True(t, ip.exiting)
	assert.Equal(t, "1\nOK\nREADY\n", out)
}

func TestSessionQuitFromProgram(t *testing.T) {
	ip, out := runSession(t, "10 PRINT 1\n20 EXIT\n30 PRINT 2\nRUN\nPRINT 3\n")

	assert.True(t, ip.exiting)
	assert.Equal(t, "1\n", out)
}

func TestSessionErrorInProgram(t *testing.T) {
	_, out := runSession(t, "10 PRINT 1\n20 PRINT 5/0\n30 PRINT 3\nRUN\n")

	assert.Equal(t, "1\n\aERROR: DIVISION BY ZERO IN 20\nOK\nREADY\n\n", out)
}

func TestDebugTrace(t *testing.T) {
	ip, out := newTestInterp(t, "")
	ip.debug = true

	storeLines(t, ip, "10 GOTO 20", "20 END")
	require.NoError(t, ip.executeRun())

	assert.Contains(t, out.String(), "[DEBUG] Inserting line 20 at index 1.\n")
	assert.Contains(t, out.String(), "[DEBUG] GOTO: Jumping to line 20\n")
	assert.Contains(t, out.String(), "[DEBUG] --- PROGRAM ENDED ---\n")
}

func TestCallRecoversFatalError(t *testing.T) {
	ip, out := newTestInterp(t, "")
	ip.r.running = true

	ip.call(func() {
		fatalError("stack botch")
	})

	assert.False(t, ip.r.running)
	assert.Contains(t, out.String(), `"stack botch" at basic_test.go line`)
}

func TestCallRecoversRuntimePanic(t *testing.T) {
	ip, out := newTestInterp(t, "")

	ip.call(func() {
		var m map[string]int
		m["x"] = 1
	})

	assert.Contains(t, out.String(), "assignment to entry in nil map")
}

func TestHelp(t *testing.T) {
	_, out := runSession(t, "HELP goto\nHELP\nHELP XYZZY\n")

	assert.True(t, strings.HasPrefix(out,
		"Continue execution at a line number (GOTO n)\nOK\nREADY\nbeep\nend\n"))
	assert.Contains(t, out, "No help for XYZZY\n")
}

func TestDebugTraceErrors(t *testing.T) {
	ip, out := newTestInterp(t, "")
	ip.debug = true

	ip.executeImmediate(newCursor("LET A = 5"))
	ip.executeImmediate(newCursor("PRINT A / 0"))

	assert.Contains(t, out.String(), "[DEBUG] LET: A = 5\n")
	assert.Contains(t, out.String(), "[DEBUG] runtime error: DIVISION BY ZERO\n")
	assert.Contains(t, out.String(), "[DEBUG] Halting program due to error.\n")
}
