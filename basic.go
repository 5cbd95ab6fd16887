package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/goforj/godump"
)

const usageMsg = "Usage: basic [--debug] [--dump] [--stats] [program]"

//
// Tricky: init is called under the hood by the GO runtime when
// we fire up, so there are no visible calls to it!
//

func init() {

	initErrors()
}

func main() {

	opts, ok := parseArgs(os.Args[1:])
	if !ok {
		crash(usageMsg)
	}

	ip := newInterp(os.Stdout)

	ip.debug = opts.debug
	ip.traceDump = opts.traceDump
	ip.printStats = opts.printStats

	//
	// We need to close the liner instances in reverse order, to make
	// sure we end up back in normal (cooked) terminal mode
	//

	ip.setupConsole()

	defer func() {
		ip.cleanupConsole()
	}()

	ip.debugf("Debug mode enabled.")

	//
	// Run the signal handling code in a goroutine
	//

	go sigHdlr(ip)

	ip.printVersionInfo()

	if opts.filename != "" {
		ip.call(func() {
			if err := ip.executeLoad(opts.filename); err != nil {
				ip.reportError(err)
			}
		})
	}

	fmt.Fprintln(ip.out, readyMsg)

	ip.repl()
}

//
// Allocate an interpreter writing to out.  The line readers are
// hooked up separately, by setupConsole or by the caller
//

func newInterp(out io.Writer) *interp {

	ip := &interp{
		prog:           newProgram(),
		out:            out,
		lprintFilename: lprintFilename,
	}

	ip.initializeRun()

	return ip
}

func parseArgs(args []string) (options, bool) {

	var opts options

	for _, arg := range args {
		switch {
		case arg == "--debug":
			opts.debug = true

		case arg == "--dump":
			opts.traceDump = true

		case arg == "--stats":
			opts.printStats = true

		case strings.HasPrefix(arg, "-"):
			return opts, false

		case opts.filename != "":
			return opts, false

		default:
			opts.filename = arg
		}
	}

	return opts, true
}

//
// Loop until end of input or QUIT/EXIT.  Each line typed is either
// a stored line edit (it starts with a digit), an immediate statement,
// or nothing at all
//

func (ip *interp) repl() {

	for !ip.exiting {
		line, err := ip.console.readLine(myPrompt)
		if err == errPromptAborted {
			fmt.Fprintln(ip.out, readyMsg)
			continue
		} else if err != nil {
			fmt.Fprintln(ip.out)
			return
		}

		ip.call(func() {
			ip.processLine(line)
		})
	}
}

func (ip *interp) processLine(line string) {

	line = strings.TrimRight(line, "\r\n")

	c := newCursor(line)
	c.skipWhitespace()

	switch {
	case isDigit(c.peek()):
		if err := ip.storeLine(line); err != nil {
			ip.reportError(err)
		}

	case !c.atEnd():
		ip.executeImmediate(c)

		if ip.exiting {
			return
		}

		fmt.Fprintln(ip.out, okMsg)
		fmt.Fprintln(ip.out, readyMsg)

	default:
		fmt.Fprintln(ip.out, readyMsg)
	}
}

//
// Run one statement typed at the prompt.  It gets a pseudo-run of
// its own: running is set for the duration, so an error (or END)
// stops it the same way it would stop a program
//

func (ip *interp) executeImmediate(c *cursor) {

	ip.r.running = true
	ip.r.executing = false

	if err := ip.executeStatement(c); err != nil {
		ip.reportError(err)
	}

	ip.r.running = false
}

//
// Store a numbered line: delete, replace or insert.  The line number
// is validated before the program is touched
//

func (ip *interp) storeLine(line string) error {

	lineNo, text, err := splitLineNo(line)
	if err != nil {
		return err
	}

	action, idx, err := ip.prog.store(lineNo, text)
	if err != nil {
		return err
	}

	switch action {
	case storeDeleted:
		ip.debugf("Deleting line %d at index %d.", lineNo, idx)

	case storeReplaced:
		ip.debugf("Replacing line %d at index %d.", lineNo, idx)

	case storeInserted:
		ip.debugf("Inserting line %d at index %d.", lineNo, idx)
	}

	if ip.traceDump && (action == storeReplaced || action == storeInserted) {
		godump.Dump(ip.prog.line(idx))
	}

	return nil
}

//
// Every error ends up here: ring the bell, print the message, and
// stop whatever was running
//

func (ip *interp) reportError(err error) {

	fmt.Fprint(ip.out, bellSeq)
	fmt.Fprintf(ip.out, "ERROR: %s\n", err)

	ip.debugf("%s error: %s", errorClassOf(err), errorMessage(err))

	if ip.r.running {
		ip.debugf("Halting program due to error.")
		ip.r.running = false
	}
}

func (ip *interp) debugf(f string, args ...any) {

	if ip.debug {
		fmt.Fprintf(ip.out, "[DEBUG] "+f+"\n", args...)
	}
}

func (ip *interp) printVersionInfo() {

	fmt.Fprintf(ip.out, "BASIC++ (%s) v%s", dialectName, VERSION)

	if buildTimestampStr != "" {
		fmt.Fprintf(ip.out, " - built %s", buildTimestampStr)
	}

	fmt.Fprintln(ip.out)

	fmt.Fprintf(ip.out, "%d kbytes Free\n", programBytes()/1024)
}

//
// Size of the program store, counting each line as a 4 byte line
// number plus a NUL terminated text buffer
//

func programBytes() int {

	return maxLines * (4 + maxLineLen + 1)
}

//
// SIGINT stops a running program (and returns to the prompt), which
// is the only way out of something like '10 GOTO 10'.  This goroutine
// never touches interpreter state beyond the interrupted flag
//

func sigHdlr(ip *interp) {

	ch := make(chan os.Signal, 1)

	signal.Notify(ch, os.Interrupt)

	for range ch {
		ip.interrupted.Store(true)
	}
}

//
// Wrapper routine for a top level line.  We need this so that panic
// calls (internal consistency failures) can be caught and decoded,
// after which we carry on at the prompt
//

func (ip *interp) call(f func()) {

	defer func() {
		if e := recover(); e != nil {
			ip.decodePanic(e)
		}
	}()

	f()
}

//
// Two cases here: a call to fatalError (or basicAssert), which has
// already located its caller, or a panic raised by the Go runtime.
// For the latter, the best we can do is walk the stack looking for
// runtime.gopanic, and report the next frame outside the runtime
//

func (ip *interp) decodePanic(e any) {

	ip.r.running = false
	ip.r.executing = false

	switch e := e.(type) {
	default:
		var panicFrame runtime.Frame
		var panicSeen bool

		pcs := make([]uintptr, 64)

		frames := runtime.CallersFrames(pcs[:runtime.Callers(1, pcs)])

		for {
			frame, more := frames.Next()

			if frame.Function == "runtime.gopanic" {
				panicSeen = true
			} else if panicSeen && !strings.HasPrefix(frame.Function, "runtime.") {
				panicFrame = frame
				panicSeen = false
			}

			if !more {
				break
			}
		}

		fmt.Fprintf(ip.out, "%v at %s line %d\n", e,
			filepath.Base(panicFrame.File), panicFrame.Line)

	case *basicErrorInfo:
		fmt.Fprintf(ip.out, "%q at %s line %d\n", e.msg,
			filepath.Base(e.file), e.line)
	}

	if ip.debug {
		debug.PrintStack()
	}
}

//
// A couple of handy 'assert' functions
//

func basicAssert(chk bool, msg string) {

	if !chk {
		fatalErrorCaller(msg, 2)
	}
}

func fatalError(msg string) {

	fatalErrorCaller(msg, 2)
}

//
// Internal errors.  We find the filename and line number of the code
// that detected the problem, and stuff those into the basicErrorInfo
// before calling panic
//

func fatalErrorCaller(msg string, skip int) {

	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		crash("Unable to find caller frame!")
	}

	panic(&basicErrorInfo{strings.TrimRight(msg, "\n"), file, line})
}
