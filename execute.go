package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goforj/godump"
)

//
// The statement dispatcher.  Fetch the command word at the cursor and
// hand the rest of the line to its handler.  Called for every stored
// line by the run loop, for every immediate line by the REPL, and
// recursively by IF for whatever follows THEN.  Once running has been
// cleared (END, error, ...) this is a no-op, so nothing further on
// the line can have side effects
//

func (ip *interp) executeStatement(c *cursor) error {

	if !ip.r.running {
		return nil
	}

	c.skipWhitespace()

	cmd := c.scanWord()

	c.skipWhitespace()

	ip.debugf("Executing command: '%s', Args: '%s'", cmd, c.rest())

	switch cmd {
	default:
		return runtimeError(EUNKNOWNCOMMAND)

	case "":
		return nil

	case "PRINT":
		return ip.executePrint(c)

	case "LPRINT":
		return ip.executeLprint(c)

	case "LET":
		return ip.executeLet(c)

	case "INPUT":
		return ip.executeInput(c)

	case "GOTO":
		return ip.executeGoto(c)

	case "GOSUB":
		return ip.executeGosub(c)

	case "RETURN":
		return ip.executeReturn()

	case "IF":
		return ip.executeIf(c)

	case "REM":
		return nil

	case "END", "STOP":
		ip.executeEnd()
		return nil

	case "BEEP":
		fmt.Fprint(ip.out, bellSeq)
		return nil

	case "HELP":
		ip.executeHelp(c)
		return nil

	case "RUN", "LIST", "NEW", "SAVE", "LOAD":
		return ip.executeDirect(cmd, c)

	case "QUIT", "EXIT":
		ip.executeBye()
		return nil

	case "SYSTEM", "$IMPORT", "$INCLUDE", "$MERGE":
		ip.executeStub(cmd)
		return nil
	}
}

//
// RUN, LIST, NEW, SAVE and LOAD manipulate the program and the run
// state wholesale, so a running program may not use them
//

func (ip *interp) executeDirect(cmd string, c *cursor) error {

	if ip.r.executing {
		return runtimeErrorf(EDIRECTONLY, cmd)
	}

	switch cmd {
	default:
		unexpectedCommandError(cmd)

	case "RUN":
		return ip.executeRun()

	case "LIST":
		return ip.executeList()

	case "NEW":
		ip.executeNew()
		return nil

	case "SAVE":
		return ip.executeSave(strings.TrimSpace(c.rest()))

	case "LOAD":
		return ip.executeLoad(strings.TrimSpace(c.rest()))
	}

	return nil
}

//
// PRINT "text" | PRINT | PRINT expression
//
// A bare PRINT prints 0
//

func (ip *interp) executePrint(c *cursor) error {

	c.skipWhitespace()

	switch {
	case c.peek() == '"':
		c.advance()

		text := c.rest()

		end := strings.IndexByte(text, '"')
		if end < 0 {
			return runtimeError(EUNTERMINATEDSTRING)
		}

		fmt.Fprintln(ip.out, text[:end])

		c.pos += end + 1

	case c.atEnd():
		fmt.Fprintln(ip.out, 0)

	default:
		val, err := ip.evaluateExpr(c)
		if err != nil {
			return err
		}

		fmt.Fprintln(ip.out, val)
	}

	return nil
}

//
// LPRINT [expression]
//
// Same as PRINT of an expression, but the value is appended to the
// line printer file
//

func (ip *interp) executeLprint(c *cursor) error {

	var val int8
	var err error

	if !c.atEnd() {
		if val, err = ip.evaluateExpr(c); err != nil {
			return err
		}
	}

	return appendLprint(ip.lprintFilename, val)
}

//
// LET v = expression
//

func (ip *interp) executeLet(c *cursor) error {

	c.skipWhitespace()

	slot, ok, err := c.scanVariable()
	if err != nil {
		return err
	} else if !ok {
		return runtimeError(EEXPECTEDLETVAR)
	}

	c.skipWhitespace()

	if c.peek() != '=' {
		return runtimeError(EEXPECTEDEQUALS)
	}

	c.advance()

	val, err := ip.evaluateExpr(c)
	if err != nil {
		return err
	}

	ip.vars.store(slot, val)

	ip.debugf("LET: %s = %d", varName(slot), val)

	return nil
}

//
// INPUT v
//
// End of input is not an error; it just halts the program
//

func (ip *interp) executeInput(c *cursor) error {

	c.skipWhitespace()

	slot, ok, err := c.scanVariable()
	if err != nil {
		return err
	} else if !ok {
		return runtimeError(EEXPECTEDINPUTVAR)
	}

	line, err := ip.input.readLine(executePrompt)
	if err != nil {
		if err == errPromptAborted {
			return runtimeError(EINTERRUPTED)
		}

		ip.debugf("INPUT: end of input, halting")
		ip.r.running = false

		return nil
	}

	val := convertInt8(line)

	ip.vars.store(slot, val)

	ip.debugf("INPUT: %s = %d", varName(slot), val)

	return nil
}

//
// Convert a line of user input the way strtol would: optional leading
// white space and sign, then as many digits as there are, ignoring
// anything after them.  No digits at all is 0.  The value is narrowed
// to 8 bits as it is accumulated
//

func convertInt8(s string) int8 {

	var value uint8

	s = strings.TrimLeft(s, " \t\n\v\f\r")

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "-"), "+")

	for i := 0; i < len(s) && isDigit(s[i]); i++ {
		value = value*10 + s[i] - '0'
	}

	if neg {
		value = -value
	}

	return int8(value)
}

//
// Transfer control to the line at idx.  The run loop will not advance
// the program counter after this statement
//

func (ip *interp) jump(idx int) {

	ip.r.pc = idx
	ip.r.jumped = true
}

func (ip *interp) resolveLineNo(c *cursor) (int, int, error) {

	lineNo, err := c.scanLineNo()
	if err != nil {
		return 0, -1, err
	}

	idx := ip.prog.find(lineNo)
	if idx < 0 {
		return lineNo, -1, runtimeError(ELINENOTFOUND)
	}

	return lineNo, idx, nil
}

//
// GOTO n
//
// n is a bare line number, not an expression
//

func (ip *interp) executeGoto(c *cursor) error {

	lineNo, idx, err := ip.resolveLineNo(c)
	if err != nil {
		return err
	}

	ip.debugf("GOTO: Jumping to line %d", lineNo)

	ip.jump(idx)

	return nil
}

//
// GOSUB n
//
// The return frame is the index of the line after this one
//

func (ip *interp) executeGosub(c *cursor) error {

	if len(ip.r.gosubStack) >= stackSize {
		return runtimeError(EGOSUBOVERFLOW)
	}

	lineNo, idx, err := ip.resolveLineNo(c)
	if err != nil {
		return err
	}

	ip.debugf("GOSUB: Pushing return index %d to stack slot %d",
		ip.r.pc+1, len(ip.r.gosubStack))

	ip.r.gosubStack = append(ip.r.gosubStack, ip.r.pc+1)

	ip.debugf("GOSUB: Jumping to line %d", lineNo)

	ip.jump(idx)

	return nil
}

func (ip *interp) executeReturn() error {

	sp := len(ip.r.gosubStack)

	if sp == 0 {
		return runtimeError(ERETURNWITHOUTGOSUB)
	}

	ret := ip.r.gosubStack[sp-1]
	ip.r.gosubStack = ip.r.gosubStack[:sp-1]

	ip.debugf("RETURN: Popping index %d from stack", ret)

	ip.jump(ret)

	return nil
}

//
// IF expression op expression THEN n
// IF expression op expression THEN statement
//
// A false condition skips the rest of the line.  A true one either
// jumps (THEN followed by a digit) or dispatches the rest of the line
// as a statement of its own, which can itself be an IF
//

func (ip *interp) executeIf(c *cursor) error {

	lhs, err := ip.evaluateExpr(c)
	if err != nil {
		return err
	}

	op, err := scanRelOp(c)
	if err != nil {
		return err
	}

	rhs, err := ip.evaluateExpr(c)
	if err != nil {
		return err
	}

	condition := compareValues(op, lhs, rhs)

	ip.debugf("IF: val1=%d, op='%s', val2=%d. Condition is %s",
		lhs, op, rhs, strings.ToUpper(strconv.FormatBool(condition)))

	c.skipWhitespace()

	if !c.matchKeyword("THEN") {
		return runtimeError(EEXPECTEDTHEN)
	}

	c.skipWhitespace()

	if !condition {
		return nil
	}

	if isDigit(c.peek()) {
		return ip.executeGoto(c)
	}

	return ip.executeStatement(c)
}

func (ip *interp) executeEnd() {

	ip.r.running = false
}

func (ip *interp) executeBye() {

	ip.r.running = false
	ip.exiting = true
}

func (ip *interp) executeStub(cmd string) {

	fmt.Fprintf(ip.out, "FRAMEWORK: Command %s is not implemented.\n", cmd)
}

//
// Reset the run state: program counter to the first line, empty
// GOSUB stack, and all variables zeroed
//

func (ip *interp) initializeRun() {

	ip.r = run{gosubStack: make([]int, 0, stackSize)}

	ip.vars.clear()
}

func (ip *interp) executeNew() {

	ip.debugf("Clearing all memory (NEW).")

	ip.prog.clear()

	ip.initializeRun()
}

//
// The run loop.  Each line is dispatched from a private copy of its
// text.  After each statement the counter moves on by one, unless the
// statement transferred control itself.  We stop at END/STOP, on the
// first error, or when we fall off the end of the program
//

func (ip *interp) executeRun() error {

	ip.initializeRun()

	ip.r.running = true
	ip.r.executing = true

	ip.interrupted.Store(false)

	if ip.printStats {
		initClock(&ip.s)
	}

	ip.debugf("--- RUNNING PROGRAM ---")

	err := ip.executeRunInternal()

	ip.debugf("--- PROGRAM ENDED ---")

	if ip.traceDump {
		godump.Dump(ip.r)
	}

	ip.r.running = false
	ip.r.executing = false

	if ip.printStats {
		ip.printStatistics()
	}

	return err
}

func (ip *interp) executeRunInternal() error {

	for ip.r.running && ip.r.pc < ip.prog.count() {
		if err := ip.checkInterrupts(); err != nil {
			return ip.locateError(err, ip.prog.line(ip.r.pc))
		}

		ln := ip.prog.line(ip.r.pc)

		ip.debugf("Running line %d: %s", ln.lineNo, ln.text)

		ip.r.jumped = false

		if err := ip.executeStatement(newCursor(ln.text)); err != nil {
			return ip.locateError(err, ln)
		}

		ip.r.numStatements++

		if ip.r.running && !ip.r.jumped {
			ip.r.pc++
		}
	}

	return nil
}

//
// Tag an error with the line that raised it
//

func (ip *interp) locateError(err error, ln programLine) error {

	if be, ok := err.(*basicError); ok && be.lineNo == 0 {
		be.lineNo = ln.lineNo
	}

	ip.debugf("Halting program due to error.")

	return err
}

//
// Check to see if sigHdlr has posted an interrupt
//

func (ip *interp) checkInterrupts() error {

	if ip.interrupted.Swap(false) {
		return runtimeError(EINTERRUPTED)
	}

	return nil
}

func (ip *interp) executeList() error {

	return ip.prog.each(func(ln programLine) error {
		_, err := fmt.Fprintln(ip.out, formatLine(ln))
		return err
	})
}

func unexpectedCommandError(cmd string) {

	fatalError(fmt.Sprintf("Unexpected command %s", cmd))
}
