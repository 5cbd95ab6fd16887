package main

import (
	"strings"
)

//
// Give the cursor its own copy of the text, so nothing a statement
// handler does can ever reach the stored program
//

func newCursor(line string) *cursor {

	return &cursor{buf: strings.Clone(line)}
}

func (c *cursor) atEnd() bool {

	return c.pos >= len(c.buf)
}

//
// Returns 0 at end of line, which is never a valid BASIC character
//

func (c *cursor) peek() byte {

	if c.atEnd() {
		return 0
	}

	return c.buf[c.pos]
}

func (c *cursor) advance() {

	if !c.atEnd() {
		c.pos++
	}
}

func (c *cursor) rest() string {

	return c.buf[c.pos:]
}

func (c *cursor) skipWhitespace() {

	for !c.atEnd() && isBlank(c.buf[c.pos]) {
		c.pos++
	}
}

//
// Fetch the whitespace-delimited word at the cursor, folded to
// upper case.  An empty string means there is nothing left
//

func (c *cursor) scanWord() string {

	start := c.pos

	for !c.atEnd() && !isSpace(c.buf[c.pos]) {
		c.pos++
	}

	return strings.ToUpper(c.buf[start:c.pos])
}

//
// Match a keyword, ignoring case.  The keyword must be followed by
// whitespace or the end of the line, so THEN does not match THENX.
// The cursor only moves on a match
//

func (c *cursor) matchKeyword(kw string) bool {

	end := c.pos + len(kw)

	if end > len(c.buf) || !strings.EqualFold(c.buf[c.pos:end], kw) {
		return false
	}

	if end < len(c.buf) && !isSpace(c.buf[end]) {
		return false
	}

	c.pos = end

	return true
}

//
// Scan an optionally signed decimal literal, and narrow it to 8 bits.
// Since the narrowing is modulo 256, we can accumulate in a byte and
// let it wrap as we go.  A literal running straight into a letter or
// a '.' is malformed
//

func (c *cursor) scanLiteral() (int8, error) {

	var value uint8
	var neg bool

	c.skipWhitespace()

	start := c.pos

	switch c.peek() {
	case '-':
		neg = true
		c.advance()

	case '+':
		c.advance()
	}

	digits := c.pos

	for isDigit(c.peek()) {
		value = value*10 + c.peek() - '0'
		c.advance()
	}

	if c.pos == digits {
		c.pos = start
		return 0, runtimeError(EEXPECTEDNUMBER)
	}

	if ch := c.peek(); isLetter(ch) || ch == '.' {
		return 0, runtimeError(EINVALIDNUMBER)
	}

	if neg {
		value = -value
	}

	return int8(value), nil
}

//
// Scan a line number operand (GOTO, GOSUB, THEN <n>).  These are
// not narrowed, they must name a stored line.  Anything too big to
// be a line number is clamped to maxLineNo+1 so the lookup fails
//

func (c *cursor) scanLineNo() (int, error) {

	var lineNo int

	c.skipWhitespace()

	start := c.pos

	for isDigit(c.peek()) {
		if lineNo <= maxLineNo {
			lineNo = lineNo*10 + int(c.peek()-'0')
		}
		c.advance()
	}

	if c.pos == start {
		return 0, runtimeError(EEXPECTEDNUMBER)
	}

	if ch := c.peek(); isLetter(ch) || ch == '.' {
		return 0, runtimeError(EINVALIDNUMBER)
	}

	return min(lineNo, maxLineNo+1), nil
}

//
// Scan a single letter variable name, returning its slot.  ok is
// false (and the cursor unmoved) if there is no letter here.  A letter
// followed by more name characters is not a variable we know about
//

func (c *cursor) scanVariable() (slot int, ok bool, err error) {

	ch := c.peek()
	if !isLetter(ch) {
		return 0, false, nil
	}

	c.advance()

	if next := c.peek(); isLetter(next) || isDigit(next) {
		return 0, true, runtimeError(EINVALIDVARIABLE)
	}

	slot, valid := varSlot(ch)
	if !valid {
		return 0, true, runtimeError(EINVALIDVARIABLE)
	}

	return slot, true, nil
}

//
// Parse the leading line number of a line typed at the prompt (or
// read by LOAD).  The rest of the line, minus leading whitespace, is
// the statement text.  Line numbers outside 1-65535 are rejected
//

func splitLineNo(line string) (int, string, error) {

	c := newCursor(line)
	c.skipWhitespace()

	start := c.pos
	lineNo := 0

	for isDigit(c.peek()) {
		if lineNo <= maxLineNo {
			lineNo = lineNo*10 + int(c.peek()-'0')
		}
		c.advance()
	}

	if c.pos == start || lineNo < minLineNo || lineNo > maxLineNo {
		return 0, "", runtimeError(EINVALIDLINENUMBER)
	}

	c.skipSpace()

	return lineNo, c.rest(), nil
}

//
// Same as skipWhitespace, but also eats any other ASCII white space
//

func (c *cursor) skipSpace() {

	for !c.atEnd() && isSpace(c.buf[c.pos]) {
		c.pos++
	}
}

func isBlank(ch byte) bool {

	return ch == ' ' || ch == '\t'
}

func isSpace(ch byte) bool {

	switch ch {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}

	return false
}

func isDigit(ch byte) bool {

	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {

	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
