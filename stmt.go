package main

import (
	"fmt"
	"slices"
)

//
// The program store.  Lines live in a slice sorted ascending by line
// number, allocated once at full capacity.  The program counter is an
// index into that slice, so inserting or deleting a line shifts the
// index of everything after it
//

func newProgram() program {

	return program{lines: make([]programLine, 0, maxLines)}
}

func (p *program) count() int {

	return len(p.lines)
}

func (p *program) line(idx int) programLine {

	basicAssert(idx >= 0 && idx < len(p.lines),
		fmt.Sprintf("line index %d out of range", idx))

	return p.lines[idx]
}

//
// Forget every line, keeping the allocation
//

func (p *program) clear() {

	p.lines = p.lines[:0]
}

//
// Return the index of lineNo, or -1 if there is no such line.  The
// lines are sorted, so we can stop as soon as we pass it
//

func (p *program) find(lineNo int) int {

	for idx, ln := range p.lines {
		if ln.lineNo == lineNo {
			return idx
		}

		if ln.lineNo > lineNo {
			break
		}
	}

	return -1
}

//
// Index of the first line with a number strictly greater than lineNo,
// which is where lineNo belongs if it is not already stored
//

func (p *program) insertionPoint(lineNo int) int {

	for idx, ln := range p.lines {
		if ln.lineNo > lineNo {
			return idx
		}
	}

	return len(p.lines)
}

//
// The single way to change the program.  Empty text deletes the line
// (if present), otherwise the line is replaced in place or inserted
// at its sorted position.  All checks are made before anything is
// touched, so a failed store leaves the program as it was.  Returns
// what was done and the index of the line involved
//

func (p *program) store(lineNo int, text string) (int, int, error) {

	if lineNo < minLineNo || lineNo > maxLineNo {
		return storeNone, -1, runtimeError(EINVALIDLINENUMBER)
	}

	idx := p.find(lineNo)

	if text == "" {
		if idx < 0 {
			return storeNone, -1, nil
		}

		p.lines = slices.Delete(p.lines, idx, idx+1)

		return storeDeleted, idx, nil
	}

	if len(text) > maxLineLen {
		return storeNone, -1, runtimeError(ELINETOOLONG)
	}

	if idx >= 0 {
		p.lines[idx].text = text
		return storeReplaced, idx, nil
	}

	if len(p.lines) >= maxLines {
		return storeNone, -1, runtimeError(EPROGRAMFULL)
	}

	idx = p.insertionPoint(lineNo)

	p.lines = slices.Insert(p.lines, idx, programLine{lineNo: lineNo, text: text})

	return storeInserted, idx, nil
}

//
// Walk the program in line number order
//

func (p *program) each(f func(ln programLine) error) error {

	for _, ln := range p.lines {
		if err := f(ln); err != nil {
			return err
		}
	}

	return nil
}

func formatLine(ln programLine) string {

	return fmt.Sprintf("%d %s", ln.lineNo, ln.text)
}
