package main

import (
	"fmt"
)

//
// There are exactly 26 variables, one per letter.  'A' (or 'a') maps
// to slot 0, 'B' to slot 1, etc...  Nothing else is a variable
//

func varSlot(ch byte) (int, bool) {

	switch {
	case ch >= 'A' && ch <= 'Z':
		return int(ch - 'A'), true

	case ch >= 'a' && ch <= 'z':
		return int(ch - 'a'), true
	}

	return 0, false
}

func varName(slot int) string {

	basicAssert(slot >= 0 && slot < numVariables,
		fmt.Sprintf("invalid variable slot %d", slot))

	return string(rune('A' + slot))
}

//
// Zero every variable.  Done by NEW and at the start of every RUN
//

func (s *symtab) clear() {

	s.values = [numVariables]int8{}
}

func (s *symtab) fetch(slot int) int8 {

	return s.values[slot]
}

func (s *symtab) store(slot int, val int8) {

	s.values[slot] = val
}
