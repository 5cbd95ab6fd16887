package main

import (
	"fmt"
	"strings"
)

var helpText = map[string]string{
	"BEEP":     "Sound the terminal bell",
	"END":      "Stop the running program",
	"EXIT":     "Exit from BASIC++ (same as QUIT)",
	"GOSUB":    "Call the subroutine at a line number (GOSUB n)",
	"GOTO":     "Continue execution at a line number (GOTO n)",
	"HELP":     "List the commands, or describe one (HELP cmd)",
	"IF":       "Conditional: IF expr =, <>, < or > expr THEN n or statement",
	"INPUT":    "Read a number from the terminal into a variable (INPUT v)",
	"LET":      "Assign an expression to a variable (LET v = expr)",
	"LIST":     "List the current program",
	"LOAD":     "Replace the current program with one from a file (LOAD file)",
	"LPRINT":   "Append the value of an expression to " + lprintFilename,
	"NEW":      "Erase the current program and all variables",
	"PRINT":    "Print a quoted string, or the value of an expression",
	"QUIT":     "Exit from BASIC++",
	"REM":      "Remark, the rest of the line is ignored",
	"RETURN":   "Return from the most recent GOSUB",
	"RUN":      "Execute the current program from its first line",
	"SAVE":     "Save the current program to a file (SAVE file)",
	"STOP":     "Stop the running program (same as END)",
	"SYSTEM":   "Reserved",
	"$IMPORT":  "Reserved",
	"$INCLUDE": "Reserved",
	"$MERGE":   "Reserved",
}

var helpOrder = []string{"BEEP", "END", "EXIT", "GOSUB", "GOTO", "HELP", "IF",
	"INPUT", "LET", "LIST", "LOAD", "LPRINT", "NEW", "PRINT", "QUIT", "REM",
	"RETURN", "RUN", "SAVE", "STOP"}

func (ip *interp) executeHelp(c *cursor) {

	topic := strings.ToUpper(strings.TrimSpace(c.rest()))

	if topic == "" {
		for _, cmd := range helpOrder {
			fmt.Fprintln(ip.out, strings.ToLower(cmd))
		}
		return
	}

	if text, ok := helpText[topic]; ok {
		fmt.Fprintln(ip.out, text)
	} else {
		fmt.Fprintf(ip.out, "No help for %s\n", topic)
	}
}
