package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

//
// The line printer is a plain text file, opened in append mode for
// every LPRINT, so it can be tailed while a program runs
//

func appendLprint(filename string, val int8) error {

	mode := os.O_APPEND | os.O_CREATE | os.O_WRONLY

	lpr, err := os.OpenFile(filename, mode, 0644)
	if err != nil {
		return runtimeError(ELPRINTFILE)
	}

	defer lpr.Close()

	if _, err = fmt.Fprintf(lpr, "%d\n", val); err != nil {
		return runtimeError(ELPRINTFILE)
	}

	return nil
}

//
// SAVE writes one "<line number> <text>" record per line, in line
// number order, replacing whatever was in the file
//

func (ip *interp) executeSave(filename string) error {

	if filename == "" {
		return runtimeError(EFILENAMEREQUIRED)
	}

	ip.debugf("Saving program to '%s'", filename)

	osFile, err := os.Create(filename)
	if err != nil {
		return runtimeError(ECANNOTOPENFILE)
	}

	writer := bufio.NewWriter(osFile)

	err = ip.prog.each(func(ln programLine) error {
		_, err := writer.WriteString(formatLine(ln) + "\n")
		return err
	})

	if err == nil {
		err = writer.Flush()
	}

	if cerr := osFile.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		return runtimeError(ECANNOTOPENFILE)
	}

	return nil
}

//
// LOAD replaces the current program with the contents of a file.
// Each record is stored exactly as if it had been typed at the
// prompt, so a bad record is reported and skipped, and the rest of
// the file still loads.  The current program is only discarded once
// the file has been opened
//

func (ip *interp) executeLoad(filename string) error {

	if filename == "" {
		return runtimeError(EFILENAMEREQUIRED)
	}

	ip.debugf("Loading program from '%s'", filename)

	osFile, err := os.Open(filename)
	if err != nil {
		return runtimeError(EFILENOTFOUND)
	}

	defer osFile.Close()

	ip.executeNew()

	scanner := bufio.NewScanner(osFile)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")

		if strings.TrimSpace(line) == "" {
			continue
		}

		if err := ip.storeLine(line); err != nil {
			ip.reportError(err)
		}
	}

	if err := scanner.Err(); err != nil {
		return runtimeError(ECANNOTOPENFILE)
	}

	return nil
}
