package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/danswartzendruber/liner"
	"github.com/tklauser/go-sysconf"
	"golang.org/x/term"
)

var errPromptAborted = errors.New("prompt aborted")

//
// Line reader backed by a liner instance, for when we are talking to
// a real terminal
//

type linerReader struct {
	state   *liner.State
	history bool
}

//
// Line reader for anything else (pipes, files, tests).  The prompt is
// written to out, so a transcript looks the same as a terminal session
//

type plainReader struct {
	reader *bufio.Reader
	out    io.Writer
}

//
// We create two liner instances when on a terminal.  One for the
// prompt, and one for any INPUT statements, so that the prompt gets a
// scrollback history but user input does not.  They must be closed in
// LIFO order, as Close restores the terminal state seen by NewLiner
//

func (ip *interp) setupConsole() {

	if isTerminal() {
		ip.console = newLinerReader(true)
		ip.input = newLinerReader(false)
		return
	}

	shared := newPlainReader(os.Stdin, ip.out)

	ip.console = shared
	ip.input = shared
}

func (ip *interp) cleanupConsole() {

	if ip.input != nil {
		ip.input.close()
	}

	if ip.console != nil {
		ip.console.close()
	}
}

//
// Are we connected to a tty?
//

func isTerminal() bool {

	return term.IsTerminal(int(os.Stdin.Fd())) &&
		term.IsTerminal(int(os.Stdout.Fd()))
}

func newLinerReader(history bool) *linerReader {

	l := liner.NewLiner()

	l.SetCtrlCAborts(true)

	return &linerReader{state: l, history: history}
}

func (lr *linerReader) readLine(prompt string) (string, error) {

	s, err := lr.state.Prompt(prompt)

	//
	// ^C at the prompt comes back as an error, which we hand back as
	// errPromptAborted.  Anything else (including ^D at the start of
	// the line) is treated as end of input
	//

	if err != nil {
		if err == liner.ErrPromptAborted {
			return "", errPromptAborted
		}

		return "", io.EOF
	}

	if lr.history && strings.TrimSpace(s) != "" {
		lr.state.AppendHistory(s)
	}

	return s, nil
}

func (lr *linerReader) close() {

	if lr.state != nil {
		lr.state.Close()
		lr.state = nil
	}
}

func newPlainReader(r io.Reader, out io.Writer) *plainReader {

	return &plainReader{reader: bufio.NewReader(r), out: out}
}

//
// A final line with no newline still counts.  io.EOF is only returned
// when there is nothing left at all
//

func (pr *plainReader) readLine(prompt string) (string, error) {

	fmt.Fprint(pr.out, prompt)

	line, err := pr.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", io.EOF
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func (pr *plainReader) close() {
}

//
// Print a fatal message and abort the process.  We write to standard
// error, since the user may have redirected standard output.  Only
// used before the console is set up
//

func crash(msg string) {

	if msg != "" {
		fmt.Fprintln(os.Stderr, msg)
	}

	os.Exit(1)
}

func pluralize(str string, num int64) string {

	//
	// Oddity: 0 is considered plural
	//

	if num != 1 {
		return str + "s"
	}

	return str
}

//
// Initialize the clock
//

func initClock(s *stats) {

	s.elapsed = time.Now()
	s.utime, s.stime, _ = getCPUInfo()
}

//
// Called after every RUN when --stats is on
//

func (ip *interp) printStatistics() {

	elapsed := int64(time.Since(ip.s.elapsed).Seconds())

	fmt.Fprintln(ip.out)

	if utime, stime, err := getCPUInfo(); err == nil {
		fmt.Fprintf(ip.out, "CPU Usage: elapsed = %s / user = %s / system = %s\n",
			formatCPUTime(elapsed), formatCPUTime(utime-ip.s.utime),
			formatCPUTime(stime-ip.s.stime))
	} else {
		fmt.Fprintf(ip.out, "Elapsed = %s\n", formatCPUTime(elapsed))
	}

	fmt.Fprintf(ip.out, "%d %s executed\n", ip.r.numStatements,
		pluralize("statement", ip.r.numStatements))
}

func formatCPUTime(t int64) string {

	var h, m int64

	if t >= 3600 {
		h = t / 3600
		t = t % 3600
	}

	if t >= 60 {
		m = t / 60
		t = t % 60
	}

	return fmt.Sprintf("%02d:%02d:%02d", h, m, t)
}

//
// User and system CPU time of this process, in seconds.  Fields 14
// and 15 of /proc/self/stat are in clock ticks, so this only works on
// systems with a /proc
//

func getCPUInfo() (int64, int64, error) {

	clktck, err := sysconf.Sysconf(sysconf.SC_CLK_TCK)
	if err != nil {
		return 0, 0, err
	}

	contents, err := os.ReadFile("/proc/self/stat")
	if err != nil {
		return 0, 0, err
	}

	//
	// The command name (field 2) is in parentheses and may contain
	// blanks, so split after the closing one
	//

	stat := string(contents)
	if idx := strings.LastIndexByte(stat, ')'); idx >= 0 {
		stat = stat[idx+1:]
	}

	fields := strings.Fields(stat)
	if len(fields) < 13 {
		return 0, 0, fmt.Errorf("short /proc/self/stat (%d fields)", len(fields))
	}

	utime, err := strconv.ParseInt(fields[11], 10, 64)
	if err != nil {
		return 0, 0, err
	}

	stime, err := strconv.ParseInt(fields[12], 10, 64)
	if err != nil {
		return 0, 0, err
	}

	return utime / clktck, stime / clktck, nil
}
