package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainReader(t *testing.T) {
	var prompts bytes.Buffer

	pr := newPlainReader(strings.NewReader("first\r\n\nlast"), &prompts)

	line, err := pr.readLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "first", line)

	line, err = pr.readLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "", line)

	line, err = pr.readLine("? ")
	require.NoError(t, err)
	assert.Equal(t, "last", line)

	_, err = pr.readLine("> ")
	assert.Equal(t, io.EOF, err)

	assert.Equal(t, "> > ? > ", prompts.String())

	pr.close()
}

func TestCleanupConsoleWithoutReaders(t *testing.T) {
	ip := newInterp(io.Discard)

	assert.NotPanics(t, ip.cleanupConsole)

	lr := &linerReader{}
	assert.NotPanics(t, lr.close)
}

func TestFormatCPUTime(t *testing.T) {
	assert.Equal(t, "00:00:00", formatCPUTime(0))
	assert.Equal(t, "00:00:59", formatCPUTime(59))
	assert.Equal(t, "00:01:00", formatCPUTime(60))
	assert.Equal(t, "01:02:05", formatCPUTime(3725))
	assert.Equal(t, "27:46:40", formatCPUTime(100000))
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "statements", pluralize("statement", 0))
	assert.Equal(t, "statement", pluralize("statement", 1))
	assert.Equal(t, "statements", pluralize("statement", 2))
}

func TestGetCPUInfo(t *testing.T) {
	utime, stime, err := getCPUInfo()
	if err != nil {
		t.Skipf("no CPU accounting here: %v", err)
	}

	assert.GreaterOrEqual(t, utime, int64(0))
	assert.GreaterOrEqual(t, stime, int64(0))
}
