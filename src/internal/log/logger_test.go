package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(nil) })
	return &buf
}

func TestSetVerbose(t *testing.T) {
	originalVerbose := verbose
	defer func() { verbose = originalVerbose }()

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebugf_VerboseOff(t *testing.T) {
	originalVerbose := verbose
	defer func() { verbose = originalVerbose }()
	buf := captureLogs(t)

	SetVerbose(false)
	Debugf("hidden %d", 1)

	assert.Empty(t, buf.String())
}

func TestDebugf_VerboseOn(t *testing.T) {
	originalVerbose := verbose
	defer func() { verbose = originalVerbose }()
	buf := captureLogs(t)

	SetVerbose(true)
	Debugf("visible %d", 2)

	assert.Contains(t, buf.String(), "[DBG]")
	assert.Contains(t, buf.String(), "visible 2")
}

func TestLevels_Prefixes(t *testing.T) {
	buf := captureLogs(t)

	Infof("info message")
	Warnf("warn message")
	Errorf("error message")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if assert.Len(t, lines, 3) {
		assert.Contains(t, lines[0], "[INF]")
		assert.Contains(t, lines[1], "[WRN]")
		assert.Contains(t, lines[2], "[ERR]")
	}
}

func TestDisableLogs(t *testing.T) {
	buf := captureLogs(t)
	DisableLogs()
	defer EnableLogs()

	assert.True(t, IsDisabled())
	Infof("should not appear")
	Errorf("should not appear either")

	assert.Empty(t, buf.String())
}

func TestSetOutput_NoColors(t *testing.T) {
	buf := captureLogs(t)

	Warnf("section %s skipped", "[Foo]")

	assert.Equal(t, "[WRN] section [Foo] skipped\n", buf.String())
	assert.NotContains(t, buf.String(), "\033[")
}
