package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

const (
	levelDebug = iota
	levelInfo
	levelWarn
	levelError
)

var (
	verbose     = false
	disableLogs = false
	forceStdErr = false
	output      io.Writer
	mu          sync.Mutex

	levelNames = map[int]string{
		levelDebug: "[DBG]",
		levelInfo:  "[INF]",
		levelWarn:  "[WRN]",
		levelError: "[ERR]",
	}
	levelColors = map[int]string{
		levelDebug: "\033[37m",
		levelInfo:  "\033[36m",
		levelWarn:  "\033[33m",
		levelError: "\033[31m",
	}
)

const colorReset = "\033[0m"

// SetVerbose turns debug output on or off. The CLI sets it from -verbose.
func SetVerbose(v bool) {
	verbose = v
}

// IsVerbose reports whether debug output is on.
func IsVerbose() bool {
	return verbose
}

// DisableLogs silences every level until EnableLogs is called.
func DisableLogs() {
	disableLogs = true
}

// EnableLogs re-enables logging after DisableLogs.
func EnableLogs() {
	disableLogs = false
}

func IsDisabled() bool {
	return disableLogs
}

// SetForceStdErr sends every level to stderr, keeping stdout free for
// merge reports and dumps.
func SetForceStdErr(v bool) {
	forceStdErr = v
}

// SetOutput redirects all log output to w, without colors. Passing nil
// restores stdout and stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debugf logs only in verbose mode.
func Debugf(format string, args ...interface{}) {
	if verbose {
		logMessage(levelDebug, format, args...)
	}
}

func Infof(format string, args ...interface{}) {
	logMessage(levelInfo, format, args...)
}

func Warnf(format string, args ...interface{}) {
	logMessage(levelWarn, format, args...)
}

// Errorf always goes to stderr unless SetOutput is in effect.
func Errorf(format string, args ...interface{}) {
	logMessage(levelError, format, args...)
}

// Fatalf logs at error level and exits with status 1.
func Fatalf(format string, args ...interface{}) {
	logMessage(levelError, format, args...)
	os.Exit(1)
}

func logMessage(level int, format string, args ...interface{}) {
	if disableLogs {
		return
	}
	message := fmt.Sprintf(format, args...)

	mu.Lock()
	defer mu.Unlock()

	if output != nil {
		_, _ = io.WriteString(output, levelNames[level]+" "+message+"\n")
		return
	}

	line := levelColors[level] + levelNames[level] + colorReset + " " + message + "\n"
	if forceStdErr || level == levelError {
		_, _ = os.Stderr.WriteString(line)
	} else {
		_, _ = os.Stdout.WriteString(line)
	}
}
