// Package log provides simple leveled logging for m3cd.
//
// This package implements a lightweight logging system with colored output
// and support for different log levels: DEBUG, INFO, WARN, and ERROR.
// It provides global logging functions that can be used throughout the application.
//
// # Log Levels
//
//   - DEBUG: Detailed diagnostic information (only shown in verbose mode)
//   - INFO: General informational messages, including skipped delta sections
//   - WARN: Warning messages, such as delta values with an unknown action
//   - ERROR: Error messages for failures
//
// # Example Usage
//
//	log.Infof("Applying delta %s", path)
//	log.Warnf("Section %q has no target asset", name)
//
// Enabling verbose mode for debug output:
//
//	log.SetVerbose(true)
//	log.Debugf("Property %s now has %d values", name, n)
//
// Output control:
//
//	log.SetForceStdErr(true) // Send all logs to stderr (used by commands that print data to stdout)
//	log.SetOutput(&buf)      // Capture all logs, mostly useful in tests
//
// Configuration is global and is expected to be set once at startup.
package log
