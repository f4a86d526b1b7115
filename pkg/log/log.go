// Copyright 2026 CompareCoverage project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package log provides functionality similar to standard log package with some extensions:
//   - verbosity levels
//   - global verbosity setting shared by all runtime packages
//
// Since this code is loaded into arbitrary host processes, verbosity is
// controlled by the CMPCOV_VERBOSE environment variable rather than a
// command line flag (the runtime must not register flags in the target).
// All output goes to stderr: the target owns stdout.
package log

import (
	golog "log"
	"os"
	"strconv"
	"sync/atomic"
)

var verbosity atomic.Int32

func init() {
	golog.SetOutput(os.Stderr)
	if v, err := strconv.Atoi(os.Getenv("CMPCOV_VERBOSE")); err == nil {
		verbosity.Store(int32(v))
	}
}

// SetVerbosity overrides the environment-provided verbosity (used by tests
// and command line tools).
func SetVerbosity(v int) {
	verbosity.Store(int32(v))
}

// Logf writes the message if its verbosity level is enabled. Level 0 is
// always printed and is reserved for messages the user must see (output
// file summaries, unwritable logs).
func Logf(v int, msg string, args ...interface{}) {
	if int32(v) <= verbosity.Load() {
		golog.Printf(msg, args...)
	}
}

func Fatal(err error) {
	golog.Fatal(err)
}

func Fatalf(msg string, args ...interface{}) {
	golog.Fatalf(msg, args...)
}
