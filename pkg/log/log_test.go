// Copyright 2026 CompareCoverage project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package log

import (
	"bytes"
	golog "log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerbosity(t *testing.T) {
	buf := new(bytes.Buffer)
	golog.SetOutput(buf)
	defer golog.SetOutput(os.Stderr)

	SetVerbosity(1)
	defer SetVerbosity(0)
	Logf(0, "always")
	Logf(1, "verbose")
	Logf(2, "too verbose")
	out := buf.String()
	assert.Contains(t, out, "always")
	assert.Contains(t, out, "verbose")
	assert.NotContains(t, out, "too verbose")
}
