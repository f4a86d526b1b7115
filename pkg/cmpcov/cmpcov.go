// Copyright 2026 CompareCoverage project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package cmpcov implements the comparison tracing runtime linked into
// instrumented fuzzing targets. Compiler-inserted calls report the operands
// of every comparison, switch dispatch and memory comparison; the runtime
// records how many leading bytes of the operands matched and saves the
// deduplicated observations as synthetic coverage points, so that a
// byte-oriented fuzzer is rewarded for partially guessing multi-byte
// constants and strings. For background see:
//
//	https://clang.llvm.org/docs/SanitizerCoverage.html#tracing-data-flow
//
// The entry points are invoked from arbitrary, highly frequent call sites
// of the target, potentially from multiple threads and reentrantly from
// within the very library functions being hooked, so all shared state is
// guarded by a single critical section with two acquisition modes (see
// hooks.go).
package cmpcov

import (
	"runtime"
	"sync"

	"github.com/duytai/CompareCoverage/pkg/log"
	"github.com/duytai/CompareCoverage/pkg/modules"
	"github.com/duytai/CompareCoverage/pkg/options"
	"github.com/duytai/CompareCoverage/pkg/trace"
)

// Comparisons longer than this are treated as uninteresting bulk data
// rather than string/constant matching.
const MaxDataCmpLength = 4096

// Process-wide state, guarded by mu. Allocated once on first use and kept
// alive until process exit: there is deliberately no teardown for
// process-lifetime data.
var (
	mu          sync.Mutex
	initialized bool
	finalized   bool
	cfg         *options.Config
	registry    *trace.Registry
)

// ensureInit lazily initializes the configuration, the module table and
// the trace registry. Must be called with mu held.
func ensureInit() {
	if initialized {
		return
	}
	c, err := options.ParseEnv()
	if err != nil {
		// Ambiguous configuration risks silently losing data or writing
		// it to the wrong location.
		log.Fatal(err)
	}
	cfg = c
	table, err := modules.Discover()
	if err != nil {
		// Without the module table no address can be resolved. Disable
		// tracing rather than crash the host process.
		log.Logf(0, "CompareCoverage: disabled: %v", err)
		cfg.Enabled = false
		table = modules.NewTable(nil)
	}
	registry = trace.NewRegistry(table)
	initialized = true
}

// callerPC returns the code address of the instrumented call site, i.e.
// the return address of the entry point that calls callerPC: frame 0 is
// callerPC itself, frame 1 the entry point, frame 2 the call site.
func callerPC() uint64 {
	pc, _, _, _ := runtime.Caller(2)
	return uint64(pc)
}
