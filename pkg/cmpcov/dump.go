// Copyright 2026 CompareCoverage project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package cmpcov

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/duytai/CompareCoverage/pkg/log"
	"github.com/duytai/CompareCoverage/pkg/osutil"
	"github.com/duytai/CompareCoverage/pkg/trace"
)

// Fini drains the trace registry and writes one coverage log per module
// with at least one recorded trace. The instrumentation arranges for it to
// run at process termination (a deferred call in the target's main);
// subsequent calls are no-ops. Nothing is written if the instrumentation
// never ran or was disabled.
func Fini() {
	mu.Lock()
	defer mu.Unlock()
	if !initialized || finalized || !cfg.Enabled {
		return
	}
	finalized = true
	dumpCoverage()
}

// outputFile tracks one per-module log during the exit-time dump.
type outputFile struct {
	file   *os.File
	path   string
	count  int
	failed bool
}

// dumpCoverage writes the recorded traces, in first-seen order within each
// module. An unwritable file loses that module's data and is reported
// loudly, but does not prevent the remaining modules' logs from being
// written. Called with mu held.
func dumpCoverage() {
	if err := osutil.MkdirAll(cfg.CoverageDir); err != nil {
		log.Logf(0, "CompareCoverage: failed to create output directory: %v", err)
		return
	}
	files := make([]*outputFile, registry.ModuleCount())
	for _, entry := range registry.Export() {
		of := files[entry.Module]
		if of == nil {
			of = openOutputFile(entry.Module)
			files[entry.Module] = of
		}
		if of.failed {
			continue
		}
		if err := binary.Write(of.file, binary.LittleEndian, entry.Value); err != nil {
			log.Logf(0, "CompareCoverage: failed to write %q: %v", of.path, err)
			of.failed = true
			continue
		}
		of.count++
	}
	for _, of := range files {
		if of == nil || of.file == nil {
			continue
		}
		if err := of.file.Close(); err != nil && !of.failed {
			log.Logf(0, "CompareCoverage: failed to write %q: %v", of.path, err)
			continue
		}
		if !of.failed {
			log.Logf(0, "CompareCoverage: %v: %v PCs written", of.path, of.count)
		}
	}
}

// The file name is deterministic: a fixed prefix, the module's display
// name and the pid, matching the naming convention of per-image coverage
// logs.
func openOutputFile(module int) *outputFile {
	name := fmt.Sprintf("cmp.%v.%v.sancov", registry.ModuleName(module), os.Getpid())
	of := &outputFile{path: filepath.Join(cfg.CoverageDir, name)}
	f, err := os.Create(of.path)
	if err != nil {
		log.Logf(0, "CompareCoverage: unable to open %q for writing: %v", of.path, err)
		of.failed = true
		return of
	}
	of.file = f
	if err := binary.Write(f, binary.LittleEndian, trace.Magic); err != nil {
		log.Logf(0, "CompareCoverage: failed to write %q: %v", of.path, err)
		of.failed = true
	}
	return of
}
