// Copyright 2026 CompareCoverage project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package trace implements the registry of deduplicated comparison traces.
//
// A trace is one observation of (module, code offset, match depth, case
// index). The registry records each distinct observation once and keeps,
// per module, the encoded records in first-seen order for the exit-time
// log writer.
package trace

import (
	"github.com/duytai/CompareCoverage/pkg/modules"
)

// MemcmpArg1 is the reserved arg1 value marking records that originate
// from the memory-comparison hooks rather than scalar comparisons. For
// such records arg2 carries the match depth.
const MemcmpArg1 = 0xff

// Key identifies one observation for deduplication purposes.
type Key struct {
	Module int
	Offset uint64
	Arg1   int // match depth 1..8, or MemcmpArg1
	Arg2   int // 1-based switch case index, or memcmp match depth
}

// Entry is one exported record: the owning module index and the encoded
// value written verbatim to the output log.
type Entry struct {
	Module int
	Value  uint64
}

// Registry owns all recorded traces. It is not independently thread-safe:
// the comparison engine serializes access through its own critical section.
type Registry struct {
	table     *modules.Table
	seen      map[Key]struct{}
	perModule [][]uint64
}

func NewRegistry(table *modules.Table) *Registry {
	return &Registry{
		table:     table,
		seen:      make(map[Key]struct{}),
		perModule: make([][]uint64, table.Count()),
	}
}

// TrySave resolves pc to an owning module and records the observation if it
// has not been seen before. Returns whether a new record was created.
// Addresses outside any known module are silently dropped.
func (r *Registry) TrySave(pc uint64, arg1, arg2 int) bool {
	module, offset, ok := r.table.Resolve(pc)
	if !ok {
		return false
	}
	key := Key{Module: module, Offset: offset, Arg1: arg1, Arg2: arg2}
	if _, ok := r.seen[key]; ok {
		return false
	}
	r.seen[key] = struct{}{}
	r.perModule[module] = append(r.perModule[module], Encode(offset, arg1, arg2))
	return true
}

func (r *Registry) ModuleCount() int {
	return r.table.Count()
}

func (r *Registry) ModuleName(index int) string {
	return r.table.Name(index)
}

// Export returns every recorded trace, module index ascending and in
// first-seen order within a module. It is meant to be called once, when
// the process is about to exit.
func (r *Registry) Export() []Entry {
	var entries []Entry
	for module, values := range r.perModule {
		for _, value := range values {
			entries = append(entries, Entry{Module: module, Value: value})
		}
	}
	return entries
}
