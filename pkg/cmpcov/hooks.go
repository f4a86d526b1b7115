// Copyright 2026 CompareCoverage project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package cmpcov

// Entry points invoked by instrumented code before every executed
// comparison. Their names and signatures are fixed by the instrumentation
// ABI; the code location associated with an observation is the call site
// that invoked the entry point.
//
// Two locking disciplines are used over the same mutex. The scalar
// comparison and switch entry points acquire it blocking: they never call
// hooked library functions internally, so blocking cannot deadlock. The
// memory comparison hooks only try to acquire it: they can be reached
// reentrantly from within the engine's own call chain, and skipping an
// observation is preferable to deadlocking the target.

// TraceCmp1 exists only because the ABI requires the symbol. Single-byte
// comparisons are not instrumented: fuzzers operate on byte granularity
// and eventually guess a single byte on their own, while tracing them
// would bloat the coverage log disproportionately to its value.
func TraceCmp1(arg1, arg2 uint8) {
}

func TraceCmp2(arg1, arg2 uint16) {
	pc := callerPC()
	mu.Lock()
	defer mu.Unlock()
	ensureInit()
	if !cfg.Enabled || !cfg.TraceNonConstCmp {
		return
	}
	handleCmp(uint64(arg1), uint64(arg2), 2, 0, pc)
}

func TraceCmp4(arg1, arg2 uint32) {
	pc := callerPC()
	mu.Lock()
	defer mu.Unlock()
	ensureInit()
	if !cfg.Enabled || !cfg.TraceNonConstCmp {
		return
	}
	handleCmp(uint64(arg1), uint64(arg2), 4, 0, pc)
}

func TraceCmp8(arg1, arg2 uint64) {
	pc := callerPC()
	mu.Lock()
	defer mu.Unlock()
	ensureInit()
	if !cfg.Enabled || !cfg.TraceNonConstCmp {
		return
	}
	handleCmp(arg1, arg2, 8, 0, pc)
}

// TraceConstCmp1 is a required no-op, see TraceCmp1.
func TraceConstCmp1(arg1, arg2 uint8) {
}

// TraceConstCmp2 traces a comparison whose first operand is a compile-time
// constant. Constants below 0x100 carry the same caveat as single-byte
// comparisons and are skipped before even taking the lock.
func TraceConstCmp2(arg1, arg2 uint16) {
	if arg1 < 0x100 {
		return
	}
	pc := callerPC()
	mu.Lock()
	defer mu.Unlock()
	ensureInit()
	if !cfg.Enabled {
		return
	}
	handleCmp(uint64(arg1), uint64(arg2), 2, 0, pc)
}

func TraceConstCmp4(arg1, arg2 uint32) {
	if arg1 < 0x100 {
		return
	}
	pc := callerPC()
	mu.Lock()
	defer mu.Unlock()
	ensureInit()
	if !cfg.Enabled {
		return
	}
	handleCmp(uint64(arg1), uint64(arg2), significantWidth(uint64(arg1)), 0, pc)
}

func TraceConstCmp8(arg1, arg2 uint64) {
	if arg1 < 0x100 {
		return
	}
	pc := callerPC()
	mu.Lock()
	defer mu.Unlock()
	ensureInit()
	if !cfg.Enabled {
		return
	}
	handleCmp(arg1, arg2, significantWidth(arg1), 0, pc)
}

// TraceSwitch traces a switch dispatch. Per the ABI, cases[0] is the number
// of case constants, cases[1] the bit width of val and cases[2:] the case
// constants. The block is call-site-local mutable storage owned by the
// instrumentation: if no case constant is wider than one byte, cases[0] is
// zeroed so that future executions of the same call site short-circuit
// before doing any work.
func TraceSwitch(val uint64, cases []uint64) {
	if len(cases) < 2 || cases[0] == 0 {
		return
	}
	pc := callerPC()
	mu.Lock()
	defer mu.Unlock()
	ensureInit()
	if !cfg.Enabled {
		return
	}
	count := int(cases[0])
	if count > len(cases)-2 {
		count = len(cases) - 2
	}
	wideValueFound := false
	for i := 0; i < count; i++ {
		c := cases[2+i]
		if c < 0x100 {
			continue
		}
		wideValueFound = true
		handleCmp(val, c, significantWidth(c), i+1, pc)
	}
	if !wideValueFound {
		cases[0] = 0
	}
}

// TraceDiv4 is a required no-op: division operands don't carry a
// significant amount of useful signal.
func TraceDiv4(val uint32) {
}

// TraceDiv8 is a required no-op, see TraceDiv4.
func TraceDiv8(val uint64) {
}

// TraceGEP is a required no-op: address computations are not instrumented.
func TraceGEP(idx uintptr) {
}

// HookMemcmp traces a memcmp-style comparison of n bytes. The caller PC is
// supplied by the hook ABI. Comparisons longer than MaxDataCmpLength are
// ignored outright.
func HookMemcmp(callerPC uint64, s1, s2 []byte, n int) {
	if n > MaxDataCmpLength {
		return
	}
	// A failed acquisition is most likely a reentry from within the
	// engine's own call chain; skip the observation.
	if !mu.TryLock() {
		return
	}
	defer mu.Unlock()
	ensureInit()
	if !cfg.Enabled || !cfg.TraceMemoryCmp {
		return
	}
	handleMemcmp(s1, s2, n, callerPC)
}

// HookStrncmp traces a strncmp-style comparison: the effective length is
// additionally bounded by the shorter of the two strings.
func HookStrncmp(callerPC uint64, s1, s2 []byte, n int) {
	if n > MaxDataCmpLength {
		return
	}
	if !mu.TryLock() {
		return
	}
	defer mu.Unlock()
	ensureInit()
	if !cfg.Enabled || !cfg.TraceMemoryCmp {
		return
	}
	// Effectively n = min(n, strlen(s1), strlen(s2)).
	n = strnlen(s1, n)
	n = strnlen(s2, n)
	handleMemcmp(s1, s2, n, callerPC)
}

// HookStrcmp traces a strcmp-style comparison.
func HookStrcmp(callerPC uint64, s1, s2 []byte) {
	if !mu.TryLock() {
		return
	}
	defer mu.Unlock()
	ensureInit()
	if !cfg.Enabled || !cfg.TraceMemoryCmp {
		return
	}
	// If both strings are longer than MaxDataCmpLength, it's most likely
	// not a comparison we're interested in.
	n := strnlen2(s1, s2, MaxDataCmpLength+1)
	if n > MaxDataCmpLength {
		return
	}
	handleMemcmp(s1, s2, n, callerPC)
}

// Case-insensitive variants record the same byte-match information as
// their case-sensitive counterparts.

func HookStrncasecmp(callerPC uint64, s1, s2 []byte, n int) {
	HookStrncmp(callerPC, s1, s2, n)
}

func HookStrcasecmp(callerPC uint64, s1, s2 []byte) {
	HookStrcmp(callerPC, s1, s2)
}
