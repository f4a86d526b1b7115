// Copyright 2026 CompareCoverage project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package cmpcov

import (
	"math/bits"

	"github.com/duytai/CompareCoverage/pkg/trace"
)

// significantWidth returns the minimum number of bytes needed to represent
// the value without leading zero bytes. Using it instead of the operand's
// storage width avoids wasting trace budget on the high-order zero bytes
// of a small constant stored in a wide integer.
func significantWidth(x uint64) int {
	return (bits.Len64(x) + 7) / 8
}

// matchingBytes counts consecutive matching bytes of x and y starting from
// the least significant byte, bounded by count.
func matchingBytes(count int, x, y uint64) int {
	i := 0
	for ; i < count; i++ {
		if byte(x>>(i*8)) != byte(y>>(i*8)) {
			break
		}
	}
	return i
}

// handleCmp records the incremental ladder of synthetic coverage points for
// one scalar comparison: one trace per matched byte count 1..n, so the
// fuzzer is rewarded each time it matches one more byte, not only when it
// matches all of them. Called with mu held.
func handleCmp(arg1, arg2 uint64, width, switchCase int, pc uint64) {
	n := matchingBytes(width, arg1, arg2)
	for i := 1; i <= n; i++ {
		registry.TrySave(pc, i, switchCase)
	}
}

// handleMemcmp is the memory-order counterpart of handleCmp: bytes are
// matched from the first byte, and the records carry the memcmp marker in
// arg1 and the depth in arg2. Called with mu held.
func handleMemcmp(s1, s2 []byte, length int, pc uint64) {
	if length > len(s1) {
		length = len(s1)
	}
	if length > len(s2) {
		length = len(s2)
	}
	n := 0
	for ; n < length; n++ {
		if s1[n] != s2[n] {
			break
		}
	}
	for i := 1; i <= n; i++ {
		registry.TrySave(pc, trace.MemcmpArg1, i)
	}
}

// strnlen and strnlen2 are internal length scanners. They must not call
// any of the hooked library functions: the hooks service these very
// functions and would otherwise re-trigger themselves.
func strnlen(s []byte, max int) int {
	if max > len(s) {
		max = len(s)
	}
	n := 0
	for ; n < max && s[n] != 0; n++ {
	}
	return n
}

func strnlen2(s1, s2 []byte, max int) int {
	if max > len(s1) {
		max = len(s1)
	}
	if max > len(s2) {
		max = len(s2)
	}
	n := 0
	for ; n < max && s1[n] != 0 && s2[n] != 0; n++ {
	}
	return n
}
