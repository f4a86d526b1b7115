// Copyright 2026 CompareCoverage project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package trace

// Output log format: an 8-byte magic followed by fixed-width 64-bit
// little-endian records, mirroring the layout of .sancov coverage logs so
// that existing per-image log consumers can ingest the files.
const Magic uint64 = 0xC0BFFFFFFFFFFF64

// Encode packs one observation into a single record value:
//
//	offset<<24 | arg1<<16 | arg2
//
// The packing is injective as long as the module-relative offset fits in
// 40 bits and arg2 in 16 bits; case indices and memcmp depths recorded by
// the engine stay well below that bound. The encoding only needs to be
// stable within a single process run.
func Encode(offset uint64, arg1, arg2 int) uint64 {
	return offset<<24 | uint64(arg1&0xff)<<16 | uint64(arg2&0xffff)
}

// Decode is the inverse of Encode, used by offline log tooling.
func Decode(value uint64) (offset uint64, arg1, arg2 int) {
	return value >> 24, int(value >> 16 & 0xff), int(value & 0xffff)
}
