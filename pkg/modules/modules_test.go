// Copyright 2026 CompareCoverage project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package modules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	table := NewTable([]Image{
		{Name: "libfoo.so", Start: 0x7000, End: 0x9000},
		{Name: "target", Start: 0x1000, End: 0x3000},
	})
	assert.Equal(t, 2, table.Count())
	// Indices follow ascending start address, not enumeration order.
	assert.Equal(t, "target", table.Name(0))
	assert.Equal(t, "libfoo.so", table.Name(1))

	index, offset, ok := table.Resolve(0x1234)
	assert.True(t, ok)
	assert.Equal(t, 0, index)
	assert.Equal(t, uint64(0x234), offset)

	index, offset, ok = table.Resolve(0x8fff)
	assert.True(t, ok)
	assert.Equal(t, 1, index)
	assert.Equal(t, uint64(0x1fff), offset)

	// First and one-past-last addresses of a span.
	_, offset, ok = table.Resolve(0x7000)
	assert.True(t, ok)
	assert.Equal(t, uint64(0), offset)
	_, _, ok = table.Resolve(0x9000)
	assert.False(t, ok)

	// Addresses outside any image (e.g. JIT-generated code) must miss.
	for _, pc := range []uint64{0, 0xfff, 0x3000, 0x5000, ^uint64(0)} {
		_, _, ok := table.Resolve(pc)
		assert.False(t, ok, "pc 0x%x resolved unexpectedly", pc)
	}
}

func TestOverlappingImages(t *testing.T) {
	table := NewTable([]Image{
		{Name: "a", Start: 0x1000, End: 0x3000},
		{Name: "b", Start: 0x2000, End: 0x4000}, // overlaps a, dropped
		{Name: "c", Start: 0x3000, End: 0x5000},
		{Name: "empty", Start: 0x6000, End: 0x6000}, // empty span, dropped
	})
	assert.Equal(t, 2, table.Count())
	index, _, ok := table.Resolve(0x3500)
	assert.True(t, ok)
	assert.Equal(t, "c", table.Name(index))
}

func TestParseMaps(t *testing.T) {
	const maps = `00400000-00452000 r-xp 00000000 08:02 173521      /usr/bin/target
00651000-00652000 r--p 00051000 08:02 173521      /usr/bin/target
00652000-00655000 rw-p 00052000 08:02 173521      /usr/bin/target
00e03000-00e24000 rw-p 00000000 00:00 0           [heap]
7f3c60000000-7f3c60021000 rw-p 00000000 00:00 0
7f3c60b00000-7f3c60cb0000 r-xp 00000000 08:02 135522  /usr/lib/libc-2.31.so
7f3c60cb0000-7f3c60eb0000 ---p 001b0000 08:02 135522  /usr/lib/libc-2.31.so
7fffb8d0c000-7fffb8d2d000 rw-p 00000000 00:00 0       [stack]
`
	images, err := parseMaps([]byte(maps))
	assert.NoError(t, err)
	assert.Equal(t, []Image{
		{Name: "target", Start: 0x400000, End: 0x655000},
		{Name: "libc-2.31.so", Start: 0x7f3c60b00000, End: 0x7f3c60eb0000},
	}, images)
}

func TestParseMapsMalformed(t *testing.T) {
	_, err := parseMaps([]byte("zzzz-0010 r-xp 00000000 08:02 1 /bin/x\n"))
	assert.Error(t, err)
	_, err = parseMaps([]byte("00400000 r-xp 00000000 08:02 1 /bin/x\n"))
	assert.Error(t, err)
}
