// Copyright 2026 CompareCoverage project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package modules maintains the table of binary images loaded into the
// current process and maps code addresses back to the owning image.
package modules

import (
	"sort"
)

// Image describes one loaded binary image (the executable or a library):
// a display name and the address span it occupies.
type Image struct {
	Name  string
	Start uint64
	End   uint64
}

// Table is an immutable, sorted set of non-overlapping image spans.
// Indices are assigned in ascending start address order and remain stable
// for the lifetime of the table.
type Table struct {
	images []Image
}

// NewTable sorts the images by start address and drops any image whose span
// overlaps a previously accepted one, so that every address resolves to at
// most one image.
func NewTable(images []Image) *Table {
	sorted := append([]Image{}, images...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})
	var accepted []Image
	for _, img := range sorted {
		if img.End <= img.Start {
			continue
		}
		if n := len(accepted); n != 0 && img.Start < accepted[n-1].End {
			continue
		}
		accepted = append(accepted, img)
	}
	return &Table{images: accepted}
}

// Resolve maps an absolute code address to (image index, offset within the
// image). A miss (e.g. dynamically generated code) is a normal outcome and
// reported as ok=false.
func (t *Table) Resolve(pc uint64) (index int, offset uint64, ok bool) {
	i := sort.Search(len(t.images), func(i int) bool {
		return t.images[i].End > pc
	})
	if i == len(t.images) || pc < t.images[i].Start {
		return 0, 0, false
	}
	return i, pc - t.images[i].Start, true
}

func (t *Table) Count() int {
	return len(t.images)
}

// Name returns the display name of the image with the given index.
// The index must have been returned by Resolve.
func (t *Table) Name(index int) string {
	return t.images[index].Name
}
