// Copyright 2026 CompareCoverage project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

//go:build linux

package modules

import (
	"fmt"
	"os"

	"github.com/duytai/CompareCoverage/pkg/log"
)

// Discover enumerates the binary images currently mapped into the process.
// The enumeration happens once; images loaded later are simply unresolvable.
func Discover() (*Table, error) {
	data, err := os.ReadFile("/proc/self/maps")
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate loaded images: %w", err)
	}
	images, err := parseMaps(data)
	if err != nil {
		return nil, err
	}
	table := NewTable(images)
	for i := 0; i < table.Count(); i++ {
		log.Logf(2, "module %v: %v", i, table.Name(i))
	}
	return table, nil
}
