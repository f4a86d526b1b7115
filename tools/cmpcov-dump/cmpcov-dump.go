// Copyright 2026 CompareCoverage project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// cmpcov-dump decodes the comparison trace logs written by the runtime
// (cmp.<module>.<pid>.sancov files) and prints one observation per line:
// the module-relative code offset, the number of matched bytes and, for
// switch dispatches, the 1-based case index.
//
// Usage:
//
//	cmpcov-dump file.sancov...
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"os"

	"github.com/duytai/CompareCoverage/pkg/tool"
	"github.com/duytai/CompareCoverage/pkg/trace"
)

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		tool.Failf("usage: cmpcov-dump file.sancov...")
	}
	for _, file := range flag.Args() {
		if err := dumpFile(file); err != nil {
			tool.Fail(err)
		}
	}
}

func dumpFile(file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	if len(data) < 8 || len(data)%8 != 0 {
		return fmt.Errorf("%v: truncated trace log", file)
	}
	if magic := binary.LittleEndian.Uint64(data); magic != trace.Magic {
		return fmt.Errorf("%v: bad magic 0x%x", file, magic)
	}
	for pos := 8; pos < len(data); pos += 8 {
		offset, arg1, arg2 := trace.Decode(binary.LittleEndian.Uint64(data[pos:]))
		switch {
		case arg1 == trace.MemcmpArg1:
			fmt.Printf("%v: 0x%x: memcmp depth %v\n", file, offset, arg2)
		case arg2 != 0:
			fmt.Printf("%v: 0x%x: depth %v case %v\n", file, offset, arg1, arg2)
		default:
			fmt.Printf("%v: 0x%x: depth %v\n", file, offset, arg1)
		}
	}
	return nil
}
