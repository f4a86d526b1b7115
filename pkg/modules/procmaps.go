// Copyright 2026 CompareCoverage project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package modules

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// parseMaps extracts image spans from the contents of /proc/pid/maps.
// All file-backed mappings that share a path are coalesced into a single
// span covering the lowest and highest mapped addresses of that file, which
// matches how coverage tooling attributes offsets to an image. Pseudo
// entries ([heap], [stack], [vdso], anonymous) are skipped.
func parseMaps(data []byte) ([]Image, error) {
	type span struct {
		start, end uint64
	}
	spans := make(map[string]*span)
	var order []string
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		// address perms offset dev inode [pathname]
		if len(fields) < 6 {
			continue
		}
		path := fields[5]
		if strings.HasPrefix(path, "[") {
			continue
		}
		start, end, err := parseAddrRange(fields[0])
		if err != nil {
			return nil, fmt.Errorf("malformed maps line %q: %w", line, err)
		}
		s := spans[path]
		if s == nil {
			s = &span{start: start, end: end}
			spans[path] = s
			order = append(order, path)
			continue
		}
		if start < s.start {
			s.start = start
		}
		if end > s.end {
			s.end = end
		}
	}
	var images []Image
	for _, path := range order {
		s := spans[path]
		images = append(images, Image{
			Name:  filepath.Base(path),
			Start: s.start,
			End:   s.end,
		})
	}
	return images, nil
}

func parseAddrRange(s string) (start, end uint64, err error) {
	dash := strings.IndexByte(s, '-')
	if dash == -1 {
		return 0, 0, fmt.Errorf("no address range separator")
	}
	start, err = strconv.ParseUint(s[:dash], 16, 64)
	if err != nil {
		return 0, 0, err
	}
	end, err = strconv.ParseUint(s[dash+1:], 16, 64)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}
