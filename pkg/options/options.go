// Copyright 2026 CompareCoverage project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package options parses the runtime configuration of the comparison
// tracing instrumentation from the environment. The instrumentation is
// piggybacked on the sanitizer runtime convention: the master switch and
// the output directory come from the ASAN_OPTIONS variable
// (coverage=1,coverage_dir=...), the remaining knobs are standalone
// variables.
package options

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the process-wide instrumentation settings. It is created
// once during lazy initialization and read-only afterwards.
type Config struct {
	// Master switch for the whole instrumentation (ASAN_OPTIONS coverage=1).
	Enabled bool
	// Tracing of comparisons where neither operand is a known constant
	// (TRACE_NONCONST_CMP).
	TraceNonConstCmp bool
	// Tracing of memcmp/strcmp-style functions (TRACE_MEMORY_CMP).
	TraceMemoryCmp bool
	// Directory for the output logs (ASAN_OPTIONS coverage_dir=...).
	CoverageDir string
}

// Default returns the configuration used when no environment overrides are
// present: everything off except memory comparison tracing, logs in the
// current directory.
func Default() *Config {
	return &Config{
		TraceMemoryCmp: true,
		CoverageDir:    ".",
	}
}

// KV is a single key=value pair extracted from an options string.
type KV struct {
	Key   string
	Value string
}

// Tokenize splits an ASAN_OPTIONS-style string into key=value pairs.
// Pairs are separated by colons or whitespace; values may be wrapped in
// single or double quotes to include separators. A pair without '=' or an
// unterminated quote is an error.
func Tokenize(s string) ([]KV, error) {
	var pairs []KV
	for len(s) != 0 {
		if isSep(s[0]) {
			s = s[1:]
			continue
		}
		eq := strings.IndexByte(s, '=')
		if eq == -1 || strings.ContainsAny(s[:eq], ": \t") {
			return nil, fmt.Errorf("malformed options near %q: expected key=value", s)
		}
		key := s[:eq]
		s = s[eq+1:]
		var value string
		if len(s) != 0 && (s[0] == '\'' || s[0] == '"') {
			quote := s[0]
			end := strings.IndexByte(s[1:], quote)
			if end == -1 {
				return nil, fmt.Errorf("unterminated %c-quoted value for %q", quote, key)
			}
			value = s[1 : 1+end]
			s = s[end+2:]
		} else {
			end := len(s)
			for i := 0; i < len(s); i++ {
				if isSep(s[i]) {
					end = i
					break
				}
			}
			value = s[:end]
			s = s[end:]
		}
		pairs = append(pairs, KV{Key: key, Value: value})
	}
	return pairs, nil
}

func isSep(ch byte) bool {
	return ch == ':' || ch == ' ' || ch == '\t'
}

// ParseEnv builds the configuration from the process environment.
// A malformed ASAN_OPTIONS string is an error: proceeding with ambiguous
// configuration risks writing the logs to the wrong location.
func ParseEnv() (*Config, error) {
	cfg := Default()
	if asanOpts := os.Getenv("ASAN_OPTIONS"); asanOpts != "" {
		pairs, err := Tokenize(asanOpts)
		if err != nil {
			return nil, fmt.Errorf("unable to parse the ASAN_OPTIONS environment variable: %w", err)
		}
		for _, kv := range pairs {
			switch kv.Key {
			case "coverage":
				cfg.Enabled = parseBoolValue(kv.Value)
			case "coverage_dir":
				cfg.CoverageDir = kv.Value
			}
		}
	}
	if v := os.Getenv("TRACE_NONCONST_CMP"); v != "" {
		cfg.TraceNonConstCmp = parseBoolValue(v)
	}
	if v := os.Getenv("TRACE_MEMORY_CMP"); v != "" {
		cfg.TraceMemoryCmp = parseBoolValue(v)
	}
	return cfg, nil
}

// Sanitizer flags are numeric: any non-zero integer enables, everything
// else (including unparsable text) disables.
func parseBoolValue(s string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	return err == nil && n != 0
}
