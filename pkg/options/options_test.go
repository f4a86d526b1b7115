// Copyright 2026 CompareCoverage project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	pairs, err := Tokenize("coverage=1:coverage_dir=/cov")
	assert.NoError(t, err)
	assert.Equal(t, []KV{{"coverage", "1"}, {"coverage_dir", "/cov"}}, pairs)

	// Space separators and empty values.
	pairs, err = Tokenize("a=1 b= c=3")
	assert.NoError(t, err)
	assert.Equal(t, []KV{{"a", "1"}, {"b", ""}, {"c", "3"}}, pairs)

	// Quoted values may contain separators.
	pairs, err = Tokenize(`coverage_dir='/cov dir':log_path="a:b"`)
	assert.NoError(t, err)
	assert.Equal(t, []KV{{"coverage_dir", "/cov dir"}, {"log_path", "a:b"}}, pairs)

	pairs, err = Tokenize("")
	assert.NoError(t, err)
	assert.Empty(t, pairs)

	pairs, err = Tokenize("::  :a=1:")
	assert.NoError(t, err)
	assert.Equal(t, []KV{{"a", "1"}}, pairs)
}

func TestTokenizeMalformed(t *testing.T) {
	for _, s := range []string{
		"coverage",            // no value
		"coverage:dir=/cov",   // first pair has no value
		"coverage_dir='/cov",  // unterminated quote
		`coverage_dir="/cov`,  // unterminated quote
		"coverage=1:withdraw", // trailing bare token
	} {
		_, err := Tokenize(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestParseEnvDefaults(t *testing.T) {
	t.Setenv("ASAN_OPTIONS", "")
	t.Setenv("TRACE_NONCONST_CMP", "")
	t.Setenv("TRACE_MEMORY_CMP", "")
	cfg, err := ParseEnv()
	assert.NoError(t, err)
	assert.Equal(t, &Config{
		Enabled:          false,
		TraceNonConstCmp: false,
		TraceMemoryCmp:   true,
		CoverageDir:      ".",
	}, cfg)
}

func TestParseEnv(t *testing.T) {
	t.Setenv("ASAN_OPTIONS", "coverage=1:coverage_dir=/tmp/cov:unrelated_flag=1")
	t.Setenv("TRACE_NONCONST_CMP", "1")
	t.Setenv("TRACE_MEMORY_CMP", "0")
	cfg, err := ParseEnv()
	assert.NoError(t, err)
	assert.Equal(t, &Config{
		Enabled:          true,
		TraceNonConstCmp: true,
		TraceMemoryCmp:   false,
		CoverageDir:      "/tmp/cov",
	}, cfg)
}

func TestParseEnvMalformed(t *testing.T) {
	t.Setenv("ASAN_OPTIONS", "coverage")
	_, err := ParseEnv()
	assert.Error(t, err)
}
