// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/gsctl/internal/config"
)

func TestDeduplicateFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "empty args",
			args:     []string{},
			expected: []string{},
		},
		{
			name:     "only program and service",
			args:     []string{"gsctl", "streams"},
			expected: []string{"gsctl", "streams"},
		},
		{
			name:     "no duplicates",
			args:     []string{"gsctl", "streams", "list-applications", "--output", "text", "--titles"},
			expected: []string{"gsctl", "streams", "list-applications", "--output", "text", "--titles"},
		},
		{
			name:     "duplicate flag with value - last wins",
			args:     []string{"gsctl", "streams", "list-applications", "--output", "json", "--titles", "--output", "text"},
			expected: []string{"gsctl", "streams", "list-applications", "--titles", "--output", "text"},
		},
		{
			name:     "duplicate boolean flag",
			args:     []string{"gsctl", "geo", "list-earth-observation-jobs", "--titles", "--color", "--titles"},
			expected: []string{"gsctl", "geo", "list-earth-observation-jobs", "--color", "--titles"},
		},
		{
			name:     "duplicate flag with equals syntax",
			args:     []string{"gsctl", "streams", "list-stream-groups", "--output=json", "--titles", "--output=text"},
			expected: []string{"gsctl", "streams", "list-stream-groups", "--titles", "--output=text"},
		},
		{
			name:     "mixed equals and space syntax - same flag",
			args:     []string{"gsctl", "streams", "list-stream-groups", "--output=json", "--output", "text"},
			expected: []string{"gsctl", "streams", "list-stream-groups", "--output", "text"},
		},
		{
			name:     "defaults overridden by explicit flags",
			args:     []string{"gsctl", "geo", "get-earth-observation-job", "--region", "us-west-2", "--profile", "a", "--region", "us-east-1", "--profile", "b"},
			expected: []string{"gsctl", "geo", "get-earth-observation-job", "--region", "us-east-1", "--profile", "b"},
		},
		{
			name:     "short flags deduplicated",
			args:     []string{"gsctl", "streams", "list-applications", "-o", "json", "-o", "text"},
			expected: []string{"gsctl", "streams", "list-applications", "-o", "text"},
		},
		{
			name:     "different flags not affected",
			args:     []string{"gsctl", "streams", "list-applications", "--color", "--local"},
			expected: []string{"gsctl", "streams", "list-applications", "--color", "--local"},
		},
		{
			name:     "triple duplicate",
			args:     []string{"gsctl", "streams", "list-applications", "--output", "a", "--output", "b", "--output", "c"},
			expected: []string{"gsctl", "streams", "list-applications", "--output", "c"},
		},
		{
			name:     "alias and long name are one flag",
			args:     []string{"gsctl", "streams", "list-applications", "-o", "json", "--output", "text"},
			expected: []string{"gsctl", "streams", "list-applications", "--output", "text"},
		},
		{
			name:     "map flag keeps every value",
			args:     []string{"gsctl", "streams", "tag-resource", "--tags", "a=1", "--tags", "b=2"},
			expected: []string{"gsctl", "streams", "tag-resource", "--tags", "a=1", "--tags", "b=2"},
		},
		{
			name: "slice flag keeps every value",
			args: []string{"gsctl", "streams", "associate-applications", "--id", "sg-1",
				"--application-identifiers", "a-1", "--application-identifiers", "a-2"},
			expected: []string{"gsctl", "streams", "associate-applications", "--id", "sg-1",
				"--application-identifiers", "a-1", "--application-identifiers", "a-2"},
		},
		{
			name: "slice flag kept while scalar deduplicated",
			args: []string{"gsctl", "streams", "associate-applications", "--id", "sg-0",
				"--application-identifiers", "a-1", "--id", "sg-1", "--application-identifiers", "a-2"},
			expected: []string{"gsctl", "streams", "associate-applications",
				"--application-identifiers", "a-1", "--id", "sg-1", "--application-identifiers", "a-2"},
		},
		{
			name:     "unknown flags left alone",
			args:     []string{"gsctl", "streams", "list-applications", "--bogus", "1", "--bogus", "2"},
			expected: []string{"gsctl", "streams", "list-applications", "--bogus", "1", "--bogus", "2"},
		},
		{
			name:     "unknown operation leaves flags alone",
			args:     []string{"gsctl", "streams", "nope", "--output", "a", "--output", "b"},
			expected: []string{"gsctl", "streams", "nope", "--output", "a", "--output", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, deduplicateFlags(tt.args, leafFlags(tt.args)))
		})
	}
}

func TestDeduplicateFlagsWithPositionalAfterFlags(t *testing.T) {
	// --color is a switch, so the ARNs after it stay positional.
	args := []string{"gsctl", "geo", "diff-earth-observation-jobs", "--color", "arn:a", "--color", "arn:b"}
	assert.Equal(t, []string{"gsctl", "geo", "diff-earth-observation-jobs", "arn:a", "--color", "arn:b"},
		deduplicateFlags(args, leafFlags(args)))

	args = []string{"gsctl", "geo", "diff-earth-observation-jobs", "arn:a", "arn:b", "--diff-filter", "-"}
	assert.Equal(t, args, deduplicateFlags(args, leafFlags(args)))

	// A value flag takes the next token even when it looks like a flag.
	args = []string{"gsctl", "geo", "diff-earth-observation-jobs", "--diff-filter", "-", "--diff-filter", "Arn", "arn:a", "arn:b"}
	assert.Equal(t, []string{"gsctl", "geo", "diff-earth-observation-jobs", "--diff-filter", "Arn", "arn:a", "arn:b"},
		deduplicateFlags(args, leafFlags(args)))
}

func TestInjectSet(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		entries  []string
		at       int
		expected []string
	}{
		{
			name:     "empty set returns args unchanged",
			args:     []string{"gsctl", "streams", "list-applications", "--titles"},
			at:       3,
			expected: []string{"gsctl", "streams", "list-applications", "--titles"},
		},
		{
			name:     "single entry injected",
			args:     []string{"gsctl", "streams", "list-applications", "--titles"},
			entries:  []string{"--color"},
			at:       3,
			expected: []string{"gsctl", "streams", "list-applications", "--color", "--titles"},
		},
		{
			name:     "multi-word entry split",
			args:     []string{"gsctl", "streams", "list-applications", "--titles"},
			entries:  []string{"--output text"},
			at:       3,
			expected: []string{"gsctl", "streams", "list-applications", "--output", "text", "--titles"},
		},
		{
			name:     "inserted at the @set position",
			args:     []string{"gsctl", "geo", "get-tile", "--x", "1", "--y", "2"},
			entries:  []string{"--region us-west-2", "--profile geo"},
			at:       5,
			expected: []string{"gsctl", "geo", "get-tile", "--x", "1", "--region", "us-west-2", "--profile", "geo", "--y", "2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, injectSet(tt.args, tt.entries, tt.at))
		})
	}
}

func TestProcessSetOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gsctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
streams:
  defaults:
    - --region us-west-2
  prod:
    - --profile prod
    - --region us-east-1
  list-applications:
    wide:
      - --attrs Arn,LastUpdatedAt
`), 0o600))
	_, err := config.Load(path)
	require.NoError(t, err)
	t.Cleanup(func() { config.Config = config.Type{} })

	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "implicit defaults after the operation",
			args:     []string{"gsctl", "streams", "get-application", "--id", "a-1"},
			expected: []string{"gsctl", "streams", "get-application", "--region", "us-west-2", "--id", "a-1"},
		},
		{
			name:     "explicit set replaces the marker",
			args:     []string{"gsctl", "streams", "get-application", "@prod", "--id", "a-1"},
			expected: []string{"gsctl", "streams", "get-application", "--profile", "prod", "--region", "us-east-1", "--id", "a-1"},
		},
		{
			name:     "operation scoped set",
			args:     []string{"gsctl", "streams", "list-applications", "@wide"},
			expected: []string{"gsctl", "streams", "list-applications", "--attrs", "Arn,LastUpdatedAt"},
		},
		{
			name:     "unknown set drops the marker",
			args:     []string{"gsctl", "streams", "get-application", "@nope"},
			expected: []string{"gsctl", "streams", "get-application"},
		},
		{
			name:     "service without sets",
			args:     []string{"gsctl", "geo", "list-earth-observation-jobs"},
			expected: []string{"gsctl", "geo", "list-earth-observation-jobs"},
		},
		{
			name:     "too short to expand",
			args:     []string{"gsctl", "streams"},
			expected: []string{"gsctl", "streams"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, processSetOnly(tt.args))
		})
	}
}

func TestHandleNakedCommand(t *testing.T) {
	assert.Equal(t, []string{"gsctl", "--help"}, handleNakedCommand([]string{"gsctl"}))
	assert.Equal(t, []string{"gsctl", "geo"}, handleNakedCommand([]string{"gsctl", "geo"}))
}

func TestProcessCommandArgsCompletion(t *testing.T) {
	args := []string{"gsctl", "completion", "bash", "bash"}
	assert.Equal(t, args, processCommandArgs(args))
}

func TestProcessCommandArgsKeepsRepeatable(t *testing.T) {
	t.Setenv("GSCTL_CFG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	config.Config = config.Type{}
	t.Cleanup(func() { config.Config = config.Type{} })

	args := []string{"gsctl", "streams", "associate-applications", "--id", "sg-1",
		"--application-identifiers", "a-1", "--application-identifiers", "a-2", "--output", "json", "--output", "text"}
	assert.Equal(t, []string{"gsctl", "streams", "associate-applications", "--id", "sg-1",
		"--application-identifiers", "a-1", "--application-identifiers", "a-2", "--output", "text"},
		processCommandArgs(args))
}
