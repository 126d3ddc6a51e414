// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cacheutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withCache(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("GSCTL_CACHE_DIR", dir)
	t.Setenv("GSCTL_CACHE", "")
	return dir
}

func TestDir(t *testing.T) {
	dir := withCache(t)
	got, ok := Dir()
	assert.True(t, ok)
	assert.Equal(t, dir, got)

	t.Setenv("GSCTL_CACHE_DIR", "")
	if got, ok := Dir(); ok {
		assert.True(t, filepath.IsAbs(got))
		assert.Equal(t, "gsctl", filepath.Base(got))
	}
}

func TestEnabled(t *testing.T) {
	for value, want := range map[string]bool{"": true, "1": true, "true": true, "0": false, "false": false} {
		t.Setenv("GSCTL_CACHE", value)
		assert.Equal(t, want, Enabled(), "GSCTL_CACHE=%q", value)
	}
}

func TestWriteRead(t *testing.T) {
	dir := withCache(t)
	subdirs := []string{"us-west-2", "raster-data-collections"}

	_, ok := Read(subdirs, "list", 0)
	assert.False(t, ok)

	require.NoError(t, Write(subdirs, "list", []byte(`{"a":1}`)))

	e, ok := Read(subdirs, "list", time.Hour)
	require.True(t, ok)
	assert.Equal(t, `{"a":1}`, string(e.Data))
	assert.Equal(t, "list", e.Key)
	assert.Equal(t, encodeKey("list"), e.EncodedKey)
	assert.Equal(t, filepath.Join(dir, "us-west-2", "raster-data-collections", e.EncodedKey), e.Path)

	_, err := os.Stat(e.Path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestReadStale(t *testing.T) {
	withCache(t)
	require.NoError(t, Write(nil, "k", []byte("v")))
	p, _ := EntryPath(nil, "k")
	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(p, old, old))

	_, ok := Read(nil, "k", time.Hour)
	assert.False(t, ok)

	_, ok = Read(nil, "k", 0)
	assert.True(t, ok)
}

func TestDisabled(t *testing.T) {
	dir := withCache(t)
	t.Setenv("GSCTL_CACHE", "0")

	require.NoError(t, Write(nil, "k", []byte("v")))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, ok := Read(nil, "k", 0)
	assert.False(t, ok)
}

func TestFetch(t *testing.T) {
	withCache(t)
	calls := 0
	fill := func() ([]byte, error) {
		calls++
		return []byte("fresh"), nil
	}

	data, hit, err := Fetch([]string{"x"}, "k", time.Hour, fill)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "fresh", string(data))

	data, hit, err = Fetch([]string{"x"}, "k", time.Hour, fill)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "fresh", string(data))
	assert.Equal(t, 1, calls)

	boom := errors.New("boom")
	_, _, err = Fetch([]string{"x"}, "other", time.Hour, func() ([]byte, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	_, ok := Read([]string{"x"}, "other", 0)
	assert.False(t, ok)
}

func TestPurge(t *testing.T) {
	withCache(t)
	require.NoError(t, Write([]string{"a"}, "old", []byte("1")))
	require.NoError(t, Write([]string{"a"}, "new", []byte("2")))

	p, _ := EntryPath([]string{"a"}, "old")
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(p, old, old))

	require.NoError(t, Purge(0))
	_, ok := Read([]string{"a"}, "old", 0)
	assert.True(t, ok, "purge disabled for hours <= 0")

	require.NoError(t, Purge(24))
	_, ok = Read([]string{"a"}, "old", 0)
	assert.False(t, ok)
	_, ok = Read([]string{"a"}, "new", 0)
	assert.True(t, ok)
}

func TestPurgeMissingDir(t *testing.T) {
	t.Setenv("GSCTL_CACHE_DIR", filepath.Join(t.TempDir(), "nope"))
	assert.NoError(t, Purge(1))
}
