// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package cacheutil keeps slow-changing API responses, such as raster data
// collection metadata, on disk between invocations.
package cacheutil

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/tfctl/gsctl/internal/log"
)

// Entry is a cached response on disk. Key is the clear-text key and
// EncodedKey the hashed file name.
type Entry struct {
	Key        string
	EncodedKey string
	Path       string
	Data       []byte
	Written    time.Time
}

// Dir resolves the base cache directory: GSCTL_CACHE_DIR when set, else
// os.UserCacheDir()/gsctl. It returns ("", false) when neither resolves.
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("GSCTL_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "gsctl"), true
	}
	return "", false
}

// Enabled is true unless GSCTL_CACHE is "0" or "false".
func Enabled() bool {
	v := os.Getenv("GSCTL_CACHE")
	return v != "0" && v != "false"
}

// EntryPath returns where the entry for clearKey lives beneath subdirs.
func EntryPath(subdirs []string, clearKey string) (string, bool) {
	base, ok := Dir()
	if !ok {
		return "", false
	}
	parts := append([]string{base}, subdirs...)
	return filepath.Join(append(parts, encodeKey(clearKey))...), true
}

// Read returns the entry for clearKey if present and younger than maxAge.
// A maxAge of zero accepts any age.
func Read(subdirs []string, clearKey string, maxAge time.Duration) (*Entry, bool) {
	if !Enabled() {
		return nil, false
	}
	p, ok := EntryPath(subdirs, clearKey)
	if !ok {
		return nil, false
	}

	info, err := os.Stat(p)
	if err != nil {
		return nil, false
	}
	if maxAge > 0 && time.Since(info.ModTime()) > maxAge {
		log.Debugf("cache stale: key=%s age=%s", clearKey, time.Since(info.ModTime()).Round(time.Second))
		return nil, false
	}

	b, err := os.ReadFile(p)
	if err != nil {
		return nil, false
	}
	log.Debugf("cache hit: key=%s", clearKey)
	return &Entry{
		Key:        clearKey,
		EncodedKey: filepath.Base(p),
		Path:       p,
		Data:       b,
		Written:    info.ModTime(),
	}, true
}

// Write stores data for clearKey beneath subdirs, creating directories as
// needed. It is a no-op when caching is disabled.
func Write(subdirs []string, clearKey string, data []byte) error {
	if !Enabled() {
		return nil
	}
	p, ok := EntryPath(subdirs, clearKey)
	if !ok {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	// Readers never see a partial entry.
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := os.Rename(tmp, p); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Debugf("cache write: key=%s", clearKey)
	return nil
}

// Fetch returns the cached data for clearKey, or calls fill and caches its
// result. hit reports whether the cache answered. A failed cache write is
// logged and does not fail the fetch.
func Fetch(subdirs []string, clearKey string, maxAge time.Duration, fill func() ([]byte, error)) (data []byte, hit bool, err error) {
	if e, ok := Read(subdirs, clearKey, maxAge); ok {
		return e.Data, true, nil
	}

	data, err = fill()
	if err != nil {
		return nil, false, err
	}
	if werr := Write(subdirs, clearKey, data); werr != nil {
		log.WithError(werr).Warnf("cache write failed: key=%s", clearKey)
	}
	return data, false, nil
}

// Purge removes entries older than hours. hours <= 0 disables purging.
func Purge(hours int) error {
	if hours <= 0 {
		log.Debug("cache cleaning disabled")
		return nil
	}
	base, ok := Dir()
	if !ok {
		return nil
	}

	maxAge := time.Duration(hours) * time.Hour
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Entries can vanish underneath a concurrent purge.
			if errors.Is(walkErr, fs.ErrNotExist) {
				return nil
			}
			return walkErr
		}
		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if time.Since(info.ModTime()) > maxAge {
			if err := os.Remove(path); err != nil {
				log.WithError(err).Warnf("failed to remove cache file %s", path)
			} else {
				log.Debugf("removed cache file %s", path)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	return nil
}

func encodeKey(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}
