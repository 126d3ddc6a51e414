// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in os.UserConfigDir.
const FileName = "gsctl.yaml"

// ErrNotFound is returned by the getters when no candidate key resolves.
var ErrNotFound = errors.New("config key not found")

// Type is the in-memory representation of the loaded configuration.
//
// Fields:
//   - Source: absolute path of the YAML file loaded, empty if none.
//   - Namespace: optional keyspace tried before the bare key.
//   - Data: raw key/value tree unmarshaled from YAML.
type Type struct {
	Source    string
	Namespace string
	Data      map[string]interface{}
}

// Config holds the global configuration instance.
var Config Type

// Load reads the YAML configuration and replaces the global Config. An
// explicit path wins over GSCTL_CFG_FILE and the user config directory. The
// current Namespace survives the reload.
func Load(path ...string) (Type, error) {
	var file string
	if len(path) > 0 && path[0] != "" {
		file = path[0]
	} else {
		var err error
		if file, err = locate(); err != nil {
			return Type{}, err
		}
	}

	raw, err := os.ReadFile(file)
	if err != nil {
		return Type{}, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return Type{}, fmt.Errorf("failed to parse %s: %w", file, err)
	}

	Config = Type{
		Source:    file,
		Namespace: Config.Namespace,
		Data:      data,
	}
	log.Debugf("config loaded: source=%s keys=%d", file, len(data))

	return Config, nil
}

// SetNamespace sets the keyspace preferred by the getters.
func SetNamespace(ns string) {
	Config.Namespace = ns
}

// GetString returns the string at key, or defaultValue[0] when missing.
func GetString(key string, defaultValue ...string) (string, error) {
	val, err := lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return "", err
	}

	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%s: value is not a string", key)
	}
	return s, nil
}

// GetInt returns the integer at key, or defaultValue[0] when missing. YAML
// numbers may decode as int, int64 or float64.
func GetInt(key string, defaultValue ...int) (int, error) {
	val, err := lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return 0, err
	}

	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	}
	return 0, fmt.Errorf("%s: value is not an int", key)
}

// GetDuration returns the duration at key. Strings are parsed with
// time.ParseDuration; bare numbers are seconds.
func GetDuration(key string, defaultValue ...time.Duration) (time.Duration, error) {
	val, err := lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return 0, err
	}

	switch v := val.(type) {
	case string:
		return time.ParseDuration(v)
	case int:
		return time.Duration(v) * time.Second, nil
	case float64:
		return time.Duration(v * float64(time.Second)), nil
	}
	return 0, fmt.Errorf("%s: value is not a duration", key)
}

// GetStringSlice returns the string list at key, or defaultValue[0] when
// missing.
func GetStringSlice(key string, defaultValue ...[]string) ([]string, error) {
	val, err := lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return nil, err
	}

	switch v := val.(type) {
	case []string:
		return v, nil
	case []interface{}:
		result := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s[%d]: slice element is not a string", key, i)
			}
			result[i] = s
		}
		return result, nil
	}
	return nil, fmt.Errorf("%s: value is not a slice", key)
}

// lookup lazily loads the config and resolves key against Config.
func lookup(key string) (any, error) {
	if len(Config.Data) == 0 {
		_, _ = Load(Config.Source)
	}
	return Config.get(key)
}

// get walks the tree along the dotted key. The namespaced candidate is
// tried first when Namespace is set.
func (cfg *Type) get(key string) (any, error) {
	candidates := []string{key}
	if cfg.Namespace != "" {
		candidates = []string{cfg.Namespace + "." + key, key}
	}

	for _, candidate := range candidates {
		if v, ok := walk(cfg.Data, strings.Split(candidate, ".")); ok {
			return v, nil
		}
	}

	return nil, fmt.Errorf("%w: %v", ErrNotFound, candidates)
}

func walk(node any, path []string) (any, bool) {
	for _, segment := range path {
		m, ok := node.(map[string]interface{})
		if !ok {
			return nil, false
		}
		if node, ok = m[segment]; !ok {
			return nil, false
		}
	}
	return node, true
}

// locate returns the config file path. GSCTL_CFG_FILE is authoritative when
// set; otherwise FileName in os.UserConfigDir is used if it exists.
func locate() (string, error) {
	if p := os.Getenv("GSCTL_CFG_FILE"); p != "" {
		info, err := os.Stat(p)
		if err != nil {
			return "", fmt.Errorf("config file not found at GSCTL_CFG_FILE path: %s", p)
		}
		if info.IsDir() {
			return "", fmt.Errorf("GSCTL_CFG_FILE points to a directory: %s", p)
		}
		return p, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	p := filepath.Join(dir, FileName)
	if info, err := os.Stat(p); err == nil && !info.IsDir() {
		return p, nil
	}

	return "", fmt.Errorf("no config file found in standard locations")
}
