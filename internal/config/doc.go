// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for gsctl's user
// configuration. The configuration is a YAML document located by
// GSCTL_CFG_FILE or, failing that, in the user's configuration directory:
//   - Linux: $XDG_CONFIG_HOME/gsctl.yaml or $HOME/.config/gsctl.yaml
//   - macOS: $HOME/Library/Application Support/gsctl.yaml
//   - Windows: %APPDATA%/gsctl.yaml
//
// Keys are dotted paths. When a Namespace is set (the service command,
// "streams" or "geo"), the namespaced key is tried before the bare key, so
//
//	region: us-east-1
//	geo:
//	  region: us-west-2
//
// resolves "region" to us-west-2 for geo commands only.
package config
