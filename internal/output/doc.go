// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output turns JSON encoded SDK responses into rows shaped by
// --attrs, filtered, sorted and written as a text table, JSON, YAML or the
// raw response.
package output
