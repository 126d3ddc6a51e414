// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ compares two job descriptions as JSON and renders the
// delta. It also has a small terminal picker for choosing the two jobs.
package differ
