// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package driller resolves --attrs and --filter paths against JSON encoded
// SDK responses.
package driller
