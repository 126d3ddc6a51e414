// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package streams holds the GameLift Streams pieces that are more than a
// one-to-one flag copy: location capacity parsing, status classification
// and the waiters that poll stream sessions, stream groups and
// applications until they settle.
package streams
