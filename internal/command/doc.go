// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the gsctl command tree. Every leaf under streams
// and geo wraps exactly one service operation: flags are copied into the
// request, the client is called, transport errors are clarified and the
// response goes through the common output stage. The wait and diff commands
// are built from those same operations.
package command
