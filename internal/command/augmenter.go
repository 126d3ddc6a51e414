// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/gsctl/internal/filters"
)

// Augmenter[T] is a callback function that customizes options before
// each API call. It receives the context, command, and a pointer to the
// options object, allowing mutation of options based on command flags or
// other context. Return an error to abort pagination.
type Augmenter[T any] func(
	context.Context,
	*cli.Command,
	*T,
) error

// serverSideValue returns the value of a _key=value filter, upper-cased as
// the service enums expect, or "" when the filter is absent.
func serverSideValue(cmd *cli.Command, key string) string {
	return strings.ToUpper(filters.ServerSide(cmd.String("filter"))[key])
}

// flagOrFilter prefers an explicit flag over a _key=value filter.
func flagOrFilter(cmd *cli.Command, flag, key string) string {
	if v := cmd.String(flag); v != "" {
		return strings.ToUpper(v)
	}
	return serverSideValue(cmd, key)
}
