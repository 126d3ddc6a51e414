// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/gsctl/internal/config"
	"github.com/tfctl/gsctl/internal/meta"
)

// InitApp builds the gsctl command tree for args.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	// The arg[1] immediately following the binary (arg[0]) is the service
	// group and also represents the namespace key to be used when retrieving
	// config values. arg[1] could be -h/--help, so ignore it if it appears to
	// be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}
	config.SetNamespace(ns)

	// A missing config file is fine; every value has a flag or a default.
	cfg, _ := config.Load() //nolint
	m := meta.Meta{
		Args:    args,
		Config:  cfg,
		Context: ctx,
		Clients: DefaultClients(),
	}

	return NewApp(m), nil
}

// NewApp returns the command tree wired to m. Tests pass fake clients.
func NewApp(m meta.Meta) *cli.Command {
	app := &cli.Command{
		Name:  "gsctl",
		Usage: "Amazon GameLift Streams and SageMaker geospatial control",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "gsctl version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		streamsCommandBuilder(m),
		geoCommandBuilder(m),
		completionCommandBuilder(m),
	)

	// Make sure flags are sorted for the --help text.
	for _, group := range app.Commands {
		for _, cmd := range group.Commands {
			sort.Slice(cmd.Flags, func(i, j int) bool {
				return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
			})
		}
	}

	return app
}
