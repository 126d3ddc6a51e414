// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/gsctl/internal/meta"
)

// OperationCommandBuilder constructs the cli.Command of one service
// operation using a consistent pattern. The builder wires metadata, adds the
// schema, output and AWS connection flags, and sets up validators. Namespace
// is the service group (streams or geo) used as config namespace.
type OperationCommandBuilder struct {
	Namespace string
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (ocb *OperationCommandBuilder) Build() *cli.Command {
	flags := append([]cli.Flag{}, ocb.Flags...)
	flags = append(flags, schemaFlag)
	flags = append(flags, NewGlobalFlags()...)
	flags = append(flags, NewAWSFlags(ocb.Namespace, ocb.Meta.Config.Source)...)

	return &cli.Command{
		Name:      ocb.Name,
		Usage:     ocb.Usage,
		UsageText: ocb.UsageText,
		Metadata: map[string]any{
			"meta": ocb.Meta,
		},
		Flags: flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: ocb.Action,
	}
}
