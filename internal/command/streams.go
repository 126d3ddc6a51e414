// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/gsctl/internal/meta"
)

const streamsNS = "streams"

var (
	applicationAttrs = []string{"Id", "Description", "Status", "RuntimeEnvironment.Type:runtime", "CreatedAt:created"}
	groupAttrs       = []string{"Id", "Description", "Status", "StreamClass:class", "CreatedAt:created"}
	sessionAttrs     = []string{"Arn", "UserId:user", "Status", "Protocol", "Location", "CreatedAt:created"}
	associationAttrs = []string{"Arn", "ApplicationArns:applications"}
	tagAttrs         = []string{"Key", "Value"}
)

// streamsCommandBuilder returns the GameLift Streams command group.
func streamsCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:  streamsNS,
		Usage: "Amazon GameLift Streams operations",
		Commands: []*cli.Command{
			addStreamGroupLocationsCommand(m),
			associateApplicationsCommand(m),
			createApplicationCommand(m),
			createStreamGroupCommand(m),
			createStreamSessionConnectionCommand(m),
			deleteApplicationCommand(m),
			deleteStreamGroupCommand(m),
			disassociateApplicationsCommand(m),
			exportStreamSessionFilesCommand(m),
			getApplicationCommand(m),
			getStreamGroupCommand(m),
			getStreamSessionCommand(m),
			listApplicationsCommand(m),
			listStreamGroupsCommand(m),
			listStreamSessionsCommand(m),
			listStreamSessionsByAccountCommand(m),
			streamsListTagsForResourceCommand(m),
			removeStreamGroupLocationsCommand(m),
			startStreamSessionCommand(m),
			streamsTagResourceCommand(m),
			terminateStreamSessionCommand(m),
			streamsUntagResourceCommand(m),
			updateApplicationCommand(m),
			updateStreamGroupCommand(m),
			waitStreamSessionCommand(m),
		},
	}
}

// emitNone is the output stage of operations whose response carries no
// data. Only --output raw shows the empty response.
func emitNone[C, O any](_ context.Context, cmd *cli.Command, _ C, out O) error {
	if cmd.String("output") == "raw" {
		return Emit(cmd, out, nil, "")
	}
	return nil
}

// progress returns an observer that reports polled statuses on stderr.
func progress(cmd *cli.Command, what string) func(string) {
	last := ""
	return func(status string) {
		if status != last {
			fmt.Fprintf(errWriter(cmd), "%s: %s\n", what, status)
			last = status
		}
	}
}

// tagRows turns a tag map into Key/Value rows for display.
func tagRows(tags map[string]string) []map[string]string {
	rows := make([]map[string]string, 0, len(tags))
	for _, k := range slices.Sorted(maps.Keys(tags)) {
		rows = append(rows, map[string]string{"Key": k, "Value": tags[k]})
	}
	return rows
}
