// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	gls "github.com/aws/aws-sdk-go-v2/service/gameliftstreams"
	"github.com/aws/aws-sdk-go-v2/service/gameliftstreams/types"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/gsctl/internal/aws"
	"github.com/tfctl/gsctl/internal/meta"
	"github.com/tfctl/gsctl/internal/streams"
)

var locationAttrs = []string{"Identifier", "Locations.LocationName:locations", "Locations.Status:status"}

func locationsFlag() *cli.StringSliceFlag {
	return sliceFlag("location-configurations", "location as name[:alwaysOn[:onDemand]], repeatable")
}

func addStreamGroupLocationsCommand(m meta.Meta) *cli.Command {
	r := streamsRunner("AddStreamGroupLocations", func(ctx context.Context, cmd *cli.Command, api aws.GameLiftStreamsAPI) (*gls.AddStreamGroupLocationsOutput, error) {
		locs, err := streams.ParseLocations(cmd.StringSlice("location-configurations"))
		if err != nil {
			return nil, err
		}
		return api.AddStreamGroupLocations(ctx, &gls.AddStreamGroupLocationsInput{
			Identifier:             optString(cmd, "identifier"),
			LocationConfigurations: locs,
		})
	})
	r.Required = []string{"identifier", "location-configurations"}
	r.DefaultAttrs = locationAttrs

	return (&OperationCommandBuilder{
		Namespace: streamsNS,
		Name:      "add-stream-group-locations",
		Usage:     "add remote locations to a stream group",
		Flags:     []cli.Flag{identifierFlag("stream group ID or ARN"), locationsFlag()},
		Action:    r.Run,
		Meta:      m,
	}).Build()
}

func associateApplicationsCommand(m meta.Meta) *cli.Command {
	r := streamsRunner("AssociateApplications", func(ctx context.Context, cmd *cli.Command, api aws.GameLiftStreamsAPI) (*gls.AssociateApplicationsOutput, error) {
		return api.AssociateApplications(ctx, &gls.AssociateApplicationsInput{
			Identifier:             optString(cmd, "identifier"),
			ApplicationIdentifiers: optSlice(cmd, "application-identifiers"),
		})
	})
	r.Required = []string{"identifier", "application-identifiers"}
	r.DefaultAttrs = associationAttrs

	return (&OperationCommandBuilder{
		Namespace: streamsNS,
		Name:      "associate-applications",
		Usage:     "make applications streamable from a stream group",
		Flags: []cli.Flag{
			identifierFlag("stream group ID or ARN"),
			sliceFlag("application-identifiers", "application ID or ARN, repeatable"),
		},
		Action: r.Run,
		Meta:   m,
	}).Build()
}

func createStreamGroupCommand(m meta.Meta) *cli.Command {
	r := streamsRunner("CreateStreamGroup", func(ctx context.Context, cmd *cli.Command, api aws.GameLiftStreamsAPI) (*gls.CreateStreamGroupOutput, error) {
		in, err := createStreamGroupInput(cmd)
		if err != nil {
			return nil, err
		}
		return api.CreateStreamGroup(ctx, in)
	})
	r.Required = []string{"description", "stream-class"}
	r.Emit = func(ctx context.Context, cmd *cli.Command, api aws.GameLiftStreamsAPI, out *gls.CreateStreamGroupOutput) error {
		if !cmd.Bool("wait") {
			return Emit(cmd, out, BuildAttrs(cmd, groupAttrs...), "")
		}
		id := awsString(out.Arn)
		got, err := streams.WaitForGroup(ctx, api, id, waitConfig(cmd), progress(cmd, "stream group "+id))
		return emitWaited(cmd, got, err, groupAttrs)
	}

	return (&OperationCommandBuilder{
		Namespace: streamsNS,
		Name:      "create-stream-group",
		Usage:     "create a stream group of streaming capacity",
		Flags: append([]cli.Flag{
			stringFlag("description", "human readable description"),
			stringFlag("stream-class", "stream class, e.g. gen5n_win2022"),
			stringFlag("default-application-identifier", "application ID or ARN streamed by default"),
			locationsFlag(),
			clientTokenFlag(),
			tagsFlag(),
		}, NewWaitFlags(true)...),
		Action: r.Run,
		Meta:   m,
	}).Build()
}

func createStreamGroupInput(cmd *cli.Command) (*gls.CreateStreamGroupInput, error) {
	locs, err := streams.ParseLocations(cmd.StringSlice("location-configurations"))
	if err != nil {
		return nil, err
	}
	return &gls.CreateStreamGroupInput{
		Description:                  optString(cmd, "description"),
		StreamClass:                  types.StreamClass(cmd.String("stream-class")),
		DefaultApplicationIdentifier: optString(cmd, "default-application-identifier"),
		LocationConfigurations:       locs,
		ClientToken:                  optString(cmd, "client-token"),
		Tags:                         optMap(cmd, "tags"),
	}, nil
}

func deleteStreamGroupCommand(m meta.Meta) *cli.Command {
	r := streamsRunner("DeleteStreamGroup", func(ctx context.Context, cmd *cli.Command, api aws.GameLiftStreamsAPI) (*gls.DeleteStreamGroupOutput, error) {
		return api.DeleteStreamGroup(ctx, &gls.DeleteStreamGroupInput{
			Identifier: optString(cmd, "identifier"),
		})
	})
	r.Required = []string{"identifier"}
	r.Emit = emitNone

	return (&OperationCommandBuilder{
		Namespace: streamsNS,
		Name:      "delete-stream-group",
		Usage:     "delete a stream group and its capacity",
		Flags:     []cli.Flag{identifierFlag("stream group ID or ARN")},
		Action:    r.Run,
		Meta:      m,
	}).Build()
}

func disassociateApplicationsCommand(m meta.Meta) *cli.Command {
	r := streamsRunner("DisassociateApplications", func(ctx context.Context, cmd *cli.Command, api aws.GameLiftStreamsAPI) (*gls.DisassociateApplicationsOutput, error) {
		return api.DisassociateApplications(ctx, &gls.DisassociateApplicationsInput{
			Identifier:             optString(cmd, "identifier"),
			ApplicationIdentifiers: optSlice(cmd, "application-identifiers"),
		})
	})
	r.Required = []string{"identifier", "application-identifiers"}
	r.DefaultAttrs = associationAttrs

	return (&OperationCommandBuilder{
		Namespace: streamsNS,
		Name:      "disassociate-applications",
		Usage:     "stop streaming applications from a stream group",
		Flags: []cli.Flag{
			identifierFlag("stream group ID or ARN"),
			sliceFlag("application-identifiers", "application ID or ARN, repeatable"),
		},
		Action: r.Run,
		Meta:   m,
	}).Build()
}

func getStreamGroupCommand(m meta.Meta) *cli.Command {
	r := streamsRunner("GetStreamGroup", func(ctx context.Context, cmd *cli.Command, api aws.GameLiftStreamsAPI) (*gls.GetStreamGroupOutput, error) {
		return api.GetStreamGroup(ctx, &gls.GetStreamGroupInput{
			Identifier: optString(cmd, "identifier"),
		})
	})
	r.Required = []string{"identifier"}
	r.DefaultAttrs = groupAttrs

	return (&OperationCommandBuilder{
		Namespace: streamsNS,
		Name:      "get-stream-group",
		Usage:     "describe a stream group",
		Flags:     []cli.Flag{identifierFlag("stream group ID or ARN")},
		Action:    r.Run,
		Meta:      m,
	}).Build()
}

func listStreamGroupsCommand(m meta.Meta) *cli.Command {
	r := streamsRunner("ListStreamGroups", func(ctx context.Context, cmd *cli.Command, api aws.GameLiftStreamsAPI) ([]types.StreamGroupSummary, error) {
		return PaginateWithOptions(ctx, cmd, &gls.ListStreamGroupsInput{},
			func(ctx context.Context, in *gls.ListStreamGroupsInput) ([]types.StreamGroupSummary, *string, error) {
				out, err := api.ListStreamGroups(ctx, in)
				if err != nil {
					return nil, nil, err
				}
				return out.Items, out.NextToken, nil
			}, nil)
	})
	r.SchemaType = reflect.TypeFor[types.StreamGroupSummary]()
	r.DefaultAttrs = groupAttrs

	return (&OperationCommandBuilder{
		Namespace: streamsNS,
		Name:      "list-stream-groups",
		Usage:     "list stream groups",
		Flags:     NewPagingFlags(),
		Action:    r.Run,
		Meta:      m,
	}).Build()
}

func removeStreamGroupLocationsCommand(m meta.Meta) *cli.Command {
	r := streamsRunner("RemoveStreamGroupLocations", func(ctx context.Context, cmd *cli.Command, api aws.GameLiftStreamsAPI) (*gls.RemoveStreamGroupLocationsOutput, error) {
		return api.RemoveStreamGroupLocations(ctx, &gls.RemoveStreamGroupLocationsInput{
			Identifier: optString(cmd, "identifier"),
			Locations:  optSlice(cmd, "locations"),
		})
	})
	r.Required = []string{"identifier", "locations"}
	r.Emit = emitNone

	return (&OperationCommandBuilder{
		Namespace: streamsNS,
		Name:      "remove-stream-group-locations",
		Usage:     "remove remote locations from a stream group",
		Flags: []cli.Flag{
			identifierFlag("stream group ID or ARN"),
			sliceFlag("locations", "location name, e.g. us-east-1, repeatable"),
		},
		Action: r.Run,
		Meta:   m,
	}).Build()
}

func updateStreamGroupCommand(m meta.Meta) *cli.Command {
	r := streamsRunner("UpdateStreamGroup", func(ctx context.Context, cmd *cli.Command, api aws.GameLiftStreamsAPI) (*gls.UpdateStreamGroupOutput, error) {
		locs, err := streams.ParseLocations(cmd.StringSlice("location-configurations"))
		if err != nil {
			return nil, err
		}
		return api.UpdateStreamGroup(ctx, &gls.UpdateStreamGroupInput{
			Identifier:             optString(cmd, "identifier"),
			Description:            optString(cmd, "description"),
			LocationConfigurations: locs,
		})
	})
	r.Required = []string{"identifier"}
	r.DefaultAttrs = groupAttrs

	return (&OperationCommandBuilder{
		Namespace: streamsNS,
		Name:      "update-stream-group",
		Usage:     "change the description or capacity of a stream group",
		Flags: []cli.Flag{
			identifierFlag("stream group ID or ARN"),
			stringFlag("description", "human readable description"),
			locationsFlag(),
		},
		Action: r.Run,
		Meta:   m,
	}).Build()
}
