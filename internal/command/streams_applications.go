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

func createApplicationCommand(m meta.Meta) *cli.Command {
	r := streamsRunner("CreateApplication", func(ctx context.Context, cmd *cli.Command, api aws.GameLiftStreamsAPI) (*gls.CreateApplicationOutput, error) {
		return api.CreateApplication(ctx, createApplicationInput(cmd))
	})
	r.Required = []string{"application-source-uri", "description", "executable-path", "runtime-type", "runtime-version"}
	r.DefaultAttrs = applicationAttrs
	r.Emit = func(ctx context.Context, cmd *cli.Command, api aws.GameLiftStreamsAPI, out *gls.CreateApplicationOutput) error {
		if !cmd.Bool("wait") {
			return Emit(cmd, out, BuildAttrs(cmd, applicationAttrs...), "")
		}
		id := awsString(out.Arn)
		got, err := streams.WaitForApplication(ctx, api, id, waitConfig(cmd), progress(cmd, "application "+id))
		return emitWaited(cmd, got, err, applicationAttrs)
	}

	return (&OperationCommandBuilder{
		Namespace: streamsNS,
		Name:      "create-application",
		Usage:     "create an application from files in S3",
		Flags: append([]cli.Flag{
			stringFlag("application-source-uri", "S3 URI of the application files"),
			stringFlag("description", "human readable description"),
			stringFlag("executable-path", "path of the launch executable, relative to the source"),
			&cli.StringFlag{
				Name:  "runtime-type",
				Usage: "runtime environment type (PROTON, WINDOWS, UBUNTU)",
				Validator: func(value string) error {
					return FlagValidators(value, EnumValidator("PROTON", "WINDOWS", "UBUNTU"))
				},
			},
			stringFlag("runtime-version", "runtime environment version"),
			stringFlag("application-log-output-uri", "S3 URI receiving application logs"),
			sliceFlag("application-log-paths", "log locations relative to the source, repeatable"),
			clientTokenFlag(),
			tagsFlag(),
		}, NewWaitFlags(true)...),
		Action: r.Run,
		Meta:   m,
	}).Build()
}

func createApplicationInput(cmd *cli.Command) *gls.CreateApplicationInput {
	return &gls.CreateApplicationInput{
		ApplicationSourceUri:    optString(cmd, "application-source-uri"),
		Description:             optString(cmd, "description"),
		ExecutablePath:          optString(cmd, "executable-path"),
		RuntimeEnvironment:      runtimeEnvironment(cmd),
		ApplicationLogOutputUri: optString(cmd, "application-log-output-uri"),
		ApplicationLogPaths:     optSlice(cmd, "application-log-paths"),
		ClientToken:             optString(cmd, "client-token"),
		Tags:                    optMap(cmd, "tags"),
	}
}

// runtimeEnvironment is nil when neither type nor version is given.
func runtimeEnvironment(cmd *cli.Command) *types.RuntimeEnvironment {
	typ, version := upper(cmd.String("runtime-type")), optString(cmd, "runtime-version")
	if typ == "" && version == nil {
		return nil
	}
	return &types.RuntimeEnvironment{
		Type:    types.RuntimeEnvironmentType(typ),
		Version: version,
	}
}

func deleteApplicationCommand(m meta.Meta) *cli.Command {
	r := streamsRunner("DeleteApplication", func(ctx context.Context, cmd *cli.Command, api aws.GameLiftStreamsAPI) (*gls.DeleteApplicationOutput, error) {
		return api.DeleteApplication(ctx, &gls.DeleteApplicationInput{
			Identifier: optString(cmd, "identifier"),
		})
	})
	r.Required = []string{"identifier"}
	r.Emit = emitNone

	return (&OperationCommandBuilder{
		Namespace: streamsNS,
		Name:      "delete-application",
		Usage:     "delete an application",
		Flags:     []cli.Flag{identifierFlag("application ID or ARN")},
		Action:    r.Run,
		Meta:      m,
	}).Build()
}

func getApplicationCommand(m meta.Meta) *cli.Command {
	r := streamsRunner("GetApplication", func(ctx context.Context, cmd *cli.Command, api aws.GameLiftStreamsAPI) (*gls.GetApplicationOutput, error) {
		return api.GetApplication(ctx, &gls.GetApplicationInput{
			Identifier: optString(cmd, "identifier"),
		})
	})
	r.Required = []string{"identifier"}
	r.DefaultAttrs = applicationAttrs

	return (&OperationCommandBuilder{
		Namespace: streamsNS,
		Name:      "get-application",
		Usage:     "describe an application",
		Flags:     []cli.Flag{identifierFlag("application ID or ARN")},
		Action:    r.Run,
		Meta:      m,
	}).Build()
}

func listApplicationsCommand(m meta.Meta) *cli.Command {
	r := streamsRunner("ListApplications", func(ctx context.Context, cmd *cli.Command, api aws.GameLiftStreamsAPI) ([]types.ApplicationSummary, error) {
		return PaginateWithOptions(ctx, cmd, &gls.ListApplicationsInput{},
			func(ctx context.Context, in *gls.ListApplicationsInput) ([]types.ApplicationSummary, *string, error) {
				out, err := api.ListApplications(ctx, in)
				if err != nil {
					return nil, nil, err
				}
				return out.Items, out.NextToken, nil
			}, nil)
	})
	r.SchemaType = reflect.TypeFor[types.ApplicationSummary]()
	r.DefaultAttrs = applicationAttrs

	return (&OperationCommandBuilder{
		Namespace: streamsNS,
		Name:      "list-applications",
		Usage:     "list applications",
		Flags:     NewPagingFlags(),
		Action:    r.Run,
		Meta:      m,
	}).Build()
}

func updateApplicationCommand(m meta.Meta) *cli.Command {
	r := streamsRunner("UpdateApplication", func(ctx context.Context, cmd *cli.Command, api aws.GameLiftStreamsAPI) (*gls.UpdateApplicationOutput, error) {
		return api.UpdateApplication(ctx, &gls.UpdateApplicationInput{
			Identifier:              optString(cmd, "identifier"),
			Description:             optString(cmd, "description"),
			ApplicationLogOutputUri: optString(cmd, "application-log-output-uri"),
			ApplicationLogPaths:     optSlice(cmd, "application-log-paths"),
		})
	})
	r.Required = []string{"identifier"}
	r.DefaultAttrs = applicationAttrs

	return (&OperationCommandBuilder{
		Namespace: streamsNS,
		Name:      "update-application",
		Usage:     "change the description or logging of an application",
		Flags: []cli.Flag{
			identifierFlag("application ID or ARN"),
			stringFlag("description", "human readable description"),
			stringFlag("application-log-output-uri", "S3 URI receiving application logs"),
			sliceFlag("application-log-paths", "log locations relative to the source, repeatable"),
		},
		Action: r.Run,
		Meta:   m,
	}).Build()
}
