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

var sessionStatuses = []string{"ACTIVATING", "ACTIVE", "CONNECTED", "PENDING_CLIENT_RECONNECTION", "RECONNECTING", "TERMINATING", "TERMINATED", "ERROR"}

func sessionFlags() []cli.Flag {
	return []cli.Flag{
		identifierFlag("stream group ID or ARN"),
		stringFlag("stream-session-identifier", "stream session ID or ARN", "session"),
	}
}

func statusFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "status",
			Usage: "only sessions in this status. Also _status=STATUS in --filter",
			Validator: func(value string) error {
				return FlagValidators(value, EnumValidator(sessionStatuses...))
			},
		},
		&cli.StringFlag{
			Name:  "export-files-status",
			Usage: "only sessions whose file export is SUCCEEDED, FAILED or PENDING",
			Validator: func(value string) error {
				return FlagValidators(value, EnumValidator("SUCCEEDED", "FAILED", "PENDING"))
			},
		},
	}
}

func createStreamSessionConnectionCommand(m meta.Meta) *cli.Command {
	r := streamsRunner("CreateStreamSessionConnection", func(ctx context.Context, cmd *cli.Command, api aws.GameLiftStreamsAPI) (*gls.CreateStreamSessionConnectionOutput, error) {
		return api.CreateStreamSessionConnection(ctx, &gls.CreateStreamSessionConnectionInput{
			Identifier:              optString(cmd, "identifier"),
			StreamSessionIdentifier: optString(cmd, "stream-session-identifier"),
			SignalRequest:           optString(cmd, "signal-request"),
			ClientToken:             optString(cmd, "client-token"),
		})
	})
	r.Required = []string{"identifier", "stream-session-identifier", "signal-request"}
	r.DefaultAttrs = []string{"SignalResponse:signal"}

	return (&OperationCommandBuilder{
		Namespace: streamsNS,
		Name:      "create-stream-session-connection",
		Usage:     "reconnect a client to a stream session",
		Flags: append(sessionFlags(),
			stringFlag("signal-request", "WebRTC signal request from the client"),
			clientTokenFlag(),
		),
		Action: r.Run,
		Meta:   m,
	}).Build()
}

func exportStreamSessionFilesCommand(m meta.Meta) *cli.Command {
	r := streamsRunner("ExportStreamSessionFiles", func(ctx context.Context, cmd *cli.Command, api aws.GameLiftStreamsAPI) (*gls.ExportStreamSessionFilesOutput, error) {
		return api.ExportStreamSessionFiles(ctx, &gls.ExportStreamSessionFilesInput{
			Identifier:              optString(cmd, "identifier"),
			StreamSessionIdentifier: optString(cmd, "stream-session-identifier"),
			OutputUri:               optString(cmd, "output-uri"),
		})
	})
	r.Required = []string{"identifier", "stream-session-identifier", "output-uri"}
	r.Emit = emitNone

	return (&OperationCommandBuilder{
		Namespace: streamsNS,
		Name:      "export-stream-session-files",
		Usage:     "export the logs and saved files of a session to S3",
		Flags: append(sessionFlags(),
			stringFlag("output-uri", "S3 URI of the zip file to write"),
		),
		Action: r.Run,
		Meta:   m,
	}).Build()
}

func getStreamSessionCommand(m meta.Meta) *cli.Command {
	r := streamsRunner("GetStreamSession", func(ctx context.Context, cmd *cli.Command, api aws.GameLiftStreamsAPI) (*gls.GetStreamSessionOutput, error) {
		return api.GetStreamSession(ctx, &gls.GetStreamSessionInput{
			Identifier:              optString(cmd, "identifier"),
			StreamSessionIdentifier: optString(cmd, "stream-session-identifier"),
		})
	})
	r.Required = []string{"identifier", "stream-session-identifier"}
	r.DefaultAttrs = sessionAttrs

	return (&OperationCommandBuilder{
		Namespace: streamsNS,
		Name:      "get-stream-session",
		Usage:     "describe a stream session",
		Flags:     sessionFlags(),
		Action:    r.Run,
		Meta:      m,
	}).Build()
}

// sessionFilterAugmenter maps --status, --export-files-status and their
// _status / _exportfilesstatus filters onto the request.
func sessionFilterAugmenter[O any](set func(*O, types.StreamSessionStatus, types.ExportFilesStatus)) Augmenter[O] {
	return func(_ context.Context, cmd *cli.Command, in *O) error {
		set(in,
			types.StreamSessionStatus(flagOrFilter(cmd, "status", "status")),
			types.ExportFilesStatus(flagOrFilter(cmd, "export-files-status", "exportfilesstatus")))
		return nil
	}
}

func listStreamSessionsCommand(m meta.Meta) *cli.Command {
	r := streamsRunner("ListStreamSessions", func(ctx context.Context, cmd *cli.Command, api aws.GameLiftStreamsAPI) ([]types.StreamSessionSummary, error) {
		in := &gls.ListStreamSessionsInput{Identifier: optString(cmd, "identifier")}
		return PaginateWithOptions(ctx, cmd, in,
			func(ctx context.Context, in *gls.ListStreamSessionsInput) ([]types.StreamSessionSummary, *string, error) {
				out, err := api.ListStreamSessions(ctx, in)
				if err != nil {
					return nil, nil, err
				}
				return out.Items, out.NextToken, nil
			},
			sessionFilterAugmenter(func(in *gls.ListStreamSessionsInput, s types.StreamSessionStatus, e types.ExportFilesStatus) {
				in.Status, in.ExportFilesStatus = s, e
			}))
	})
	r.Required = []string{"identifier"}
	r.SchemaType = reflect.TypeFor[types.StreamSessionSummary]()
	r.DefaultAttrs = sessionAttrs

	return (&OperationCommandBuilder{
		Namespace: streamsNS,
		Name:      "list-stream-sessions",
		Usage:     "list the sessions of a stream group",
		Flags: append(append([]cli.Flag{identifierFlag("stream group ID or ARN")},
			statusFlags()...), NewPagingFlags()...),
		Action: r.Run,
		Meta:   m,
	}).Build()
}

func listStreamSessionsByAccountCommand(m meta.Meta) *cli.Command {
	r := streamsRunner("ListStreamSessionsByAccount", func(ctx context.Context, cmd *cli.Command, api aws.GameLiftStreamsAPI) ([]types.StreamSessionSummary, error) {
		return PaginateWithOptions(ctx, cmd, &gls.ListStreamSessionsByAccountInput{},
			func(ctx context.Context, in *gls.ListStreamSessionsByAccountInput) ([]types.StreamSessionSummary, *string, error) {
				out, err := api.ListStreamSessionsByAccount(ctx, in)
				if err != nil {
					return nil, nil, err
				}
				return out.Items, out.NextToken, nil
			},
			sessionFilterAugmenter(func(in *gls.ListStreamSessionsByAccountInput, s types.StreamSessionStatus, e types.ExportFilesStatus) {
				in.Status, in.ExportFilesStatus = s, e
			}))
	})
	r.SchemaType = reflect.TypeFor[types.StreamSessionSummary]()
	r.DefaultAttrs = sessionAttrs

	return (&OperationCommandBuilder{
		Namespace: streamsNS,
		Name:      "list-stream-sessions-by-account",
		Usage:     "list the sessions of every stream group in the account",
		Flags:     append(statusFlags(), NewPagingFlags()...),
		Action:    r.Run,
		Meta:      m,
	}).Build()
}

func startStreamSessionCommand(m meta.Meta) *cli.Command {
	r := streamsRunner("StartStreamSession", func(ctx context.Context, cmd *cli.Command, api aws.GameLiftStreamsAPI) (*gls.StartStreamSessionOutput, error) {
		return api.StartStreamSession(ctx, startStreamSessionInput(cmd))
	})
	r.Required = []string{"identifier", "application-identifier", "signal-request"}
	r.DefaultAttrs = sessionAttrs
	r.Emit = func(ctx context.Context, cmd *cli.Command, api aws.GameLiftStreamsAPI, out *gls.StartStreamSessionOutput) error {
		if !cmd.Bool("wait") {
			return Emit(cmd, out, BuildAttrs(cmd, sessionAttrs...), "")
		}
		session := awsString(out.Arn)
		got, err := streams.WaitForSession(ctx, api, cmd.String("identifier"), session,
			waitConfig(cmd), progress(cmd, "stream session "+session))
		return emitWaited(cmd, got, err, sessionAttrs)
	}

	return (&OperationCommandBuilder{
		Namespace: streamsNS,
		Name:      "start-stream-session",
		Usage:     "start streaming an application to a client",
		Flags: append([]cli.Flag{
			identifierFlag("stream group ID or ARN"),
			stringFlag("application-identifier", "application ID or ARN", "app"),
			&cli.StringFlag{
				Name:  "protocol",
				Usage: "streaming protocol",
				Value: "WebRTC",
			},
			stringFlag("signal-request", "WebRTC signal request from the client"),
			stringFlag("description", "human readable description"),
			stringFlag("user-id", "opaque end user identifier"),
			sliceFlag("locations", "locations to try in order, repeatable"),
			sliceFlag("additional-launch-args", "extra application arguments, repeatable"),
			&cli.StringMapFlag{
				Name:  "additional-environment-variables",
				Usage: "extra application environment as key=value, repeatable",
			},
			&cli.IntFlag{
				Name:  "connection-timeout-seconds",
				Usage: "seconds the client has to connect",
			},
			&cli.IntFlag{
				Name:  "session-length-seconds",
				Usage: "maximum session duration in seconds",
			},
			clientTokenFlag(),
		}, NewWaitFlags(true)...),
		Action: r.Run,
		Meta:   m,
	}).Build()
}

func startStreamSessionInput(cmd *cli.Command) *gls.StartStreamSessionInput {
	return &gls.StartStreamSessionInput{
		Identifier:                     optString(cmd, "identifier"),
		ApplicationIdentifier:          optString(cmd, "application-identifier"),
		Protocol:                       types.Protocol(cmd.String("protocol")),
		SignalRequest:                  optString(cmd, "signal-request"),
		Description:                    optString(cmd, "description"),
		UserId:                         optString(cmd, "user-id"),
		Locations:                      optSlice(cmd, "locations"),
		AdditionalLaunchArgs:           optSlice(cmd, "additional-launch-args"),
		AdditionalEnvironmentVariables: optMap(cmd, "additional-environment-variables"),
		ConnectionTimeoutSeconds:       optInt32(cmd, "connection-timeout-seconds"),
		SessionLengthSeconds:           optInt32(cmd, "session-length-seconds"),
		ClientToken:                    optString(cmd, "client-token"),
	}
}

func terminateStreamSessionCommand(m meta.Meta) *cli.Command {
	r := streamsRunner("TerminateStreamSession", func(ctx context.Context, cmd *cli.Command, api aws.GameLiftStreamsAPI) (*gls.TerminateStreamSessionOutput, error) {
		return api.TerminateStreamSession(ctx, &gls.TerminateStreamSessionInput{
			Identifier:              optString(cmd, "identifier"),
			StreamSessionIdentifier: optString(cmd, "stream-session-identifier"),
		})
	})
	r.Required = []string{"identifier", "stream-session-identifier"}
	r.Emit = emitNone

	return (&OperationCommandBuilder{
		Namespace: streamsNS,
		Name:      "terminate-stream-session",
		Usage:     "end a stream session",
		Flags:     sessionFlags(),
		Action:    r.Run,
		Meta:      m,
	}).Build()
}

// waitStreamSessionCommand polls GetStreamSession until the session is
// ACTIVE or has failed.
func waitStreamSessionCommand(m meta.Meta) *cli.Command {
	r := streamsRunner("GetStreamSession", func(ctx context.Context, cmd *cli.Command, api aws.GameLiftStreamsAPI) (*gls.GetStreamSessionOutput, error) {
		session := cmd.String("stream-session-identifier")
		got, err := streams.WaitForSession(ctx, api, cmd.String("identifier"), session,
			waitConfig(cmd), progress(cmd, "stream session "+session))
		if err != nil && got != nil {
			// Show where the session ended up before failing.
			return nil, emitWaited(cmd, got, err, sessionAttrs)
		}
		return got, err
	})
	r.Required = []string{"identifier", "stream-session-identifier"}
	r.DefaultAttrs = sessionAttrs

	return (&OperationCommandBuilder{
		Namespace: streamsNS,
		Name:      "wait-stream-session",
		Usage:     "wait until a stream session is ACTIVE",
		Flags:     append(sessionFlags(), NewWaitFlags(false)...),
		Action:    r.Run,
		Meta:      m,
	}).Build()
}
