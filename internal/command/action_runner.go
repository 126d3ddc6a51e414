// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"reflect"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/gsctl/internal/aws"
	"github.com/tfctl/gsctl/internal/meta"
)

// Service names used in error messages and as config namespaces.
const (
	streamsService    = "gameliftstreams"
	geospatialService = "sagemakergeospatial"
)

// ActionRunner[C, O] encapsulates the action shared by every operation
// command: schema short-circuit, missing parameter warnings, client
// construction, the call itself, error clarification and output. C is the
// client interface and O the operation's response.
type ActionRunner[C, O any] struct {
	Service      string
	Operation    string
	SchemaType   reflect.Type
	DefaultAttrs []string
	Parent       string // result list inside the response, e.g. "Items"
	// Required lists the flags the service requires. Commands whose
	// parameters may also come from an --input document check the built
	// request instead.
	Required []string
	Connect  func(context.Context, meta.Meta, meta.AWSSettings) (C, string, error)
	Call     func(context.Context, *cli.Command, C) (O, error)
	// Emit replaces the default output stage, e.g. to wait first or to
	// write binary content.
	Emit func(context.Context, *cli.Command, C, O) error
}

// Run executes the action with the provided context and command.
func (r *ActionRunner[C, O]) Run(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	if len(m.Args) > 1 {
		log.Debugf("Executing action for %v", m.Args[1:])
	}

	if DumpSchemaIfRequested(cmd, r.SchemaType) {
		return nil
	}

	WarnMissing(cmd, MissingFlags(cmd, r.Required...))

	settings := AWSSettingsFrom(cmd)
	client, region, err := r.Connect(ctx, m, settings)
	if err != nil {
		return fmt.Errorf("failed to configure %s client: %w", r.Service, err)
	}

	ctx = context.WithValue(ctx, regionKey{}, region)

	out, err := r.Call(ctx, cmd, client)
	if err != nil {
		return aws.Friendly(err, aws.ErrorContext{
			Service:   r.Service,
			Operation: r.Operation,
			Region:    region,
			Endpoint:  settings.Endpoint,
		})
	}

	if r.Emit != nil {
		return r.Emit(ctx, cmd, client, out)
	}

	al := BuildAttrs(cmd, r.DefaultAttrs...)
	log.Debugf("attrs: %v", al)
	return Emit(cmd, out, al, r.Parent)
}

type regionKey struct{}

// connectedRegion returns the region the runner's client resolved, or "".
func connectedRegion(ctx context.Context) string {
	region, _ := ctx.Value(regionKey{}).(string)
	return region
}

// connectStreams builds the GameLift Streams client of m, falling back to
// the real SDK client.
func connectStreams(ctx context.Context, m meta.Meta, s meta.AWSSettings) (aws.GameLiftStreamsAPI, string, error) {
	if m.Clients.Streams == nil {
		m.Clients = DefaultClients()
	}
	return m.Clients.Streams(ctx, s)
}

func connectGeospatial(ctx context.Context, m meta.Meta, s meta.AWSSettings) (aws.GeospatialAPI, string, error) {
	if m.Clients.Geospatial == nil {
		m.Clients = DefaultClients()
	}
	return m.Clients.Geospatial(ctx, s)
}

func connectS3(ctx context.Context, m meta.Meta, s meta.AWSSettings) (aws.S3ListAPI, string, error) {
	if m.Clients.S3 == nil {
		m.Clients = DefaultClients()
	}
	return m.Clients.S3(ctx, s)
}

// streamsRunner returns a runner for a GameLift Streams operation.
func streamsRunner[O any](op string, call func(context.Context, *cli.Command, aws.GameLiftStreamsAPI) (O, error)) *ActionRunner[aws.GameLiftStreamsAPI, O] {
	return &ActionRunner[aws.GameLiftStreamsAPI, O]{
		Service:    streamsService,
		Operation:  op,
		SchemaType: reflect.TypeFor[O](),
		Connect:    connectStreams,
		Call:       call,
	}
}

// geoRunner returns a runner for a SageMaker Geospatial operation.
func geoRunner[O any](op string, call func(context.Context, *cli.Command, aws.GeospatialAPI) (O, error)) *ActionRunner[aws.GeospatialAPI, O] {
	return &ActionRunner[aws.GeospatialAPI, O]{
		Service:    geospatialService,
		Operation:  op,
		SchemaType: reflect.TypeFor[O](),
		Connect:    connectGeospatial,
		Call:       call,
	}
}
