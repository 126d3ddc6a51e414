// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/tfctl/gsctl/internal/aws"
	"github.com/tfctl/gsctl/internal/config"
)

// AWSSettings are the connection flags resolved for one command.
type AWSSettings struct {
	Profile     string
	Region      string
	Endpoint    string
	MaxAttempts int
}

// Clients builds the service clients a command talks to. Each constructor
// also returns the region the client resolved to, for error messages.
// Tests replace these with fakes.
type Clients struct {
	Streams    func(context.Context, AWSSettings) (aws.GameLiftStreamsAPI, string, error)
	Geospatial func(context.Context, AWSSettings) (aws.GeospatialAPI, string, error)
	S3         func(context.Context, AWSSettings) (aws.S3ListAPI, string, error)
}

// Meta contains runtime metadata shared by commands: the CLI arguments, the
// loaded configuration, the root context and the client constructors.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
	Clients Clients
}
