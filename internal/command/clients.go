// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tfctl/gsctl/internal/aws"
	"github.com/tfctl/gsctl/internal/config"
	"github.com/tfctl/gsctl/internal/meta"
)

// DefaultClients builds real SDK clients from the shared config chain.
func DefaultClients() meta.Clients {
	return meta.Clients{
		Streams: func(ctx context.Context, s meta.AWSSettings) (aws.GameLiftStreamsAPI, string, error) {
			cfg, err := aws.LoadAWSConfig(ctx, settingsOptions(s)...)
			if err != nil {
				return nil, "", err
			}
			return aws.NewGameLiftStreams(cfg, aws.WithStreamsEndpoint(s.Endpoint)), cfg.Region, nil
		},
		Geospatial: func(ctx context.Context, s meta.AWSSettings) (aws.GeospatialAPI, string, error) {
			cfg, err := aws.LoadAWSConfig(ctx, settingsOptions(s)...)
			if err != nil {
				return nil, "", err
			}
			return aws.NewGeospatial(cfg, aws.WithGeospatialEndpoint(s.Endpoint)), cfg.Region, nil
		},
		S3: func(ctx context.Context, s meta.AWSSettings) (aws.S3ListAPI, string, error) {
			cfg, err := aws.LoadAWSConfig(ctx, settingsOptions(s)...)
			if err != nil {
				return nil, "", err
			}
			// --endpoint-url addresses the service under test, not S3. Exports
			// in an S3 compatible store are reached through s3.endpoint-url.
			var optFns []func(*s3v2.Options)
			if url, _ := config.GetString("s3.endpoint-url"); url != "" {
				optFns = append(optFns, aws.WithS3Endpoint(url))
			}
			return aws.NewS3(cfg, optFns...), cfg.Region, nil
		},
	}
}

func settingsOptions(s meta.AWSSettings) []aws.Option {
	opts := []aws.Option{aws.WithProfile(s.Profile), aws.WithRegion(s.Region)}
	if s.MaxAttempts > 0 {
		opts = append(opts, aws.WithRetryer(func() awsv2.Retryer {
			return retry.NewStandard(func(o *retry.StandardOptions) {
				o.MaxAttempts = s.MaxAttempts
			})
		}))
	}
	return opts
}
