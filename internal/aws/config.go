// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/gameliftstreams"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sagemakergeospatial"

	"github.com/tfctl/gsctl/internal/log"
	"github.com/tfctl/gsctl/internal/version"
)

// options holds optional overrides for AWS config loading.
type options struct {
	profile     string
	region      string
	maxAttempts int
	retryer     func() awsv2.Retryer
}

// Option customizes how AWS config is loaded.
// Default behavior (no options) inherits the shell environment and shared
// config chain (AWS_PROFILE, ~/.aws/config, ~/.aws/credentials, IMDS, etc.).
type Option func(*options)

// LoadAWSConfig loads AWS SDK v2 config. By default it inherits the shell's
// AWS setup. Options can override profile, region and retry behavior.
func LoadAWSConfig(ctx context.Context, opts ...Option) (awsv2.Config, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	log.Debugf("opts applied: profile=%s, region=%s, maxAttempts=%d", o.profile, o.region, o.maxAttempts)

	loadOpts := []func(*config.LoadOptions) error{
		config.WithAppID(version.AppID()),
	}
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}
	if o.maxAttempts > 0 {
		loadOpts = append(loadOpts, config.WithRetryMaxAttempts(o.maxAttempts))
	}
	if o.retryer != nil {
		loadOpts = append(loadOpts, config.WithRetryer(o.retryer))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		log.Debugf("config load err: err=%v", err)
		return awsv2.Config{}, err
	}
	log.Debugf("config loaded: region=%s", cfg.Region)
	return cfg, nil
}

// WithProfile sets the shared config profile. Defaults to AWS_PROFILE/env chain.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion sets the region override. Defaults to env/profile/metadata chain.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithMaxAttempts caps the SDK standard retryer. Zero keeps the SDK default.
func WithMaxAttempts(n int) Option {
	return func(o *options) { o.maxAttempts = n }
}

// WithRetryer injects a custom retryer; if not set, SDK defaults are used.
func WithRetryer(newRetryer func() awsv2.Retryer) Option {
	return func(o *options) { o.retryer = newRetryer }
}

// NewGameLiftStreams constructs a GameLift Streams client.
func NewGameLiftStreams(cfg awsv2.Config, optFns ...func(*gameliftstreams.Options)) *gameliftstreams.Client {
	client := gameliftstreams.NewFromConfig(cfg, optFns...)
	log.Debugf("gameliftstreams client created: region=%s", cfg.Region)
	return client
}

// NewGeospatial constructs a SageMaker Geospatial client.
func NewGeospatial(cfg awsv2.Config, optFns ...func(*sagemakergeospatial.Options)) *sagemakergeospatial.Client {
	client := sagemakergeospatial.NewFromConfig(cfg, optFns...)
	log.Debugf("sagemakergeospatial client created: region=%s", cfg.Region)
	return client
}

// NewS3 constructs an S3 client.
func NewS3(cfg awsv2.Config, optFns ...func(*s3v2.Options)) *s3v2.Client {
	client := s3v2.NewFromConfig(cfg, optFns...)
	log.Debugf("s3 client created: region=%s", cfg.Region)
	return client
}

// Endpoint overrides are service-specific in AWS SDK v2, so each client
// gets its own typed option.

// WithStreamsEndpoint points the GameLift Streams client at url.
func WithStreamsEndpoint(url string) func(*gameliftstreams.Options) {
	return func(o *gameliftstreams.Options) {
		if url != "" {
			o.BaseEndpoint = awsv2.String(url)
		}
	}
}

// WithGeospatialEndpoint points the SageMaker Geospatial client at url.
func WithGeospatialEndpoint(url string) func(*sagemakergeospatial.Options) {
	return func(o *sagemakergeospatial.Options) {
		if url != "" {
			o.BaseEndpoint = awsv2.String(url)
		}
	}
}

// WithS3Endpoint points the S3 client at url using path-style addressing,
// which local S3 emulators expect.
func WithS3Endpoint(url string) func(*s3v2.Options) {
	return func(o *s3v2.Options) {
		if url != "" {
			o.BaseEndpoint = awsv2.String(url)
			o.UsePathStyle = true
		}
	}
}
