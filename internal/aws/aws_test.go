// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package aws

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/service/gameliftstreams"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sagemakergeospatial"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOptions verifies that each Option sets its field, and that later
// options override earlier ones.
func TestOptions(t *testing.T) {
	var o options
	WithProfile("dev")(&o)
	WithRegion("us-east-1")(&o)
	WithRegion("us-west-2")(&o)
	WithMaxAttempts(5)(&o)
	WithRetryer(func() awsv2.Retryer { return retry.NewStandard() })(&o)

	assert.Equal(t, "dev", o.profile)
	assert.Equal(t, "us-west-2", o.region)
	assert.Equal(t, 5, o.maxAttempts)
	require.NotNil(t, o.retryer)
	assert.NotNil(t, o.retryer())
}

// TestLoadAWSConfig_WithRegion verifies the region override lands in the
// loaded config. No network is needed to load config.
func TestLoadAWSConfig_WithRegion(t *testing.T) {
	t.Setenv("AWS_CONFIG_FILE", "/dev/null")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/dev/null")

	cfg, err := LoadAWSConfig(context.Background(), WithRegion("us-west-2"), WithMaxAttempts(2))
	require.NoError(t, err)
	assert.Equal(t, "us-west-2", cfg.Region)
	assert.Equal(t, "gsctl/dev", cfg.AppID)
}

// TestEndpointOptions verifies the per-service endpoint overrides.
func TestEndpointOptions(t *testing.T) {
	var so gameliftstreams.Options
	WithStreamsEndpoint("http://localhost:4566")(&so)
	assert.Equal(t, "http://localhost:4566", awsv2.ToString(so.BaseEndpoint))

	var empty gameliftstreams.Options
	WithStreamsEndpoint("")(&empty)
	assert.Nil(t, empty.BaseEndpoint)

	var gopts sagemakergeospatial.Options
	WithGeospatialEndpoint("http://geo.local")(&gopts)
	assert.Equal(t, "http://geo.local", awsv2.ToString(gopts.BaseEndpoint))

	var s3o s3v2.Options
	WithS3Endpoint("http://minio:9000")(&s3o)
	assert.Equal(t, "http://minio:9000", awsv2.ToString(s3o.BaseEndpoint))
	assert.True(t, s3o.UsePathStyle)
}

// TestNewClients verifies client construction from a loaded config.
func TestNewClients(t *testing.T) {
	cfg := awsv2.Config{Region: "us-west-2"}
	assert.NotNil(t, NewGameLiftStreams(cfg))
	assert.NotNil(t, NewGeospatial(cfg, WithGeospatialEndpoint("http://x")))
	assert.NotNil(t, NewS3(cfg))
}

func TestFriendly(t *testing.T) {
	ctx := ErrorContext{Service: "gameliftstreams", Operation: "GetStreamGroup", Region: "us-east-2"}

	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, Friendly(nil, ctx))
	})

	t.Run("dns failure is rewrapped", func(t *testing.T) {
		dns := &net.DNSError{Err: "no such host", Name: "gameliftstreams.nowhere-1.amazonaws.com", IsNotFound: true}
		err := Friendly(fmt.Errorf("send request: %w", dns), ctx)

		var epErr *EndpointError
		require.ErrorAs(t, err, &epErr)
		assert.Contains(t, err.Error(), "GetStreamGroup: could not reach the gameliftstreams service in region us-east-2")

		var got *net.DNSError
		assert.ErrorAs(t, err, &got, "original error stays reachable")
	})

	t.Run("dial failure names the endpoint", func(t *testing.T) {
		op := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
		withEndpoint := ctx
		withEndpoint.Endpoint = "http://localhost:1"
		err := Friendly(op, withEndpoint)
		assert.Contains(t, err.Error(), "endpoint http://localhost:1")
	})

	t.Run("api error unchanged", func(t *testing.T) {
		api := &smithy.GenericAPIError{Code: "ResourceNotFoundException", Message: "nope"}
		err := Friendly(api, ctx)
		assert.Same(t, api, err)
		assert.Equal(t, "ResourceNotFoundException", ErrorCode(err))
	})

	t.Run("other error unchanged", func(t *testing.T) {
		plain := errors.New("plain")
		assert.Same(t, plain, Friendly(plain, ctx))
		assert.Equal(t, "", ErrorCode(plain))
	})
}
