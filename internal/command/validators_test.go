// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/gsctl/internal/waiter"
)

func TestValidators(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		v       FlagValidatorType
		wantErr bool
	}{
		{"output text", "text", OutputValidator, false},
		{"output yaml", "yaml", OutputValidator, false},
		{"output table", "table", OutputValidator, true},
		{"non-negative zero", 0, NonNegativeValidator, false},
		{"non-negative negative", -1, NonNegativeValidator, true},
		{"enum any case", "proton", EnumValidator("PROTON", "WINDOWS"), false},
		{"enum empty", "", EnumValidator("PROTON"), false},
		{"enum unknown", "macos", EnumValidator("PROTON", "WINDOWS"), true},
		{"job config kind", "temporal_statistics", JobConfigValidator, false},
		{"job config empty", "", JobConfigValidator, false},
		{"job config unknown", "sharpen", JobConfigValidator, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FlagValidators(tt.value, tt.v)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGlobalFlagsValidator(t *testing.T) {
	check := func(args ...string) error {
		var got error
		cmd := &cli.Command{
			Name:  "op",
			Flags: append([]cli.Flag{schemaFlag}, NewGlobalFlags()...),
			Action: func(ctx context.Context, c *cli.Command) error {
				got = GlobalFlagsValidator(ctx, c)
				return nil
			},
		}
		require.NoError(t, cmd.Run(context.Background(), append([]string{"op"}, args...)))
		return got
	}

	assert.NoError(t, check())
	assert.NoError(t, check("--schema"))
	assert.NoError(t, check("--output", "raw"))
	assert.Error(t, check("--schema", "--output", "raw"))
}

func TestWaitConfig(t *testing.T) {
	read := func(args ...string) waiter.Config {
		var got waiter.Config
		cmd := &cli.Command{
			Name:  "op",
			Flags: NewWaitFlags(true),
			Action: func(_ context.Context, c *cli.Command) error {
				got = waitConfig(c)
				return nil
			},
		}
		require.NoError(t, cmd.Run(context.Background(), append([]string{"op"}, args...)))
		return got
	}

	def := waiter.DefaultConfig()
	assert.Equal(t, def, read())

	got := read("--wait-timeout", "90s", "--wait-interval", "2m")
	assert.Equal(t, 90*time.Second, got.Timeout)
	assert.Equal(t, 2*time.Minute, got.Interval)
	assert.GreaterOrEqual(t, got.MaxInterval, 2*time.Minute)
	assert.Equal(t, def.Multiplier, got.Multiplier)
}
