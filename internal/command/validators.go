// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/gsctl/internal/geospatial"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// GlobalFlagsValidator checks flag combinations that no single flag
// validator can see.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	if c.Bool("schema") && c.String("output") == "raw" {
		return fmt.Errorf("--schema cannot be combined with --output raw")
	}
	return nil
}

func OutputValidator(value any) error {
	var validOutputFlagValues = []string{"text", "json", "raw", "yaml"}
	valid := false
	for _, v := range validOutputFlagValues {
		if v == value {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("must be one of %v", validOutputFlagValues)
	}
	return nil
}

func NonNegativeValidator(value any) error {
	if n, ok := value.(int); ok && n < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

// JobConfigValidator accepts the earth observation job config kinds.
func JobConfigValidator(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	return (&geospatial.JobConfig{}).Select(s)
}

// EnumValidator returns a validator accepting the given values in any case,
// or the empty string.
func EnumValidator(allowed ...string) FlagValidatorType {
	return func(value any) error {
		s, _ := value.(string)
		if s == "" || slices.Contains(allowed, strings.ToUpper(s)) {
			return nil
		}
		return fmt.Errorf("must be one of %v", allowed)
	}
}
