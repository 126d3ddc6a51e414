// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package streams

import (
	"fmt"
	"strconv"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/gameliftstreams/types"
)

// ParseLocations turns "name[:alwaysOn[:onDemand]]" specs into location
// configurations. Omitted capacities stay nil so the service applies its
// defaults. An empty input yields nil.
func ParseLocations(specs []string) ([]types.LocationConfiguration, error) {
	var locations []types.LocationConfiguration
	for _, spec := range specs {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}

		parts := strings.Split(spec, ":")
		if len(parts) > 3 || parts[0] == "" {
			return nil, fmt.Errorf("invalid location %q: want name[:alwaysOn[:onDemand]]", spec)
		}

		loc := types.LocationConfiguration{LocationName: awsv2.String(parts[0])}
		for i, field := range []**int32{&loc.AlwaysOnCapacity, &loc.OnDemandCapacity} {
			if len(parts) <= i+1 || parts[i+1] == "" {
				continue
			}
			n, err := strconv.ParseInt(parts[i+1], 10, 32)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("invalid capacity %q in location %q", parts[i+1], spec)
			}
			*field = awsv2.Int32(int32(n))
		}

		locations = append(locations, loc)
	}
	return locations, nil
}
