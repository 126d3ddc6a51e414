// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	geo "github.com/aws/aws-sdk-go-v2/service/sagemakergeospatial"
	"github.com/aws/aws-sdk-go-v2/service/sagemakergeospatial/types"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/tfctl/gsctl/internal/aws"
	"github.com/tfctl/gsctl/internal/differ"
	"github.com/tfctl/gsctl/internal/meta"
)

// pickJobs and interactive are swapped by tests.
var pickJobs = func(items []differ.Item) ([]differ.Item, error) {
	return differ.Pick("Select two jobs to compare", items)
}

var interactive = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

func diffEarthObservationJobsCommand(m meta.Meta) *cli.Command {
	r := geoRunner("GetEarthObservationJob", func(ctx context.Context, cmd *cli.Command, api aws.GeospatialAPI) (bool, error) {
		arns, err := diffTargets(ctx, cmd, api)
		if err != nil {
			return false, err
		}

		docs := make([][]byte, 0, 2)
		for _, arn := range arns {
			out, err := eojGet(ctx, api, arn)
			if err != nil {
				return false, err
			}
			b, err := json.Marshal(out)
			if err != nil {
				return false, fmt.Errorf("failed to encode %s: %w", arn, err)
			}
			docs = append(docs, b)
		}

		return differ.Diff(outWriter(cmd), docs[0], docs[1], differ.Options{
			Filter: differ.ParseFilter(cmd.String("diff-filter")),
			Color:  cmd.Bool("color"),
		})
	})
	r.SchemaType = nil
	r.Emit = func(context.Context, *cli.Command, aws.GeospatialAPI, bool) error { return nil }

	return (&OperationCommandBuilder{
		Namespace: geoNS,
		Name:      "diff-earth-observation-jobs",
		Usage:     "compare the configuration of two earth observation jobs",
		UsageText: "gsctl geo diff-earth-observation-jobs [ARN ARN]\n\nWithout ARNs on a terminal, pick two jobs from a list.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "diff-filter",
				Usage: "comma-separated top level keys to ignore, - for none",
			},
		},
		Action: r.Run,
		Meta:   m,
	}).Build()
}

// diffTargets returns the two ARNs to compare, from the arguments or from
// the picker.
func diffTargets(ctx context.Context, cmd *cli.Command, api aws.GeospatialAPI) ([]string, error) {
	args := cmd.Args().Slice()
	switch {
	case len(args) == 2:
		return args, nil
	case len(args) != 0:
		return nil, fmt.Errorf("expected two job ARNs, got %d", len(args))
	case !interactive():
		return nil, errors.New("expected two job ARNs")
	}

	jobs, err := PaginateWithOptions(ctx, cmd, &geo.ListEarthObservationJobsInput{},
		func(ctx context.Context, in *geo.ListEarthObservationJobsInput) ([]types.ListEarthObservationJobOutputConfig, *string, error) {
			out, err := api.ListEarthObservationJobs(ctx, in)
			if err != nil {
				return nil, nil, err
			}
			return out.EarthObservationJobSummaries, out.NextToken, nil
		}, nil)
	if err != nil {
		return nil, err
	}

	items := make([]differ.Item, 0, len(jobs))
	for _, j := range jobs {
		items = append(items, differ.Item{
			ID:    awsv2.ToString(j.Arn),
			Label: fmt.Sprintf("%s  %s  %s", awsv2.ToString(j.Name), j.Status, awsv2.ToTime(j.CreationTime).Format("2006-01-02 15:04")),
		})
	}

	picked, err := pickJobs(items)
	if err != nil {
		return nil, err
	}
	return []string{picked[0].ID, picked[1].ID}, nil
}
