// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	geo "github.com/aws/aws-sdk-go-v2/service/sagemakergeospatial"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/gsctl/internal/aws"
	"github.com/tfctl/gsctl/internal/meta"
)

func geoListTagsForResourceCommand(m meta.Meta) *cli.Command {
	r := geoRunner("ListTagsForResource", func(ctx context.Context, cmd *cli.Command, api aws.GeospatialAPI) (*geo.ListTagsForResourceOutput, error) {
		return api.ListTagsForResource(ctx, &geo.ListTagsForResourceInput{
			ResourceArn: optString(cmd, "resource-arn"),
		})
	})
	r.Required = []string{"resource-arn"}
	r.Emit = func(_ context.Context, cmd *cli.Command, _ aws.GeospatialAPI, out *geo.ListTagsForResourceOutput) error {
		return emitTags(cmd, out, out.Tags)
	}

	return (&OperationCommandBuilder{
		Namespace: geoNS,
		Name:      "list-tags-for-resource",
		Usage:     "show the tags of a job",
		Flags:     []cli.Flag{resourceArnFlag()},
		Action:    r.Run,
		Meta:      m,
	}).Build()
}

func geoTagResourceCommand(m meta.Meta) *cli.Command {
	r := geoRunner("TagResource", func(ctx context.Context, cmd *cli.Command, api aws.GeospatialAPI) (*geo.TagResourceOutput, error) {
		return api.TagResource(ctx, &geo.TagResourceInput{
			ResourceArn: optString(cmd, "resource-arn"),
			Tags:        optMap(cmd, "tags"),
		})
	})
	r.Required = []string{"resource-arn", "tags"}
	r.Emit = emitNone

	return (&OperationCommandBuilder{
		Namespace: geoNS,
		Name:      "tag-resource",
		Usage:     "add or overwrite tags of a job",
		Flags:     []cli.Flag{resourceArnFlag(), tagsFlag()},
		Action:    r.Run,
		Meta:      m,
	}).Build()
}

func geoUntagResourceCommand(m meta.Meta) *cli.Command {
	r := geoRunner("UntagResource", func(ctx context.Context, cmd *cli.Command, api aws.GeospatialAPI) (*geo.UntagResourceOutput, error) {
		return api.UntagResource(ctx, &geo.UntagResourceInput{
			ResourceArn: optString(cmd, "resource-arn"),
			TagKeys:     optSlice(cmd, "tag-keys"),
		})
	})
	r.Required = []string{"resource-arn", "tag-keys"}
	r.Emit = emitNone

	return (&OperationCommandBuilder{
		Namespace: geoNS,
		Name:      "untag-resource",
		Usage:     "remove tags from a job",
		Flags:     []cli.Flag{resourceArnFlag(), sliceFlag("tag-keys", "tag key to remove, repeatable")},
		Action:    r.Run,
		Meta:      m,
	}).Build()
}
