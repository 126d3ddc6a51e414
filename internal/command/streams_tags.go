// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	gls "github.com/aws/aws-sdk-go-v2/service/gameliftstreams"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/gsctl/internal/aws"
	"github.com/tfctl/gsctl/internal/meta"
)

func resourceArnFlag() *cli.StringFlag {
	return stringFlag("resource-arn", "ARN of the resource", "arn")
}

func streamsListTagsForResourceCommand(m meta.Meta) *cli.Command {
	r := streamsRunner("ListTagsForResource", func(ctx context.Context, cmd *cli.Command, api aws.GameLiftStreamsAPI) (*gls.ListTagsForResourceOutput, error) {
		return api.ListTagsForResource(ctx, &gls.ListTagsForResourceInput{
			ResourceArn: optString(cmd, "resource-arn"),
		})
	})
	r.Required = []string{"resource-arn"}
	r.Emit = func(_ context.Context, cmd *cli.Command, _ aws.GameLiftStreamsAPI, out *gls.ListTagsForResourceOutput) error {
		return emitTags(cmd, out, out.Tags)
	}

	return (&OperationCommandBuilder{
		Namespace: streamsNS,
		Name:      "list-tags-for-resource",
		Usage:     "show the tags of an application, stream group or session",
		Flags:     []cli.Flag{resourceArnFlag()},
		Action:    r.Run,
		Meta:      m,
	}).Build()
}

func streamsTagResourceCommand(m meta.Meta) *cli.Command {
	r := streamsRunner("TagResource", func(ctx context.Context, cmd *cli.Command, api aws.GameLiftStreamsAPI) (*gls.TagResourceOutput, error) {
		return api.TagResource(ctx, &gls.TagResourceInput{
			ResourceArn: optString(cmd, "resource-arn"),
			Tags:        optMap(cmd, "tags"),
		})
	})
	r.Required = []string{"resource-arn", "tags"}
	r.Emit = emitNone

	return (&OperationCommandBuilder{
		Namespace: streamsNS,
		Name:      "tag-resource",
		Usage:     "add or overwrite tags of a resource",
		Flags:     []cli.Flag{resourceArnFlag(), tagsFlag()},
		Action:    r.Run,
		Meta:      m,
	}).Build()
}

func streamsUntagResourceCommand(m meta.Meta) *cli.Command {
	r := streamsRunner("UntagResource", func(ctx context.Context, cmd *cli.Command, api aws.GameLiftStreamsAPI) (*gls.UntagResourceOutput, error) {
		return api.UntagResource(ctx, &gls.UntagResourceInput{
			ResourceArn: optString(cmd, "resource-arn"),
			TagKeys:     optSlice(cmd, "tag-keys"),
		})
	})
	r.Required = []string{"resource-arn", "tag-keys"}
	r.Emit = emitNone

	return (&OperationCommandBuilder{
		Namespace: streamsNS,
		Name:      "untag-resource",
		Usage:     "remove tags from a resource",
		Flags:     []cli.Flag{resourceArnFlag(), sliceFlag("tag-keys", "tag key to remove, repeatable")},
		Action:    r.Run,
		Meta:      m,
	}).Build()
}

// emitTags shows tags as Key/Value rows. --output raw keeps the response.
func emitTags(cmd *cli.Command, out any, tags map[string]string) error {
	if cmd.String("output") == "raw" {
		return Emit(cmd, out, nil, "")
	}
	return Emit(cmd, tagRows(tags), BuildAttrs(cmd, tagAttrs...), "")
}
