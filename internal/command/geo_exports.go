// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/gsctl/internal/aws"
	"github.com/tfctl/gsctl/internal/meta"
)

const s3Service = "s3"

// ParseS3URI splits s3://bucket/prefix.
func ParseS3URI(uri string) (bucket, prefix string, err error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", "", fmt.Errorf("invalid S3 URI %q: want s3://bucket[/prefix]", uri)
	}
	bucket, prefix, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("invalid S3 URI %q: missing bucket", uri)
	}
	return bucket, prefix, nil
}

// listExportedObjectsCommand lists what an export wrote to S3.
func listExportedObjectsCommand(m meta.Meta) *cli.Command {
	r := &ActionRunner[aws.S3ListAPI, []s3types.Object]{
		Service:      s3Service,
		Operation:    "ListObjectsV2",
		SchemaType:   reflect.TypeFor[s3types.Object](),
		DefaultAttrs: []string{"Key", "Size", "LastModified:modified"},
		Required:     []string{"s3-uri"},
		Connect:      connectS3,
		Call:         listExportedObjects,
	}

	return (&OperationCommandBuilder{
		Namespace: geoNS,
		Name:      "list-exported-objects",
		Usage:     "list the objects an export job wrote to S3",
		Flags: []cli.Flag{
			stringFlag("s3-uri", "export destination, s3://bucket/prefix"),
			&cli.IntFlag{
				Name:  "max-items",
				Usage: "stop listing after this many objects, 0 for all",
			},
		},
		Action: r.Run,
		Meta:   m,
	}).Build()
}

func listExportedObjects(ctx context.Context, cmd *cli.Command, api aws.S3ListAPI) ([]s3types.Object, error) {
	bucket, prefix, err := ParseS3URI(cmd.String("s3-uri"))
	if err != nil {
		return nil, err
	}

	in := &s3v2.ListObjectsV2Input{Bucket: awsv2.String(bucket)}
	if prefix != "" {
		in.Prefix = awsv2.String(prefix)
	}

	var objects []s3types.Object
	maxItems := cmd.Int("max-items")
	p := s3v2.NewListObjectsV2Paginator(api, in)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		objects = append(objects, page.Contents...)
		if maxItems > 0 && len(objects) >= maxItems {
			objects = objects[:maxItems]
			break
		}
	}
	log.Debugf("s3://%s/%s: %d objects", bucket, prefix, len(objects))
	return objects, nil
}
