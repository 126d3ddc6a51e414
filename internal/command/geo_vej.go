// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	geo "github.com/aws/aws-sdk-go-v2/service/sagemakergeospatial"
	"github.com/aws/aws-sdk-go-v2/service/sagemakergeospatial/types"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/gsctl/internal/aws"
	"github.com/tfctl/gsctl/internal/geospatial"
	"github.com/tfctl/gsctl/internal/meta"
)

func deleteVectorEnrichmentJobCommand(m meta.Meta) *cli.Command {
	r := geoRunner("DeleteVectorEnrichmentJob", func(ctx context.Context, cmd *cli.Command, api aws.GeospatialAPI) (*geo.DeleteVectorEnrichmentJobOutput, error) {
		return api.DeleteVectorEnrichmentJob(ctx, &geo.DeleteVectorEnrichmentJobInput{
			Arn: optString(cmd, "arn"),
		})
	})
	r.Required = []string{"arn"}
	r.Emit = emitNone

	return (&OperationCommandBuilder{
		Namespace: geoNS,
		Name:      "delete-vector-enrichment-job",
		Usage:     "delete a vector enrichment job",
		Flags:     []cli.Flag{arnFlag("vector enrichment job ARN")},
		Action:    r.Run,
		Meta:      m,
	}).Build()
}

func exportVectorEnrichmentJobCommand(m meta.Meta) *cli.Command {
	r := geoRunner("ExportVectorEnrichmentJob", func(ctx context.Context, cmd *cli.Command, api aws.GeospatialAPI) (*geo.ExportVectorEnrichmentJobOutput, error) {
		return api.ExportVectorEnrichmentJob(ctx, &geo.ExportVectorEnrichmentJobInput{
			Arn:              optString(cmd, "arn"),
			ExecutionRoleArn: optString(cmd, "execution-role-arn"),
			OutputConfig:     geospatial.VEJOutputConfig(cmd.String("s3-uri"), cmd.String("kms-key-id")),
			ClientToken:      optString(cmd, "client-token"),
		})
	})
	r.Required = []string{"arn", "execution-role-arn", "s3-uri"}
	r.DefaultAttrs = exportAttrs

	return (&OperationCommandBuilder{
		Namespace: geoNS,
		Name:      "export-vector-enrichment-job",
		Usage:     "copy the results of a vector enrichment job to S3",
		Flags: []cli.Flag{
			arnFlag("vector enrichment job ARN"),
			stringFlag("execution-role-arn", "IAM role the service assumes"),
			stringFlag("s3-uri", "S3 destination"),
			stringFlag("kms-key-id", "KMS key encrypting the export"),
			clientTokenFlag(),
		},
		Action: r.Run,
		Meta:   m,
	}).Build()
}

func getVectorEnrichmentJobCommand(m meta.Meta) *cli.Command {
	r := geoRunner("GetVectorEnrichmentJob", func(ctx context.Context, cmd *cli.Command, api aws.GeospatialAPI) (*geo.GetVectorEnrichmentJobOutput, error) {
		return api.GetVectorEnrichmentJob(ctx, &geo.GetVectorEnrichmentJobInput{
			Arn: optString(cmd, "arn"),
		})
	})
	r.Required = []string{"arn"}
	r.DefaultAttrs = vejAttrs

	return (&OperationCommandBuilder{
		Namespace: geoNS,
		Name:      "get-vector-enrichment-job",
		Usage:     "describe a vector enrichment job",
		Flags:     []cli.Flag{arnFlag("vector enrichment job ARN")},
		Action:    r.Run,
		Meta:      m,
	}).Build()
}

// vejListAugmenter maps --status-equals (or _status) and the sort flags
// onto the request.
func vejListAugmenter(_ context.Context, cmd *cli.Command, in *geo.ListVectorEnrichmentJobsInput) error {
	if s := flagOrFilter(cmd, "status-equals", "status"); s != "" {
		in.StatusEquals = &s
	}
	in.SortBy = optString(cmd, "sort-by")
	in.SortOrder = types.SortOrder(upper(cmd.String("sort-order")))
	return nil
}

func listVectorEnrichmentJobsCommand(m meta.Meta) *cli.Command {
	r := geoRunner("ListVectorEnrichmentJobs", func(ctx context.Context, cmd *cli.Command, api aws.GeospatialAPI) ([]types.ListVectorEnrichmentJobOutputConfig, error) {
		return PaginateWithOptions(ctx, cmd, &geo.ListVectorEnrichmentJobsInput{},
			func(ctx context.Context, in *geo.ListVectorEnrichmentJobsInput) ([]types.ListVectorEnrichmentJobOutputConfig, *string, error) {
				out, err := api.ListVectorEnrichmentJobs(ctx, in)
				if err != nil {
					return nil, nil, err
				}
				return out.VectorEnrichmentJobSummaries, out.NextToken, nil
			}, vejListAugmenter)
	})
	r.SchemaType = reflect.TypeFor[types.ListVectorEnrichmentJobOutputConfig]()
	r.DefaultAttrs = vejAttrs

	return (&OperationCommandBuilder{
		Namespace: geoNS,
		Name:      "list-vector-enrichment-jobs",
		Usage:     "list vector enrichment jobs",
		Flags:     append(jobListFlags(), NewPagingFlags()...),
		Action:    r.Run,
		Meta:      m,
	}).Build()
}

// vejDocument reads --input and applies the flag overrides.
func vejDocument(cmd *cli.Command) (*geospatial.VectorEnrichmentJob, error) {
	var job geospatial.VectorEnrichmentJob
	if p := cmd.String("input"); p != "" {
		if err := geospatial.LoadDocument(p, &job); err != nil {
			return nil, err
		}
	}

	setString(&job.Name, cmd, "name")
	setString(&job.ExecutionRoleArn, cmd, "execution-role-arn")
	setString(&job.KmsKeyID, cmd, "kms-key-id")
	setString(&job.ClientToken, cmd, "client-token")
	setString(&job.Input.DocumentType, cmd, "document-type")
	setString(&job.Input.S3URI, cmd, "source-s3-uri")
	job.Tags = mergeTags(job.Tags, cmd)

	if kind := cmd.String("job-config"); kind != "" {
		if err := job.JobConfig.Select(kind); err != nil {
			return nil, err
		}
	}
	if mm := job.JobConfig.MapMatching; mm != nil {
		setString(&mm.IDAttributeName, cmd, "id-attribute-name")
		setString(&mm.TimestampAttributeName, cmd, "timestamp-attribute-name")
		setString(&mm.XAttributeName, cmd, "x-attribute-name")
		setString(&mm.YAttributeName, cmd, "y-attribute-name")
	}
	if rg := job.JobConfig.ReverseGeocoding; rg != nil {
		setString(&rg.XAttributeName, cmd, "x-attribute-name")
		setString(&rg.YAttributeName, cmd, "y-attribute-name")
	}
	return &job, nil
}

func vejMissing(in *geo.StartVectorEnrichmentJobInput) (missing []string) {
	if in.Name == nil {
		missing = append(missing, "name")
	}
	if in.ExecutionRoleArn == nil {
		missing = append(missing, "execution-role-arn")
	}
	if in.InputConfig == nil {
		missing = append(missing, "source-s3-uri")
	}
	if in.JobConfig == nil {
		missing = append(missing, "job-config")
	}
	return
}

func startVectorEnrichmentJobCommand(m meta.Meta) *cli.Command {
	r := geoRunner("StartVectorEnrichmentJob", func(ctx context.Context, cmd *cli.Command, api aws.GeospatialAPI) (*geo.StartVectorEnrichmentJobOutput, error) {
		job, err := vejDocument(cmd)
		if err != nil {
			return nil, err
		}
		in, err := job.Request()
		if err != nil {
			return nil, err
		}
		WarnMissing(cmd, vejMissing(in))
		return api.StartVectorEnrichmentJob(ctx, in)
	})
	r.DefaultAttrs = vejAttrs
	r.Emit = func(ctx context.Context, cmd *cli.Command, api aws.GeospatialAPI, out *geo.StartVectorEnrichmentJobOutput) error {
		if !cmd.Bool("wait") {
			return Emit(cmd, out, BuildAttrs(cmd, vejAttrs...), "")
		}
		arn := awsString(out.Arn)
		got, err := geospatial.WaitForVectorEnrichmentJob(ctx, api, arn, waitConfig(cmd), progress(cmd, "vector enrichment job "+arn))
		return emitWaited(cmd, got, err, vejAttrs)
	}

	return (&OperationCommandBuilder{
		Namespace: geoNS,
		Name:      "start-vector-enrichment-job",
		Usage:     "start a vector enrichment job",
		Flags: append([]cli.Flag{
			inputFlag("job document"),
			stringFlag("name", "job name"),
			stringFlag("execution-role-arn", "IAM role the service assumes"),
			stringFlag("kms-key-id", "KMS key encrypting the results"),
			stringFlag("document-type", "input document type, e.g. CSV"),
			stringFlag("source-s3-uri", "S3 URI of the input document"),
			&cli.StringFlag{
				Name:  "job-config",
				Usage: "map-matching or reverse-geocoding",
				Validator: func(value string) error {
					if value == "" {
						return nil
					}
					return (&geospatial.VEJConfig{}).Select(value)
				},
			},
			stringFlag("id-attribute-name", "column holding the track ID (map matching)"),
			stringFlag("timestamp-attribute-name", "column holding the timestamp (map matching)"),
			stringFlag("x-attribute-name", "column holding longitude"),
			stringFlag("y-attribute-name", "column holding latitude"),
			clientTokenFlag(),
			tagsFlag(),
		}, NewWaitFlags(true)...),
		Action: r.Run,
		Meta:   m,
	}).Build()
}

func stopVectorEnrichmentJobCommand(m meta.Meta) *cli.Command {
	r := geoRunner("StopVectorEnrichmentJob", func(ctx context.Context, cmd *cli.Command, api aws.GeospatialAPI) (*geo.StopVectorEnrichmentJobOutput, error) {
		return api.StopVectorEnrichmentJob(ctx, &geo.StopVectorEnrichmentJobInput{
			Arn: optString(cmd, "arn"),
		})
	})
	r.Required = []string{"arn"}
	r.Emit = emitNone

	return (&OperationCommandBuilder{
		Namespace: geoNS,
		Name:      "stop-vector-enrichment-job",
		Usage:     "stop a running vector enrichment job",
		Flags:     []cli.Flag{arnFlag("vector enrichment job ARN")},
		Action:    r.Run,
		Meta:      m,
	}).Build()
}

func waitVectorEnrichmentJobCommand(m meta.Meta) *cli.Command {
	r := geoRunner("GetVectorEnrichmentJob", func(ctx context.Context, cmd *cli.Command, api aws.GeospatialAPI) (*geo.GetVectorEnrichmentJobOutput, error) {
		arn := cmd.String("arn")
		got, err := geospatial.WaitForVectorEnrichmentJob(ctx, api, arn, waitConfig(cmd), progress(cmd, "vector enrichment job "+arn))
		if err != nil && got != nil {
			return nil, emitWaited(cmd, got, err, vejAttrs)
		}
		return got, err
	})
	r.Required = []string{"arn"}
	r.DefaultAttrs = vejAttrs

	return (&OperationCommandBuilder{
		Namespace: geoNS,
		Name:      "wait-vector-enrichment-job",
		Usage:     "wait until a vector enrichment job is COMPLETED",
		Flags:     append([]cli.Flag{arnFlag("vector enrichment job ARN")}, NewWaitFlags(false)...),
		Action:    r.Run,
		Meta:      m,
	}).Build()
}
