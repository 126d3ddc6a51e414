// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	geo "github.com/aws/aws-sdk-go-v2/service/sagemakergeospatial"
	"github.com/aws/aws-sdk-go-v2/service/sagemakergeospatial/types"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/gsctl/internal/aws"
	"github.com/tfctl/gsctl/internal/geospatial"
	"github.com/tfctl/gsctl/internal/meta"
)

func deleteEarthObservationJobCommand(m meta.Meta) *cli.Command {
	r := geoRunner("DeleteEarthObservationJob", func(ctx context.Context, cmd *cli.Command, api aws.GeospatialAPI) (*geo.DeleteEarthObservationJobOutput, error) {
		return api.DeleteEarthObservationJob(ctx, &geo.DeleteEarthObservationJobInput{
			Arn: optString(cmd, "arn"),
		})
	})
	r.Required = []string{"arn"}
	r.Emit = emitNone

	return (&OperationCommandBuilder{
		Namespace: geoNS,
		Name:      "delete-earth-observation-job",
		Usage:     "delete an earth observation job",
		Flags:     []cli.Flag{arnFlag("earth observation job ARN")},
		Action:    r.Run,
		Meta:      m,
	}).Build()
}

func exportEarthObservationJobCommand(m meta.Meta) *cli.Command {
	r := geoRunner("ExportEarthObservationJob", func(ctx context.Context, cmd *cli.Command, api aws.GeospatialAPI) (*geo.ExportEarthObservationJobOutput, error) {
		return api.ExportEarthObservationJob(ctx, &geo.ExportEarthObservationJobInput{
			Arn:                optString(cmd, "arn"),
			ExecutionRoleArn:   optString(cmd, "execution-role-arn"),
			OutputConfig:       geospatial.EOJOutputConfig(cmd.String("s3-uri"), cmd.String("kms-key-id")),
			ExportSourceImages: optBool(cmd, "export-source-images"),
			ClientToken:        optString(cmd, "client-token"),
		})
	})
	r.Required = []string{"arn", "execution-role-arn", "s3-uri"}
	r.DefaultAttrs = exportAttrs

	return (&OperationCommandBuilder{
		Namespace: geoNS,
		Name:      "export-earth-observation-job",
		Usage:     "copy the results of an earth observation job to S3",
		Flags: []cli.Flag{
			arnFlag("earth observation job ARN"),
			stringFlag("execution-role-arn", "IAM role the service assumes"),
			stringFlag("s3-uri", "S3 destination"),
			stringFlag("kms-key-id", "KMS key encrypting the export"),
			&cli.BoolFlag{Name: "export-source-images", Usage: "also export the source images"},
			clientTokenFlag(),
		},
		Action: r.Run,
		Meta:   m,
	}).Build()
}

func getEarthObservationJobCommand(m meta.Meta) *cli.Command {
	r := geoRunner("GetEarthObservationJob", func(ctx context.Context, cmd *cli.Command, api aws.GeospatialAPI) (*geo.GetEarthObservationJobOutput, error) {
		return api.GetEarthObservationJob(ctx, &geo.GetEarthObservationJobInput{
			Arn: optString(cmd, "arn"),
		})
	})
	r.Required = []string{"arn"}
	r.DefaultAttrs = eojAttrs

	return (&OperationCommandBuilder{
		Namespace: geoNS,
		Name:      "get-earth-observation-job",
		Usage:     "describe an earth observation job",
		Flags:     []cli.Flag{arnFlag("earth observation job ARN")},
		Action:    r.Run,
		Meta:      m,
	}).Build()
}

// eojListAugmenter maps --status-equals (or _status) and the sort flags
// onto the request.
func eojListAugmenter(_ context.Context, cmd *cli.Command, in *geo.ListEarthObservationJobsInput) error {
	in.StatusEquals = types.EarthObservationJobStatus(flagOrFilter(cmd, "status-equals", "status"))
	in.SortBy = optString(cmd, "sort-by")
	in.SortOrder = types.SortOrder(upper(cmd.String("sort-order")))
	return nil
}

func listEarthObservationJobsCommand(m meta.Meta) *cli.Command {
	r := geoRunner("ListEarthObservationJobs", func(ctx context.Context, cmd *cli.Command, api aws.GeospatialAPI) ([]types.ListEarthObservationJobOutputConfig, error) {
		return PaginateWithOptions(ctx, cmd, &geo.ListEarthObservationJobsInput{},
			func(ctx context.Context, in *geo.ListEarthObservationJobsInput) ([]types.ListEarthObservationJobOutputConfig, *string, error) {
				out, err := api.ListEarthObservationJobs(ctx, in)
				if err != nil {
					return nil, nil, err
				}
				return out.EarthObservationJobSummaries, out.NextToken, nil
			}, eojListAugmenter)
	})
	r.SchemaType = reflect.TypeFor[types.ListEarthObservationJobOutputConfig]()
	r.DefaultAttrs = []string{"Arn", "Name", "Status", "OperationType:operation", "CreationTime:created"}

	return (&OperationCommandBuilder{
		Namespace: geoNS,
		Name:      "list-earth-observation-jobs",
		Usage:     "list earth observation jobs",
		Flags:     append(jobListFlags(), NewPagingFlags()...),
		Action:    r.Run,
		Meta:      m,
	}).Build()
}

// eojDocument reads --input and applies the flag overrides.
func eojDocument(cmd *cli.Command) (*geospatial.EarthObservationJob, error) {
	var job geospatial.EarthObservationJob
	if p := cmd.String("input"); p != "" {
		if err := geospatial.LoadDocument(p, &job); err != nil {
			return nil, err
		}
	}

	setString(&job.Name, cmd, "name")
	setString(&job.ExecutionRoleArn, cmd, "execution-role-arn")
	setString(&job.KmsKeyID, cmd, "kms-key-id")
	setString(&job.ClientToken, cmd, "client-token")
	setString(&job.Input.PreviousJobArn, cmd, "previous-job-arn")
	job.Tags = mergeTags(job.Tags, cmd)

	if cmd.IsSet("collection-arn") || cmd.IsSet("start") || cmd.IsSet("end") {
		if job.Input.Query == nil {
			job.Input.Query = &geospatial.Query{}
		}
		q := job.Input.Query
		setString(&q.CollectionArn, cmd, "collection-arn")
		if cmd.IsSet("start") || cmd.IsSet("end") {
			if q.TimeRange == nil {
				q.TimeRange = &geospatial.TimeRange{}
			}
			setString(&q.TimeRange.Start, cmd, "start")
			setString(&q.TimeRange.End, cmd, "end")
		}
	}

	if kind := cmd.String("job-config"); kind != "" {
		if err := job.JobConfig.Select(kind); err != nil {
			return nil, err
		}
	}
	return &job, nil
}

// eojMissing names the required members absent from a built request.
func eojMissing(in *geo.StartEarthObservationJobInput) (missing []string) {
	if in.Name == nil {
		missing = append(missing, "name")
	}
	if in.ExecutionRoleArn == nil {
		missing = append(missing, "execution-role-arn")
	}
	if in.InputConfig == nil {
		missing = append(missing, "input")
	}
	if in.JobConfig == nil {
		missing = append(missing, "job-config")
	}
	return
}

func startEarthObservationJobCommand(m meta.Meta) *cli.Command {
	r := geoRunner("StartEarthObservationJob", func(ctx context.Context, cmd *cli.Command, api aws.GeospatialAPI) (*geo.StartEarthObservationJobOutput, error) {
		job, err := eojDocument(cmd)
		if err != nil {
			return nil, err
		}
		in, err := job.Request()
		if err != nil {
			return nil, err
		}
		WarnMissing(cmd, eojMissing(in))
		return api.StartEarthObservationJob(ctx, in)
	})
	r.DefaultAttrs = eojAttrs
	r.Emit = func(ctx context.Context, cmd *cli.Command, api aws.GeospatialAPI, out *geo.StartEarthObservationJobOutput) error {
		if !cmd.Bool("wait") {
			return Emit(cmd, out, BuildAttrs(cmd, eojAttrs...), "")
		}
		arn := awsString(out.Arn)
		got, err := geospatial.WaitForEarthObservationJob(ctx, api, arn, waitConfig(cmd), progress(cmd, "earth observation job "+arn))
		return emitWaited(cmd, got, err, eojAttrs)
	}

	return (&OperationCommandBuilder{
		Namespace: geoNS,
		Name:      "start-earth-observation-job",
		Usage:     "start an earth observation job",
		UsageText: "gsctl geo start-earth-observation-job --input job.yaml [--name NAME] [--job-config KIND] [--wait]",
		Flags: append([]cli.Flag{
			inputFlag("job document"),
			stringFlag("name", "job name"),
			stringFlag("execution-role-arn", "IAM role the service assumes"),
			stringFlag("kms-key-id", "KMS key encrypting the results"),
			stringFlag("previous-job-arn", "reuse the output of an earlier job as input"),
			stringFlag("collection-arn", "raster data collection to query"),
			stringFlag("start", "time range start, RFC 3339 or YYYY-MM-DD"),
			stringFlag("end", "time range end, RFC 3339 or YYYY-MM-DD"),
			&cli.StringFlag{
				Name:  "job-config",
				Usage: "operation to run, e.g. cloud-masking",
				Validator: func(value string) error {
					return FlagValidators(value, JobConfigValidator)
				},
			},
			clientTokenFlag(),
			tagsFlag(),
		}, NewWaitFlags(true)...),
		Action: r.Run,
		Meta:   m,
	}).Build()
}

func stopEarthObservationJobCommand(m meta.Meta) *cli.Command {
	r := geoRunner("StopEarthObservationJob", func(ctx context.Context, cmd *cli.Command, api aws.GeospatialAPI) (*geo.StopEarthObservationJobOutput, error) {
		return api.StopEarthObservationJob(ctx, &geo.StopEarthObservationJobInput{
			Arn: optString(cmd, "arn"),
		})
	})
	r.Required = []string{"arn"}
	r.Emit = emitNone

	return (&OperationCommandBuilder{
		Namespace: geoNS,
		Name:      "stop-earth-observation-job",
		Usage:     "stop a running earth observation job",
		Flags:     []cli.Flag{arnFlag("earth observation job ARN")},
		Action:    r.Run,
		Meta:      m,
	}).Build()
}

func waitEarthObservationJobCommand(m meta.Meta) *cli.Command {
	r := geoRunner("GetEarthObservationJob", func(ctx context.Context, cmd *cli.Command, api aws.GeospatialAPI) (*geo.GetEarthObservationJobOutput, error) {
		arn := cmd.String("arn")
		got, err := geospatial.WaitForEarthObservationJob(ctx, api, arn, waitConfig(cmd), progress(cmd, "earth observation job "+arn))
		if err != nil && got != nil {
			return nil, emitWaited(cmd, got, err, eojAttrs)
		}
		return got, err
	})
	r.Required = []string{"arn"}
	r.DefaultAttrs = eojAttrs

	return (&OperationCommandBuilder{
		Namespace: geoNS,
		Name:      "wait-earth-observation-job",
		Usage:     "wait until an earth observation job is COMPLETED",
		Flags:     append([]cli.Flag{arnFlag("earth observation job ARN")}, NewWaitFlags(false)...),
		Action:    r.Run,
		Meta:      m,
	}).Build()
}

// eojGet fetches one job description as JSON for diffing.
func eojGet(ctx context.Context, api aws.GeospatialAPI, arn string) (*geo.GetEarthObservationJobOutput, error) {
	return api.GetEarthObservationJob(ctx, &geo.GetEarthObservationJobInput{Arn: awsv2.String(arn)})
}
