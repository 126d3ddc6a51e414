// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package geospatial

import (
	"context"
	"fmt"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	geo "github.com/aws/aws-sdk-go-v2/service/sagemakergeospatial"

	"github.com/tfctl/gsctl/internal/aws"
	"github.com/tfctl/gsctl/internal/log"
	"github.com/tfctl/gsctl/internal/waiter"
)

// Job statuses shared by earth observation and vector enrichment jobs.
const (
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
	StatusStopped   = "STOPPED"
	StatusDeleted   = "DELETED"
)

// Terminal reports whether a job in status will not change again.
func Terminal(status string) bool {
	switch status {
	case StatusCompleted, StatusFailed, StatusStopped, StatusDeleted:
		return true
	}
	return false
}

// JobError reports a job that settled in a status other than COMPLETED.
type JobError struct {
	Kind    string // "earth observation job" or "vector enrichment job"
	Arn     string
	Status  string
	Type    string
	Message string
}

func (e *JobError) Error() string {
	msg := fmt.Sprintf("%s %s is %s", e.Kind, e.Arn, e.Status)
	if e.Type != "" || e.Message != "" {
		msg += fmt.Sprintf(" (%s: %s)", e.Type, e.Message)
	}
	return msg
}

type EOJGetter interface {
	GetEarthObservationJob(context.Context, *geo.GetEarthObservationJobInput, ...func(*geo.Options)) (*geo.GetEarthObservationJobOutput, error)
}

type VEJGetter interface {
	GetVectorEnrichmentJob(context.Context, *geo.GetVectorEnrichmentJobInput, ...func(*geo.Options)) (*geo.GetVectorEnrichmentJobOutput, error)
}

// notFound is the code a job that has finished deleting answers with.
const notFound = "ResourceNotFoundException"

// WaitForEarthObservationJob polls until the job is terminal. A vanished job
// is reported as DELETED. Anything but COMPLETED yields a *JobError.
func WaitForEarthObservationJob(ctx context.Context, api EOJGetter, arn string, cfg waiter.Config, observe func(string)) (*geo.GetEarthObservationJobOutput, error) {
	var last *geo.GetEarthObservationJobOutput
	err := waiter.Until(ctx, cfg, func(ctx context.Context) (bool, error) {
		out, err := api.GetEarthObservationJob(ctx, &geo.GetEarthObservationJobInput{Arn: awsv2.String(arn)})
		if err != nil {
			if aws.ErrorCode(err) == notFound {
				return true, &JobError{Kind: "earth observation job", Arn: arn, Status: StatusDeleted}
			}
			return false, err
		}
		last = out

		status := string(out.Status)
		log.Debugf("earth observation job %s status=%s", arn, status)
		if observe != nil {
			observe(status)
		}
		if !Terminal(status) {
			return false, nil
		}
		if status == StatusCompleted {
			return true, nil
		}

		je := &JobError{Kind: "earth observation job", Arn: arn, Status: status}
		if d := out.ErrorDetails; d != nil {
			je.Type = string(d.Type)
			je.Message = awsv2.ToString(d.Message)
		}
		return true, je
	})
	return last, err
}

// WaitForVectorEnrichmentJob is WaitForEarthObservationJob for vector
// enrichment jobs.
func WaitForVectorEnrichmentJob(ctx context.Context, api VEJGetter, arn string, cfg waiter.Config, observe func(string)) (*geo.GetVectorEnrichmentJobOutput, error) {
	var last *geo.GetVectorEnrichmentJobOutput
	err := waiter.Until(ctx, cfg, func(ctx context.Context) (bool, error) {
		out, err := api.GetVectorEnrichmentJob(ctx, &geo.GetVectorEnrichmentJobInput{Arn: awsv2.String(arn)})
		if err != nil {
			if aws.ErrorCode(err) == notFound {
				return true, &JobError{Kind: "vector enrichment job", Arn: arn, Status: StatusDeleted}
			}
			return false, err
		}
		last = out

		status := string(out.Status)
		log.Debugf("vector enrichment job %s status=%s", arn, status)
		if observe != nil {
			observe(status)
		}
		if !Terminal(status) {
			return false, nil
		}
		if status == StatusCompleted {
			return true, nil
		}

		je := &JobError{Kind: "vector enrichment job", Arn: arn, Status: status}
		if d := out.ErrorDetails; d != nil {
			je.Type = string(d.ErrorType)
			je.Message = awsv2.ToString(d.ErrorMessage)
		}
		return true, je
	})
	return last, err
}
