// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package streams

import (
	"context"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	gls "github.com/aws/aws-sdk-go-v2/service/gameliftstreams"

	"github.com/tfctl/gsctl/internal/log"
	"github.com/tfctl/gsctl/internal/waiter"
)

// SessionGetter is the single call the session waiter needs.
type SessionGetter interface {
	GetStreamSession(context.Context, *gls.GetStreamSessionInput, ...func(*gls.Options)) (*gls.GetStreamSessionOutput, error)
}

// GroupGetter is the single call the stream group waiter needs.
type GroupGetter interface {
	GetStreamGroup(context.Context, *gls.GetStreamGroupInput, ...func(*gls.Options)) (*gls.GetStreamGroupOutput, error)
}

// ApplicationGetter is the single call the application waiter needs.
type ApplicationGetter interface {
	GetApplication(context.Context, *gls.GetApplicationInput, ...func(*gls.Options)) (*gls.GetApplicationOutput, error)
}

// Observer is told about every polled status, e.g. to print progress.
type Observer func(status string)

// WaitForSession polls GetStreamSession until the session is ready or
// failed. The last observed description is returned in both cases; a failed
// session also yields a *StatusError.
func WaitForSession(ctx context.Context, api SessionGetter, group, session string, cfg waiter.Config, observe Observer) (*gls.GetStreamSessionOutput, error) {
	var last *gls.GetStreamSessionOutput
	err := waiter.Until(ctx, cfg, func(ctx context.Context) (bool, error) {
		out, err := api.GetStreamSession(ctx, &gls.GetStreamSessionInput{
			Identifier:              awsv2.String(group),
			StreamSessionIdentifier: awsv2.String(session),
		})
		if err != nil {
			return false, err
		}
		last = out

		status := string(out.Status)
		log.Debugf("stream session %s status=%s", session, status)
		if observe != nil {
			observe(status)
		}

		switch SessionOutcome(status) {
		case Ready:
			return true, nil
		case Failed:
			return true, &StatusError{Kind: "stream session", ID: session, Status: status, Reason: string(out.StatusReason)}
		}
		return false, nil
	})
	return last, err
}

// WaitForGroup polls GetStreamGroup until the group is ready or failed.
func WaitForGroup(ctx context.Context, api GroupGetter, group string, cfg waiter.Config, observe Observer) (*gls.GetStreamGroupOutput, error) {
	var last *gls.GetStreamGroupOutput
	err := waiter.Until(ctx, cfg, func(ctx context.Context) (bool, error) {
		out, err := api.GetStreamGroup(ctx, &gls.GetStreamGroupInput{Identifier: awsv2.String(group)})
		if err != nil {
			return false, err
		}
		last = out

		status := string(out.Status)
		log.Debugf("stream group %s status=%s", group, status)
		if observe != nil {
			observe(status)
		}

		switch GroupOutcome(status) {
		case Ready:
			return true, nil
		case Failed:
			return true, &StatusError{Kind: "stream group", ID: group, Status: status}
		}
		return false, nil
	})
	return last, err
}

// WaitForApplication polls GetApplication until the application is ready
// or failed.
func WaitForApplication(ctx context.Context, api ApplicationGetter, app string, cfg waiter.Config, observe Observer) (*gls.GetApplicationOutput, error) {
	var last *gls.GetApplicationOutput
	err := waiter.Until(ctx, cfg, func(ctx context.Context) (bool, error) {
		out, err := api.GetApplication(ctx, &gls.GetApplicationInput{Identifier: awsv2.String(app)})
		if err != nil {
			return false, err
		}
		last = out

		status := string(out.Status)
		log.Debugf("application %s status=%s", app, status)
		if observe != nil {
			observe(status)
		}

		switch ApplicationOutcome(status) {
		case Ready:
			return true, nil
		case Failed:
			return true, &StatusError{Kind: "application", ID: app, Status: status}
		}
		return false, nil
	})
	return last, err
}
