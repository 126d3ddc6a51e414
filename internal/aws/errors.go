// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"errors"
	"fmt"
	"net"

	"github.com/aws/smithy-go"
)

// ErrorContext carries input context for improving API error messages.
type ErrorContext struct {
	Service   string // e.g. "gameliftstreams"
	Operation string // e.g. "StartStreamSession"
	Region    string
	Endpoint  string // explicit --endpoint-url, if any
}

// EndpointError reports that the service endpoint could not be reached at
// all, as opposed to the service rejecting the request.
type EndpointError struct {
	Context ErrorContext
	Err     error
}

func (e *EndpointError) Error() string {
	where := "region " + nonEmpty(e.Context.Region, "<unset>")
	if e.Context.Endpoint != "" {
		where = "endpoint " + e.Context.Endpoint
	}
	return fmt.Sprintf("%s: could not reach the %s service in %s (check --region, --endpoint-url and network access): %v",
		nonEmpty(e.Context.Operation, "request"), nonEmpty(e.Context.Service, "AWS"), where, e.Err)
}

func (e *EndpointError) Unwrap() error { return e.Err }

// Friendly rewraps name-resolution and connection failures with a message
// naming the operation and endpoint. Service API errors already carry the
// operation name from the SDK and, like any other error, are returned
// unchanged. The original error stays reachable via errors.Is/As.
func Friendly(err error, ctx ErrorContext) error {
	if err == nil {
		return nil
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &EndpointError{Context: ctx, Err: err}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return &EndpointError{Context: ctx, Err: err}
	}

	return err
}

// ErrorCode returns the service error code carried by err, or "". Waiters
// use it to tell a vanished resource from a transient failure.
func ErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
