// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/gsctl/internal/attrs"
	"github.com/tfctl/gsctl/internal/meta"
	"github.com/tfctl/gsctl/internal/output"
)

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList) {
	//nolint:errcheck
	{
		for _, d := range defaults {
			al.Set(d)
		}
		if extras := cmd.String("attrs"); extras != "" {
			al.Set(extras)
		}
		al.SetGlobalTransformSpec()
	}
	return
}

// DumpSchemaIfRequested lists the attribute paths of t when --schema is set,
// and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, t reflect.Type) bool {
	if t != nil && cmd.Bool("schema") {
		output.DumpSchema(t, outWriter(cmd))
		return true
	}
	return false
}

// Emit JSON encodes an SDK response and passes it to the common output
// routine. parent selects the result list inside the response.
func Emit(cmd *cli.Command, v any, al attrs.AttrList, parent string) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	return EmitJSON(cmd, raw, al, parent)
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// AWSSettingsFrom reads the connection flags.
func AWSSettingsFrom(cmd *cli.Command) meta.AWSSettings {
	return meta.AWSSettings{
		Profile:     cmd.String("profile"),
		Region:      cmd.String("region"),
		Endpoint:    cmd.String("endpoint-url"),
		MaxAttempts: cmd.Int("max-attempts"),
	}
}

// MissingFlags returns the names that were given no value. A flag with a
// non-zero default counts as given.
func MissingFlags(cmd *cli.Command, names ...string) (missing []string) {
	for _, n := range names {
		if cmd.IsSet(n) {
			continue
		}
		if v := cmd.Value(n); v != nil && !reflect.ValueOf(v).IsZero() {
			continue
		}
		missing = append(missing, n)
	}
	return
}

// WarnMissing reports required parameters that have no value. The request
// is still sent and the service has the final word.
func WarnMissing(cmd *cli.Command, missing []string) {
	if len(missing) == 0 {
		return
	}
	list := "--" + strings.Join(missing, ", --")
	log.Warnf("%s: required parameters not set: %s", cmd.Name, list)
	fmt.Fprintf(errWriter(cmd), "warning: required parameters not set: %s\n", list)
}

// PaginateWithOptions[T, O] drives a NextToken API with mutable options. The
// augmenter (if provided) is called before each page. fetcher performs the
// call and returns the page and the next token. Paging stops on an empty
// token, on a token already seen, or once --max-items results are held.
// --page-size is copied into the MaxResults field of options, if any.
func PaginateWithOptions[T, O any](
	ctx context.Context,
	cmd *cli.Command,
	options *O,
	fetcher func(context.Context, *O) ([]T, *string, error),
	augmenter Augmenter[O],
) ([]T, error) {
	var results []T

	if n := cmd.Int("page-size"); n > 0 {
		setMaxResults(options, int32(n))
	}
	maxItems := cmd.Int("max-items")
	seen := map[string]bool{}

	for {
		if augmenter != nil {
			if err := augmenter(ctx, cmd, options); err != nil {
				return nil, err
			}
		}

		items, next, err := fetcher(ctx, options)
		if err != nil {
			return nil, err
		}
		results = append(results, items...)

		if maxItems > 0 && len(results) >= maxItems {
			results = results[:maxItems]
			break
		}

		token := awsv2.ToString(next)
		if token == "" {
			break
		}
		if seen[token] {
			log.Warnf("%s: service repeated page token %q, stopping", cmd.Name, token)
			break
		}
		seen[token] = true
		setNextToken(options, token)
	}

	log.Debugf("%s: collected %d results", cmd.Name, len(results))
	return results, nil
}

// setNextToken sets the NextToken field of an SDK input struct.
func setNextToken(options any, token string) {
	f := reflect.ValueOf(options).Elem().FieldByName("NextToken")
	if f.IsValid() && f.CanSet() {
		f.Set(reflect.ValueOf(awsv2.String(token)))
	}
}

// setMaxResults sets the MaxResults field of an SDK input struct.
func setMaxResults(options any, n int32) {
	f := reflect.ValueOf(options).Elem().FieldByName("MaxResults")
	if f.IsValid() && f.CanSet() {
		f.Set(reflect.ValueOf(awsv2.Int32(n)))
	}
}

func outWriter(cmd *cli.Command) io.Writer {
	if r := cmd.Root(); r != nil && r.Writer != nil {
		return r.Writer
	}
	return os.Stdout
}

func errWriter(cmd *cli.Command) io.Writer {
	if r := cmd.Root(); r != nil && r.ErrWriter != nil {
		return r.ErrWriter
	}
	return os.Stderr
}

// optString returns nil for "" so unset flags leave request fields nil.
func optString(cmd *cli.Command, name string) *string {
	if s := cmd.String(name); s != "" {
		return awsv2.String(s)
	}
	return nil
}

func optInt32(cmd *cli.Command, name string) *int32 {
	if cmd.IsSet(name) {
		return awsv2.Int32(int32(cmd.Int(name)))
	}
	return nil
}

func optBool(cmd *cli.Command, name string) *bool {
	if cmd.IsSet(name) {
		return awsv2.Bool(cmd.Bool(name))
	}
	return nil
}

func optSlice(cmd *cli.Command, name string) []string {
	if v := cmd.StringSlice(name); len(v) > 0 {
		return v
	}
	return nil
}

func optMap(cmd *cli.Command, name string) map[string]string {
	if v := cmd.StringMap(name); len(v) > 0 {
		return v
	}
	return nil
}

// emitWaited shows the last description seen by a waiter, even when the
// wait failed, and then returns the wait error.
func emitWaited[O any](cmd *cli.Command, out *O, err error, defaults []string) error {
	if out != nil {
		if emitErr := Emit(cmd, out, BuildAttrs(cmd, defaults...), ""); emitErr != nil {
			return emitErr
		}
	}
	return err
}

func awsString(s *string) string { return awsv2.ToString(s) }

func upper(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

// EmitJSON passes an encoded response to the common output routine.
func EmitJSON(cmd *cli.Command, raw []byte, al attrs.AttrList, parent string) error {
	return output.SliceDiceSpit(raw, al, output.OptionsFrom(cmd), parent, outWriter(cmd), nil)
}
