// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/apex/log"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// DefaultFilter lists the top level keys that differ between any two jobs
// and say nothing about how they were configured.
var DefaultFilter = []string{"Arn", "CreationTime", "DurationInSeconds", "ResultMetadata"}

// Options controls a diff.
type Options struct {
	// Filter keys are removed from both documents before comparing.
	Filter []string
	Color  bool
}

// ParseFilter splits a --diff-filter value. An empty value yields
// DefaultFilter and "-" disables filtering.
func ParseFilter(spec string) []string {
	switch strings.TrimSpace(spec) {
	case "":
		return DefaultFilter
	case "-":
		return nil
	}
	var keys []string
	for key := range strings.SplitSeq(spec, ",") {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

// Diff writes the differences between two JSON objects to w and reports
// whether there were any.
func Diff(w io.Writer, left, right []byte, opts Options) (bool, error) {
	if len(left) == 0 || len(right) == 0 {
		return false, errors.New("nothing to compare: a document is empty")
	}

	l, err := prune(left, opts.Filter)
	if err != nil {
		return false, fmt.Errorf("failed to read left document: %w", err)
	}
	r, err := prune(right, opts.Filter)
	if err != nil {
		return false, fmt.Errorf("failed to read right document: %w", err)
	}

	delta := gojsondiff.New().CompareObjects(l, r)
	if !delta.Modified() {
		fmt.Fprintln(w, "The documents are identical.")
		return false, nil
	}
	log.Debugf("diff: %d top level deltas", len(delta.Deltas()))

	f := formatter.NewAsciiFormatter(l, formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       opts.Color,
	})
	out, err := f.Format(delta)
	if err != nil {
		return true, fmt.Errorf("failed to format diff: %w", err)
	}
	fmt.Fprint(w, out)
	return true, nil
}

func prune(doc []byte, keys []string) (map[string]interface{}, error) {
	var m map[string]interface{}
	if err := json.Unmarshal(doc, &m); err != nil {
		return nil, err
	}
	for _, k := range keys {
		delete(m, k)
	}
	return m, nil
}
