// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package attrs

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tfctl/gsctl/internal/log"
)

// Attr is one output column. Key is a dotted path into an SDK response item
// as JSON encoded, e.g. "Arn" or "DefaultApplication.Id".
type Attr struct {
	Key string `yaml:"key" json:"Key"`
	// Include is false for attrs only wanted for filtering or sorting.
	Include bool `yaml:"include" json:"Include"`
	// OutputKey is the result key and the text column title.
	OutputKey     string `yaml:"outputKey" json:"OutputKey"`
	TransformSpec string `yaml:"transformSpec" json:"TransformSpec"`
}

var lengthRe = regexp.MustCompile(`-?\d+`)

// Transform applies the transform spec to a string value. Other values are
// returned as is. Spec letters: t local time, T time ago, l/L lower, u/U
// upper, and a number N truncating to N runes (-N elides the middle). When
// a global spec is prepended, the rightmost case and length win.
func (a *Attr) Transform(value interface{}) interface{} {
	s, ok := value.(string)
	if !ok || a.TransformSpec == "" {
		return value
	}

	s = transformTime(s, a.TransformSpec)
	s = transformCase(s, a.TransformSpec)
	s = transformLength(s, a.TransformSpec)

	log.Tracef("transform %s: spec=%s result=%s", a.Key, a.TransformSpec, s)
	return s
}

func transformTime(s, spec string) string {
	if !strings.ContainsAny(spec, "tT") {
		return s
	}
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return s
	}
	if strings.Contains(spec, "T") {
		return humanize.Time(ts)
	}
	return ts.In(time.Local).Format("2006-01-02T15:04:05MST")
}

func transformCase(s, spec string) string {
	lastL := strings.LastIndexAny(spec, "lL")
	lastU := strings.LastIndexAny(spec, "uU")
	switch {
	case lastL > lastU:
		return strings.ToLower(s)
	case lastU > lastL:
		return strings.ToUpper(s)
	}
	return s
}

func transformLength(s, spec string) string {
	match := lengthRe.FindAllString(spec, -1)
	if len(match) == 0 {
		return s
	}
	n, _ := strconv.Atoi(match[len(match)-1])

	runes := []rune(s)
	abs := n
	if abs < 0 {
		abs = -abs
	}
	if len(runes) <= abs {
		return s
	}
	if n >= 0 {
		return string(runes[:n])
	}

	keep := abs/2 - 1
	if keep < 1 {
		return string(runes[:abs])
	}
	return string(runes[:keep]) + ".." + string(runes[len(runes)-keep:])
}

// AttrList is a collection of Attr used to shape output fields.
type AttrList []Attr

// Set parses a comma-separated --attrs value into the list. Each spec is
// key[:outputKey[:transform]]. A leading ! keeps the attr for filtering and
// sorting but hides it. The key * carries a transform applied to every attr.
// A spec naming an attr already in the list updates that attr in place.
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		return nil
	}

	for _, spec := range strings.Split(value, ",") {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}

		attr, err := parse(spec)
		if err != nil {
			return err
		}

		if i := a.index(attr.Key); i >= 0 {
			(*a)[i].Include = attr.Include
			(*a)[i].OutputKey = attr.OutputKey
			(*a)[i].TransformSpec = attr.TransformSpec
			continue
		}
		*a = append(*a, attr)
	}

	log.Debugf("attrs set: %s", a.String())
	return nil
}

func parse(spec string) (Attr, error) {
	fields := strings.Split(spec, ":")
	if len(fields) > 3 {
		return Attr{}, fmt.Errorf("invalid attr spec %q: want key[:outputKey[:transform]]", spec)
	}

	attr := Attr{Include: true, Key: strings.TrimSpace(fields[0])}
	if rest, ok := strings.CutPrefix(attr.Key, "!"); ok {
		attr.Include = false
		attr.Key = rest
	}
	// A leading . addressed the document root in older specs.
	attr.Key = strings.TrimPrefix(attr.Key, ".")
	if attr.Key == "" {
		return Attr{}, fmt.Errorf("invalid attr spec %q: empty key", spec)
	}
	if attr.Key == "*" {
		attr.Include = false
	}

	segments := strings.Split(attr.Key, ".")
	attr.OutputKey = segments[len(segments)-1]
	if len(fields) > 1 && strings.TrimSpace(fields[1]) != "" {
		attr.OutputKey = strings.TrimSpace(fields[1])
	}
	if len(fields) > 2 {
		attr.TransformSpec = strings.TrimSpace(fields[2])
	}
	return attr, nil
}

// index finds an attr by key or output key, -1 when absent.
func (a *AttrList) index(key string) int {
	for i := range *a {
		if (*a)[i].Key == key || (*a)[i].OutputKey == key {
			return i
		}
	}
	return -1
}

// SetGlobalTransformSpec prepends the * attr's transform to every attr.
func (a *AttrList) SetGlobalTransformSpec() error {
	i := a.index("*")
	if i < 0 || (*a)[i].TransformSpec == "" {
		return nil
	}

	spec := (*a)[i].TransformSpec
	for j := range *a {
		(*a)[j].TransformSpec = spec + "," + (*a)[j].TransformSpec
	}
	return nil
}

// Visible returns the attrs that are rendered, in order.
func (a AttrList) Visible() AttrList {
	var out AttrList
	for _, attr := range a {
		if attr.Include {
			out = append(out, attr)
		}
	}
	return out
}

// String renders the list back in --attrs form.
func (a *AttrList) String() string {
	parts := make([]string, 0, len(*a))
	for _, attr := range *a {
		parts = append(parts, fmt.Sprintf("%s:%s:%s", attr.Key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(parts, ",")
}

// Type returns the flag type for use with the flag.Value interface.
func (a *AttrList) Type() string { return "list" }
