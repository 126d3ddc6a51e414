// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"

	"github.com/tfctl/gsctl/internal/attrs"
	"github.com/tfctl/gsctl/internal/driller"
)

// filterRegex splits an expression into an optional server-side marker, a
// key, an optional (possibly negated) operator and a target.
var filterRegex = regexp.MustCompile(`^(_)?([^!=^~<>@/]*)(!?[=^~<>@/])?(.*)$`)

// Filter is a single parsed --filter expression.
type Filter struct {
	Key        string `yaml:"key" json:"Key"`
	Negate     bool   `yaml:"negate" json:"Negate"`
	Operand    string `yaml:"operand" json:"Operand"`
	ServerSide bool   `yaml:"serverSide" json:"ServerSide"`
	Value      string `yaml:"value" json:"Value"`
}

// BuildFilters parses a filter spec. Malformed entries are logged and
// skipped. The delimiter defaults to "," and can be changed with
// GSCTL_FILTER_DELIM for values that contain commas.
func BuildFilters(spec string) []Filter {
	if spec == "" {
		return nil
	}

	delim := ","
	if d, ok := os.LookupEnv("GSCTL_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	var filters []Filter
	for _, entry := range strings.Split(spec, delim) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := filterRegex.FindStringSubmatch(entry)
		key := ""
		if parts != nil {
			key = strings.TrimSpace(parts[2])
		}
		if key == "" {
			log.Errorf("invalid filter: %s", entry)
			continue
		}

		operand, negate := parts[3], false
		if rest, ok := strings.CutPrefix(operand, "!"); ok {
			operand, negate = rest, true
		}

		filters = append(filters, Filter{
			Key:        key,
			ServerSide: parts[1] == "_",
			Negate:     negate,
			Operand:    operand,
			Value:      parts[4],
		})
	}
	return filters
}

// ServerSide returns the _key=value filters of spec keyed by lower case key.
// List commands map these onto request fields, e.g. _status=ACTIVE.
func ServerSide(spec string) map[string]string {
	out := map[string]string{}
	for _, f := range BuildFilters(spec) {
		if !f.ServerSide {
			continue
		}
		if f.Operand != "=" || f.Negate {
			log.Warnf("server-side filter _%s only supports =, ignoring", f.Key)
			continue
		}
		out[strings.ToLower(f.Key)] = f.Value
	}
	return out
}

// FilterDataset keeps the candidates matching every client-side filter and
// projects each onto attrs. Transforms are left to the output stage.
func FilterDataset(candidates gjson.Result, al attrs.AttrList, spec string) []map[string]interface{} {
	filters := BuildFilters(spec)

	var rows []map[string]interface{}
	for _, candidate := range candidates.Array() {
		if !applyFilters(candidate, al, filters) {
			continue
		}

		row := make(map[string]interface{}, len(al))
		for _, attr := range al {
			row[attr.OutputKey] = driller.Driller(candidate.Raw, attr.Key).Value()
		}
		rows = append(rows, row)
	}
	return rows
}

// applyFilters reports whether candidate passes all client-side filters.
func applyFilters(candidate gjson.Result, al attrs.AttrList, filters []Filter) bool {
	for _, filter := range filters {
		if filter.ServerSide {
			continue
		}

		value := driller.Driller(candidate.Raw, resolveKey(al, filter.Key)).Value()
		if value == nil {
			return false
		}
		if !filter.Match(value) {
			return false
		}
	}
	return true
}

// resolveKey maps a filter key onto the path of the attr with that output
// key. Keys naming no attr are used as paths directly, so a response field
// can be filtered on without being displayed.
func resolveKey(al attrs.AttrList, key string) string {
	for _, attr := range al {
		if attr.OutputKey == key {
			return attr.Key
		}
	}
	log.Debugf("filter key %s is not an attr, using it as a path", key)
	return key
}

// Match tests a decoded JSON value against the filter.
func (f Filter) Match(value interface{}) bool {
	switch v := value.(type) {
	case string:
		return checkStringOperand(v, f)
	case bool:
		return checkStringOperand(strconv.FormatBool(v), f)
	}
	if num, ok := toFloat64(value); ok {
		return checkNumericOperand(num, f)
	}
	if f.Operand == "@" {
		return checkContainsOperand(value, f)
	}
	log.Errorf("unsupported value %T for filter %s%s", value, f.Key, f.Operand)
	return false
}

// checkContainsOperand tests membership in an array or a map's keys.
func checkContainsOperand(value interface{}, filter Filter) bool {
	var found bool
	switch val := value.(type) {
	case []any:
		for _, item := range val {
			if fmt.Sprint(item) == filter.Value {
				found = true
				break
			}
		}
	case map[string]any:
		_, found = val[filter.Value]
	default:
		log.Errorf("unsupported type for contains filtering: %T", value)
		return false
	}
	return found != filter.Negate
}

// checkNumericOperand supports =, > and <.
func checkNumericOperand(value float64, filter Filter) bool {
	target, err := strconv.ParseFloat(strings.TrimSpace(filter.Value), 64)
	if err != nil {
		log.Errorf("invalid numeric value: %s", filter.Value)
		return false
	}

	var result bool
	switch filter.Operand {
	case "=":
		result = value == target
	case ">":
		result = value > target
	case "<":
		result = value < target
	default:
		log.Errorf("unsupported numeric operand: %s", filter.Operand)
		return false
	}
	return result != filter.Negate
}

// checkStringOperand supports = (equal), ~ (equal ignoring case), ^
// (prefix), < and > (lexical), @ (substring) and / (regex).
func checkStringOperand(value string, filter Filter) bool {
	var result bool
	switch filter.Operand {
	case "=":
		result = value == filter.Value
	case "~":
		result = strings.EqualFold(value, filter.Value)
	case "^":
		result = strings.HasPrefix(value, filter.Value)
	case ">":
		result = value > filter.Value
	case "<":
		result = value < filter.Value
	case "@":
		result = strings.Contains(value, filter.Value)
	case "/":
		re, err := regexp.Compile(filter.Value)
		if err != nil {
			log.Errorf("invalid regex: %s", filter.Value)
			return false
		}
		result = re.MatchString(value)
	case "":
		// A bare key only asks for presence, which the caller checked.
		return !filter.Negate
	default:
		log.Errorf("unsupported filtering operand: %s", filter.Operand)
		return false
	}
	return result != filter.Negate
}

// toFloat64 normalizes numeric kinds to float64.
func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
