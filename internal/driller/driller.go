// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// segmentRe matches one path segment: a key with an optional [n] or [*].
var segmentRe = regexp.MustCompile(`^([a-zA-Z0-9_-]+)(?:\[(\d+|\*)?\])?$`)

// Driller resolves a dotted path against a JSON document.
//
// A segment addressing an array yields element n for key[n], the whole array
// for key[*] or key[], and for a bare key the single element of a
// one-element array or else the whole array. A segment applied to an array
// of objects collects that key from every element, so
// "LocationStates.LocationName" lists all location names.
func Driller(jsonData string, path string) gjson.Result {
	current := gjson.Parse(jsonData)
	if path == "" {
		return current
	}

	for _, segment := range strings.Split(path, ".") {
		m := segmentRe.FindStringSubmatch(segment)
		if m == nil {
			return gjson.Result{}
		}
		key, index := m[1], m[2]

		var val gjson.Result
		if current.IsArray() {
			val = gjson.Parse(current.Get("#." + key).Raw)
		} else {
			val = current.Get(key)
		}

		if val.IsArray() {
			arr := val.Array()
			switch {
			case index == "*":
			case index != "":
				i, err := strconv.Atoi(index)
				if err != nil || i >= len(arr) {
					return gjson.Result{}
				}
				val = arr[i]
			case len(arr) == 1 && !strings.HasSuffix(segment, "[]"):
				val = arr[0]
			}
		}

		current = val
	}

	return current
}
