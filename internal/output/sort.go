// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"sort"
	"strings"
)

type sortKey struct {
	field         string
	descending    bool
	caseSensitive bool
}

// parseSortSpec reads "key,-key,!key": - sorts descending, ! compares
// strings case sensitively.
func parseSortSpec(spec string) []sortKey {
	var keys []sortKey
	for _, field := range strings.Split(spec, ",") {
		field = strings.TrimSpace(field)
		var k sortKey
		for len(field) > 0 && (field[0] == '-' || field[0] == '!') {
			if field[0] == '-' {
				k.descending = true
			} else {
				k.caseSensitive = true
			}
			field = field[1:]
		}
		if field == "" {
			continue
		}
		k.field = field
		keys = append(keys, k)
	}
	return keys
}

// SortDataset stable-sorts rows by the output keys in spec. Numbers compare
// numerically, everything else as text.
func SortDataset(rows []map[string]interface{}, spec string) {
	keys := parseSortSpec(spec)
	if len(keys) == 0 {
		return
	}

	sort.SliceStable(rows, func(i, j int) bool {
		for _, k := range keys {
			if c := compare(rows[i][k.field], rows[j][k.field], k.caseSensitive); c != 0 {
				if k.descending {
					return c > 0
				}
				return c < 0
			}
		}
		return false
	})
}

func compare(a, b interface{}, caseSensitive bool) int {
	an, aok := a.(float64)
	bn, bok := b.(float64)
	if aok && bok {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		}
		return 0
	}

	as, bs := InterfaceToString(a), InterfaceToString(b)
	if !caseSensitive {
		as, bs = strings.ToLower(as), strings.ToLower(bs)
	}
	return strings.Compare(as, bs)
}
