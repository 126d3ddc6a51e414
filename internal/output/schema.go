// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"time"
)

// maxSchemaDepth limits how far nested structures are expanded.
const maxSchemaDepth = 2

// skipFields are exported SDK fields that never carry resource data.
var skipFields = map[string]bool{
	"ResultMetadata": true,
}

var timeType = reflect.TypeOf(time.Time{})

// DumpSchema writes the sorted attribute paths of typ, as usable with
// --attrs and --filter, to w. If w is nil, os.Stdout is used.
func DumpSchema(typ reflect.Type, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	fmt.Fprintln(w, `Attributes available to the --attrs and --filter flags. Nested paths are
dotted; a path through a list selects that key from every element. For the
complete response use --output=raw.`)
	fmt.Fprintln(w, "")

	paths := SchemaPaths(typ)
	sort.Strings(paths)
	for _, p := range paths {
		fmt.Fprintln(w, p)
	}
}

// SchemaPaths lists the JSON paths of an SDK shape's exported fields.
func SchemaPaths(typ reflect.Type) []string {
	return schemaWalker("", deref(typ), 0)
}

func schemaWalker(holder string, typ reflect.Type, depth int) []string {
	if typ.Kind() != reflect.Struct {
		return nil
	}

	var paths []string
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() || field.Anonymous || skipFields[field.Name] {
			continue
		}

		name := field.Name
		if holder != "" {
			name = holder + "." + field.Name
		}
		paths = append(paths, name)

		if depth >= maxSchemaDepth {
			continue
		}

		ft := deref(field.Type)
		if ft.Kind() == reflect.Slice {
			ft = deref(ft.Elem())
		}
		if ft.Kind() == reflect.Struct && ft != timeType {
			paths = append(paths, schemaWalker(name, ft, depth+1)...)
		}
	}
	return paths
}

func deref(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
