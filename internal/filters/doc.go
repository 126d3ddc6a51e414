// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters applies --filter expressions to list results.
//
// An expression is key, operator and target, e.g. "Status=ACTIVE". Several
// expressions are joined with a comma (or GSCTL_FILTER_DELIM) and must all
// match. Operators:
//
//   - = : equal
//   - ~ : equal ignoring case
//   - ^ : prefix
//   - < and > : lexical or numeric comparison
//   - @ : substring, or membership for arrays and maps
//   - / : regular expression
//
// Any operator may be negated with a leading !, e.g. "Status!=ERROR". A key
// with no operator only requires the value to be present.
//
// Keys are matched against the output key of an attr (see package attrs)
// and otherwise taken as a path into the response item.
//
// Keys prefixed with an underscore are server-side filters. They are skipped
// here and handed to the list command through ServerSide, which maps them
// onto request fields such as StatusEquals.
package filters
