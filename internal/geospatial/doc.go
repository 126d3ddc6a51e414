// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package geospatial maps SageMaker Geospatial job and query documents onto
// SDK request shapes.
//
// The request shapes are deeply nested and mostly optional. Every builder in
// this package follows the same rule: a nested structure none of whose
// fields are set is returned as nil, so the request only carries what the
// caller actually asked for. Union shapes (area of interest, job config,
// data source config) are selected by which document member is present, and
// selecting more than one member is an error raised before any request is
// sent.
//
// Documents are YAML (and therefore also JSON) and are read with LoadDocument.
package geospatial
