// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws loads AWS SDK v2 configuration and constructs the GameLift
// Streams, SageMaker Geospatial and S3 clients used by gsctl commands. It
// also owns the translation of SDK and transport errors into messages that
// name the operation and endpoint that failed.
package aws
