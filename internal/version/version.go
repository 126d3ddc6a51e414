// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Do not import any other gsctl packages to avoid import cycles.

package version

import "runtime/debug"

// Version is the module version stamped by the Go toolchain, or "dev".
var Version = func() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}()

// AppID is sent to AWS as the SDK application id so service-side request
// logs can attribute calls to gsctl.
func AppID() string {
	return "gsctl/" + Version
}
