// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package streams

import "fmt"

// Outcome classifies a resource status for waiting purposes.
type Outcome int

const (
	// Pending means keep polling.
	Pending Outcome = iota
	// Ready means the resource reached a usable state.
	Ready
	// Failed means the resource will not become usable.
	Failed
)

// sessionOutcomes covers stream session states. A session that a client has
// already connected to, or is reconnecting to, is past ACTIVE and counts as
// ready.
var sessionOutcomes = map[string]Outcome{
	"ACTIVATING":                  Pending,
	"ACTIVE":                      Ready,
	"CONNECTED":                   Ready,
	"PENDING_CLIENT_RECONNECTION": Ready,
	"RECONNECTING":                Ready,
	"TERMINATING":                 Failed,
	"TERMINATED":                  Failed,
	"ERROR":                       Failed,
}

var groupOutcomes = map[string]Outcome{
	"ACTIVATING":         Pending,
	"UPDATING_LOCATIONS": Pending,
	"ACTIVE":             Ready,
	"ACTIVE_WITH_ERRORS": Ready,
	"ERROR":              Failed,
	"DELETING":           Failed,
	"EXPIRED":            Failed,
}

var applicationOutcomes = map[string]Outcome{
	"INITIALIZED": Pending,
	"PROCESSING":  Pending,
	"READY":       Ready,
	"ERROR":       Failed,
	"DELETING":    Failed,
}

// SessionOutcome classifies a stream session status. Unknown statuses keep
// the waiter polling.
func SessionOutcome(status string) Outcome { return sessionOutcomes[status] }

// GroupOutcome classifies a stream group status.
func GroupOutcome(status string) Outcome { return groupOutcomes[status] }

// ApplicationOutcome classifies an application status.
func ApplicationOutcome(status string) Outcome { return applicationOutcomes[status] }

// StatusError reports that a resource settled in a failed state.
type StatusError struct {
	Kind   string // "stream session", "stream group", "application"
	ID     string
	Status string
	Reason string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s is %s", e.Kind, e.ID, e.Status)
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}
