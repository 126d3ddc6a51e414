// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
)

var traceEnabled bool

// levelNames maps GSCTL_LOG values onto apex levels. trace is carried as
// debug and marked per entry by Tracef.
var levelNames = map[string]log.Level{
	"trace": log.DebugLevel,
	"debug": log.DebugLevel,
	"info":  log.InfoLevel,
	"warn":  log.WarnLevel,
	"error": log.ErrorLevel,
	"fatal": log.FatalLevel,
}

// InitLogger sets up Apex with the gsctl handler and a log level from the
// GSCTL_LOG env variable. Unknown values fall back to error.
func InitLogger() {
	InitLoggerTo(os.Stderr, os.Getenv("GSCTL_LOG"))
}

// InitLoggerTo is InitLogger with an explicit sink and level name.
func InitLoggerTo(w io.Writer, level string) {
	level = strings.ToLower(strings.TrimSpace(level))
	apexLevel, ok := levelNames[level]
	if !ok {
		apexLevel = log.ErrorLevel
	}
	traceEnabled = level == "trace"
	log.SetHandler(&Handler{Writer: w})
	log.SetLevel(apexLevel)
}

// Handler writes one line per entry: timestamp, single-letter level,
// message and any fields in key=value form.
type Handler struct {
	Writer io.Writer
}

// HandleLog implements the log.Handler interface.
func (h *Handler) HandleLog(e *log.Entry) error {
	w := h.Writer
	if w == nil {
		w = os.Stderr
	}

	message := e.Message
	level := levelLetter(e.Level)
	if rest, ok := strings.CutPrefix(message, "TRACE: "); ok {
		level = "T"
		message = rest
	}

	var fields []string
	for _, name := range e.Fields.Names() {
		fields = append(fields, fmt.Sprintf("%s=%v", name, e.Fields.Get(name)))
	}
	if len(fields) > 0 {
		message += " " + strings.Join(fields, " ")
	}

	_, err := fmt.Fprintf(w, "%s %s %s\n", time.Now().Format("2006-01-02 15:04:05"), level, message)
	return err
}

func levelLetter(l log.Level) string {
	switch l {
	case log.DebugLevel:
		return "D"
	case log.InfoLevel:
		return "I"
	case log.WarnLevel:
		return "W"
	case log.ErrorLevel:
		return "E"
	case log.FatalLevel:
		return "F"
	}
	return "?"
}

// Tracef logs at Trace level (below Debug).
func Tracef(format string, args ...interface{}) {
	if traceEnabled {
		log.Debug("TRACE: " + fmt.Sprintf(format, args...))
	}
}

// Debugf logs at Debug level.
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// Infof logs at Info level.
func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// Warnf logs at Warn level.
func Warnf(format string, args ...interface{}) {
	log.Warnf(format, args...)
}

// Errorf logs at Error level.
func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// Debug logs at Debug level.
func Debug(msg string) {
	log.Debug(msg)
}

// WithError returns an entry with error.
func WithError(err error) *log.Entry {
	return log.WithError(err)
}

// WithField returns an entry carrying a single field.
func WithField(key string, value interface{}) *log.Entry {
	return log.WithField(key, value)
}
