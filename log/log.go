/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2024 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package log is the VM-wide logging facility. It mirrors the severity
// levels the teacher's trace package used (FINE/INFO/WARNING/SEVERE)
// but is backed by logrus instead of hand-rolled stderr writes, so
// callers get leveled filtering, structured fields, and (when stderr is
// a terminal) colorized output for free.
package log

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Severity mirrors the teacher's FINE/INFO/WARNING/SEVERE granularity.
type Severity int

const (
	FINE Severity = iota
	INFO
	WARNING
	SEVERE
)

var (
	mu     sync.Mutex
	logger = logrus.New()
	level  = WARNING
)

func init() {
	Init()
}

// Init (re)configures the package-global logger with defaults. Tests
// call it to reset state between runs, same as the teacher's trace.Init().
func Init() {
	mu.Lock()
	defer mu.Unlock()
	logger = logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: false,
		FullTimestamp:    true,
	})
	level = WARNING
	logger.SetLevel(severityToLogrus(WARNING))
}

// SetLogLevel changes the minimum severity that reaches the sink.
func SetLogLevel(s Severity) error {
	mu.Lock()
	defer mu.Unlock()
	level = s
	logger.SetLevel(severityToLogrus(s))
	return nil
}

// SetOutput redirects where log lines go; used by tests that capture
// stderr/stdout around CLI invocations.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger.SetOutput(w)
}

// Log emits msg at the given severity if it passes the current filter.
// Kept error-returning to match the teacher's trace.Log/trace.Trace
// call sites, which do `_ = log.Log(...)`.
func Log(msg string, s Severity) error {
	mu.Lock()
	cur := level
	mu.Unlock()
	if s < cur {
		return nil
	}
	switch s {
	case FINE:
		logger.Debug(msg)
	case INFO:
		logger.Info(msg)
	case WARNING:
		logger.Warn(msg)
	case SEVERE:
		logger.Error(msg)
	}
	return nil
}

// Trace logs at INFO, matching the teacher's trace.Trace shorthand.
func Trace(msg string) { _ = Log(msg, INFO) }

// Warning logs at WARNING.
func Warning(msg string) { _ = Log(msg, WARNING) }

// Error logs at SEVERE, matching the teacher's trace.Error shorthand.
func Error(msg string) { _ = Log(msg, SEVERE) }

func severityToLogrus(s Severity) logrus.Level {
	switch s {
	case FINE:
		return logrus.DebugLevel
	case INFO:
		return logrus.InfoLevel
	case WARNING:
		return logrus.WarnLevel
	case SEVERE:
		return logrus.ErrorLevel
	default:
		return logrus.WarnLevel
	}
}
