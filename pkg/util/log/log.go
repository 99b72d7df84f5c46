// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package log is the seelog backed logger of the sqlfp tools. Every message
// is scrubbed of credentials before it is written.
package log

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/cihub/seelog"
	"go.uber.org/atomic"
)

var (
	logger *scrubbingLogger

	// This buffer holds log lines sent to the logger before its
	// initialization. It is replayed once SetupLogger is called.
	logsBuffer        = []func(){}
	bufferMutex       sync.Mutex
	initialized       = atomic.NewBool(false)
	defaultStackDepth = 3
)

// scrubbingLogger wraps a seelog logger and scrubs what it writes.
type scrubbingLogger struct {
	inner seelog.LoggerInterface
	level seelog.LogLevel
	l     sync.RWMutex
}

// SetupLogger configures the package logger with a seelog interface and
// flushes the messages logged so far.
func SetupLogger(l seelog.LoggerInterface, level string) {
	lvl, ok := seelog.LogLevelFromString(strings.ToLower(level))
	if !ok {
		lvl = seelog.InfoLvl
	}
	// The exported functions below add two frames between the caller and
	// seelog.
	l.SetAdditionalStackDepth(defaultStackDepth) //nolint:errcheck

	bufferMutex.Lock()
	defer bufferMutex.Unlock()
	logger = &scrubbingLogger{inner: l, level: lvl}
	initialized.Store(true)
	for _, logLine := range logsBuffer {
		logLine()
	}
	logsBuffer = []func(){}
}

func addLogToBuffer(logHandle func()) {
	bufferMutex.Lock()
	defer bufferMutex.Unlock()

	logsBuffer = append(logsBuffer, logHandle)
}

func (sw *scrubbingLogger) shouldLog(level seelog.LogLevel) bool {
	sw.l.RLock()
	defer sw.l.RUnlock()
	return level >= sw.level
}

func (sw *scrubbingLogger) write(level seelog.LogLevel, s string) error {
	sw.l.Lock()
	defer sw.l.Unlock()

	scrubbed := Scrub(s)
	switch level {
	case seelog.TraceLvl:
		sw.inner.Trace(scrubbed)
	case seelog.DebugLvl:
		sw.inner.Debug(scrubbed)
	case seelog.InfoLvl:
		sw.inner.Info(scrubbed)
	case seelog.WarnLvl:
		return sw.inner.Warn(scrubbed)
	case seelog.ErrorLvl:
		return sw.inner.Error(scrubbed)
	case seelog.CriticalLvl:
		return sw.inner.Critical(scrubbed)
	}
	return nil
}

func logFormat(level seelog.LogLevel, bufferFunc func(), format string, params ...interface{}) error {
	msg := fmt.Sprintf(format, params...)
	if !initialized.Load() {
		addLogToBuffer(bufferFunc)
	} else if logger.shouldLog(level) {
		return logger.write(level, msg)
	}
	return errors.New(Scrub(msg))
}

// Tracef logs with format at the trace level
func Tracef(format string, params ...interface{}) {
	logFormat(seelog.TraceLvl, func() { Tracef(format, params...) }, format, params...) //nolint:errcheck
}

// Debugf logs with format at the debug level
func Debugf(format string, params ...interface{}) {
	logFormat(seelog.DebugLvl, func() { Debugf(format, params...) }, format, params...) //nolint:errcheck
}

// Infof logs with format at the info level
func Infof(format string, params ...interface{}) {
	logFormat(seelog.InfoLvl, func() { Infof(format, params...) }, format, params...) //nolint:errcheck
}

// Warnf logs with format at the warn level and returns an error containing the formated log message
func Warnf(format string, params ...interface{}) error {
	return logFormat(seelog.WarnLvl, func() { Warnf(format, params...) }, format, params...)
}

// Errorf logs with format at the error level and returns an error containing the formated log message
func Errorf(format string, params ...interface{}) error {
	err := logFormat(seelog.ErrorLvl, func() { Errorf(format, params...) }, format, params...)
	if !initialized.Load() {
		fmt.Fprintf(os.Stderr, "%s: %s\n", seelog.ErrorLvl, Scrub(fmt.Sprintf(format, params...)))
	}
	return err
}

// Criticalf logs with format at the critical level and returns an error containing the formated log message
func Criticalf(format string, params ...interface{}) error {
	err := logFormat(seelog.CriticalLvl, func() { Criticalf(format, params...) }, format, params...)
	if !initialized.Load() {
		fmt.Fprintf(os.Stderr, "%s: %s\n", seelog.CriticalLvl, Scrub(fmt.Sprintf(format, params...)))
	}
	return err
}

// Flush flushes the underlying inner log
func Flush() {
	if initialized.Load() {
		logger.inner.Flush()
	}
}

// GetLogLevel returns a seelog native representation of the current
// log level
func GetLogLevel() (seelog.LogLevel, error) {
	if !initialized.Load() {
		return seelog.InfoLvl, errors.New("cannot get loglevel: logger not initialized")
	}
	logger.l.RLock()
	defer logger.l.RUnlock()
	return logger.level, nil
}

// ChangeLogLevel changes the current log level, valid levels are trace, debug,
// info, warn, error, critical and off. It requires a new seelog logger because
// an existing one cannot be updated.
func ChangeLogLevel(l seelog.LoggerInterface, level string) error {
	if !initialized.Load() {
		return errors.New("cannot change loglevel: logger not initialized")
	}
	lvl, ok := seelog.LogLevelFromString(strings.ToLower(level))
	if !ok {
		return errors.New("bad log level")
	}
	if err := l.SetAdditionalStackDepth(defaultStackDepth); err != nil {
		return err
	}
	logger.l.Lock()
	defer logger.l.Unlock()
	logger.inner = l
	logger.level = lvl
	return nil
}

// Adapter hands the package logger to library code taking a Debugf/Warnf
// logger.
type Adapter struct{}

// Debugf implements the library logger interface.
func (Adapter) Debugf(format string, params ...interface{}) {
	Debugf(format, params...)
}

// Warnf implements the library logger interface.
func (Adapter) Warnf(format string, params ...interface{}) {
	Warnf(format, params...) //nolint:errcheck
}
