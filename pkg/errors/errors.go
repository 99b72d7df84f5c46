// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package errors holds the structured error returned by query parsing,
// fingerprinting and normalization.
package errors

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// QueryError describes a failure to process a query. Filename, Funcname and
// Lineno locate the code that raised it; Cursorpos is the 1-based byte
// position in the query, 0 when the failure is not tied to a position.
type QueryError struct {
	Message   string `json:"message" yaml:"message"`
	Filename  string `json:"filename" yaml:"filename"`
	Funcname  string `json:"funcname" yaml:"funcname"`
	Lineno    int    `json:"lineno" yaml:"lineno"`
	Cursorpos int    `json:"cursorpos" yaml:"cursorpos"`
}

// Error implements error.
func (e *QueryError) Error() string {
	if e.Cursorpos > 0 {
		return fmt.Sprintf("%s (position %d)", e.Message, e.Cursorpos)
	}
	return e.Message
}

// New returns a QueryError positioned at the 0-based byte offset pos, or
// unpositioned when pos is negative. The caller's source location is recorded.
func New(pos int, format string, args ...interface{}) *QueryError {
	return newAt(2, pos, fmt.Sprintf(format, args...))
}

func newAt(skip int, pos int, msg string) *QueryError {
	e := &QueryError{Message: msg}
	if pos >= 0 {
		e.Cursorpos = pos + 1
	}
	if pc, file, line, ok := runtime.Caller(skip); ok {
		e.Filename = filepath.Base(file)
		e.Lineno = line
		if fn := runtime.FuncForPC(pc); fn != nil {
			name := fn.Name()
			if i := strings.LastIndexByte(name, '.'); i >= 0 {
				name = name[i+1:]
			}
			e.Funcname = name
		}
	}
	return e
}

// Internalf aborts the current traversal. The panic is turned back into a
// QueryError by Recover at the public entry point.
func Internalf(format string, args ...interface{}) {
	panic(newAt(2, -1, "internal error: "+fmt.Sprintf(format, args...)))
}

// Recover converts a panic raised during query processing into a QueryError
// stored in *err. It must be deferred directly:
//
//	defer errors.Recover(&err)
func Recover(err *error) {
	r := recover()
	if r == nil {
		return
	}
	switch v := r.(type) {
	case *QueryError:
		*err = v
	case error:
		*err = newAt(3, -1, "internal error: "+v.Error())
	default:
		*err = newAt(3, -1, fmt.Sprintf("internal error: %v", v))
	}
}

// AsQueryError returns the QueryError wrapped by err, if any.
func AsQueryError(err error) (*QueryError, bool) {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe, true
	}
	return nil, false
}
