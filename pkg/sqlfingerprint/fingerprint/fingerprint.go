// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package fingerprint computes structural fingerprints of parse trees.
//
// A fingerprint is an XXH3 hash over the type names and non-default field
// values of a tree. Constants, parameters, aliases and source locations do
// not contribute, and the items of a few list fields (FROM items, target
// lists, function arguments, ...) are hashed in a canonical order with
// duplicates removed, so queries that only differ in those respects share a
// fingerprint.
package fingerprint

import (
	"fmt"

	"github.com/DataDog/sqlfingerprint/pkg/errors"
	"github.com/DataDog/sqlfingerprint/pkg/sqlfingerprint/ast"
)

const (
	// Version seeds the hash. It changes whenever the token stream of an
	// existing tree changes.
	Version = 3

	// MaxDepth is the depth at which traversal stops.
	MaxDepth = 100
)

// Logger receives diagnostics raised while fingerprinting.
type Logger interface {
	Warnf(format string, params ...interface{})
}

type noopLogger struct{}

func (noopLogger) Warnf(_ string, _ ...interface{}) {}

// Options configures a fingerprint computation.
type Options struct {
	// Tokens requests the list of tokens that were hashed.
	Tokens bool
	// Logger, if set, also receives the warnings returned in the result.
	Logger Logger
}

// Result is the fingerprint of a list of statements.
type Result struct {
	Value    uint64   `json:"fingerprint" yaml:"fingerprint"`
	Hex      string   `json:"hex" yaml:"hex"`
	Tokens   []string `json:"tokens,omitempty" yaml:"tokens,omitempty"`
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Fingerprint hashes the statements of stmts into a single fingerprint.
func Fingerprint(stmts []*ast.RawStmt, opts Options) (res *Result, err error) {
	defer errors.Recover(&err)
	s := newSession(opts.Tokens, opts.Logger)
	for _, raw := range stmts {
		if raw != nil {
			s.visit(raw.Stmt, nil, "", 0)
		}
	}
	v := s.st.sum()
	res = &Result{
		Value:    v,
		Hex:      Hex(v),
		Warnings: s.shared.warnings,
	}
	if opts.Tokens {
		res.Tokens = s.st.tokens
		if res.Tokens == nil {
			res.Tokens = []string{}
		}
	}
	return res, nil
}

// Node returns the fingerprint of a single subtree.
func Node(n ast.Node) uint64 {
	s := newSession(false, nil)
	s.visit(n, nil, "", 0)
	return s.st.sum()
}

// Hex formats a fingerprint as 16 lowercase hex digits.
func Hex(v uint64) string {
	return fmt.Sprintf("%016x", v)
}
