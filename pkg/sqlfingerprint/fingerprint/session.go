// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package fingerprint

import (
	"fmt"
	"strconv"

	"github.com/DataDog/sqlfingerprint/pkg/sqlfingerprint/ast"
)

// session is one top-level fingerprint computation. Sessions forked to hash
// list items share the list cache and diagnostics of their parent.
type session struct {
	st     *state
	shared *shared
}

type shared struct {
	lists    listCache
	warnings []string
	log      Logger
}

func newSession(record bool, log Logger) *session {
	if log == nil {
		log = noopLogger{}
	}
	return &session{
		st:     newState(record),
		shared: &shared{lists: make(listCache), log: log},
	}
}

// fork returns a session with a fresh hash state and no token log.
func (s *session) fork() *session {
	return &session{st: newState(false), shared: s.shared}
}

func (s *session) warnf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	s.shared.warnings = append(s.shared.warnings, msg)
	s.shared.log.Warnf("%s", msg)
}

// visit hashes n, reached through the field named field of parent.
func (s *session) visit(n, parent ast.Node, field string, depth int) {
	if n == nil || depth >= MaxDepth {
		return
	}
	switch v := n.(type) {
	case *ast.List:
		s.visitList(v, parent, field, depth)
		return
	case *ast.AConst, *ast.ParamRef, *ast.Alias, *ast.SetToDefault:
		return
	case *ast.TypeCast:
		switch v.Arg.(type) {
		case *ast.AConst, *ast.ParamRef:
			return
		}
	}
	name, ok := n.Tag().Name()
	if !ok {
		s.warnf("could not fingerprint unrecognized node type: %d", int(n.Tag()))
		return
	}
	s.st.write(name)
	n.WalkFields(&fieldHasher{s: s, node: n, parent: parent, field: field, depth: depth})
}

// fieldHasher writes the fields of node into the session.
type fieldHasher struct {
	s      *session
	node   ast.Node
	parent ast.Node
	field  string
	depth  int
}

// Child writes the field name followed by the child. When the child adds
// nothing the field name is taken back out as well.
func (f *fieldHasher) Child(name string, n ast.Node) {
	if n == nil {
		return
	}
	if l, ok := n.(*ast.List); ok && l.Len() == 0 {
		return
	}
	before := f.s.st.checkpoint()
	f.s.st.write(name)
	sum := f.s.st.sum()
	f.s.visit(n, f.node, name, f.depth+1)
	if f.s.st.sum() == sum {
		f.s.st.rewind(before)
	}
}

func (f *fieldHasher) Str(name, value string) {
	if value == "" || f.skipName(name) {
		return
	}
	f.s.st.write(name)
	f.s.st.write(value)
}

func (f *fieldHasher) Int(name string, value int64) {
	if value == 0 {
		return
	}
	f.s.st.write(name)
	f.s.st.write(strconv.FormatInt(value, 10))
}

func (f *fieldHasher) Bool(name string, value bool) {
	if !value {
		return
	}
	f.s.st.write(name)
	f.s.st.write("true")
}

func (f *fieldHasher) Enum(name string, value fmt.Stringer) {
	f.s.st.write(name)
	f.s.st.write(value.String())
}

// skipName reports whether a "name" field is a user chosen label that does
// not change what the statement does.
func (f *fieldHasher) skipName(name string) bool {
	if name != "name" {
		return false
	}
	switch f.node.(type) {
	case *ast.ResTarget:
		_, inSelect := f.parent.(*ast.SelectStmt)
		return inSelect && f.field == "targetList"
	case *ast.PrepareStmt, *ast.ExecuteStmt, *ast.DeallocateStmt:
		return true
	}
	return false
}
