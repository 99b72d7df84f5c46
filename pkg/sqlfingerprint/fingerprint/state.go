// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package fingerprint

import (
	"github.com/zeebo/xxh3"
)

// state accumulates the token stream of one fingerprint computation.
type state struct {
	h      xxh3.Hasher
	tokens []string
	record bool
}

func newState(record bool) *state {
	return &state{h: *xxh3.NewSeed(Version), record: record}
}

func (s *state) write(tok string) {
	s.h.WriteString(tok) //nolint:errcheck
	if s.record {
		s.tokens = append(s.tokens, tok)
	}
}

func (s *state) sum() uint64 { return s.h.Sum64() }

// checkpoint is a copy of the hash state plus the token log length.
type checkpoint struct {
	h       xxh3.Hasher
	ntokens int
}

func (s *state) checkpoint() checkpoint {
	return checkpoint{h: s.h, ntokens: len(s.tokens)}
}

// rewind restores s to c, dropping any tokens written since.
func (s *state) rewind(c checkpoint) {
	s.h = c.h
	if s.record {
		s.tokens = s.tokens[:c.ntokens]
	}
}
