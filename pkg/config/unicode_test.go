// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindUnexpectedUnicode(t *testing.T) {
	for _, tt := range []struct {
		input string
		want  []rune
	}{
		{input: "cache:\n  enabled: true\r\n\tworkers: 4", want: nil},
		{input: "output·format😿", want: nil},
		{input: "\u202acache: true", want: []rune{'\u202a'}},
		{input: "work\u200bers: 4", want: []rune{'\u200b'}},
		{input: "a\u202fb\u200ac\u2000d", want: []rune{'\u202f', '\u200a', '\u2000'}},
		{input: "x\x00y", want: []rune{0}},
	} {
		var got []rune
		for _, u := range findUnexpectedUnicode([]byte(tt.input)) {
			got = append(got, u.codepoint)
		}
		assert.Equal(t, tt.want, got, "%q", tt.input)
	}
}

func TestUnexpectedCodepointOffset(t *testing.T) {
	found := findUnexpectedUnicode([]byte("ab\xffc"))
	if assert.Len(t, found, 1) {
		assert.Equal(t, "U+FFFD at byte 2: invalid UTF-8", found[0].String())
	}
}
