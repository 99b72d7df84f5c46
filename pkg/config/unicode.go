// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package config

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// unexpectedCodepoint is an invisible or control codepoint found in a
// configuration file. Pasted settings often carry them and they silently
// change key names.
type unexpectedCodepoint struct {
	codepoint rune
	reason    string
	offset    int
}

func (u unexpectedCodepoint) String() string {
	return fmt.Sprintf("%U at byte %d: %s", u.codepoint, u.offset, u.reason)
}

// findUnexpectedUnicode lists the codepoints of input that are neither
// printable nor plain whitespace.
func findUnexpectedUnicode(input []byte) []unexpectedCodepoint {
	var found []unexpectedCodepoint
	for offset := 0; offset < len(input); {
		r, size := utf8.DecodeRune(input[offset:])
		reason := ""
		switch {
		case r == utf8.RuneError:
			reason = "invalid UTF-8"
		case r == ' ' || r == '\r' || r == '\n' || r == '\t':
		case unicode.IsSpace(r):
			reason = "unsupported whitespace"
		case unicode.Is(unicode.Bidi_Control, r):
			reason = "bidirectional control"
		case unicode.Is(unicode.C, r):
			reason = "control or format character"
		}
		if reason != "" {
			found = append(found, unexpectedCodepoint{codepoint: r, reason: reason, offset: offset})
		}
		offset += size
	}
	return found
}
