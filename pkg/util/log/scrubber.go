// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package log

import (
	"bytes"
	"fmt"
	"regexp"
)

// Replacer structure to store regex matching and replacement functions
type Replacer struct {
	Regex    *regexp.Regexp
	Hints    []string // If none of these hints exist in the message, then we know the regex wont match either
	Repl     []byte
	ReplFunc func(b []byte) []byte
}

var replacers []Replacer

func init() {
	// CREATE ROLE ... PASSWORD '...' and ALTER ROLE ... PASSWORD '...'
	passwordLiteralReplacer := Replacer{
		Regex: regexp.MustCompile(`(?i)(\bpassword\s+)E?'(?:[^']|'')*'`),
		Hints: []string{"password", "PASSWORD", "Password"},
		Repl:  []byte(`$1'********'`),
	}
	// libpq connection strings, as in CREATE SUBSCRIPTION ... CONNECTION '...'
	conninfoPasswordReplacer := Replacer{
		Regex: regexp.MustCompile(`(?i)(\bpassword\s*=\s*)(?:'(?:[^'\\]|\\.)*'|[^\s']+)`),
		Hints: []string{"password", "PASSWORD", "Password"},
		Repl:  []byte(`$1********`),
	}
	// URI Generic Syntax
	// https://tools.ietf.org/html/rfc3986
	uriPasswordReplacer := Replacer{
		Regex: regexp.MustCompile(`([A-Za-z][A-Za-z0-9+-.]+\:\/\/|\b)([^\:\s'"]+)\:([^\s'"@]+)\@`),
		Hints: []string{"@"},
		Repl:  []byte(`$1$2:********@`),
	}
	yamlPasswordReplacer := Replacer{
		Regex: matchYAMLKeyPart(`(pass(word)?|pwd)`),
		Hints: []string{"pass", "pwd"},
		Repl:  []byte(`$1 ********`),
	}
	replacers = []Replacer{passwordLiteralReplacer, conninfoPasswordReplacer, uriPasswordReplacer, yamlPasswordReplacer}
}

func matchYAMLKeyPart(part string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`(\s*(\w|_)*%s(\w|_)*\s*:)[^\n]+`, part))
}

// Scrub masks credentials found in message: role passwords, connection
// string passwords and URL user info.
func Scrub(message string) string {
	return string(ScrubBytes([]byte(message)))
}

// ScrubBytes masks credentials found in data.
func ScrubBytes(data []byte) []byte {
	for _, repl := range replacers {
		containsHint := false
		for _, hint := range repl.Hints {
			if bytes.Contains(data, []byte(hint)) {
				containsHint = true
				break
			}
		}
		if len(repl.Hints) == 0 || containsHint {
			if repl.ReplFunc != nil {
				data = repl.Regex.ReplaceAllFunc(data, repl.ReplFunc)
			} else {
				data = repl.Regex.ReplaceAll(data, repl.Repl)
			}
		}
	}
	return data
}
