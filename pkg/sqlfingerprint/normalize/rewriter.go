// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package normalize

import (
	"sort"
	"strconv"
	"strings"

	"github.com/DataDog/sqlfingerprint/pkg/sqlfingerprint/scanner"
)

// fillLengths sorts locs by offset and sets the length of each constant by
// rescanning the query. Duplicates, and constants past a point where the
// scan fails, keep a length of -1.
func fillLengths(query string, locs []location) {
	sort.SliceStable(locs, func(i, j int) bool { return locs[i].offset < locs[j].offset })

	s := scanner.New(query)
	last := -1
	for i := range locs {
		loc := locs[i].offset
		if loc <= last {
			continue
		}
		tok, ok := scanFrom(s, loc)
		if !ok {
			return
		}
		if query[loc] == '-' {
			// negative number: the sign and the number are replaced together
			if tok, ok = next(s); !ok {
				return
			}
		}
		length := tok.End - loc
		if length > 4 && (query[loc] == 'u' || query[loc] == 'U') && strings.HasPrefix(query[loc+1:], "&'") {
			// unicode strings swallow the blanks after them looking for UESCAPE
			for length > 0 && isSpace(query[loc+length-1]) {
				length--
			}
		}
		locs[i].length = length
		last = loc
	}
}

// scanFrom returns the first token starting at or after offset.
func scanFrom(s *scanner.Scanner, offset int) (scanner.Token, bool) {
	for {
		tok, ok := next(s)
		if !ok {
			return tok, false
		}
		if tok.Pos >= offset {
			return tok, true
		}
	}
}

func next(s *scanner.Scanner) (scanner.Token, bool) {
	tok, err := s.Scan()
	if err != nil || tok.Kind == scanner.EOF {
		return tok, false
	}
	return tok, true
}

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

// rewrite replaces every located constant of query with its parameter
// symbol. locs must have been passed through fillLengths.
func rewrite(query string, locs []location, highestExtern int) string {
	var b strings.Builder
	b.Grow(len(query) + 10*len(locs))
	copied := 0
	for _, loc := range locs {
		if loc.length < 0 || loc.offset < copied {
			continue
		}
		b.WriteString(query[copied:loc.offset])
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(paramNumber(loc.paramID, highestExtern)))
		copied = loc.offset + loc.length
	}
	b.WriteString(query[copied:])
	return b.String()
}

// paramNumber resolves a generated parameter id against the highest
// parameter written in the query.
func paramNumber(id, highestExtern int) int {
	if id < 0 {
		return highestExtern - id
	}
	return id
}
