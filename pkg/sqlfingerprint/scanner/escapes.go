// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package scanner

import (
	"strings"
	"unicode/utf8"

	"github.com/DataDog/sqlfingerprint/pkg/errors"
)

func isUTF16Surrogate(r rune) bool       { return r >= 0xD800 && r <= 0xDFFF }
func isUTF16SurrogateFirst(r rune) bool  { return r >= 0xD800 && r <= 0xDBFF }
func isUTF16SurrogateSecond(r rune) bool { return r >= 0xDC00 && r <= 0xDFFF }

func surrogatePairToCodepoint(first, second rune) rune {
	return ((first & 0x3FF) << 10) + 0x10000 + (second & 0x3FF)
}

func isValidUnicodeCodepoint(r rune) bool { return r > 0 && r <= 0x10FFFF }

func hexNibble(ch byte) byte {
	switch {
	case ch >= 'a':
		return ch - 'a' + 10
	case ch >= 'A':
		return ch - 'A' + 10
	}
	return ch - '0'
}

// scanEscapeString reads an E'...' literal. s.pos is on the opening quote.
func (s *Scanner) scanEscapeString(start int) (Token, error) {
	var b strings.Builder
	var pendingHigh rune
	pendingPos := -1
	err := s.scanQuoted(start, func(i int) (int, error) {
		if i < 0 {
			if pendingPos >= 0 {
				return 0, errors.New(pendingPos, "invalid Unicode surrogate pair")
			}
			b.WriteByte('\'')
			return 0, nil
		}
		ch := s.src[i]
		if ch != '\\' {
			if pendingPos >= 0 {
				return 0, errors.New(pendingPos, "invalid Unicode surrogate pair")
			}
			b.WriteByte(ch)
			return 1, nil
		}
		if i+1 >= len(s.src) {
			return 1, nil
		}
		esc := s.src[i+1]
		if esc == 'u' || esc == 'U' {
			n := 4
			if esc == 'U' {
				n = 8
			}
			r, ok := parseHex(s.src, i+2, n)
			if !ok {
				return 0, errors.New(i, "invalid Unicode escape")
			}
			switch {
			case pendingPos >= 0:
				if !isUTF16SurrogateSecond(r) {
					return 0, errors.New(i, "invalid Unicode surrogate pair")
				}
				b.WriteRune(surrogatePairToCodepoint(pendingHigh, r))
				pendingPos = -1
			case isUTF16SurrogateFirst(r):
				pendingHigh, pendingPos = r, i
			case isUTF16SurrogateSecond(r):
				return 0, errors.New(i, "invalid Unicode surrogate pair")
			case !isValidUnicodeCodepoint(r):
				return 0, errors.New(i, "invalid Unicode escape value")
			default:
				b.WriteRune(r)
			}
			return 2 + n, nil
		}
		if pendingPos >= 0 {
			return 0, errors.New(pendingPos, "invalid Unicode surrogate pair")
		}
		switch esc {
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'x':
			j := i + 2
			var v byte
			for j < len(s.src) && j < i+4 && isHexDigit(s.src[j]) {
				v = v<<4 | hexNibble(s.src[j])
				j++
			}
			if j == i+2 {
				b.WriteByte('x')
				return 2, nil
			}
			b.WriteByte(v)
			return j - i, nil
		case '0', '1', '2', '3', '4', '5', '6', '7':
			j := i + 1
			var v byte
			for j < len(s.src) && j < i+4 && s.src[j] >= '0' && s.src[j] <= '7' {
				v = v<<3 | (s.src[j] - '0')
				j++
			}
			b.WriteByte(v)
			return j - i, nil
		default:
			b.WriteByte(esc)
		}
		return 2, nil
	})
	if err != nil {
		return Token{}, err
	}
	if pendingPos >= 0 {
		return Token{}, errors.New(pendingPos, "invalid Unicode surrogate pair")
	}
	return s.token(SConst, start, b.String()), nil
}

// scanUnicode reads a U&'...' string or U&"..." identifier. s.pos is on the
// opening quote. The token is extended past any following whitespace while
// looking for a UESCAPE clause, whether or not one is found.
func (s *Scanner) scanUnicode(start int) (Token, error) {
	kind := SConst
	var raw Token
	var err error
	if s.src[s.pos] == '"' {
		kind = QuotedIdent
		raw, err = s.scanQuotedIdent(s.pos)
	} else {
		raw, err = s.scanString(s.pos)
	}
	if err != nil {
		return Token{}, err
	}
	bodyStart := raw.Pos + 1

	escape := byte('\\')
	i := s.pos
	for i < len(s.src) && isSpace(s.src[i]) {
		i++
	}
	s.pos = i
	if hasKeywordAt(s.src, i, "uescape") {
		j := i + len("uescape")
		for j < len(s.src) && isSpace(s.src[j]) {
			j++
		}
		if j+2 >= len(s.src) || s.src[j] != '\'' || s.src[j+2] != '\'' {
			return Token{}, s.errorAt(j, "UESCAPE must be followed by a simple string literal")
		}
		escape = s.src[j+1]
		if isHexDigit(escape) || escape == '+' || escape == '\'' || escape == '"' || isSpace(escape) {
			return Token{}, errors.New(j+1, "invalid Unicode escape character")
		}
		s.pos = j + 3
	}

	value, err := decodeUnicode(raw.Value, escape, bodyStart)
	if err != nil {
		return Token{}, err
	}
	return s.token(kind, start, value), nil
}

func hasKeywordAt(src string, i int, kw string) bool {
	if i+len(kw) > len(src) || !strings.EqualFold(src[i:i+len(kw)], kw) {
		return false
	}
	return i+len(kw) == len(src) || !isIdentCont(src[i+len(kw)])
}

// decodeUnicode replaces \XXXX and \+XXXXXX escapes in str. base is the byte
// offset of str in the query, used for error positions; it is approximate
// when the literal contained doubled quotes.
func decodeUnicode(str string, escape byte, base int) (string, error) {
	var b strings.Builder
	var pendingHigh rune
	pendingPos := -1
	for i := 0; i < len(str); {
		if str[i] != escape {
			if pendingPos >= 0 {
				return "", errors.New(pendingPos, "invalid Unicode surrogate pair")
			}
			b.WriteByte(str[i])
			i++
			continue
		}
		if i+1 < len(str) && str[i+1] == escape {
			if pendingPos >= 0 {
				return "", errors.New(pendingPos, "invalid Unicode surrogate pair")
			}
			b.WriteByte(escape)
			i += 2
			continue
		}
		n, skip := 4, 1
		if i+1 < len(str) && str[i+1] == '+' {
			n, skip = 6, 2
		}
		r, ok := parseHex(str, i+skip, n)
		if !ok {
			return "", errors.New(base+i, "invalid Unicode escape")
		}
		switch {
		case pendingPos >= 0:
			if !isUTF16SurrogateSecond(r) {
				return "", errors.New(base+i, "invalid Unicode surrogate pair")
			}
			b.WriteRune(surrogatePairToCodepoint(pendingHigh, r))
			pendingPos = -1
		case isUTF16SurrogateFirst(r):
			pendingHigh, pendingPos = r, base+i
		case isUTF16Surrogate(r):
			return "", errors.New(base+i, "invalid Unicode surrogate pair")
		case !isValidUnicodeCodepoint(r):
			return "", errors.New(base+i, "invalid Unicode escape value")
		default:
			b.WriteRune(r)
		}
		i += skip + n
	}
	if pendingPos >= 0 {
		return "", errors.New(pendingPos, "invalid Unicode surrogate pair")
	}
	out := b.String()
	if !utf8.ValidString(out) {
		return "", errors.New(base, "invalid byte sequence for encoding \"UTF8\"")
	}
	return out, nil
}

func parseHex(s string, i, n int) (rune, bool) {
	if i+n > len(s) {
		return 0, false
	}
	var r rune
	for j := i; j < i+n; j++ {
		if !isHexDigit(s[j]) {
			return 0, false
		}
		r = r<<4 | rune(hexNibble(s[j]))
	}
	return r, true
}
