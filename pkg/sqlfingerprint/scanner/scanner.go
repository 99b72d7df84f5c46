// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package scanner implements the PostgreSQL lexical rules needed to parse
// queries and to find the exact byte span of each literal in the source text.
// A Scanner holds all of its state, so callers create one per query.
package scanner

import (
	"strconv"
	"strings"

	"github.com/DataDog/sqlfingerprint/pkg/errors"
)

// Kind specifies the type of a token.
type Kind int

// List of available token kinds.
const (
	EOF Kind = iota
	// Ident is an unquoted identifier or keyword; Value is downcased.
	Ident
	// QuotedIdent is a "quoted" identifier; Value is unescaped.
	QuotedIdent
	// SConst is a string literal of any quoting style; Value is decoded.
	SConst
	// BConst is a b'...' bit string; Value is "b" followed by the digits.
	BConst
	// XConst is an x'...' hex string; Value is "x" followed by the digits.
	XConst
	IConst
	FConst
	// Param is a positional parameter; Value holds the digits.
	Param
	// Op is a multi-character or non-self operator.
	Op
	Typecast
	DotDot
	ColonEquals
	EqualsGreater
	LessEquals
	GreaterEquals
	NotEquals
	// Char is a single character token such as ',' or '('.
	Char
)

var kindNames = map[Kind]string{
	EOF:           "EOF",
	Ident:         "IDENT",
	QuotedIdent:   "QUOTED_IDENT",
	SConst:        "SCONST",
	BConst:        "BCONST",
	XConst:        "XCONST",
	IConst:        "ICONST",
	FConst:        "FCONST",
	Param:         "PARAM",
	Op:            "Op",
	Typecast:      "TYPECAST",
	DotDot:        "DOT_DOT",
	ColonEquals:   "COLON_EQUALS",
	EqualsGreater: "EQUALS_GREATER",
	LessEquals:    "LESS_EQUALS",
	GreaterEquals: "GREATER_EQUALS",
	NotEquals:     "NOT_EQUALS",
	Char:          "CHAR",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// maxIdentLen matches NAMEDATALEN-1; longer identifiers are truncated.
const maxIdentLen = 63

// Token is a lexical token. Pos and End are byte offsets of the token in the
// source, End exclusive.
type Token struct {
	Kind  Kind
	Value string
	Pos   int
	End   int
}

// Scanner tokenizes a query string.
type Scanner struct {
	src string
	pos int
}

// New returns a scanner positioned at the beginning of src.
func New(src string) *Scanner {
	return &Scanner{src: src}
}

// Position returns the current byte offset.
func (s *Scanner) Position() int { return s.pos }

// Scan returns the next token. At the end of input it returns a token of kind
// EOF positioned at len(src).
func (s *Scanner) Scan() (Token, error) {
	if err := s.skipBlank(); err != nil {
		return Token{}, err
	}
	start := s.pos
	if s.pos >= len(s.src) {
		return Token{Kind: EOF, Pos: start, End: start}, nil
	}
	ch := s.src[s.pos]
	next := s.peekAt(1)
	switch {
	case (ch == 'e' || ch == 'E') && next == '\'':
		s.pos++
		return s.scanEscapeString(start)
	case (ch == 'b' || ch == 'B') && next == '\'':
		s.pos++
		return s.scanBitString(start, BConst, 'b')
	case (ch == 'x' || ch == 'X') && next == '\'':
		s.pos++
		return s.scanBitString(start, XConst, 'x')
	case (ch == 'u' || ch == 'U') && next == '&' && (s.peekAt(2) == '\'' || s.peekAt(2) == '"'):
		s.pos += 2
		return s.scanUnicode(start)
	case isIdentStart(ch):
		return s.scanIdentifier(start), nil
	case ch == '\'':
		return s.scanString(start)
	case ch == '"':
		return s.scanQuotedIdent(start)
	case ch == '$':
		return s.scanDollar(start)
	case isDigit(ch) || (ch == '.' && isDigit(next)):
		return s.scanNumber(start)
	case ch == ':' && next == ':':
		s.pos += 2
		return s.token(Typecast, start, "::"), nil
	case ch == ':' && next == '=':
		s.pos += 2
		return s.token(ColonEquals, start, ":="), nil
	case ch == '.' && next == '.':
		s.pos += 2
		return s.token(DotDot, start, ".."), nil
	case isOpChar(ch):
		return s.scanOperator(start), nil
	}
	s.pos++
	return s.token(Char, start, s.src[start:s.pos]), nil
}

func (s *Scanner) token(kind Kind, start int, value string) Token {
	return Token{Kind: kind, Value: value, Pos: start, End: s.pos}
}

func (s *Scanner) peekAt(off int) byte {
	if s.pos+off < len(s.src) {
		return s.src[s.pos+off]
	}
	return 0
}

// skipBlank skips whitespace and comments.
func (s *Scanner) skipBlank() error {
	for s.pos < len(s.src) {
		ch := s.src[s.pos]
		switch {
		case isSpace(ch):
			s.pos++
		case ch == '-' && s.peekAt(1) == '-':
			for s.pos < len(s.src) && s.src[s.pos] != '\n' && s.src[s.pos] != '\r' {
				s.pos++
			}
		case ch == '/' && s.peekAt(1) == '*':
			if err := s.skipBlockComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

// skipBlockComment skips a possibly nested /* */ comment.
func (s *Scanner) skipBlockComment() error {
	start := s.pos
	depth := 0
	for s.pos < len(s.src) {
		switch {
		case s.src[s.pos] == '/' && s.peekAt(1) == '*':
			depth++
			s.pos += 2
		case s.src[s.pos] == '*' && s.peekAt(1) == '/':
			depth--
			s.pos += 2
			if depth == 0 {
				return nil
			}
		default:
			s.pos++
		}
	}
	return s.errorAt(start, "unterminated /* comment")
}

func (s *Scanner) scanIdentifier(start int) Token {
	for s.pos < len(s.src) && isIdentCont(s.src[s.pos]) {
		s.pos++
	}
	ident := downcase(s.src[start:s.pos])
	if len(ident) > maxIdentLen {
		ident = truncateIdent(ident)
	}
	return s.token(Ident, start, ident)
}

func (s *Scanner) scanQuotedIdent(start int) (Token, error) {
	s.pos++
	var b strings.Builder
	for {
		if s.pos >= len(s.src) {
			return Token{}, s.errorAt(start, "unterminated quoted identifier")
		}
		ch := s.src[s.pos]
		if ch == '"' {
			if s.peekAt(1) == '"' {
				b.WriteByte('"')
				s.pos += 2
				continue
			}
			s.pos++
			break
		}
		b.WriteByte(ch)
		s.pos++
	}
	if b.Len() == 0 {
		return Token{}, s.errorAt(start, "zero-length delimited identifier")
	}
	ident := b.String()
	if len(ident) > maxIdentLen {
		ident = truncateIdent(ident)
	}
	return s.token(QuotedIdent, start, ident), nil
}

// scanQuoted reads the body of a '...' literal starting at the opening quote,
// including continuation segments separated by a newline. Each body byte
// is passed to fn, which may consume more input and returns the number of
// bytes it used. The closing quote is consumed.
func (s *Scanner) scanQuoted(start int, fn func(i int) (int, error)) error {
	s.pos++ // opening quote
	for {
		if s.pos >= len(s.src) {
			return s.errorAt(start, "unterminated quoted string")
		}
		if s.src[s.pos] == '\'' {
			if s.peekAt(1) == '\'' {
				if _, err := fn(-1); err != nil {
					return err
				}
				s.pos += 2
				continue
			}
			s.pos++
			if !s.quoteContinues() {
				return nil
			}
			continue
		}
		n, err := fn(s.pos)
		if err != nil {
			return err
		}
		s.pos += n
	}
}

// quoteContinues reports whether the literal just closed continues after
// whitespace containing a newline, and if so moves past the next opening
// quote.
func (s *Scanner) quoteContinues() bool {
	i := s.pos
	for i < len(s.src) && isHorizSpace(s.src[i]) {
		i++
	}
	if i >= len(s.src) || (s.src[i] != '\n' && s.src[i] != '\r') {
		return false
	}
	for i < len(s.src) {
		switch {
		case isSpace(s.src[i]):
			i++
		case s.src[i] == '-' && i+1 < len(s.src) && s.src[i+1] == '-':
			for i < len(s.src) && s.src[i] != '\n' && s.src[i] != '\r' {
				i++
			}
		case s.src[i] == '\'':
			s.pos = i + 1
			return true
		default:
			return false
		}
	}
	return false
}

func (s *Scanner) scanString(start int) (Token, error) {
	var b strings.Builder
	err := s.scanQuoted(start, func(i int) (int, error) {
		if i < 0 {
			b.WriteByte('\'')
			return 0, nil
		}
		b.WriteByte(s.src[i])
		return 1, nil
	})
	if err != nil {
		return Token{}, err
	}
	return s.token(SConst, start, b.String()), nil
}

func (s *Scanner) scanBitString(start int, kind Kind, prefix byte) (Token, error) {
	var b strings.Builder
	b.WriteByte(prefix)
	err := s.scanQuoted(start, func(i int) (int, error) {
		if i < 0 {
			b.WriteByte('\'')
			return 0, nil
		}
		b.WriteByte(s.src[i])
		return 1, nil
	})
	if err != nil {
		return Token{}, err
	}
	return s.token(kind, start, b.String()), nil
}

func (s *Scanner) scanDollar(start int) (Token, error) {
	if isDigit(s.peekAt(1)) {
		s.pos++
		for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
			s.pos++
		}
		if s.pos < len(s.src) && isIdentCont(s.src[s.pos]) {
			return Token{}, s.errorAt(start, "trailing junk after parameter")
		}
		return s.token(Param, start, s.src[start+1:s.pos]), nil
	}
	// $tag$ or $$
	i := s.pos + 1
	if i < len(s.src) && isDolqStart(s.src[i]) {
		i++
		for i < len(s.src) && isDolqCont(s.src[i]) {
			i++
		}
	}
	if i >= len(s.src) || s.src[i] != '$' {
		s.pos++
		return s.token(Char, start, "$"), nil
	}
	delim := s.src[s.pos : i+1]
	bodyStart := i + 1
	end := strings.Index(s.src[bodyStart:], delim)
	if end < 0 {
		return Token{}, s.errorAt(start, "unterminated dollar-quoted string")
	}
	s.pos = bodyStart + end + len(delim)
	return s.token(SConst, start, s.src[bodyStart:bodyStart+end]), nil
}

func (s *Scanner) scanNumber(start int) (Token, error) {
	kind := IConst
	for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
		s.pos++
	}
	if s.pos < len(s.src) && s.src[s.pos] == '.' {
		if s.peekAt(1) == '.' {
			// 1..2 is an integer followed by DotDot
			return s.integer(start)
		}
		kind = FConst
		s.pos++
		for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
			s.pos++
		}
	}
	if s.pos < len(s.src) && (s.src[s.pos] == 'e' || s.src[s.pos] == 'E') {
		i := s.pos + 1
		if i < len(s.src) && (s.src[i] == '+' || s.src[i] == '-') {
			i++
		}
		if i < len(s.src) && isDigit(s.src[i]) {
			for i < len(s.src) && isDigit(s.src[i]) {
				i++
			}
			kind = FConst
			s.pos = i
		} else {
			return Token{}, s.errorAt(start, "trailing junk after numeric literal")
		}
	}
	if s.pos < len(s.src) && isIdentStart(s.src[s.pos]) {
		return Token{}, s.errorAt(start, "trailing junk after numeric literal")
	}
	if kind == IConst {
		return s.integer(start)
	}
	return s.token(FConst, start, s.src[start:s.pos]), nil
}

// integer returns an IConst, or an FConst when the value does not fit in 32 bits.
func (s *Scanner) integer(start int) (Token, error) {
	text := s.src[start:s.pos]
	if _, err := strconv.ParseInt(text, 10, 32); err != nil {
		return s.token(FConst, start, text), nil
	}
	return s.token(IConst, start, text), nil
}

// scanOperator applies the PostgreSQL operator rules: an operator never
// contains a comment start, and a trailing + or - is only kept when the
// operator also contains one of ~ ! @ # ^ & | ` ? %.
func (s *Scanner) scanOperator(start int) Token {
	end := start
	for end < len(s.src) && isOpChar(s.src[end]) {
		end++
	}
	text := s.src[start:end]
	if i := commentStart(text); i >= 0 {
		text = text[:i]
	}
	n := len(text)
	if n > 1 && (text[n-1] == '+' || text[n-1] == '-') {
		if !strings.ContainsAny(text[:n-1], "~!@#^&|`?%") {
			for n > 1 && (text[n-1] == '+' || text[n-1] == '-') {
				n--
			}
		}
	}
	text = text[:n]
	s.pos = start + n
	if n == 1 && strings.IndexByte(",()[].;:+-*/%^<>=", text[0]) >= 0 {
		return s.token(Char, start, text)
	}
	if n == 2 {
		switch text {
		case "=>":
			return s.token(EqualsGreater, start, text)
		case ">=":
			return s.token(GreaterEquals, start, text)
		case "<=":
			return s.token(LessEquals, start, text)
		case "<>", "!=":
			return s.token(NotEquals, start, "<>")
		}
	}
	return s.token(Op, start, text)
}

func commentStart(text string) int {
	a := strings.Index(text, "/*")
	b := strings.Index(text, "--")
	switch {
	case a < 0:
		return b
	case b < 0:
		return a
	case a < b:
		return a
	default:
		return b
	}
}

// errorAt returns a syntax error positioned at offset pos in the style of the
// PostgreSQL scanner.
func (s *Scanner) errorAt(pos int, msg string) error {
	if pos >= len(s.src) {
		return errors.New(pos, "%s at end of input", msg)
	}
	return errors.New(pos, "%s at or near \"%s\"", msg, s.src[pos:])
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v'
}

func isHorizSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\f' || ch == '\v'
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch >= 0x80
}

func isIdentCont(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch) || ch == '$'
}

func isDolqStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch >= 0x80
}

func isDolqCont(ch byte) bool { return isDolqStart(ch) || isDigit(ch) }

func isOpChar(ch byte) bool {
	return strings.IndexByte("~!@#^&|`?+-*/%<>=", ch) >= 0
}

// downcase lowercases ASCII letters only, as PostgreSQL does for identifiers.
func downcase(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if b[j] >= 'A' && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}

// truncateIdent cuts s to maxIdentLen bytes without splitting a UTF-8 sequence.
func truncateIdent(s string) string {
	n := maxIdentLen
	for n > 0 && s[n]&0xC0 == 0x80 {
		n--
	}
	return s[:n]
}
