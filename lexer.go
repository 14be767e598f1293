// Copyright 2017 Santhosh Kumar Tekuri. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xpath31

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

type Kind int

const (
	EOFToken Kind = iota
	StringToken
	NumberToken
	CommentToken
	URIToken
	NameToken
	PrefixToken
	WildcardPrefixToken
	AxisToken
	WildcardToken
	DollarToken
	SymbolToken
)

var kindNames = []string{
	"<eof>",
	"string-literal",
	"number-literal",
	"comment",
	"braced-uri-literal",
	"name",
	"prefix",
	"wildcard-prefix",
	"axis",
	"wildcard",
	"$",
	"symbol",
}

func (k Kind) String() string {
	return kindNames[k]
}

// A Token is a lexical unit of an xpath.
//
// Value holds the decoded payload: string literal contents, name,
// prefix, axis name, trimmed uri, comment body or operator text.
// Number holds the value of a NumberToken. Offset is the byte offset
// of Text in the xpath.
type Token struct {
	Kind   Kind
	Offset int
	Text   string
	Value  string
	Number float64
}

func (t Token) String() string {
	if t.Kind == EOFToken {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Text)
}

var twoCharOps = map[string]bool{
	"//": true,
	"..": true,
	"||": true,
	"<<": true,
	">>": true,
	"<=": true,
	">=": true,
	"!=": true,
	"=>": true,
	":=": true,
}

// Tokenize splits xpath into tokens. The returned slice always ends
// with exactly one EOFToken.
func Tokenize(xpath string) ([]Token, error) {
	l := &lexer{xpath: xpath}
	if err := l.run(); err != nil {
		return nil, err
	}
	return l.tokens, nil
}

type lexer struct {
	xpath  string
	pos    int
	tokens []Token
}

func (l *lexer) errorf(offset int, format string, args ...interface{}) error {
	return &LexError{fmt.Sprintf(format, args...), l.xpath, offset}
}

func (l *lexer) emit(kind Kind, begin int, value string) {
	l.tokens = append(l.tokens, Token{Kind: kind, Offset: begin, Text: l.xpath[begin:l.pos], Value: value})
}

func (l *lexer) hasPrefix(s string) bool {
	return strings.HasPrefix(l.xpath[l.pos:], s)
}

func (l *lexer) skipSpace() {
	l.pos = skipSpace(l.xpath, l.pos)
}

func skipSpace(s string, i int) int {
	for i < len(s) {
		switch s[i] {
		case ' ', '\t', '\r', '\n':
			i++
		default:
			return i
		}
	}
	return i
}

func (l *lexer) run() error {
	for {
		l.skipSpace()
		if l.pos == len(l.xpath) {
			l.emit(EOFToken, l.pos, "")
			return nil
		}
		if err := l.next(); err != nil {
			return err
		}
	}
}

func (l *lexer) next() error {
	c := l.xpath[l.pos]
	if c == '\'' || c == '"' {
		return l.quoted(c)
	}
	if ok, err := l.number(); ok || err != nil {
		return err
	}
	if l.hasPrefix("(:") {
		return l.comment()
	}
	if l.hasPrefix("Q{") {
		return l.uriLiteral()
	}
	if r, _ := utf8.DecodeRuneInString(l.xpath[l.pos:]); c == '*' || c == '@' || c == '$' || isNameStart(r) {
		return l.names()
	}
	l.symbol()
	return nil
}

func (l *lexer) quoted(quote byte) error {
	begin := l.pos
	var buf strings.Builder
	for i := begin + 1; i < len(l.xpath); i++ {
		c := l.xpath[i]
		if c == quote {
			if i+1 < len(l.xpath) && l.xpath[i+1] == quote {
				buf.WriteByte(quote)
				i++
				continue
			}
			l.pos = i + 1
			l.emit(StringToken, begin, buf.String())
			return nil
		}
		buf.WriteByte(c)
	}
	return l.errorf(begin, "unmatched quote")
}

func digitsEnd(s string, i int) int {
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

// number reports whether a numeric literal starts at current position.
func (l *lexer) number() (bool, error) {
	s, begin := l.xpath, l.pos
	i, fraction := begin, false
	if s[i] == '.' {
		fraction = true
		i++
	}
	end := digitsEnd(s, i)
	if end == i {
		return false, nil
	}
	i = end
	if !fraction && i < len(s) && s[i] == '.' {
		i = digitsEnd(s, i+1)
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		end = digitsEnd(s, j)
		if end == j {
			return true, l.errorf(begin, "syntax error")
		}
		i = end
	}
	f, err := strconv.ParseFloat(s[begin:i], 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); !ok || numErr.Err != strconv.ErrRange {
			return true, l.errorf(begin, "syntax error")
		}
	}
	l.pos = i
	l.emit(NumberToken, begin, s[begin:i])
	l.tokens[len(l.tokens)-1].Number = f
	return true, nil
}

func (l *lexer) comment() error {
	s, begin := l.xpath, l.pos
	depth := 0
	for i := begin; i+1 < len(s); {
		switch {
		case s[i] == '(' && s[i+1] == ':':
			depth++
			i += 2
		case s[i] == ':' && s[i+1] == ')':
			depth--
			i += 2
			if depth == 0 {
				l.pos = i
				l.emit(CommentToken, begin, s[begin+2:i-2])
				return nil
			}
		default:
			i++
		}
	}
	return l.errorf(begin, "incomplete comment")
}

// uriLiteral reads Q{uri} and the local name that directly follows it, if any.
func (l *lexer) uriLiteral() error {
	begin := l.pos
	end := strings.IndexByte(l.xpath[begin+2:], '}')
	if end == -1 {
		return l.errorf(begin, "unmatched brace")
	}
	end += begin + 2
	l.pos = end + 1
	l.emit(URIToken, begin, strings.Trim(l.xpath[begin+2:end], " \t\r\n"))
	l.localName()
	return nil
}

// localName reads the name or wildcard following a prefix or uri literal.
func (l *lexer) localName() {
	begin := l.pos
	if l.pos < len(l.xpath) && l.xpath[l.pos] == '*' {
		l.pos++
		l.emit(WildcardToken, begin, "*")
		return
	}
	if end := nameEnd(l.xpath, l.pos); end > begin {
		l.pos = end
		l.emit(NameToken, begin, l.xpath[begin:end])
	}
}

func (l *lexer) names() error {
	begin := l.pos
	switch l.xpath[l.pos] {
	case '$':
		l.pos++
		l.emit(DollarToken, begin, "$")
		l.skipSpace()
		if l.hasPrefix("Q{") {
			return l.uriLiteral()
		}
		if nameEnd(l.xpath, l.pos) == l.pos {
			return l.errorf(l.pos, "unexpected character")
		}
		return l.qname(false)
	case '@':
		l.pos++
		l.emit(AxisToken, begin, Attribute.String())
		l.skipSpace()
		switch {
		case l.hasPrefix("Q{"):
			return l.uriLiteral()
		case l.hasPrefix("*") || nameEnd(l.xpath, l.pos) > l.pos:
			return l.qname(false)
		}
		return nil
	}
	return l.qname(true)
}

// qname reads a name or wildcard and decides from what follows whether
// it is an axis, a prefix or a name on its own.
func (l *lexer) qname(axisAllowed bool) error {
	s, begin := l.xpath, l.pos
	wildcard := s[begin] == '*'
	if wildcard {
		l.pos++
	} else {
		l.pos = nameEnd(s, begin)
	}
	name := s[begin:l.pos]

	if axisAllowed {
		if i := skipSpace(s, l.pos); strings.HasPrefix(s[i:], "::") {
			if _, ok := name2Axis[name]; !ok || wildcard {
				return l.errorf(begin, "unknown axis")
			}
			l.pos = i + 2
			l.emit(AxisToken, begin, name)
			return nil
		}
	}
	if l.hasPrefix(":") && !l.hasPrefix("::") && !l.hasPrefix(":=") {
		l.pos++
		if wildcard {
			l.emit(WildcardPrefixToken, begin, name)
		} else {
			l.emit(PrefixToken, begin, name)
		}
		if l.hasPrefix("Q{") {
			return l.uriLiteral()
		}
		l.localName()
		return nil
	}
	if wildcard {
		l.emit(WildcardToken, begin, name)
	} else {
		l.emit(NameToken, begin, name)
	}
	return nil
}

func (l *lexer) symbol() {
	begin := l.pos
	if l.pos+2 <= len(l.xpath) && twoCharOps[l.xpath[l.pos:l.pos+2]] {
		l.pos += 2
	} else {
		_, size := utf8.DecodeRuneInString(l.xpath[l.pos:])
		l.pos += size
	}
	l.emit(SymbolToken, begin, l.xpath[begin:l.pos])
}
