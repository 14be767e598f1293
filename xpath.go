// Copyright 2017 Santhosh Kumar Tekuri. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xpath31

import (
	"fmt"
	"runtime"
)

// LexError is returned when xpath contains a malformed token.
// Offset is a byte offset into XPath, not a character count; use
// utf8.RuneCountInString(XPath[:Offset]) for the character position.
type LexError struct {
	Msg    string
	XPath  string
	Offset int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s in xpath %s at offset %d", e.Msg, e.XPath, e.Offset)
}

// ParseError is returned when the tokens of xpath do not match the grammar.
// Offset is the byte offset of the offending token, as in LexError.
type ParseError struct {
	Msg    string
	XPath  string
	Offset int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s in xpath %s at offset %d", e.Msg, e.XPath, e.Offset)
}

// MustParse is like Parse but panics if the xpath cannot be parsed.
func MustParse(xpath string) Expr {
	expr, err := Parse(xpath)
	if err != nil {
		panic(err)
	}
	return expr
}

// Parse parses given xpath into expression model.
// The returned error is either *LexError or *ParseError.
func Parse(xpath string) (expr Expr, err error) {
	tokens, err := Tokenize(xpath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(runtime.Error); ok {
				panic(r)
			}
			expr, err = nil, r.(*ParseError)
		}
	}()
	p := newParser(xpath, tokens)
	return p.parse(), nil
}
