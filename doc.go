// Copyright 2017 Santhosh Kumar Tekuri. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package xpath31 provides lexer and parser for XPath 3.1.

This Package parses given XPath expression to expression model.
It does not evaluate expressions, resolve namespace prefixes or
check types; names are carried as written.

	expr, err := xpath31.Parse("(/a/b)[5] ! string()")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(expr.Type(), expr)

Tokenize exposes the lexer on its own:

	tokens, err := xpath31.Tokenize("descendant-or-self::x")

Errors are *LexError or *ParseError, and carry the byte offset of the
offending token.
*/
package xpath31
