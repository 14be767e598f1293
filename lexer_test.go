// Copyright 2017 Santhosh Kumar Tekuri. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xpath31_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/santhosh-tekuri/xpath31"
)

func kinds(tokens []Token) []Kind {
	k := make([]Kind, len(tokens))
	for i, t := range tokens {
		k[i] = t.Kind
	}
	return k
}

func tokenize(t *testing.T, xpath string) []Token {
	t.Helper()
	tokens, err := Tokenize(xpath)
	require.NoError(t, err, xpath)
	require.NotEmpty(t, tokens)
	require.Equal(t, EOFToken, tokens[len(tokens)-1].Kind, "last token of %s", xpath)
	return tokens
}

func lexError(t *testing.T, xpath string) *LexError {
	t.Helper()
	_, err := Tokenize(xpath)
	var lexErr *LexError
	require.True(t, errors.As(err, &lexErr), "LexError expected for %s, got %v", xpath, err)
	return lexErr
}

func TestTokenizeEmpty(t *testing.T) {
	for _, xpath := range []string{"", " \t\r\n "} {
		tokens := tokenize(t, xpath)
		assert.Len(t, tokens, 1)
		assert.Equal(t, len(xpath), tokens[0].Offset)
	}
}

func TestTokenizeQuoted(t *testing.T) {
	tests := map[string]string{
		`'quoted with "''"'`: `quoted with "'"`,
		`"quoted with '""'"`: `quoted with '"'`,
		`'it''s'`:            `it's`,
		`""`:                 ``,
		`"español"`:          `español`,
	}
	for xpath, want := range tests {
		tokens := tokenize(t, xpath)
		require.Len(t, tokens, 2, xpath)
		assert.Equal(t, StringToken, tokens[0].Kind)
		assert.Equal(t, want, tokens[0].Value)
		assert.Equal(t, xpath, tokens[0].Text)
	}

	err := lexError(t, `a = "...`)
	assert.Equal(t, "unmatched quote", err.Msg)
	assert.Equal(t, 4, err.Offset)
	assert.Equal(t, "unmatched quote", lexError(t, `'it''`).Msg)
}

func TestTokenizeNumber(t *testing.T) {
	tests := map[string]float64{
		`.55`:   .55,
		`3.14`:  3.14,
		`1.e4`:  1e4,
		`1E-10`: 1e-10,
		`2e+3`:  2000,
		`01.5`:  1.5,
		`7.`:    7,
	}
	for xpath, want := range tests {
		tokens := tokenize(t, xpath)
		require.Len(t, tokens, 2, xpath)
		assert.Equal(t, NumberToken, tokens[0].Kind, xpath)
		assert.Equal(t, want, tokens[0].Number, xpath)
	}

	tokens := tokenize(t, `-55`)
	assert.Equal(t, []Kind{SymbolToken, NumberToken, EOFToken}, kinds(tokens))
	assert.Equal(t, float64(55), tokens[1].Number)

	tokens = tokenize(t, `1.2.3`)
	assert.Equal(t, []Kind{NumberToken, NumberToken, EOFToken}, kinds(tokens))
	assert.Equal(t, .3, tokens[1].Number)

	for _, xpath := range []string{`1e-`, `1e`, `2.5E+`} {
		err := lexError(t, xpath)
		assert.Equal(t, "syntax error", err.Msg)
		assert.Equal(t, 0, err.Offset)
	}
}

func TestTokenizeComment(t *testing.T) {
	for _, xpath := range []string{`(::)`, `(:(:():):)`, `(: a :: b :)`} {
		tokens := tokenize(t, xpath)
		require.Len(t, tokens, 2, xpath)
		assert.Equal(t, CommentToken, tokens[0].Kind)
		assert.Equal(t, xpath, tokens[0].Text)
	}
	for _, xpath := range []string{`(:)`, `(:(::)`, `1 (: one`} {
		assert.Equal(t, "incomplete comment", lexError(t, xpath).Msg)
	}
}

func TestTokenizeBracedURI(t *testing.T) {
	tokens := tokenize(t, `Q{ }`)
	require.Len(t, tokens, 2)
	assert.Equal(t, URIToken, tokens[0].Kind)
	assert.Equal(t, "", tokens[0].Value)

	tokens = tokenize(t, `Q{ http:// }`)
	require.Len(t, tokens, 2)
	assert.Equal(t, "http://", tokens[0].Value)

	tokens = tokenize(t, `Q{http://x.org}local`)
	assert.Equal(t, []Kind{URIToken, NameToken, EOFToken}, kinds(tokens))
	assert.Equal(t, "local", tokens[1].Value)

	tokens = tokenize(t, `Q{http://x.org}*`)
	assert.Equal(t, []Kind{URIToken, WildcardToken, EOFToken}, kinds(tokens))

	err := lexError(t, `Q{ `)
	assert.Equal(t, "unmatched brace", err.Msg)
	assert.Equal(t, 0, err.Offset)
}

func TestTokenizeName(t *testing.T) {
	for _, name := range []string{`AB_YZ`, `ab8yz`, `español`, `中文`, `ខ្មែរ`, `upper-case`, `a.b`} {
		tokens := tokenize(t, name)
		require.Len(t, tokens, 2, name)
		assert.Equal(t, NameToken, tokens[0].Kind, name)
		assert.Equal(t, name, tokens[0].Value)
	}
}

func TestTokenizeAxis(t *testing.T) {
	tokens := tokenize(t, `descendant-or-self::x`)
	assert.Equal(t, []Kind{AxisToken, NameToken, EOFToken}, kinds(tokens))
	assert.Equal(t, "descendant-or-self", tokens[0].Value)
	assert.Equal(t, "x", tokens[1].Value)

	tokens = tokenize(t, `child :: x`)
	assert.Equal(t, []Kind{AxisToken, NameToken, EOFToken}, kinds(tokens))
	assert.Equal(t, "child", tokens[0].Value)

	tokens = tokenize(t, `@id`)
	assert.Equal(t, []Kind{AxisToken, NameToken, EOFToken}, kinds(tokens))
	assert.Equal(t, "attribute", tokens[0].Value)

	tokens = tokenize(t, `child::`)
	assert.Equal(t, []Kind{AxisToken, EOFToken}, kinds(tokens))

	for _, xpath := range []string{`*::`, `hero::*`, `a/sibling::b`} {
		assert.Equal(t, "unknown axis", lexError(t, xpath).Msg, xpath)
	}
	assert.Equal(t, 2, lexError(t, `a/sibling::b`).Offset)
}

func TestTokenizePrefix(t *testing.T) {
	tests := map[string][]Kind{
		`x:*`:     {PrefixToken, WildcardToken, EOFToken},
		`*:x`:     {WildcardPrefixToken, NameToken, EOFToken},
		`*:*`:     {WildcardPrefixToken, WildcardToken, EOFToken},
		`ns:emp`:  {PrefixToken, NameToken, EOFToken},
		`*`:       {WildcardToken, EOFToken},
		`a:`:      {PrefixToken, EOFToken},
		`$v`:      {DollarToken, NameToken, EOFToken},
		`$ns:v`:   {DollarToken, PrefixToken, NameToken, EOFToken},
		`$x:=1`:   {DollarToken, NameToken, SymbolToken, NumberToken, EOFToken},
		`@*`:      {AxisToken, WildcardToken, EOFToken},
		`@ns:*`:   {AxisToken, PrefixToken, WildcardToken, EOFToken},
		`2*3`:     {NumberToken, WildcardToken, NumberToken, EOFToken},
		`$Q{u}v`:  {DollarToken, URIToken, NameToken, EOFToken},
		`fn:f(1)`: {PrefixToken, NameToken, SymbolToken, NumberToken, SymbolToken, EOFToken},
	}
	for xpath, want := range tests {
		assert.Equal(t, want, kinds(tokenize(t, xpath)), xpath)
	}

	tokens := tokenize(t, `*:x`)
	assert.Equal(t, "*:", tokens[0].Text)
	tokens = tokenize(t, `x:*`)
	assert.Equal(t, "x", tokens[0].Value)
	assert.Equal(t, "x:", tokens[0].Text)

	for _, xpath := range []string{`$*`, `$`, `$$`, `$ 1`} {
		err := lexError(t, xpath)
		assert.Equal(t, "unexpected character", err.Msg, xpath)
	}
	assert.Equal(t, 1, lexError(t, `$*`).Offset)
}

func TestTokenizeSymbols(t *testing.T) {
	ops := []string{`//`, `..`, `||`, `<<`, `>>`, `<=`, `>=`, `!=`, `=>`, `:=`}
	for _, op := range ops {
		tokens := tokenize(t, op)
		require.Len(t, tokens, 2, op)
		assert.Equal(t, SymbolToken, tokens[0].Kind)
		assert.Equal(t, op, tokens[0].Value)
	}
	for _, sym := range []string{`?`, `/`, `.`, `!`, `|`, `;`, `^`, `#`, `§`} {
		tokens := tokenize(t, sym)
		require.Len(t, tokens, 2, sym)
		assert.Equal(t, SymbolToken, tokens[0].Kind)
		assert.Equal(t, sym, tokens[0].Value)
	}
}

func TestTokenOffsets(t *testing.T) {
	tokens := tokenize(t, `a  +  'b' (:c:) //d`)
	var offsets []int
	for _, tok := range tokens {
		offsets = append(offsets, tok.Offset)
	}
	assert.Equal(t, []int{0, 3, 6, 10, 16, 18, 19}, offsets)
	assert.Equal(t, []Kind{NameToken, SymbolToken, StringToken, CommentToken, SymbolToken, NameToken, EOFToken}, kinds(tokens))
}

func TestTokenizeIdempotent(t *testing.T) {
	for _, xpath := range []string{`'it''s' "x" 3.14 .5 1E-10 Q{ u } ns:a *:b @c (: c :)`} {
		for _, tok := range tokenize(t, xpath) {
			if tok.Kind == EOFToken {
				continue
			}
			again := tokenize(t, tok.Text)
			tok.Offset = 0
			assert.Equal(t, tok, again[0], tok.Text)
		}
	}
}
