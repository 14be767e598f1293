// Copyright 2017 Santhosh Kumar Tekuri. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xpath31

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/rangetable"
)

// NameStartChar production of XML 1.0, without ':'.
var nameStartTable = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 'A', Hi: 'Z', Stride: 1},
		{Lo: '_', Hi: '_', Stride: 1},
		{Lo: 'a', Hi: 'z', Stride: 1},
		{Lo: 0xC0, Hi: 0xD6, Stride: 1},
		{Lo: 0xD8, Hi: 0xF6, Stride: 1},
		{Lo: 0xF8, Hi: 0x2FF, Stride: 1},
		{Lo: 0x370, Hi: 0x37D, Stride: 1},
		{Lo: 0x37F, Hi: 0x1FFF, Stride: 1},
		{Lo: 0x200C, Hi: 0x200D, Stride: 1},
		{Lo: 0x2070, Hi: 0x218F, Stride: 1},
		{Lo: 0x2C00, Hi: 0x2FEF, Stride: 1},
		{Lo: 0x3001, Hi: 0xD7FF, Stride: 1},
		{Lo: 0xF900, Hi: 0xFDCF, Stride: 1},
		{Lo: 0xFDF0, Hi: 0xFFFD, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x10000, Hi: 0xEFFFF, Stride: 1},
	},
	LatinOffset: 5,
}

// NameChar production of XML 1.0, without ':'.
var nameCharTable = rangetable.Merge(nameStartTable, &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: '-', Hi: '.', Stride: 1},
		{Lo: '0', Hi: '9', Stride: 1},
		{Lo: 0xB7, Hi: 0xB7, Stride: 1},
		{Lo: 0x300, Hi: 0x36F, Stride: 1},
		{Lo: 0x203F, Hi: 0x2040, Stride: 1},
	},
	LatinOffset: 3,
})

func isNameStart(r rune) bool {
	return unicode.Is(nameStartTable, r)
}

func isNameChar(r rune) bool {
	return unicode.Is(nameCharTable, r)
}

func isNCName(s string) bool {
	return s != "" && nameEnd(s, 0) == len(s)
}

// nameEnd returns the offset just past the NCName starting at i,
// or i if there is none.
func nameEnd(s string, i int) int {
	r, size := utf8.DecodeRuneInString(s[i:])
	if size == 0 || !isNameStart(r) {
		return i
	}
	i += size
	for i < len(s) {
		r, size = utf8.DecodeRuneInString(s[i:])
		if !isNameChar(r) {
			break
		}
		i += size
	}
	return i
}

type Axis int

const (
	Child Axis = iota
	Descendant
	Parent
	Ancestor
	FollowingSibling
	PrecedingSibling
	Following
	Preceding
	Attribute
	Namespace
	Self
	DescendantOrSelf
	AncestorOrSelf
)

var axisNames = []string{
	"child",
	"descendant",
	"parent",
	"ancestor",
	"following-sibling",
	"preceding-sibling",
	"following",
	"preceding",
	"attribute",
	"namespace",
	"self",
	"descendant-or-self",
	"ancestor-or-self",
}

func (a Axis) String() string {
	return axisNames[a]
}

var name2Axis = make(map[string]Axis)

func init() {
	for i, name := range axisNames {
		name2Axis[name] = Axis(i)
	}
}

// reserved function names, never parsed as function calls.
var reservedNames = map[string]bool{
	"array":                  true,
	"attribute":              true,
	"comment":                true,
	"document-node":          true,
	"element":                true,
	"empty-sequence":         true,
	"function":               true,
	"if":                     true,
	"item":                   true,
	"map":                    true,
	"namespace-node":         true,
	"node":                   true,
	"processing-instruction": true,
	"schema-attribute":       true,
	"schema-element":         true,
	"switch":                 true,
	"text":                   true,
	"typeswitch":             true,
}
