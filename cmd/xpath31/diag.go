// Copyright 2017 Santhosh Kumar Tekuri. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/santhosh-tekuri/xpath31"
)

var (
	errorColor = color.New(color.FgRed, color.Bold)
	caretColor = color.New(color.FgGreen, color.Bold)
)

// reportError writes err to w. Lex and parse errors are shown with the
// offending line of the xpath and a caret under the error offset.
func reportError(w io.Writer, err error) {
	var (
		msg, xpath string
		offset     int
	)
	var lexErr *xpath31.LexError
	var parseErr *xpath31.ParseError
	switch {
	case errors.As(err, &lexErr):
		msg, xpath, offset = lexErr.Msg, lexErr.XPath, lexErr.Offset
	case errors.As(err, &parseErr):
		msg, xpath, offset = parseErr.Msg, parseErr.XPath, parseErr.Offset
	default:
		errorColor.Fprint(w, "error:")
		fmt.Fprintf(w, " %v\n", err)
		return
	}

	begin := strings.LastIndexByte(xpath[:offset], '\n') + 1
	end := strings.IndexByte(xpath[offset:], '\n')
	if end == -1 {
		end = len(xpath)
	} else {
		end += offset
	}
	line := strings.Count(xpath[:begin], "\n") + 1
	column := utf8.RuneCountInString(xpath[begin:offset])

	errorColor.Fprint(w, "error:")
	fmt.Fprintf(w, " %s at %d:%d\n", msg, line, column+1)
	fmt.Fprintf(w, "  %s\n", xpath[begin:end])
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", column), caretColor.Sprint("^"))
}
