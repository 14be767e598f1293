// Copyright 2017 Santhosh Kumar Tekuri. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package eval evaluates the literal subset of the xpath31 expression model.
//
// Only empty sequences, string and numeric literals, comma sequences,
// negation, variable references and the context item are supported.
// Any other expression yields an error wrapping ErrNotImplemented.
package eval

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/xpath31"
)

var ErrNotImplemented = errors.New("not yet implemented")

// ErrSequence is returned when a sequence of more than one item is used
// where a single item is required.
var ErrSequence = errors.New("a sequence with more than one item is not allowed here")

// An Item is a string or a float64.
type Item interface{}

type Sequence []Item

func (s Sequence) String() string {
	items := make([]string, len(s))
	for i, item := range s {
		switch item := item.(type) {
		case string:
			items[i] = strconv.Quote(item)
		case float64:
			items[i] = strconv.FormatFloat(item, 'g', -1, 64)
		default:
			items[i] = fmt.Sprint(item)
		}
	}
	return "(" + strings.Join(items, ", ") + ")"
}

// Context holds variable values and the context item. A nil *Context
// is an empty context.
type Context struct {
	Vars map[string]Sequence
	Item Sequence
}

// Evaluate evaluates expr against ctx.
func Evaluate(expr xpath31.Expr, ctx *Context) (Sequence, error) {
	if ctx == nil {
		ctx = &Context{}
	}
	switch e := expr.(type) {
	case xpath31.Empty:
		return Sequence{}, nil
	case xpath31.String:
		return Sequence{string(e)}, nil
	case xpath31.Numeric:
		return Sequence{float64(e)}, nil
	case xpath31.ContextItem:
		if ctx.Item == nil {
			return nil, errors.New("context item is absent")
		}
		return ctx.Item, nil
	case *xpath31.VarRef:
		v, ok := ctx.Vars[e.Name.String()]
		if !ok {
			return nil, fmt.Errorf("variable $%s is not bound", e.Name)
		}
		return v, nil
	case *xpath31.Seq:
		var result Sequence
		for _, item := range e.Items {
			s, err := Evaluate(item, ctx)
			if err != nil {
				return nil, err
			}
			result = append(result, s...)
		}
		return result, nil
	case *xpath31.UnaryMinus:
		s, err := Evaluate(e.Expr, ctx)
		if err != nil {
			return nil, err
		}
		switch len(s) {
		case 0:
			return s, nil
		case 1:
			f, ok := s[0].(float64)
			if !ok {
				return nil, fmt.Errorf("cannot negate %T", s[0])
			}
			return Sequence{-f}, nil
		}
		return nil, ErrSequence
	}
	return nil, fmt.Errorf("%w: %s", ErrNotImplemented, expr.Type())
}

// Eval parses xpath and evaluates it against ctx.
func Eval(xpath string, ctx *Context) (Sequence, error) {
	expr, err := xpath31.Parse(xpath)
	if err != nil {
		return nil, err
	}
	return Evaluate(expr, ctx)
}
