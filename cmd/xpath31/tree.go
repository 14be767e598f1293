// Copyright 2017 Santhosh Kumar Tekuri. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/santhosh-tekuri/xpath31"
)

// node is the serializable form of an xpath31.Expr.
type node struct {
	Type     string      `json:"type" yaml:"type"`
	Value    interface{} `json:"value,omitempty" yaml:"value,omitempty"`
	Children []*node     `json:"children,omitempty" yaml:"children,omitempty"`
}

func leaf(e xpath31.Expr, value interface{}) *node {
	return &node{Type: e.Type(), Value: value}
}

func branch(e xpath31.Expr, value interface{}, children ...xpath31.Expr) *node {
	n := leaf(e, value)
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, tree(c))
		}
	}
	return n
}

func tree(e xpath31.Expr) *node {
	switch e := e.(type) {
	case xpath31.Empty, xpath31.ContextItem, xpath31.ArgumentPlaceholder, xpath31.ItemTest:
		return leaf(e, nil)
	case xpath31.Numeric:
		if math.IsInf(float64(e), 0) {
			return leaf(e, e.String())
		}
		return leaf(e, float64(e))
	case xpath31.String:
		return leaf(e, string(e))
	case xpath31.Separator:
		return leaf(e, e.String())
	case *xpath31.VarRef:
		return leaf(e, e.Name.String())
	case *xpath31.NameTest:
		return leaf(e, e.Name.String())
	case *xpath31.KindTest, *xpath31.SingleType, *xpath31.AtomicType, *xpath31.TypeTest:
		return leaf(e, e.String())
	case *xpath31.FunctionCall:
		return branch(e, e.Name.String(), e.Args)
	case *xpath31.ArgumentList:
		return branch(e, nil, e.Args...)
	case *xpath31.Seq:
		return branch(e, nil, e.Items...)
	case *xpath31.PathExpr:
		return branch(e, nil, e.Elems...)
	case *xpath31.BinaryExpr:
		return branch(e, e.Op.String(), e.LHS, e.RHS)
	case *xpath31.UnaryMinus:
		return branch(e, nil, e.Expr)
	case *xpath31.ArrowExpr:
		if e.Func != nil {
			return branch(e, nil, e.Expr, e.Func, e.Args)
		}
		return branch(e, e.Name.String(), e.Expr, e.Args)
	case *xpath31.CastExpr:
		return branch(e, nil, e.Expr, e.To)
	case *xpath31.CastableExpr:
		return branch(e, nil, e.Expr, e.To)
	case *xpath31.TreatExpr:
		return branch(e, nil, e.Expr, e.As)
	case *xpath31.InstanceofExpr:
		return branch(e, nil, e.Expr, e.Of)
	case *xpath31.SequenceType:
		if e.Item == nil {
			return leaf(e, e.String())
		}
		return branch(e, e.Occurrence.String(), e.Item)
	case *xpath31.AxisStep:
		n := branch(e, e.Axis.String(), e.Test)
		for _, p := range e.Predicates {
			n.Children = append(n.Children, tree(p))
		}
		return n
	case *xpath31.Predicate:
		return branch(e, nil, e.Expr)
	case *xpath31.PostfixExpr:
		return branch(e, nil, append([]xpath31.Expr{e.Expr}, e.Suffixes...)...)
	case *xpath31.ForExpr:
		return bindingsTree(e, nil, e.Bindings, e.Return)
	case *xpath31.LetExpr:
		return bindingsTree(e, nil, e.Bindings, e.Return)
	case *xpath31.QuantifiedExpr:
		quantifier := "some"
		if e.Every {
			quantifier = "every"
		}
		return bindingsTree(e, quantifier, e.Bindings, e.Satisfies)
	case *xpath31.IfExpr:
		return branch(e, nil, e.Cond, e.Then, e.Else)
	}
	return leaf(e, e.String())
}

func bindingsTree(e xpath31.Expr, value interface{}, bindings []xpath31.Binding, body xpath31.Expr) *node {
	n := leaf(e, value)
	for _, b := range bindings {
		n.Children = append(n.Children, &node{
			Type:     "Binding",
			Value:    "$" + b.Var.String(),
			Children: []*node{tree(b.Expr)},
		})
	}
	n.Children = append(n.Children, tree(body))
	return n
}

// write prints the tree with one node per line, children indented.
func (n *node) write(w io.Writer, depth int) error {
	line := strings.Repeat("  ", depth) + n.Type
	switch v := n.Value.(type) {
	case nil:
	case string:
		line += fmt.Sprintf(" %q", v)
	default:
		line += fmt.Sprintf(" %v", v)
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := c.write(w, depth+1); err != nil {
			return err
		}
	}
	return nil
}
