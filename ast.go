// Copyright 2017 Santhosh Kumar Tekuri. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xpath31

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// An Expr is a node of the expression model. Type returns the name of the
// grammar production the node was built from.
//
// String returns xpath text which parses back to an equal Expr.
// Composite expressions are always parenthesized.
type Expr interface {
	Type() string
	String() string
}

// QName is a name optionally qualified by a prefix or by a braced uri.
// At most one of Prefix and URI is set; HasURI distinguishes Q{}local from
// an unqualified local name. Local or Prefix may be "*".
type QName struct {
	Prefix string
	URI    string
	Local  string
	HasURI bool
}

func (n QName) String() string {
	switch {
	case n.HasURI:
		return fmt.Sprintf("Q{%s}%s", n.URI, n.Local)
	case n.Prefix != "":
		return n.Prefix + ":" + n.Local
	}
	return n.Local
}

type Op int

const (
	Or Op = iota
	And
	EQ
	NEQ
	LT
	LTE
	GT
	GTE
	ValueEQ
	ValueNE
	ValueLT
	ValueLE
	ValueGT
	ValueGE
	Is
	Precedes
	Follows
	Concat
	To
	Add
	Subtract
	Multiply
	Div
	IDiv
	Mod
	Union
	Intersect
	Except
	SimpleMap
)

var opNames = []string{
	"or", "and",
	"=", "!=", "<", "<=", ">", ">=",
	"eq", "ne", "lt", "le", "gt", "ge",
	"is", "<<", ">>",
	"||", "to",
	"+", "-",
	"*", "div", "idiv", "mod",
	"|", "intersect", "except",
	"!",
}

func (op Op) String() string {
	return opNames[op]
}

func (op Op) production() string {
	switch op {
	case Or:
		return "OrExpr"
	case And:
		return "AndExpr"
	case Concat:
		return "StringConcatExpr"
	case To:
		return "RangeExpr"
	case Add, Subtract:
		return "AdditiveExpr"
	case Multiply, Div, IDiv, Mod:
		return "MultiplicativeExpr"
	case Union:
		return "UnionExpr"
	case Intersect, Except:
		return "IntersectExceptExpr"
	case SimpleMap:
		return "SimpleMapExpr"
	}
	return "ComparisonExpr"
}

type Empty struct{}

func (Empty) Type() string   { return "Empty" }
func (Empty) String() string { return "()" }

type Numeric float64

func (Numeric) Type() string { return "Numeric" }

// String prints infinities as overflowing literals, so that the text
// parses back to the same value.
func (n Numeric) String() string {
	switch {
	case math.IsInf(float64(n), 1):
		return "1e999"
	case math.IsInf(float64(n), -1):
		return "(-1e999)"
	}
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

type String string

func (String) Type() string { return "String" }

func (s String) String() string {
	return `"` + strings.ReplaceAll(string(s), `"`, `""`) + `"`
}

// ContextItem is the "." expression.
type ContextItem struct{}

func (ContextItem) Type() string   { return "ContextItemExpr" }
func (ContextItem) String() string { return "." }

type VarRef struct {
	Name QName
}

func (*VarRef) Type() string { return "VarRef" }

func (vr *VarRef) String() string {
	return "$" + vr.Name.String()
}

type FunctionCall struct {
	Name QName
	Args *ArgumentList
}

func (*FunctionCall) Type() string { return "FunctionCall" }

func (fc *FunctionCall) String() string {
	return fc.Name.String() + fc.Args.String()
}

type ArgumentList struct {
	Args []Expr
}

func (*ArgumentList) Type() string { return "ArgumentList" }

func (al *ArgumentList) String() string {
	return "(" + join(al.Args, ", ") + ")"
}

// ArgumentPlaceholder is the "?" argument of a partial function application.
type ArgumentPlaceholder struct{}

func (ArgumentPlaceholder) Type() string   { return "ArgumentPlaceholder" }
func (ArgumentPlaceholder) String() string { return "?" }

// Seq is a comma separated list of two or more expressions.
type Seq struct {
	Items []Expr
}

func (*Seq) Type() string { return "Seq" }

func (s *Seq) String() string {
	return "(" + join(s.Items, ", ") + ")"
}

type BinaryExpr struct {
	LHS Expr
	Op  Op
	RHS Expr
}

func (b *BinaryExpr) Type() string { return b.Op.production() }

func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.LHS, b.Op, b.RHS)
}

// UnaryMinus negates Expr. Signs are folded while parsing:
// an even number of minus signs yields the operand itself.
type UnaryMinus struct {
	Expr Expr
}

func (*UnaryMinus) Type() string { return "Unary-" }

func (n *UnaryMinus) String() string {
	return fmt.Sprintf("(-%s)", n.Expr)
}

// ArrowExpr applies a function to Expr followed by Args.
// The function is either Name, or Func when it is a variable
// reference or a parenthesized expression.
type ArrowExpr struct {
	Expr Expr
	Name QName
	Func Expr
	Args *ArgumentList
}

func (*ArrowExpr) Type() string { return "ArrowExpr" }

func (a *ArrowExpr) String() string {
	fn := a.Name.String()
	if a.Func != nil {
		fn = a.Func.String()
		if _, ok := a.Func.(*VarRef); !ok {
			fn = "(" + fn + ")"
		}
	}
	return fmt.Sprintf("(%s => %s%s)", a.Expr, fn, a.Args)
}

type CastExpr struct {
	Expr Expr
	To   *SingleType
}

func (*CastExpr) Type() string { return "CastExpr" }

func (c *CastExpr) String() string {
	return fmt.Sprintf("(%s cast as %s)", c.Expr, c.To)
}

type CastableExpr struct {
	Expr Expr
	To   *SingleType
}

func (*CastableExpr) Type() string { return "CastableExpr" }

func (c *CastableExpr) String() string {
	return fmt.Sprintf("(%s castable as %s)", c.Expr, c.To)
}

type TreatExpr struct {
	Expr Expr
	As   *SequenceType
}

func (*TreatExpr) Type() string { return "TreatExpr" }

func (t *TreatExpr) String() string {
	return fmt.Sprintf("(%s treat as %s)", t.Expr, t.As)
}

type InstanceofExpr struct {
	Expr Expr
	Of   *SequenceType
}

func (*InstanceofExpr) Type() string { return "InstanceofExpr" }

func (i *InstanceofExpr) String() string {
	return fmt.Sprintf("(%s instance of %s)", i.Expr, i.Of)
}

// PathExpr holds steps and separators in source order: a leading
// separator marks an absolute path, and steps alternate with separators.
// The root path "/" has a single element.
type PathExpr struct {
	Elems []Expr
}

func (*PathExpr) Type() string { return "PathExpr" }

func (p *PathExpr) String() string {
	return "(" + join(p.Elems, "") + ")"
}

type Separator int

const (
	Slash Separator = iota
	SlashSlash
)

func (Separator) Type() string { return "PathSeparator" }

func (s Separator) String() string {
	if s == SlashSlash {
		return "//"
	}
	return "/"
}

type AxisStep struct {
	Axis       Axis
	Test       Expr // *NameTest or *KindTest
	Predicates []*Predicate
}

func (*AxisStep) Type() string { return "AxisStep" }

func (s *AxisStep) String() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "%s::%s", s.Axis, s.Test)
	for _, p := range s.Predicates {
		buf.WriteString(p.String())
	}
	return buf.String()
}

type NameTest struct {
	Name QName
}

func (*NameTest) Type() string { return "NameTest" }

func (nt *NameTest) String() string {
	return nt.Name.String()
}

type NodeKind int

const (
	AnyKind NodeKind = iota
	TextKind
	CommentKind
	NamespaceNodeKind
	DocumentKind
	ElementKind
	AttributeKind
	SchemaElementKind
	SchemaAttributeKind
	PIKind
)

var nodeKindNames = []string{
	"node",
	"text",
	"comment",
	"namespace-node",
	"document-node",
	"element",
	"attribute",
	"schema-element",
	"schema-attribute",
	"processing-instruction",
}

func (k NodeKind) String() string {
	return nodeKindNames[k]
}

var name2NodeKind = make(map[string]NodeKind)

func init() {
	for i, name := range nodeKindNames {
		name2NodeKind[name] = NodeKind(i)
	}
}

// KindTest matches nodes by kind. Name is set for element, attribute,
// schema-element, schema-attribute and processing-instruction tests that
// name one; TypeName and Nillable only for element and attribute tests.
// Document is the element test nested in document-node(..).
type KindTest struct {
	Kind     NodeKind
	Name     *QName
	TypeName *QName
	Nillable bool
	Document *KindTest
}

func (*KindTest) Type() string { return "KindTest" }

func (kt *KindTest) String() string {
	var args string
	switch {
	case kt.Document != nil:
		args = kt.Document.String()
	case kt.Name != nil:
		args = kt.Name.String()
		if kt.TypeName != nil {
			args += ", " + kt.TypeName.String()
			if kt.Nillable {
				args += "?"
			}
		}
	}
	return kt.Kind.String() + "(" + args + ")"
}

type Predicate struct {
	Expr Expr
}

func (*Predicate) Type() string { return "Predicate" }

func (p *Predicate) String() string {
	return fmt.Sprintf("[%s]", p.Expr)
}

// PostfixExpr is a primary expression followed by predicates and
// argument lists in any order.
type PostfixExpr struct {
	Expr     Expr
	Suffixes []Expr // *Predicate or *ArgumentList
}

func (*PostfixExpr) Type() string { return "PostfixExpr" }

func (p *PostfixExpr) String() string {
	switch p.Expr.(type) {
	case *AxisStep, *PostfixExpr:
		return "(" + p.Expr.String() + ")" + join(p.Suffixes, "")
	}
	return p.Expr.String() + join(p.Suffixes, "")
}

type Binding struct {
	Var  QName
	Expr Expr
}

type ForExpr struct {
	Bindings []Binding
	Return   Expr
}

func (*ForExpr) Type() string { return "ForExpr" }

func (f *ForExpr) String() string {
	return fmt.Sprintf("(for %s return %s)", bindingsString(f.Bindings, " in "), f.Return)
}

type LetExpr struct {
	Bindings []Binding
	Return   Expr
}

func (*LetExpr) Type() string { return "LetExpr" }

func (l *LetExpr) String() string {
	return fmt.Sprintf("(let %s return %s)", bindingsString(l.Bindings, " := "), l.Return)
}

// QuantifiedExpr is a some or every expression.
type QuantifiedExpr struct {
	Every     bool
	Bindings  []Binding
	Satisfies Expr
}

func (*QuantifiedExpr) Type() string { return "QuantifiedExpr" }

func (q *QuantifiedExpr) String() string {
	quantifier := "some"
	if q.Every {
		quantifier = "every"
	}
	return fmt.Sprintf("(%s %s satisfies %s)", quantifier, bindingsString(q.Bindings, " in "), q.Satisfies)
}

type IfExpr struct {
	Cond Expr
	Then Expr
	Else Expr
}

func (*IfExpr) Type() string { return "IfExpr" }

func (e *IfExpr) String() string {
	return fmt.Sprintf("(if (%s) then %s else %s)", e.Cond, e.Then, e.Else)
}

// SingleType is the target type of cast and castable.
type SingleType struct {
	Name     QName
	Optional bool
}

func (*SingleType) Type() string { return "SingleType" }

func (st *SingleType) String() string {
	if st.Optional {
		return st.Name.String() + "?"
	}
	return st.Name.String()
}

type Occurrence int

const (
	ExactlyOne Occurrence = iota
	ZeroOrOne
	ZeroOrMore
	OneOrMore
)

var occurrenceIndicators = []string{"", "?", "*", "+"}

func (o Occurrence) String() string {
	return occurrenceIndicators[o]
}

// SequenceType is the type operand of treat and instance of.
// Item is nil for empty-sequence().
type SequenceType struct {
	Item       Expr // *KindTest, ItemTest, *AtomicType or *TypeTest
	Occurrence Occurrence
}

func (*SequenceType) Type() string { return "SequenceType" }

func (st *SequenceType) String() string {
	if st.Item == nil {
		return "empty-sequence()"
	}
	return st.Item.String() + st.Occurrence.String()
}

type AtomicType struct {
	Name QName
}

func (*AtomicType) Type() string { return "AtomicType" }

func (at *AtomicType) String() string {
	return at.Name.String()
}

// ItemTest is item().
type ItemTest struct{}

func (ItemTest) Type() string   { return "ItemTest" }
func (ItemTest) String() string { return "item()" }

// TypeTest is one of function(*), map(*) or array(*).
type TypeTest struct {
	Name string
}

func (*TypeTest) Type() string { return "TypeTest" }

func (tt *TypeTest) String() string {
	return tt.Name + "(*)"
}

func join[E Expr](exprs []E, sep string) string {
	s := make([]string, len(exprs))
	for i, e := range exprs {
		s[i] = e.String()
	}
	return strings.Join(s, sep)
}

func bindingsString(bindings []Binding, sep string) string {
	s := make([]string, len(bindings))
	for i, b := range bindings {
		s[i] = "$" + b.Var.String() + sep + b.Expr.String()
	}
	return strings.Join(s, ", ")
}
