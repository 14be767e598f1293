// Copyright 2017 Santhosh Kumar Tekuri. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xpath31

import (
	"fmt"
	"strings"
)

// Grammar rules return nil when they do not match, so that the caller can
// try the next alternative. Once a rule has consumed a keyword or operator,
// any further mismatch panics with *ParseError.
type parser struct {
	xpath  string
	tokens []Token
	pos    int
}

func newParser(xpath string, tokens []Token) *parser {
	p := &parser{xpath: xpath, tokens: make([]Token, 0, len(tokens))}
	for _, t := range tokens {
		if t.Kind != CommentToken {
			p.tokens = append(p.tokens, t)
		}
	}
	return p
}

func (p *parser) errorf(t Token, format string, args ...interface{}) {
	panic(&ParseError{fmt.Sprintf(format, args...), p.xpath, t.Offset})
}

func (p *parser) unexpectedToken() {
	t := p.token(0)
	if t.Kind == EOFToken {
		p.errorf(t, "unexpected end of input")
	}
	p.errorf(t, "unexpected token %q", t.Text)
}

// token returns i-th token from current position. It never reads past eof.
func (p *parser) token(i int) Token {
	if p.pos+i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+i]
}

func (p *parser) next() Token {
	t := p.token(0)
	if t.Kind != EOFToken {
		p.pos++
	}
	return t
}

func (p *parser) isSymbol(i int, sym string) bool {
	t := p.token(i)
	return t.Kind == SymbolToken && t.Value == sym
}

// isKeyword reports whether i-th token is an unqualified name spelled kw.
func (p *parser) isKeyword(i int, kw string) bool {
	t := p.token(i)
	return t.Kind == NameToken && t.Value == kw
}

func (p *parser) match(sym string) Token {
	t := p.token(0)
	if t.Kind != SymbolToken || t.Value != sym {
		p.errorf(t, "expected %q, but got %v", sym, t)
	}
	return p.next()
}

func (p *parser) matchKeyword(kw string) Token {
	if !p.isKeyword(0, kw) {
		p.errorf(p.token(0), "expected %q, but got %v", kw, p.token(0))
	}
	return p.next()
}

// required panics if a mandatory operand is missing.
func (p *parser) required(e Expr) Expr {
	if e == nil {
		p.unexpectedToken()
	}
	return e
}

func (p *parser) parse() Expr {
	if p.token(0).Kind == EOFToken {
		return Empty{}
	}
	e := p.required(p.expr())
	if p.token(0).Kind != EOFToken {
		p.unexpectedToken()
	}
	return e
}

func (p *parser) expr() Expr {
	e := p.exprSingle()
	if e == nil || !p.isSymbol(0, ",") {
		return e
	}
	seq := &Seq{[]Expr{e}}
	for p.isSymbol(0, ",") {
		p.next()
		seq.Items = append(seq.Items, p.required(p.exprSingle()))
	}
	return seq
}

func (p *parser) exprSingle() Expr {
	switch {
	case p.isKeyword(0, "for") && p.token(1).Kind == DollarToken:
		return p.forExpr()
	case p.isKeyword(0, "let") && p.token(1).Kind == DollarToken:
		return p.letExpr()
	case (p.isKeyword(0, "some") || p.isKeyword(0, "every")) && p.token(1).Kind == DollarToken:
		return p.quantifiedExpr()
	case p.isKeyword(0, "if") && p.isSymbol(1, "("):
		return p.ifExpr()
	}
	return p.orExpr()
}

func (p *parser) bindings(sep string, keyword bool) []Binding {
	var bindings []Binding
	for {
		if t := p.token(0); t.Kind != DollarToken {
			p.errorf(t, "expected %q, but got %v", "$", t)
		}
		p.next()
		name, ok := p.eqName()
		if !ok {
			p.errorf(p.token(0), "expected variable name, but got %v", p.token(0))
		}
		if keyword {
			p.matchKeyword(sep)
		} else {
			p.match(sep)
		}
		bindings = append(bindings, Binding{name, p.required(p.exprSingle())})
		if !p.isSymbol(0, ",") {
			return bindings
		}
		p.next()
	}
}

func (p *parser) forExpr() Expr {
	p.matchKeyword("for")
	bindings := p.bindings("in", true)
	p.matchKeyword("return")
	return &ForExpr{bindings, p.required(p.exprSingle())}
}

func (p *parser) letExpr() Expr {
	p.matchKeyword("let")
	bindings := p.bindings(":=", false)
	p.matchKeyword("return")
	return &LetExpr{bindings, p.required(p.exprSingle())}
}

func (p *parser) quantifiedExpr() Expr {
	every := p.next().Value == "every"
	bindings := p.bindings("in", true)
	p.matchKeyword("satisfies")
	return &QuantifiedExpr{every, bindings, p.required(p.exprSingle())}
}

func (p *parser) ifExpr() Expr {
	p.matchKeyword("if")
	p.match("(")
	cond := p.required(p.expr())
	p.match(")")
	p.matchKeyword("then")
	then := p.required(p.exprSingle())
	p.matchKeyword("else")
	return &IfExpr{cond, then, p.required(p.exprSingle())}
}

// operator tables, keyed by token value.
var (
	orOps              = map[string]Op{"or": Or}
	andOps             = map[string]Op{"and": And}
	concatOps          = map[string]Op{"||": Concat}
	rangeOps           = map[string]Op{"to": To}
	additiveOps        = map[string]Op{"+": Add, "-": Subtract}
	multiplicativeOps  = map[string]Op{"*": Multiply, "div": Div, "idiv": IDiv, "mod": Mod}
	unionOps           = map[string]Op{"|": Union, "union": Union}
	intersectExceptOps = map[string]Op{"intersect": Intersect, "except": Except}
	simpleMapOps       = map[string]Op{"!": SimpleMap}
	comparisonOps      = map[string]Op{
		"=": EQ, "!=": NEQ, "<": LT, "<=": LTE, ">": GT, ">=": GTE,
		"eq": ValueEQ, "ne": ValueNE, "lt": ValueLT, "le": ValueLE, "gt": ValueGT, "ge": ValueGE,
		"is": Is, "<<": Precedes, ">>": Follows,
	}
)

func (p *parser) operator(ops map[string]Op) (Op, bool) {
	t := p.token(0)
	switch t.Kind {
	case SymbolToken, NameToken, WildcardToken:
		op, ok := ops[t.Value]
		return op, ok
	}
	return 0, false
}

// binary folds operands of one precedence level left-associatively.
func (p *parser) binary(operand func() Expr, ops map[string]Op) Expr {
	lhs := operand()
	if lhs == nil {
		return nil
	}
	for {
		op, ok := p.operator(ops)
		if !ok {
			return lhs
		}
		p.next()
		lhs = &BinaryExpr{lhs, op, p.required(operand())}
	}
}

// nonChainable allows at most one operator of its level.
func (p *parser) nonChainable(operand func() Expr, ops map[string]Op) Expr {
	lhs := operand()
	if lhs == nil {
		return nil
	}
	op, ok := p.operator(ops)
	if !ok {
		return lhs
	}
	p.next()
	e := &BinaryExpr{lhs, op, p.required(operand())}
	if _, ok := p.operator(ops); ok {
		p.errorf(p.token(0), "%s operator cannot be chained", strings.TrimSuffix(op.production(), "Expr"))
	}
	return e
}

func (p *parser) orExpr() Expr {
	return p.binary(p.andExpr, orOps)
}

func (p *parser) andExpr() Expr {
	return p.binary(p.comparisonExpr, andOps)
}

func (p *parser) comparisonExpr() Expr {
	return p.nonChainable(p.stringConcatExpr, comparisonOps)
}

func (p *parser) stringConcatExpr() Expr {
	return p.binary(p.rangeExpr, concatOps)
}

func (p *parser) rangeExpr() Expr {
	return p.nonChainable(p.additiveExpr, rangeOps)
}

func (p *parser) additiveExpr() Expr {
	return p.binary(p.multiplicativeExpr, additiveOps)
}

func (p *parser) multiplicativeExpr() Expr {
	return p.binary(p.unionExpr, multiplicativeOps)
}

func (p *parser) unionExpr() Expr {
	return p.binary(p.intersectExceptExpr, unionOps)
}

func (p *parser) intersectExceptExpr() Expr {
	return p.binary(p.instanceofExpr, intersectExceptOps)
}

func (p *parser) instanceofExpr() Expr {
	e := p.treatExpr()
	if e == nil || !p.isKeyword(0, "instance") {
		return e
	}
	p.next()
	p.matchKeyword("of")
	return &InstanceofExpr{e, p.sequenceType()}
}

func (p *parser) treatExpr() Expr {
	e := p.castableExpr()
	if e == nil || !p.isKeyword(0, "treat") {
		return e
	}
	p.next()
	p.matchKeyword("as")
	return &TreatExpr{e, p.sequenceType()}
}

func (p *parser) castableExpr() Expr {
	e := p.castExpr()
	if e == nil || !p.isKeyword(0, "castable") {
		return e
	}
	p.next()
	p.matchKeyword("as")
	return &CastableExpr{e, p.singleType()}
}

func (p *parser) castExpr() Expr {
	e := p.arrowExpr()
	if e == nil || !p.isKeyword(0, "cast") {
		return e
	}
	p.next()
	p.matchKeyword("as")
	return &CastExpr{e, p.singleType()}
}

func (p *parser) arrowExpr() Expr {
	e := p.unaryExpr()
	if e == nil {
		return nil
	}
	for p.isSymbol(0, "=>") {
		p.next()
		arrow := &ArrowExpr{Expr: e}
		switch t := p.token(0); {
		case t.Kind == DollarToken:
			arrow.Func = p.varRef()
		case p.isSymbol(0, "("):
			arrow.Func = p.parenthesizedExpr()
		default:
			name, ok := p.eqName()
			if !ok {
				p.unexpectedToken()
			}
			arrow.Name = name
		}
		arrow.Args = p.argumentList()
		e = arrow
	}
	return e
}

func (p *parser) unaryExpr() Expr {
	signs, negative := 0, false
	for p.isSymbol(0, "-") || p.isSymbol(0, "+") {
		if p.next().Value == "-" {
			negative = !negative
		}
		signs++
	}
	e := p.simpleMapExpr()
	if e == nil {
		if signs > 0 {
			p.unexpectedToken()
		}
		return nil
	}
	if negative {
		return &UnaryMinus{e}
	}
	return e
}

func (p *parser) simpleMapExpr() Expr {
	return p.binary(p.pathExpr, simpleMapOps)
}

func (p *parser) separator() (Separator, bool) {
	switch {
	case p.isSymbol(0, "/"):
		return Slash, true
	case p.isSymbol(0, "//"):
		return SlashSlash, true
	}
	return 0, false
}

func (p *parser) pathExpr() Expr {
	var elems []Expr
	if sep, ok := p.separator(); ok {
		p.next()
		elems = append(elems, sep)
		step := p.stepExpr()
		if step == nil {
			if sep == SlashSlash {
				p.errorf(p.token(0), "path cannot end with %q", sep.String())
			}
			return &PathExpr{elems}
		}
		elems = append(elems, step)
	} else {
		step := p.stepExpr()
		if step == nil {
			return nil
		}
		elems = append(elems, step)
	}
	for {
		sep, ok := p.separator()
		if !ok {
			break
		}
		p.next()
		step := p.stepExpr()
		if step == nil {
			p.errorf(p.token(0), "path cannot end with %q", sep.String())
		}
		elems = append(elems, sep, step)
	}
	if len(elems) == 1 {
		return elems[0]
	}
	return &PathExpr{elems}
}

func (p *parser) stepExpr() Expr {
	if e := p.postfixExpr(); e != nil {
		return e
	}
	return p.axisStep()
}

func (p *parser) axisStep() Expr {
	var step *AxisStep
	switch t := p.token(0); {
	case p.isSymbol(0, ".."):
		p.next()
		step = &AxisStep{Axis: Parent, Test: &KindTest{Kind: AnyKind}}
	case t.Kind == AxisToken:
		p.next()
		test := p.nodeTest()
		if test == nil {
			p.errorf(p.token(0), "expected node test, but got %v", p.token(0))
		}
		step = &AxisStep{Axis: name2Axis[t.Value], Test: test}
	default:
		test := p.nodeTest()
		if test == nil {
			return nil
		}
		step = &AxisStep{Axis: defaultAxis(test), Test: test}
	}
	step.Predicates = p.predicates()
	return step
}

func defaultAxis(test Expr) Axis {
	if kt, ok := test.(*KindTest); ok {
		switch kt.Kind {
		case AttributeKind, SchemaAttributeKind:
			return Attribute
		case NamespaceNodeKind:
			return Namespace
		}
	}
	return Child
}

func (p *parser) nodeTest() Expr {
	if p.isKindTest() {
		return p.kindTest()
	}
	return p.nameTest()
}

func (p *parser) isKindTest() bool {
	t := p.token(0)
	if t.Kind != NameToken || !p.isSymbol(1, "(") {
		return false
	}
	_, ok := name2NodeKind[t.Value]
	return ok
}

func (p *parser) nameTest() Expr {
	t := p.token(0)
	var name QName
	switch t.Kind {
	case NameToken:
		name.Local = t.Value
	case WildcardToken:
		name.Local = "*"
	case PrefixToken, URIToken:
		if t.Kind == PrefixToken {
			name.Prefix = t.Value
		} else {
			name.URI, name.HasURI = t.Value, true
		}
		switch l := p.token(1); l.Kind {
		case NameToken, WildcardToken:
			name.Local = l.Value
			p.next()
		default:
			p.errorf(l, "expected local name, but got %v", l)
		}
	case WildcardPrefixToken:
		switch l := p.token(1); l.Kind {
		case NameToken:
			name.Prefix, name.Local = "*", l.Value
			p.next()
		case WildcardToken:
			p.errorf(t, "invalid name test *:*")
		default:
			p.errorf(l, "expected local name, but got %v", l)
		}
	default:
		return nil
	}
	p.next()
	return &NameTest{name}
}

// eqName reads a name without wildcards.
func (p *parser) eqName() (QName, bool) {
	t := p.token(0)
	var name QName
	switch t.Kind {
	case NameToken:
		p.next()
		name.Local = t.Value
		return name, true
	case PrefixToken:
		name.Prefix = t.Value
	case URIToken:
		name.URI, name.HasURI = t.Value, true
	default:
		return name, false
	}
	if l := p.token(1); l.Kind != NameToken {
		p.errorf(l, "expected local name, but got %v", l)
	}
	p.next()
	name.Local = p.next().Value
	return name, true
}

func (p *parser) kindTest() *KindTest {
	t := p.next()
	kt := &KindTest{Kind: name2NodeKind[t.Value]}
	p.match("(")
	switch kt.Kind {
	case DocumentKind:
		if p.isKindTest() {
			inner := p.kindTest()
			if inner.Kind != ElementKind && inner.Kind != SchemaElementKind {
				p.errorf(t, "invalid test %s in document-node()", inner.Kind)
			}
			kt.Document = inner
		}
	case ElementKind, AttributeKind:
		if p.isSymbol(0, ")") {
			break
		}
		if p.token(0).Kind == WildcardToken {
			p.next()
			kt.Name = &QName{Local: "*"}
		} else {
			kt.Name = p.requiredName()
		}
		if p.isSymbol(0, ",") {
			p.next()
			kt.TypeName = p.requiredName()
			if kt.Kind == ElementKind && p.isSymbol(0, "?") {
				p.next()
				kt.Nillable = true
			}
		}
	case SchemaElementKind, SchemaAttributeKind:
		kt.Name = p.requiredName()
	case PIKind:
		switch t := p.token(0); t.Kind {
		case NameToken:
			p.next()
			kt.Name = &QName{Local: t.Value}
		case StringToken:
			p.next()
			target := strings.TrimSpace(t.Value)
			if !isNCName(target) {
				p.errorf(t, "invalid processing-instruction target %q", target)
			}
			kt.Name = &QName{Local: target}
		}
	}
	p.match(")")
	return kt
}

func (p *parser) requiredName() *QName {
	name, ok := p.eqName()
	if !ok {
		p.errorf(p.token(0), "expected name, but got %v", p.token(0))
	}
	return &name
}

func (p *parser) singleType() *SingleType {
	st := &SingleType{Name: *p.requiredName()}
	if p.isSymbol(0, "?") {
		p.next()
		st.Optional = true
	}
	return st
}

func (p *parser) sequenceType() *SequenceType {
	if p.isKeyword(0, "empty-sequence") && p.isSymbol(1, "(") {
		p.next()
		p.next()
		p.match(")")
		return &SequenceType{}
	}
	st := &SequenceType{Item: p.itemType()}
	switch t := p.token(0); {
	case p.isSymbol(0, "?"):
		st.Occurrence = ZeroOrOne
	case t.Kind == WildcardToken:
		st.Occurrence = ZeroOrMore
	case p.isSymbol(0, "+"):
		st.Occurrence = OneOrMore
	default:
		return st
	}
	p.next()
	return st
}

func (p *parser) itemType() Expr {
	if p.isSymbol(0, "(") {
		p.next()
		item := p.itemType()
		p.match(")")
		return item
	}
	if p.isKindTest() {
		return p.kindTest()
	}
	if t := p.token(0); t.Kind == NameToken && p.isSymbol(1, "(") {
		switch t.Value {
		case "item":
			p.next()
			p.next()
			p.match(")")
			return ItemTest{}
		case "function", "map", "array":
			p.next()
			p.next()
			if p.token(0).Kind != WildcardToken {
				p.errorf(p.token(0), "expected %q, but got %v", "*", p.token(0))
			}
			p.next()
			p.match(")")
			return &TypeTest{t.Value}
		}
	}
	return &AtomicType{*p.requiredName()}
}

func (p *parser) postfixExpr() Expr {
	e := p.primaryExpr()
	if e == nil {
		return nil
	}
	var suffixes []Expr
	for {
		switch {
		case p.isSymbol(0, "["):
			suffixes = append(suffixes, p.predicate())
		case p.isSymbol(0, "("):
			suffixes = append(suffixes, p.argumentList())
		default:
			if len(suffixes) == 0 {
				return e
			}
			return &PostfixExpr{e, suffixes}
		}
	}
}

func (p *parser) primaryExpr() Expr {
	t := p.token(0)
	switch t.Kind {
	case NumberToken:
		p.next()
		return Numeric(t.Number)
	case StringToken:
		p.next()
		return String(t.Value)
	case DollarToken:
		return p.varRef()
	case SymbolToken:
		switch t.Value {
		case ".":
			p.next()
			return ContextItem{}
		case "(":
			return p.parenthesizedExpr()
		}
	case NameToken:
		if p.isSymbol(1, "(") && !reservedNames[t.Value] {
			return p.functionCall()
		}
	case PrefixToken, URIToken:
		if p.token(1).Kind == NameToken && p.isSymbol(2, "(") {
			return p.functionCall()
		}
	}
	return nil
}

func (p *parser) functionCall() Expr {
	name, _ := p.eqName()
	return &FunctionCall{name, p.argumentList()}
}

func (p *parser) varRef() Expr {
	p.next()
	name, ok := p.eqName()
	if !ok {
		p.errorf(p.token(0), "expected variable name, but got %v", p.token(0))
	}
	return &VarRef{name}
}

func (p *parser) parenthesizedExpr() Expr {
	p.match("(")
	if p.isSymbol(0, ")") {
		p.next()
		return Empty{}
	}
	e := p.required(p.expr())
	p.match(")")
	return e
}

func (p *parser) argumentList() *ArgumentList {
	p.match("(")
	args := &ArgumentList{}
	if p.isSymbol(0, ")") {
		p.next()
		return args
	}
	for {
		if p.isSymbol(0, "?") {
			p.next()
			args.Args = append(args.Args, ArgumentPlaceholder{})
		} else {
			args.Args = append(args.Args, p.required(p.exprSingle()))
		}
		if !p.isSymbol(0, ",") {
			break
		}
		p.next()
	}
	p.match(")")
	return args
}

func (p *parser) predicates() []*Predicate {
	var predicates []*Predicate
	for p.isSymbol(0, "[") {
		predicates = append(predicates, p.predicate())
	}
	return predicates
}

func (p *parser) predicate() *Predicate {
	p.match("[")
	e := p.required(p.expr())
	p.match("]")
	return &Predicate{e}
}
