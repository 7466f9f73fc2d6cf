package ast

import "github.com/spicery/lox-resolver/pkg/common"

type Assign struct {
	Name  *common.Token
	Value Expr
}

type Binary struct {
	Left     Expr
	Operator *common.Token
	Right    Expr
}

type Call struct {
	Callee    Expr
	Paren     *common.Token // closing parenthesis
	Arguments []Expr
}

type Grouping struct {
	Expression Expr
	Where      common.Span
}

// LiteralKind distinguishes the Lox literal forms.
type LiteralKind string

const (
	NumberLiteral LiteralKind = common.ValueNumber
	StringLiteral LiteralKind = common.ValueString
	TrueLiteral   LiteralKind = common.ValueTrue
	FalseLiteral  LiteralKind = common.ValueFalse
	NilLiteral    LiteralKind = common.ValueNil
)

type Literal struct {
	Kind  LiteralKind
	Value string // decoded text for numbers and strings
	Where common.Span
}

type Logical struct {
	Left     Expr
	Operator *common.Token
	Right    Expr
}

type Unary struct {
	Operator *common.Token
	Right    Expr
}

type Variable struct {
	Name *common.Token
}

type Get struct {
	Object Expr
	Name   *common.Token
}

type Set struct {
	Object Expr
	Name   *common.Token
	Value  Expr
}

type This struct {
	Keyword *common.Token
}

type Super struct {
	Keyword *common.Token
	Method  *common.Token
}

func (*Assign) exprNode()   {}
func (*Binary) exprNode()   {}
func (*Call) exprNode()     {}
func (*Grouping) exprNode() {}
func (*Literal) exprNode()  {}
func (*Logical) exprNode()  {}
func (*Unary) exprNode()    {}
func (*Variable) exprNode() {}
func (*Get) exprNode()      {}
func (*Set) exprNode()      {}
func (*This) exprNode()     {}
func (*Super) exprNode()    {}

func (e *Assign) Span() common.Span {
	end := e.Value.Span()
	return e.Name.Span.MergeSpan(&end)
}

func (e *Binary) Span() common.Span {
	start, end := e.Left.Span(), e.Right.Span()
	return start.MergeSpan(&end)
}

func (e *Call) Span() common.Span {
	start := e.Callee.Span()
	return start.MergeSpan(&e.Paren.Span)
}

func (e *Grouping) Span() common.Span { return e.Where }

func (e *Literal) Span() common.Span { return e.Where }

func (e *Logical) Span() common.Span {
	start, end := e.Left.Span(), e.Right.Span()
	return start.MergeSpan(&end)
}

func (e *Unary) Span() common.Span {
	end := e.Right.Span()
	return e.Operator.Span.MergeSpan(&end)
}

func (e *Variable) Span() common.Span { return e.Name.Span }

func (e *Get) Span() common.Span {
	start := e.Object.Span()
	return start.MergeSpan(&e.Name.Span)
}

func (e *Set) Span() common.Span {
	start, end := e.Object.Span(), e.Value.Span()
	return start.MergeSpan(&end)
}

func (e *This) Span() common.Span { return e.Keyword.Span }

func (e *Super) Span() common.Span {
	return e.Keyword.Span.MergeSpan(&e.Method.Span)
}
