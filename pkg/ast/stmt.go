package ast

import "github.com/spicery/lox-resolver/pkg/common"

type Block struct {
	Statements []Stmt
	Where      common.Span
}

type Var struct {
	Name        *common.Token
	Initializer Expr // nil when absent
}

type Function struct {
	Name   *common.Token
	Params []*common.Token
	Body   []Stmt
}

type Class struct {
	Name       *common.Token
	Superclass *Variable // nil when absent
	Methods    []*Function
}

type If struct {
	Keyword    *common.Token
	Condition  Expr
	ThenBranch Stmt
	ElseBranch Stmt // nil when absent
}

type While struct {
	Keyword   *common.Token
	Condition Expr
	Body      Stmt
}

type Print struct {
	Keyword    *common.Token
	Expression Expr
}

type Expression struct {
	Expression Expr
}

type Return struct {
	Keyword *common.Token
	Value   Expr // nil when absent
}

func (*Block) stmtNode()      {}
func (*Var) stmtNode()        {}
func (*Function) stmtNode()   {}
func (*Class) stmtNode()      {}
func (*If) stmtNode()         {}
func (*While) stmtNode()      {}
func (*Print) stmtNode()      {}
func (*Expression) stmtNode() {}
func (*Return) stmtNode()     {}

func (s *Block) Span() common.Span { return s.Where }

func (s *Var) Span() common.Span {
	if s.Initializer == nil {
		return s.Name.Span
	}
	end := s.Initializer.Span()
	return s.Name.Span.MergeSpan(&end)
}

func (s *Function) Span() common.Span {
	span := s.Name.Span
	if n := len(s.Body); n > 0 {
		end := s.Body[n-1].Span()
		span = span.MergeSpan(&end)
	}
	return span
}

func (s *Class) Span() common.Span {
	span := s.Name.Span
	if n := len(s.Methods); n > 0 {
		end := s.Methods[n-1].Span()
		span = span.MergeSpan(&end)
	}
	return span
}

func (s *If) Span() common.Span {
	end := s.ThenBranch.Span()
	if s.ElseBranch != nil {
		end = s.ElseBranch.Span()
	}
	return s.Keyword.Span.MergeSpan(&end)
}

func (s *While) Span() common.Span {
	end := s.Body.Span()
	return s.Keyword.Span.MergeSpan(&end)
}

func (s *Print) Span() common.Span {
	end := s.Expression.Span()
	return s.Keyword.Span.MergeSpan(&end)
}

func (s *Expression) Span() common.Span { return s.Expression.Span() }

func (s *Return) Span() common.Span {
	if s.Value == nil {
		return s.Keyword.Span
	}
	end := s.Value.Span()
	return s.Keyword.Span.MergeSpan(&end)
}
