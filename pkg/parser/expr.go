package parser

import (
	"fmt"

	"github.com/spicery/lox-resolver/pkg/ast"
	. "github.com/spicery/lox-resolver/pkg/common"
)

func (p *Parser) expression() (ast.Expr, error) {
	return p.assignment()
}

func (p *Parser) assignment() (ast.Expr, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}
	if equals := p.TryReadToken(EqualTokenType); equals != nil {
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		switch target := expr.(type) {
		case *ast.Variable:
			return &ast.Assign{Name: target.Name, Value: value}, nil
		case *ast.Get:
			return &ast.Set{Object: target.Object, Name: target.Name, Value: value}, nil
		default:
			return nil, errorAt(equals, "Invalid assignment target.")
		}
	}
	return expr, nil
}

func (p *Parser) or() (ast.Expr, error) {
	return p.logical(p.and, OrTokenType)
}

func (p *Parser) and() (ast.Expr, error) {
	return p.logical(p.equality, AndTokenType)
}

func (p *Parser) logical(operand func() (ast.Expr, error), op TokenType) (ast.Expr, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}
	for operator := p.TryReadToken(op); operator != nil; operator = p.TryReadToken(op) {
		right, err := operand()
		if err != nil {
			return nil, err
		}
		expr = &ast.Logical{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

func (p *Parser) equality() (ast.Expr, error) {
	return p.binary(p.comparison, BangEqualTokenType, EqualEqualTokenType)
}

func (p *Parser) comparison() (ast.Expr, error) {
	return p.binary(p.term, GreaterTokenType, GreaterEqualTokenType, LessTokenType, LessEqualTokenType)
}

func (p *Parser) term() (ast.Expr, error) {
	return p.binary(p.factor, MinusTokenType, PlusTokenType)
}

func (p *Parser) factor() (ast.Expr, error) {
	return p.binary(p.unary, SlashTokenType, StarTokenType)
}

// binary parses a left-associative chain of operators at one precedence level.
func (p *Parser) binary(operand func() (ast.Expr, error), ops ...TokenType) (ast.Expr, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}
	for operator := p.TryReadToken(ops...); operator != nil; operator = p.TryReadToken(ops...) {
		right, err := operand()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

func (p *Parser) unary() (ast.Expr, error) {
	if operator := p.TryReadToken(BangTokenType, MinusTokenType); operator != nil {
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Operator: operator, Right: right}, nil
	}
	return p.call()
}

func (p *Parser) call() (ast.Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		if p.TryReadToken(LeftParenTokenType) != nil {
			if expr, err = p.finishCall(expr); err != nil {
				return nil, err
			}
		} else if p.TryReadToken(DotTokenType) != nil {
			name, err := p.MustReadToken(IdentifierTokenType, "Expect property name after '.'.")
			if err != nil {
				return nil, err
			}
			expr = &ast.Get{Object: expr, Name: name}
		} else {
			return expr, nil
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) (ast.Expr, error) {
	var arguments []ast.Expr
	if p.PeekToken().Type != RightParenTokenType {
		for {
			if len(arguments) >= MaxArity {
				return nil, errorAt(p.PeekToken(), fmt.Sprintf("Can't have more than %d arguments.", MaxArity))
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			arguments = append(arguments, arg)
			if p.TryReadToken(CommaTokenType) == nil {
				break
			}
		}
	}
	paren, err := p.MustReadToken(RightParenTokenType, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}
	return &ast.Call{Callee: callee, Paren: paren, Arguments: arguments}, nil
}

func (p *Parser) primary() (ast.Expr, error) {
	token := p.PeekToken()
	switch token.Type {
	case FalseTokenType:
		p.GetToken()
		return &ast.Literal{Kind: ast.FalseLiteral, Where: token.Span}, nil
	case TrueTokenType:
		p.GetToken()
		return &ast.Literal{Kind: ast.TrueLiteral, Where: token.Span}, nil
	case NilTokenType:
		p.GetToken()
		return &ast.Literal{Kind: ast.NilLiteral, Where: token.Span}, nil
	case NumberTokenType, StringTokenType:
		p.GetToken()
		kind := ast.NumberLiteral
		if token.Type == StringTokenType {
			kind = ast.StringLiteral
		}
		value := token.Text
		if token.Value != nil {
			value = *token.Value
		}
		return &ast.Literal{Kind: kind, Value: value, Where: token.Span}, nil
	case SuperTokenType:
		p.GetToken()
		if _, err := p.MustReadToken(DotTokenType, "Expect '.' after 'super'."); err != nil {
			return nil, err
		}
		method, err := p.MustReadToken(IdentifierTokenType, "Expect superclass method name.")
		if err != nil {
			return nil, err
		}
		return &ast.Super{Keyword: token, Method: method}, nil
	case ThisTokenType:
		p.GetToken()
		return &ast.This{Keyword: token}, nil
	case IdentifierTokenType:
		p.GetToken()
		return &ast.Variable{Name: token}, nil
	case LeftParenTokenType:
		p.GetToken()
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		closing, err := p.MustReadToken(RightParenTokenType, "Expect ')' after expression.")
		if err != nil {
			return nil, err
		}
		return &ast.Grouping{Expression: inner, Where: token.Span.MergeSpan(&closing.Span)}, nil
	default:
		return nil, errorAt(token, "Expect expression.")
	}
}
