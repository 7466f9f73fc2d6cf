package parser

import (
	"fmt"

	"github.com/spicery/lox-resolver/pkg/ast"
	. "github.com/spicery/lox-resolver/pkg/common"
)

type Parser struct {
	tokens []*Token
	pos    int
}

func NewParserFromTokens(tokens []*Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != EOFTokenType {
		tokens = append(tokens, &Token{Type: EOFTokenType})
	}
	return &Parser{tokens: tokens}
}

// Parse reads declarations until the end of input.
func (p *Parser) Parse() (ast.Program, error) {
	program := ast.Program{}
	for !p.atEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		program = append(program, stmt)
	}
	return program, nil
}

// PeekToken returns the next token without consuming it.
func (p *Parser) PeekToken() *Token {
	return p.tokens[p.pos]
}

func (p *Parser) GetToken() *Token {
	token := p.tokens[p.pos]
	if token.Type != EOFTokenType {
		p.pos++
	}
	return token
}

func (p *Parser) TryReadToken(types ...TokenType) *Token {
	token := p.PeekToken()
	for _, t := range types {
		if token.Type == t {
			return p.GetToken()
		}
	}
	return nil
}

func (p *Parser) MustReadToken(expectedType TokenType, message string) (*Token, error) {
	if token := p.TryReadToken(expectedType); token != nil {
		return token, nil
	}
	return nil, errorAt(p.PeekToken(), message)
}

func (p *Parser) atEnd() bool {
	return p.PeekToken().Type == EOFTokenType
}

func (p *Parser) declaration() (ast.Stmt, error) {
	switch {
	case p.TryReadToken(ClassTokenType) != nil:
		return p.classDeclaration()
	case p.TryReadToken(FunTokenType) != nil:
		return p.function("function")
	case p.TryReadToken(VarTokenType) != nil:
		return p.varDeclaration()
	default:
		return p.statement()
	}
}

func (p *Parser) classDeclaration() (ast.Stmt, error) {
	name, err := p.MustReadToken(IdentifierTokenType, "Expect class name.")
	if err != nil {
		return nil, err
	}
	class := &ast.Class{Name: name}
	if p.TryReadToken(LessTokenType) != nil {
		superName, err := p.MustReadToken(IdentifierTokenType, "Expect superclass name.")
		if err != nil {
			return nil, err
		}
		class.Superclass = &ast.Variable{Name: superName}
	}
	if _, err := p.MustReadToken(LeftBraceTokenType, "Expect '{' before class body."); err != nil {
		return nil, err
	}
	for p.PeekToken().Type != RightBraceTokenType && !p.atEnd() {
		method, err := p.function("method")
		if err != nil {
			return nil, err
		}
		class.Methods = append(class.Methods, method)
	}
	if _, err := p.MustReadToken(RightBraceTokenType, "Expect '}' after class body."); err != nil {
		return nil, err
	}
	return class, nil
}

func (p *Parser) function(kind string) (*ast.Function, error) {
	name, err := p.MustReadToken(IdentifierTokenType, fmt.Sprintf("Expect %s name.", kind))
	if err != nil {
		return nil, err
	}
	if _, err := p.MustReadToken(LeftParenTokenType, fmt.Sprintf("Expect '(' after %s name.", kind)); err != nil {
		return nil, err
	}
	fn := &ast.Function{Name: name}
	if p.PeekToken().Type != RightParenTokenType {
		for {
			if len(fn.Params) >= MaxArity {
				return nil, errorAt(p.PeekToken(), fmt.Sprintf("Can't have more than %d parameters.", MaxArity))
			}
			param, err := p.MustReadToken(IdentifierTokenType, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			fn.Params = append(fn.Params, param)
			if p.TryReadToken(CommaTokenType) == nil {
				break
			}
		}
	}
	if _, err := p.MustReadToken(RightParenTokenType, "Expect ')' after parameters."); err != nil {
		return nil, err
	}
	open, err := p.MustReadToken(LeftBraceTokenType, fmt.Sprintf("Expect '{' before %s body.", kind))
	if err != nil {
		return nil, err
	}
	body, err := p.block(open)
	if err != nil {
		return nil, err
	}
	fn.Body = body.Statements
	return fn, nil
}

func (p *Parser) varDeclaration() (ast.Stmt, error) {
	name, err := p.MustReadToken(IdentifierTokenType, "Expect variable name.")
	if err != nil {
		return nil, err
	}
	stmt := &ast.Var{Name: name}
	if p.TryReadToken(EqualTokenType) != nil {
		if stmt.Initializer, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.MustReadToken(SemicolonTokenType, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) statement() (ast.Stmt, error) {
	if keyword := p.TryReadToken(ForTokenType); keyword != nil {
		return p.forStatement(keyword)
	}
	if keyword := p.TryReadToken(IfTokenType); keyword != nil {
		return p.ifStatement(keyword)
	}
	if keyword := p.TryReadToken(PrintTokenType); keyword != nil {
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.MustReadToken(SemicolonTokenType, "Expect ';' after value."); err != nil {
			return nil, err
		}
		return &ast.Print{Keyword: keyword, Expression: value}, nil
	}
	if keyword := p.TryReadToken(ReturnTokenType); keyword != nil {
		return p.returnStatement(keyword)
	}
	if keyword := p.TryReadToken(WhileTokenType); keyword != nil {
		return p.whileStatement(keyword)
	}
	if open := p.TryReadToken(LeftBraceTokenType); open != nil {
		return p.block(open)
	}
	return p.expressionStatement()
}

// forStatement desugars a for loop into a block holding the initializer and a while loop.
func (p *Parser) forStatement(keyword *Token) (ast.Stmt, error) {
	if _, err := p.MustReadToken(LeftParenTokenType, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var initializer ast.Stmt
	var err error
	switch {
	case p.TryReadToken(SemicolonTokenType) != nil:
	case p.TryReadToken(VarTokenType) != nil:
		initializer, err = p.varDeclaration()
	default:
		initializer, err = p.expressionStatement()
	}
	if err != nil {
		return nil, err
	}

	var condition ast.Expr
	if p.PeekToken().Type != SemicolonTokenType {
		if condition, err = p.expression(); err != nil {
			return nil, err
		}
	}
	semicolon, err := p.MustReadToken(SemicolonTokenType, "Expect ';' after loop condition.")
	if err != nil {
		return nil, err
	}

	var increment ast.Expr
	if p.PeekToken().Type != RightParenTokenType {
		if increment, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.MustReadToken(RightParenTokenType, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	if increment != nil {
		body = &ast.Block{
			Statements: []ast.Stmt{body, &ast.Expression{Expression: increment}},
			Where:      body.Span(),
		}
	}
	if condition == nil {
		condition = &ast.Literal{Kind: ast.TrueLiteral, Where: semicolon.Span}
	}
	var loop ast.Stmt = &ast.While{Keyword: keyword, Condition: condition, Body: body}
	if initializer != nil {
		end := loop.Span()
		loop = &ast.Block{
			Statements: []ast.Stmt{initializer, loop},
			Where:      keyword.Span.MergeSpan(&end),
		}
	}
	return loop, nil
}

func (p *Parser) ifStatement(keyword *Token) (ast.Stmt, error) {
	if _, err := p.MustReadToken(LeftParenTokenType, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.MustReadToken(RightParenTokenType, "Expect ')' after if condition."); err != nil {
		return nil, err
	}
	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	stmt := &ast.If{Keyword: keyword, Condition: condition, ThenBranch: then}
	if p.TryReadToken(ElseTokenType) != nil {
		if stmt.ElseBranch, err = p.statement(); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func (p *Parser) returnStatement(keyword *Token) (ast.Stmt, error) {
	stmt := &ast.Return{Keyword: keyword}
	if p.PeekToken().Type != SemicolonTokenType {
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		stmt.Value = value
	}
	if _, err := p.MustReadToken(SemicolonTokenType, "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) whileStatement(keyword *Token) (ast.Stmt, error) {
	if _, err := p.MustReadToken(LeftParenTokenType, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.MustReadToken(RightParenTokenType, "Expect ')' after condition."); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &ast.While{Keyword: keyword, Condition: condition, Body: body}, nil
}

func (p *Parser) block(open *Token) (*ast.Block, error) {
	block := &ast.Block{}
	for p.PeekToken().Type != RightBraceTokenType && !p.atEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
	}
	closing, err := p.MustReadToken(RightBraceTokenType, "Expect '}' after block.")
	if err != nil {
		return nil, err
	}
	block.Where = open.Span.MergeSpan(&closing.Span)
	return block, nil
}

func (p *Parser) expressionStatement() (ast.Stmt, error) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.MustReadToken(SemicolonTokenType, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return &ast.Expression{Expression: value}, nil
}

func errorAt(token *Token, message string) error {
	if token.Type == EOFTokenType {
		return fmt.Errorf("%s at end, line %d, column %d", message, token.Span.StartLine, token.Span.StartColumn)
	}
	return fmt.Errorf("%s at '%s', line %d, column %d", message, token.Text, token.Span.StartLine, token.Span.StartColumn)
}
