package common

import "fmt"

// TokenType represents the different types of Lox tokens.
type TokenType string

const (
	// Single-character tokens.
	LeftParenTokenType  TokenType = "("
	RightParenTokenType TokenType = ")"
	LeftBraceTokenType  TokenType = "{"
	RightBraceTokenType TokenType = "}"
	CommaTokenType      TokenType = ","
	DotTokenType        TokenType = "."
	MinusTokenType      TokenType = "-"
	PlusTokenType       TokenType = "+"
	SemicolonTokenType  TokenType = ";"
	SlashTokenType      TokenType = "/"
	StarTokenType       TokenType = "*"

	// One or two character tokens.
	BangTokenType         TokenType = "!"
	BangEqualTokenType    TokenType = "!="
	EqualTokenType        TokenType = "="
	EqualEqualTokenType   TokenType = "=="
	GreaterTokenType      TokenType = ">"
	GreaterEqualTokenType TokenType = ">="
	LessTokenType         TokenType = "<"
	LessEqualTokenType    TokenType = "<="

	// Literals.
	IdentifierTokenType TokenType = "identifier"
	StringTokenType     TokenType = "string"
	NumberTokenType     TokenType = "number"

	// Keywords.
	AndTokenType    TokenType = "and"
	ClassTokenType  TokenType = "class"
	ElseTokenType   TokenType = "else"
	FalseTokenType  TokenType = "false"
	FunTokenType    TokenType = "fun"
	ForTokenType    TokenType = "for"
	IfTokenType     TokenType = "if"
	NilTokenType    TokenType = "nil"
	OrTokenType     TokenType = "or"
	PrintTokenType  TokenType = "print"
	ReturnTokenType TokenType = "return"
	SuperTokenType  TokenType = "super"
	ThisTokenType   TokenType = "this"
	TrueTokenType   TokenType = "true"
	VarTokenType    TokenType = "var"
	WhileTokenType  TokenType = "while"

	EOFTokenType TokenType = "eof"
)

// Keywords maps reserved words to their token types.
var Keywords = map[string]TokenType{
	"and":    AndTokenType,
	"class":  ClassTokenType,
	"else":   ElseTokenType,
	"false":  FalseTokenType,
	"for":    ForTokenType,
	"fun":    FunTokenType,
	"if":     IfTokenType,
	"nil":    NilTokenType,
	"or":     OrTokenType,
	"print":  PrintTokenType,
	"return": ReturnTokenType,
	"super":  SuperTokenType,
	"this":   ThisTokenType,
	"true":   TrueTokenType,
	"var":    VarTokenType,
	"while":  WhileTokenType,
}

// Token represents a single token from Lox source code.
// This is the canonical token type used throughout the pipeline.
type Token struct {
	Type TokenType `json:"type"`
	Text string    `json:"text"`
	Span Span      `json:"span"`

	// Value is the decoded literal for string and number tokens.
	Value *string `json:"value,omitempty"`
}

func (t *Token) String() string {
	if t.Type == EOFTokenType {
		return "end"
	}
	return fmt.Sprintf("'%s'", t.Text)
}
