package parser

import (
	"github.com/spicery/lox-resolver/pkg/ast"
	"github.com/spicery/lox-resolver/pkg/tokenizer"
)

// ParseString tokenizes and parses Lox source text.
func ParseString(input string) (ast.Program, error) {
	tokens, err := tokenizer.NewTokenizer(input).Tokenize()
	if err != nil {
		return nil, err
	}
	return NewParserFromTokens(tokens).Parse()
}
