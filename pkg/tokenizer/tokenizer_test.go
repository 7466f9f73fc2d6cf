package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spicery/lox-resolver/pkg/common"
)

func tokenTypes(tokens []*common.Token) []common.TokenType {
	types := make([]common.TokenType, 0, len(tokens))
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}
	return types
}

func TestTokenizeDeclaration(t *testing.T) {
	tokens, err := NewTokenizer(`var answer = 42.5;`).Tokenize()
	require.NoError(t, err)
	assert.Equal(t, []common.TokenType{
		common.VarTokenType,
		common.IdentifierTokenType,
		common.EqualTokenType,
		common.NumberTokenType,
		common.SemicolonTokenType,
		common.EOFTokenType,
	}, tokenTypes(tokens))
	assert.Equal(t, "answer", tokens[1].Text)
	require.NotNil(t, tokens[3].Value)
	assert.Equal(t, "42.5", *tokens[3].Value)
}

func TestTokenizeOperators(t *testing.T) {
	tokens, err := NewTokenizer(`! != = == < <= > >= / // comment`).Tokenize()
	require.NoError(t, err)
	assert.Equal(t, []common.TokenType{
		common.BangTokenType,
		common.BangEqualTokenType,
		common.EqualTokenType,
		common.EqualEqualTokenType,
		common.LessTokenType,
		common.LessEqualTokenType,
		common.GreaterTokenType,
		common.GreaterEqualTokenType,
		common.SlashTokenType,
		common.EOFTokenType,
	}, tokenTypes(tokens))
}

func TestTokenizeKeywordsAndSpans(t *testing.T) {
	tokens, err := NewTokenizer("class A < B {\n  init() { this.x = super.y; }\n}").Tokenize()
	require.NoError(t, err)
	assert.Equal(t, common.ClassTokenType, tokens[0].Type)
	assert.Equal(t, common.LessTokenType, tokens[2].Type)

	var this *common.Token
	for _, tok := range tokens {
		if tok.Type == common.ThisTokenType {
			this = tok
		}
	}
	require.NotNil(t, this)
	assert.Equal(t, 2, this.Span.StartLine)
	assert.Equal(t, 12, this.Span.StartColumn)
}

func TestTokenizeString(t *testing.T) {
	tokens, err := NewTokenizer("\"hello\nworld\"").Tokenize()
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, common.StringTokenType, tokens[0].Type)
	assert.Equal(t, "hello\nworld", *tokens[0].Value)
	assert.Equal(t, 2, tokens[1].Span.StartLine)
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unterminated string", `print "oops;`, "unterminated string at line 1, column 7"},
		{"unexpected character", "var a = 1;\n@", "unexpected character '@' at line 2, column 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTokenizer(tt.input).Tokenize()
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}
