package tokenizer

import (
	"fmt"
	"strconv"

	"github.com/spicery/lox-resolver/pkg/common"
)

// Tokenizer scans Lox source text into tokens.
type Tokenizer struct {
	input  []rune
	start  int
	pos    int
	line   int
	col    int
	sLine  int // line at the start of the current token
	sCol   int // column at the start of the current token
	tokens []*common.Token
}

func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{
		input: []rune(input),
		line:  1,
		col:   1,
	}
}

// Tokenize scans the whole input. The returned slice always ends with an EOF
// token when err is nil.
func (t *Tokenizer) Tokenize() ([]*common.Token, error) {
	for !t.atEnd() {
		t.start = t.pos
		t.sLine, t.sCol = t.line, t.col
		if err := t.scanToken(); err != nil {
			return nil, err
		}
	}
	t.start = t.pos
	t.sLine, t.sCol = t.line, t.col
	t.tokens = append(t.tokens, &common.Token{
		Type: common.EOFTokenType,
		Span: common.Span{StartLine: t.line, StartColumn: t.col, EndLine: t.line, EndColumn: t.col},
	})
	return t.tokens, nil
}

func (t *Tokenizer) scanToken() error {
	r := t.advance()
	switch r {
	case '(':
		t.addToken(common.LeftParenTokenType, nil)
	case ')':
		t.addToken(common.RightParenTokenType, nil)
	case '{':
		t.addToken(common.LeftBraceTokenType, nil)
	case '}':
		t.addToken(common.RightBraceTokenType, nil)
	case ',':
		t.addToken(common.CommaTokenType, nil)
	case '.':
		t.addToken(common.DotTokenType, nil)
	case '-':
		t.addToken(common.MinusTokenType, nil)
	case '+':
		t.addToken(common.PlusTokenType, nil)
	case ';':
		t.addToken(common.SemicolonTokenType, nil)
	case '*':
		t.addToken(common.StarTokenType, nil)
	case '!':
		t.addToken(t.either('=', common.BangEqualTokenType, common.BangTokenType), nil)
	case '=':
		t.addToken(t.either('=', common.EqualEqualTokenType, common.EqualTokenType), nil)
	case '<':
		t.addToken(t.either('=', common.LessEqualTokenType, common.LessTokenType), nil)
	case '>':
		t.addToken(t.either('=', common.GreaterEqualTokenType, common.GreaterTokenType), nil)
	case '/':
		if t.match('/') {
			for !t.atEnd() && t.peek() != '\n' {
				t.advance()
			}
		} else {
			t.addToken(common.SlashTokenType, nil)
		}
	case ' ', '\r', '\t', '\n':
	case '"':
		return t.scanString()
	default:
		switch {
		case isDigit(r):
			return t.scanNumber()
		case isAlpha(r):
			t.scanIdentifier()
		default:
			return fmt.Errorf("unexpected character '%c' at line %d, column %d", r, t.sLine, t.sCol)
		}
	}
	return nil
}

func (t *Tokenizer) scanString() error {
	for !t.atEnd() && t.peek() != '"' {
		t.advance()
	}
	if t.atEnd() {
		return fmt.Errorf("unterminated string at line %d, column %d", t.sLine, t.sCol)
	}
	t.advance() // closing quote
	value := string(t.input[t.start+1 : t.pos-1])
	t.addToken(common.StringTokenType, &value)
	return nil
}

func (t *Tokenizer) scanNumber() error {
	for isDigit(t.peek()) {
		t.advance()
	}
	if t.peek() == '.' && isDigit(t.peekNext()) {
		t.advance()
		for isDigit(t.peek()) {
			t.advance()
		}
	}
	text := string(t.input[t.start:t.pos])
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("invalid number '%s' at line %d, column %d", text, t.sLine, t.sCol)
	}
	value := strconv.FormatFloat(f, 'g', -1, 64)
	t.addToken(common.NumberTokenType, &value)
	return nil
}

func (t *Tokenizer) scanIdentifier() {
	for isAlphaNumeric(t.peek()) {
		t.advance()
	}
	text := string(t.input[t.start:t.pos])
	tokenType, ok := common.Keywords[text]
	if !ok {
		tokenType = common.IdentifierTokenType
	}
	t.addToken(tokenType, nil)
}

func (t *Tokenizer) addToken(tokenType common.TokenType, value *string) {
	t.tokens = append(t.tokens, &common.Token{
		Type:  tokenType,
		Text:  string(t.input[t.start:t.pos]),
		Span:  common.Span{StartLine: t.sLine, StartColumn: t.sCol, EndLine: t.line, EndColumn: t.col},
		Value: value,
	})
}

func (t *Tokenizer) either(next rune, matched, otherwise common.TokenType) common.TokenType {
	if t.match(next) {
		return matched
	}
	return otherwise
}

func (t *Tokenizer) match(expected rune) bool {
	if t.atEnd() || t.input[t.pos] != expected {
		return false
	}
	t.advance()
	return true
}

func (t *Tokenizer) advance() rune {
	r := t.input[t.pos]
	t.pos++
	if r == '\n' {
		t.line++
		t.col = 1
	} else {
		t.col++
	}
	return r
}

func (t *Tokenizer) peek() rune {
	if t.atEnd() {
		return 0
	}
	return t.input[t.pos]
}

func (t *Tokenizer) peekNext() rune {
	if t.pos+1 >= len(t.input) {
		return 0
	}
	return t.input[t.pos+1]
}

func (t *Tokenizer) atEnd() bool {
	return t.pos >= len(t.input)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isAlphaNumeric(r rune) bool {
	return isAlpha(r) || isDigit(r)
}
