package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken_TakeLiteral(t *testing.T) {
	tokens, err := Scan("30s", nil)
	require.NoError(t, err)
	require.Len(t, tokens, 2)

	tok := tokens[0]
	require.Equal(t, TokenQuantity, tok.Type)

	assert.Equal(t, Quantity{Value: 30, Unit: Time(Second)}, tok.TakeLiteral())
	assert.Nil(t, tok.Literal)
	assert.Nil(t, tok.TakeLiteral(), "payload is taken at most once")
	assert.Equal(t, "30s", tok.Lexeme)
}

func TestToken_String(t *testing.T) {
	assert.Equal(t, `Number "1.5" 1.5 @3`,
		Token{Type: TokenNumber, Lexeme: "1.5", Literal: Number(1.5), Line: 3}.String())
	assert.Equal(t, `Let "let" @1`,
		Token{Type: TokenLet, Lexeme: "let", Line: 1}.String())
}

func TestKeywords(t *testing.T) {
	assert.Equal(t,
		[]string{"and", "else", "false", "fn", "for", "if", "let", "nil", "or", "true", "while"},
		Keywords())

	assert.Equal(t, TokenWhile, LookupKeyword("while"))
	assert.Equal(t, TokenIdentifier, LookupKeyword("While"))
	assert.Equal(t, TokenIdentifier, LookupKeyword("rest"))
}
