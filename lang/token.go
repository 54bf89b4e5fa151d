package lang

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
)

// TokenType identifies the lexical class of a [Token].
type TokenType int

const (
	// Single-character tokens.
	TokenLParen TokenType = iota
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenComma
	TokenDot
	TokenMinus
	TokenPlus
	TokenSemicolon
	TokenSlash
	TokenStar

	// One or two character tokens.
	TokenBang
	TokenBangEqual
	TokenEqual
	TokenEqualEqual
	TokenGreater
	TokenGreaterEqual
	TokenLess
	TokenLessEqual

	// Literals.
	TokenIdentifier
	TokenString
	TokenNumber
	TokenQuantity

	// Keywords.
	TokenAnd
	TokenElse
	TokenFalse
	TokenFn
	TokenFor
	TokenIf
	TokenLet
	TokenNil
	TokenOr
	TokenTrue
	TokenWhile

	TokenEOF
)

var tokenTypeName = [...]string{
	TokenLParen:       "LParen",
	TokenRParen:       "RParen",
	TokenLBrace:       "LBrace",
	TokenRBrace:       "RBrace",
	TokenLBracket:     "LBracket",
	TokenRBracket:     "RBracket",
	TokenComma:        "Comma",
	TokenDot:          "Dot",
	TokenMinus:        "Minus",
	TokenPlus:         "Plus",
	TokenSemicolon:    "Semicolon",
	TokenSlash:        "Slash",
	TokenStar:         "Star",
	TokenBang:         "Bang",
	TokenBangEqual:    "BangEqual",
	TokenEqual:        "Equal",
	TokenEqualEqual:   "EqualEqual",
	TokenGreater:      "Greater",
	TokenGreaterEqual: "GreaterEqual",
	TokenLess:         "Less",
	TokenLessEqual:    "LessEqual",
	TokenIdentifier:   "Identifier",
	TokenString:       "String",
	TokenNumber:       "Number",
	TokenQuantity:     "Quantity",
	TokenAnd:          "And",
	TokenElse:         "Else",
	TokenFalse:        "False",
	TokenFn:           "Fn",
	TokenFor:          "For",
	TokenIf:           "If",
	TokenLet:          "Let",
	TokenNil:          "Nil",
	TokenOr:           "Or",
	TokenTrue:         "True",
	TokenWhile:        "While",
	TokenEOF:          "EOF",
}

// String returns the name of the token type.
func (t TokenType) String() string {
	if t >= 0 && int(t) < len(tokenTypeName) {
		return tokenTypeName[t]
	}

	return fmt.Sprintf("TokenType(%d)", int(t))
}

// keywords maps reserved words to their token types. Matching is exact and
// case-sensitive.
var keywords = map[string]TokenType{
	"and":   TokenAnd,
	"else":  TokenElse,
	"false": TokenFalse,
	"fn":    TokenFn,
	"for":   TokenFor,
	"if":    TokenIf,
	"let":   TokenLet,
	"nil":   TokenNil,
	"or":    TokenOr,
	"true":  TokenTrue,
	"while": TokenWhile,
}

// Keywords returns the reserved words of the language in sorted order.
func Keywords() []string {
	return slices.Sorted(maps.Keys(keywords))
}

// LookupKeyword returns the keyword token type for ident, or
// [TokenIdentifier] if ident is not reserved.
func LookupKeyword(ident string) TokenType {
	if typ, ok := keywords[ident]; ok {
		return typ
	}

	return TokenIdentifier
}

// Token is a single lexeme produced by the [Lexer].
//
// Literal is non-nil only for String, Number, and Quantity tokens until the
// parser takes it with [Token.TakeLiteral].
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal Literal
	Line    int
}

// TakeLiteral returns the literal payload and clears it from the token.
// Subsequent calls return nil.
func (t *Token) TakeLiteral() Literal {
	lit := t.Literal
	t.Literal = nil

	return lit
}

// String returns a compact description of the token.
func (t Token) String() string {
	if t.Literal != nil {
		return fmt.Sprintf("%s %q %s @%d", t.Type, t.Lexeme, t.Literal, t.Line)
	}

	return fmt.Sprintf("%s %q @%d", t.Type, t.Lexeme, t.Line)
}

// LogValue implements [slog.LogValuer].
func (t Token) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("type", t.Type.String()),
		slog.String("lexeme", t.Lexeme),
		slog.Int("line", t.Line),
	}

	if t.Literal != nil {
		attrs = append(attrs, slog.String("literal", t.Literal.String()))
	}

	return slog.GroupValue(attrs...)
}
