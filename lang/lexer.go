package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"unicode/utf8"

	"github.com/ardnew/wmd/log"
)

// Lexer converts source text into a sequence of tokens.
// A Lexer is single-use and not safe for concurrent use.
type Lexer struct {
	src      string
	tokens   []Token
	start    int // first byte of the lexeme being scanned
	current  int // byte currently being considered
	line     int
	reporter Reporter
	logger   log.Logger
	errs     []error
}

// NewLexer returns a lexer over src that reports diagnostics to r.
// A nil r discards diagnostics.
func NewLexer(src string, r Reporter, opts ...Option) *Lexer {
	if r == nil {
		r = discard{}
	}

	o := makeOptions(opts...)

	return &Lexer{
		src:      src,
		line:     1,
		reporter: r,
		logger:   o.logger,
	}
}

// Scan tokenizes src. See [Lexer.Scan].
func Scan(src string, r Reporter, opts ...Option) ([]Token, error) {
	return NewLexer(src, r, opts...).Scan()
}

// Scan tokenizes the entire source and returns the tokens, terminated by an
// EOF token at the final line.
//
// Unexpected characters are reported and skipped so that scanning continues.
// An unterminated string ends the scan. The returned error joins every
// [*SyntaxError] encountered and is nil if there were none; the token slice
// is valid either way.
func (l *Lexer) Scan() ([]Token, error) {
	for !l.eof() {
		l.start = l.current
		if !l.scanToken() {
			break
		}
	}

	l.tokens = append(l.tokens, Token{Type: TokenEOF, Line: l.line})

	l.logger.Trace("scan complete",
		slog.Int("token_count", len(l.tokens)),
		slog.Int("error_count", len(l.errs)),
		slog.Int("line_count", l.line),
	)

	return l.tokens, errors.Join(l.errs...)
}

// scanToken scans one lexeme starting at l.start. It returns false if
// scanning cannot continue.
func (l *Lexer) scanToken() bool {
	c := l.advance()

	switch c {
	case '(':
		l.addToken(TokenLParen)
	case ')':
		l.addToken(TokenRParen)
	case '{':
		l.addToken(TokenLBrace)
	case '}':
		l.addToken(TokenRBrace)
	case '[':
		l.addToken(TokenLBracket)
	case ']':
		l.addToken(TokenRBracket)
	case ',':
		l.addToken(TokenComma)
	case '.':
		l.addToken(TokenDot)
	case '-':
		l.addToken(TokenMinus)
	case '+':
		l.addToken(TokenPlus)
	case ';':
		l.addToken(TokenSemicolon)
	case '*':
		l.addToken(TokenStar)

	case '!':
		l.addToken(l.either('=', TokenBangEqual, TokenBang))
	case '=':
		l.addToken(l.either('=', TokenEqualEqual, TokenEqual))
	case '<':
		l.addToken(l.either('=', TokenLessEqual, TokenLess))
	case '>':
		l.addToken(l.either('=', TokenGreaterEqual, TokenGreater))

	case '/':
		if l.match('/') {
			// Comment runs to end of line; the newline is scanned next.
			for l.peek() != '\n' && !l.eof() {
				l.advance()
			}
		} else {
			l.addToken(TokenSlash)
		}

	case ' ', '\r', '\t':
	case '\n':
		l.line++

	case '"':
		return l.scanString()

	default:
		switch {
		case isDigit(c):
			l.scanNumber()
		case isAlpha(c):
			l.scanIdentifier()
		default:
			l.unexpected()
		}
	}

	return true
}

func (l *Lexer) scanString() bool {
	for l.peek() != '"' && !l.eof() {
		if l.peek() == '\n' {
			l.line++
		}

		l.advance()
	}

	if l.eof() {
		l.error(ErrUnterminatedString, "Unterminated string.")

		return false
	}

	l.advance() // closing quote

	l.addLiteral(TokenString, String(l.src[l.start+1:l.current-1]))

	return true
}

func (l *Lexer) scanNumber() {
	for isDigit(l.peek()) {
		l.advance()
	}

	// A fractional part needs at least one digit after the dot.
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance()

		for isDigit(l.peek()) {
			l.advance()
		}
	}

	text := l.src[l.start:l.current]

	// Digit runs too large for a float64 become +Inf rather than failing.
	value, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		if !l.eof() && isUnitSuffix(l.peek()) {
			l.advance()
		}

		l.error(ErrInvalidNumber.Wrap(err), "Invalid number '"+text+"'.")

		return
	}

	if !l.eof() && isUnitSuffix(l.peek()) {
		suffix := string(l.advance())

		unit, err := ParseUnit(suffix)
		if err != nil {
			l.error(err, "Invalid unit '"+suffix+"'.")

			return
		}

		l.addLiteral(TokenQuantity, NewQuantity(value, unit))

		return
	}

	l.addLiteral(TokenNumber, Number(value))
}

func (l *Lexer) scanIdentifier() {
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}

	l.addToken(LookupKeyword(l.src[l.start:l.current]))
}

// unexpected reports the character at l.start, consuming the whole rune so
// that multi-byte input yields one diagnostic per character.
func (l *Lexer) unexpected() {
	r, size := utf8.DecodeRuneInString(l.src[l.start:])
	l.current = l.start + size

	l.logger.Trace("unexpected character",
		slog.String("char", string(r)),
		slog.Int("line", l.line),
	)
	l.error(ErrUnexpectedChar, "Unexpected character.")
}

func (l *Lexer) error(kind error, msg string) {
	ReportError(l.reporter, l.line, msg)

	l.errs = append(l.errs, &SyntaxError{
		Line:    l.line,
		Message: msg,
		Err:     kind,
	})
}

func (l *Lexer) addToken(typ TokenType) {
	l.addLiteral(typ, nil)
}

func (l *Lexer) addLiteral(typ TokenType, lit Literal) {
	l.tokens = append(l.tokens, Token{
		Type:    typ,
		Lexeme:  l.src[l.start:l.current],
		Literal: lit,
		Line:    l.line,
	})
}

// Helper methods

func (l *Lexer) eof() bool {
	return l.current >= len(l.src)
}

func (l *Lexer) advance() byte {
	c := l.src[l.current]
	l.current++

	return c
}

func (l *Lexer) peek() byte {
	if l.eof() {
		return 0
	}

	return l.src[l.current]
}

func (l *Lexer) peekNext() byte {
	if l.current+1 >= len(l.src) {
		return 0
	}

	return l.src[l.current+1]
}

func (l *Lexer) match(expected byte) bool {
	if l.peek() != expected || l.eof() {
		return false
	}

	l.current++

	return true
}

// either consumes next and returns yes if it follows; otherwise it returns no.
func (l *Lexer) either(next byte, yes, no TokenType) TokenType {
	if l.match(next) {
		return yes
	}

	return no
}

// Character classification

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
