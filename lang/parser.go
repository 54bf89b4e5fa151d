package lang

import (
	"errors"
	"log/slog"

	"github.com/ardnew/wmd/log"
)

// Parser builds statements from a token sequence by recursive descent.
// A Parser is single-use and not safe for concurrent use.
type Parser struct {
	tokens   []Token
	current  int
	depth    int
	maxDepth int
	reporter Reporter
	logger   log.Logger
	errs     []error
}

// NewParser returns a parser over tokens that reports diagnostics to r.
// A nil r discards diagnostics. If tokens does not end with an EOF token,
// one is appended.
//
// Parsing takes the literal payload out of each String, Number, and
// Quantity token it turns into an AST node.
func NewParser(tokens []Token, r Reporter, opts ...Option) *Parser {
	if r == nil {
		r = discard{}
	}

	if n := len(tokens); n == 0 || tokens[n-1].Type != TokenEOF {
		line := 1
		if n > 0 {
			line = tokens[n-1].Line
		}

		tokens = append(tokens, Token{Type: TokenEOF, Line: line})
	}

	o := makeOptions(opts...)

	return &Parser{
		tokens:   tokens,
		maxDepth: o.maxDepth,
		reporter: r,
		logger:   o.logger,
	}
}

// Parse scans and parses src. Both stages report to r, and the returned
// error joins the errors of both.
func Parse(src string, r Reporter, opts ...Option) ([]Stmt, error) {
	tokens, scanErr := Scan(src, r, opts...)
	stmts, parseErr := NewParser(tokens, r, opts...).Parse()

	return stmts, errors.Join(scanErr, parseErr)
}

// Parse consumes every token and returns the statements in source order.
//
// A malformed declaration is reported, skipped up to the next statement
// boundary, and replaced by [NoneStmt], so parsing always runs to the end of
// input. The returned error joins every [*SyntaxError] encountered and is nil
// if there were none.
func (p *Parser) Parse() ([]Stmt, error) {
	var stmts []Stmt

	for !p.atEnd() {
		stmts = append(stmts, p.declaration())
	}

	p.logger.Trace("parse complete",
		slog.Int("statement_count", len(stmts)),
		slog.Int("error_count", len(p.errs)),
	)

	return stmts, errors.Join(p.errs...)
}

// declaration → letDecl | statement
func (p *Parser) declaration() Stmt {
	stmt, err := p.tryDeclaration()
	if err != nil {
		p.errs = append(p.errs, err)
		p.synchronize()

		return NoneStmt{}
	}

	return stmt
}

func (p *Parser) tryDeclaration() (Stmt, error) {
	if p.match(TokenLet) {
		return p.letDeclaration()
	}

	return p.statement()
}

// letDecl → "let" IDENTIFIER ( "=" expression )? ";"
func (p *Parser) letDeclaration() (Stmt, error) {
	name, err := p.consume(TokenIdentifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}

	var init Expr = &LiteralExpr{Value: Nil{}}

	if p.match(TokenEqual) {
		if init, err = p.expression(); err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(TokenSemicolon, "Expect ';' after let declaration."); err != nil {
		return nil, err
	}

	return &LetStmt{Name: name.Lexeme, Line: name.Line, Init: init}, nil
}

// statement → expression ";"
func (p *Parser) statement() (Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(TokenSemicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}

	return &ExprStmt{Expr: expr}, nil
}

// expression → block | logic_or
func (p *Parser) expression() (Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	if p.match(TokenLBrace) {
		return p.block()
	}

	return p.or()
}

// block → "{" declaration* expression? "}"
//
// The opening brace has been consumed. Declarations parse until the closing
// brace; an expression not followed by ';' becomes the block's result.
func (p *Parser) block() (Expr, error) {
	b := &Block{}

	for !p.check(TokenRBrace) && !p.atEnd() {
		if p.match(TokenLet) {
			stmt, err := p.letDeclaration()
			if err != nil {
				return nil, err
			}

			b.Decls = append(b.Decls, stmt)

			continue
		}

		expr, err := p.expression()
		if err != nil {
			return nil, err
		}

		if p.check(TokenRBrace) {
			b.Result = expr

			break
		}

		if _, err := p.consume(TokenSemicolon, "Expect ';' after expression."); err != nil {
			return nil, err
		}

		b.Decls = append(b.Decls, &ExprStmt{Expr: expr})
	}

	if _, err := p.consume(TokenRBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}

	return b, nil
}

// logic_or → logic_and ( "or" logic_and )*
func (p *Parser) or() (Expr, error) {
	return p.logical(p.and, TokenOr)
}

// logic_and → equality ( "and" equality )*
func (p *Parser) and() (Expr, error) {
	return p.logical(p.equality, TokenAnd)
}

// equality → comparison ( ( "!=" | "==" ) comparison )*
func (p *Parser) equality() (Expr, error) {
	return p.binary(p.comparison, TokenBangEqual, TokenEqualEqual)
}

// comparison → term ( ( ">" | ">=" | "<" | "<=" ) term )*
func (p *Parser) comparison() (Expr, error) {
	return p.binary(p.term,
		TokenGreater, TokenGreaterEqual, TokenLess, TokenLessEqual)
}

// term → factor ( ( "-" | "+" ) factor )*
func (p *Parser) term() (Expr, error) {
	return p.binary(p.factor, TokenMinus, TokenPlus)
}

// factor → unary ( ( "/" | "*" ) unary )*
func (p *Parser) factor() (Expr, error) {
	return p.binary(p.unary, TokenSlash, TokenStar)
}

// binary folds a left-associative chain of operand productions joined by
// any of the given operators.
func (p *Parser) binary(operand func() (Expr, error), types ...TokenType) (Expr, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}

	for p.match(types...) {
		tok := p.previous()

		op, ok := binaryOps[tok.Type]
		if !ok {
			return nil, p.fail(tok, "Invalid binary operator.", ErrInvalidOperatorType)
		}

		right, err := operand()
		if err != nil {
			return nil, err
		}

		left = &Binary{
			Left:  left,
			Op:    OpToken[BinaryOp]{Op: op, Line: tok.Line},
			Right: right,
		}
	}

	return left, nil
}

// logical is the short-circuiting counterpart of binary.
func (p *Parser) logical(operand func() (Expr, error), typ TokenType) (Expr, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}

	for p.match(typ) {
		tok := p.previous()

		op, ok := logicalOps[tok.Type]
		if !ok {
			return nil, p.fail(tok, "Invalid logical operator.", ErrInvalidOperatorType)
		}

		right, err := operand()
		if err != nil {
			return nil, err
		}

		left = &Logical{
			Left:  left,
			Op:    OpToken[LogicalOp]{Op: op, Line: tok.Line},
			Right: right,
		}
	}

	return left, nil
}

// unary → ( "!" | "-" ) unary | primary
func (p *Parser) unary() (Expr, error) {
	if !p.match(TokenBang, TokenMinus) {
		return p.primary()
	}

	tok := p.previous()

	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	right, err := p.unary()
	if err != nil {
		return nil, err
	}

	return &Unary{
		Op:    OpToken[UnaryOp]{Op: unaryOps[tok.Type], Line: tok.Line},
		Right: right,
	}, nil
}

// primary → "false" | "true" | "nil" | NUMBER | QUANTITY | STRING
//
//	| IDENTIFIER | list | "(" expression ")"
func (p *Parser) primary() (Expr, error) {
	switch {
	case p.match(TokenFalse):
		return &LiteralExpr{Value: Bool(false)}, nil

	case p.match(TokenTrue):
		return &LiteralExpr{Value: Bool(true)}, nil

	case p.match(TokenNil):
		return &LiteralExpr{Value: Nil{}}, nil

	case p.match(TokenNumber, TokenQuantity, TokenString):
		lit := p.tokens[p.current-1].TakeLiteral()
		if lit == nil {
			return nil, p.fail(p.previous(), "Missing literal value.", ErrInvalidExpr)
		}

		return &LiteralExpr{Value: lit}, nil

	case p.match(TokenIdentifier):
		tok := p.previous()

		return &Var{Name: tok.Lexeme, Line: tok.Line}, nil

	case p.match(TokenLBracket):
		return p.list()

	case p.match(TokenLParen):
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}

		if _, err := p.consume(TokenRParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}

		return &Grouping{Inner: inner}, nil
	}

	return nil, p.fail(p.peek(), "Expect expression.", ErrParse)
}

// list → "[" ( expression ( "," expression )* ","? )? "]"
//
// The opening bracket has been consumed.
func (p *Parser) list() (Expr, error) {
	l := &ListExpr{}

	for !p.check(TokenRBracket) && !p.atEnd() {
		item, err := p.expression()
		if err != nil {
			return nil, err
		}

		l.Items = append(l.Items, item)

		if p.check(TokenRBracket) {
			break
		}

		if _, err := p.consume(TokenComma, "Expect ',' between list elements."); err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(TokenRBracket, "Expect ']' after list."); err != nil {
		return nil, err
	}

	return l, nil
}

// synchronize discards tokens until a likely statement boundary: just past a
// semicolon, or before a keyword that begins a statement.
func (p *Parser) synchronize() {
	p.advance()

	for !p.atEnd() {
		if p.previous().Type == TokenSemicolon {
			return
		}

		switch p.peek().Type {
		case TokenFn, TokenFor, TokenIf, TokenWhile, TokenLet:
			return
		}

		p.advance()
	}
}

// consume returns the next token if it has type typ; otherwise it reports
// msg at that token.
func (p *Parser) consume(typ TokenType, msg string) (Token, error) {
	if p.check(typ) {
		return p.advance(), nil
	}

	return Token{}, p.fail(p.peek(), msg, ErrParse)
}

// fail reports msg at tok and returns the corresponding error.
func (p *Parser) fail(tok Token, msg string, kind error) error {
	ReportToken(p.reporter, tok, msg)

	return &SyntaxError{
		Line:    tok.Line,
		Where:   tokenWhere(tok),
		Message: msg,
		Err:     kind,
	}
}

// enter records one level of nesting, failing once the limit is passed.
// Every successful enter must be paired with leave.
func (p *Parser) enter() error {
	if p.depth >= p.maxDepth {
		return p.fail(p.peek(), "Expression nesting too deep.",
			ErrMaxDepthExceeded.With(slog.Int("max_depth", p.maxDepth)))
	}

	p.depth++

	return nil
}

func (p *Parser) leave() { p.depth-- }

// Helper methods

func (p *Parser) match(types ...TokenType) bool {
	for _, typ := range types {
		if p.check(typ) {
			p.advance()

			return true
		}
	}

	return false
}

func (p *Parser) check(typ TokenType) bool {
	return !p.atEnd() && p.peek().Type == typ
}

func (p *Parser) advance() Token {
	if !p.atEnd() {
		p.current++
	}

	return p.previous()
}

func (p *Parser) atEnd() bool {
	return p.peek().Type == TokenEOF
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() Token {
	if p.current == 0 {
		return p.tokens[0]
	}

	return p.tokens[p.current-1]
}
