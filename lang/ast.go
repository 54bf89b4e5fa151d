package lang

import (
	"fmt"
	"strconv"
	"strings"
)

// Expr is an expression node. Every Expr exclusively owns its subtrees.
//
// The concrete types are [*Binary], [*Unary], [*Logical], [*Grouping],
// [*ListExpr], [*Var], [*LiteralExpr], and [*Block].
type Expr interface {
	// String returns the node as an S-expression.
	String() string
	// ToMap returns a structural representation suitable for JSON or YAML.
	ToMap() map[string]any
	expr()
}

// Stmt is a statement node.
//
// The concrete types are [*ExprStmt], [*LetStmt], and [NoneStmt].
type Stmt interface {
	String() string
	ToMap() map[string]any
	stmt()
}

// UnaryOp is a prefix operator.
type UnaryOp uint8

// Unary operators.
const (
	UnaryMinus UnaryOp = iota
	UnaryBang
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryMinus:
		return "-"
	case UnaryBang:
		return "!"
	default:
		return "UnaryOp(" + strconv.Itoa(int(op)) + ")"
	}
}

// BinaryOp is an arithmetic, relational, or equality operator.
type BinaryOp uint8

// Binary operators.
const (
	BinaryPlus BinaryOp = iota
	BinaryMinus
	BinarySlash
	BinaryStar
	BinaryLess
	BinaryLessEqual
	BinaryGreater
	BinaryGreaterEqual
	BinaryEqualEqual
	BinaryBangEqual
)

var binaryOpText = [...]string{
	BinaryPlus:         "+",
	BinaryMinus:        "-",
	BinarySlash:        "/",
	BinaryStar:         "*",
	BinaryLess:         "<",
	BinaryLessEqual:    "<=",
	BinaryGreater:      ">",
	BinaryGreaterEqual: ">=",
	BinaryEqualEqual:   "==",
	BinaryBangEqual:    "!=",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpText) {
		return binaryOpText[op]
	}

	return "BinaryOp(" + strconv.Itoa(int(op)) + ")"
}

// LogicalOp is a short-circuiting operator.
type LogicalOp uint8

// Logical operators.
const (
	LogicalAnd LogicalOp = iota
	LogicalOr
)

func (op LogicalOp) String() string {
	switch op {
	case LogicalAnd:
		return "and"
	case LogicalOr:
		return "or"
	default:
		return "LogicalOp(" + strconv.Itoa(int(op)) + ")"
	}
}

// OpToken pairs an operator with the source line it was parsed at.
type OpToken[T fmt.Stringer] struct {
	Op   T
	Line int
}

func (o OpToken[T]) String() string { return o.Op.String() }

// unaryOps, binaryOps, and logicalOps map operator tokens to their tags.
// A token type absent from these tables cannot form that kind of node.
var (
	unaryOps = map[TokenType]UnaryOp{
		TokenMinus: UnaryMinus,
		TokenBang:  UnaryBang,
	}
	binaryOps = map[TokenType]BinaryOp{
		TokenPlus:         BinaryPlus,
		TokenMinus:        BinaryMinus,
		TokenSlash:        BinarySlash,
		TokenStar:         BinaryStar,
		TokenLess:         BinaryLess,
		TokenLessEqual:    BinaryLessEqual,
		TokenGreater:      BinaryGreater,
		TokenGreaterEqual: BinaryGreaterEqual,
		TokenEqualEqual:   BinaryEqualEqual,
		TokenBangEqual:    BinaryBangEqual,
	}
	logicalOps = map[TokenType]LogicalOp{
		TokenAnd: LogicalAnd,
		TokenOr:  LogicalOr,
	}
)

// Binary is an infix arithmetic, relational, or equality expression.
type Binary struct {
	Left  Expr
	Op    OpToken[BinaryOp]
	Right Expr
}

// Unary is a prefix expression.
type Unary struct {
	Op    OpToken[UnaryOp]
	Right Expr
}

// Logical is a short-circuiting and/or expression.
type Logical struct {
	Left  Expr
	Op    OpToken[LogicalOp]
	Right Expr
}

// Grouping is a parenthesized expression.
type Grouping struct {
	Inner Expr
}

// ListExpr is a list literal.
type ListExpr struct {
	Items []Expr
}

// Var is a reference to a bound name.
type Var struct {
	Name string
	Line int
}

// LiteralExpr is a constant value.
type LiteralExpr struct {
	Value Literal
}

// Block is a braced sequence of declarations evaluated in its own scope.
// Result is nil when the block has no trailing expression.
type Block struct {
	Decls  []Stmt
	Result Expr
}

func (*Binary) expr()      {}
func (*Unary) expr()       {}
func (*Logical) expr()     {}
func (*Grouping) expr()    {}
func (*ListExpr) expr()    {}
func (*Var) expr()         {}
func (*LiteralExpr) expr() {}
func (*Block) expr()       {}

// ExprStmt is an expression evaluated for its value.
type ExprStmt struct {
	Expr Expr
}

// LetStmt binds Name to the value of Init.
type LetStmt struct {
	Name string
	Line int
	Init Expr
}

// NoneStmt stands in for a declaration discarded during error recovery.
type NoneStmt struct{}

func (*ExprStmt) stmt() {}
func (*LetStmt) stmt()  {}
func (NoneStmt) stmt()  {}

// S-expression rendering

func (e *Binary) String() string {
	return parenthesize(e.Op.String(), e.Left, e.Right)
}

func (e *Unary) String() string {
	return parenthesize(e.Op.String(), e.Right)
}

func (e *Logical) String() string {
	return parenthesize(e.Op.String(), e.Left, e.Right)
}

func (e *Grouping) String() string {
	return parenthesize("group", e.Inner)
}

func (e *ListExpr) String() string {
	items := make([]fmt.Stringer, len(e.Items))
	for i, item := range e.Items {
		items[i] = item
	}

	return parenthesize("list", items...)
}

func (e *Var) String() string { return e.Name }

func (e *LiteralExpr) String() string { return sourceText(e.Value) }

func (e *Block) String() string {
	parts := make([]fmt.Stringer, 0, len(e.Decls)+1)
	for _, d := range e.Decls {
		parts = append(parts, d)
	}

	if e.Result != nil {
		parts = append(parts, e.Result)
	}

	return parenthesize("block", parts...)
}

func (s *ExprStmt) String() string { return s.Expr.String() }

func (s *LetStmt) String() string {
	return "(let " + s.Name + " " + s.Init.String() + ")"
}

func (NoneStmt) String() string { return "(none)" }

func parenthesize[T fmt.Stringer](name string, parts ...T) string {
	var sb strings.Builder

	sb.WriteByte('(')
	sb.WriteString(name)

	for _, p := range parts {
		sb.WriteByte(' ')
		sb.WriteString(p.String())
	}

	sb.WriteByte(')')

	return sb.String()
}

// sourceText renders v the way it would be written in source.
func sourceText(v Literal) string {
	if s, ok := v.(String); ok {
		return strconv.Quote(string(s))
	}

	return display(v)
}

// Structural rendering

func (e *Binary) ToMap() map[string]any {
	return map[string]any{
		"kind":     "binary",
		"operator": e.Op.String(),
		"line":     e.Op.Line,
		"left":     e.Left.ToMap(),
		"right":    e.Right.ToMap(),
	}
}

func (e *Unary) ToMap() map[string]any {
	return map[string]any{
		"kind":     "unary",
		"operator": e.Op.String(),
		"line":     e.Op.Line,
		"operand":  e.Right.ToMap(),
	}
}

func (e *Logical) ToMap() map[string]any {
	return map[string]any{
		"kind":     "logical",
		"operator": e.Op.String(),
		"line":     e.Op.Line,
		"left":     e.Left.ToMap(),
		"right":    e.Right.ToMap(),
	}
}

func (e *Grouping) ToMap() map[string]any {
	return map[string]any{
		"kind":  "grouping",
		"inner": e.Inner.ToMap(),
	}
}

func (e *ListExpr) ToMap() map[string]any {
	items := make([]any, len(e.Items))
	for i, item := range e.Items {
		items[i] = item.ToMap()
	}

	return map[string]any{
		"kind":  "list",
		"items": items,
	}
}

func (e *Var) ToMap() map[string]any {
	return map[string]any{
		"kind": "var",
		"name": e.Name,
		"line": e.Line,
	}
}

func (e *LiteralExpr) ToMap() map[string]any {
	return map[string]any{
		"kind":  "literal",
		"type":  TypeName(e.Value),
		"value": NativeValue(e.Value),
	}
}

func (e *Block) ToMap() map[string]any {
	decls := make([]any, len(e.Decls))
	for i, d := range e.Decls {
		decls[i] = d.ToMap()
	}

	m := map[string]any{
		"kind":  "block",
		"decls": decls,
	}

	if e.Result != nil {
		m["result"] = e.Result.ToMap()
	}

	return m
}

func (s *ExprStmt) ToMap() map[string]any {
	return map[string]any{
		"kind": "expr",
		"expr": s.Expr.ToMap(),
	}
}

func (s *LetStmt) ToMap() map[string]any {
	return map[string]any{
		"kind": "let",
		"name": s.Name,
		"line": s.Line,
		"init": s.Init.ToMap(),
	}
}

func (NoneStmt) ToMap() map[string]any {
	return map[string]any{"kind": "none"}
}

// NativeValue converts v to plain Go data for encoding.
// Quantities become their source text; lists become []any.
func NativeValue(v Literal) any {
	switch v := v.(type) {
	case nil, Nil:
		return nil
	case Bool:
		return bool(v)
	case Number:
		return float64(v)
	case String:
		return string(v)
	case Quantity:
		return v.String()
	case List:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = NativeValue(item)
		}

		return out
	default:
		return v.String()
	}
}
