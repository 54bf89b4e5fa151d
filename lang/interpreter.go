package lang

import (
	"log/slog"

	"github.com/ardnew/wmd/log"
)

// Interpreter evaluates statements against a persistent global scope.
// An Interpreter is not safe for concurrent use.
type Interpreter struct {
	globals *Environment
	env     *Environment
	logger  log.Logger
}

// NewInterpreter returns an interpreter with an empty global scope, or the
// scope given by [WithEnvironment].
func NewInterpreter(opts ...Option) *Interpreter {
	o := makeOptions(opts...)

	globals := o.env
	if globals == nil {
		globals = NewEnvironment()
	}

	return &Interpreter{
		globals: globals,
		env:     globals,
		logger:  o.logger,
	}
}

// Globals returns the global scope.
func (in *Interpreter) Globals() *Environment { return in.globals }

// Reset discards every global binding.
func (in *Interpreter) Reset() {
	in.globals = NewEnvironment()
	in.env = in.globals
}

// Execute runs stmt and returns the value it produces: the expression's
// value for [*ExprStmt], and nil for [*LetStmt] and [NoneStmt].
func (in *Interpreter) Execute(stmt Stmt) (Literal, error) {
	switch s := stmt.(type) {
	case *ExprStmt:
		return in.Evaluate(s.Expr)

	case *LetStmt:
		value, err := in.Evaluate(s.Init)
		if err != nil {
			return nil, err
		}

		in.env.Define(s.Name, value)

		in.logger.Trace("define",
			slog.String("name", s.Name),
			slog.String("type", TypeName(value)),
			slog.String("value", display(value)),
		)

		return Nil{}, nil

	case NoneStmt, *NoneStmt:
		return Nil{}, nil

	default:
		return nil, newRuntimeError(0, "", ErrInvalidExpr)
	}
}

// Evaluate computes the value of expr. Failures are returned as
// [*RuntimeError] naming the operator or identifier responsible.
func (in *Interpreter) Evaluate(expr Expr) (Literal, error) {
	switch e := expr.(type) {
	case *LiteralExpr:
		if e.Value == nil {
			return Nil{}, nil
		}

		return e.Value, nil

	case *Grouping:
		return in.Evaluate(e.Inner)

	case *Var:
		v, err := in.env.Lookup(e.Name)
		if err != nil {
			return nil, newRuntimeError(e.Line, e.Name, err)
		}

		return v, nil

	case *ListExpr:
		out := make(List, 0, len(e.Items))

		for _, item := range e.Items {
			v, err := in.Evaluate(item)
			if err != nil {
				return nil, err
			}

			out = append(out, v)
		}

		return out, nil

	case *Unary:
		return in.unary(e)

	case *Binary:
		return in.binary(e)

	case *Logical:
		return in.logical(e)

	case *Block:
		return in.block(e)

	default:
		return nil, newRuntimeError(0, "", ErrInvalidExpr)
	}
}

func (in *Interpreter) unary(e *Unary) (Literal, error) {
	right, err := in.Evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Op {
	case UnaryBang:
		return Bool(!IsTruthy(right)), nil

	case UnaryMinus:
		n, ok := AsNumber(right)
		if !ok {
			return nil, newRuntimeError(e.Op.Line, e.Op.String(),
				ErrUnaryNumberRequired.With(slog.String("operand", TypeName(right))))
		}

		return Number(-n), nil

	default:
		return nil, newRuntimeError(e.Op.Line, e.Op.String(), ErrInvalidOperatorType)
	}
}

func (in *Interpreter) binary(e *Binary) (Literal, error) {
	left, err := in.Evaluate(e.Left)
	if err != nil {
		return nil, err
	}

	right, err := in.Evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Op {
	case BinaryEqualEqual:
		return Bool(Equal(left, right)), nil

	case BinaryBangEqual:
		return Bool(!Equal(left, right)), nil

	case BinaryPlus:
		return in.plus(e, left, right)
	}

	a, aok := AsNumber(left)
	b, bok := AsNumber(right)

	if !aok || !bok {
		return nil, newRuntimeError(e.Op.Line, e.Op.String(),
			ErrBinaryNumberRequired.With(
				slog.String("left", TypeName(left)),
				slog.String("right", TypeName(right)),
			))
	}

	switch e.Op.Op {
	case BinaryMinus:
		return Number(a - b), nil
	case BinarySlash:
		return Number(a / b), nil
	case BinaryStar:
		return Number(a * b), nil
	case BinaryLess:
		return Bool(a < b), nil
	case BinaryLessEqual:
		return Bool(a <= b), nil
	case BinaryGreater:
		return Bool(a > b), nil
	case BinaryGreaterEqual:
		return Bool(a >= b), nil
	default:
		return nil, newRuntimeError(e.Op.Line, e.Op.String(), ErrInvalidOperatorType)
	}
}

// plus adds two numbers, or concatenates the display forms of its operands
// when either is a string.
func (in *Interpreter) plus(e *Binary, left, right Literal) (Literal, error) {
	_, ls := left.(String)
	_, rs := right.(String)

	if ls || rs {
		return String(display(left) + display(right)), nil
	}

	a, aok := AsNumber(left)
	b, bok := AsNumber(right)

	if aok && bok {
		return Number(a + b), nil
	}

	return nil, newRuntimeError(e.Op.Line, e.Op.String(),
		ErrNumberOrStringRequired.With(
			slog.String("left", TypeName(left)),
			slog.String("right", TypeName(right)),
		))
}

func (in *Interpreter) logical(e *Logical) (Literal, error) {
	left, err := in.Evaluate(e.Left)
	if err != nil {
		return nil, err
	}

	switch e.Op.Op {
	case LogicalOr:
		if IsTruthy(left) {
			return left, nil
		}

	case LogicalAnd:
		if !IsTruthy(left) {
			return left, nil
		}

	default:
		return nil, newRuntimeError(e.Op.Line, e.Op.String(), ErrInvalidOperatorType)
	}

	return in.Evaluate(e.Right)
}

// block evaluates e in a new scope nested in the current one.
func (in *Interpreter) block(e *Block) (Literal, error) {
	prev := in.env
	in.env = prev.Child()

	defer func() { in.env = prev }()

	for _, stmt := range e.Decls {
		if _, err := in.Execute(stmt); err != nil {
			return nil, err
		}
	}

	if e.Result == nil {
		return Nil{}, nil
	}

	return in.Evaluate(e.Result)
}
