package lang

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type outcome struct {
	stmt  string
	value string
	err   bool
}

func collect(results *[]outcome) YieldFunc {
	return func(stmt Stmt, value Literal, err error) bool {
		o := outcome{stmt: stmt.String(), err: err != nil}
		if value != nil {
			o.value = value.String()
		}

		*results = append(*results, o)

		return true
	}
}

func TestRun(t *testing.T) {
	var (
		c       Collector
		results []outcome
	)

	src := `
let rate = 50%;
rate;
"total: " + (2 * 3);
-"bad";
rate == 50%;
`

	err := Run(context.Background(), src, &c, NewInterpreter(), collect(&results))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnaryNumberRequired)

	assert.Equal(t, []outcome{
		{stmt: "(let rate 50%)", value: "nil"},
		{stmt: "rate", value: "50%"},
		{stmt: `(+ "total: " (group (* 2 3)))`, value: "total: 6"},
		{stmt: `(- "bad")`, err: true},
		{stmt: "(== rate 50%)", value: "true"},
	}, results)

	require.Equal(t, 1, c.Len())
	assert.Equal(t,
		"[line 5] Error at '-': unary operator requires a numeric operand",
		c.Diagnostics()[0].String())
}

func TestRun_SyntaxErrorsSkipExecution(t *testing.T) {
	var (
		c       Collector
		results []outcome
	)

	in := NewInterpreter()

	err := Run(context.Background(), "let x = 1; x +; @", &c, in, collect(&results))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
	assert.ErrorIs(t, err, ErrUnexpectedChar)

	assert.Empty(t, results)
	assert.Equal(t, 2, c.Len())

	_, ok := in.Globals().Get("x")
	assert.False(t, ok)
}

func TestRun_SyntaxErrorSkipsLaterStatements(t *testing.T) {
	var (
		c       Collector
		results []outcome
	)

	in := NewInterpreter()

	err := Run(context.Background(), "let ; let x = 1; x;", &c, in, collect(&results))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)

	assert.Empty(t, results)
	assert.Equal(t, 1, c.Len())

	_, ok := in.Globals().Get("x")
	assert.False(t, ok)
}

func TestRun_StopEarly(t *testing.T) {
	var count int

	err := Run(context.Background(), "1; 2; 3;", nil, NewInterpreter(),
		func(Stmt, Literal, error) bool {
			count++

			return count < 2
		})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancelCause(context.Background())
	cause := errors.New("stop")
	cancel(cause)

	var count int

	err := Run(ctx, "1; 2;", nil, NewInterpreter(),
		func(Stmt, Literal, error) bool {
			count++

			return true
		})
	assert.ErrorIs(t, err, cause)
	assert.Zero(t, count)
}

func TestRun_PersistentInterpreter(t *testing.T) {
	in := NewInterpreter()

	require.NoError(t, Run(context.Background(), "let a = 2;", nil, in, nil))

	var results []outcome

	require.NoError(t, Run(context.Background(), "a * a;", nil, in, collect(&results)))
	require.Len(t, results, 1)
	assert.Equal(t, "4", results[0].value)
}

func TestReadSource(t *testing.T) {
	src, err := ReadSource(strings.NewReader("1;"))
	require.NoError(t, err)
	assert.Equal(t, "1;", src)

	_, err = ReadSource(iotest.ErrReader(errors.New("boom")))
	assert.ErrorIs(t, err, ErrReadInput)
}
