// Package lang implements the wmd expression language: a lexer, a
// recursive-descent parser, and a tree-walking interpreter for expressions
// whose numeric literals may carry units.
//
// # Pipeline
//
// Source text flows through three stages:
//
//	Scan     source → []Token
//	Parse    []Token → []Stmt
//	Execute  Stmt → Literal
//
// [Run] drives all three over a complete program. Diagnostics from every
// stage go to a [Reporter] as one-line messages of the form
//
//	[line N] Error<where>: <message>
//
// The lexer keeps scanning after an unexpected character, and the parser
// recovers from a malformed declaration by skipping to the next statement,
// so a single pass reports as many errors as the input contains.
//
// # Grammar
//
// Informal EBNF, lowest precedence first:
//
//	program     → declaration* EOF
//	declaration → "let" IDENTIFIER ( "=" expression )? ";" | statement
//	statement   → expression ";"
//	expression  → block | logic_or
//	block       → "{" declaration* expression? "}"
//	logic_or    → logic_and ( "or" logic_and )*
//	logic_and   → equality ( "and" equality )*
//	equality    → comparison ( ( "!=" | "==" ) comparison )*
//	comparison  → term ( ( ">" | ">=" | "<" | "<=" ) term )*
//	term        → factor ( ( "-" | "+" ) factor )*
//	factor      → unary ( ( "/" | "*" ) unary )*
//	unary       → ( "!" | "-" ) unary | primary
//	primary     → "true" | "false" | "nil" | NUMBER | QUANTITY | STRING
//	            | IDENTIFIER | list | "(" expression ")"
//	list        → "[" ( expression ( "," expression )* ","? )? "]"
//
// # Units
//
// A number immediately followed by one of the suffixes below is a
// [Quantity]:
//
//	x   repetitions    3x
//	%   percent        50%
//	s   seconds        30s
//	m   minutes        1.5m
//
// Quantities are never converted: 1m and 60s are different values, and
// arithmetic operators accept plain numbers only.
//
// # Values
//
// Runtime values are [Nil], [Bool], [Number], [Quantity], [String], and
// [List]. Only nil and false are falsy. The + operator concatenates display
// forms when either operand is a string, so
//
//	"n=" + 5;   // "n=5"
//
// and otherwise requires two numbers.
package lang
