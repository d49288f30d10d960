package calculator

import (
	"errors"

	"github.com/bububa/toolbot/tools/calculator/functions"
)

var (
	// ErrEmptyExpression reports empty or whitespace-only input.
	ErrEmptyExpression = errors.New("empty expression")
	// ErrInvalidSyntax reports input that does not parse as an arithmetic expression.
	ErrInvalidSyntax = errors.New("invalid syntax")
	// ErrUnsafeOperation reports a callable outside the function whitelist.
	ErrUnsafeOperation = errors.New("unsafe operation")
	// ErrUnknownIdentifier reports a variable outside the constant whitelist.
	ErrUnknownIdentifier = errors.New("unknown identifier")
	// ErrDivisionByZero reports a division whose result overflows to infinity.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrMathDomain reports an argument outside a function's mathematical domain.
	ErrMathDomain = functions.ErrMathDomain
	// ErrEvaluation is the catch-all evaluation failure.
	ErrEvaluation = errors.New("evaluation failed")
)
