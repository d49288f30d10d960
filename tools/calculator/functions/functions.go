package functions

import (
	"errors"
	"fmt"
	"math"

	"github.com/Knetic/govaluate"
)

// ErrMathDomain reports an argument outside a function's mathematical domain,
// e.g. the square root of a negative number.
var ErrMathDomain = errors.New("math domain error")

// Functions is the closed whitelist of callables available to expressions.
// Nothing outside this table is callable.
var Functions = map[string]govaluate.ExpressionFunction{
	"sqrt": unary("sqrt", func(x float64) (float64, error) {
		if x < 0 {
			return 0, fmt.Errorf("%w: sqrt of negative number", ErrMathDomain)
		}
		return math.Sqrt(x), nil
	}),
	"sin": unary("sin", func(x float64) (float64, error) { return math.Sin(x), nil }),
	"cos": unary("cos", func(x float64) (float64, error) { return math.Cos(x), nil }),
	"tan": unary("tan", func(x float64) (float64, error) { return math.Tan(x), nil }),
	"log": unary("log", func(x float64) (float64, error) {
		if x <= 0 {
			return 0, fmt.Errorf("%w: log of non-positive number", ErrMathDomain)
		}
		return math.Log(x), nil
	}),
	"abs":   unary("abs", func(x float64) (float64, error) { return math.Abs(x), nil }),
	"round": unary("round", func(x float64) (float64, error) { return math.Round(x), nil }),
	"pow": func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("pow expects 2 arguments, got %d", len(args))
		}
		x, err := toFloat("pow", args[0])
		if err != nil {
			return nil, err
		}
		y, err := toFloat("pow", args[1])
		if err != nil {
			return nil, err
		}
		return math.Pow(x, y), nil
	},
	"min": fold("min", math.Min),
	"max": fold("max", math.Max),
	"sum": fold("sum", func(a, b float64) float64 { return a + b }),
}

func unary(name string, fn func(float64) (float64, error)) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%s expects 1 argument, got %d", name, len(args))
		}
		x, err := toFloat(name, args[0])
		if err != nil {
			return nil, err
		}
		return fn(x)
	}
}

func fold(name string, fn func(float64, float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) == 0 {
			return nil, fmt.Errorf("%s expects at least 1 argument", name)
		}
		acc, err := toFloat(name, args[0])
		if err != nil {
			return nil, err
		}
		for _, arg := range args[1:] {
			x, err := toFloat(name, arg)
			if err != nil {
				return nil, err
			}
			acc = fn(acc, x)
		}
		return acc, nil
	}
}

func toFloat(name string, v interface{}) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	default:
		return 0, fmt.Errorf("%s expects a numeric argument, got %T", name, v)
	}
}
