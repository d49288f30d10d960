package calculator

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"

	"github.com/bububa/toolbot/tools/calculator/functions"
)

// percentPattern matches percentage phrases like "15% of 847" or
// "15 percent of 847". These are computed directly without consulting the
// expression parser.
var percentPattern = regexp.MustCompile(`(?i)^\s*(\d+(?:\.\d+)?)\s*(?:%|percent(?:age)?)\s+of\s+(\d+(?:\.\d+)?)\s*$`)

// callPattern finds identifiers in call position. Any such name outside the
// function whitelist rejects the expression before it reaches the parser, so
// classification never depends on how the parser words its rejection.
var callPattern = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_]*)\s*\(`)

// Evaluate parses untrusted free text as an arithmetic expression and
// evaluates it against the fixed whitelist of functions and constants.
// Every failure is classified by one of the package sentinel errors.
func Evaluate(expression string) (string, error) {
	text := strings.TrimSpace(expression)
	if text == "" {
		return "", ErrEmptyExpression
	}
	if m := percentPattern.FindStringSubmatch(text); m != nil {
		p, _ := strconv.ParseFloat(m[1], 64)
		n, _ := strconv.ParseFloat(m[2], 64)
		return FormatNumber(p / 100 * n), nil
	}
	for _, m := range callPattern.FindAllStringSubmatch(text, -1) {
		if _, ok := functions.Functions[m[1]]; !ok {
			return "", fmt.Errorf("%w: %s", ErrUnsafeOperation, m[1])
		}
	}
	// govaluate spells exponentiation as **
	text = strings.ReplaceAll(text, "^", "**")
	expr, err := govaluate.NewEvaluableExpressionWithFunctions(text, functions.Functions)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSyntax, err)
	}
	for _, name := range expr.Vars() {
		if _, ok := constParams[name]; !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownIdentifier, name)
		}
	}
	result, err := expr.Evaluate(constParams)
	if err != nil {
		if errors.Is(err, functions.ErrMathDomain) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrEvaluation, err)
	}
	value, ok := result.(float64)
	if !ok {
		return "", fmt.Errorf("%w: non-numeric result %v", ErrEvaluation, result)
	}
	if math.IsNaN(value) {
		return "", fmt.Errorf("%w: result is not a number", ErrMathDomain)
	}
	if math.IsInf(value, 0) {
		return "", ErrDivisionByZero
	}
	return FormatNumber(value), nil
}

// FormatNumber renders a result: integral floats without a decimal point,
// anything else with 10 significant digits. Magnitudes below 1e-10 are
// snapped to exactly 0 to suppress floating-point noise.
func FormatNumber(v float64) string {
	if math.Abs(v) < 1e-10 {
		v = 0
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', 10, 64)
}
