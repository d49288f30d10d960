package calculator

import (
	"math"
)

// constParams is the closed whitelist of named constants. Expression
// variables outside this table are rejected before evaluation.
var constParams = map[string]interface{}{
	"pi": math.Pi,
	"e":  math.E,
}
