package calculator

import (
	"context"

	"github.com/bububa/toolbot/tools"
)

// Input Tool for performing calculations. Supports basic arithmetic
// operations like addition, subtraction, multiplication, and division, as
// well as whitelisted functions like exponentiation and trigonometry.
// Use this tool to evaluate mathematical expressions.
type Input struct {
	// Expression Mathematical expression to evaluate. For example, '2 + 2'.
	Expression string `json:"expression"`
}

func NewInput(exp string) *Input {
	return &Input{
		Expression: exp,
	}
}

// Output Schema for the output of the CalculatorTool
type Output struct {
	// Result Result of the calculation, already formatted as text.
	Result string `json:"result,omitempty"`
}

func NewOutput(result string) *Output {
	return &Output{
		Result: result,
	}
}

func (s Output) String() string {
	return s.Result
}

type Tool struct {
	tools.Config
}

func New(opts ...tools.Option) *Tool {
	ret := new(Tool)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("CalculatorTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Perform mathematical calculations. Supports basic arithmetic, percentages, and functions like sqrt, sin, cos, tan, log.")
	}
	return ret
}

// Run executes the CalculatorTool with the given parameters.
func (t *Tool) Run(ctx context.Context, input *Input) (*Output, error) {
	t.OnStart(ctx, t, input)
	result, err := Evaluate(input.Expression)
	if err != nil {
		t.OnError(ctx, t, input, err)
		return nil, err
	}
	output := NewOutput(result)
	t.OnEnd(ctx, t, input, output)
	return output, nil
}
