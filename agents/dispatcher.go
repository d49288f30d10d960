package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/bububa/toolbot/tools/calculator"
	"github.com/bububa/toolbot/tools/clock"
	"github.com/bububa/toolbot/tools/websearch"
)

// Tool names as declared to the model gateway.
const (
	CalculatorToolName = "calculator"
	TimeToolName       = "time"
	SearchToolName     = "search"
)

// Dispatcher routes a model-issued tool name and raw JSON arguments to one of
// the local tools and normalizes every outcome, success or failure, to a
// single string. Dispatch never returns an error and never panics; this is
// the contract the orchestration loop relies on to keep tool rounds total.
type Dispatcher struct {
	calculator *calculator.Tool
	clock      *clock.Tool
	search     *websearch.Tool
	validate   *validator.Validate
}

func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	ret := &Dispatcher{
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.calculator == nil {
		ret.calculator = calculator.New()
	}
	if ret.clock == nil {
		ret.clock = clock.New()
	}
	if ret.search == nil {
		ret.search = websearch.New()
	}
	return ret
}

type DispatcherOption func(*Dispatcher)

func WithCalculatorTool(t *calculator.Tool) DispatcherOption {
	return func(d *Dispatcher) {
		d.calculator = t
	}
}

func WithClockTool(t *clock.Tool) DispatcherOption {
	return func(d *Dispatcher) {
		d.clock = t
	}
}

func WithSearchTool(t *websearch.Tool) DispatcherOption {
	return func(d *Dispatcher) {
		d.search = t
	}
}

// Dispatch resolves one tool call to its string result.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, arguments string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = execError(name, fmt.Errorf("panic: %v", r))
		}
	}()
	switch name {
	case CalculatorToolName:
		input := new(calculator.Input)
		if err := d.decode(arguments, input); err != nil {
			return execError(name, err)
		}
		out, err := d.calculator.Run(ctx, input)
		if err != nil {
			return execError(name, err)
		}
		return out.Result
	case TimeToolName:
		input := new(clock.Input)
		if err := d.decode(arguments, input); err != nil {
			return execError(name, err)
		}
		out, err := d.clock.Run(ctx, input)
		if err != nil {
			return execError(name, err)
		}
		return out.Result
	case SearchToolName:
		input := new(websearch.Input)
		if err := d.decode(arguments, input); err != nil {
			return execError(name, err)
		}
		out, err := d.search.Run(ctx, input)
		if err != nil {
			return execError(name, err)
		}
		return out.String()
	default:
		return fmt.Sprintf("Error: unknown tool '%s'", name)
	}
}

// decode unmarshals and validates a JSON argument bag.
func (d *Dispatcher) decode(arguments string, v any) error {
	if strings.TrimSpace(arguments) == "" {
		arguments = "{}"
	}
	if err := json.Unmarshal([]byte(arguments), v); err != nil {
		return fmt.Errorf("invalid arguments: %v", err)
	}
	if err := d.validate.Struct(v); err != nil {
		return fmt.Errorf("invalid arguments: %v", err)
	}
	return nil
}

func execError(name string, err error) string {
	return fmt.Sprintf("Error executing %s: %v", name, err)
}
