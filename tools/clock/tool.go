package clock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bububa/toolbot/tools"
)

// ErrUnknownTimezone reports a token that resolves to no known timezone.
var ErrUnknownTimezone = errors.New("unknown timezone")

// aliases maps common timezone abbreviations to IANA zone names. Lookup is
// case-insensitive and takes precedence over the timezone database.
var aliases = map[string]string{
	"EST": "US/Eastern",
	"PST": "US/Pacific",
	"CST": "US/Central",
	"MST": "US/Mountain",
	"JST": "Asia/Tokyo",
	"GMT": "GMT",
	"CET": "Europe/Paris",
	"IST": "Asia/Kolkata",
	"BST": "Europe/London",
	"PDT": "US/Pacific",
	"EDT": "US/Eastern",
}

// Input Schema for input to a tool reporting the current wall-clock time in
// a timezone. Accepts IANA names and common abbreviations.
type Input struct {
	// Timezone Timezone name or abbreviation. Empty input defaults to UTC.
	Timezone string `json:"timezone,omitempty"`
}

func NewInput(timezone string) *Input {
	return &Input{
		Timezone: timezone,
	}
}

// Output Schema for the output of the ClockTool
type Output struct {
	// Result Formatted current time line.
	Result string `json:"result,omitempty"`
	// Zone Resolved IANA zone name.
	Zone string `json:"zone,omitempty"`
}

func NewOutput(result string, zone string) *Output {
	return &Output{
		Result: result,
		Zone:   zone,
	}
}

func (s Output) String() string {
	return s.Result
}

type Config struct {
	tools.Config
	now    func() time.Time
	lookup func(name string) (*time.Location, error)
}

type Tool struct {
	Config
}

func New(opts ...Option) *Tool {
	ret := new(Tool)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("ClockTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Get the current date and time in a timezone.")
	}
	if ret.now == nil {
		ret.now = time.Now
	}
	if ret.lookup == nil {
		ret.lookup = time.LoadLocation
	}
	return ret
}

// Run resolves the timezone token and reports the current time there.
func (t *Tool) Run(ctx context.Context, input *Input) (*Output, error) {
	t.OnStart(ctx, t, input)
	token := strings.TrimSpace(input.Timezone)
	if token == "" {
		token = "UTC"
	}
	zone := token
	if canonical, ok := aliases[strings.ToUpper(token)]; ok {
		zone = canonical
	}
	loc, err := t.lookup(zone)
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrUnknownTimezone, token)
		t.OnError(ctx, t, input, err)
		return nil, err
	}
	now := t.now().UTC().In(loc)
	result := fmt.Sprintf("Current time in %s: %s (%s)", token, now.Format("2006-01-02 15:04:05 MST"), now.Weekday())
	output := NewOutput(result, zone)
	t.OnEnd(ctx, t, input, output)
	return output, nil
}
