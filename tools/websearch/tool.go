package websearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"

	"github.com/bububa/toolbot/tools"
)

const (
	// DefaultBaseURL is the instant-answer endpoint queried by default.
	DefaultBaseURL = "https://api.duckduckgo.com"
	// DefaultNumResults is used when the requested count is out of range.
	DefaultNumResults = 3
	// MaxNumResults bounds how many result lines one query may request.
	MaxNumResults = 5
	// DefaultTimeout bounds one search round trip.
	DefaultTimeout = 15 * time.Second
	// snippetLimit truncates related-topic snippets.
	snippetLimit = 200
)

var (
	// ErrEmptyQuery reports a blank query, rejected before any network call.
	ErrEmptyQuery = errors.New("empty search query")
	// ErrTimeout reports a search round trip exceeding the configured timeout.
	ErrTimeout = errors.New("search request timed out")
)

// Input Schema for input to a tool for searching the web for current
// information using an instant-answer engine.
type Input struct {
	// Query the search query.
	Query string `json:"query" validate:"required"`
	// NumResults number of result lines to return, between 1 and 5.
	NumResults int `json:"num_results,omitempty"`
}

func NewInput(query string, numResults int) *Input {
	return &Input{
		Query:      query,
		NumResults: numResults,
	}
}

// UnmarshalJSON tolerates a fractional num_results in model-issued argument
// bags. A whole-number value (including 3.0) is taken as-is; anything
// non-integral is dropped so Run falls back to the default count.
func (i *Input) UnmarshalJSON(data []byte) error {
	var raw struct {
		Query      string      `json:"query"`
		NumResults json.Number `json:"num_results"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	i.Query = raw.Query
	i.NumResults = 0
	if raw.NumResults != "" {
		if n, err := raw.NumResults.Int64(); err == nil {
			i.NumResults = int(n)
		} else if f, err := raw.NumResults.Float64(); err == nil && f == math.Trunc(f) {
			i.NumResults = int(f)
		}
	}
	return nil
}

// Output represents the output of the web search tool.
type Output struct {
	// Results formatted result lines, best answer first.
	Results []string `json:"results,omitempty"`
}

func NewOutput(results []string) *Output {
	return &Output{
		Results: results,
	}
}

func (s Output) String() string {
	return strings.Join(s.Results, "\n")
}

// instantAnswer is the subset of the instant-answer response consumed here.
type instantAnswer struct {
	Answer         string         `json:"Answer"`
	AbstractText   string         `json:"AbstractText"`
	AbstractSource string         `json:"AbstractSource"`
	AbstractURL    string         `json:"AbstractURL"`
	Heading        string         `json:"Heading"`
	RelatedTopics  []relatedTopic `json:"RelatedTopics"`
}

type relatedTopic struct {
	Text     string         `json:"Text"`
	FirstURL string         `json:"FirstURL"`
	Topics   []relatedTopic `json:"Topics"`
}

type Config struct {
	tools.Config
	baseURL string
	timeout time.Duration
	client  *resty.Client
}

// Tool is a web search tool backed by an instant-answer engine.
type Tool struct {
	Config
}

func New(opts ...Option) *Tool {
	ret := new(Tool)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("WebSearchTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Search the web for current information.")
	}
	if ret.baseURL == "" {
		ret.baseURL = DefaultBaseURL
	}
	if ret.timeout == 0 {
		ret.timeout = DefaultTimeout
	}
	if ret.client == nil {
		ret.client = resty.New()
	}
	ret.client.SetBaseURL(ret.baseURL).SetTimeout(ret.timeout)
	return ret
}

// Run runs the search synchronously with the given parameters.
func (t *Tool) Run(ctx context.Context, input *Input) (*Output, error) {
	t.OnStart(ctx, t, input)
	query := strings.TrimSpace(input.Query)
	if query == "" {
		t.OnError(ctx, t, input, ErrEmptyQuery)
		return nil, ErrEmptyQuery
	}
	n := input.NumResults
	if n < 1 || n > MaxNumResults {
		n = DefaultNumResults
	}
	answer, err := t.fetch(ctx, query)
	if err != nil {
		t.OnError(ctx, t, input, err)
		return nil, err
	}
	output := NewOutput(formatResults(query, answer, n))
	t.OnEnd(ctx, t, input, output)
	return output, nil
}

// fetch queries the instant-answer engine and parses its response.
func (t *Tool) fetch(ctx context.Context, query string) (*instantAnswer, error) {
	resp, err := t.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":             query,
			"format":        "json",
			"no_html":       "1",
			"skip_disambig": "1",
		}).
		Get("/")
	if err != nil {
		var ue *url.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ue) && ue.Timeout()) {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, fmt.Errorf("search request failed: %v", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("non-200 response from search engine: %d", resp.StatusCode())
	}
	answer := new(instantAnswer)
	if err := json.Unmarshal(resp.Body(), answer); err != nil {
		return nil, fmt.Errorf("invalid search response: %v", err)
	}
	return answer, nil
}

// formatResults assembles up to n result lines, best answer first:
// direct answer, then abstract with source, then related-topic snippets.
func formatResults(query string, answer *instantAnswer, n int) []string {
	lines := make([]string, 0, n)
	if answer.Answer != "" {
		lines = append(lines, fmt.Sprintf("Answer: %s", answer.Answer))
	}
	if len(lines) < n && answer.AbstractText != "" {
		line := answer.AbstractText
		if answer.AbstractSource != "" {
			line = fmt.Sprintf("%s (Source: %s - %s)", line, answer.AbstractSource, answer.AbstractURL)
		}
		lines = append(lines, line)
	}
	for _, topic := range flattenTopics(answer.RelatedTopics) {
		if len(lines) >= n {
			break
		}
		text := topic.Text
		if text == "" {
			continue
		}
		if len(text) > snippetLimit {
			cut := snippetLimit
			// back off to a rune boundary so the cut never splits a
			// multibyte character
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
			text = text[:cut] + "..."
		}
		if topic.FirstURL != "" {
			text = fmt.Sprintf("%s - %s", text, topic.FirstURL)
		}
		lines = append(lines, text)
	}
	if len(lines) == 0 {
		return []string{fmt.Sprintf("No results found for '%s'", query)}
	}
	return lines
}

// flattenTopics unrolls grouped related topics into a flat list.
func flattenTopics(topics []relatedTopic) []relatedTopic {
	flat := make([]relatedTopic, 0, len(topics))
	for _, topic := range topics {
		if len(topic.Topics) > 0 {
			flat = append(flat, flattenTopics(topic.Topics)...)
			continue
		}
		flat = append(flat, topic)
	}
	return flat
}
