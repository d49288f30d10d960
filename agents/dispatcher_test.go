package agents

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bububa/toolbot/tools/websearch"
)

func offlineDispatcher() *Dispatcher {
	// Point the search tool at a dead endpoint so no test leaves the host.
	return NewDispatcher(
		WithSearchTool(websearch.New(websearch.WithBaseURL("http://127.0.0.1:1"))),
	)
}

func TestDispatchCalculator(t *testing.T) {
	d := offlineDispatcher()
	result := d.Dispatch(context.Background(), CalculatorToolName, `{"expression": "2 + 2"}`)
	if result != "4" {
		t.Errorf("expecting 4, but got %q", result)
	}
}

func TestDispatchTime(t *testing.T) {
	d := offlineDispatcher()
	result := d.Dispatch(context.Background(), TimeToolName, `{"timezone": "UTC"}`)
	if !strings.HasPrefix(result, "Current time in UTC:") {
		t.Errorf("unexpected time result: %q", result)
	}
}

func TestDispatchUnknownTool(t *testing.T) {
	d := offlineDispatcher()
	result := d.Dispatch(context.Background(), "weather", `{}`)
	if result != "Error: unknown tool 'weather'" {
		t.Errorf("unexpected fallback: %q", result)
	}
}

// Dispatch must return a string for any name/argument combination and never
// raise.
func TestDispatchTotality(t *testing.T) {
	d := offlineDispatcher()
	ctx := context.Background()
	cases := []struct {
		name      string
		arguments string
	}{
		{CalculatorToolName, `{"expression": `},
		{CalculatorToolName, ``},
		{CalculatorToolName, `{"expression": "sqrt(-1)"}`},
		{CalculatorToolName, `{"expression": "__import__('os')"}`},
		{TimeToolName, `{"timezone": "Mars/Phobos"}`},
		{TimeToolName, `not json at all`},
		{SearchToolName, `{}`},
		{SearchToolName, `{"query": "anything"}`},
		{SearchToolName, `{"query": "x", "num_results": "three"}`},
		{"", `{}`},
		{"rm -rf /", `{}`},
	}
	for _, c := range cases {
		result := d.Dispatch(ctx, c.name, c.arguments)
		if result == "" {
			t.Errorf("%s(%s): empty result", c.name, c.arguments)
		}
		if !strings.HasPrefix(result, "Error") {
			t.Errorf("%s(%s): expecting an error string, but got %q", c.name, c.arguments, result)
		}
	}
}

func TestDispatchSearchFractionalCount(t *testing.T) {
	// A fractional num_results falls back to the default count instead of
	// failing argument decoding.
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"RelatedTopics":[{"Text":"one"},{"Text":"two"},{"Text":"three"},{"Text":"four"}]}`))
	}
	srv := httptest.NewServer(http.HandlerFunc(handler))
	defer srv.Close()
	d := NewDispatcher(
		WithSearchTool(websearch.New(websearch.WithBaseURL(srv.URL))),
	)
	result := d.Dispatch(context.Background(), SearchToolName, `{"query": "x", "num_results": 2.5}`)
	if strings.HasPrefix(result, "Error") {
		t.Fatalf("expecting search results, but got %q", result)
	}
	if lines := strings.Split(result, "\n"); len(lines) != websearch.DefaultNumResults {
		t.Errorf("expecting %d result lines, but got %d", websearch.DefaultNumResults, len(lines))
	}
}

func TestDispatchErrorTaxonomy(t *testing.T) {
	d := offlineDispatcher()
	ctx := context.Background()
	cases := []struct {
		arguments string
		fragment  string
	}{
		{`{"expression": "sqrt(-1)"}`, "math domain error"},
		{`{"expression": "1 / 0"}`, "division by zero"},
		{`{"expression": "__import__('os')"}`, "unsafe operation"},
		{`{"expression": "x + 1"}`, "unknown identifier"},
		{`{"expression": "(2 +"}`, "invalid syntax"},
		{`{"expression": ""}`, "empty expression"},
	}
	for _, c := range cases {
		result := d.Dispatch(ctx, CalculatorToolName, c.arguments)
		if !strings.Contains(result, c.fragment) {
			t.Errorf("%s: expecting %q in result, but got %q", c.arguments, c.fragment, result)
		}
	}
}
