package agents

import (
	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// ToolSchemas declares the static tool schemas sent with every model
// invocation.
func ToolSchemas() []openai.Tool {
	return []openai.Tool{
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        CalculatorToolName,
				Description: "Perform mathematical calculations. Supports basic arithmetic, percentages, and functions like sqrt, sin, cos, tan, log.",
				Parameters: jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"expression": {
							Type:        jsonschema.String,
							Description: "Mathematical expression to evaluate. For example, '2 + 3 * 4' or 'sqrt(16)'.",
						},
					},
					Required: []string{"expression"},
				},
			},
		},
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        TimeToolName,
				Description: "Get the current date and time in a timezone.",
				Parameters: jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"timezone": {
							Type:        jsonschema.String,
							Description: "Timezone name or abbreviation, e.g. 'UTC', 'EST', 'Asia/Tokyo'. Defaults to UTC.",
						},
					},
				},
			},
		},
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        SearchToolName,
				Description: "Search the web for current information.",
				Parameters: jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"query": {
							Type:        jsonschema.String,
							Description: "The search query.",
						},
						"num_results": {
							Type:        jsonschema.Integer,
							Description: "Number of results to return, between 1 and 5. Defaults to 3.",
						},
					},
					Required: []string{"query"},
				},
			},
		},
	}
}
