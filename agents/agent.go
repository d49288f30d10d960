package agents

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/bububa/toolbot/components"
)

// Gateway is the external model collaborator. *openai.Client satisfies it.
type Gateway interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (response openai.ChatCompletionResponse, err error)
}

const (
	// DefaultMaxToolRounds bounds model-driven tool chaining: after the first
	// response, at most this many dispatch/re-invoke rounds run before the
	// loop returns the last known textual content.
	DefaultMaxToolRounds = 2
	// DefaultSystemPrompt instructs the model on the available tools.
	DefaultSystemPrompt = "You are a helpful assistant with access to tools. Use the calculator tool for math, the time tool for time queries, and the search tool for finding information online. Be conversational and explain what tools you are using."
)

// Config represents general agent configuration
type Config struct {
	// client the gateway for interacting with the language model
	client Gateway
	// memory windowed store of completed exchanges
	memory *components.Memory
	// dispatcher resolves model-issued tool calls
	dispatcher *Dispatcher
	// model llm model
	model string
	// temperature Temperature for response generation, typically ranging from 0 to 1.
	temperature float32
	// maxTokens Maximum number of tokens allowed in the response
	maxTokens int
	// maxToolRounds tool-chaining depth bound beyond the first response
	maxToolRounds int
	// systemPrompt always placed first in the transcript
	systemPrompt string
	// name is Agent name presentation
	name string
}

// ToolAgent drives the model-gateway/tool-dispatch protocol across bounded
// rounds: it builds the transcript from memory, invokes the gateway, resolves
// any tool calls in request order, and feeds results back until the model
// produces final text or the chaining bound is reached.
type ToolAgent struct {
	Config
	usage     components.LLMUsage
	startHook func(context.Context, *ToolAgent, string)
	endHook   func(context.Context, *ToolAgent, string, string, *components.LLMResponse)
	errorHook func(context.Context, *ToolAgent, string, error)
}

// NewToolAgent initializes the ToolAgent
func NewToolAgent(options ...Option) *ToolAgent {
	ret := new(ToolAgent)
	for _, opt := range options {
		opt(&ret.Config)
	}
	if ret.memory == nil {
		ret.memory = components.NewMemory(0)
	}
	if ret.dispatcher == nil {
		ret.dispatcher = NewDispatcher()
	}
	if ret.maxToolRounds <= 0 {
		ret.maxToolRounds = DefaultMaxToolRounds
	}
	if ret.systemPrompt == "" {
		ret.systemPrompt = DefaultSystemPrompt
	}
	return ret
}

func (a ToolAgent) Name() string {
	return a.name
}

func (a *ToolAgent) SetName(name string) {
	a.name = name
}

func (a *ToolAgent) SetClient(clt Gateway) {
	a.client = clt
}

func (a *ToolAgent) SetMemory(m *components.Memory) {
	a.memory = m
}

// Memory returns the agent's exchange store.
func (a *ToolAgent) Memory() *components.Memory {
	return a.memory
}

// ResetMemory clears the retained exchanges.
func (a *ToolAgent) ResetMemory() {
	a.memory.Reset()
}

// Usage returns the accumulated token usage for this session.
func (a *ToolAgent) Usage() components.LLMUsage {
	return a.usage
}

func (a *ToolAgent) SetStartHook(fn func(context.Context, *ToolAgent, string)) {
	a.startHook = fn
}

func (a *ToolAgent) SetEndHook(fn func(context.Context, *ToolAgent, string, string, *components.LLMResponse)) {
	a.endHook = fn
}

func (a *ToolAgent) SetErrorHook(fn func(context.Context, *ToolAgent, string, error)) {
	a.errorHook = fn
}

// Process runs one user query through the bounded tool-calling loop and
// returns the final answer text.
//
// Every gateway or tool failure degrades to a user-visible error string with
// memory left untouched, so the user can retry with clean state. The only
// non-nil error returned is context cancellation, which propagates so the
// interactive session can terminate cleanly. On success exactly one exchange
// is recorded.
func (a *ToolAgent) Process(ctx context.Context, userInput string) (string, error) {
	if fn := a.startHook; fn != nil {
		fn(ctx, a, userInput)
	}
	llmResp := new(components.LLMResponse)
	messages := a.memory.BuildPrompt(a.systemPrompt, userInput)
	msg, err := a.invoke(ctx, messages, llmResp)
	if err != nil {
		return a.recoverRound(ctx, userInput, err)
	}
	for round := 0; len(msg.ToolCalls) > 0 && round < a.maxToolRounds; round++ {
		assistant := new(components.Message)
		assistant.FromOpenAI(msg)
		messages = append(messages, *assistant)
		// Calls run strictly in request order: later results may depend on
		// earlier ones being already appended to the transcript.
		for _, call := range assistant.ToolCalls() {
			result := a.dispatcher.Dispatch(ctx, call.Name, call.Arguments)
			messages = append(messages, *components.NewToolResultMessage(call.ID, result))
		}
		msg, err = a.invoke(ctx, messages, llmResp)
		if err != nil {
			return a.recoverRound(ctx, userInput, err)
		}
	}
	// If the bound was exhausted with calls still pending, this is the last
	// known textual content, possibly empty.
	final := msg.Content
	a.memory.Record(userInput, final)
	if fn := a.endHook; fn != nil {
		fn(ctx, a, userInput, final, llmResp)
	}
	return final, nil
}

// invoke sends the transcript with tool schemas to the gateway and returns
// the assistant turn.
func (a *ToolAgent) invoke(ctx context.Context, messages []components.Message, llmResp *components.LLMResponse) (*openai.ChatCompletionMessage, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:       a.model,
		Temperature: a.temperature,
		MaxTokens:   a.maxTokens,
		Tools:       ToolSchemas(),
		ToolChoice:  "auto",
	}
	for _, msg := range messages {
		v := new(openai.ChatCompletionMessage)
		msg.ToOpenAI(v)
		chatReq.Messages = append(chatReq.Messages, *v)
	}
	res, err := a.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, err
	}
	if len(res.Choices) == 0 {
		return nil, errors.New("model returned no choices")
	}
	round := new(components.LLMResponse)
	round.FromOpenAI(&res)
	a.usage.Merge(round.Usage)
	if llmResp != nil {
		usage := llmResp.Usage
		if usage == nil {
			usage = new(components.LLMUsage)
		}
		usage.Merge(round.Usage)
		*llmResp = *round
		llmResp.Usage = usage
	}
	return &res.Choices[0].Message, nil
}

// recoverRound converts a round failure into a user-visible error string,
// discarding the in-progress transcript. Context cancellation propagates.
func (a *ToolAgent) recoverRound(ctx context.Context, userInput string, err error) (string, error) {
	if fn := a.errorHook; fn != nil {
		fn(ctx, a, userInput, err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	return fmt.Sprintf("Error communicating with the model: %v", err), nil
}
