package components

import (
	"github.com/rs/xid"
	openai "github.com/sashabaranov/go-openai"

	"github.com/bububa/toolbot/schema"
)

// NewExchangeID returns a new exchange ID.
func NewExchangeID() string {
	return xid.New().String()
}

// MessageRole is the role of the message sender (e.g., 'user', 'system', 'tool')
type MessageRole = string

const (
	SystemRole    MessageRole = "system"
	UserRole      MessageRole = "user"
	AssistantRole MessageRole = "assistant"
	ToolRole      MessageRole = "tool"
)

// ToolCall is a model-issued request to run a named tool.
// ID is assigned by the model gateway and correlates the eventual tool
// result message back to this request.
type ToolCall struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	Arguments string `json:"arguments,omitempty"`
}

// Message represents one turn in the conversation transcript.
//
// Attributes:
//
//	role: the role of the message sender.
//	content: the content of the message.
//	toolCalls: tool requests carried by an assistant turn.
//	toolCallID: for a tool turn, the ID of the originating tool call.
type Message struct {
	content    schema.Schema
	role       MessageRole
	toolCalls  []ToolCall
	toolCallID string
	exchangeID string
}

// NewMessage returns a new Message
func NewMessage(role MessageRole, content schema.Schema) *Message {
	return &Message{
		role:    role,
		content: content,
	}
}

// SetExchangeID set message exchangeID
func (m *Message) SetExchangeID(exchangeID string) *Message {
	m.exchangeID = exchangeID
	return m
}

// SetToolCalls set assistant turn tool calls
func (m *Message) SetToolCalls(calls []ToolCall) *Message {
	m.toolCalls = calls
	return m
}

// SetToolCallID set tool turn originating call ID
func (m *Message) SetToolCallID(id string) *Message {
	m.toolCallID = id
	return m
}

// Role returns message role
func (m Message) Role() MessageRole {
	return m.role
}

// Content returns message content
func (m Message) Content() schema.Schema {
	return m.content
}

// StringifiedContent returns message content as plain text
func (m Message) StringifiedContent() string {
	return schema.Stringify(m.content)
}

// ToolCalls returns tool calls carried by an assistant turn
func (m Message) ToolCalls() []ToolCall {
	return m.toolCalls
}

// ToolCallID returns the originating call ID of a tool turn
func (m Message) ToolCallID() string {
	return m.toolCallID
}

// ExchangeID returns message exchangeID
func (m Message) ExchangeID() string {
	return m.exchangeID
}

// ToOpenAI convert message to openai ChatCompletionMessage
func (m Message) ToOpenAI(dist *openai.ChatCompletionMessage) {
	dist.Role = m.role
	dist.Content = schema.Stringify(m.content)
	dist.ToolCallID = m.toolCallID
	if len(m.toolCalls) > 0 {
		dist.ToolCalls = make([]openai.ToolCall, 0, len(m.toolCalls))
		for _, v := range m.toolCalls {
			dist.ToolCalls = append(dist.ToolCalls, openai.ToolCall{
				ID:   v.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      v.Name,
					Arguments: v.Arguments,
				},
			})
		}
	}
}

// FromOpenAI convert message from openai ChatCompletionMessage
func (m *Message) FromOpenAI(src *openai.ChatCompletionMessage) {
	m.role = src.Role
	m.content = schema.NewString(src.Content)
	m.toolCallID = src.ToolCallID
	if len(src.ToolCalls) > 0 {
		m.toolCalls = make([]ToolCall, 0, len(src.ToolCalls))
		for _, v := range src.ToolCalls {
			m.toolCalls = append(m.toolCalls, ToolCall{
				ID:        v.ID,
				Name:      v.Function.Name,
				Arguments: v.Function.Arguments,
			})
		}
	}
}

// NewToolResultMessage returns a tool turn carrying a stringified tool result,
// tagged with the originating call's ID.
func NewToolResultMessage(callID string, content string) *Message {
	msg := NewMessage(ToolRole, schema.NewString(content))
	msg.SetToolCallID(callID)
	return msg
}
