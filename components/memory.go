package components

import (
	"sync"

	"github.com/bububa/toolbot/schema"
)

// DefaultMaxExchanges is the sliding window size used when none is configured.
const DefaultMaxExchanges = 3

// Exchange is one completed user-query/final-answer pair.
// It is created only after a round completes successfully and never mutated.
type Exchange struct {
	// id is Unique identifier of the exchange.
	id string
	// user is the user query text.
	user string
	// assistant is the final answer text.
	assistant string
}

// NewExchange returns a new Exchange
func NewExchange(user string, assistant string) *Exchange {
	return &Exchange{
		id:        NewExchangeID(),
		user:      user,
		assistant: assistant,
	}
}

// ID returns exchange ID
func (e Exchange) ID() string {
	return e.id
}

// User returns the user query text
func (e Exchange) User() string {
	return e.user
}

// Assistant returns the final answer text
func (e Exchange) Assistant() string {
	return e.assistant
}

type MemoryStore interface {
	MaxExchanges() int
	Record(user string, assistant string) *Exchange
	BuildPrompt(systemPrompt string, userInput string) []Message
	History() []Exchange
	Reset() MemoryStore
	Copy(MemoryStore)
	ExchangeCount() int
}

// Memory manages the windowed chat history for an AI agent.
// It retains only the most recent maxExchanges exchanges; older ones are
// dropped, never archived.
// threadsafe
type Memory struct {
	// exchanges is a list of completed exchanges, oldest first.
	exchanges []Exchange
	// maxExchanges is the maximum number of exchanges to keep in history.
	// When exceeded, oldest exchanges are removed first.
	maxExchanges int
	// mtx sync lock
	mtx *sync.RWMutex
}

var _ MemoryStore = (*Memory)(nil)

// NewMemory initializes the Memory with an empty history and optional constraints.
func NewMemory(maxExchanges int) *Memory {
	if maxExchanges <= 0 {
		maxExchanges = DefaultMaxExchanges
	}
	return &Memory{
		maxExchanges: maxExchanges,
		exchanges:    make([]Exchange, 0, maxExchanges+1),
		mtx:          new(sync.RWMutex),
	}
}

// MaxExchanges returns the sliding window size
func (m *Memory) MaxExchanges() int {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return m.maxExchanges
}

// SetMaxExchanges set the sliding window size
func (m *Memory) SetMaxExchanges(maxExchanges int) *Memory {
	m.mtx.Lock()
	m.maxExchanges = maxExchanges
	m.mtx.Unlock()
	return m
}

// Record appends a completed exchange and manages window overflow.
func (m *Memory) Record(user string, assistant string) *Exchange {
	ex := NewExchange(user, assistant)
	m.mtx.Lock()
	m.exchanges = append(m.exchanges, *ex)
	if l := len(m.exchanges); m.maxExchanges > 0 && l > m.maxExchanges {
		m.exchanges = m.exchanges[l-m.maxExchanges:]
	}
	m.mtx.Unlock()
	return ex
}

// BuildPrompt reconstructs the bounded transcript: the system turn first,
// then each retained exchange's user/assistant turns in chronological order,
// then the new user turn last.
func (m *Memory) BuildPrompt(systemPrompt string, userInput string) []Message {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	messages := make([]Message, 0, len(m.exchanges)*2+2)
	messages = append(messages, *NewMessage(SystemRole, schema.NewString(systemPrompt)))
	for _, ex := range m.exchanges {
		messages = append(messages, *NewMessage(UserRole, schema.NewString(ex.user)).SetExchangeID(ex.id))
		messages = append(messages, *NewMessage(AssistantRole, schema.NewString(ex.assistant)).SetExchangeID(ex.id))
	}
	messages = append(messages, *NewMessage(UserRole, schema.NewString(userInput)))
	return messages
}

// SetHistory set a copy of exchange history
func (m *Memory) SetHistory(exchanges []Exchange) *Memory {
	m.mtx.Lock()
	m.exchanges = make([]Exchange, len(exchanges))
	copy(m.exchanges, exchanges)
	m.mtx.Unlock()
	return m
}

// History retrieves the retained exchanges, oldest first.
func (m *Memory) History() []Exchange {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return m.exchanges
}

// Copy creates a copy of the chat memory.
func (m *Memory) Copy(src MemoryStore) {
	m.SetMaxExchanges(src.MaxExchanges())
	m.SetHistory(src.History())
}

func (m *Memory) Reset() MemoryStore {
	m.mtx.Lock()
	m.exchanges = make([]Exchange, 0, m.maxExchanges)
	m.mtx.Unlock()
	return m
}

// ExchangeCount returns the number of retained exchanges.
func (m *Memory) ExchangeCount() int {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return len(m.exchanges)
}
