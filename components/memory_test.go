package components

import (
	"fmt"
	"testing"
)

func TestMemoryWindowEviction(t *testing.T) {
	window := 3
	mem := NewMemory(window)
	for i := 0; i < window+1; i++ {
		mem.Record(fmt.Sprintf("question %d", i), fmt.Sprintf("answer %d", i))
	}
	if n := mem.ExchangeCount(); n != window {
		t.Fatalf("expecting %d exchanges, but got %d", window, n)
	}
	history := mem.History()
	if history[0].User() != "question 1" {
		t.Errorf("oldest exchange should be evicted, but got %s", history[0].User())
	}
	if history[window-1].User() != fmt.Sprintf("question %d", window) {
		t.Errorf("newest exchange missing, got %s", history[window-1].User())
	}
}

func TestBuildPromptOrder(t *testing.T) {
	mem := NewMemory(3)
	mem.Record("first question", "first answer")
	mem.Record("second question", "second answer")
	messages := mem.BuildPrompt("system prompt", "new question")
	if len(messages) != 6 {
		t.Fatalf("expecting 6 turns, but got %d", len(messages))
	}
	expect := []struct {
		role    MessageRole
		content string
	}{
		{SystemRole, "system prompt"},
		{UserRole, "first question"},
		{AssistantRole, "first answer"},
		{UserRole, "second question"},
		{AssistantRole, "second answer"},
		{UserRole, "new question"},
	}
	for idx, e := range expect {
		if messages[idx].Role() != e.role {
			t.Errorf("turn %d: expecting role %s, but got %s", idx, e.role, messages[idx].Role())
		}
		if messages[idx].StringifiedContent() != e.content {
			t.Errorf("turn %d: expecting %q, but got %q", idx, e.content, messages[idx].StringifiedContent())
		}
	}
}

func TestBuildPromptExcludesEvicted(t *testing.T) {
	mem := NewMemory(2)
	mem.Record("dropped", "dropped answer")
	mem.Record("kept one", "kept answer one")
	mem.Record("kept two", "kept answer two")
	messages := mem.BuildPrompt("system", "next")
	for _, msg := range messages {
		if msg.StringifiedContent() == "dropped" {
			t.Error("evicted exchange should not appear in the prompt")
		}
	}
	if len(messages) != 6 {
		t.Errorf("expecting 6 turns, but got %d", len(messages))
	}
}

func TestMemoryReset(t *testing.T) {
	mem := NewMemory(3)
	mem.Record("q", "a")
	mem.Reset()
	if n := mem.ExchangeCount(); n != 0 {
		t.Errorf("expecting empty memory after reset, but got %d", n)
	}
}

func TestMemoryCopy(t *testing.T) {
	src := NewMemory(3)
	src.Record("q1", "a1")
	src.Record("q2", "a2")
	dst := NewMemory(0)
	dst.Copy(src)
	if dst.ExchangeCount() != src.ExchangeCount() {
		t.Errorf("expecting %d exchanges, but got %d", src.ExchangeCount(), dst.ExchangeCount())
	}
	if dst.MaxExchanges() != src.MaxExchanges() {
		t.Errorf("expecting window %d, but got %d", src.MaxExchanges(), dst.MaxExchanges())
	}
}
