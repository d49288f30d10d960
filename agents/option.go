package agents

import (
	"github.com/bububa/toolbot/components"
)

type Option func(a *Config)

func WithClient(clt Gateway) Option {
	return func(c *Config) {
		c.client = clt
	}
}

func WithMemory(m *components.Memory) Option {
	return func(c *Config) {
		c.memory = m
	}
}

func WithDispatcher(d *Dispatcher) Option {
	return func(c *Config) {
		c.dispatcher = d
	}
}

func WithModel(model string) Option {
	return func(c *Config) {
		c.model = model
	}
}

func WithTemperature(temperature float32) Option {
	return func(c *Config) {
		c.temperature = temperature
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(c *Config) {
		c.maxTokens = maxTokens
	}
}

func WithMaxToolRounds(rounds int) Option {
	return func(c *Config) {
		c.maxToolRounds = rounds
	}
}

func WithSystemPrompt(prompt string) Option {
	return func(c *Config) {
		c.systemPrompt = prompt
	}
}

func WithName(name string) Option {
	return func(c *Config) {
		c.name = name
	}
}
