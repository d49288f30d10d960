package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/bububa/toolbot/agents"
	"github.com/bububa/toolbot/components"
	"github.com/bububa/toolbot/config"
	"github.com/bububa/toolbot/tools/websearch"
)

func main() {
	configPath := flag.String("config", "", "path to a toolbot.yaml config file")
	verbose := flag.Bool("verbose", false, "trace model rounds and tool calls to stderr")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	agent := newAgent(cfg, *verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println("Tool Calling Bot")
	fmt.Println("Available tools: calculator, current time, web search")
	fmt.Println("Type 'quit' to exit, 'help' for commands")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		if ctx.Err() != nil {
			fmt.Println("\nGoodbye!")
			return
		}
		fmt.Print("You: ")
		if !scanner.Scan() {
			fmt.Println("\nGoodbye!")
			return
		}
		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit", "q":
			fmt.Println("Goodbye!")
			return
		case "help":
			printHelp()
			continue
		case "reset":
			agent.ResetMemory()
			fmt.Println("Conversation history cleared.")
			continue
		case "usage":
			usage := agent.Usage()
			fmt.Printf("Session usage: %d input tokens, %d output tokens\n", usage.InputTokens, usage.OutputTokens)
			continue
		}
		reply, err := agent.Process(ctx, line)
		if err != nil {
			// Only user-initiated interruption reaches here.
			fmt.Println("\nGoodbye!")
			return
		}
		fmt.Printf("\nBot: %s\n\n", reply)
	}
}

func newAgent(cfg *config.Config, verbose bool) *agents.ToolAgent {
	clientCfg := openai.DefaultConfig(cfg.Model.APIKey)
	if cfg.Model.BaseURL != "" {
		clientCfg.BaseURL = cfg.Model.BaseURL
	}
	clt := openai.NewClientWithConfig(clientCfg)
	dispatcher := agents.NewDispatcher(
		agents.WithSearchTool(websearch.New(
			websearch.WithBaseURL(cfg.Search.BaseURL),
			websearch.WithTimeout(cfg.Search.Timeout),
		)),
	)
	opts := []agents.Option{
		agents.WithClient(clt),
		agents.WithDispatcher(dispatcher),
		agents.WithMemory(components.NewMemory(cfg.Agent.MemoryWindow)),
		agents.WithModel(cfg.Model.Name),
		agents.WithTemperature(cfg.Model.Temperature),
		agents.WithMaxTokens(cfg.Model.MaxTokens),
		agents.WithMaxToolRounds(cfg.Agent.MaxToolRounds),
		agents.WithName("toolbot"),
	}
	if cfg.Agent.SystemPrompt != "" {
		opts = append(opts, agents.WithSystemPrompt(cfg.Agent.SystemPrompt))
	}
	agent := agents.NewToolAgent(opts...)
	if verbose {
		agent.SetStartHook(func(ctx context.Context, a *agents.ToolAgent, input string) {
			fmt.Fprintf(os.Stderr, "[trace] query: %s\n", input)
		})
		agent.SetEndHook(func(ctx context.Context, a *agents.ToolAgent, input string, output string, resp *components.LLMResponse) {
			if resp != nil && resp.Usage != nil {
				fmt.Fprintf(os.Stderr, "[trace] round done: %d input tokens, %d output tokens\n", resp.Usage.InputTokens, resp.Usage.OutputTokens)
			}
		})
		agent.SetErrorHook(func(ctx context.Context, a *agents.ToolAgent, input string, err error) {
			fmt.Fprintf(os.Stderr, "[trace] round failed: %v\n", err)
		})
	}
	return agent
}

func printHelp() {
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("- Ask math questions: 'What's 15% of 847?'")
	fmt.Println("- Ask for time: 'What time is it in Tokyo?'")
	fmt.Println("- Search the web: 'Search for Go tutorials'")
	fmt.Println("- Type 'reset' to clear conversation history")
	fmt.Println("- Type 'usage' to show session token usage")
	fmt.Println("- Type 'quit' to exit")
	fmt.Println()
}
