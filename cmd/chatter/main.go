// Command chatter is a conversational assistant with full-session memory
// and a web search tool.
//
// Usage:
//
//	GEMINI_API_KEY=gk-... chatter              Interactive chat
//	GEMINI_API_KEY=gk-... chatter <question>   One-shot answer, then exit
//
// Flags:
//
//	-config string   Path to config file (default ~/.chatter/config.json)
//	-model string    Model ID (overrides config)
//
// Interactive commands: quit/exit/q ends the session, clear wipes the
// conversation memory, history prints it.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"chatter"
	"chatter/agent"
	"chatter/config"
	"chatter/gemini"
	"chatter/logger"
	"chatter/tools"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "chatter: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", config.DefaultPath(), "Path to config file")
		model      = flag.String("model", "", "Model ID (overrides config)")
	)
	flag.Parse()

	// Handle OS signals for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *model != "" {
		cfg.Model = *model
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Init(cfg.LogLevel, cfg.LogFile)

	provider, err := gemini.New(ctx, cfg.GeminiAPIKey,
		gemini.WithModel(cfg.Model),
		gemini.WithTimeout(time.Duration(cfg.APITimeoutSecs)*time.Second))
	if err != nil {
		return err
	}

	search, err := resolveSearch(cfg)
	if err != nil {
		return err
	}
	searchTool := tools.NewSearchTool(search, provider,
		tools.WithSummarizerModel(cfg.Model))
	executor := tools.NewExecutor(searchTool)

	loop := agent.New(provider, executor)
	conv := chatter.NewConversation(cfg.SystemPrompt)

	r := newREPL(loop, conv, executor.Definitions(), cfg, chatter.DefaultTheme())

	if args := flag.Args(); len(args) > 0 {
		return r.oneShot(ctx, strings.Join(args, " "))
	}
	return r.interactive(ctx, os.Stdin)
}
