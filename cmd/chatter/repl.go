package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"chatter"
	"chatter/agent"
	"chatter/command"
	"chatter/config"
	"chatter/markdown"

	"github.com/charmbracelet/lipgloss"
)

// outputWidth is the wrap width for rendered assistant replies.
const outputWidth = 100

// historyPreviewLen caps message previews in the history listing.
const historyPreviewLen = 100

// repl drives the interactive loop: read a line, classify it, and either
// handle a control command locally or resolve a turn through the agent.
type repl struct {
	loop  *agent.Loop
	conv  *chatter.Conversation
	tools []chatter.Tool
	cfg   config.Config
	theme chatter.Theme

	promptStyle lipgloss.Style
	toolStyle   lipgloss.Style
	errorStyle  lipgloss.Style
	mutedStyle  lipgloss.Style
}

func newREPL(loop *agent.Loop, conv *chatter.Conversation, toolDefs []chatter.Tool, cfg config.Config, theme chatter.Theme) *repl {
	return &repl{
		loop:        loop,
		conv:        conv,
		tools:       toolDefs,
		cfg:         cfg,
		theme:       theme,
		promptStyle: lipgloss.NewStyle().Foreground(ansiColor(theme.UserMsg)).Bold(true),
		toolStyle:   lipgloss.NewStyle().Foreground(ansiColor(theme.ToolCall)),
		errorStyle:  lipgloss.NewStyle().Foreground(ansiColor(theme.Error)),
		mutedStyle:  lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)).Faint(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

// interactive runs the line-by-line loop until EOF, a quit command, or
// context cancellation.
func (r *repl) interactive(ctx context.Context, in io.Reader) error {
	fmt.Println("chatter: conversational assistant with web search")
	fmt.Println(r.mutedStyle.Render("Type 'quit', 'exit', or 'q' to end the conversation"))
	fmt.Println(r.mutedStyle.Render("Type 'clear' to clear conversation memory"))
	fmt.Println(r.mutedStyle.Render("Type 'history' to see conversation history"))
	fmt.Println()

	scanner := bufio.NewScanner(in)
	for {
		if ctx.Err() != nil {
			fmt.Println()
			return nil
		}

		fmt.Print(r.promptStyle.Render("You: "))
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}

		kind, text := command.Parse(scanner.Text())
		switch kind {
		case command.Empty:
			continue
		case command.Quit:
			fmt.Println("Goodbye!")
			return nil
		case command.Clear:
			r.conv.Clear()
			fmt.Println("Conversation memory cleared.")
			continue
		case command.History:
			r.printHistory()
			continue
		}

		r.respond(ctx, text)
	}
}

// oneShot resolves a single turn and prints the answer.
func (r *repl) oneShot(ctx context.Context, query string) error {
	answer, err := r.loop.Respond(ctx, r.conv, query, r.tools, r.turnOptions()...)
	if err != nil {
		return err
	}
	fmt.Println(markdown.Render(answer, outputWidth, r.theme))
	return nil
}

// respond resolves one interactive turn. Failures are reported and the
// loop continues; the agent has already rolled the conversation back.
func (r *repl) respond(ctx context.Context, text string) {
	answer, err := r.loop.Respond(ctx, r.conv, text, r.tools, r.turnOptions()...)
	if err != nil {
		fmt.Println(r.errorStyle.Render("Error: " + turnErrorMessage(err)))
		fmt.Println("Please try again.")
		return
	}
	fmt.Println("Assistant:")
	fmt.Println(markdown.Render(answer, outputWidth, r.theme))
	fmt.Println()
}

func (r *repl) turnOptions() []agent.Option {
	temp := r.cfg.Temperature
	return []agent.Option{
		agent.WithMaxTokens(r.cfg.MaxTokens),
		agent.WithTemperature(&temp),
		agent.WithMaxToolRounds(r.cfg.MaxToolRounds),
		agent.WithToolCallHook(func(name string, args json.RawMessage) {
			fmt.Println(r.toolStyle.Render("[" + name + "] " + toolCallSummary(name, args)))
		}),
	}
}

// printHistory lists all messages with truncated previews. It never
// mutates the conversation.
func (r *repl) printHistory() {
	if r.conv.Len() == 0 {
		fmt.Println(r.mutedStyle.Render("(empty)"))
		return
	}
	fmt.Println("Conversation history:")
	for i, msg := range r.conv.Messages {
		fmt.Printf("%d. %s: %s\n", i+1, roleLabel(msg), historyPreview(msg))
	}
}

func roleLabel(msg chatter.Message) string {
	switch msg.Role() {
	case chatter.RoleUser:
		return "You"
	case chatter.RoleAssistant:
		return "Assistant"
	default:
		return "Tool"
	}
}

// historyPreview returns a one-line preview of a message's content.
func historyPreview(msg chatter.Message) string {
	var text string
	switch m := msg.(type) {
	case chatter.UserMessage:
		text = blockText(m.Content)
	case chatter.AssistantMessage:
		if calls := m.ToolCalls(); len(calls) > 0 && m.Text() == "" {
			text = "(requested " + calls[0].Name + ")"
		} else {
			text = m.Text()
		}
	case chatter.ToolResultMessage:
		text = blockText(m.Content)
	}
	text = strings.ReplaceAll(text, "\n", " ")
	if len(text) > historyPreviewLen {
		return text[:historyPreviewLen] + "..."
	}
	return text
}

func blockText(blocks []chatter.ContentBlock) string {
	var out string
	for _, b := range blocks {
		if tb, ok := b.(chatter.TextBlock); ok {
			if out != "" {
				out += "\n"
			}
			out += tb.Text
		}
	}
	return out
}

// toolCallSummary extracts a human-readable argument from a tool call for
// the activity notice, falling back to the raw JSON.
func toolCallSummary(name string, args json.RawMessage) string {
	if name == "web_search" {
		var parsed struct {
			Query string `json:"query"`
		}
		if err := json.Unmarshal(args, &parsed); err == nil && parsed.Query != "" {
			return "searching: " + parsed.Query
		}
	}
	return string(args)
}

// turnErrorMessage maps agent errors to user-facing text.
func turnErrorMessage(err error) string {
	switch {
	case errors.Is(err, chatter.ErrModelUnavailable):
		return "the model is unavailable right now"
	case errors.Is(err, chatter.ErrTurnLimit):
		return "the model kept requesting tools without answering"
	case errors.Is(err, chatter.ErrToolNotFound):
		return "the model requested a tool this assistant does not have"
	case errors.Is(err, context.Canceled):
		return "interrupted"
	default:
		return err.Error()
	}
}
