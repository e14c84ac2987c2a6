// Package tools implements the tools the assistant may invoke mid-turn,
// and the fixed name-to-tool dispatch table.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"chatter"
	"chatter/logger"
)

// SearchToolName is the tool name advertised to the model.
const SearchToolName = "web_search"

// NoResultsText is returned when a search legitimately finds nothing.
// It is valid content, not an error: the model should tell the user that
// nothing was found rather than apologize for a failure.
const NoResultsText = "No search results found."

const summaryPromptFormat = `Summarize the following web search results for the query %q.
Remove redundant information, irrelevant details, and repetitive content.
Provide a clear, concise answer that directly addresses the question and nothing else.

Search results:
%s

Summary:`

// SearchTool searches the web and condenses the results before they are
// handed back to the conversation. Condensation is a second LLM pass; when
// that pass fails the raw formatted snippets are returned instead, so a
// summarizer outage never fails the tool call.
type SearchTool struct {
	search     chatter.SearchProvider
	summarizer chatter.Provider
	model      string
	maxTokens  int
}

// SearchToolOption configures a [SearchTool].
type SearchToolOption func(*SearchTool)

// WithSummarizerModel sets the model used for the summarization pass.
func WithSummarizerModel(model string) SearchToolOption {
	return func(t *SearchTool) { t.model = model }
}

// WithSummaryMaxTokens caps the summary length. Zero means provider default.
func WithSummaryMaxTokens(n int) SearchToolOption {
	return func(t *SearchTool) { t.maxTokens = n }
}

// NewSearchTool creates the web search tool. A nil summarizer disables the
// condensation pass; results are then returned as formatted snippets.
func NewSearchTool(search chatter.SearchProvider, summarizer chatter.Provider, opts ...SearchToolOption) *SearchTool {
	t := &SearchTool{search: search, summarizer: summarizer}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Definition returns the schema advertised to the model.
func (t *SearchTool) Definition() chatter.Tool {
	return chatter.Tool{
		Name:        SearchToolName,
		Description: "Search the web for current information. Use this when you need to find recent or real-time information.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"query": {
					"type": "string",
					"description": "The search query"
				}
			},
			"required": ["query"]
		}`),
	}
}

type searchArgs struct {
	Query string `json:"query"`
}

// Execute runs one search. Domain failures (bad arguments, backend errors)
// come back as IsError results so the model can react; only programming
// errors return a Go error.
func (t *SearchTool) Execute(ctx context.Context, args json.RawMessage) (*chatter.ToolResult, error) {
	var a searchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return domainError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if strings.TrimSpace(a.Query) == "" {
		return domainError("query must not be empty"), nil
	}

	logger.Info("web search", "query", a.Query)
	results, err := t.search.Search(ctx, a.Query)
	if err != nil {
		logger.Error("web search failed", "query", a.Query, "error", err)
		return domainError(fmt.Sprintf("web search failed: %v", err)), nil
	}
	if len(results) == 0 {
		return textResult(NoResultsText), nil
	}

	formatted := formatResults(results)
	summary, err := t.summarize(ctx, a.Query, formatted)
	if err != nil {
		logger.Warn("summarization failed, returning raw snippets", "error", err)
		return textResult(formatted), nil
	}
	return textResult(summary), nil
}

// summarize condenses formatted search results through the LLM.
func (t *SearchTool) summarize(ctx context.Context, query, formatted string) (string, error) {
	if t.summarizer == nil {
		return formatted, nil
	}

	temp := 0.2
	req := chatter.Request{
		Model: t.model,
		Messages: []chatter.Message{
			chatter.UserMessage{Content: []chatter.ContentBlock{
				chatter.TextBlock{Text: fmt.Sprintf(summaryPromptFormat, query, formatted)},
			}},
		},
		MaxTokens:   t.maxTokens,
		Temperature: &temp,
	}

	msg, err := t.summarizer.Generate(ctx, req)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(msg.Text())
	if text == "" {
		return "", fmt.Errorf("summarizer returned no text")
	}
	return text, nil
}

// formatResults renders results as a numbered snippet list.
func formatResults(results []chatter.SearchResult) string {
	var sb strings.Builder
	for i, r := range results {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%d. %s\n", i+1, r.Title)
		if r.Snippet != "" {
			fmt.Fprintf(&sb, "   %s\n", r.Snippet)
		}
		if r.URL != "" {
			fmt.Fprintf(&sb, "   %s\n", r.URL)
		}
	}
	return sb.String()
}

func textResult(text string) *chatter.ToolResult {
	return &chatter.ToolResult{
		Content: []chatter.ContentBlock{chatter.TextBlock{Text: text}},
	}
}

func domainError(msg string) *chatter.ToolResult {
	return &chatter.ToolResult{
		Content: []chatter.ContentBlock{chatter.TextBlock{Text: msg}},
		IsError: true,
	}
}
