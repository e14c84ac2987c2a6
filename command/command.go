// Package command classifies interactive input lines. A line is either a
// control command (quit, clear, history) or a chat message for the model.
package command

import "strings"

// Kind identifies what an input line asks for.
type Kind int

const (
	// Message is a regular chat message to send to the model.
	Message Kind = iota
	// Empty is a blank line, ignored by the loop.
	Empty
	// Quit ends the session. Recognized spellings: quit, exit, q.
	Quit
	// Clear truncates the conversation to empty.
	Clear
	// History prints the conversation without mutating it.
	History
)

// Parse classifies a raw input line. Command matching is case-insensitive
// and ignores surrounding whitespace; anything unrecognized is a Message
// with its surrounding whitespace trimmed.
func Parse(line string) (Kind, string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Empty, ""
	}
	switch strings.ToLower(trimmed) {
	case "quit", "exit", "q":
		return Quit, ""
	case "clear":
		return Clear, ""
	case "history":
		return History, ""
	}
	return Message, trimmed
}
