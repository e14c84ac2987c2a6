package markdown_test

import (
	"os"
	"regexp"
	"strings"
	"testing"

	"chatter"
	"chatter/markdown"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func stripANSI(s string) string {
	re := regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)
	return re.ReplaceAllString(s, "")
}

func TestMain(m *testing.M) {
	// Force ANSI color output so styled elements (headings, links) produce
	// visible escape codes that we can assert against.
	lipgloss.SetColorProfile(termenv.ANSI)
	os.Exit(m.Run())
}

func TestRender(t *testing.T) {
	t.Parallel()

	theme := chatter.DefaultTheme()

	t.Run("empty input returns empty string", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", markdown.Render("", 80, theme))
	})

	t.Run("plain paragraph", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("hello world", 80, theme)
		assert.Contains(t, stripANSI(result), "hello world")
	})

	t.Run("heading renders content with distinct styling", func(t *testing.T) {
		t.Parallel()
		heading := markdown.Render("# Title", 80, theme)
		paragraph := markdown.Render("Title", 80, theme)
		assert.Contains(t, stripANSI(heading), "Title")
		assert.NotEqual(t, heading, paragraph)
	})

	t.Run("bold text", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("**bold**", 80, theme)
		assert.Contains(t, stripANSI(result), "bold")
	})

	t.Run("italic text", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("*italic*", 80, theme)
		assert.Contains(t, stripANSI(result), "italic")
	})

	t.Run("inline code", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("`code`", 80, theme)
		assert.Contains(t, stripANSI(result), "code")
	})

	t.Run("fenced code block preserves content without reflow", func(t *testing.T) {
		t.Parallel()
		src := "```go\nfmt.Println(\"hello search\")\n```"
		result := markdown.Render(src, 20, theme)
		assert.Contains(t, stripANSI(result), `fmt.Println("hello search")`)
	})

	t.Run("fenced code block shows language label", func(t *testing.T) {
		t.Parallel()
		src := "```python\nprint('hi')\n```"
		result := markdown.Render(src, 80, theme)
		assert.Contains(t, stripANSI(result), "python")
		assert.Contains(t, stripANSI(result), "print('hi')")
	})

	t.Run("bullet list", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("- one\n- two\n- three", 80, theme)
		stripped := stripANSI(result)
		assert.Contains(t, stripped, "- one")
		assert.Contains(t, stripped, "- two")
		assert.Contains(t, stripped, "- three")
	})

	t.Run("ordered list keeps numbering", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("1. first\n2. second\n3. third", 80, theme)
		stripped := stripANSI(result)
		assert.Contains(t, stripped, "1. first")
		assert.Contains(t, stripped, "2. second")
		assert.Contains(t, stripped, "3. third")
	})

	t.Run("nested list", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("- outer\n  - inner", 80, theme)
		stripped := stripANSI(result)
		assert.Contains(t, stripped, "- outer")
		assert.Contains(t, stripped, "  - inner")
	})

	t.Run("link shows text and URL", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("[docs](https://example.com)", 80, theme)
		stripped := stripANSI(result)
		assert.Contains(t, stripped, "docs")
		assert.Contains(t, stripped, "example.com")
	})

	t.Run("paragraph wraps to width", func(t *testing.T) {
		t.Parallel()
		long := strings.TrimSpace(strings.Repeat("word ", 20))
		result := markdown.Render(long, 30, theme)
		lines := strings.Split(stripANSI(result), "\n")
		assert.Greater(t, len(lines), 1)
		for _, line := range lines {
			assert.LessOrEqual(t, len(line), 30)
		}
	})

	t.Run("multiple paragraphs separated by blank lines", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("first paragraph\n\nsecond paragraph", 80, theme)
		stripped := stripANSI(result)
		assert.Contains(t, stripped, "first paragraph")
		assert.Contains(t, stripped, "second paragraph")
	})

	t.Run("list item continuation lines are indented", func(t *testing.T) {
		t.Parallel()
		src := "- this is a very long list item that should wrap onto continuation lines"
		result := markdown.Render(src, 30, theme)
		lines := strings.Split(stripANSI(result), "\n")
		assert.True(t, strings.HasPrefix(lines[0], "- "))
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				assert.True(t, strings.HasPrefix(line, "  "), "continuation line should be indented: %q", line)
			}
		}
	})

	t.Run("indented code block", func(t *testing.T) {
		t.Parallel()
		src := "paragraph\n\n    indented code\n    more code"
		result := markdown.Render(src, 80, theme)
		stripped := stripANSI(result)
		assert.Contains(t, stripped, "indented code")
		assert.Contains(t, stripped, "more code")
	})

	t.Run("thematic break", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("above\n\n---\n\nbelow", 80, theme)
		stripped := stripANSI(result)
		assert.Contains(t, stripped, "above")
		assert.Contains(t, stripped, "---")
		assert.Contains(t, stripped, "below")
	})

	t.Run("width zero defaults to 80", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("hello world", 0, theme)
		assert.Contains(t, stripANSI(result), "hello world")
	})

	t.Run("no trailing newline", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("text", 80, theme)
		assert.False(t, strings.HasSuffix(result, "\n"))
	})
}
