package highlighter

import (
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// Highlighter tokenizes a whole document with a chroma lexer and hands the
// tokens out per line, so multi-line constructs (fenced code, HTML blocks)
// are colored correctly.
type Highlighter struct {
	lexer chroma.Lexer
	style *chroma.Style

	mu         sync.RWMutex
	source     string
	tokenized  bool
	lines      [][]chroma.Token
	styleCache map[chroma.TokenType]lipgloss.Style
}

// Span is a token's rune range within its line.
type Span struct {
	Type       chroma.TokenType
	Start, End int
}

// New creates a highlighter for language using the named chroma style.
// Unknown languages fall back to plain text and unknown themes to chroma's
// fallback style.
func New(language string, theme string) *Highlighter {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}

	return &Highlighter{
		lexer:      chroma.Coalesce(lexer),
		style:      styles.Get(theme),
		styleCache: make(map[chroma.TokenType]lipgloss.Style),
	}
}

// SetTheme switches the chroma style and drops cached styles.
func (h *Highlighter) SetTheme(theme string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.style = styles.Get(theme)
	h.styleCache = make(map[chroma.TokenType]lipgloss.Style)
}

// Tokenize splits content into per-line tokens. Calling it again with the
// same content is a no-op.
func (h *Highlighter) Tokenize(content string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.tokenized && content == h.source {
		return
	}
	h.source = content
	h.tokenized = true
	h.lines = [][]chroma.Token{{}}

	if content == "" {
		return
	}

	iterator, err := h.lexer.Tokenise(nil, content)
	if err != nil {
		// Keep one plain token per line so rendering still works.
		h.lines = h.lines[:0]
		for _, line := range strings.Split(content, "\n") {
			h.lines = append(h.lines, []chroma.Token{{Type: chroma.Text, Value: line}})
		}
		return
	}

	lineNum := 0
	for _, token := range iterator.Tokens() {
		value := token.Value
		for strings.Contains(value, "\n") {
			before, after, _ := strings.Cut(value, "\n")
			if before != "" {
				h.lines[lineNum] = append(h.lines[lineNum], chroma.Token{Type: token.Type, Value: before})
			}
			lineNum++
			h.lines = append(h.lines, []chroma.Token{})
			value = after
		}
		if value != "" {
			h.lines[lineNum] = append(h.lines[lineNum], chroma.Token{Type: token.Type, Value: value})
		}
	}

	// Lexers add a trailing newline; drop the empty line it creates unless the
	// source really ended with one.
	if !strings.HasSuffix(content, "\n") && len(h.lines) > 1 && len(h.lines[len(h.lines)-1]) == 0 {
		h.lines = h.lines[:len(h.lines)-1]
	}
}

// Line returns the tokens of line n from the last Tokenize call.
func (h *Highlighter) Line(n int) []chroma.Token {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if n < 0 || n >= len(h.lines) {
		return nil
	}
	return h.lines[n]
}

func (h *Highlighter) LineCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.lines)
}

// Style converts a chroma token type to a lipgloss style.
func (h *Highlighter) Style(tokenType chroma.TokenType) lipgloss.Style {
	h.mu.RLock()
	style, ok := h.styleCache[tokenType]
	h.mu.RUnlock()
	if ok {
		return style
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	entry := h.style.Get(tokenType)

	style = lipgloss.NewStyle()
	if entry.Colour.IsSet() {
		style = style.Foreground(lipgloss.Color(entry.Colour.String()))
	}
	if entry.Bold == chroma.Yes {
		style = style.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		style = style.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		style = style.Underline(true)
	}

	h.styleCache[tokenType] = style
	return style
}

// Render returns content fully styled, one output line per source line.
func (h *Highlighter) Render(content string) string {
	h.Tokenize(content)

	h.mu.RLock()
	lines := h.lines
	h.mu.RUnlock()

	var sb strings.Builder
	for i, tokens := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, token := range tokens {
			sb.WriteString(h.Style(token.Type).Render(token.Value))
		}
	}
	return sb.String()
}

// Spans converts tokens to rune ranges in their line.
func Spans(tokens []chroma.Token) []Span {
	spans := make([]Span, 0, len(tokens))
	col := 0
	for _, token := range tokens {
		n := len([]rune(token.Value))
		spans = append(spans, Span{Type: token.Type, Start: col, End: col + n})
		col += n
	}
	return spans
}

// TypeAt finds the token type covering col.
func TypeAt(spans []Span, col int) (chroma.TokenType, bool) {
	for _, s := range spans {
		if col >= s.Start && col < s.End {
			return s.Type, true
		}
	}
	return chroma.Text, false
}
