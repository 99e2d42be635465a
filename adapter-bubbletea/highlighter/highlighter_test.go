package highlighter

import (
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func lineText(tokens []chroma.Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteString(t.Value)
	}
	return sb.String()
}

func TestTokenizeSplitsLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no trailing newline", "# Title\n**bold** text\n- item\n> quote"},
		{"trailing newline", "a\nb\n"},
		{"html block", "<span style=\"color:red\">\n\nb\n\n</span>"},
		{"single line", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New("markdown", "monokai")
			h.Tokenize(tt.content)

			want := strings.Split(tt.content, "\n")
			require.Equal(t, len(want), h.LineCount())
			for i, line := range want {
				require.Equal(t, line, lineText(h.Line(i)), "line %d", i)
			}
			require.Nil(t, h.Line(len(want)))
			require.Nil(t, h.Line(-1))
		})
	}
}

func TestTokenizeEmpty(t *testing.T) {
	h := New("markdown", "monokai")
	h.Tokenize("")
	require.Equal(t, 1, h.LineCount())
	require.Empty(t, h.Line(0))
}

func TestUnknownLanguageFallsBack(t *testing.T) {
	h := New("no-such-language", "no-such-theme")
	h.Tokenize("x\ny")
	require.Equal(t, "x", lineText(h.Line(0)))
	require.Equal(t, "y", lineText(h.Line(1)))
}

func TestRenderKeepsText(t *testing.T) {
	h := New("html", "dracula")
	src := "<h1>Title</h1>\n<p>a<br>\nb</p>"
	require.Equal(t, src, ansi.Strip(h.Render(src)))

	h.SetTheme("github")
	require.Equal(t, src, ansi.Strip(h.Render(src)))
}

func TestStyleIsCached(t *testing.T) {
	h := New("markdown", "monokai")
	first := h.Style(chroma.GenericHeading)
	require.Len(t, h.styleCache, 1)
	require.Equal(t, first.Render("x"), h.Style(chroma.GenericHeading).Render("x"))
}

func TestSpans(t *testing.T) {
	spans := Spans([]chroma.Token{
		{Type: chroma.GenericHeading, Value: "# é"},
		{Type: chroma.Text, Value: "xy"},
	})
	require.Equal(t, []Span{
		{Type: chroma.GenericHeading, Start: 0, End: 3},
		{Type: chroma.Text, Start: 3, End: 5},
	}, spans)

	typ, ok := TypeAt(spans, 2)
	require.True(t, ok)
	require.Equal(t, chroma.GenericHeading, typ)

	typ, ok = TypeAt(spans, 4)
	require.True(t, ok)
	require.Equal(t, chroma.Text, typ)

	_, ok = TypeAt(spans, 5)
	require.False(t, ok)
}
