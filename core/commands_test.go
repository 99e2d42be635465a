package core

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var sampleTexts = []string{
	"",
	"a",
	"abc",
	"hello\nworld",
	"# Old Title\nbody",
	"## x\n\n###   y\n#",
	"héllo wörld\n🇫🇷 flag",
	"#not a heading but stripped",
}

// forEachBuffer calls fn for every well-formed selection over every sample text.
func forEachBuffer(t *testing.T, fn func(t *testing.T, b Buffer)) {
	t.Helper()
	for _, text := range sampleTexts {
		n := utf8.RuneCountInString(text)
		for start := 0; start <= n; start++ {
			for end := start; end <= n; end++ {
				fn(t, Buffer{Text: text, Start: start, End: end})
			}
		}
	}
}

func TestApplyHeadingLevel(t *testing.T) {
	tests := []struct {
		name  string
		in    Buffer
		level int
		want  Buffer
	}{
		{
			name:  "second line",
			in:    Buffer{Text: "hello\nworld", Start: 6, End: 6},
			level: 2,
			want:  Buffer{Text: "hello\n## world", Start: 9, End: 9},
		},
		{
			name:  "replaces existing marker",
			in:    Buffer{Text: "# Old Title\nbody", Start: 0, End: 0},
			level: 3,
			want:  Buffer{Text: "### Old Title\nbody", Start: 4, End: 4},
		},
		{
			name:  "empty buffer",
			in:    Buffer{},
			level: 1,
			want:  Buffer{Text: "# ", Start: 2, End: 2},
		},
		{
			name:  "marker without space",
			in:    Buffer{Text: "#Title", Start: 3, End: 3},
			level: 2,
			want:  Buffer{Text: "## Title", Start: 5, End: 5},
		},
		{
			name:  "caret before newline stays on its line",
			in:    Buffer{Text: "ab\ncd", Start: 2, End: 2},
			level: 1,
			want:  Buffer{Text: "# ab\ncd", Start: 4, End: 4},
		},
		{
			name:  "caret after trailing newline",
			in:    Buffer{Text: "ab\n", Start: 3, End: 3},
			level: 1,
			want:  Buffer{Text: "ab\n# ", Start: 5, End: 5},
		},
		{
			name:  "demotes and keeps rest of line",
			in:    Buffer{Text: "x\n###   deep  title\ny", Start: 10, End: 15},
			level: 1,
			want:  Buffer{Text: "x\n# deep  title\ny", Start: 6, End: 11},
		},
		{
			name:  "level above max is clamped",
			in:    Buffer{Text: "t", Start: 0, End: 0},
			level: 9,
			want:  Buffer{Text: "###### t", Start: 7, End: 7},
		},
		{
			name:  "level below one is clamped",
			in:    Buffer{Text: "t", Start: 0, End: 0},
			level: 0,
			want:  Buffer{Text: "# t", Start: 2, End: 2},
		},
		{
			name:  "out of range selection",
			in:    Buffer{Text: "a\nb", Start: 40, End: -3},
			level: 2,
			want:  Buffer{Text: "## a\nb", Start: 3, End: 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyHeadingLevel(tt.in, tt.level)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("ApplyHeadingLevel() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyHeadingLevelIdempotent(t *testing.T) {
	for level := 1; level <= MaxHeadingLevel; level++ {
		forEachBuffer(t, func(t *testing.T, b Buffer) {
			once := ApplyHeadingLevel(b, level)
			twice := ApplyHeadingLevel(once, level)
			require.Equal(t, once.Text, twice.Text, "level %d on %+v", level, b)
		})
	}
}

func TestApplyHeadingLevelOnlyTouchesOneLine(t *testing.T) {
	forEachBuffer(t, func(t *testing.T, b Buffer) {
		got := ApplyHeadingLevel(b, 2)
		before := strings.Split(b.Text, "\n")
		after := strings.Split(got.Text, "\n")
		require.Len(t, after, len(before))

		changed := 0
		for i := range before {
			if before[i] != after[i] {
				changed++
				require.True(t, strings.HasPrefix(after[i], "## "))
				require.Equal(t, strings.TrimLeft(strings.TrimLeft(before[i], "#"), " "), strings.TrimPrefix(after[i], "## "))
			}
		}
		require.LessOrEqual(t, changed, 1)
	})
}

func TestWrap(t *testing.T) {
	got := Wrap(Buffer{Text: "abc", Start: 1, End: 2}, "*", "*")
	require.Equal(t, Buffer{Text: "a*b*c", Start: 2, End: 3}, got)

	got = Wrap(Buffer{Text: "héllo wörld", Start: 6, End: 11}, "**", "**")
	require.Equal(t, "héllo **wörld**", got.Text)
	require.Equal(t, "wörld", got.Selected())

	got = Wrap(Buffer{Text: "abc", Start: 2, End: 1}, "<", ">")
	require.Equal(t, "a<b>c", got.Text)
}

func TestWrapEmptySelectionIsIdentity(t *testing.T) {
	forEachBuffer(t, func(t *testing.T, b Buffer) {
		if !b.Selection().IsEmpty() {
			return
		}
		require.Equal(t, b, Wrap(b, "**", "**"))
		require.Equal(t, b, WrapSymmetric(b, "*"))
	})
}

func TestWrapPreservesSelection(t *testing.T) {
	prefix, suffix := "<span>\n\n", "\n\n</span>"
	forEachBuffer(t, func(t *testing.T, b Buffer) {
		if b.Selection().IsEmpty() {
			return
		}
		got := Wrap(b, prefix, suffix)
		require.Equal(t, b.Len()+utf8.RuneCountInString(prefix)+utf8.RuneCountInString(suffix), got.Len())
		require.Equal(t, b.Selected(), got.Selected())

		runes := []rune(got.Text)
		require.Equal(t, prefix, string(runes[got.Start-utf8.RuneCountInString(prefix):got.Start]))
		require.Equal(t, suffix, string(runes[got.End:got.End+utf8.RuneCountInString(suffix)]))
	})
}

func TestInsertText(t *testing.T) {
	got := InsertText(Buffer{Text: "abc", Start: 1, End: 1}, "XYZ")
	require.Equal(t, Buffer{Text: "aXYZbc", Start: 4, End: 4}, got)

	got = InsertText(Buffer{Text: "abc", Start: 0, End: 3}, "")
	require.Equal(t, Buffer{Text: "", Start: 0, End: 0}, got)

	got = InsertText(Buffer{Text: "abc", Start: -5, End: 99}, "X")
	require.Equal(t, Buffer{Text: "X", Start: 1, End: 1}, got)
}

func TestInsertTextFormula(t *testing.T) {
	for _, snippet := range []string{"", "XYZ", " :good: ", "\n"} {
		forEachBuffer(t, func(t *testing.T, b Buffer) {
			runes := []rune(b.Text)
			want := string(runes[:b.Start]) + snippet + string(runes[b.End:])
			require.Equal(t, want, InsertText(b, snippet).Text)
		})
	}
}

func TestCommandDescriptors(t *testing.T) {
	b := Buffer{Text: "abc", Start: 1, End: 2}

	require.Equal(t, "a*b*c", SymmetricWrap("*").Apply(b).Text)
	require.Equal(t, "a>bc", WrapSelection{Prefix: ">"}.Apply(b).Text)
	require.Equal(t, "ab<c", WrapSelection{Suffix: "<"}.Apply(b).Text)
	require.Equal(t, "a[b]c", WrapSelection{Prefix: "[", Suffix: "]"}.Apply(b).Text)
	require.Equal(t, "aXc", InsertAtCursor{Snippet: "X"}.Apply(b).Text)
	require.Equal(t, "# abc", SetHeadingLevel{Level: 1}.Apply(b).Text)

	require.Equal(t, "heading-2", SetHeadingLevel{Level: 2}.Name())
	require.Equal(t, "wrap", WrapSelection{}.Name())
	require.Equal(t, "insert", InsertAtCursor{}.Name())
}

func TestCommandsKeepInvalidUTF8(t *testing.T) {
	// Latin-1 bytes outside the edited range must survive byte for byte.
	got := ApplyHeadingLevel(Buffer{Text: "caf\xe9\nbody", Start: 5, End: 5}, 1)
	require.Equal(t, "caf\xe9\n# body", got.Text)
	require.Equal(t, Caret(7), got.Selection())

	got = ApplyHeadingLevel(Buffer{Text: "#\xff title", Start: 0, End: 0}, 2)
	require.Equal(t, "## \xff title", got.Text)

	got = InsertText(Buffer{Text: "a\xffb", Start: 0, End: 0}, "X")
	require.Equal(t, "Xa\xffb", got.Text)

	got = InsertText(Buffer{Text: "a\xffb", Start: 2, End: 3}, "Y")
	require.Equal(t, "a\xffY", got.Text)
	require.Equal(t, Caret(3), got.Selection())

	got = Wrap(Buffer{Text: "\xe9ab\xe9", Start: 1, End: 3}, "**", "**")
	require.Equal(t, "\xe9**ab**\xe9", got.Text)
	require.Equal(t, "ab", got.Selected())

	require.Equal(t, "\xff", Buffer{Text: "a\xffb", Start: 1, End: 2}.Selected())
}

func TestBufferClamp(t *testing.T) {
	require.Equal(t, Buffer{Text: "abc", Start: 0, End: 3}, Buffer{Text: "abc", Start: -1, End: 10}.Clamp())
	require.Equal(t, Buffer{Text: "abc", Start: 1, End: 2}, Buffer{Text: "abc", Start: 2, End: 1}.Clamp())
	require.Equal(t, Buffer{Text: "", Start: 0, End: 0}, Buffer{Start: 4, End: 4}.Clamp())
	require.Equal(t, Buffer{Text: "ab", Start: 2, End: 2}, NewBuffer("ab"))
	require.Equal(t, "é", Buffer{Text: "héllo", Start: 1, End: 2}.Selected())
}
