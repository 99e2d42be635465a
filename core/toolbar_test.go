package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestDefaultEntries(t *testing.T) {
	var names []string
	for _, e := range DefaultEntries() {
		names = append(names, e.Name)
	}
	want := []string{"H1", "H2", "H3", "Bold", "Italic", "Font", "Tabs", "Stamps"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("catalog order mismatch (-want +got):\n%s", diff)
	}

	tb := NewToolbar(DefaultEntries(), nil)
	for name, want := range map[string]Command{
		"H1":     SetHeadingLevel{Level: 1},
		"H3":     SetHeadingLevel{Level: 3},
		"Bold":   WrapSelection{Prefix: "**", Suffix: "**"},
		"Italic": WrapSelection{Prefix: "*", Suffix: "*"},
	} {
		entry, ok := tb.Entry(name)
		require.True(t, ok, name)
		require.False(t, entry.TriggersPopover(), name)
		require.Equal(t, want, entry.Command, name)
	}

	for name, kind := range map[string]PopoverKind{
		"Font":   PopoverColor,
		"Tabs":   PopoverSnippet,
		"Stamps": PopoverStamp,
	} {
		entry, ok := tb.Entry(name)
		require.True(t, ok, name)
		require.True(t, entry.TriggersPopover(), name)
		require.Equal(t, kind, entry.Popover, name)
		require.Nil(t, entry.Command, name)
	}
}

func TestToolbarSinglePopover(t *testing.T) {
	tb := NewToolbar(DefaultEntries(), nil)
	require.Equal(t, PopoverNone, tb.Active())

	cmd, err := tb.Click("Font")
	require.NoError(t, err)
	require.Nil(t, cmd)
	require.Equal(t, PopoverColor, tb.Active())

	_, err = tb.Click("Stamps")
	require.NoError(t, err)
	require.Equal(t, PopoverStamp, tb.Active())

	// Clicking the open popover's entry again closes it.
	_, err = tb.Click("Stamps")
	require.NoError(t, err)
	require.Equal(t, PopoverNone, tb.Active())

	_, err = tb.Click("Tabs")
	require.NoError(t, err)
	cmd, err = tb.Click("Bold")
	require.NoError(t, err)
	require.Equal(t, WrapSelection{Prefix: "**", Suffix: "**"}, cmd)
	require.Equal(t, PopoverNone, tb.Active())

	_, err = tb.Click("Strike")
	require.True(t, errors.Is(err, ErrUnknownEntry))
}

func TestToolbarSubmit(t *testing.T) {
	tb := NewToolbar(DefaultEntries(), []string{"good", "bad"})

	_, err := tb.SubmitStamp("good")
	require.True(t, errors.Is(err, ErrPopoverNotOpen))

	_, _ = tb.Click("Stamps")
	_, err = tb.SubmitStamp("tick")
	require.True(t, errors.Is(err, ErrUnknownStamp))
	require.Equal(t, PopoverStamp, tb.Active(), "invalid payload keeps popover open")

	cmd, err := tb.SubmitStamp("bad")
	require.NoError(t, err)
	require.Equal(t, InsertAtCursor{Snippet: " :bad: "}, cmd)
	require.Equal(t, PopoverNone, tb.Active())

	_, _ = tb.Click("Tabs")
	_, err = tb.SubmitColor(ColorSize{Color: "red", Size: 12})
	require.True(t, errors.Is(err, ErrPopoverNotOpen))
	require.Equal(t, PopoverSnippet, tb.Active())

	cmd, err = tb.SubmitSnippet("| a | b |")
	require.NoError(t, err)
	require.Equal(t, InsertAtCursor{Snippet: "| a | b |"}, cmd)

	_, _ = tb.Click("Font")
	cmd, err = tb.SubmitColor(ColorSize{Color: "#ff0000", Size: 18})
	require.NoError(t, err)
	require.Equal(t, WrapSelection{
		Prefix: "<span style=\"color:#ff0000;font-size:18px\">\n\n",
		Suffix: "\n\n</span>",
	}, cmd)
	require.Equal(t, PopoverNone, tb.Active())
}

func TestColorSizeValidate(t *testing.T) {
	tests := []struct {
		payload ColorSize
		err     error
	}{
		{ColorSize{Color: "red", Size: 16}, nil},
		{ColorSize{Color: "#abc", Size: MinFontSize}, nil},
		{ColorSize{Color: "#A0B1C2", Size: MaxFontSize}, nil},
		{ColorSize{Color: "", Size: 16}, ErrInvalidColor},
		{ColorSize{Color: "#abcd", Size: 16}, ErrInvalidColor},
		{ColorSize{Color: "#ggg", Size: 16}, ErrInvalidColor},
		{ColorSize{Color: `red"><script>`, Size: 16}, ErrInvalidColor},
		{ColorSize{Color: "blue", Size: MinFontSize - 1}, ErrInvalidFontSize},
		{ColorSize{Color: "blue", Size: MaxFontSize + 1}, ErrInvalidFontSize},
	}

	for _, tt := range tests {
		err := tt.payload.Validate()
		if tt.err == nil {
			require.NoError(t, err, "%+v", tt.payload)
			continue
		}
		require.True(t, errors.Is(err, tt.err), "%+v: %v", tt.payload, err)
		require.Equal(t, tt.err, errors.Cause(err))
	}
}

func TestExpandSnippet(t *testing.T) {
	require.Equal(t, "a\nb", ExpandSnippet(`a\nb`))
	require.Equal(t, "plain", ExpandSnippet("plain"))
}

func TestErrorIdOf(t *testing.T) {
	require.Equal(t, ErrUnknownStampId, ErrorIdOf(errors.Wrap(ErrUnknownStamp, "x")))
	require.Equal(t, ErrPopoverNotOpenId, ErrorIdOf(ErrPopoverNotOpen))
	require.Equal(t, ErrClipboardId, ErrorIdOf(newError(ErrClipboardId, errors.New("boom"))))
	require.Equal(t, ErrUnknownId, ErrorIdOf(errors.New("other")))
}
