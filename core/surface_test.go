package core

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type renderCall struct {
	content string
	safe    bool
}

type recordingRenderer struct {
	calls []renderCall
	err   error
}

func (r *recordingRenderer) render(content string, safe bool) (string, error) {
	r.calls = append(r.calls, renderCall{content, safe})
	if r.err != nil {
		return "", r.err
	}
	return "<p>" + content + "</p>", nil
}

func (r *recordingRenderer) last() renderCall {
	return r.calls[len(r.calls)-1]
}

type memoryClipboard struct {
	content string
	err     error
}

func (c *memoryClipboard) Write(text string) error {
	if c.err != nil {
		return c.err
	}
	c.content = text
	return nil
}

func (c *memoryClipboard) Read() (string, error) {
	return c.content, c.err
}

func newTestSurface(t *testing.T, content string, opts ...Option) (*Surface, *recordingRenderer, *[]ChangeEvent) {
	t.Helper()
	r := &recordingRenderer{}
	var events []ChangeEvent
	opts = append([]Option{
		WithPreviewRenderer(r.render),
		WithOnChange(func(e ChangeEvent) { events = append(events, e) }),
	}, opts...)
	return New(content, opts...), r, &events
}

// drain returns all signals currently queued.
func drain(s *Surface) []Signal {
	var out []Signal
	for {
		select {
		case sig := <-s.GetUpdateSignalChan():
			out = append(out, sig)
		default:
			return out
		}
	}
}

func TestSurfaceNew(t *testing.T) {
	s, r, events := newTestSurface(t, "hello")

	require.Equal(t, "hello", s.GetContent())
	require.Equal(t, Caret(5), s.Selection())
	require.Equal(t, StateIdle, s.State())
	require.Empty(t, *events)
	require.Equal(t, []renderCall{{"hello", true}}, r.calls)
	require.Equal(t, "<p>hello</p>", s.Preview())
}

func TestSurfaceOnUserEdit(t *testing.T) {
	s, r, events := newTestSurface(t, "", WithSafe(false))

	s.OnUserEdit("abc", Selection{Start: 3, End: 3})

	require.Equal(t, "abc", s.GetContent())
	require.Equal(t, []ChangeEvent{{
		Content:   "abc",
		Selection: Caret(3),
		Source:    SourceUserEdit,
	}}, *events)
	require.Equal(t, renderCall{"abc", false}, r.last())

	// Stale offsets are clamped to the new text.
	s.OnUserEdit("a", Selection{Start: 2, End: 9})
	require.Equal(t, Caret(1), s.Selection())
}

func TestSurfaceSetContent(t *testing.T) {
	s, r, events := newTestSurface(t, "old text")
	s.SetSelection(Selection{Start: 1, End: 3})

	s.SetContent("new")

	require.Equal(t, "new", s.GetContent())
	require.Equal(t, Caret(3), s.Selection())
	require.Empty(t, *events)
	require.Equal(t, renderCall{"new", true}, r.last())
}

func TestSurfaceOnCommandReadsLiveSelection(t *testing.T) {
	live := Caret(0)
	s, r, events := newTestSurface(t, "hello\nworld",
		WithSelectionSource(SelectionFunc(func() Selection { return live })))

	live = Caret(6)
	s.OnCommand(SetHeadingLevel{Level: 2})

	require.Equal(t, "hello\n## world", s.GetContent())
	require.Len(t, *events, 1)
	require.Equal(t, SourceCommand, (*events)[0].Source)
	require.Equal(t, "heading-2", (*events)[0].Command)
	require.Equal(t, renderCall{"hello\n## world", true}, r.last())

	live = Selection{Start: 0, End: 5}
	s.OnCommand(SymmetricWrap("*"))
	require.Equal(t, "*hello*\n## world", s.GetContent())
}

func TestSurfaceNoOpCommandDoesNotNotify(t *testing.T) {
	s, r, events := newTestSurface(t, "abc")
	s.SetSelection(Caret(1))
	renders := len(r.calls)

	s.OnCommand(WrapSelection{Prefix: "**", Suffix: "**"})

	require.Equal(t, "abc", s.GetContent())
	require.Empty(t, *events)
	require.Len(t, r.calls, renders)
}

func TestSurfaceToolbarFlow(t *testing.T) {
	s, _, events := newTestSurface(t, "abc")
	s.SetSelection(Selection{Start: 1, End: 2})

	require.NoError(t, s.Click("Italic"))
	require.Equal(t, "a*b*c", s.GetContent())
	require.Equal(t, Selection{Start: 2, End: 3}, s.Selection())

	require.NoError(t, s.Click("Font"))
	require.Equal(t, StatePopoverActive, s.State())
	require.Equal(t, PopoverColor, s.ActivePopover())

	require.NoError(t, s.Click("Tabs"))
	require.Equal(t, PopoverSnippet, s.ActivePopover())

	s.ClickOutside()
	require.Equal(t, StateIdle, s.State())
	require.Equal(t, "a*b*c", s.GetContent(), "cancelling leaves the buffer alone")

	require.NoError(t, s.Click("Font"))
	require.NoError(t, s.SubmitColor(ColorSize{Color: "teal", Size: 20}))
	require.Equal(t, StateIdle, s.State())
	require.Equal(t, "a*<span style=\"color:teal;font-size:20px\">\n\nb\n\n</span>*c", s.GetContent())

	require.NoError(t, s.Click("Stamps"))
	s.SetSelection(Caret(0))
	require.NoError(t, s.SubmitStamp("good"))
	require.Equal(t, " :good: a*", s.GetContent()[:10])
	require.Equal(t, Caret(8), s.Selection())

	require.Len(t, *events, 3)
}

func TestSurfaceSubmitErrors(t *testing.T) {
	s, _, events := newTestSurface(t, "abc", WithStamps([]string{"ok"}))
	drain(s)

	err := s.SubmitSnippet("x")
	require.True(t, errors.Is(err, ErrPopoverNotOpen))

	require.NoError(t, s.Click("Stamps"))
	err = s.SubmitStamp("good")
	require.True(t, errors.Is(err, ErrUnknownStamp))
	require.Equal(t, StatePopoverActive, s.State())
	require.Equal(t, "abc", s.GetContent())
	require.Empty(t, *events)

	err = s.Click("Nope")
	require.True(t, errors.Is(err, ErrUnknownEntry))

	var ids []ErrorId
	for _, sig := range drain(s) {
		if e, ok := sig.(ErrorSignal); ok {
			id, _ := e.Value()
			ids = append(ids, id)
		}
	}
	require.Equal(t, []ErrorId{ErrPopoverNotOpenId, ErrUnknownStampId, ErrUnknownEntryId}, ids)
}

func TestSurfaceSignals(t *testing.T) {
	s, _, _ := newTestSurface(t, "x")
	drain(s)

	require.NoError(t, s.Click("Tabs"))
	require.NoError(t, s.SubmitSnippet("y"))

	signals := drain(s)
	require.Equal(t, PopoverSignal{popover: PopoverSnippet}, signals[0])
	require.Equal(t, PopoverSignal{popover: PopoverNone}, signals[1])

	content, source := signals[2].(ChangeSignal).Value()
	require.Equal(t, "xy", content)
	require.Equal(t, SourceCommand, source)

	markup, safe := signals[3].(PreviewSignal).Value()
	require.Equal(t, "<p>xy</p>", markup)
	require.True(t, safe)

	id, msg := signals[4].(MessageSignal).Value()
	require.Equal(t, SnippetMessage, id)
	require.Equal(t, SnippetMessage, msg)
}

func TestSurfaceSignalChannelNeverBlocks(t *testing.T) {
	s := New("", WithSignalBuffer(1))
	for i := 0; i < 10; i++ {
		s.OnUserEdit("a", Caret(1))
	}
	require.Len(t, drain(s), 1)
}

func TestSurfacePreviewError(t *testing.T) {
	s, r, _ := newTestSurface(t, "ok")
	drain(s)
	r.err = errors.New("boom")

	s.OnUserEdit("broken", Caret(0))

	require.Equal(t, "<p>ok</p>", s.Preview(), "previous preview is kept")
	var found bool
	for _, sig := range drain(s) {
		if e, ok := sig.(ErrorSignal); ok {
			id, err := e.Value()
			require.Equal(t, ErrPreviewId, id)
			require.True(t, errors.Is(err, ErrPreview))
			found = true
		}
	}
	require.True(t, found)
}

func TestSurfaceSetSafe(t *testing.T) {
	s, r, _ := newTestSurface(t, "<b>x</b>")
	s.SetSafe(false)
	require.False(t, s.Safe())
	require.Equal(t, renderCall{"<b>x</b>", false}, r.last())

	calls := len(r.calls)
	s.SetSafe(false)
	require.Len(t, r.calls, calls)
}

func TestSurfaceClipboard(t *testing.T) {
	cb := &memoryClipboard{}
	s, _, _ := newTestSurface(t, "hello world", WithClipboard(cb))

	s.SetSelection(Selection{Start: 0, End: 5})
	require.NoError(t, s.Copy())
	require.Equal(t, "hello", cb.content)

	s.SetSelection(Selection{Start: 6, End: 11})
	require.NoError(t, s.Paste())
	require.Equal(t, "hello hello", s.GetContent())
	require.Equal(t, Caret(11), s.Selection())

	cb.err = errors.New("no display")
	err := s.Paste()
	require.True(t, errors.Is(err, ErrClipboard))

	s2 := New("x")
	require.True(t, errors.Is(s2.Copy(), ErrClipboard))
}

func messages(signals []Signal) []string {
	var out []string
	for _, sig := range signals {
		if m, ok := sig.(MessageSignal); ok {
			_, text := m.Value()
			out = append(out, text)
		}
	}
	return out
}

func TestSurfaceFeedbackMessages(t *testing.T) {
	cb := &memoryClipboard{}
	s, _, _ := newTestSurface(t, "hello", WithClipboard(cb))
	drain(s)

	s.SetSelection(Selection{Start: 0, End: 2})
	require.NoError(t, s.Copy())
	s.SetSelection(Caret(5))
	require.NoError(t, s.Paste())
	require.NoError(t, s.Click("Stamps"))
	s.ClickOutside()
	s.ClickOutside()

	require.Equal(t, []string{CopiedMessage, PastedMessage, PopoverClosedMsg}, messages(drain(s)))
	require.Equal(t, "hellohe", s.GetContent())
}

func TestSurfaceDispatchMessage(t *testing.T) {
	s, _, _ := newTestSurface(t, "")
	drain(s)

	s.DispatchMessage(StampMessage)
	s.DispatchMessage("saved", "3 bytes written")

	signals := drain(s)
	require.Len(t, signals, 2)
	id, text := signals[0].(MessageSignal).Value()
	require.Equal(t, StampMessage, id)
	require.Equal(t, StampMessage, text)
	id, text = signals[1].(MessageSignal).Value()
	require.Equal(t, "saved", id)
	require.Equal(t, "3 bytes written", text)
}
