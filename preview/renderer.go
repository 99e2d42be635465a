// Package preview turns Markdown source into the HTML shown next to the editor.
package preview

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ionut-t/previewedit/core"
)

// Renderer holds one converter per safety mode. Both are built once and are
// safe for concurrent use.
type Renderer struct {
	safe   goldmark.Markdown
	unsafe goldmark.Markdown

	extensions []goldmark.Extender
	hardWraps  bool
	xhtml      bool
}

type Option func(*Renderer)

// WithExtensions replaces the default GFM extension set.
func WithExtensions(ext ...goldmark.Extender) Option {
	return func(r *Renderer) {
		r.extensions = ext
	}
}

// WithHardWraps controls whether single newlines become <br>. Enabled by
// default, matching how text typed into the editor is laid out.
func WithHardWraps(enabled bool) Option {
	return func(r *Renderer) {
		r.hardWraps = enabled
	}
}

func WithXHTML(enabled bool) Option {
	return func(r *Renderer) {
		r.xhtml = enabled
	}
}

func New(opts ...Option) *Renderer {
	r := &Renderer{
		extensions: []goldmark.Extender{extension.GFM},
		hardWraps:  true,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.safe = r.build(false)
	r.unsafe = r.build(true)
	return r
}

func (r *Renderer) build(unsafe bool) goldmark.Markdown {
	var htmlOpts []renderer.Option
	if r.hardWraps {
		htmlOpts = append(htmlOpts, html.WithHardWraps())
	}
	if r.xhtml {
		htmlOpts = append(htmlOpts, html.WithXHTML())
	}
	if unsafe {
		htmlOpts = append(htmlOpts, html.WithUnsafe())
	}

	return goldmark.New(
		goldmark.WithExtensions(r.extensions...),
		goldmark.WithRendererOptions(htmlOpts...),
	)
}

// Render converts content to HTML. When safe is true raw HTML in the source
// is omitted and dangerous link targets are dropped.
func (r *Renderer) Render(content string, safe bool) (string, error) {
	md := r.unsafe
	if safe {
		md = r.safe
	}

	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		return "", errors.Wrap(err, "failed to convert markdown")
	}
	return buf.String(), nil
}

// RenderFunc adapts r for core.WithPreviewRenderer.
func (r *Renderer) RenderFunc() core.RenderFunc {
	return r.Render
}
