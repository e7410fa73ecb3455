package markdown

import (
	"bytes"
	stdhtml "html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Result is the outcome of a single render.
type Result struct {
	// HTML is the rendered fragment.
	HTML string
	// Attachments lists the local images referenced by the source, in order
	// of first appearance.
	Attachments []Attachment
	// Err is set when the engine failed and HTML holds the escaped source.
	Err error
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithExtensions replaces the default goldmark extension set.
func WithExtensions(exts ...goldmark.Extender) Option {
	return func(r *Renderer) {
		r.extensions = exts
	}
}

// WithHardWraps renders soft line breaks as <br>.
func WithHardWraps() Option {
	return func(r *Renderer) {
		r.hardWraps = true
	}
}

// WithSafeMode drops raw HTML from the source instead of passing it through.
func WithSafeMode() Option {
	return func(r *Renderer) {
		r.safe = true
	}
}

// Renderer converts report Markdown into an HTML fragment.
// It holds configuration only, so a single instance can be shared.
type Renderer struct {
	extensions []goldmark.Extender
	hardWraps  bool
	safe       bool
}

// NewRenderer creates a Renderer with GFM tables, strikethrough, linkify,
// task lists and footnotes enabled. Raw HTML is passed through unless
// WithSafeMode is given.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		extensions: []goldmark.Extender{
			extension.Table,
			extension.Strikethrough,
			extension.Linkify,
			extension.TaskList,
			extension.Footnote,
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render converts src to HTML. Local image paths are resolved against baseDir.
//
// Render never fails: if the engine returns an error the escaped source is
// returned inside a <pre> block and Result.Err records the cause.
func (r *Renderer) Render(src, baseDir string) Result {
	images := newImageRenderer(baseDir)
	engine := r.engine(images)

	var buf bytes.Buffer
	if err := engine.Convert([]byte(src), &buf); err != nil {
		return Result{
			HTML: "<pre>" + stdhtml.EscapeString(src) + "</pre>\n",
			Err:  err,
		}
	}
	return Result{
		HTML:        buf.String(),
		Attachments: images.attachments(),
	}
}

// engine builds a fresh goldmark instance per call so the image renderer's
// per-render state never leaks between renders.
func (r *Renderer) engine(images *imageRenderer) goldmark.Markdown {
	rendererOptions := []renderer.Option{
		renderer.WithNodeRenderers(util.Prioritized(images, 100)),
	}
	if r.hardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	if !r.safe {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	return goldmark.New(
		goldmark.WithExtensions(r.extensions...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(rendererOptions...),
	)
}
