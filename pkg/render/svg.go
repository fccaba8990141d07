package render

import (
	"bytes"
	"fmt"

	"github.com/flowlines/flowlines/pkg/render/styles"
	"github.com/flowlines/flowlines/pkg/streamline"
)

// Option configures a renderer.
type Option func(*renderer)

type renderer struct {
	style   styles.Style
	width   int
	height  int
	bounds  *viewport
	cfg     styles.Config
	bgColor string
	drawBG  bool
}

// WithStyle sets the visual style (default [styles.Line]).
func WithStyle(s styles.Style) Option { return func(r *renderer) { r.style = s } }

// WithSize sets the canvas dimensions in pixels (default 800x600).
func WithSize(w, h int) Option {
	return func(r *renderer) { r.width, r.height = w, h }
}

// WithBounds fixes the field-space viewport instead of deriving it from
// the dataset extent.
func WithBounds(x0, y0, x1, y1 float64) Option {
	return func(r *renderer) { r.bounds = &viewport{x0: x0, y0: y0, x1: x1, y1: y1} }
}

// WithColor sets the stroke color as a hex string.
func WithColor(c string) Option { return func(r *renderer) { r.cfg.Color = c } }

// WithLineWidth sets the base stroke width in pixels.
func WithLineWidth(w float64) Option { return func(r *renderer) { r.cfg.LineWidth = w } }

// WithBackground fills the canvas with a solid color before drawing.
func WithBackground(c string) Option {
	return func(r *renderer) { r.bgColor, r.drawBG = c, true }
}

func newRenderer(opts ...Option) renderer {
	r := renderer{
		style:  styles.Line{},
		width:  800,
		height: 600,
		cfg:    styles.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r *renderer) viewport(ds *streamline.Dataset) viewport {
	if r.bounds != nil && r.bounds.valid() {
		return *r.bounds
	}
	return datasetViewport(ds)
}

// SVG renders the dataset as an SVG document. Output is deterministic:
// the same dataset and options produce identical bytes.
func SVG(ds *streamline.Dataset, opts ...Option) []byte {
	r := newRenderer(opts...)
	m := newMapping(r.viewport(ds), r.width, r.height)
	lines := buildPolylines(ds, m, r.cfg.LineWidth)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		r.width, r.height, r.width, r.height)

	if r.drawBG {
		fmt.Fprintf(&buf, `<rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.bgColor)
	}

	r.style.RenderDefs(&buf, r.cfg)
	for _, pl := range lines {
		r.style.RenderLine(&buf, pl, r.cfg)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
