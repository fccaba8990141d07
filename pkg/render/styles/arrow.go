package styles

import (
	"bytes"
	"fmt"

	"github.com/fogleman/gg"
)

// Arrow draws each streamline as a plain stroke decorated with direction
// arrowheads at regular arc-length intervals.
type Arrow struct{}

// Name returns "arrow".
func (Arrow) Name() string { return "arrow" }

// RenderDefs writes nothing; arrowheads are emitted inline per line.
func (Arrow) RenderDefs(buf *bytes.Buffer, cfg Config) {}

// RenderLine writes the stroke and its arrowhead glyphs.
func (Arrow) RenderLine(buf *bytes.Buffer, pl Polyline, cfg Config) {
	Line{}.RenderLine(buf, pl, cfg)

	for _, g := range walk(pl, cfg.ArrowEvery) {
		a, b, c := arrowhead(g, cfg.ArrowSize)
		fmt.Fprintf(buf, `<polygon fill="%s" points="%.2f,%.2f %.2f,%.2f %.2f,%.2f"/>`+"\n",
			cfg.Color, a.X, a.Y, b.X, b.Y, c.X, c.Y)
	}
}

// Draw strokes the polyline and fills the arrowhead triangles.
func (Arrow) Draw(dc *gg.Context, pl Polyline, cfg Config) {
	Line{}.Draw(dc, pl, cfg)

	dc.SetHexColor(cfg.Color)
	for _, g := range walk(pl, cfg.ArrowEvery) {
		a, b, c := arrowhead(g, cfg.ArrowSize)
		dc.MoveTo(a.X, a.Y)
		dc.LineTo(b.X, b.Y)
		dc.LineTo(c.X, c.Y)
		dc.ClosePath()
		dc.Fill()
	}
}

// arrowhead returns the triangle for a direction glyph: tip ahead of the
// placement point, base corners behind and to either side.
func arrowhead(g placement, size float64) (tip, left, right Pt) {
	nx, ny := -g.ty, g.tx
	tip = Pt{X: g.p.X + g.tx*size, Y: g.p.Y + g.ty*size}
	left = Pt{X: g.p.X - g.tx*size/2 + nx*size/2, Y: g.p.Y - g.ty*size/2 + ny*size/2}
	right = Pt{X: g.p.X - g.tx*size/2 - nx*size/2, Y: g.p.Y - g.ty*size/2 - ny*size/2}
	return tip, left, right
}
