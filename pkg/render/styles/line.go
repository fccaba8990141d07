package styles

import (
	"bytes"
	"fmt"

	"github.com/fogleman/gg"
)

// Line draws each streamline as a plain constant-width stroke.
type Line struct{}

// Name returns "line".
func (Line) Name() string { return "line" }

// RenderDefs writes nothing; plain lines need no shared defs.
func (Line) RenderDefs(buf *bytes.Buffer, cfg Config) {}

// RenderLine writes a single SVG polyline.
func (Line) RenderLine(buf *bytes.Buffer, pl Polyline, cfg Config) {
	buf.WriteString(`<polyline fill="none" stroke-linecap="round" stroke-linejoin="round" points="`)
	writePoints(buf, pl.Points)
	fmt.Fprintf(buf, `" stroke="%s" stroke-width="%.2f"/>`+"\n", cfg.Color, cfg.LineWidth)
}

// Draw strokes the polyline onto the raster canvas.
func (Line) Draw(dc *gg.Context, pl Polyline, cfg Config) {
	strokePath(dc, pl.Points)
	dc.SetHexColor(cfg.Color)
	dc.SetLineWidth(cfg.LineWidth)
	dc.SetLineCapRound()
	dc.Stroke()
}

// strokePath loads a polyline into the current gg path.
func strokePath(dc *gg.Context, points []Pt) {
	for i, p := range points {
		if i == 0 {
			dc.MoveTo(p.X, p.Y)
		} else {
			dc.LineTo(p.X, p.Y)
		}
	}
}
