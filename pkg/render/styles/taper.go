package styles

import (
	"bytes"
	"fmt"

	"github.com/fogleman/gg"
)

// Taper draws each streamline as a filled ribbon whose width follows the
// per-point widths of the polyline, so lines thin out where neighbors
// crowd in and thicken in open space.
type Taper struct{}

// Name returns "taper".
func (Taper) Name() string { return "taper" }

// RenderDefs writes nothing.
func (Taper) RenderDefs(buf *bytes.Buffer, cfg Config) {}

// RenderLine writes the ribbon outline as a filled polygon. Lines too
// short to have an outline fall back to a plain stroke.
func (Taper) RenderLine(buf *bytes.Buffer, pl Polyline, cfg Config) {
	outline := ribbon(pl)
	if len(outline) < 3 {
		Line{}.RenderLine(buf, pl, cfg)
		return
	}
	fmt.Fprintf(buf, `<polygon fill="%s" stroke="none" points="`, cfg.Color)
	writePoints(buf, outline)
	buf.WriteString(`"/>` + "\n")
}

// Draw fills the ribbon outline on the raster canvas.
func (Taper) Draw(dc *gg.Context, pl Polyline, cfg Config) {
	outline := ribbon(pl)
	if len(outline) < 3 {
		Line{}.Draw(dc, pl, cfg)
		return
	}
	dc.SetHexColor(cfg.Color)
	dc.MoveTo(outline[0].X, outline[0].Y)
	for _, p := range outline[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.ClosePath()
	dc.Fill()
}
