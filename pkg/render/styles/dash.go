package styles

import (
	"bytes"
	"fmt"

	"github.com/fogleman/gg"
)

// Dash draws each streamline as a dashed stroke. In SVG output the dash
// pattern marches along the flow direction via a CSS animation, which
// gives a cheap animated impression of the field's motion.
type Dash struct{}

// Name returns "dash".
func (Dash) Name() string { return "dash" }

// RenderDefs writes the marching-dash keyframes shared by every line.
func (Dash) RenderDefs(buf *bytes.Buffer, cfg Config) {
	period := cfg.DashLen + cfg.GapLen
	fmt.Fprintf(buf, `<style>
.dash {
  stroke-dasharray: %.2f %.2f;
  animation: march %.2fs linear infinite;
}
@keyframes march {
  to { stroke-dashoffset: -%.2f; }
}
</style>
`, cfg.DashLen, cfg.GapLen, cfg.DashPeriod, period)
}

// RenderLine writes a dashed polyline carrying the animation class.
func (Dash) RenderLine(buf *bytes.Buffer, pl Polyline, cfg Config) {
	fmt.Fprintf(buf, `<polyline class="dash" fill="none" stroke="%s" stroke-width="%.2f" stroke-linecap="round" points="`,
		cfg.Color, cfg.LineWidth)
	writePoints(buf, pl.Points)
	buf.WriteString(`"/>` + "\n")
}

// Draw strokes the polyline with a static dash pattern.
func (Dash) Draw(dc *gg.Context, pl Polyline, cfg Config) {
	dc.SetHexColor(cfg.Color)
	dc.SetLineWidth(cfg.LineWidth)
	dc.SetLineCapRound()
	dc.SetDash(cfg.DashLen, cfg.GapLen)
	strokePath(dc, pl.Points)
	dc.Stroke()
	dc.SetDash()
}
