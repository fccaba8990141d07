package render

import (
	"math"

	"github.com/flowlines/flowlines/pkg/render/styles"
	"github.com/flowlines/flowlines/pkg/streamline"
)

const canvasMargin = 20.0

// viewport is a field-space rectangle mapped onto the canvas.
type viewport struct {
	x0, y0, x1, y1 float64
}

func (v viewport) valid() bool {
	return v.x1 > v.x0 && v.y1 > v.y0
}

// datasetViewport returns the bounding box of every point in the dataset,
// padded so degenerate extents (a single line, or a single point) still
// form a usable viewport.
func datasetViewport(ds *streamline.Dataset) viewport {
	v := viewport{
		x0: math.Inf(1), y0: math.Inf(1),
		x1: math.Inf(-1), y1: math.Inf(-1),
	}
	for _, line := range ds.Streamlines() {
		for _, p := range line.Points {
			v.x0 = math.Min(v.x0, p.X)
			v.y0 = math.Min(v.y0, p.Y)
			v.x1 = math.Max(v.x1, p.X)
			v.y1 = math.Max(v.y1, p.Y)
		}
	}
	if math.IsInf(v.x0, 1) {
		return viewport{x0: 0, y0: 0, x1: 1, y1: 1}
	}
	if v.x1 == v.x0 {
		v.x0, v.x1 = v.x0-0.5, v.x1+0.5
	}
	if v.y1 == v.y0 {
		v.y0, v.y1 = v.y0-0.5, v.y1+0.5
	}
	return v
}

// mapping converts field coordinates to canvas coordinates: uniform scale,
// centered, y flipped so field-up is canvas-up.
type mapping struct {
	scale          float64
	offX, offY     float64
	height         float64
	viewY0, viewX0 float64
}

func newMapping(v viewport, width, height int) mapping {
	w := float64(width) - 2*canvasMargin
	h := float64(height) - 2*canvasMargin
	scale := math.Min(w/(v.x1-v.x0), h/(v.y1-v.y0))

	usedW := (v.x1 - v.x0) * scale
	usedH := (v.y1 - v.y0) * scale
	return mapping{
		scale:  scale,
		offX:   (float64(width) - usedW) / 2,
		offY:   (float64(height) - usedH) / 2,
		height: float64(height),
		viewX0: v.x0,
		viewY0: v.y0,
	}
}

func (m mapping) apply(p streamline.Point) styles.Pt {
	return styles.Pt{
		X: m.offX + (p.X-m.viewX0)*m.scale,
		Y: m.height - (m.offY + (p.Y-m.viewY0)*m.scale),
	}
}

// buildPolylines maps every streamline into canvas space and derives the
// per-point stroke widths used by the taper style. Widths scale linearly
// with each point's separation sample relative to the dataset maximum,
// floored so crowded regions stay visible.
func buildPolylines(ds *streamline.Dataset, m mapping, lineWidth float64) []styles.Polyline {
	maxSep := 0.0
	for _, line := range ds.Streamlines() {
		for _, s := range line.Sep {
			maxSep = math.Max(maxSep, s)
		}
	}

	maxWidth := lineWidth * 3
	out := make([]styles.Polyline, 0, ds.Len())
	for _, line := range ds.Streamlines() {
		pl := styles.Polyline{
			Points: make([]styles.Pt, len(line.Points)),
			Width:  make([]float64, len(line.Points)),
		}
		for i, p := range line.Points {
			pl.Points[i] = m.apply(p)
			w := lineWidth
			if maxSep > 0 && i < len(line.Sep) {
				w = math.Max(maxWidth*line.Sep[i]/maxSep, maxWidth/4)
			}
			pl.Width[i] = w
		}
		out = append(out, pl)
	}
	return out
}
