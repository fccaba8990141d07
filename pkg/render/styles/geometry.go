package styles

import (
	"bytes"
	"fmt"
	"math"
)

// placement is a point on a polyline with its local unit tangent.
type placement struct {
	p      Pt
	tx, ty float64
}

// walk returns placements spaced `every` units of arc length along the
// polyline, starting half an interval in so glyphs never sit on endpoints.
func walk(pl Polyline, every float64) []placement {
	if every <= 0 || len(pl.Points) < 2 {
		return nil
	}

	var out []placement
	next := every / 2
	walked := 0.0

	for i := 1; i < len(pl.Points); i++ {
		a, b := pl.Points[i-1], pl.Points[i]
		seg := math.Hypot(b.X-a.X, b.Y-a.Y)
		if seg == 0 {
			continue
		}
		for next <= walked+seg {
			t := (next - walked) / seg
			out = append(out, placement{
				p:  Pt{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)},
				tx: (b.X - a.X) / seg,
				ty: (b.Y - a.Y) / seg,
			})
			next += every
		}
		walked += seg
	}
	return out
}

// ribbon converts a polyline with per-point widths into a closed outline:
// the left offsets followed by the right offsets in reverse.
func ribbon(pl Polyline) []Pt {
	n := len(pl.Points)
	if n < 2 {
		return nil
	}

	left := make([]Pt, n)
	right := make([]Pt, n)
	for i, p := range pl.Points {
		nx, ny := normalAt(pl.Points, i)
		h := pl.Width[i] / 2
		left[i] = Pt{X: p.X + nx*h, Y: p.Y + ny*h}
		right[i] = Pt{X: p.X - nx*h, Y: p.Y - ny*h}
	}

	out := make([]Pt, 0, 2*n)
	out = append(out, left...)
	for i := n - 1; i >= 0; i-- {
		out = append(out, right[i])
	}
	return out
}

// normalAt returns the unit normal at point i, averaging the directions of
// the adjacent segments at interior points.
func normalAt(points []Pt, i int) (nx, ny float64) {
	var dx, dy float64
	if i > 0 {
		dx += points[i].X - points[i-1].X
		dy += points[i].Y - points[i-1].Y
	}
	if i < len(points)-1 {
		dx += points[i+1].X - points[i].X
		dy += points[i+1].Y - points[i].Y
	}
	mag := math.Hypot(dx, dy)
	if mag == 0 {
		return 0, 0
	}
	return -dy / mag, dx / mag
}

// writePoints writes the points attribute value for SVG polyline/polygon
// elements.
func writePoints(buf *bytes.Buffer, points []Pt) {
	for i, p := range points {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(buf, "%.2f,%.2f", p.X, p.Y)
	}
}
