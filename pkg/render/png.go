package render

import (
	"bytes"

	"github.com/fogleman/gg"

	"github.com/flowlines/flowlines/pkg/errors"
	"github.com/flowlines/flowlines/pkg/streamline"
)

// PNG rasterizes the dataset with the same geometry as [SVG].
func PNG(ds *streamline.Dataset, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	m := newMapping(r.viewport(ds), r.width, r.height)
	lines := buildPolylines(ds, m, r.cfg.LineWidth)

	dc := gg.NewContext(r.width, r.height)
	if r.drawBG {
		dc.SetHexColor(r.bgColor)
	} else {
		dc.SetHexColor("#ffffff")
	}
	dc.Clear()

	for _, pl := range lines {
		r.style.Draw(dc, pl, r.cfg)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encoding PNG")
	}
	return buf.Bytes(), nil
}
