package streamline

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/flowlines/flowlines/pkg/errors"
)

// jsonDataset is the wire form of a Dataset: points as [x, y] pairs, the
// separation samples as a parallel array. The format is stable so traced
// datasets can be cached and re-rendered without re-seeding.
type jsonDataset struct {
	Streamlines []jsonStreamline `json:"streamlines"`
}

type jsonStreamline struct {
	Points [][2]float64 `json:"points"`
	Sep    []float64    `json:"sep,omitempty"`
}

// WriteJSON encodes a Dataset as JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip rendering.
func WriteJSON(d *Dataset, w io.Writer) error {
	out := jsonDataset{Streamlines: make([]jsonStreamline, d.Len())}
	for i, line := range d.Streamlines() {
		js := jsonStreamline{
			Points: make([][2]float64, len(line.Points)),
			Sep:    line.Sep,
		}
		for k, p := range line.Points {
			js.Points[k] = [2]float64{p.X, p.Y}
		}
		out.Streamlines[i] = js
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// ReadJSON decodes a Dataset previously written by [WriteJSON].
// It fails with an INVALID_INPUT error when a streamline's separation array
// does not match its point count.
func ReadJSON(r io.Reader) (*Dataset, error) {
	var in jsonDataset
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode dataset")
	}

	ds := &Dataset{}
	for i, js := range in.Streamlines {
		if js.Sep != nil && len(js.Sep) != len(js.Points) {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"streamline %d has %d separation samples for %d points", i, len(js.Sep), len(js.Points))
		}
		line := Streamline{
			Points: make([]Point, len(js.Points)),
			Sep:    js.Sep,
		}
		for k, p := range js.Points {
			line.Points[k] = Point{X: p[0], Y: p[1]}
		}
		ds.add(line)
	}
	return ds, nil
}

// Marshal encodes a Dataset to JSON bytes, for cache storage.
func Marshal(d *Dataset) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a Dataset from JSON bytes written by [Marshal].
func Unmarshal(data []byte) (*Dataset, error) {
	return ReadJSON(bytes.NewReader(data))
}
