package pipeline

import (
	"encoding/json"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/flowlines/flowlines/pkg/errors"
)

// Scene is the TOML file format for describing a complete trace and render
// configuration. Every table is optional; missing values fall back to the
// pipeline defaults.
//
// Example:
//
//	[field]
//	name = "double-gyre"
//	x0 = 0.0
//	y0 = 0.0
//	x1 = 2.0
//	y1 = 1.0
//	nx = 128
//	ny = 64
//
//	[trace]
//	d_sep = 0.04
//	max_lines = 400
//
//	[render]
//	style = "taper"
//	formats = ["svg", "png"]
type Scene struct {
	Field  sceneField  `toml:"field"`
	Trace  sceneTrace  `toml:"trace"`
	Render sceneRender `toml:"render"`
}

type sceneField struct {
	Name string  `toml:"name"`
	X0   float64 `toml:"x0"`
	Y0   float64 `toml:"y0"`
	X1   float64 `toml:"x1"`
	Y1   float64 `toml:"y1"`
	NX   int     `toml:"nx"`
	NY   int     `toml:"ny"`
}

type sceneTrace struct {
	DSep       float64   `toml:"d_sep"`
	DTest      float64   `toml:"d_test"`
	StepFactor float64   `toml:"step_factor"`
	MaxSteps   int       `toml:"max_steps"`
	MaxLines   int       `toml:"max_lines"`
	Seed       []float64 `toml:"seed"`
}

type sceneRender struct {
	Style     string   `toml:"style"`
	Formats   []string `toml:"formats"`
	Width     int      `toml:"width"`
	Height    int      `toml:"height"`
	Color     string   `toml:"color"`
	LineWidth float64  `toml:"line_width"`
}

// LoadScene reads a TOML scene file and converts it into pipeline options.
// Unknown keys are rejected so typos surface instead of silently falling
// back to defaults.
func LoadScene(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Options{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene file %s", path)
		}
		return Options{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "reading scene %s", path)
	}

	var scene Scene
	md, err := toml.Decode(string(data), &scene)
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidScene, err, "parsing scene %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Options{}, errors.New(errors.ErrCodeInvalidScene,
			"unknown key %q in scene %s", undecoded[0].String(), path)
	}

	return scene.Options(), nil
}

// Options converts the scene into pipeline options.
func (s Scene) Options() Options {
	return Options{
		Field: s.Field.Name,
		X0:    s.Field.X0, Y0: s.Field.Y0,
		X1: s.Field.X1, Y1: s.Field.Y1,
		GridX: s.Field.NX, GridY: s.Field.NY,

		DSep:       s.Trace.DSep,
		DTest:      s.Trace.DTest,
		StepFactor: s.Trace.StepFactor,
		MaxSteps:   s.Trace.MaxSteps,
		MaxLines:   s.Trace.MaxLines,
		Seed:       s.Trace.Seed,

		Style:     s.Render.Style,
		Formats:   s.Render.Formats,
		Width:     s.Render.Width,
		Height:    s.Render.Height,
		Color:     s.Render.Color,
		LineWidth: s.Render.LineWidth,
	}
}

// fieldDescriptor is the canonical byte form of a field's identity, used
// for dataset cache keys.
func fieldDescriptor(name string, x0, y0, x1, y1 float64, nx, ny int) []byte {
	desc, _ := json.Marshal(struct {
		Name   string     `json:"name"`
		Domain [4]float64 `json:"domain"`
		Grid   [2]int     `json:"grid"`
	}{name, [4]float64{x0, y0, x1, y1}, [2]int{nx, ny}})
	return desc
}
