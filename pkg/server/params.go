package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/flowlines/flowlines/pkg/errors"
	"github.com/flowlines/flowlines/pkg/pipeline"
)

// optionsFromQuery maps render query parameters onto pipeline options.
// It returns the single requested format; the endpoint serves one artifact
// per request.
func optionsFromQuery(r *http.Request) (pipeline.Options, string, error) {
	q := r.URL.Query()
	opts := pipeline.Options{Field: q.Get("field")}

	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return opts, "", err
	}
	opts.Formats = []string{format}

	var err error
	if opts.X0, err = floatParam(q.Get("x0"), "x0"); err != nil {
		return opts, "", err
	}
	if opts.Y0, err = floatParam(q.Get("y0"), "y0"); err != nil {
		return opts, "", err
	}
	if opts.X1, err = floatParam(q.Get("x1"), "x1"); err != nil {
		return opts, "", err
	}
	if opts.Y1, err = floatParam(q.Get("y1"), "y1"); err != nil {
		return opts, "", err
	}
	if opts.DSep, err = floatParam(q.Get("d_sep"), "d_sep"); err != nil {
		return opts, "", err
	}
	if opts.DTest, err = floatParam(q.Get("d_test"), "d_test"); err != nil {
		return opts, "", err
	}
	if opts.StepFactor, err = floatParam(q.Get("step_factor"), "step_factor"); err != nil {
		return opts, "", err
	}
	if opts.LineWidth, err = floatParam(q.Get("line_width"), "line_width"); err != nil {
		return opts, "", err
	}

	if opts.GridX, err = intParam(q.Get("grid_x"), "grid_x"); err != nil {
		return opts, "", err
	}
	if opts.GridY, err = intParam(q.Get("grid_y"), "grid_y"); err != nil {
		return opts, "", err
	}
	if opts.MaxSteps, err = intParam(q.Get("max_steps"), "max_steps"); err != nil {
		return opts, "", err
	}
	if opts.MaxLines, err = intParam(q.Get("max_lines"), "max_lines"); err != nil {
		return opts, "", err
	}
	if opts.Width, err = intParam(q.Get("width"), "width"); err != nil {
		return opts, "", err
	}
	if opts.Height, err = intParam(q.Get("height"), "height"); err != nil {
		return opts, "", err
	}

	if opts.Seed, err = seedParam(q.Get("seed")); err != nil {
		return opts, "", err
	}

	opts.Style = q.Get("style")
	opts.Color = q.Get("color")
	opts.Refresh = q.Get("refresh") == "true"

	return opts, format, nil
}

func floatParam(raw, name string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "parameter %s: %q is not a number", name, raw)
	}
	return v, nil
}

func intParam(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "parameter %s: %q is not an integer", name, raw)
	}
	return v, nil
}

// seedParam parses "x,y" into a seed point.
func seedParam(raw string) ([]float64, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "parameter seed: want \"x,y\", got %q", raw)
	}
	seed := make([]float64, 2)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "parameter seed: %q is not a number", p)
		}
		seed[i] = v
	}
	return seed, nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
