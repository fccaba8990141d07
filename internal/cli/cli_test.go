package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/flowlines/flowlines/pkg/errors"
	"github.com/flowlines/flowlines/pkg/pipeline"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", "flowlines")
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDGOverride(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-test")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join("/tmp/xdg-test", "flowlines")
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{pipeline.FormatSVG}},
		{"svg", []string{"svg"}},
		{"svg,png", []string{"svg", "png"}},
		{"svg,png,json", []string{"svg", "png", "json"}},
	}

	for _, tt := range tests {
		got := parseFormats(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseSeed(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []float64
		wantErr bool
	}{
		{name: "valid", input: "1.5,2.5", want: []float64{1.5, 2.5}},
		{name: "with spaces", input: " 1 , 2 ", want: []float64{1, 2}},
		{name: "negative", input: "-0.5,3", want: []float64{-0.5, 3}},
		{name: "single value", input: "1.5", wantErr: true},
		{name: "three values", input: "1,2,3", wantErr: true},
		{name: "not a number", input: "a,b", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSeed(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseSeed(%q) expected error", tt.input)
				}
				if !errors.Is(err, errors.ErrCodeInvalidParams) {
					t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidParams)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseSeed(%q) error: %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseSeed(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRootCommand(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	root := c.RootCommand()

	if root.Use != "flowlines" {
		t.Errorf("root.Use = %q, want %q", root.Use, "flowlines")
	}

	want := []string{"trace", "render", "serve", "fields", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestFlagsOptionsSceneWithOverrides(t *testing.T) {
	scenePath := filepath.Join(t.TempDir(), "scene.toml")
	content := `
[field]
name = "double-gyre"
x0 = 0.0
y0 = 0.0
x1 = 2.0
y1 = 1.0

[trace]
d_sep = 0.04
max_lines = 100
`
	if err := os.WriteFile(scenePath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := &cobra.Command{}
	fl := &traceFlags{}
	fl.register(cmd)

	if err := cmd.Flags().Set("scene", scenePath); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("max-lines", "50"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("seed", "1.0,0.5"); err != nil {
		t.Fatal(err)
	}

	opts, err := fl.options(cmd)
	if err != nil {
		t.Fatalf("options() error: %v", err)
	}

	if opts.Field != "double-gyre" {
		t.Errorf("Field = %q, want %q (from scene)", opts.Field, "double-gyre")
	}
	if opts.DSep != 0.04 {
		t.Errorf("DSep = %v, want 0.04 (from scene)", opts.DSep)
	}
	if opts.MaxLines != 50 {
		t.Errorf("MaxLines = %d, want 50 (flag override)", opts.MaxLines)
	}
	if !reflect.DeepEqual(opts.Seed, []float64{1.0, 0.5}) {
		t.Errorf("Seed = %v, want [1 0.5]", opts.Seed)
	}
}

func TestFlagsOptionsNoScene(t *testing.T) {
	cmd := &cobra.Command{}
	fl := &traceFlags{}
	fl.register(cmd)

	if err := cmd.Flags().Set("field", "saddle"); err != nil {
		t.Fatal(err)
	}

	opts, err := fl.options(cmd)
	if err != nil {
		t.Fatalf("options() error: %v", err)
	}
	if opts.Field != "saddle" {
		t.Errorf("Field = %q, want %q", opts.Field, "saddle")
	}
	if opts.DSep != 0 {
		t.Errorf("DSep = %v, want 0 (no scene, no flag)", opts.DSep)
	}
}

func TestFlagsOptionsBadSeed(t *testing.T) {
	cmd := &cobra.Command{}
	fl := &traceFlags{}
	fl.register(cmd)

	if err := cmd.Flags().Set("seed", "1"); err != nil {
		t.Fatal(err)
	}

	_, err := fl.options(cmd)
	if err == nil {
		t.Fatal("options() expected error for malformed seed")
	}
	if !errors.Is(err, errors.ErrCodeInvalidParams) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidParams)
	}
}

func TestRenderBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		opts   pipeline.Options
		want   string
	}{
		{
			name:   "explicit output with format ext",
			output: "out.svg",
			want:   "out",
		},
		{
			name:   "explicit output with other ext",
			output: "out.data",
			want:   "out.data",
		},
		{
			name:   "explicit output without ext",
			output: "out",
			want:   "out",
		},
		{
			name: "from dataset path",
			opts: pipeline.Options{DatasetPath: "vortex.json"},
			want: "vortex",
		},
		{
			name: "from field name",
			opts: pipeline.Options{Field: "saddle"},
			want: "saddle",
		},
		{
			name: "default field",
			want: pipeline.DefaultField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderBasePath(tt.output, tt.opts)
			if got != tt.want {
				t.Errorf("renderBasePath(%q) = %q, want %q", tt.output, got, tt.want)
			}
		})
	}
}

func TestArtifactPath(t *testing.T) {
	tests := []struct {
		name        string
		base        string
		output      string
		format      string
		formatCount int
		want        string
	}{
		{
			name: "single format keeps explicit output",
			base: "out", output: "out.svg", format: "svg", formatCount: 1,
			want: "out.svg",
		},
		{
			name: "multiple formats use base",
			base: "out", output: "out.svg", format: "png", formatCount: 2,
			want: "out.png",
		},
		{
			name: "no output uses base",
			base: "vortex", format: "svg", formatCount: 1,
			want: "vortex.svg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := artifactPath(tt.base, tt.output, tt.format, tt.formatCount)
			if got != tt.want {
				t.Errorf("artifactPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
	}

	for _, tt := range tests {
		got := formatBytes(tt.n)
		if got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestDisplayField(t *testing.T) {
	if got := displayField(pipeline.Options{Field: "saddle"}); got != "saddle" {
		t.Errorf("displayField = %q, want %q", got, "saddle")
	}
	if got := displayField(pipeline.Options{}); !strings.Contains(got, pipeline.DefaultField) {
		t.Errorf("displayField default = %q, want it to name %q", got, pipeline.DefaultField)
	}
}
