package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/gsplot/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,png,pdf", []string{"svg", "png", "pdf"}},
		{"dot only", "dot", []string{"dot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Errorf("parseFormats(%q) length = %d, want %d", tt.input, len(got), len(tt.want))
				return
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestParseFloats(t *testing.T) {
	tests := []struct {
		input   string
		want    []float64
		wantErr bool
	}{
		{"-1,1", []float64{-1, 1}, false},
		{"-6, -3, 160", []float64{-6, -3, 160}, false},
		{"0.5", []float64{0.5}, false},
		{"a,b", nil, true},
		{"1,", nil, true},
	}

	for _, tt := range tests {
		got, err := parseFloats(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseFloats(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err != nil {
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("parseFloats(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseFloats(%q)[%d] = %g, want %g", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

func TestAssignInput(t *testing.T) {
	var opts pipeline.Options
	assignInput(&opts, "demo.toml")
	if opts.Scene != "demo.toml" || opts.GraphFile != "" {
		t.Errorf("TOML input should set Scene, got %+v", opts)
	}

	opts = pipeline.Options{}
	assignInput(&opts, "ring.json")
	if opts.GraphFile != "ring.json" || opts.Scene != "" {
		t.Errorf("JSON input should set GraphFile, got %+v", opts)
	}

	opts = pipeline.Options{}
	assignInput(&opts, "Scene.TOML")
	if opts.Scene != "Scene.TOML" {
		t.Errorf("Extension match should be case-insensitive, got %+v", opts)
	}
}

func TestOutputBase(t *testing.T) {
	tests := []struct {
		name   string
		output string
		opts   pipeline.Options
		want   string
	}{
		{"explicit output", "plot", pipeline.Options{}, "plot"},
		{"strips format extension", "plot.svg", pipeline.Options{}, "plot"},
		{"keeps other extensions", "plot.v2", pipeline.Options{}, "plot.v2"},
		{"derived from scene", "", pipeline.Options{Scene: "demo.toml"}, "demo"},
		{"derived from graph file", "", pipeline.Options{GraphFile: "out/ring.json"}, "out/ring"},
		{"derived from generator", "", pipeline.Options{Generator: "ring"}, "gsplot_ring"},
		{"fallback", "", pipeline.Options{}, "gsplot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputBase(tt.output, tt.opts); got != tt.want {
				t.Errorf("outputBase(%q, %+v) = %q, want %q", tt.output, tt.opts, got, tt.want)
			}
		})
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "out")

	artifacts := map[string][]byte{
		"svg": []byte("<svg/>"),
		"dot": []byte("graph {}"),
	}

	if err := writeArtifacts(artifacts, []string{"svg", "dot"}, base); err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}

	for _, format := range []string{"svg", "dot"} {
		data, err := os.ReadFile(base + "." + format)
		if err != nil {
			t.Fatalf("read %s artifact: %v", format, err)
		}
		if string(data) != string(artifacts[format]) {
			t.Errorf("%s artifact content = %q, want %q", format, data, artifacts[format])
		}
	}

	// Formats with no artifact are skipped, not errors
	if err := writeArtifacts(artifacts, []string{"png"}, base); err != nil {
		t.Errorf("missing artifact should be skipped: %v", err)
	}
	if _, err := os.Stat(base + ".png"); !os.IsNotExist(err) {
		t.Error("no png file should have been written")
	}
}

func TestHasFormat(t *testing.T) {
	formats := []string{"svg", "png"}
	if !hasFormat(formats, "png") {
		t.Error("hasFormat should find png")
	}
	if hasFormat(formats, "pdf") {
		t.Error("hasFormat should not find pdf")
	}
}
