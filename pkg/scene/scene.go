// Package scene loads plot scene definitions from TOML files.
//
// A scene bundles everything one render needs: which graph to build,
// which signal to put on it, and how to display it. Scenes keep demo
// and batch rendering declarative; the CLI maps a scene file straight
// onto a pipeline run.
//
// # Format
//
//	name = "ring demo"
//
//	[graph]
//	kind = "ring"
//	vertices = 15
//
//	[signal]
//	kind = "sin"
//	cycles = 1.0
//
//	[plot]
//	highlight = 5
//	colorbar = true
//
// The graph section accepts the generator kinds (ring, path, grid,
// sphere, sensor) or kind = "file" with a path to a graph JSON export.
// Signal kinds are sin, linear, constant, values, and file. All plot
// settings are optional; unset ones fall back to the plotting defaults.
package scene

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gsplot/pkg/errors"
)

// Graph kinds accepted in a scene file.
const (
	KindRing   = "ring"
	KindPath   = "path"
	KindGrid   = "grid"
	KindSphere = "sphere"
	KindSensor = "sensor"
	KindFile   = "file"
)

// Signal kinds accepted in a scene file.
const (
	SignalSin      = "sin"
	SignalLinear   = "linear"
	SignalConstant = "constant"
	SignalValues   = "values"
	SignalFile     = "file"
)

// Scene is a parsed scene definition.
type Scene struct {
	Name   string     `toml:"name"`
	Graph  GraphSpec  `toml:"graph"`
	Signal SignalSpec `toml:"signal"`
	Plot   PlotSpec   `toml:"plot"`

	// dir is the directory of the scene file, for resolving relative
	// file references.
	dir string
}

// GraphSpec describes the graph to build.
type GraphSpec struct {
	Kind     string `toml:"kind"`
	Vertices int    `toml:"vertices"`
	Rows     int    `toml:"rows"`
	Cols     int    `toml:"cols"`
	Seed     int64  `toml:"seed"`
	File     string `toml:"file"`

	Defaults DefaultsSpec `toml:"defaults"`
}

// DefaultsSpec overrides graph-level plotting defaults.
type DefaultsSpec struct {
	EdgeWidth  float64   `toml:"edge_width"`
	EdgeColor  string    `toml:"edge_color"`
	EdgeStyle  string    `toml:"edge_style"`
	VertexSize *float64  `toml:"vertex_size"`
	Camera     []float64 `toml:"camera"`
}

// SignalSpec describes the signal to build.
type SignalSpec struct {
	Kind   string    `toml:"kind"`
	Cycles float64   `toml:"cycles"`
	Value  float64   `toml:"value"`
	Values []float64 `toml:"values"`
	File   string    `toml:"file"`
}

// PlotSpec carries optional display settings. Pointer fields
// distinguish "unset" from an explicit zero.
type PlotSpec struct {
	ShowEdges   *bool     `toml:"show_edges"`
	Bar         bool      `toml:"bar"`
	BarWidth    float64   `toml:"bar_width"`
	VertexSize  float64   `toml:"vertex_size"`
	Highlight   int       `toml:"highlight"`
	Colorbar    *bool     `toml:"colorbar"`
	ColorLimits []float64 `toml:"color_limits"`
	Camera      []float64 `toml:"camera"`
}

// Load reads and validates a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "read scene %s", path)
	}

	var s Scene
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "parse scene %s", path)
	}
	s.dir = filepath.Dir(path)

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the scene for structural problems before building.
func (s *Scene) Validate() error {
	switch s.Graph.Kind {
	case KindRing, KindPath, KindSphere, KindSensor:
		if s.Graph.Vertices <= 0 {
			return errors.New(errors.ErrCodeInvalidScene,
				"graph kind %q needs a positive vertex count", s.Graph.Kind)
		}
	case KindGrid:
		if s.Graph.Rows <= 0 || s.Graph.Cols <= 0 {
			return errors.New(errors.ErrCodeInvalidScene,
				"grid graphs need positive rows and cols")
		}
	case KindFile:
		if s.Graph.File == "" {
			return errors.New(errors.ErrCodeInvalidScene,
				"graph kind %q needs a file path", KindFile)
		}
	case "":
		return errors.New(errors.ErrCodeInvalidScene, "scene has no graph kind")
	default:
		return errors.New(errors.ErrCodeInvalidScene,
			"unknown graph kind %q (want %s)", s.Graph.Kind, knownGraphKinds())
	}

	switch s.Signal.Kind {
	case SignalSin, SignalLinear, SignalConstant, "":
	case SignalValues:
		if len(s.Signal.Values) == 0 {
			return errors.New(errors.ErrCodeInvalidScene,
				"signal kind %q needs a values array", SignalValues)
		}
	case SignalFile:
		if s.Signal.File == "" {
			return errors.New(errors.ErrCodeInvalidScene,
				"signal kind %q needs a file path", SignalFile)
		}
	default:
		return errors.New(errors.ErrCodeInvalidScene,
			"unknown signal kind %q (want %s)", s.Signal.Kind, knownSignalKinds())
	}

	if n := len(s.Plot.ColorLimits); n != 0 && n != 2 {
		return errors.New(errors.ErrCodeInvalidScene,
			"color_limits needs [lo, hi], got %d entries", n)
	}
	if n := len(s.Plot.Camera); n != 0 && n != 3 {
		return errors.New(errors.ErrCodeInvalidScene,
			"camera needs [x, y, z], got %d entries", n)
	}
	if n := len(s.Graph.Defaults.Camera); n != 0 && n != 3 {
		return errors.New(errors.ErrCodeInvalidScene,
			"defaults camera needs [x, y, z], got %d entries", n)
	}
	return nil
}

// resolve expands a scene-relative file reference.
func (s *Scene) resolve(path string) string {
	if filepath.IsAbs(path) || s.dir == "" {
		return path
	}
	return filepath.Join(s.dir, path)
}

func knownGraphKinds() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, or %s",
		KindRing, KindPath, KindGrid, KindSphere, KindSensor, KindFile)
}

func knownSignalKinds() string {
	return fmt.Sprintf("%s, %s, %s, %s, or %s",
		SignalSin, SignalLinear, SignalConstant, SignalValues, SignalFile)
}
