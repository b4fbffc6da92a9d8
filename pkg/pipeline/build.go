package pipeline

import (
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/gsplot/pkg/cache"
	"github.com/matzehuels/gsplot/pkg/errors"
	"github.com/matzehuels/gsplot/pkg/graph"
	"github.com/matzehuels/gsplot/pkg/plot"
	"github.com/matzehuels/gsplot/pkg/scene"
)

// Build constructs the graph and signal described by the options,
// without caching. Most callers want Runner.Build, which adds the
// cache layer on top.
func Build(opts Options) (*graph.Graph, plot.Signal, *scene.Scene, error) {
	sc, _, err := buildScene(opts)
	if err != nil {
		return nil, plot.Signal{}, nil, err
	}
	g, sig, err := sc.Build()
	if err != nil {
		return nil, plot.Signal{}, nil, err
	}
	return g, sig, sc, nil
}

// sourceInfo describes where a build came from and how to cache it.
type sourceInfo struct {
	// Name identifies the input in logs and hook events.
	Name string

	// Key feeds the graph cache key. Scene files key on their content
	// so edits invalidate; generators key on their name.
	Key string

	// Cacheable is false for file-backed graphs, where reading the
	// file again costs the same as a cache probe and never goes stale.
	Cacheable bool
}

// buildScene resolves the options into an effective scene. Explicit
// scene files are loaded; a graph file or generator is wrapped in a
// synthetic scene so the build path is the same for all three inputs.
func buildScene(opts Options) (*scene.Scene, sourceInfo, error) {
	switch {
	case opts.Scene != "":
		sc, err := scene.Load(opts.Scene)
		if err != nil {
			return nil, sourceInfo{}, err
		}
		if err := overrideSignal(sc, opts.Signal); err != nil {
			return nil, sourceInfo{}, err
		}
		// Load succeeded, so the file is readable.
		raw, err := os.ReadFile(opts.Scene)
		if err != nil {
			return nil, sourceInfo{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read scene %s", opts.Scene)
		}
		return sc, sourceInfo{
			Name:      opts.Scene,
			Key:       "scene:" + cache.Hash(raw),
			Cacheable: sc.Graph.Kind != scene.KindFile,
		}, nil

	case opts.GraphFile != "":
		sc := &scene.Scene{
			Graph: scene.GraphSpec{Kind: scene.KindFile, File: opts.GraphFile},
		}
		if err := overrideSignal(sc, opts.Signal); err != nil {
			return nil, sourceInfo{}, err
		}
		return sc, sourceInfo{Name: opts.GraphFile}, nil

	default:
		sc := &scene.Scene{
			Graph: scene.GraphSpec{
				Kind:     opts.Generator,
				Vertices: opts.Vertices,
				Rows:     opts.Rows,
				Cols:     opts.Cols,
				Seed:     opts.Seed,
			},
		}
		if err := overrideSignal(sc, opts.Signal); err != nil {
			return nil, sourceInfo{}, err
		}
		if err := sc.Validate(); err != nil {
			return nil, sourceInfo{}, err
		}
		return sc, sourceInfo{
			Name:      opts.Generator,
			Key:       "generator:" + opts.Generator,
			Cacheable: true,
		}, nil
	}
}

// overrideSignal replaces the scene's signal section when the caller
// supplied one. An empty spec keeps whatever the scene declares.
func overrideSignal(sc *scene.Scene, spec string) error {
	if spec == "" {
		return nil
	}
	parsed, err := ParseSignalSpec(spec)
	if err != nil {
		return err
	}
	sc.Signal = parsed
	return nil
}

// ParseSignalSpec interprets a signal argument from the command line
// or a job file. Recognized specs are "linear", "sin", "sin:<cycles>",
// and "const:<value>". Anything else is taken as a signal file path.
func ParseSignalSpec(spec string) (scene.SignalSpec, error) {
	switch spec {
	case scene.SignalLinear:
		return scene.SignalSpec{Kind: scene.SignalLinear}, nil
	case scene.SignalSin:
		return scene.SignalSpec{Kind: scene.SignalSin}, nil
	}

	kind, arg, _ := strings.Cut(spec, ":")
	switch kind {
	case scene.SignalSin:
		cycles, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return scene.SignalSpec{}, errors.Wrap(errors.ErrCodeInvalidInput, err,
				"signal cycles %q", arg)
		}
		return scene.SignalSpec{Kind: scene.SignalSin, Cycles: cycles}, nil
	case "const", scene.SignalConstant:
		value, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return scene.SignalSpec{}, errors.Wrap(errors.ErrCodeInvalidInput, err,
				"signal value %q", arg)
		}
		return scene.SignalSpec{Kind: scene.SignalConstant, Value: value}, nil
	}

	return scene.SignalSpec{Kind: scene.SignalFile, File: spec}, nil
}
