package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gsplot/pkg/errors"
	"github.com/matzehuels/gsplot/pkg/pipeline"
)

// renderCommand creates the render command for plotting a signal over a graph.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		climitsStr string
		cameraStr  string
		showEdges  bool
		hideEdges  bool
		colorbar   bool
		noColorbar bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [scene.toml | graph.json]",
		Short: "Plot a signal over a graph and write image files",
		Long: `Plot a signal over a graph and write image files.

The input is a scene TOML file, a graph JSON file, or a built-in generator
selected with --generator. Graph files carry no signal of their own, so the
signal comes from --signal (a file path or a spec like "sin:2"); without one
a linear ramp is used.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				assignInput(&opts, args[0])
			}
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if showEdges && hideEdges {
				return fmt.Errorf("--edges and --no-edges are mutually exclusive")
			}
			if colorbar && noColorbar {
				return fmt.Errorf("--colorbar and --no-colorbar are mutually exclusive")
			}
			if showEdges || hideEdges {
				opts.Display.ShowEdges = &showEdges
			}
			if colorbar || noColorbar {
				opts.Display.Colorbar = &colorbar
			}
			if climitsStr != "" {
				vals, err := parseFloats(climitsStr)
				if err != nil {
					return fmt.Errorf("--climits: %w", err)
				}
				opts.Display.ColorLimits = vals
			}
			if cameraStr != "" {
				vals, err := parseFloats(cameraStr)
				if err != nil {
					return fmt.Errorf("--camera: %w", err)
				}
				opts.Display.Camera = vals
			}
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: derived from input)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot, json (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the cache for this run")

	// Build flags
	cmd.Flags().StringVarP(&opts.Generator, "generator", "g", "", "built-in graph: ring, path, grid, sphere, sensor")
	cmd.Flags().IntVarP(&opts.Vertices, "vertices", "n", 0, "vertex count for generated graphs (default 15)")
	cmd.Flags().IntVar(&opts.Rows, "rows", 0, "row count for grid graphs (default 4)")
	cmd.Flags().IntVar(&opts.Cols, "cols", 0, "column count for grid graphs (default 4)")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed for sphere and sensor graphs (default 42)")
	cmd.Flags().StringVar(&opts.Signal, "signal", "", "signal file or spec: linear, sin, sin:<cycles>, const:<value>")

	// Plot flags
	cmd.Flags().StringVar(&opts.Backend, "backend", "", "plot backend: svg (default), gplot")
	cmd.Flags().IntVar(&opts.Width, "width", 0, "document width in pixels (default 800)")
	cmd.Flags().IntVar(&opts.Height, "height", 0, "document height in pixels (default 600)")
	cmd.Flags().BoolVar(&opts.Display.Bar, "bar", false, "draw vertical bars instead of markers")
	cmd.Flags().Float64Var(&opts.Display.BarWidth, "bar-width", 0, "bar line width (default 1)")
	cmd.Flags().Float64Var(&opts.Display.VertexSize, "vertex-size", 0, "vertex marker size (default: derived from the graph)")
	cmd.Flags().IntVar(&opts.Display.Highlight, "highlight", 0, "vertex to emphasize, numbered from 1 (0 = none)")
	cmd.Flags().BoolVar(&colorbar, "colorbar", false, "force the colorbar on")
	cmd.Flags().BoolVar(&noColorbar, "no-colorbar", false, "force the colorbar off")
	cmd.Flags().BoolVar(&showEdges, "edges", false, "force edge drawing on")
	cmd.Flags().BoolVar(&hideEdges, "no-edges", false, "force edge drawing off")
	cmd.Flags().StringVar(&climitsStr, "climits", "", "color range as lo,hi (default: signal range)")
	cmd.Flags().StringVar(&cameraStr, "camera", "", "camera position as x,y,z (default -6,-3,160)")

	// Render flags
	cmd.Flags().Float64Var(&opts.PNGScale, "png-scale", 0, "raster scale factor for PNG output (default 2)")

	return cmd
}

// runRender executes the full pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	if opts.PNGScale != 0 && !hasFormat(opts.Formats, pipeline.FormatPNG) {
		printWarning("--png-scale only affects png output")
	}

	sp := newSpinnerWithContext(ctx, "Rendering plot...")
	sp.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		sp.StopWithError(errors.UserMessage(err))
		return fmt.Errorf("render: %w", err)
	}
	sp.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	base := outputBase(output, opts)
	printSuccess("Render complete")
	if err := writeArtifacts(result.Artifacts, opts.Formats, base); err != nil {
		return err
	}
	printStats(result.Stats.VertexCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)

	return nil
}

// assignInput routes the positional argument to the scene or graph slot
// based on its extension. TOML files are scenes, everything else is
// treated as a graph JSON file.
func assignInput(opts *pipeline.Options, path string) {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		opts.Scene = path
		return
	}
	opts.GraphFile = path
}

// outputBase derives the artifact base path. An explicit output wins,
// with any known format extension stripped so "out.svg" and "out" name
// the same file set. Otherwise the input path minus its extension, or
// the generator name for generated graphs.
func outputBase(output string, opts pipeline.Options) string {
	if output != "" {
		ext := filepath.Ext(output)
		if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
			return strings.TrimSuffix(output, ext)
		}
		return output
	}
	switch {
	case opts.Scene != "":
		return strings.TrimSuffix(opts.Scene, filepath.Ext(opts.Scene))
	case opts.GraphFile != "":
		return strings.TrimSuffix(opts.GraphFile, filepath.Ext(opts.GraphFile))
	case opts.Generator != "":
		return appName + "_" + opts.Generator
	}
	return appName
}

// writeArtifacts writes each rendered format to base.<format> and prints
// one file line per artifact.
func writeArtifacts(artifacts map[string][]byte, formats []string, base string) error {
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := base + "." + format
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// parseFloats parses a comma-separated list like "-1,1" into floats.
func parseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// hasFormat reports whether format is in formats.
func hasFormat(formats []string, format string) bool {
	for _, f := range formats {
		if f == format {
			return true
		}
	}
	return false
}
