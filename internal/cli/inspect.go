package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gsplot/pkg/cache"
	"github.com/matzehuels/gsplot/pkg/errors"
	"github.com/matzehuels/gsplot/pkg/graph"
	"github.com/matzehuels/gsplot/pkg/pipeline"
	"github.com/matzehuels/gsplot/pkg/plot"
	"github.com/matzehuels/gsplot/pkg/plot/record"
)

// inspectCommand creates the inspect command for dumping draw ops.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		showOps   bool
		signal    string
		bar       bool
		highlight int
	)

	cmd := &cobra.Command{
		Use:   "inspect [scene.toml | graph.json]",
		Short: "Show the draw calls a plot produces",
		Long: `Show the draw calls a plot produces.

The plot is drawn onto a recording surface instead of a real backend, and
the resulting op stream is summarized per kind along with the resolved
display settings. Use --ops to dump every recorded call in order. Useful
for checking what a scene resolves to without rendering pixels.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{Signal: signal}
			assignInput(&opts, args[0])
			opts.Display.Bar = bar
			opts.Display.Highlight = highlight
			return c.runInspect(cmd.Context(), opts, showOps)
		},
	}

	cmd.Flags().BoolVar(&showOps, "ops", false, "dump every draw op in order")
	cmd.Flags().StringVar(&signal, "signal", "", "signal file or spec: linear, sin, sin:<cycles>, const:<value>")
	cmd.Flags().BoolVar(&bar, "bar", false, "inspect the bar-mode drawing")
	cmd.Flags().IntVar(&highlight, "highlight", 0, "vertex to emphasize, numbered from 1 (0 = none)")

	return cmd
}

// runInspect builds the graph and signal, draws onto a recording surface,
// and prints what the plot contains.
func (c *CLI) runInspect(ctx context.Context, opts pipeline.Options, showOps bool) error {
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, c.Logger)
	defer runner.Close()
	opts.Logger = c.Logger

	g, sig, sc, err := runner.Build(ctx, opts)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}

	// Scene settings first, explicit overrides after so they win.
	drawOpts := append(sc.PlotOptions(), opts.Display.PlotOptions()...)

	set, err := plot.Resolve(g, sig, drawOpts...)
	if err != nil {
		printError(errors.UserMessage(err))
		return fmt.Errorf("resolve: %w", err)
	}

	rec := record.New()
	if err := plot.Draw(rec, g, sig, drawOpts...); err != nil {
		return fmt.Errorf("draw: %w", err)
	}

	printSettings(g, set)
	printNewline()
	printOpCounts(rec)
	if showOps {
		printNewline()
		fmt.Print(rec.Summary())
	}

	return nil
}

// printSettings shows the graph shape and the resolved display settings.
func printSettings(g *graph.Graph, set plot.Settings) {
	printKeyValue("Vertices", strconv.Itoa(g.N()))
	printKeyValue("Edges", strconv.Itoa(g.EdgeCount()))
	printKeyValue("Dim", strconv.Itoa(set.Dim))
	printKeyValue("Mode", plotMode(set))
	printKeyValue("Draw edges", strconv.FormatBool(set.ShowEdges))
	printKeyValue("Vertex size", strconv.FormatFloat(set.VertexSize, 'g', -1, 64))
	printKeyValue("Colorbar", strconv.FormatBool(set.Colorbar))
	printKeyValue("Color range", fmt.Sprintf("[%g, %g]", set.ColorLimits[0], set.ColorLimits[1]))
	if set.Highlight != 0 {
		printKeyValue("Highlight", strconv.Itoa(set.Highlight))
	}
}

// plotMode names the drawing mode for display.
func plotMode(set plot.Settings) string {
	if set.Bar {
		return "bar"
	}
	return fmt.Sprintf("scatter %dd", set.Dim)
}

// printOpCounts prints a per-kind table of recorded draw calls.
func printOpCounts(rec *record.Surface) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	var rows [][]string
	for kind := record.KindClear; kind <= record.KindFlush; kind++ {
		if n := rec.Count(kind); n > 0 {
			rows = append(rows, []string{kind.String(), strconv.Itoa(n)})
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Op", "Count").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 1 {
				return StyleNumber
			}
			return StyleValue
		})

	fmt.Println(t.Render())
	printDetail("%d ops total", len(rec.Ops()))
}
