package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gsplot/pkg/pipeline"
)

// demoEntry is one built-in demo scene.
type demoEntry struct {
	Name        string
	Description string
	Opts        pipeline.Options
}

// demos are the built-in demo scenes, in menu order.
var demos = []demoEntry{
	{
		Name:        "ring",
		Description: "Sine wave around a 24-vertex ring",
		Opts:        pipeline.Options{Generator: "ring", Vertices: 24, Signal: "sin:2"},
	},
	{
		Name:        "grid",
		Description: "Linear ramp over a 6x6 lattice",
		Opts:        pipeline.Options{Generator: "grid", Rows: 6, Cols: 6, Signal: "linear"},
	},
	{
		Name:        "sphere",
		Description: "Sine wave on a 3D sphere mesh",
		Opts:        pipeline.Options{Generator: "sphere", Vertices: 80, Signal: "sin:3"},
	},
	{
		Name:        "sensor",
		Description: "Random sensor network with a linear signal",
		Opts:        pipeline.Options{Generator: "sensor", Vertices: 40, Signal: "linear"},
	},
	{
		Name:        "bar",
		Description: "Bar chart of a sine wave on a ring",
		Opts: pipeline.Options{Generator: "ring", Vertices: 18, Signal: "sin:1",
			Display: pipeline.Display{Bar: true}},
	},
	{
		Name:        "highlight",
		Description: "Ring plot with vertex 5 emphasized",
		Opts: pipeline.Options{Generator: "ring", Vertices: 15, Signal: "sin:1",
			Display: pipeline.Display{Highlight: 5}},
	},
}

// demoCommand creates the demo command with the interactive picker.
func (c *CLI) demoCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		listOnly   bool
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "demo [name]",
		Short: "Render a built-in demo scene",
		Long: `Render a built-in demo scene.

Without a name, an interactive picker lists the available demos. With a
name, that demo is rendered directly. Use --list to see the demos without
rendering anything.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: demoNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if listOnly {
				printDemoList()
				return nil
			}

			var entry *demoEntry
			if len(args) == 1 {
				entry = findDemo(args[0])
				if entry == nil {
					return fmt.Errorf("unknown demo: %s (run '%s demo --list')", args[0], appName)
				}
			} else {
				picked, err := pickDemo()
				if err != nil {
					return err
				}
				if picked == nil {
					return nil // picker dismissed
				}
				entry = picked
			}
			return c.runDemo(cmd.Context(), *entry, output, formatsStr, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: gsplot_<name>)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot, json (comma-separated)")
	cmd.Flags().BoolVar(&listOnly, "list", false, "list demos without rendering")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runDemo renders one demo entry through the regular render path.
func (c *CLI) runDemo(ctx context.Context, entry demoEntry, output, formatsStr string, noCache bool) error {
	opts := entry.Opts
	opts.Formats = parseFormats(formatsStr)
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return err
	}
	if output == "" {
		output = appName + "_" + entry.Name
	}

	printInfo("Rendering %s demo", StyleHighlight.Render(entry.Name))
	prog := newProgress(c.Logger)

	if err := c.runRender(ctx, opts, output, noCache); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(opts.Formats)))

	printNewline()
	printNextStep("Customize", renderEquivalent(entry))
	return nil
}

// demoNames returns the demo names for shell completion.
func demoNames() []string {
	names := make([]string, len(demos))
	for i, d := range demos {
		names[i] = d.Name
	}
	return names
}

// findDemo returns the demo with the given name, or nil.
func findDemo(name string) *demoEntry {
	for i := range demos {
		if demos[i].Name == name {
			return &demos[i]
		}
	}
	return nil
}

// renderEquivalent builds the render command line matching a demo entry,
// shown as a starting point for customization.
func renderEquivalent(e demoEntry) string {
	parts := []string{appName, "render", "--generator", e.Opts.Generator}
	if e.Opts.Vertices != 0 {
		parts = append(parts, "--vertices", strconv.Itoa(e.Opts.Vertices))
	}
	if e.Opts.Rows != 0 {
		parts = append(parts, "--rows", strconv.Itoa(e.Opts.Rows), "--cols", strconv.Itoa(e.Opts.Cols))
	}
	if e.Opts.Signal != "" {
		parts = append(parts, "--signal", e.Opts.Signal)
	}
	if e.Opts.Display.Bar {
		parts = append(parts, "--bar")
	}
	if e.Opts.Display.Highlight != 0 {
		parts = append(parts, "--highlight", strconv.Itoa(e.Opts.Display.Highlight))
	}
	return strings.Join(parts, " ")
}

// printDemoList prints the demo table without rendering anything.
func printDemoList() {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, len(demos))
	for i, d := range demos {
		rows[i] = []string{d.Name, d.Description}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Demo", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleHighlight
			}
			return StyleDim
		})

	fmt.Println(t.Render())
}
