// Package plot renders scalar signals over graph vertices.
//
// # Overview
//
// A signal assigns one value per vertex. [Draw] validates the pair,
// resolves display options against graph defaults, and emits a fixed
// sequence of drawing calls to a [Surface]: clear, edges, vertices,
// view configuration, flush. Rendering backends implement Surface;
// everything about defaulting and draw order lives here, so all
// backends agree on what a plot contains.
//
// # Options
//
// Options are functional and all optional:
//
//	err := plot.Draw(dst, g, sig,
//	    plot.WithHighlight(5),
//	    plot.WithColorbar(false),
//	)
//
// [Resolve] exposes the defaulting pass on its own, returning the
// effective [Settings] without drawing. Tools use it to report what a
// plot would look like.
//
// # Vertex rendering
//
// Vertices render three ways depending on graph dimension and the bar
// flag: vertical bars on 2D graphs in bar mode, color-mapped markers
// otherwise. Bar plots encode the value in bar height and sign in
// color, so they skip the color range and colorbar entirely.
//
// # Errors
//
// Draw fails before touching the surface when the graph has no
// coordinates, the signal has a non-negligible imaginary part, or the
// signal length does not match the vertex count. Failures carry codes
// from the errors package.
package plot
