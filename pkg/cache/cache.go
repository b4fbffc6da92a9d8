// Package cache provides byte-level caching for pipeline artifacts.
//
// The pipeline caches at three levels: built graphs, plotted documents,
// and converted artifacts. Each level has its own key schema so that a
// change in plot options invalidates plots but not the underlying graph.
//
// Keys are generated by a [Keyer] and looked up in a [Cache]. The file
// implementation is used by the CLI; [NullCache] disables caching
// entirely.
package cache

import (
	"context"
	"time"
)

// Default TTLs per pipeline level. Graphs and plots are cheap to rebuild
// and keyed by every input, so a day is plenty; converted artifacts are
// the expensive step and live longer.
const (
	TTLGraph    = 24 * time.Hour
	TTLPlot     = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores and retrieves byte values by key.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// GraphKeyOpts captures the parameters that shape a built graph.
type GraphKeyOpts struct {
	Vertices int
	Rows     int
	Cols     int
	Seed     int64
}

// PlotKeyOpts captures the resolved display settings that shape a
// plotted document. Every resolved field participates in the key, so
// changing any option invalidates the plot without touching the graph
// level.
type PlotKeyOpts struct {
	Backend    string
	Width      int
	Height     int
	ShowEdges  bool
	Bar        bool
	BarWidth   float64
	VertexSize float64
	Highlight  int
	Colorbar   bool
	ColorLo    float64
	ColorHi    float64
	CamX       float64
	CamY       float64
	CamZ       float64
}

// ArtifactKeyOpts captures the parameters of a converted artifact.
type ArtifactKeyOpts struct {
	Format string
	Scale  float64
}

// Keyer generates cache keys for the three pipeline levels.
type Keyer interface {
	// GraphKey generates a key for a built graph.
	GraphKey(scene string, opts GraphKeyOpts) string

	// PlotKey generates a key for a plotted document, derived from the
	// hashes of the graph and signal it was drawn from.
	PlotKey(graphHash, signalHash string, opts PlotKeyOpts) string

	// ArtifactKey generates a key for a converted artifact, derived
	// from the hash of the document it was converted from.
	ArtifactKey(plotHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes scene names and options into stable keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// GraphKey generates a key for a built graph.
func (k *DefaultKeyer) GraphKey(scene string, opts GraphKeyOpts) string {
	return hashKey("graph", scene, opts)
}

// PlotKey generates a key for a plotted document.
func (k *DefaultKeyer) PlotKey(graphHash, signalHash string, opts PlotKeyOpts) string {
	return hashKey("plot", graphHash, signalHash, opts)
}

// ArtifactKey generates a key for a converted artifact.
func (k *DefaultKeyer) ArtifactKey(plotHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", plotHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
