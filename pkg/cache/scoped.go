package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// This keeps cache entries from different workspaces or test runs
// apart when they share one cache directory.
//
// Example usage:
//
//	// Workspace-specific keys
//	wsKeyer := NewScopedKeyer(NewDefaultKeyer(), "ws:demo:")
//
//	// Shared keys
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// GraphKey generates a prefixed key for graph caching.
func (k *ScopedKeyer) GraphKey(scene string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(scene, opts)
}

// PlotKey generates a prefixed key for plot caching.
func (k *ScopedKeyer) PlotKey(graphHash, signalHash string, opts PlotKeyOpts) string {
	return k.prefix + k.inner.PlotKey(graphHash, signalHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(plotHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(plotHash, opts)
}
