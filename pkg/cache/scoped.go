package cache

// ScopedKeyer wraps a Keyer with a prefix, so that several deployments or
// schema versions can share one Redis without colliding.
//
//	k := NewScopedKeyer(NewDefaultKeyer(), "sprout:v1:")
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

// ArtifactKey generates a prefixed key for a rendered plant.
func (k *ScopedKeyer) ArtifactKey(opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(opts)
}

// SheetKey generates a prefixed key for a rendered sheet.
func (k *ScopedKeyer) SheetKey(opts SheetKeyOpts) string {
	return k.prefix + k.inner.SheetKey(opts)
}

// Prefix returns the scope prefix.
func (k *ScopedKeyer) Prefix() string { return k.prefix }
