package cache

// ScopedKeyer wraps a Keyer with a prefix. Serve deployments that share one
// Redis server with other applications use it to keep their keys apart.
//
// Example usage:
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "astropress:")
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

// BookletKey generates a prefixed key for one rendered booklet.
func (k *ScopedKeyer) BookletKey(variant, fingerprint string, values map[string]string) string {
	return k.prefix + k.inner.BookletKey(variant, fingerprint, values)
}

// Ensure ScopedKeyer implements Keyer.
var _ Keyer = (*ScopedKeyer)(nil)
