package cache

// ScopedKeyer prefixes every key of an inner [Keyer]. Use it when several
// tools share one Redis instance:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "modelgraph:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer defaults
// to [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// CollectionKey generates a prefixed key for a fetched collection.
func (k *ScopedKeyer) CollectionKey(environmentID, collection string) string {
	return k.prefix + k.inner.CollectionKey(environmentID, collection)
}
