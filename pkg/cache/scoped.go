package cache

// ScopedKeyer prefixes every key of an inner Keyer, letting diagrams from
// unrelated projects share a Redis database without colliding.
type ScopedKeyer struct {
	Inner  Keyer
	Prefix string
}

// NewScopedKeyer scopes inner (DefaultKeyer when nil) under prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return ScopedKeyer{Inner: inner, Prefix: prefix}
}

func (k ScopedKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return k.Prefix + k.Inner.LayoutKey(docHash, opts)
}

func (k ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.Prefix + k.Inner.ArtifactKey(layoutHash, opts)
}
