package cache

// ScopedKeyer namespaces every key of an inner Keyer under a scope. The CLI
// scopes by build so a new binary never reads layouts produced by an older
// force implementation.
type ScopedKeyer struct {
	Inner Keyer
	Scope string
}

// NewScopedKeyer scopes inner, falling back to DefaultKeyer when inner is nil.
// An empty scope leaves keys untouched.
func NewScopedKeyer(inner Keyer, scope string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	if scope == "" {
		return inner
	}
	return ScopedKeyer{Inner: inner, Scope: scope}
}

func (k ScopedKeyer) scoped(key string) string { return k.Scope + "/" + key }

func (k ScopedKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return k.scoped(k.Inner.LayoutKey(graphHash, opts))
}

func (k ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.scoped(k.Inner.ArtifactKey(layoutHash, opts))
}
