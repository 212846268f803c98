package store

// Keyer maps board names to backend keys.
type Keyer interface {
	// BoardKey returns the key under which board name is stored.
	BoardKey(name string) string
}

// DefaultKeyer generates keys of the form "board:<name>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// BoardKey returns "board:" + name.
func (DefaultKeyer) BoardKey(name string) string {
	return "board:" + name
}

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// Several deployments can share one Redis database this way:
//
//	staging := store.NewScopedKeyer(store.NewDefaultKeyer(), "staging:")
//	// staging.BoardKey("home") == "staging:board:home"
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

// BoardKey generates a prefixed board key.
func (k *ScopedKeyer) BoardKey(name string) string {
	return k.prefix + k.inner.BoardKey(name)
}

// keyPrefix returns the part of every key that precedes the board name.
func keyPrefix(k Keyer) string {
	return k.BoardKey("")
}
