package cache

// Keyer derives cache keys for rendered artifacts.
type Keyer interface {
	ArtifactKey(sourceHash, format string) string
}

// DefaultKeyer scopes keys by module version.
type DefaultKeyer struct {
	version string
}

// NewDefaultKeyer creates a keyer for the given build version.
func NewDefaultKeyer(version string) *DefaultKeyer {
	return &DefaultKeyer{version: version}
}

// ArtifactKey returns "artifact:<sha256>" over the source hash, the format
// and the version.
func (k *DefaultKeyer) ArtifactKey(sourceHash, format string) string {
	return hashKey("artifact", sourceHash, format, k.version)
}

// ScopedKeyer prefixes every key of an inner keyer, separating namespaces
// that share one Redis instance.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner uses a
// [DefaultKeyer] with an empty version.
func NewScopedKeyer(inner Keyer, prefix string) *ScopedKeyer {
	if inner == nil {
		inner = NewDefaultKeyer("")
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(sourceHash, format string) string {
	return k.prefix + k.inner.ArtifactKey(sourceHash, format)
}
