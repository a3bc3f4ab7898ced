package cache

// ArtifactKeyOpts are the render settings that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Width  int    `json:"width,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey identifies a rendered document. docHash is [Hash] of the
	// composed LaTeX source.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
	// ListingKey identifies a remote directory listing.
	ListingKey(url string) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey returns "artifact:<sha256(docHash, opts)>".
func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}

// ListingKey returns "listing:<url>".
func (DefaultKeyer) ListingKey(url string) string {
	return "listing:" + url
}

// ScopedKeyer prepends a prefix to every key of an inner keyer.
//
//	k := cache.NewScopedKeyer(nil, "server:")
//	k.ListingKey(u) // "server:listing:<u>"
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ArtifactKey returns the prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(docHash, opts)
}

// ListingKey returns the prefixed listing key.
func (k *ScopedKeyer) ListingKey(url string) string {
	return k.prefix + k.inner.ListingKey(url)
}
