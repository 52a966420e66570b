package cache

// Keyer builds cache keys. Implementations must be deterministic.
type Keyer interface {
	// LayoutKey identifies the geometry computed for a document.
	LayoutKey(docHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies a rendered export of laid-out geometry.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the inputs besides the document that determine a layout.
type LayoutKeyOpts struct {
	Algorithm string   `json:"algorithm"`
	Options   any      `json:"options,omitempty"` // algorithm parameters, JSON-encoded into the key
	Selection []string `json:"selection,omitempty"`
}

// ArtifactKeyOpts are the inputs besides geometry that determine an export.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", docHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
