package salve

// Manifest is one freshness-metadata entry: a file path and a hash of its
// contents at compile time (spec.md §6.1). The core never computes the
// hash itself — a caller-supplied HashFunc picks the algorithm — so a
// Manifest is only ever produced via NewManifestEntry or constructed
// directly by a caller that already has both fields.
type Manifest struct {
	FilePath string
	Hash     string
}

// HashFunc computes a content hash for manifest freshness checks. Callers
// supply their own (MD5, SHA-256, xxhash, ...); the core has no opinion.
type HashFunc func(content []byte) string

// NewManifestEntry builds a Manifest entry by hashing content with hash.
func NewManifestEntry(hash HashFunc, filePath string, content []byte) Manifest {
	return Manifest{FilePath: filePath, Hash: hash(content)}
}

// Stale reports whether content's hash under hash no longer matches m's
// recorded hash, i.e. whether the file needs recompiling.
func (m Manifest) Stale(hash HashFunc, content []byte) bool {
	return hash(content) != m.Hash
}
