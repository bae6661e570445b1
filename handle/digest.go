package handle

import (
	"crypto/sha1" //nolint:gosec // content fingerprinting, not security
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"sort"
	"strings"

	"github.com/japaneseTemmie/os-extras/errors"
)

// digestChunkSize is the read granularity for streaming digests. Files are
// never loaded whole; content flows through the hasher in chunks this size.
const digestChunkSize = 8192

// Supported digest algorithm names, accepted case-insensitively by
// File.Digest. Digests are content fingerprints for equality comparison,
// not security guarantees.
const (
	SHA1   = "sha1"
	SHA224 = "sha224"
	SHA256 = "sha256"
	SHA384 = "sha384"
	SHA512 = "sha512"
)

var hashers = map[string]func() hash.Hash{
	SHA1:   sha1.New,
	SHA224: sha256.New224,
	SHA256: sha256.New,
	SHA384: sha512.New384,
	SHA512: sha512.New,
}

// Algorithms returns the supported digest algorithm names, sorted.
func Algorithms() []string {
	names := make([]string, 0, len(hashers))
	for name := range hashers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// newHasher returns a fresh incremental hasher for the named algorithm.
func newHasher(algorithm string) (hash.Hash, error) {
	newFn, ok := hashers[strings.ToLower(algorithm)]
	if !ok {
		return nil, errors.Newf(errors.CodeUnsupportedAlgorithm,
			"unsupported digest algorithm %q (supported: %s)",
			algorithm, strings.Join(Algorithms(), ", "))
	}
	return newFn(), nil
}
