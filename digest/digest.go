package digest

import (
	"strings"

	godigest "github.com/opencontainers/go-digest"
)

// Digest represents a content digest in "algorithm:hex" format
// (e.g., "sha256:abcdef..."). Backed by opencontainers/go-digest.
type Digest string

// NewDigest creates a Digest from an algorithm name and a raw hex string.
func NewDigest(alg Algorithm, hex string) Digest {
	return Digest(godigest.NewDigestFromEncoded(godigest.Algorithm(alg), hex))
}

// Algorithm returns the algorithm portion of the digest.
func (d Digest) Algorithm() Algorithm {
	return Algorithm(godigest.Digest(d).Algorithm())
}

// Hex returns the hex portion of the digest, stripping the algorithm prefix.
// This is the form embedded in fingerprinted file names.
func (d Digest) Hex() string {
	s := string(d)
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// String returns the full digest string including the algorithm prefix.
func (d Digest) String() string {
	return string(d)
}
