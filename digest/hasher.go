package digest

import (
	"crypto/md5" //nolint:gosec
	_ "crypto/sha256"
	_ "crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	godigest "github.com/opencontainers/go-digest"
	"github.com/zeebo/blake3"

	"github.com/projecteru2/cachebust/types"
)

// Algorithm names a content hash.
type Algorithm string

const (
	SHA256 Algorithm = "sha256"
	SHA384 Algorithm = "sha384"
	SHA512 Algorithm = "sha512"
	BLAKE3 Algorithm = "blake3"
	// MD5 matches the digest legacy cache_buster manifests used, rendered
	// as fixed-width hex. Not collision resistant.
	MD5 Algorithm = "md5"

	// Default is used when no algorithm is configured.
	Default = SHA256

	// ChunkSize is the read size used while streaming a file into the hash.
	ChunkSize = 32 << 10
)

// Algorithms lists every supported algorithm.
func Algorithms() []Algorithm {
	return []Algorithm{SHA256, SHA384, SHA512, BLAKE3, MD5}
}

// ParseAlgorithm validates a configured algorithm name. Empty means Default.
func ParseAlgorithm(name string) (Algorithm, error) {
	if name == "" {
		return Default, nil
	}
	alg := Algorithm(strings.ToLower(strings.TrimSpace(name)))
	for _, a := range Algorithms() {
		if a == alg {
			return alg, nil
		}
	}
	return "", fmt.Errorf("unsupported digest algorithm %q", name)
}

// New returns a fresh running hash for alg.
func (alg Algorithm) New() hash.Hash {
	switch alg {
	case BLAKE3:
		return blake3.New()
	case MD5:
		return md5.New() //nolint:gosec
	default:
		return godigest.Algorithm(alg).Hash()
	}
}

// Hasher computes file content digests by streaming the file through the
// configured algorithm in ChunkSize reads.
type Hasher struct {
	alg Algorithm
}

// NewHasher creates a Hasher for the named algorithm.
func NewHasher(name string) (*Hasher, error) {
	alg, err := ParseAlgorithm(name)
	if err != nil {
		return nil, err
	}
	return &Hasher{alg: alg}, nil
}

// HashFile digests the file at path. Open and read failures wrap types.ErrIO;
// no partial digest is returned on failure.
func (h *Hasher) HashFile(path string) (Digest, int64, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return "", 0, fmt.Errorf("%w: open %s: %w", types.ErrIO, path, err)
	}
	defer f.Close() //nolint:errcheck

	d, n, err := h.Hash(f)
	if err != nil {
		return "", 0, fmt.Errorf("%w: read %s: %w", types.ErrIO, path, err)
	}
	return d, n, nil
}

// Hash digests everything readable from r.
func (h *Hasher) Hash(r io.Reader) (Digest, int64, error) {
	hh := h.alg.New()
	buf := make([]byte, ChunkSize)
	// Hide any WriterTo/ReaderFrom so reads stay bounded by buf.
	n, err := io.CopyBuffer(struct{ io.Writer }{hh}, struct{ io.Reader }{r}, buf)
	if err != nil {
		return "", 0, err
	}
	return NewDigest(h.alg, hex.EncodeToString(hh.Sum(nil))), n, nil
}
