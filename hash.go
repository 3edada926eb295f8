package cssurl

import (
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/blake3"
)

// HashAlgorithm selects the content hash used to name copied assets.
// Neither is used as a security property; both only need to be stable.
type HashAlgorithm string

// Supported hash algorithms.
const (
	HashXXH64  HashAlgorithm = "xxhash" // default, fastest
	HashBLAKE3 HashAlgorithm = "blake3"
)

// DefaultHashAlgorithm is used when none is configured.
const DefaultHashAlgorithm = HashXXH64

// hashBytes is the digest prefix kept in file names (16 hex characters).
const hashBytes = 8

// ParseHashAlgorithm converts a name (case-insensitive) to a HashAlgorithm.
// An empty name selects DefaultHashAlgorithm.
func ParseHashAlgorithm(name string) (HashAlgorithm, error) {
	switch HashAlgorithm(strings.ToLower(strings.TrimSpace(name))) {
	case "":
		return DefaultHashAlgorithm, nil
	case HashXXH64:
		return HashXXH64, nil
	case HashBLAKE3:
		return HashBLAKE3, nil
	}
	return "", fmt.Errorf("%w: %q (must be %s or %s)", ErrUnknownHashAlgorithm, name, HashXXH64, HashBLAKE3)
}

func newHasher(alg HashAlgorithm) (hash.Hash, error) {
	switch alg {
	case HashXXH64:
		return xxhash.New(), nil
	case HashBLAKE3:
		return blake3.New(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownHashAlgorithm, alg)
}

// HashFile returns the content hash of the file at path. The file is read as
// raw bytes; no decoding happens, so identical bytes give identical names.
func HashFile(path string, alg HashAlgorithm) (string, error) {
	h, err := newHasher(alg)
	if err != nil {
		return "", err
	}

	f, err := os.Open(path) // #nosec G304 -- resolved asset path
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadAsset, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("%w: hashing %s: %w", ErrReadAsset, path, err)
	}
	return encodeDigest(h), nil
}

// HashBytes returns the content hash of data.
func HashBytes(data []byte, alg HashAlgorithm) (string, error) {
	h, err := newHasher(alg)
	if err != nil {
		return "", err
	}
	_, _ = h.Write(data) // hash.Hash.Write never returns an error
	return encodeDigest(h), nil
}

func encodeDigest(h hash.Hash) string {
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:hashBytes])
}
