// Package digest turns identity text into identicon source bytes.
package digest

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/flavioheleno/identicon"
)

// Supported algorithms.
const (
	MD5    = "md5"
	SHA1   = "sha1"
	SHA256 = "sha256"
	SHA512 = "sha512"
	BLAKE3 = "blake3"
)

// Default is the algorithm used when none is configured. MD5 matches
// Gravatar-style email hashes.
const Default = MD5

// ErrUnknownAlgorithm is returned for algorithm names not listed above.
var ErrUnknownAlgorithm = errors.New("digest: unknown algorithm")

// Algorithms lists the supported algorithm names.
func Algorithms() []string {
	return []string{MD5, SHA1, SHA256, SHA512, BLAKE3}
}

// Sum hashes data with the named algorithm.
func Sum(algorithm string, data []byte) ([]byte, error) {
	switch strings.ToLower(algorithm) {
	case MD5:
		s := md5.Sum(data)
		return s[:], nil
	case SHA1:
		s := sha1.Sum(data)
		return s[:], nil
	case SHA256:
		s := sha256.Sum256(data)
		return s[:], nil
	case SHA512:
		s := sha512.Sum512(data)
		return s[:], nil
	case BLAKE3:
		s := blake3.Sum256(data)
		return s[:], nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
}

// Identity normalizes identity text the way Gravatar does: surrounding
// whitespace removed and lower-cased.
func Identity(s string) []byte {
	return []byte(strings.ToLower(strings.TrimSpace(s)))
}

// ParseHex decodes a hex digest to be used directly as a source.
func ParseHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("parsing hex digest: %w", err)
	}
	if len(b) < identicon.MinSourceLen {
		return nil, fmt.Errorf("%w: digest is %d bytes, need at least %d",
			identicon.ErrShortSource, len(b), identicon.MinSourceLen)
	}
	return b, nil
}
