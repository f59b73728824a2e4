// Package fingerprint derives short content digests used to detect changes
// between builds.
package fingerprint

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/zeebo/blake3"
)

// Size is the digest length in bytes. Fingerprints are hex encoded, so
// their string form is twice as long.
const Size = 8

var hexPattern = regexp.MustCompile(`^[0-9a-f]+$`)

// Bytes returns the fingerprint of data
func Bytes(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:Size])
}

// Source fingerprints a source file. The relative path takes part in the
// digest so that moving a file yields a new identity for its artifact.
func Source(relPath string, content []byte) string {
	h := blake3.New()
	h.Write([]byte(relPath))
	h.Write([]byte{0})
	h.Write(content)
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:Size])
}

// Version fingerprints the JSON encoding of v. Indices use it to notice that
// the configuration they were persisted under has changed.
func Version(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode version input: %w", err)
	}
	return Bytes(data), nil
}

// Valid reports whether s looks like a fingerprint produced by this package
func Valid(s string) bool {
	return len(s) == Size*2 && IsHex(s)
}

// IsHex reports whether s is non-empty lowercase hex
func IsHex(s string) bool {
	return hexPattern.MatchString(s)
}

// Short returns the first n characters of a fingerprint
func Short(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
