// Package etag computes content fingerprints for cache validation and
// optimistic concurrency checks.
package etag

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// Compute returns the fingerprint of a response payload. The payload is
// re-serialized through a generic value so that mapping keys come out sorted
// regardless of struct field order, then digested to a 128-bit token rendered
// as hex. Identical logical content always yields the identical token.
func Compute(payload any) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return "", err
	}

	canonical, err := json.Marshal(generic)
	if err != nil {
		return "", err
	}

	sum := md5.Sum(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// Quote wraps a token in the double quotes the ETag header requires.
func Quote(token string) string {
	return `"` + token + `"`
}

// Match reports whether a conditional request header value names the given
// token. A weak-validator prefix and surrounding quotes are stripped before
// comparison; an empty header never matches.
func Match(header, token string) bool {
	header = strings.TrimSpace(header)
	header = strings.TrimPrefix(header, "W/")
	header = strings.Trim(header, `"`)
	return header != "" && header == token
}
