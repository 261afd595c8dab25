package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey derives "<kind>:<sha256 of the JSON-encoded parts>".
func hashKey(kind string, parts ...any) string {
	h := sha256.New()
	// encoding a slice of plain strings and option structs does not fail
	_ = json.NewEncoder(h).Encode(parts)
	return kind + ":" + hex.EncodeToString(h.Sum(nil))
}

// Hash returns the hex SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashJSON hashes the JSON encoding of v. Values that fail to encode hash
// to the empty string.
func HashJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return Hash(data)
}
