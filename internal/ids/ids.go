// Package ids provides identifier generation and the canonical hashing
// helpers shared by the audit log and the compliance layer.
//
// Canonical serialisation relies on encoding/json's documented behaviour of
// sorting map[string]any keys lexicographically at every nesting level and
// emitting the shortest round-tripping decimal for float64 — exactly the
// "sorted keys, no trailing zeros, no insignificant whitespace" contract
// required for a stable hash. No third-party canonical-JSON library is wired here;
// see DESIGN.md for why the standard library already satisfies the
// invariant.
package ids

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/google/uuid"
)

// GenesisHash is the previousHash value of the first entry ever appended to
// an empty audit journal: 64 lowercase hex zero characters, the width of a
// SHA-256 digest.
const GenesisHash = "0000000000000000000000000000000000000000000000000000000000000000"

// New generates a fresh random identifier, used for audit entry IDs,
// decision audit IDs and compliance report IDs.
func New() string {
	return uuid.NewString()
}

// Canonical returns the deterministic JSON byte representation of v: object
// keys sorted lexicographically at every nesting level, numbers emitted
// without trailing zeros, no insignificant whitespace.
//
// v is marshalled once, then decoded back into generic map[string]any /
// []any / scalar values and marshalled again. encoding/json already sorts
// map[string]any keys and emits the shortest round-tripping float64, but
// only for maps — a struct's fields stay in declaration order. The
// round-trip normalises any struct-typed payload (Decision, Rule, ...) into
// maps first, so sorting applies at every nesting level regardless of
// whether the caller passed a struct, a map, or a mix of both.
func Canonical(v any) ([]byte, error) {
	first, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var generic any
	if err := json.Unmarshal(first, &generic); err != nil {
		return nil, err
	}
	return json.Marshal(generic)
}

// SHA256Hex returns the lowercase hex SHA-256 digest of data.
func SHA256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ChainHash computes SHA256(previousHash ‖ canonical(payload)) as specified
// for audit entry hashing and compliance report hashing alike.
func ChainHash(previousHash string, payload any) (string, error) {
	body, err := Canonical(payload)
	if err != nil {
		return "", err
	}
	buf := make([]byte, 0, len(previousHash)+len(body))
	buf = append(buf, previousHash...)
	buf = append(buf, body...)
	return SHA256Hex(buf), nil
}
