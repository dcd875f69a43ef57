package ids_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codeready-toolchain/governed-agent/internal/ids"
)

func TestGenesisHash_Is64LowercaseHexZeros(t *testing.T) {
	assert.Len(t, ids.GenesisHash, 64)
	assert.Regexp(t, "^0{64}$", ids.GenesisHash)
}

func TestNew_ReturnsDistinctUUIDs(t *testing.T) {
	a := ids.New()
	b := ids.New()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
}

func TestCanonical_SortsKeysAtEveryNestingLevel(t *testing.T) {
	in := map[string]any{
		"z": 1,
		"a": map[string]any{"y": 2, "b": 3},
	}
	got, err := ids.Canonical(in)
	assert.NoError(t, err)
	assert.Equal(t, `{"a":{"b":3,"y":2},"z":1}`, string(got))
}

func TestCanonical_StructFieldsNormaliseLikeMaps(t *testing.T) {
	type payload struct {
		Zeta  int `json:"zeta"`
		Alpha int `json:"alpha"`
	}
	got, err := ids.Canonical(payload{Zeta: 1, Alpha: 2})
	assert.NoError(t, err)
	assert.Equal(t, `{"alpha":2,"zeta":1}`, string(got))
}

func TestCanonical_IsDeterministicAcrossCalls(t *testing.T) {
	in := map[string]any{"a": 1, "b": []any{1, 2, 3}}
	first, err := ids.Canonical(in)
	assert.NoError(t, err)
	second, err := ids.Canonical(in)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSHA256Hex_KnownVector(t *testing.T) {
	// SHA-256("") — the empty-input test vector.
	got := ids.SHA256Hex([]byte{})
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", got)
}

func TestChainHash_DifferentPreviousHashesProduceDifferentDigests(t *testing.T) {
	payload := map[string]any{"result": "APPROVED"}

	h1, err := ids.ChainHash(ids.GenesisHash, payload)
	assert.NoError(t, err)
	h2, err := ids.ChainHash(h1, payload)
	assert.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.Len(t, h1, 64)
	assert.Len(t, h2, 64)
}

func TestChainHash_IsDeterministic(t *testing.T) {
	payload := map[string]any{"a": 1, "b": "x"}

	h1, err := ids.ChainHash(ids.GenesisHash, payload)
	assert.NoError(t, err)
	h2, err := ids.ChainHash(ids.GenesisHash, payload)
	assert.NoError(t, err)

	assert.Equal(t, h1, h2)
}
