package value_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/codeready-toolchain/governed-agent/internal/value"
)

func TestTruthy(t *testing.T) {
	cases := []struct {
		name string
		v    value.Value
		want bool
	}{
		{"undefined", value.Undefined, false},
		{"null", value.Null, false},
		{"false", value.Bool(false), false},
		{"true", value.Bool(true), true},
		{"zero", value.Number(0), false},
		{"nonzero", value.Number(-1), true},
		{"empty string", value.String(""), false},
		{"nonempty string", value.String("x"), true},
		{"empty array", value.Array(nil), false},
		{"nonempty array", value.Array([]value.Value{value.Null}), true},
		{"empty map", value.Map(map[string]value.Value{}), false},
		{"nonempty map", value.Map(map[string]value.Value{"a": value.Null}), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.v.Truthy())
		})
	}
}

func TestFromAny_ToAny_RoundTrips(t *testing.T) {
	original := map[string]any{
		"name":   "Aïsha",
		"amount": 1234.5,
		"tags":   []any{"a", "b"},
		"nested": map[string]any{"ok": true, "n": nil},
	}

	converted := value.FromAny(original).ToAny()

	if diff := cmp.Diff(original, converted); diff != "" {
		t.Fatalf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSortedKeys_OnlyForMaps(t *testing.T) {
	m := value.Map(map[string]value.Value{"b": value.Null, "a": value.Null, "c": value.Null})
	assert.Equal(t, []string{"a", "b", "c"}, m.SortedKeys())

	assert.Nil(t, value.String("x").SortedKeys())
}
