package fingerprint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vigil/internal/adapters/fingerprint"
	"go.trai.ch/vigil/internal/core/domain"
)

func TestFingerprint_Deterministic(t *testing.T) {
	t.Parallel()

	h := fingerprint.NewHasher()

	a, err := h.Fingerprint("quote", "AAPL", 5)
	require.NoError(t, err)
	b, err := h.Fingerprint("quote", "AAPL", 5)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
	assert.Regexp(t, "^[0-9a-f]{64}$", a)
}

func TestFingerprint_DistinctInputs(t *testing.T) {
	t.Parallel()

	h := fingerprint.NewHasher()

	cases := [][]any{
		{"quote", "AAPL"},
		{"quote", "MSFT"},
		{"quotes", "AAPL"},
		{"quote", "AAPL", 1},
		{"quote", "AAPL", "1"},
		{"quote"},
	}

	seen := make(map[string]int)
	for i, c := range cases {
		key, err := h.Fingerprint(c[0].(string), c[1:]...)
		require.NoError(t, err)
		if prev, ok := seen[key]; ok {
			t.Fatalf("case %d collides with case %d", i, prev)
		}
		seen[key] = i
	}
}

func TestFingerprint_SeparatorPreventsConcatenation(t *testing.T) {
	t.Parallel()

	h := fingerprint.NewHasher()

	a, err := h.Fingerprint("op", "ab", "c")
	require.NoError(t, err)
	b, err := h.Fingerprint("op", "a", "bc")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestFingerprint_NamedArgsIgnoreInsertionOrder(t *testing.T) {
	t.Parallel()

	h := fingerprint.NewHasher()

	first := domain.Named{}
	first["symbol"] = "TSLA"
	first["limit"] = 30
	first["filters"] = map[string]any{"z": true, "a": []int{1, 2}}

	second := domain.Named{}
	second["filters"] = map[string]any{"a": []int{1, 2}, "z": true}
	second["limit"] = 30
	second["symbol"] = "TSLA"

	a, err := h.Fingerprint("search", "TSLA", first)
	require.NoError(t, err)
	b, err := h.Fingerprint("search", "TSLA", second)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestFingerprint_UnencodableArgument(t *testing.T) {
	t.Parallel()

	h := fingerprint.NewHasher()

	_, err := h.Fingerprint("op", func() {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrFingerprintFailed.Error())
}
