// Package fingerprint derives cache keys from call identities.
package fingerprint

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"

	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Fingerprinter = (*Hasher)(nil)

// Hasher computes SHA-256 fingerprints over canonical JSON.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Fingerprint hashes operation followed by the canonical form of each arg.
// Map keys are sorted at every depth, so two domain.Named values with equal
// contents always produce the same key.
func (h *Hasher) Fingerprint(operation string, args ...any) (string, error) {
	hasher := sha256.New()

	_, _ = hasher.Write([]byte(operation))
	_, _ = hasher.Write([]byte{0}) // Separator

	for i, arg := range args {
		data, err := canonical(arg)
		if err != nil {
			return "", zerr.With(zerr.With(zerr.Wrap(err, domain.ErrFingerprintFailed.Error()),
				"operation", operation), "arg", strconv.Itoa(i))
		}
		_, _ = hasher.Write(data)
		_, _ = hasher.Write([]byte{0})
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// canonical encodes v as compact JSON. encoding/json emits map keys in sorted
// order and struct fields in declaration order, which makes the output stable.
func canonical(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	// Encode appends a newline.
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}
