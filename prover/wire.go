package prover

import (
	"encoding/json"
	"fmt"
)

// ProofBytes is proof material in the wire shape spec.md §6 actually
// specifies: a JSON array of byte values (the reference's `proof: Vec<u8>`
// serializes via serde as a plain number array), not encoding/json's default
// base64-string encoding for a bare []byte. server and cmd/zkdoc both use
// this type at their JSON boundary instead of []byte directly so a
// non-Go client reading the documented §6 contract sees the same array
// shape the reference server emits.
type ProofBytes []byte

// MarshalJSON renders p as a JSON array of integers, e.g. [0,1,255,...].
func (p ProofBytes) MarshalJSON() ([]byte, error) {
	ints := make([]int, len(p))
	for i, b := range p {
		ints[i] = int(b)
	}
	return json.Marshal(ints)
}

// UnmarshalJSON parses the array-of-integers form back into bytes.
func (p *ProofBytes) UnmarshalJSON(data []byte) error {
	var ints []int
	if err := json.Unmarshal(data, &ints); err != nil {
		return fmt.Errorf("prover: error decoding proof byte array: %w", err)
	}
	out := make([]byte, len(ints))
	for i, v := range ints {
		if v < 0 || v > 255 {
			return fmt.Errorf("prover: proof byte %d out of range: %d", i, v)
		}
		out[i] = byte(v)
	}
	*p = out
	return nil
}
