// Package zkfield wraps the BN254 scalar field used throughout zkdoc so the
// rest of the module never imports gnark-crypto's fr package directly.
//
// spec.md §4.A asks for Pallas' scalar field; SPEC_FULL.md §0 explains why
// this module targets BN254 instead (gnark's PLONK backend is KZG-over-a-
// pairing-curve, not IPA-over-a-pairing-free-cycle). The operations below
// are addition, multiplication, equality, single-limb lifting and a
// big-endian hex round trip; no conversion to or from four little-endian
// 64-bit limbs is provided.
package zkfield

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Element is a single BN254 scalar field element.
type Element = fr.Element

// Zero returns the additive identity.
func Zero() Element {
	var e Element
	return e
}

// One returns the multiplicative identity.
func One() Element {
	var e Element
	e.SetOne()
	return e
}

// FromUint64 lifts a single 64-bit limb to F via the canonical integer
// embedding (limb < 2^64 ≤ p). Each SHA-256 digest limb is lifted
// independently this way — see shafield.Sha256ToQuartet.
func FromUint64(v uint64) Element {
	var e Element
	e.SetUint64(v)
	return e
}

// Add returns a+b.
func Add(a, b Element) Element {
	var r Element
	r.Add(&a, &b)
	return r
}

// Mul returns a*b.
func Mul(a, b Element) Element {
	var r Element
	r.Mul(&a, &b)
	return r
}

// Equal reports whether a and b are the same field element.
func Equal(a, b Element) bool {
	return a.Equal(&b)
}

// IsZeroOrOne reports whether e is 0 or 1, i.e. a legal boolean selector.
func IsZeroOrOne(e Element) bool {
	return Equal(e, Zero()) || Equal(e, One())
}

// Hex renders e in the reference's textual debug form: a "0x"-prefixed,
// 64 hex character, most-significant-byte-first string. This exact format
// is required by spec.md §6 to preserve round-trip compatibility.
func Hex(e Element) string {
	b := e.Bytes()
	return "0x" + hex.EncodeToString(b[:])
}

// ParseHex parses the textual form produced by Hex back into a field
// element. This is the prover-symmetric verify-path resolution of spec.md
// §9 open question 1: the string is parsed directly, not re-hashed.
func ParseHex(s string) (Element, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Element{}, fmt.Errorf("zkfield: invalid hex commitment %q: %w", s, err)
	}
	var e Element
	e.SetBytes(raw)
	return e, nil
}
