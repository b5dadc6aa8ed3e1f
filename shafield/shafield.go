// Package shafield implements the SHA-to-Field adapter of spec.md §4.B:
// mapping a UTF-8 string to four BN254 scalar field elements, bit-exact with
// the native pipeline's expectations in digest.RowHash.
package shafield

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/rowcommit/zkdoc/zkfield"
)

// Quartet is the four field elements produced from one SHA-256 digest.
type Quartet [4]zkfield.Element

// Sha256ToQuartet computes SHA-256 of s's UTF-8 bytes, splits the 32-byte
// digest into four 8-byte big-endian unsigned integers (byte index 8k is the
// most-significant byte of limb k), and lifts each limb independently to F.
//
// Empty strings are permitted; SHA-256 of the empty string is used as-is.
// No salt, no domain separation — this function is deterministic.
func Sha256ToQuartet(s string) Quartet {
	digest := sha256.Sum256([]byte(s))

	var q Quartet
	for i := 0; i < 4; i++ {
		limb := binary.BigEndian.Uint64(digest[i*8 : i*8+8])
		q[i] = zkfield.FromUint64(limb)
	}
	return q
}
