package shafield

import (
	"crypto/sha256"
	"encoding/binary"
	"testing"

	"github.com/rowcommit/zkdoc/zkfield"
)

func TestSha256ToQuartetDeterministic(t *testing.T) {
	a := Sha256ToQuartet("hello")
	b := Sha256ToQuartet("hello")
	if a != b {
		t.Fatalf("expected repeated calls on the same input to be identical")
	}
}

func TestSha256ToQuartetDistinguishesInputs(t *testing.T) {
	a := Sha256ToQuartet("hello")
	b := Sha256ToQuartet("world")
	if a == b {
		t.Fatalf("expected distinct inputs to produce distinct quartets")
	}
}

func TestSha256ToQuartetEmptyString(t *testing.T) {
	q := Sha256ToQuartet("")
	digest := sha256.Sum256(nil)
	for i := 0; i < 4; i++ {
		want := zkfield.FromUint64(binary.BigEndian.Uint64(digest[i*8 : i*8+8]))
		if !zkfield.Equal(q[i], want) {
			t.Fatalf("limb %d: expected %v, got %v", i, want, q[i])
		}
	}
}

func TestSha256ToQuartetLimbOrder(t *testing.T) {
	digest := sha256.Sum256([]byte("row title"))
	q := Sha256ToQuartet("row title")
	for i := 0; i < 4; i++ {
		want := zkfield.FromUint64(binary.BigEndian.Uint64(digest[i*8 : i*8+8]))
		if !zkfield.Equal(q[i], want) {
			t.Fatalf("limb %d out of order: expected %v, got %v", i, want, q[i])
		}
	}
}
