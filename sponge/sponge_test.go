package sponge

import (
	"testing"

	"github.com/rowcommit/zkdoc/zkfield"
)

func TestCompressDeterministic(t *testing.T) {
	a, b := zkfield.FromUint64(1), zkfield.FromUint64(2)
	if !zkfield.Equal(Compress(a, b), Compress(a, b)) {
		t.Fatalf("expected repeated calls on the same inputs to be identical")
	}
}

func TestCompressOrderSensitive(t *testing.T) {
	a, b := zkfield.FromUint64(1), zkfield.FromUint64(2)
	if zkfield.Equal(Compress(a, b), Compress(b, a)) {
		t.Fatalf("expected Compress(a,b) != Compress(b,a) in general")
	}
}

func TestCompressDistinguishesInputs(t *testing.T) {
	a := zkfield.FromUint64(1)
	b := zkfield.FromUint64(2)
	c := zkfield.FromUint64(3)
	if zkfield.Equal(Compress(a, b), Compress(a, c)) {
		t.Fatalf("expected distinct second operands to produce distinct outputs")
	}
}
