package circuit

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/test"

	"github.com/rowcommit/zkdoc/digest"
	"github.com/rowcommit/zkdoc/shafield"
)

// buildAssignment mirrors prover.assignment closely enough for test
// purposes: it fills a DocumentCircuit's witness from plain row data and
// cross-checks it against digest.CommitAndAccumulate's native computation,
// the bit-exactness spec.md §9 calls out as the hard part.
func buildAssignment(t *testing.T, titles, contents []string, selectors []uint64) (*DocumentCircuit, *DocumentCircuit) {
	t.Helper()

	l := len(titles)
	shape, err := New(l)
	if err != nil {
		t.Fatalf("unexpected error building circuit shape: %v", err)
	}

	doc, err := digest.CommitAndAccumulate(titles, contents, selectors)
	if err != nil {
		t.Fatalf("unexpected error in native computation: %v", err)
	}

	assignment, err := New(l)
	if err != nil {
		t.Fatalf("unexpected error building circuit shape: %v", err)
	}
	for i := 0; i < l; i++ {
		titleDigest := shafield.Sha256ToQuartet(titles[i])
		contentDigest := shafield.Sha256ToQuartet(contents[i])
		for k := 0; k < 4; k++ {
			assignment.RowTitleDigest[i][k] = titleDigest[k]
			assignment.RowContentDigest[i][k] = contentDigest[k]
		}
		assignment.RowSelector[i] = selectors[i]
	}
	assignment.Commitment = doc.Commitment
	assignment.SelectorAccumulator = doc.SelectorAccumulator

	return shape, assignment
}

func TestDocumentCircuitSolvingSucceeds(t *testing.T) {
	titles := []string{"title-a", "title-b", "title-c"}
	contents := []string{"content-a", "content-b", "content-c"}
	selectors := []uint64{1, 0, 1}

	shape, assignment := buildAssignment(t, titles, contents, selectors)

	assert := test.NewAssert(t)
	assert.SolvingSucceeded(shape, assignment,
		test.WithCurves(ecc.BN254), test.WithBackends(backend.PLONK))
}

func TestDocumentCircuitRejectsWrongCommitment(t *testing.T) {
	titles := []string{"title-a", "title-b"}
	contents := []string{"content-a", "content-b"}
	selectors := []uint64{0, 1}

	shape, assignment := buildAssignment(t, titles, contents, selectors)
	assignment.Commitment = 0 // deliberately wrong

	assert := test.NewAssert(t)
	assert.SolvingFailed(shape, assignment,
		test.WithCurves(ecc.BN254), test.WithBackends(backend.PLONK))
}

func TestDocumentCircuitRejectsNonBooleanSelector(t *testing.T) {
	titles := []string{"title-a", "title-b"}
	contents := []string{"content-a", "content-b"}
	selectors := []uint64{0, 1}

	shape, assignment := buildAssignment(t, titles, contents, selectors)
	assignment.RowSelector[0] = 2 // not boolean

	assert := test.NewAssert(t)
	assert.SolvingFailed(shape, assignment,
		test.WithCurves(ecc.BN254), test.WithBackends(backend.PLONK))
}

func TestNewRejectsFewerThanTwoRows(t *testing.T) {
	if _, err := New(1); err == nil {
		t.Fatalf("expected an error for l < 2")
	}
}

var _ frontend.Circuit = (*DocumentCircuit)(nil)
