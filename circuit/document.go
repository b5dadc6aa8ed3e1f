// Package circuit re-encodes digest's native computation inside a gnark
// PLONK circuit, per spec.md §4.E. Row count L is a runtime field (spec.md
// §9: "In the target language this may become a runtime parameter") rather
// than a Go generic constant, so the circuit shape, proving key and
// verifying key are all keyed on L by the prover package.
package circuit

import (
	"fmt"

	"github.com/consensys/gnark/frontend"

	"github.com/rowcommit/zkdoc/sponge"
)

// DocumentCircuit is the constrained form of digest.CommitAndAccumulate.
// Public inputs are, in order, [Commitment, SelectorAccumulator] — the
// exact two-entry, two-index ordering spec.md §3 requires.
type DocumentCircuit struct {
	// RowTitleDigest[i] and RowContentDigest[i] are the four field elements
	// shafield.Sha256ToQuartet produces for row i's title and content.
	// They are witnesses: the prover knows the preimage strings, the
	// circuit only ever sees their digest quartets.
	RowTitleDigest   [][4]frontend.Variable
	RowContentDigest [][4]frontend.Variable
	RowSelector      []frontend.Variable

	Commitment          frontend.Variable `gnark:",public"`
	SelectorAccumulator frontend.Variable `gnark:",public"`
}

// New allocates a DocumentCircuit shaped for l rows, with every variable
// slot left at its zero value. This is the witness-less variant of spec.md
// §4.E.5: calling New(l) and handing the result to frontend.Compile never
// touches a witness value, which is what key generation requires.
func New(l int) (*DocumentCircuit, error) {
	if l < 2 {
		return nil, fmt.Errorf("circuit: need at least 2 rows to seed the commitment chain, got %d", l)
	}
	return &DocumentCircuit{
		RowTitleDigest:   make([][4]frontend.Variable, l),
		RowContentDigest: make([][4]frontend.Variable, l),
		RowSelector:      make([]frontend.Variable, l),
	}, nil
}

// Define implements frontend.Circuit. It mirrors digest.CommitAndAccumulate
// row for row: a seven-call sponge tree producing each row hash, a
// boolean-selector product gadget, a running-sum accumulator gadget, and a
// left-leaning commitment fold — see spec.md §4.E.4.
func (c *DocumentCircuit) Define(api frontend.API) error {
	l := len(c.RowSelector)

	rowHashes := make([]frontend.Variable, l)
	for i := 0; i < l; i++ {
		rowHashes[i] = c.rowHashGadget(api, i)
	}

	products := make([]frontend.Variable, l)
	for i := 0; i < l; i++ {
		products[i] = selectorProductGadget(api, rowHashes[i], c.RowSelector[i])
	}

	accumulator := runningSumGadget(api, products)
	api.AssertIsEqual(accumulator, c.SelectorAccumulator)

	commitment := sponge.CompressCircuit(api, rowHashes[0], rowHashes[1])
	for i := 2; i < l; i++ {
		commitment = sponge.CompressCircuit(api, commitment, rowHashes[i])
	}
	api.AssertIsEqual(commitment, c.Commitment)

	return nil
}

// rowHashGadget is component E.1 composed seven times: the title quartet is
// folded pairwise through H, the content quartet likewise, and the two
// results folded once more — identical shape to digest.rowHash.
func (c *DocumentCircuit) rowHashGadget(api frontend.API, i int) frontend.Variable {
	title := c.RowTitleDigest[i]
	t1 := sponge.CompressCircuit(api, title[0], title[1])
	t2 := sponge.CompressCircuit(api, title[2], title[3])
	titleHash := sponge.CompressCircuit(api, t1, t2)

	content := c.RowContentDigest[i]
	c1 := sponge.CompressCircuit(api, content[0], content[1])
	c2 := sponge.CompressCircuit(api, content[2], content[3])
	contentHash := sponge.CompressCircuit(api, c1, c2)

	return sponge.CompressCircuit(api, titleHash, contentHash)
}

// selectorProductGadget is component E.2: it asserts the selector is
// boolean and returns fileHash·selector. api.Mul/api.AssertIsBoolean
// compile to the same two degree-2 constraints spec.md §4.E.2 spells out
// column-by-column; gnark's frontend elides the explicit copy-constraint
// bookkeeping the halo2 chip needed to wire its three cells together.
func selectorProductGadget(api frontend.API, fileHash, selector frontend.Variable) frontend.Variable {
	api.AssertIsBoolean(selector)
	return api.Mul(fileHash, selector)
}

// runningSumGadget is component E.3: a0 = products[0], then a_next =
// a_cur + b_i for each subsequent product, ending in the sum of every
// product. This is the circuit analogue of the two-column
// assign_first/assign chip spec.md §4.E.3 describes.
func runningSumGadget(api frontend.API, products []frontend.Variable) frontend.Variable {
	sum := products[0]
	for i := 1; i < len(products); i++ {
		sum = api.Add(sum, products[i])
	}
	return sum
}
