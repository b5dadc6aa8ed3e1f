// Package digest composes shafield and sponge into the native row-hash,
// commitment, and selector-accumulator computation of spec.md §3/§4.D. It
// must stay syntactically parallel to circuit.DocumentCircuit.Define — same
// loop structure, same call order, same left-leaning fold direction — so
// that the two are trivially auditable against each other (spec.md §9).
package digest

import (
	"fmt"

	"github.com/rowcommit/zkdoc/shafield"
	"github.com/rowcommit/zkdoc/sponge"
	"github.com/rowcommit/zkdoc/zkfield"
)

// compress is a short local alias for the sponge compression function, kept
// so the fold/row-hash code below reads the same shape as
// circuit.DocumentCircuit.Define's use of sponge.CompressCircuit.
func compress(a, b zkfield.Element) zkfield.Element {
	return sponge.Compress(a, b)
}

// RowHash computes h(row) per spec.md §3: the title and content digest
// quartets are each folded pairwise through H, the two results are folded
// once more. Every row costs exactly seven calls to sponge.Compress.
func RowHash(title, content string) zkfield.Element {
	return rowHash(shafield.Sha256ToQuartet(title), shafield.Sha256ToQuartet(content))
}

func rowHash(titleDigest, contentDigest shafield.Quartet) zkfield.Element {
	titleHash := foldQuartet(titleDigest)
	contentHash := foldQuartet(contentDigest)
	return compress(titleHash, contentHash)
}

func foldQuartet(q shafield.Quartet) zkfield.Element {
	t1 := compress(q[0], q[1])
	t2 := compress(q[2], q[3])
	return compress(t1, t2)
}

// Document is the result of committing and accumulating a full row set:
// the commitment, the selector accumulator, and the per-row hashes (the
// latter exposed so callers — e.g. the circuit assignment builder — don't
// recompute them).
type Document struct {
	Commitment          zkfield.Element
	SelectorAccumulator zkfield.Element
	RowHashes           []zkfield.Element
}

// CommitAndAccumulate implements spec.md §3/§4.D: it computes every row
// hash and the selector-masked sum in one pass over the rows, then the
// left-leaning commitment chain over the row hashes. L (len(titles)) must be at least 2
// (the commitment chain needs a seed pair) and every selector must be in
// {0,1} — both are rejected here as the upstream pre-validation spec.md §7
// asks callers to perform, ahead of the circuit's own boolean gate.
func CommitAndAccumulate(titles, contents []string, selectors []uint64) (*Document, error) {
	l := len(titles)
	if l != len(contents) || l != len(selectors) {
		return nil, fmt.Errorf("digest: titles (%d), contents (%d) and selectors (%d) must have equal length",
			l, len(contents), len(selectors))
	}
	if l < 2 {
		return nil, fmt.Errorf("digest: need at least 2 rows to seed the commitment chain, got %d", l)
	}

	rowHashes := make([]zkfield.Element, l)
	accumulator := zkfield.Zero()

	for i := 0; i < l; i++ {
		if selectors[i] > 1 {
			return nil, fmt.Errorf("digest: row %d selector %d is not boolean", i, selectors[i])
		}
		rowHashes[i] = RowHash(titles[i], contents[i])
		if selectors[i] == 1 {
			accumulator = zkfield.Add(accumulator, rowHashes[i])
		}
	}

	commitment := compress(rowHashes[0], rowHashes[1])
	for i := 2; i < l; i++ {
		commitment = compress(commitment, rowHashes[i])
	}

	return &Document{
		Commitment:          commitment,
		SelectorAccumulator: accumulator,
		RowHashes:           rowHashes,
	}, nil
}
