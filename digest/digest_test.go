package digest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rowcommit/zkdoc/zkfield"
)

func TestRowHashDeterministic(t *testing.T) {
	a := RowHash("title", "content")
	b := RowHash("title", "content")
	require.True(t, zkfield.Equal(a, b), "expected repeated calls on the same row to agree")
}

func TestRowHashDistinguishesRows(t *testing.T) {
	a := RowHash("title", "content")
	b := RowHash("title", "other content")
	require.False(t, zkfield.Equal(a, b), "expected different content to produce a different row hash")
}

func TestRowHashAllowsEmptyStrings(t *testing.T) {
	// must not panic or error; SHA-256 of the empty string is a well defined
	// 32-byte digest like any other.
	_ = RowHash("", "")
}

func TestCommitAndAccumulateRejectsMismatchedLengths(t *testing.T) {
	_, err := CommitAndAccumulate([]string{"a", "b"}, []string{"x"}, []uint64{0, 1})
	require.Error(t, err)
}

func TestCommitAndAccumulateRejectsFewerThanTwoRows(t *testing.T) {
	_, err := CommitAndAccumulate([]string{"a"}, []string{"x"}, []uint64{1})
	require.Error(t, err)
}

func TestCommitAndAccumulateRejectsNonBooleanSelector(t *testing.T) {
	_, err := CommitAndAccumulate([]string{"a", "b"}, []string{"x", "y"}, []uint64{0, 2})
	require.Error(t, err)
}

func TestCommitAndAccumulateIsOrderSensitive(t *testing.T) {
	titles := []string{"a", "b", "c"}
	contents := []string{"x", "y", "z"}
	selectors := []uint64{1, 0, 1}

	forward, err := CommitAndAccumulate(titles, contents, selectors)
	require.NoError(t, err)

	reversed, err := CommitAndAccumulate(
		[]string{"c", "b", "a"}, []string{"z", "y", "x"}, []uint64{1, 0, 1})
	require.NoError(t, err)

	require.False(t, zkfield.Equal(forward.Commitment, reversed.Commitment),
		"expected the left-leaning fold to be sensitive to row order")
}

func TestCommitAndAccumulateAccumulatorIsLinearInSelectedRows(t *testing.T) {
	titles := []string{"a", "b", "c"}
	contents := []string{"x", "y", "z"}

	none, err := CommitAndAccumulate(titles, contents, []uint64{0, 0, 0})
	require.NoError(t, err)
	require.True(t, zkfield.Equal(none.SelectorAccumulator, zkfield.Zero()))

	first, err := CommitAndAccumulate(titles, contents, []uint64{1, 0, 0})
	require.NoError(t, err)
	require.True(t, zkfield.Equal(first.SelectorAccumulator, first.RowHashes[0]))

	both, err := CommitAndAccumulate(titles, contents, []uint64{1, 1, 0})
	require.NoError(t, err)
	want := zkfield.Add(first.RowHashes[0], first.RowHashes[1])
	require.True(t, zkfield.Equal(both.SelectorAccumulator, want))
}
