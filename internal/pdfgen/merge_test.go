package pdfgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	t.Parallel()

	s := testSummary()
	cover, err := Cover(s)
	require.NoError(t, err)
	first, err := Placeholder(s, s.Entries[0])
	require.NoError(t, err)
	second, err := Placeholder(s, s.Entries[1])
	require.NoError(t, err)

	merged, err := Merge([][]byte{cover, first, second})
	require.NoError(t, err)
	require.True(t, HasSignature(merged))

	pages, err := PageCount(merged)
	require.NoError(t, err)
	assert.Equal(t, 3, pages)
}

func TestMerge_SinglePartReturnedAsIs(t *testing.T) {
	t.Parallel()

	part := Raw(Summary{})
	got, err := Merge([][]byte{part})
	require.NoError(t, err)
	assert.Equal(t, part, got)
}

func TestMerge_Errors(t *testing.T) {
	t.Parallel()

	_, err := Merge(nil)
	assert.ErrorIs(t, err, ErrNoParts)

	_, err = Merge([][]byte{Raw(Summary{}), []byte("<html>not a pdf</html>")})
	assert.ErrorIs(t, err, ErrMerge)
}

func TestPageCount_NotAPDF(t *testing.T) {
	t.Parallel()

	_, err := PageCount([]byte("plain text"))
	assert.ErrorIs(t, err, ErrRead)
}

func TestHasSignature(t *testing.T) {
	t.Parallel()

	assert.True(t, HasSignature([]byte("%PDF-1.7\n")))
	assert.False(t, HasSignature([]byte("PDF-1.7")))
	assert.False(t, HasSignature(nil))
}
