package vcrypt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	size := Size{Cols: 40, Rows: 20}

	img, err := Text("HI", size, TextOpts{})
	require.NoError(t, err)
	assert.Equal(t, size, SizeOf(img))

	m, err := Normalize(img, size, NormalizeOpts{})
	require.NoError(t, err)
	assert.Positive(t, m.Count())

	// Centered, so the edges are blank.
	for r := 0; r < size.Rows; r++ {
		assert.Equal(t, uint8(0), m.At(r, 0), "row %d", r)
		assert.Equal(t, uint8(0), m.At(r, size.Cols-1), "row %d", r)
	}
}

func TestText_Deterministic(t *testing.T) {
	size := Size{Cols: 30, Rows: 39}

	a, err := Text("VC", size, TextOpts{})
	require.NoError(t, err)
	b, err := Text("VC", size, TextOpts{})
	require.NoError(t, err)

	assert.Equal(t, a.Pix, b.Pix)
}

func TestText_DoesntFit(t *testing.T) {
	_, err := Text("HELLO", Size{Cols: 1, Rows: 1}, TextOpts{})
	assert.ErrorIs(t, err, ErrDimension)
}
