package vcrypt

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.afab.re/vcrypt/bitmatrix"
)

func TestSplit_AllDark(t *testing.T) {
	// An all dark 4x4 image.
	img := image.NewGray(image.Rect(0, 0, 4, 4))

	source, err := Normalize(img, Size{Cols: 4, Rows: 4}, NormalizeOpts{})
	require.NoError(t, err)
	assert.Equal(t, 16, source.Count())

	key, data, err := Split(source, NewRand(42))
	require.NoError(t, err)
	assert.Equal(t, Key, key.Role)
	assert.Equal(t, Data, data.Role)

	again, _, err := Split(source, NewRand(42))
	require.NoError(t, err)
	assert.True(t, key.Equal(again.Matrix), "same seed, same key")

	assert.True(t, data.Equal(key.Not()))
}

func TestSplit_Example(t *testing.T) {
	source, err := bitmatrix.FromRows([][]uint8{{1, 0}, {0, 1}})
	require.NoError(t, err)

	key, data, err := Split(source, NewRand(7))
	require.NoError(t, err)

	want, err := bitmatrix.Xor(source, key.Matrix)
	require.NoError(t, err)
	assert.True(t, data.Equal(want))

	revealed, err := Reveal(key, data)
	require.NoError(t, err)
	assert.True(t, revealed.Equal(source))
}

func TestSplit_InvalidSource(t *testing.T) {
	_, _, err := Split(bitmatrix.Matrix{}, NewRand(1))
	assert.ErrorIs(t, err, bitmatrix.ErrInvalidSize)
}

func TestReveal_Roles(t *testing.T) {
	source, err := bitmatrix.FromRows([][]uint8{{1, 1, 0}})
	require.NoError(t, err)
	key, data, err := Split(source, NewRand(3))
	require.NoError(t, err)

	_, err = Reveal(data, key)
	assert.ErrorIs(t, err, ErrRole)

	_, err = Reveal(key, key)
	assert.ErrorIs(t, err, ErrRole)
}

func TestReveal_DimensionMismatch(t *testing.T) {
	a, err := bitmatrix.FromRows([][]uint8{{1, 1, 0}})
	require.NoError(t, err)
	b, err := bitmatrix.FromRows([][]uint8{{1}, {1}, {0}})
	require.NoError(t, err)

	_, err = Reveal(Share{Key, a}, Share{Data, b})
	assert.ErrorIs(t, err, bitmatrix.ErrDimensionMismatch)
}

func TestRole_String(t *testing.T) {
	assert.Equal(t, "key", Key.String())
	assert.Equal(t, "data", Data.String())
	assert.Equal(t, "Role(5)", Role(5).String())
}
