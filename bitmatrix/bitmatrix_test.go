package bitmatrix

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRows(t *testing.T, rows [][]uint8) Matrix {
	t.Helper()
	m, err := FromRows(rows)
	require.NoError(t, err)
	return m
}

func TestFromRows(t *testing.T) {
	m := mustRows(t, [][]uint8{
		{1, 0, 1},
		{0, 0, 1},
	})

	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Cols())
	assert.Equal(t, uint8(1), m.At(0, 2))
	assert.Equal(t, uint8(0), m.At(1, 0))
	assert.Equal(t, 3, m.Count())
	assert.Equal(t, "#.#\n..#", m.String())
	assert.Equal(t, [][]uint8{{1, 0, 1}, {0, 0, 1}}, m.ToRows())
}

func TestFromRows_Invalid(t *testing.T) {
	tests := []struct {
		name string
		rows [][]uint8
		want error
	}{
		{"no rows", nil, ErrInvalidSize},
		{"empty row", [][]uint8{{}}, ErrInvalidSize},
		{"ragged", [][]uint8{{1, 0}, {1}}, ErrInvalidSize},
		{"bad bit", [][]uint8{{1, 2}}, ErrInvalidBit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromRows(tt.rows)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBuild_NonPositive(t *testing.T) {
	for _, dims := range [][2]int{{0, 1}, {1, 0}, {-1, 3}} {
		_, err := Build(dims[0], dims[1], func(int, int) uint8 { return 0 })
		assert.ErrorIs(t, err, ErrInvalidSize, "%v", dims)
	}
}

func TestToRows_Copies(t *testing.T) {
	m := mustRows(t, [][]uint8{{1, 1}})

	rows := m.ToRows()
	rows[0][0] = 0

	assert.Equal(t, uint8(1), m.At(0, 0))
}

func TestAt_OutOfRange(t *testing.T) {
	m := mustRows(t, [][]uint8{{1}})
	assert.Panics(t, func() { m.At(1, 0) })
	assert.Panics(t, func() { m.At(0, -1) })
}

func TestRandom_Reproducible(t *testing.T) {
	a, err := Random(16, 12, rand.NewPCG(42, 0))
	require.NoError(t, err)
	b, err := Random(16, 12, rand.NewPCG(42, 0))
	require.NoError(t, err)
	c, err := Random(16, 12, rand.NewPCG(43, 0))
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestRandom_Balanced(t *testing.T) {
	m, err := Random(100, 100, rand.NewPCG(1, 2))
	require.NoError(t, err)

	// 10000 fair coin flips: mean 5000, stddev 50.
	assert.InDelta(t, 5000, m.Count(), 300)
}

type countingSource struct {
	draws int
}

func (s *countingSource) Uint64() uint64 {
	s.draws++
	// Alternate the top bit.
	return uint64(s.draws%2) << 63
}

func TestRandom_OneDrawPerCellRowMajor(t *testing.T) {
	src := &countingSource{}
	m, err := Random(2, 3, src)
	require.NoError(t, err)

	assert.Equal(t, 6, src.draws)
	assert.Equal(t, [][]uint8{{1, 0, 1}, {0, 1, 0}}, m.ToRows())
}

func TestXor(t *testing.T) {
	source := mustRows(t, [][]uint8{{1, 0}, {0, 1}})
	key := mustRows(t, [][]uint8{{0, 0}, {1, 1}})

	data, err := Xor(source, key)
	require.NoError(t, err)
	assert.Equal(t, [][]uint8{{1, 0}, {1, 0}}, data.ToRows())

	back, err := Xor(data, key)
	require.NoError(t, err)
	assert.True(t, back.Equal(source))
}

func TestXor_RoundTrip(t *testing.T) {
	rng := rand.NewPCG(7, 7)
	for _, dims := range [][2]int{{1, 1}, {1, 9}, {9, 1}, {13, 17}} {
		source, err := Random(dims[0], dims[1], rng)
		require.NoError(t, err)
		key, err := Random(dims[0], dims[1], rng)
		require.NoError(t, err)

		data, err := Xor(source, key)
		require.NoError(t, err)
		back, err := Xor(data, key)
		require.NoError(t, err)

		assert.True(t, back.Equal(source), "%v", dims)
	}
}

func TestXor_DimensionMismatch(t *testing.T) {
	a := mustRows(t, [][]uint8{{1, 0}})
	b := mustRows(t, [][]uint8{{1}, {0}})

	_, err := Xor(a, b)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestNot(t *testing.T) {
	m := mustRows(t, [][]uint8{{1, 0, 0}})
	n := m.Not()

	assert.Equal(t, [][]uint8{{0, 1, 1}}, n.ToRows())
	assert.Equal(t, [][]uint8{{1, 0, 0}}, m.ToRows())
	assert.True(t, n.Not().Equal(m))
}

func TestEqual(t *testing.T) {
	a := mustRows(t, [][]uint8{{1, 0}})
	assert.True(t, a.Equal(mustRows(t, [][]uint8{{1, 0}})))
	assert.False(t, a.Equal(mustRows(t, [][]uint8{{1, 1}})))
	assert.False(t, a.Equal(mustRows(t, [][]uint8{{1}, {0}})))
}
