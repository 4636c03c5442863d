// Package bitmatrix implements fixed size grids of single bits.
//
// A Matrix is the common representation of keys, source images and derived shares.
// Matrices are values: no operation modifies its receiver or arguments.
package bitmatrix

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

var (
	ErrInvalidSize       = errors.New("invalid matrix size")
	ErrInvalidBit        = errors.New("invalid bit")
	ErrDimensionMismatch = errors.New("matrix dimensions don't match")
)

// Matrix is a rows x cols grid of bits, 1 is dark and 0 is light.
type Matrix struct {
	rows, cols int
	// Row-major, one byte per bit. Never written to once the Matrix is returned.
	bits []uint8
}

// Build creates a Matrix by calling f for every cell, in row-major order.
func Build(rows, cols int, f func(r, c int) uint8) (Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return Matrix{}, fmt.Errorf("%dx%d: %w", rows, cols, ErrInvalidSize)
	}

	m := Matrix{
		rows: rows,
		cols: cols,
		bits: make([]uint8, rows*cols),
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			b := f(r, c)
			if b > 1 {
				return Matrix{}, fmt.Errorf("%d at (%d, %d): %w", b, r, c, ErrInvalidBit)
			}
			m.bits[r*cols+c] = b
		}
	}

	return m, nil
}

// FromRows creates a Matrix from a slice of equal length rows.
func FromRows(rows [][]uint8) (Matrix, error) {
	if len(rows) == 0 {
		return Matrix{}, fmt.Errorf("no rows: %w", ErrInvalidSize)
	}

	cols := len(rows[0])
	for i, row := range rows {
		if len(row) != cols {
			return Matrix{}, fmt.Errorf("row %d has %d columns, expected %d: %w", i, len(row), cols, ErrInvalidSize)
		}
	}

	return Build(len(rows), cols, func(r, c int) uint8 {
		return rows[r][c]
	})
}

// Random returns a Matrix of independent uniformly random bits.
// Exactly one value is drawn from rng per cell, in row-major order, so a seeded rng always
// yields the same Matrix.
func Random(rows, cols int, rng rand.Source) (Matrix, error) {
	return Build(rows, cols, func(_, _ int) uint8 {
		return uint8(rng.Uint64() >> 63)
	})
}

// Xor combines a and b cell by cell.
// Xor(Xor(a, b), b) is always a.
func Xor(a, b Matrix) (Matrix, error) {
	if !a.SameSize(b) {
		return Matrix{}, fmt.Errorf("%dx%d and %dx%d: %w", a.rows, a.cols, b.rows, b.cols, ErrDimensionMismatch)
	}

	return Build(a.rows, a.cols, func(r, c int) uint8 {
		return a.At(r, c) ^ b.At(r, c)
	})
}

func (m Matrix) Rows() int {
	return m.rows
}

func (m Matrix) Cols() int {
	return m.cols
}

// At returns the bit at row r, column c. It panics if the cell is out of range.
func (m Matrix) At(r, c int) uint8 {
	if r < 0 || r >= m.rows || c < 0 || c >= m.cols {
		panic(fmt.Sprintf("bitmatrix: (%d, %d) out of range for %dx%d", r, c, m.rows, m.cols))
	}
	return m.bits[r*m.cols+c]
}

// Not returns the bitwise complement of m.
func (m Matrix) Not() Matrix {
	n := Matrix{
		rows: m.rows,
		cols: m.cols,
		bits: make([]uint8, len(m.bits)),
	}
	for i, b := range m.bits {
		n.bits[i] = b ^ 1
	}
	return n
}

func (m Matrix) SameSize(o Matrix) bool {
	return m.rows == o.rows && m.cols == o.cols
}

func (m Matrix) Equal(o Matrix) bool {
	if !m.SameSize(o) {
		return false
	}
	for i := range m.bits {
		if m.bits[i] != o.bits[i] {
			return false
		}
	}
	return true
}

// Count returns the number of 1 bits.
func (m Matrix) Count() int {
	n := 0
	for _, b := range m.bits {
		n += int(b)
	}
	return n
}

// ToRows returns a copy of the bits as a slice of rows.
func (m Matrix) ToRows() [][]uint8 {
	rows := make([][]uint8, m.rows)
	for r := range rows {
		rows[r] = append([]uint8(nil), m.bits[r*m.cols:(r+1)*m.cols]...)
	}
	return rows
}

// String renders m with one line per row, '#' for 1 and '.' for 0.
func (m Matrix) String() string {
	var sb strings.Builder
	for r := 0; r < m.rows; r++ {
		if r != 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < m.cols; c++ {
			if m.At(r, c) == 1 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
