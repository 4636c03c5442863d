// Package vcrypt splits black and white images into two visual cryptography shares.
//
// The key share is random, the data share is the image XOR the key. Printed on transparencies
// and stacked, the shares show the image; either one alone is noise.
package vcrypt

import (
	"encoding/binary"
	"image"
	"math"
	"math/rand/v2"

	"go.afab.re/vcrypt/render"
)

// Aspect is the height / width ratio of the page shares are printed on.
const Aspect = 8.6 / 6.5

// DefaultCanvasWidth is the width of rendered shares, in pixels.
const DefaultCanvasWidth = 880

// Size of a bit matrix.
type Size struct {
	Cols, Rows int
}

// SizeFromWidth returns the size with cols columns matching the page Aspect.
func SizeFromWidth(cols int) Size {
	return Size{
		Cols: cols,
		Rows: int(math.Floor(float64(cols) * Aspect)),
	}
}

// SizeOf returns the size of a matrix with one cell per pixel of img.
func SizeOf(img image.Image) Size {
	return Size{
		Cols: img.Bounds().Dx(),
		Rows: img.Bounds().Dy(),
	}
}

// PageCanvas returns a canvas width pixels wide matching the page Aspect.
func PageCanvas(width int) render.Canvas {
	return render.Canvas{
		Width:  width,
		Height: int(math.Floor(float64(width) * Aspect)),
	}
}

// NewRand returns a random generator that always produces the same sequence for seed.
func NewRand(seed int64) *rand.Rand {
	var s [32]byte
	binary.LittleEndian.PutUint64(s[:], uint64(seed))
	return rand.New(rand.NewChaCha8(s))
}
