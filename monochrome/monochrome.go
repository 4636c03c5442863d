// Package monochrome thresholds images into black and white.
package monochrome

import (
	"image"
	"image/color"
)

// Palette indices.
const (
	white uint8 = iota
	black
)

func Model() color.Palette {
	return color.Palette{white: color.White, black: color.Black}
}

// Image is black ink on a white background.
// The embedded two color palette makes png encode it as a 1 bit image.
type Image struct {
	*image.Paletted
}

var _ image.PalettedImage = &Image{}

// New returns an all white image.
func New(r image.Rectangle) *Image {
	return &Image{image.NewPaletted(r, Model())}
}

// BlackAt is false outside the bounds of the image.
func (m *Image) BlackAt(x, y int) bool {
	if !image.Pt(x, y).In(m.Rect) {
		return false
	}
	return m.ColorIndexAt(x, y) == black
}

func (m *Image) SetBlack(x, y int, b bool) {
	idx := white
	if b {
		idx = black
	}
	m.SetColorIndex(x, y, idx)
}

// Blacks counts the black pixels.
func (m *Image) Blacks() int {
	n := 0
	for _, i := range m.Pix {
		if i == black {
			n++
		}
	}
	return n
}
