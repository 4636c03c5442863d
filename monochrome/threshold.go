package monochrome

import (
	"image"
	"image/color"
	"image/draw"
)

// Threshold is the fixed binarization cutoff: samples with an intensity above it are black.
const Threshold = 128

// Raster is the only view of a source image needed to threshold it.
type Raster interface {
	Bounds() image.Rectangle
	// Intensity of the sample at (x, y), 0 to 255.
	Intensity(x, y int) uint8
}

type gray struct {
	g      *image.Gray
	invert bool
}

func (g gray) Bounds() image.Rectangle {
	return g.g.Bounds()
}

func (g gray) Intensity(x, y int) uint8 {
	if g.invert {
		return 255 - g.g.GrayAt(x, y).Y
	}
	return g.g.GrayAt(x, y).Y
}

// Ink returns a Raster where intensity is the amount of ink: black is 255 and white is 0.
func Ink(img image.Image) Raster {
	return gray{toGray(img), true}
}

// Luma returns a Raster where intensity is the brightness: white is 255 and black is 0.
// Thresholding it turns the light parts of the image black.
func Luma(img image.Image) Raster {
	return gray{toGray(img), false}
}

func toGray(img image.Image) *image.Gray {
	switch i := img.(type) {
	case *image.Gray:
		return i
	default:
		gray := image.NewGray(img.Bounds())
		// Composite onto white, otherwise transparent pixels end up black.
		draw.Draw(gray, gray.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)
		draw.Draw(gray, gray.Bounds(), img, img.Bounds().Min, draw.Over)
		return gray
	}
}

// From converts r to monochrome, black wherever the intensity exceeds Threshold.
func From(r Raster) *Image {
	if m, ok := r.(*Image); ok {
		return m
	}

	mono := New(r.Bounds())

	for x := r.Bounds().Min.X; x < r.Bounds().Max.X; x++ {
		for y := r.Bounds().Min.Y; y < r.Bounds().Max.Y; y++ {
			mono.SetBlack(x, y, r.Intensity(x, y) > Threshold)
		}
	}

	return mono
}

// Intensity makes Image a Raster: black is 255 and white is 0.
func (m *Image) Intensity(x, y int) uint8 {
	if m.BlackAt(x, y) {
		return 255
	}
	return 0
}
