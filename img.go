package vcrypt

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"go.afab.re/vcrypt/bitmatrix"
	"go.afab.re/vcrypt/monochrome"
)

// ErrDimension means an image doesn't fit the requested matrix.
var ErrDimension = errors.New("image doesn't fit")

// Scalers are the available resampling methods, by name.
var Scalers = map[string]draw.Scaler{
	"nearest":    draw.NearestNeighbor,
	"bilinear":   draw.ApproxBiLinear,
	"catmullrom": draw.CatmullRom,
}

type NormalizeOpts struct {
	// Scaler resizes the image to exactly the target size first.
	// If nil the image must already fit.
	Scaler draw.Scaler
	// Invert thresholds on brightness instead of ink, so light parts of the image are dark.
	Invert bool
}

// Normalize converts an image to a bit matrix of the given size:
// - Optionally scaled.
// - Thresholded.
// - Padded out to size with light cells on the right and bottom.
func Normalize(img image.Image, size Size, opts NormalizeOpts) (bitmatrix.Matrix, error) {
	if opts.Scaler != nil {
		var err error
		if img, err = scale(img, size, opts.Scaler); err != nil {
			return bitmatrix.Matrix{}, err
		}
	}

	raster := monochrome.Ink(img)
	if opts.Invert {
		raster = monochrome.Luma(img)
	}

	return Binarize(raster, size)
}

func scale(img image.Image, size Size, scaler draw.Scaler) (*image.Gray, error) {
	if size.Cols <= 0 || size.Rows <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", size.Cols, size.Rows, bitmatrix.ErrInvalidSize)
	}

	dst := image.NewGray(image.Rect(0, 0, size.Cols, size.Rows))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)
	scaler.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)

	return dst, nil
}

// Binarize thresholds r into a bit matrix of the given size.
// r must not be bigger than size, cells past its right and bottom edges are 0.
func Binarize(r monochrome.Raster, size Size) (bitmatrix.Matrix, error) {
	b := r.Bounds()
	if b.Dx() > size.Cols {
		return bitmatrix.Matrix{}, fmt.Errorf("expected up to %dpx wide image but got %dpx: %w", size.Cols, b.Dx(), ErrDimension)
	}
	if b.Dy() > size.Rows {
		return bitmatrix.Matrix{}, fmt.Errorf("expected up to %dpx high image but got %dpx: %w", size.Rows, b.Dy(), ErrDimension)
	}

	mono := monochrome.From(r)

	// Use the bounds of the image in case Min was not (0, 0).
	return bitmatrix.Build(size.Rows, size.Cols, func(row, col int) uint8 {
		if mono.BlackAt(b.Min.X+col, b.Min.Y+row) {
			return 1
		}
		return 0
	})
}
