package vcrypt

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

type TextOpts struct {
	// Defaults to Go Regular.
	Font *opentype.Font
}

// Text renders text black on white, centered in an image of exactly size pixels,
// with the biggest font that fits. The result can be passed to Normalize as is.
func Text(text string, size Size, opts TextOpts) (*image.Gray, error) {
	ft := opts.Font
	if ft == nil {
		var err error
		if ft, err = opentype.Parse(goregular.TTF); err != nil {
			return nil, err
		}
	}

	face, err := face(ft, size, text)
	if err != nil {
		return nil, err
	}

	dst := image.NewGray(image.Rect(0, 0, size.Cols, size.Rows))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

	d := font.Drawer{
		Dst:  dst,
		Src:  image.Black,
		Face: face,
		Dot:  origin(face, size, text),
	}
	d.DrawString(text)

	return dst, nil
}

// Find the biggest font for which text fits in size.
func face(ft *opentype.Font, size Size, text string) (font.Face, error) {
	var best font.Face

	for i := float64(1); ; i++ {
		face, err := opentype.NewFace(ft, &opentype.FaceOptions{
			Size: i,
			// 72 DPI makes the font size a height in pixels.
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, err
		}

		w, h := extent(face, text)
		if w > size.Cols || h > size.Rows {
			break
		}

		best = face
	}

	if best == nil {
		return nil, fmt.Errorf("text %q doesn't fit %dx%d: %w", text, size.Cols, size.Rows, ErrDimension)
	}
	return best, nil
}

// Width of the text, and height of the font.
// Use the font height rather than the text's, so texts with and without descenders are aligned the same.
func extent(face font.Face, text string) (int, int) {
	m := face.Metrics()
	b, _ := font.BoundString(face, text)
	return b.Max.X.Ceil() - b.Min.X.Floor(), m.Ascent.Ceil() + m.Descent.Ceil()
}

// Dot to center text.
// If the margins aren't a multiple of two, (arbitrarily) give the extra pixel to the right and bottom.
func origin(face font.Face, size Size, text string) fixed.Point26_6 {
	w, h := extent(face, text)
	b, _ := font.BoundString(face, text)

	x := (size.Cols-w)/2 - b.Min.X.Floor()
	y := (size.Rows-h)/2 + face.Metrics().Ascent.Ceil()

	return fixed.P(x, y)
}
