// Package render lays out bit matrices as grids of encoded blocks.
//
// Drawing goes through a Sink, which only ever has shapes appended to it.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"go.afab.re/vcrypt/bitmatrix"
	"go.afab.re/vcrypt/block"
)

var ErrInvalidCanvas = errors.New("invalid canvas")

// Sink receives filled shapes in drawing order.
type Sink interface {
	Rect(r image.Rectangle, fill color.Color)
	Polygon(pts []image.Point, fill color.Color)
}

// Canvas is the drawing area, in pixels.
type Canvas struct {
	Width, Height int
	// Optional, drawn under the grid.
	Background color.Color
}

func (c Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.Width, c.Height)
}

// CellSize returns the side of the square cells for a rows x cols grid.
// The grid fills the width of the canvas, unless that makes it taller than the canvas.
func (c Canvas) CellSize(rows, cols int) (int, error) {
	if rows <= 0 || cols <= 0 {
		return 0, fmt.Errorf("%dx%d grid: %w", rows, cols, ErrInvalidCanvas)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return 0, fmt.Errorf("%dx%d canvas: %w", c.Width, c.Height, ErrInvalidCanvas)
	}

	cell := c.Width / cols
	if cell*rows > c.Height {
		cell = c.Height / rows
	}
	if cell < 1 {
		return 0, fmt.Errorf("%dx%d grid doesn't fit %dx%d canvas: %w", rows, cols, c.Width, c.Height, ErrInvalidCanvas)
	}

	return cell, nil
}

// Blocks encodes every bit of m, in row-major order, positioned on the canvas.
func Blocks(m bitmatrix.Matrix, c Canvas, s block.Scheme) ([]block.Block, error) {
	cell, err := c.CellSize(m.Rows(), m.Cols())
	if err != nil {
		return nil, err
	}

	blocks := make([]block.Block, 0, m.Rows()*m.Cols())
	for r := 0; r < m.Rows(); r++ {
		for col := 0; col < m.Cols(); col++ {
			b, err := block.Encode(m.At(r, col), cell, cell, s)
			if err != nil {
				return nil, fmt.Errorf("cell (%d, %d): %w", r, col, err)
			}
			blocks = append(blocks, b.Translate(image.Pt(col*cell, r*cell)))
		}
	}

	return blocks, nil
}

// Render draws m onto s.
// Nothing is drawn if m can't be encoded on the canvas.
func Render(s Sink, m bitmatrix.Matrix, c Canvas, scheme block.Scheme) error {
	blocks, err := Blocks(m, c, scheme)
	if err != nil {
		return err
	}

	background(s, c)
	draw(s, blocks)
	return nil
}

// RenderOverlay draws a and b stacked on top of each other onto s.
// Each cell of a is drawn right before the same cell of b.
func RenderOverlay(s Sink, a, b bitmatrix.Matrix, c Canvas, scheme block.Scheme) error {
	if !a.SameSize(b) {
		return fmt.Errorf("overlaying %dx%d and %dx%d: %w", a.Rows(), a.Cols(), b.Rows(), b.Cols(), bitmatrix.ErrDimensionMismatch)
	}

	aBlocks, err := Blocks(a, c, scheme)
	if err != nil {
		return err
	}
	bBlocks, err := Blocks(b, c, scheme)
	if err != nil {
		return err
	}

	background(s, c)
	for i := range aBlocks {
		draw(s, aBlocks[i:i+1])
		draw(s, bBlocks[i:i+1])
	}
	return nil
}

func background(s Sink, c Canvas) {
	if c.Background != nil {
		s.Rect(c.Bounds(), c.Background)
	}
}

func draw(s Sink, blocks []block.Block) {
	for _, b := range blocks {
		for _, shape := range b.Shapes {
			switch shape := shape.(type) {
			case block.Rect:
				s.Rect(shape.Rectangle, shape.Color)
			case block.Polygon:
				s.Polygon(shape.Points, shape.Color)
			default:
				panic(fmt.Sprintf("render: unknown shape %T", shape))
			}
		}
	}
}
