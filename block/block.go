// Package block encodes single bits as geometric patterns filling a cell.
//
// The Stacked and Triangle schemes split a cell into two complementary regions,
// one per bit value. Two shares whose bits are equal cover the same half of the cell when
// overlaid, two shares whose bits differ cover all of it. With data = source XOR key that
// makes the overlay fully dark exactly where the source was 1.
package block

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

var (
	ErrInvalidBit    = errors.New("invalid bit")
	ErrInvalidCell   = errors.New("invalid cell size")
	ErrUnknownScheme = errors.New("unknown scheme")
)

var (
	Dark  color.Color = color.Black
	Light color.Color = color.White
)

// Scheme selects how bits are drawn.
type Scheme int

const (
	// Plain draws 1 as a solid dark cell and 0 as a solid light cell.
	// For reference views only, it can't be stacked.
	Plain Scheme = iota
	// Stacked draws 1 as the left half of the cell and 0 as the right half.
	Stacked
	// Triangle draws 1 as the lower-left triangle of the cell and 0 as the upper-right one.
	Triangle
)

var names = map[string]Scheme{
	"plain":    Plain,
	"stacked":  Stacked,
	"triangle": Triangle,
}

// Schemes returns all schemes by name.
func Schemes() map[string]Scheme {
	s := make(map[string]Scheme, len(names))
	for k, v := range names {
		s[k] = v
	}
	return s
}

func ParseScheme(name string) (Scheme, error) {
	s, ok := names[name]
	if !ok {
		return 0, fmt.Errorf("%q: %w", name, ErrUnknownScheme)
	}
	return s, nil
}

func (s Scheme) String() string {
	for k, v := range names {
		if v == s {
			return k
		}
	}
	return fmt.Sprintf("Scheme(%d)", int(s))
}

// Shape is a filled Rect or Polygon.
type Shape interface {
	Fill() color.Color
	translate(image.Point) Shape
}

type Rect struct {
	image.Rectangle
	Color color.Color
}

func (r Rect) Fill() color.Color {
	return r.Color
}

func (r Rect) translate(p image.Point) Shape {
	return Rect{r.Rectangle.Add(p), r.Color}
}

// Polygon is a closed polygon, the last point connects back to the first.
type Polygon struct {
	Points []image.Point
	Color  color.Color
}

func (p Polygon) Fill() color.Color {
	return p.Color
}

func (p Polygon) translate(d image.Point) Shape {
	pts := make([]image.Point, len(p.Points))
	for i, pt := range p.Points {
		pts[i] = pt.Add(d)
	}
	return Polygon{pts, p.Color}
}

// Block is the encoding of one bit.
type Block struct {
	// Bounds of the cell, shapes stay within it.
	Bounds image.Rectangle
	Shapes []Shape
}

// Translate moves the block and all its shapes by p.
func (b Block) Translate(p image.Point) Block {
	shapes := make([]Shape, len(b.Shapes))
	for i, s := range b.Shapes {
		shapes[i] = s.translate(p)
	}
	return Block{
		Bounds: b.Bounds.Add(p),
		Shapes: shapes,
	}
}

// Encode returns the encoding of bit in a w x h cell with its top left corner at the origin.
func Encode(bit uint8, w, h int, s Scheme) (Block, error) {
	if bit > 1 {
		return Block{}, fmt.Errorf("%d: %w", bit, ErrInvalidBit)
	}
	if w < 1 || h < 1 {
		return Block{}, fmt.Errorf("%dx%d: %w", w, h, ErrInvalidCell)
	}

	cell := image.Rect(0, 0, w, h)

	var shape Shape
	switch s {
	case Plain:
		shape = Rect{cell, Light}
		if bit == 1 {
			shape = Rect{cell, Dark}
		}

	case Stacked:
		if w < 2 {
			return Block{}, fmt.Errorf("%dx%d can't be split in halves: %w", w, h, ErrInvalidCell)
		}
		// Split at w/2 for both halves so they're exact complements, even for odd widths.
		// For odd widths the 0 half is one column wider: an overlaid cell where the source is 0
		// is one column darker when the key bit is 0. Both key bits are equally likely, so this
		// doesn't depend on the source.
		half := w / 2
		shape = Rect{image.Rect(half, 0, w, h), Dark}
		if bit == 1 {
			shape = Rect{image.Rect(0, 0, half, h), Dark}
		}

	case Triangle:
		corner := image.Pt(w, 0)
		if bit == 1 {
			corner = image.Pt(0, h)
		}
		shape = Polygon{
			Points: []image.Point{image.Pt(0, 0), image.Pt(w, h), corner},
			Color:  Dark,
		}

	default:
		return Block{}, fmt.Errorf("%v: %w", s, ErrUnknownScheme)
	}

	return Block{
		Bounds: cell,
		Shapes: []Shape{shape},
	}, nil
}
