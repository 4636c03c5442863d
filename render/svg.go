package render

import (
	"fmt"
	"image"
	"image/color"
	"io"

	svg "github.com/ajstarks/svgo"
)

// SVG is a Sink writing an SVG document the size of the canvas.
type SVG struct {
	w   *errWriter
	svg *svg.SVG
}

var _ Sink = &SVG{}

// NewSVG starts an SVG document on w. Close must be called to finish it.
func NewSVG(w io.Writer, c Canvas) *SVG {
	ew := &errWriter{w: w}
	s := svg.New(ew)
	s.Start(c.Width, c.Height)

	return &SVG{
		w:   ew,
		svg: s,
	}
}

func (s *SVG) Rect(r image.Rectangle, fill color.Color) {
	s.svg.Rect(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), style(fill))
}

func (s *SVG) Polygon(pts []image.Point, fill color.Color) {
	xs := make([]int, len(pts))
	ys := make([]int, len(pts))
	for i, p := range pts {
		xs[i] = p.X
		ys[i] = p.Y
	}
	s.svg.Polygon(xs, ys, style(fill))
}

// Close ends the document, and returns the first error writing it.
func (s *SVG) Close() error {
	s.svg.End()
	return s.w.err
}

func style(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("fill:rgb(%d,%d,%d)", r>>8, g>>8, b>>8)
}

// svgo ignores write errors, keep track of them here.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(b []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}

	n, err := e.w.Write(b)
	if err != nil {
		e.err = err
	}
	return n, err
}
