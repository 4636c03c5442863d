package render

import (
	"image"
	"image/color"

	"golang.org/x/image/vector"

	"go.afab.re/vcrypt/monochrome"
)

// Raster is a Sink that tracks how much of each pixel is covered in ink,
// like shares printed on transparencies: dark fills add ink, light fills are see-through.
type Raster struct {
	ink *image.Alpha
	z   *vector.Rasterizer
}

var _ Sink = &Raster{}

func NewRaster(c Canvas) *Raster {
	return &Raster{
		ink: image.NewAlpha(c.Bounds()),
		z:   vector.NewRasterizer(c.Width, c.Height),
	}
}

func (r *Raster) Rect(rect image.Rectangle, fill color.Color) {
	r.Polygon([]image.Point{
		rect.Min,
		image.Pt(rect.Max.X, rect.Min.Y),
		rect.Max,
		image.Pt(rect.Min.X, rect.Max.Y),
	}, fill)
}

func (r *Raster) Polygon(pts []image.Point, fill color.Color) {
	if len(pts) < 3 || !isInk(fill) {
		return
	}

	// Only rasterize the polygon's bounding box, the rasterizer clears and
	// accumulates its whole area on every shape.
	b := bounds(pts).Intersect(r.ink.Bounds())
	if b.Empty() {
		return
	}
	r.z.Reset(b.Dx(), b.Dy())

	r.z.MoveTo(float32(pts[0].X-b.Min.X), float32(pts[0].Y-b.Min.Y))
	for _, p := range pts[1:] {
		r.z.LineTo(float32(p.X-b.Min.X), float32(p.Y-b.Min.Y))
	}
	r.z.ClosePath()

	// The default Over op accumulates ink.
	r.z.Draw(r.ink, b, image.Opaque, image.Point{})
}

func bounds(pts []image.Point) image.Rectangle {
	b := image.Rectangle{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		b.Min.X = min(b.Min.X, p.X)
		b.Min.Y = min(b.Min.Y, p.Y)
		b.Max.X = max(b.Max.X, p.X)
		b.Max.Y = max(b.Max.Y, p.Y)
	}
	return b
}

func isInk(c color.Color) bool {
	return color.GrayModel.Convert(c).(color.Gray).Y < monochrome.Threshold
}

// Coverage returns the average ink coverage of rect, between 0 (clear) and 1 (fully dark).
func (r *Raster) Coverage(rect image.Rectangle) float64 {
	rect = rect.Intersect(r.ink.Bounds())
	if rect.Empty() {
		return 0
	}

	var sum int
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			sum += int(r.ink.AlphaAt(x, y).A)
		}
	}

	return float64(sum) / float64(255*rect.Dx()*rect.Dy())
}

// Monochrome returns the ink as an image, black where pixels are at least half covered.
func (r *Raster) Monochrome() *monochrome.Image {
	b := r.ink.Bounds()
	mono := monochrome.New(b)

	for x := b.Min.X; x < b.Max.X; x++ {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			mono.SetBlack(x, y, r.ink.AlphaAt(x, y).A >= 0x80)
		}
	}

	return mono
}
