package vcrypt

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"

	"go.afab.re/vcrypt/bitmatrix"
	"go.afab.re/vcrypt/block"
	"go.afab.re/vcrypt/render"
)

var ErrNotStackable = errors.New("scheme can't be stacked")

var (
	keyBackground   = color.RGBA{R: 255, G: 200, B: 200, A: 255}
	shareBackground = color.RGBA{R: 200, G: 200, B: 255, A: 255}
)

// Job describes the artifacts to produce for one secret.
type Job struct {
	// Name prefixes the names of the artifacts.
	Name string
	// Size of the key. Ignored if there is a Source.
	Size   Size
	Canvas render.Canvas
	// Scheme the shares are drawn with, Stacked or Triangle.
	Scheme block.Scheme
	// Colored gives each share a different background color.
	Colored bool

	// Source is the secret. Without one only the key is rendered.
	Source *bitmatrix.Matrix

	// KeyName overrides the name of the key artifact.
	KeyName string
	// Overlay adds an SVG of both shares stacked.
	Overlay bool
	// Preview adds a PNG of both shares stacked.
	Preview bool

	Logger *slog.Logger
}

// Artifact is a rendered file.
type Artifact struct {
	// Name of the file, relative to the output directory unless absolute.
	Name string
	Data []byte
}

func (j *Job) logger() *slog.Logger {
	if j.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return j.Logger
}

func (j *Job) name(kind, ext string) string {
	return j.Name + "-" + kind + ext
}

// Render generates the key from rng and renders every artifact in memory.
// Nothing is returned unless all artifacts rendered.
func (j *Job) Render(rng rand.Source) ([]Artifact, error) {
	if j.Scheme == block.Plain {
		return nil, fmt.Errorf("%v: %w", j.Scheme, ErrNotStackable)
	}

	var key, data Share
	if j.Source != nil {
		var err error
		if key, data, err = Split(*j.Source, rng); err != nil {
			return nil, err
		}
	} else {
		k, err := bitmatrix.Random(j.Size.Rows, j.Size.Cols, rng)
		if err != nil {
			return nil, fmt.Errorf("key: %w", err)
		}
		key = Share{Key, k}
	}

	cell, err := j.Canvas.CellSize(key.Rows(), key.Cols())
	if err != nil {
		return nil, err
	}
	j.logger().Info("Rendering", "cols", key.Cols(), "rows", key.Rows(), "canvas", fmt.Sprintf("%dx%d", j.Canvas.Width, j.Canvas.Height), "cell", cell)

	keyName := j.KeyName
	if keyName == "" {
		keyName = j.name("key", ".svg")
	}

	arts := []Artifact{}
	add := func(a Artifact, err error) error {
		if err != nil {
			return fmt.Errorf("%s: %w", a.Name, err)
		}
		arts = append(arts, a)
		return nil
	}

	if err := add(svgArtifact(keyName, j.canvas(keyBackground), func(s render.Sink, c render.Canvas) error {
		return render.Render(s, key.Matrix, c, j.Scheme)
	})); err != nil {
		return nil, err
	}

	if j.Source == nil {
		return arts, nil
	}

	if err := add(svgArtifact(j.name("plain", ".svg"), j.Canvas, func(s render.Sink, c render.Canvas) error {
		return render.Render(s, *j.Source, c, block.Plain)
	})); err != nil {
		return nil, err
	}

	if err := add(svgArtifact(j.name("share", ".svg"), j.canvas(shareBackground), func(s render.Sink, c render.Canvas) error {
		return render.Render(s, data.Matrix, c, j.Scheme)
	})); err != nil {
		return nil, err
	}

	if j.Overlay {
		if err := add(svgArtifact(j.name("overlay", ".svg"), j.Canvas, func(s render.Sink, c render.Canvas) error {
			return render.RenderOverlay(s, key.Matrix, data.Matrix, c, j.Scheme)
		})); err != nil {
			return nil, err
		}
	}

	if j.Preview {
		if err := add(j.preview(key, data)); err != nil {
			return nil, err
		}
	}

	return arts, nil
}

func (j *Job) canvas(background color.Color) render.Canvas {
	c := j.Canvas
	c.Background = nil
	if j.Colored {
		c.Background = background
	}
	return c
}

func svgArtifact(name string, c render.Canvas, draw func(render.Sink, render.Canvas) error) (Artifact, error) {
	var buf bytes.Buffer

	s := render.NewSVG(&buf, c)
	if err := draw(s, c); err != nil {
		return Artifact{Name: name}, err
	}
	if err := s.Close(); err != nil {
		return Artifact{Name: name}, err
	}

	return Artifact{Name: name, Data: buf.Bytes()}, nil
}

func (j *Job) preview(key, data Share) (Artifact, error) {
	name := j.name("preview", ".png")
	c := j.Canvas

	raster := render.NewRaster(c)
	if err := render.RenderOverlay(raster, key.Matrix, data.Matrix, c, j.Scheme); err != nil {
		return Artifact{Name: name}, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, raster.Monochrome()); err != nil {
		return Artifact{Name: name}, err
	}

	return Artifact{Name: name, Data: buf.Bytes()}, nil
}

// Write writes the artifacts to dir.
// If any of them can't be written, the ones already written are removed.
func (j *Job) Write(dir string, arts []Artifact) (err error) {
	var written []string
	defer func() {
		if err == nil {
			return
		}
		for _, path := range written {
			os.Remove(path)
		}
	}()

	for _, a := range arts {
		path := a.Name
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}

		if err := writeFile(path, a.Data); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		written = append(written, path)
		j.logger().Info("Wrote", "path", path, "bytes", len(a.Data))
	}

	return nil
}

func writeFile(path string, data []byte) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	_, err = f.Write(data)
	return err
}
