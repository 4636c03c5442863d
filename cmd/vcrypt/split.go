package main

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"go.afab.re/vcrypt"
	"go.afab.re/vcrypt/block"
)

type splitFlags struct {
	size        []int
	xsize       int
	image       string
	text        string
	keyfile     string
	output      string
	colored     bool
	canvasWidth int
	scheme      string
	resample    string
	invert      bool
	overlay     bool
	preview     bool
}

func splitCmd(g *globals) *cobra.Command {
	f := &splitFlags{}

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split an image or text into a key share and a data share",
		Long: `Split generates a random key share, and if an image or text is given, the data share
(image XOR key), rendered as SVGs for printing.

Without an image or text only the key is generated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return split(cmd, g, f)
		},
	}

	schemes := names(block.Schemes())
	schemes = slices.DeleteFunc(schemes, func(s string) bool { return s == block.Plain.String() })
	resamplers := append(names(vcrypt.Scalers), "none")

	flags := cmd.Flags()
	flags.IntSliceVarP(&f.size, "size", "g", nil, "matrix size, horizontal and vertical: W,H")
	flags.IntVarP(&f.xsize, "xsize", "x", 0, "matrix width, the height is scaled to the page")
	flags.StringVarP(&f.image, "image", "i", "", "secret image (PNG, JPEG, GIF, BMP, TIFF or WebP)")
	flags.StringVarP(&f.text, "text", "t", "", "secret text, rendered to fill the matrix")
	flags.StringVarP(&f.keyfile, "keyfile", "k", "", "write the key share to this file (default: NAME-key.svg in the output directory)")
	flags.StringVarP(&f.output, "output", "o", ".", "output directory")
	flags.BoolVarP(&f.colored, "colored", "c", true, "use a background color for the shares")
	flags.IntVar(&f.canvasWidth, "canvas-width", vcrypt.DefaultCanvasWidth, "width of the rendered shares in pixels, the height is scaled to the page")
	flags.StringVar(&f.scheme, "scheme", block.Stacked.String(), fmt.Sprintf("share encoding, one of %v", schemes))
	flags.StringVar(&f.resample, "resample", "nearest", fmt.Sprintf("how to resize the image to the matrix size, one of %v", resamplers))
	flags.BoolVar(&f.invert, "invert", false, "make the light parts of the image the secret")
	flags.BoolVar(&f.overlay, "overlay", false, "also write an SVG of both shares stacked")
	flags.BoolVar(&f.preview, "preview", false, "also write a PNG of both shares stacked")

	cmd.MarkFlagsMutuallyExclusive("size", "xsize")
	cmd.MarkFlagsMutuallyExclusive("image", "text")

	return cmd
}

func names[V any](m map[string]V) []string {
	n := maps.Keys(m)
	slices.Sort(n)
	return n
}

func split(cmd *cobra.Command, g *globals, f *splitFlags) error {
	scheme, err := block.ParseScheme(f.scheme)
	if err != nil {
		return err
	}

	opts := vcrypt.NormalizeOpts{Invert: f.invert}
	if f.resample != "none" {
		scaler, ok := vcrypt.Scalers[f.resample]
		if !ok {
			return fmt.Errorf("unknown resampler %q, expected one of %v", f.resample, append(names(vcrypt.Scalers), "none"))
		}
		opts.Scaler = scaler
	}

	var img image.Image
	if f.image != "" {
		if img, err = decode(f.image); err != nil {
			return err
		}
	}

	var size vcrypt.Size
	switch {
	case len(f.size) != 0:
		if len(f.size) != 2 {
			return fmt.Errorf("--size expects two numbers, horizontal and vertical, got %v", f.size)
		}
		size = vcrypt.Size{Cols: f.size[0], Rows: f.size[1]}
	case f.xsize != 0:
		size = vcrypt.SizeFromWidth(f.xsize)
	case img != nil:
		size = vcrypt.SizeOf(img)
	default:
		return errors.New("must either provide a source image or specify size")
	}
	g.logger.Info("Size", "cols", size.Cols, "rows", size.Rows)

	job := &vcrypt.Job{
		Name:    "vcrypt",
		Size:    size,
		Canvas:  vcrypt.PageCanvas(f.canvasWidth),
		Scheme:  scheme,
		Colored: f.colored,
		Overlay: f.overlay,
		Preview: f.preview,
		Logger:  g.logger,
	}

	if f.keyfile != "" {
		if job.KeyName, err = filepath.Abs(f.keyfile); err != nil {
			return err
		}
	}

	switch {
	case img != nil:
		job.Name = strings.TrimSuffix(filepath.Base(f.image), filepath.Ext(f.image))
	case f.text != "":
		job.Name = "text"
		if img, err = vcrypt.Text(f.text, size, vcrypt.TextOpts{}); err != nil {
			return err
		}
	}

	if img != nil {
		g.logger.Info("Processing image", "name", job.Name)

		source, err := vcrypt.Normalize(img, size, opts)
		if err != nil {
			return err
		}
		job.Source = &source
	}

	arts, err := job.Render(g.rand(cmd))
	if err != nil {
		return err
	}

	return job.Write(f.output, arts)
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}
