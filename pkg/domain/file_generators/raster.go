package file_generators

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"

	"github.com/fitglue/bodymap/pkg/domain/body"
)

// maxPixels bounds the output area of a raster export.
const maxPixels = 4096 * 4096

// supersample is the oversampling factor used before downscaling.
const supersample = 2

// Format is an output encoding of a rendered body map.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
)

// ParseFormat accepts a format name; the empty string means SVG.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatSVG, nil
	case FormatSVG, FormatPNG, FormatWebP:
		return f, nil
	}
	return "", fmt.Errorf("unsupported format %q", s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatWebP:
		return "image/webp"
	}
	return "image/svg+xml"
}

// Extension returns the file extension of the format, without the dot.
func (f Format) Extension() string {
	if f == "" {
		return string(FormatSVG)
	}
	return string(f)
}

// Rasterize draws an SVG document into an RGBA image of the given size. The
// document is rendered at a higher resolution and downsampled.
func Rasterize(svgData []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid raster size %dx%d", width, height)
	}
	if int64(width)*int64(height) > maxPixels {
		return nil, fmt.Errorf("raster size %dx%d exceeds %d pixels", width, height, maxPixels)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}

	lw, lh := width*supersample, height*supersample
	icon.SetTarget(0, 0, float64(lw), float64(lh))

	large := image.NewRGBA(image.Rect(0, 0, lw, lh))
	scanner := rasterx.NewScannerGV(lw, lh, large, large.Bounds())
	icon.Draw(rasterx.NewDasher(lw, lh, scanner), 1.0)

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(out, out.Bounds(), large, large.Bounds(), draw.Over, nil)
	return out, nil
}

// RasterizeScene renders the static SVG of a scene and rasterises it at the
// scene's output size.
func RasterizeScene(scene *body.Scene, viewBox ViewBox) (*image.RGBA, error) {
	data, err := GenerateSVG(scene, viewBox, SVGOptions{Static: true})
	if err != nil {
		return nil, err
	}
	w, h := viewBox.Size(scene.Scale)
	return Rasterize(data, w, h)
}

// EncodeWebP writes img as lossless WebP.
func EncodeWebP(w io.Writer, img image.Image) error {
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("encode webp: %w", err)
	}
	return nil
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Encode renders a scene in the requested format.
func Encode(w io.Writer, scene *body.Scene, viewBox ViewBox, format Format) error {
	if format == "" || format == FormatSVG {
		return WriteSVG(w, scene, viewBox, SVGOptions{})
	}

	img, err := RasterizeScene(scene, viewBox)
	if err != nil {
		return err
	}
	switch format {
	case FormatPNG:
		return EncodePNG(w, img)
	case FormatWebP:
		return EncodeWebP(w, img)
	}
	return fmt.Errorf("unsupported format %q", format)
}
