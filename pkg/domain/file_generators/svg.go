package file_generators

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"

	svg "github.com/ajstarks/svgo"

	"github.com/fitglue/bodymap/pkg/domain/body"
)

// SVGOptions controls the view wrapper.
type SVGOptions struct {
	// Static drops the interaction attributes (data-*, cursor, aria). Used
	// for raster exports, which have no press handling.
	Static bool
	// Title is written as the document title when set.
	Title string
}

// ViewBox is the drawing area of a collection: min x, min y, width, height.
type ViewBox [4]float64

// Size returns the output size in pixels at the given scale.
func (v ViewBox) Size(scale float64) (int, int) {
	if scale <= 0 {
		scale = body.DefaultScale
	}
	return int(math.Round(v[2] * scale)), int(math.Round(v[3] * scale))
}

// GenerateSVG renders a scene into a standalone SVG document. The document
// is sized by the view box times the scene scale; segments are grouped per
// region in emission order with a <title> label per group.
func GenerateSVG(scene *body.Scene, viewBox ViewBox, opts SVGOptions) ([]byte, error) {
	if scene == nil {
		return nil, fmt.Errorf("scene cannot be nil")
	}
	if viewBox[2] <= 0 || viewBox[3] <= 0 {
		return nil, fmt.Errorf("invalid view box %v", viewBox)
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)

	width, height := viewBox.Size(scene.Scale)
	minX, minY := int(viewBox[0]), int(viewBox[1])
	vw, vh := int(math.Ceil(viewBox[2])), int(math.Ceil(viewBox[3]))
	canvas.Startview(width, height, minX, minY, vw, vh)

	if opts.Title != "" {
		canvas.Title(opts.Title)
	}

	if scene.Border != "" && scene.Border != body.BorderNone {
		canvas.Rect(minX, minY, vw, vh, `fill="none"`, attr("stroke", scene.Border), `id="border"`)
	}

	canvas.Gid(fmt.Sprintf("%s-%s", scene.Gender, scene.View))
	for _, region := range scene.Regions {
		segs := scene.SegmentsFor(region.Slug)
		if len(segs) == 0 {
			continue
		}
		canvas.Group(attr("id", "region-"+string(region.Slug)))
		canvas.Title(body.Label(region.Slug))
		for _, seg := range segs {
			canvas.Path(seg.D, segmentAttrs(seg, opts.Static)...)
		}
		canvas.Gend()
	}
	canvas.Gend()
	canvas.End()

	return buf.Bytes(), nil
}

// WriteSVG is GenerateSVG writing to w.
func WriteSVG(w io.Writer, scene *body.Scene, viewBox ViewBox, opts SVGOptions) error {
	data, err := GenerateSVG(scene, viewBox, opts)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func segmentAttrs(seg body.Segment, static bool) []string {
	attrs := []string{
		attr("id", seg.Key),
		attr("fill", seg.Fill),
		attr("stroke", seg.Stroke),
		attr("stroke-width", formatFloat(seg.StrokeWidth)),
	}
	if seg.Opacity != 1 {
		attrs = append(attrs, attr("opacity", formatFloat(seg.Opacity)))
	}
	if static {
		return attrs
	}

	attrs = append(attrs, attr("data-slug", string(seg.Slug)))
	if seg.Side != body.SideNone {
		attrs = append(attrs, attr("data-side", string(seg.Side)))
	}
	attrs = append(attrs,
		attr("cursor", seg.Cursor),
		attr("aria-label", body.SideLabel(seg.Slug, seg.Side)),
	)
	if seg.Disabled {
		attrs = append(attrs, `aria-disabled="true"`)
	} else if seg.Pressable {
		attrs = append(attrs, `role="button"`)
	}
	return attrs
}

func attr(name, value string) string {
	return name + `="` + value + `"`
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
