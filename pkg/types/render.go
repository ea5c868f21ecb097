package types

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fitglue/bodymap/pkg/assets"
	"github.com/fitglue/bodymap/pkg/domain/body"
)

var (
	ErrInvalidRequest = errors.New("invalid render request")
	ErrUnsafeValue    = errors.New("unsafe value")
)

// MaxScale is the largest accepted render scale. Raster exports allocate
// width*height pixels of the scaled view box.
const MaxScale = 10.0

// unsafeChars may not appear in values that end up inside SVG attributes.
const unsafeChars = "\"'<>&"

// RenderRequest is the wire form of a body map render: the configuration
// and the highlight entries.
type RenderRequest struct {
	Colors             []string        `json:"colors,omitempty" yaml:"colors,omitempty" firestore:"colors,omitempty"`
	Data               []body.Override `json:"data,omitempty" yaml:"data,omitempty" firestore:"data,omitempty"`
	Scale              float64         `json:"scale,omitempty" yaml:"scale,omitempty" firestore:"scale,omitempty"`
	Side               string          `json:"side,omitempty" yaml:"side,omitempty" firestore:"side,omitempty"`
	Gender             string          `json:"gender,omitempty" yaml:"gender,omitempty" firestore:"gender,omitempty"`
	DisabledParts      []body.Slug     `json:"disabledParts,omitempty" yaml:"disabledParts,omitempty" firestore:"disabled_parts,omitempty"`
	HiddenParts        []body.Slug     `json:"hiddenParts,omitempty" yaml:"hiddenParts,omitempty" firestore:"hidden_parts,omitempty"`
	DefaultFill        string          `json:"defaultFill,omitempty" yaml:"defaultFill,omitempty" firestore:"default_fill,omitempty"`
	DefaultStroke      string          `json:"defaultStroke,omitempty" yaml:"defaultStroke,omitempty" firestore:"default_stroke,omitempty"`
	DefaultStrokeWidth float64         `json:"defaultStrokeWidth,omitempty" yaml:"defaultStrokeWidth,omitempty" firestore:"default_stroke_width,omitempty"`
	Border             string          `json:"border,omitempty" yaml:"border,omitempty" firestore:"border,omitempty"`
}

// Validate checks the request at the wire boundary. Unknown override slugs
// and out-of-range intensities are not errors: the engine ignores them.
func (r *RenderRequest) Validate() error {
	if _, err := assets.NormalizeGender(r.Gender); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if _, err := assets.NormalizeView(r.Side); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if r.Scale < 0 {
		return fmt.Errorf("%w: scale must be positive, got %v", ErrInvalidRequest, r.Scale)
	}
	if r.Scale > MaxScale {
		return fmt.Errorf("%w: scale must be at most %v, got %v", ErrInvalidRequest, MaxScale, r.Scale)
	}
	if r.DefaultStrokeWidth < 0 {
		return fmt.Errorf("%w: defaultStrokeWidth must not be negative", ErrInvalidRequest)
	}

	paints := map[string]string{
		"defaultFill":   r.DefaultFill,
		"defaultStroke": r.DefaultStroke,
		"border":        r.Border,
	}
	for i, c := range r.Colors {
		paints[fmt.Sprintf("colors[%d]", i)] = c
	}
	for field, v := range paints {
		if err := checkSafe(field, v); err != nil {
			return err
		}
	}

	for _, list := range [][]body.Slug{r.DisabledParts, r.HiddenParts} {
		for _, s := range list {
			if err := checkSafe("slug", string(s)); err != nil {
				return err
			}
		}
	}

	for i, o := range r.Data {
		if o.Slug == "" {
			return fmt.Errorf("%w: data[%d] has no slug", ErrInvalidRequest, i)
		}
		switch o.Side {
		case body.SideNone, body.SideLeft, body.SideRight:
		default:
			return fmt.Errorf("%w: data[%d] has unknown side %q", ErrInvalidRequest, i, o.Side)
		}
		fields := []string{string(o.Slug), o.Color}
		if o.Styles != nil {
			fields = append(fields, o.Styles.Fill, o.Styles.Stroke)
			if o.Styles.StrokeWidth != nil && *o.Styles.StrokeWidth < 0 {
				return fmt.Errorf("%w: data[%d] has a negative stroke width", ErrInvalidRequest, i)
			}
		}
		for _, v := range fields {
			if err := checkSafe(fmt.Sprintf("data[%d]", i), v); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkSafe(field, v string) error {
	if strings.ContainsAny(v, unsafeChars) {
		return fmt.Errorf("%w: %w in %s", ErrInvalidRequest, ErrUnsafeValue, field)
	}
	return nil
}

// ToConfig converts the request into an engine configuration with every
// unset field defaulted. Call Validate first.
func (r *RenderRequest) ToConfig() body.Config {
	gender, _ := assets.NormalizeGender(r.Gender)
	view, _ := assets.NormalizeView(r.Side)

	cfg := body.Config{
		Colors:             r.Colors,
		Scale:              r.Scale,
		View:               view,
		Gender:             gender,
		Disabled:           r.DisabledParts,
		Hidden:             r.HiddenParts,
		DefaultFill:        r.DefaultFill,
		DefaultStroke:      r.DefaultStroke,
		DefaultStrokeWidth: r.DefaultStrokeWidth,
		Border:             r.Border,
	}
	if len(cfg.Colors) == 0 {
		cfg.Colors = nil
	}
	return cfg.WithDefaults()
}

// Overrides returns the highlight entries of the request.
func (r *RenderRequest) Overrides() []body.Override {
	return r.Data
}

// Preset is a named render request stored for a user.
type Preset struct {
	ID        string        `json:"id" firestore:"id"`
	UserID    string        `json:"userId" firestore:"user_id"`
	Name      string        `json:"name" firestore:"name"`
	Request   RenderRequest `json:"request" firestore:"request"`
	CreatedAt time.Time     `json:"createdAt" firestore:"created_at"`
	UpdatedAt time.Time     `json:"updatedAt" firestore:"updated_at"`
}

// RenderJob asks the renderer function to render and publish a body map.
// Either Request or PresetID must be set.
type RenderJob struct {
	JobID    string         `json:"jobId,omitempty"`
	UserID   string         `json:"userId,omitempty"`
	PresetID string         `json:"presetId,omitempty"`
	Request  *RenderRequest `json:"request,omitempty"`
	Formats  []string       `json:"formats,omitempty"`
}

// RenderedEvent is published once the assets of a job are stored.
type RenderedEvent struct {
	JobID    string            `json:"jobId"`
	UserID   string            `json:"userId,omitempty"`
	Gender   string            `json:"gender"`
	Side     string            `json:"side"`
	Segments int               `json:"segments"`
	Assets   map[string]string `json:"assets"`
}

// RegionPressedEvent is published when a user presses a region.
type RegionPressedEvent struct {
	UserID    string `json:"userId,omitempty"`
	Slug      string `json:"slug"`
	Side      string `json:"side,omitempty"`
	Label     string `json:"label"`
	Fill      string `json:"fill"`
	Intensity int    `json:"intensity,omitempty"`
}
