// Package bodymap ties the render engine to the outside world: it validates
// wire requests, renders scenes against the catalogue, encodes them, stores
// assets and publishes events.
package bodymap

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	shared "github.com/fitglue/bodymap/pkg"
	"github.com/fitglue/bodymap/pkg/assets"
	"github.com/fitglue/bodymap/pkg/bootstrap"
	"github.com/fitglue/bodymap/pkg/domain/body"
	"github.com/fitglue/bodymap/pkg/domain/file_generators"
	"github.com/fitglue/bodymap/pkg/infrastructure/pubsub"
	"github.com/fitglue/bodymap/pkg/infrastructure/storage"
	"github.com/fitglue/bodymap/pkg/types"
)

var (
	ErrRegionNotFound = fmt.Errorf("region %w", shared.ErrNotFound)
	ErrRegionDisabled = fmt.Errorf("region disabled: %w", shared.ErrConflict)
)

// Renderer renders body maps and publishes the results.
type Renderer struct {
	Catalogue *assets.Catalogue
	Store     shared.BlobStore
	Pub       shared.Publisher
	Bucket    string
	BaseURL   string
	Logger    *slog.Logger
}

// NewRenderer builds a Renderer from the service dependencies.
func NewRenderer(svc *bootstrap.Service, logger *slog.Logger) *Renderer {
	return &Renderer{
		Catalogue: svc.Catalogue,
		Store:     svc.Store,
		Pub:       svc.Pub,
		Bucket:    svc.Config.AssetsBucket,
		BaseURL:   svc.Config.AssetsBaseURL,
		Logger:    logger,
	}
}

// Rendered is a scene together with the drawing area of its collection.
type Rendered struct {
	Scene   *body.Scene
	ViewBox file_generators.ViewBox
}

// Title is the document title of a rendered scene, e.g. "Male front".
func (r *Rendered) Title() string {
	return body.Label(body.Slug(r.Scene.Gender)) + " " + string(r.Scene.View)
}

func (s *Renderer) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

func (s *Renderer) catalogue() (*assets.Catalogue, error) {
	if s.Catalogue != nil {
		return s.Catalogue, nil
	}
	return assets.Embedded()
}

// Render validates req and renders it against the matching collection.
func (s *Renderer) Render(req *types.RenderRequest) (*Rendered, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", types.ErrInvalidRequest)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	cfg := req.ToConfig()

	cat, err := s.catalogue()
	if err != nil {
		return nil, err
	}
	coll, err := cat.Select(cfg.Gender, cfg.View)
	if err != nil {
		return nil, err
	}

	scene := body.Render(coll.Regions, req.Overrides(), cfg)
	s.logger().Debug("Rendered body map",
		"gender", scene.Gender,
		"side", scene.View,
		"regions", len(scene.Regions),
		"segments", len(scene.Segments))

	return &Rendered{Scene: scene, ViewBox: file_generators.ViewBox(coll.ViewBox)}, nil
}

// Encode writes rendered in the given format.
func (s *Renderer) Encode(w io.Writer, rendered *Rendered, format file_generators.Format) error {
	if format == "" || format == file_generators.FormatSVG {
		return file_generators.WriteSVG(w, rendered.Scene, rendered.ViewBox, file_generators.SVGOptions{Title: rendered.Title()})
	}
	return file_generators.Encode(w, rendered.Scene, rendered.ViewBox, format)
}

// AssetObject is the storage object name of one rendered asset.
func AssetObject(jobID string, scene *body.Scene, format file_generators.Format) string {
	return fmt.Sprintf("%s/bodymap-%s-%s.%s", jobID, scene.Gender, scene.View, format.Extension())
}

// Publish encodes rendered in every format, stores the assets and publishes
// a rendered event. It returns the published event.
func (s *Renderer) Publish(ctx context.Context, jobID, userID string, rendered *Rendered, formats []file_generators.Format) (*types.RenderedEvent, error) {
	if len(formats) == 0 {
		formats = []file_generators.Format{file_generators.FormatSVG}
	}

	result := &types.RenderedEvent{
		JobID:    jobID,
		UserID:   userID,
		Gender:   string(rendered.Scene.Gender),
		Side:     string(rendered.Scene.View),
		Segments: len(rendered.Scene.Segments),
		Assets:   make(map[string]string, len(formats)),
	}

	for _, format := range formats {
		var buf bytes.Buffer
		if err := s.Encode(&buf, rendered, format); err != nil {
			return nil, fmt.Errorf("encode %s: %w", format, err)
		}

		object := AssetObject(jobID, rendered.Scene, format)
		if err := s.Store.Write(ctx, s.Bucket, object, buf.Bytes()); err != nil {
			return nil, fmt.Errorf("store %s: %w", object, err)
		}
		url := storage.PublicURL(s.BaseURL, s.Bucket, object)
		result.Assets[string(format)] = url

		s.logger().Info("Stored body map asset", "object", object, "bytes", buf.Len(), "url", url)
	}

	e, err := pubsub.NewCloudEvent(shared.EventSource, shared.EventTypeRendered, result)
	if err != nil {
		return nil, err
	}
	e = pubsub.WithSubject(e, jobID)
	msgID, err := s.Pub.PublishCloudEvent(ctx, shared.TopicBodyMapEvents, e)
	if err != nil {
		return nil, fmt.Errorf("publish rendered event: %w", err)
	}
	s.logger().Info("Published rendered event", "job_id", jobID, "message_id", msgID)

	return result, nil
}

// Press renders req and dispatches a press on slug and side. Hidden and
// unknown regions report ErrRegionNotFound, disabled ones ErrRegionDisabled.
// A successful press is published as a region pressed event.
func (s *Renderer) Press(ctx context.Context, userID string, req *types.RenderRequest, slug body.Slug, side body.Side) (*types.RegionPressedEvent, error) {
	switch side {
	case body.SideNone, body.SideLeft, body.SideRight:
	default:
		return nil, fmt.Errorf("%w: unknown side %q", types.ErrInvalidRequest, side)
	}
	rendered, err := s.Render(req)
	if err != nil {
		return nil, err
	}

	region, ok := rendered.Scene.Region(slug)
	if !ok {
		return nil, fmt.Errorf("%s: %w", slug, ErrRegionNotFound)
	}
	if region.Style.Disabled {
		return nil, fmt.Errorf("%s: %w", slug, ErrRegionDisabled)
	}

	var pressed *types.RegionPressedEvent
	rendered.Scene.PressRegion(slug, side, func(r body.ResolvedRegion, side body.Side) {
		pressed = &types.RegionPressedEvent{
			UserID:    userID,
			Slug:      string(r.Slug),
			Side:      string(side),
			Label:     body.SideLabel(r.Slug, side),
			Fill:      r.Style.Fill,
			Intensity: r.Intensity,
		}
	})
	if pressed == nil {
		return nil, fmt.Errorf("%s has no %q outline: %w", slug, side, ErrRegionNotFound)
	}

	e, err := pubsub.NewCloudEvent(shared.EventSource, shared.EventTypeRegionPressed, pressed)
	if err != nil {
		return nil, err
	}
	if _, err := s.Pub.PublishCloudEvent(ctx, shared.TopicBodyMapEvents, pubsub.WithSubject(e, string(slug))); err != nil {
		return nil, fmt.Errorf("publish press event: %w", err)
	}
	return pressed, nil
}

// RegionInfo describes one region of a collection.
type RegionInfo struct {
	Slug      body.Slug `json:"slug"`
	Label     string    `json:"label"`
	Bilateral bool      `json:"bilateral"`
	Segments  int       `json:"segments"`
}

// Regions lists the regions of the collection for gender and side in
// catalogue order.
func (s *Renderer) Regions(gender, side string) ([]RegionInfo, error) {
	g, err := assets.NormalizeGender(gender)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrInvalidRequest, err)
	}
	v, err := assets.NormalizeView(side)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrInvalidRequest, err)
	}
	cat, err := s.catalogue()
	if err != nil {
		return nil, err
	}
	coll, err := cat.Select(g, v)
	if err != nil {
		return nil, err
	}

	out := make([]RegionInfo, len(coll.Regions))
	for i, r := range coll.Regions {
		out[i] = RegionInfo{
			Slug:      r.Slug,
			Label:     body.Label(r.Slug),
			Bilateral: r.Path.Bilateral(),
			Segments:  len(r.Path.Common) + len(r.Path.Left) + len(r.Path.Right),
		}
	}
	return out, nil
}
