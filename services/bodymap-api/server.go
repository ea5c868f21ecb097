// Package bodymapapi serves body map renders, presses, catalogue listings
// and user presets over HTTP.
package bodymapapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	shared "github.com/fitglue/bodymap/pkg"
	"github.com/fitglue/bodymap/pkg/bodymap"
	"github.com/fitglue/bodymap/pkg/domain/body"
	"github.com/fitglue/bodymap/pkg/domain/file_generators"
	httputil "github.com/fitglue/bodymap/pkg/infrastructure/http"
	"github.com/fitglue/bodymap/pkg/infrastructure/sentry"
	"github.com/fitglue/bodymap/pkg/types"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Server holds the handlers' dependencies.
type Server struct {
	Renderer *bodymap.Renderer
	Presets  shared.PresetStore
	Logger   *slog.Logger
}

// PressRequest presses one region of a rendered body map.
type PressRequest struct {
	UserID  string              `json:"userId,omitempty"`
	Request types.RenderRequest `json:"request"`
	Slug    body.Slug           `json:"slug"`
	Side    body.Side           `json:"side,omitempty"`
}

// PresetRequest is the body of a preset upsert.
type PresetRequest struct {
	Name    string              `json:"name,omitempty"`
	Request types.RenderRequest `json:"request"`
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(sentry.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(api chi.Router) {
		api.Post("/render", s.handleRender)
		api.Post("/press", s.handlePress)
		api.Post("/jobs", s.handleEnqueueJob)
		api.Get("/catalogue/{gender}/{side}", s.handleCatalogue)

		api.Route("/users/{userId}/presets", func(p chi.Router) {
			p.Get("/", s.handleListPresets)
			p.Get("/{presetId}", s.handleGetPreset)
			p.Put("/{presetId}", s.handlePutPreset)
			p.Delete("/{presetId}", s.handleDeletePreset)
			p.Get("/{presetId}/render", s.handleRenderPreset)
		})
	})

	return r
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := httputil.WriteError(w, s.Logger, err)
	if status >= http.StatusInternalServerError {
		sentry.CaptureException(err, map[string]string{
			"route":      r.URL.Path,
			"request_id": middleware.GetReqID(r.Context()),
		}, s.Logger)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: decode body: %v", types.ErrInvalidRequest, err)
	}
	return nil
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req types.RenderRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeRender(w, r, &req)
}

// writeRender renders req in the format named by the "format" query
// parameter and writes the encoded asset.
func (s *Server) writeRender(w http.ResponseWriter, r *http.Request, req *types.RenderRequest) {
	format, err := file_generators.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.fail(w, r, fmt.Errorf("%w: %w", types.ErrInvalidRequest, err))
		return
	}

	rendered, err := s.Renderer.Render(req)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := s.Renderer.Encode(&buf, rendered, format); err != nil {
		s.fail(w, r, err)
		return
	}

	s.Logger.Info("Rendered body map",
		"gender", rendered.Scene.Gender,
		"side", rendered.Scene.View,
		"segments", len(rendered.Scene.Segments),
		"format", format,
		"request_id", middleware.GetReqID(r.Context()))

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handlePress(w http.ResponseWriter, r *http.Request) {
	var req PressRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if req.Slug == "" {
		s.fail(w, r, fmt.Errorf("%w: slug is required", types.ErrInvalidRequest))
		return
	}

	pressed, err := s.Renderer.Press(r.Context(), req.UserID, &req.Request, req.Slug, req.Side)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, pressed)
}

func (s *Server) handleEnqueueJob(w http.ResponseWriter, r *http.Request) {
	var job types.RenderJob
	if err := decodeBody(w, r, &job); err != nil {
		s.fail(w, r, err)
		return
	}

	queued, err := s.Renderer.EnqueueJob(r.Context(), &job)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusAccepted, queued)
}

func (s *Server) handleCatalogue(w http.ResponseWriter, r *http.Request) {
	regions, err := s.Renderer.Regions(chi.URLParam(r, "gender"), chi.URLParam(r, "side"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"regions": regions})
}

func (s *Server) handleListPresets(w http.ResponseWriter, r *http.Request) {
	presets, err := s.Presets.ListPresets(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if presets == nil {
		presets = []*types.Preset{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"presets": presets})
}

func (s *Server) handleGetPreset(w http.ResponseWriter, r *http.Request) {
	preset, err := s.Presets.GetPreset(r.Context(), chi.URLParam(r, "userId"), chi.URLParam(r, "presetId"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, preset)
}

func (s *Server) handlePutPreset(w http.ResponseWriter, r *http.Request) {
	var req PresetRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	preset, err := bodymap.SavePreset(r.Context(), s.Presets,
		chi.URLParam(r, "userId"), chi.URLParam(r, "presetId"), req.Name, req.Request)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, preset)
}

func (s *Server) handleDeletePreset(w http.ResponseWriter, r *http.Request) {
	if err := s.Presets.DeletePreset(r.Context(), chi.URLParam(r, "userId"), chi.URLParam(r, "presetId")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRenderPreset(w http.ResponseWriter, r *http.Request) {
	preset, err := s.Presets.GetPreset(r.Context(), chi.URLParam(r, "userId"), chi.URLParam(r, "presetId"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeRender(w, r, &preset.Request)
}
