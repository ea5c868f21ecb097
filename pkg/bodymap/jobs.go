package bodymap

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	shared "github.com/fitglue/bodymap/pkg"
	"github.com/fitglue/bodymap/pkg/domain/file_generators"
	"github.com/fitglue/bodymap/pkg/infrastructure/pubsub"
	"github.com/fitglue/bodymap/pkg/types"
)

// SavePreset validates req and stores it as a named preset of userID.
func SavePreset(ctx context.Context, store shared.PresetStore, userID, presetID, name string, req types.RenderRequest) (*types.Preset, error) {
	if userID == "" || presetID == "" {
		return nil, fmt.Errorf("%w: user and preset id are required", types.ErrInvalidRequest)
	}
	if strings.ContainsAny(presetID, "/") {
		return nil, fmt.Errorf("%w: preset id %q contains a slash", types.ErrInvalidRequest, presetID)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		name = presetID
	}

	preset := &types.Preset{
		ID:      presetID,
		UserID:  userID,
		Name:    name,
		Request: req,
	}
	if err := store.SetPreset(ctx, preset); err != nil {
		return nil, fmt.Errorf("save preset %s: %w", presetID, err)
	}
	return preset, nil
}

// ResolveJob returns the render request of a job, loading the preset when
// the job references one. An inline request wins over a preset.
func ResolveJob(ctx context.Context, store shared.PresetStore, job *types.RenderJob) (*types.RenderRequest, error) {
	if job.Request != nil {
		return job.Request, nil
	}
	if job.PresetID == "" {
		return nil, fmt.Errorf("%w: job has neither request nor preset", types.ErrInvalidRequest)
	}
	if job.UserID == "" {
		return nil, fmt.Errorf("%w: preset jobs need a user id", types.ErrInvalidRequest)
	}
	preset, err := store.GetPreset(ctx, job.UserID, job.PresetID)
	if err != nil {
		return nil, fmt.Errorf("load preset %s: %w", job.PresetID, err)
	}
	return &preset.Request, nil
}

// ParseFormats parses format names, dropping duplicates. An empty list
// yields SVG only.
func ParseFormats(names []string) ([]file_generators.Format, error) {
	if len(names) == 0 {
		return []file_generators.Format{file_generators.FormatSVG}, nil
	}
	seen := make(map[file_generators.Format]bool, len(names))
	out := make([]file_generators.Format, 0, len(names))
	for _, n := range names {
		f, err := file_generators.ParseFormat(n)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", types.ErrInvalidRequest, err)
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

// RunJob renders a job and publishes its assets. Jobs without an id get a
// generated one.
func (s *Renderer) RunJob(ctx context.Context, store shared.PresetStore, job *types.RenderJob) (*types.RenderedEvent, error) {
	req, err := ResolveJob(ctx, store, job)
	if err != nil {
		return nil, err
	}
	formats, err := ParseFormats(job.Formats)
	if err != nil {
		return nil, err
	}
	rendered, err := s.Render(req)
	if err != nil {
		return nil, err
	}

	jobID := job.JobID
	if jobID == "" {
		jobID = uuid.NewString()
	}
	return s.Publish(ctx, jobID, job.UserID, rendered, formats)
}

// EnqueueJob checks a job and publishes it to the render jobs topic for the
// renderer function. Inline requests are validated up front; preset jobs are
// resolved when they run. The job id is generated when empty.
func (s *Renderer) EnqueueJob(ctx context.Context, job *types.RenderJob) (*types.RenderJob, error) {
	switch {
	case job.Request != nil:
		if err := job.Request.Validate(); err != nil {
			return nil, err
		}
	case job.PresetID == "":
		return nil, fmt.Errorf("%w: job has neither request nor preset", types.ErrInvalidRequest)
	case job.UserID == "":
		return nil, fmt.Errorf("%w: preset jobs need a user id", types.ErrInvalidRequest)
	}
	if _, err := ParseFormats(job.Formats); err != nil {
		return nil, err
	}

	queued := *job
	if queued.JobID == "" {
		queued.JobID = uuid.NewString()
	}

	e, err := pubsub.NewCloudEvent(shared.EventSource, shared.EventTypeRenderJob, &queued)
	if err != nil {
		return nil, err
	}
	msgID, err := s.Pub.PublishCloudEvent(ctx, shared.TopicRenderJobs, pubsub.WithSubject(e, queued.JobID))
	if err != nil {
		return nil, fmt.Errorf("publish render job: %w", err)
	}
	s.logger().Info("Queued render job", "job_id", queued.JobID, "message_id", msgID)
	return &queued, nil
}
