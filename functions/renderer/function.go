package renderer

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	cloudevents "github.com/cloudevents/sdk-go/v2"

	"github.com/fitglue/bodymap/pkg/bodymap"
	"github.com/fitglue/bodymap/pkg/bootstrap"
	"github.com/fitglue/bodymap/pkg/framework"
	"github.com/fitglue/bodymap/pkg/types"
)

var (
	svc     *bootstrap.Service
	svcOnce sync.Once
	svcErr  error
)

func init() {
	functions.CloudEvent("RenderBodyMap", RenderBodyMap)
}

func initService(ctx context.Context) (*bootstrap.Service, error) {
	if svc != nil {
		return svc, nil
	}
	svcOnce.Do(func() {
		svc, svcErr = bootstrap.NewService(ctx)
	})
	return svc, svcErr
}

// RenderBodyMap is the entry point
func RenderBodyMap(ctx context.Context, e cloudevents.Event) error {
	svc, err := initService(ctx)
	if err != nil {
		return fmt.Errorf("service init failed: %v", err)
	}
	return framework.WrapCloudEvent("bodymap-renderer", svc, renderHandler)(ctx, e)
}

func renderHandler(ctx context.Context, e cloudevents.Event, fwCtx *framework.FrameworkContext) (interface{}, error) {
	job, err := decodeJob(e)
	if err != nil {
		return nil, err
	}
	if job.JobID == "" {
		job.JobID = fwCtx.ExecutionID
	}

	fwCtx.Logger.Info("Rendering body map", "job_id", job.JobID, "preset_id", job.PresetID, "formats", job.Formats)

	renderer := bodymap.NewRenderer(fwCtx.Service, fwCtx.Logger)
	result, err := renderer.RunJob(ctx, fwCtx.Service.Presets, job)
	if err != nil {
		return nil, fmt.Errorf("render job %s: %w", job.JobID, err)
	}

	fwCtx.Logger.Info("Body map rendered",
		"gender", result.Gender,
		"side", result.Side,
		"segments", result.Segments,
		"assets", len(result.Assets))

	return map[string]interface{}{
		"status":   "rendered",
		"job_id":   result.JobID,
		"segments": result.Segments,
		"assets":   result.Assets,
	}, nil
}

// decodeJob reads a render job from a Pub/Sub push. The message data is
// either a CloudEvent wrapping the job or the bare job JSON; events
// delivered without a Pub/Sub envelope carry the job directly.
func decodeJob(e cloudevents.Event) (*types.RenderJob, error) {
	raw := e.Data()

	var msg types.PubSubMessage
	if err := e.DataAs(&msg); err == nil && len(msg.Message.Data) > 0 {
		raw = msg.Message.Data

		var inner cloudevents.Event
		if err := json.Unmarshal(raw, &inner); err == nil && inner.SpecVersion() != "" {
			raw = inner.Data()
		}
	}

	var job types.RenderJob
	if err := json.Unmarshal(raw, &job); err != nil {
		return nil, fmt.Errorf("decode render job: %w", err)
	}
	return &job, nil
}
