package renderer

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"reflect"
	"testing"

	cloudevents "github.com/cloudevents/sdk-go/v2"

	shared "github.com/fitglue/bodymap/pkg"
	"github.com/fitglue/bodymap/pkg/bootstrap"
	"github.com/fitglue/bodymap/pkg/domain/body"
	"github.com/fitglue/bodymap/pkg/framework"
	"github.com/fitglue/bodymap/pkg/infrastructure/pubsub"
	"github.com/fitglue/bodymap/pkg/testing/mocks"
	"github.com/fitglue/bodymap/pkg/types"
)

func pubSubPush(t *testing.T, data []byte) cloudevents.Event {
	t.Helper()
	var msg types.PubSubMessage
	msg.Message.Data = data

	e := cloudevents.NewEvent()
	e.SetID("push-1")
	e.SetType("google.cloud.pubsub.topic.v1.messagePublished")
	e.SetSource("//pubsub")
	if err := e.SetData(cloudevents.ApplicationJSON, msg); err != nil {
		t.Fatalf("set data: %v", err)
	}
	return e
}

func TestDecodeJob(t *testing.T) {
	job := types.RenderJob{JobID: "job-1", PresetID: "legs", UserID: "user-1"}
	bare, _ := json.Marshal(job)

	wrapped, err := pubsub.NewCloudEvent(shared.EventSource, "com.fitglue.bodymap.render", job)
	if err != nil {
		t.Fatalf("NewCloudEvent: %v", err)
	}
	wrappedBytes, _ := json.Marshal(wrapped)

	direct := cloudevents.NewEvent()
	direct.SetType("com.fitglue.bodymap.render")
	direct.SetSource("test")
	_ = direct.SetData(cloudevents.ApplicationJSON, job)

	tests := []struct {
		name  string
		event cloudevents.Event
	}{
		{"Pub/Sub with bare job", pubSubPush(t, bare)},
		{"Pub/Sub with nested CloudEvent", pubSubPush(t, wrappedBytes)},
		{"Direct CloudEvent", direct},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeJob(tt.event)
			if err != nil {
				t.Fatalf("decodeJob: %v", err)
			}
			if !reflect.DeepEqual(*got, job) {
				t.Errorf("decodeJob = %+v, want %+v", *got, job)
			}
		})
	}
}

func TestDecodeJob_Invalid(t *testing.T) {
	if _, err := decodeJob(pubSubPush(t, []byte("not json"))); err == nil {
		t.Error("Expected error for invalid payload")
	}
}

func TestRenderHandler(t *testing.T) {
	store := &mocks.MockBlobStore{}
	pub := &mocks.MockPublisher{}
	presets := &mocks.MockPresetStore{}
	_ = presets.SetPreset(context.Background(), &types.Preset{
		ID:     "legs",
		UserID: "user-1",
		Request: types.RenderRequest{
			Data: []body.Override{{Slug: body.SlugQuadriceps, Intensity: 1}},
		},
	})

	fwCtx := &framework.FrameworkContext{
		Service: &bootstrap.Service{
			Presets: presets,
			Store:   store,
			Pub:     pub,
			Config:  &bootstrap.Config{AssetsBucket: "assets"},
		},
		Logger:      slog.New(slog.NewJSONHandler(os.Stdout, nil)),
		ExecutionID: "exec-1",
	}

	job, _ := json.Marshal(types.RenderJob{UserID: "user-1", PresetID: "legs", Formats: []string{"svg", "png"}})
	out, err := renderHandler(context.Background(), pubSubPush(t, job), fwCtx)
	if err != nil {
		t.Fatalf("renderHandler: %v", err)
	}

	res := out.(map[string]interface{})
	if res["job_id"] != "exec-1" {
		t.Errorf("Expected job id to default to execution id, got %v", res["job_id"])
	}
	if _, ok := store.Objects["assets/exec-1/bodymap-male-front.png"]; !ok {
		t.Errorf("PNG asset not stored, objects: %d", len(store.Objects))
	}
	if len(pub.Published) != 1 || pub.Published[0].Event.Type() != shared.EventTypeRendered {
		t.Errorf("Expected one rendered event, got %d", len(pub.Published))
	}
}

func TestRenderHandler_MissingPreset(t *testing.T) {
	fwCtx := &framework.FrameworkContext{
		Service: &bootstrap.Service{
			Presets: &mocks.MockPresetStore{},
			Store:   &mocks.MockBlobStore{},
			Pub:     &mocks.MockPublisher{},
			Config:  &bootstrap.Config{},
		},
		Logger: slog.Default(),
	}

	job, _ := json.Marshal(types.RenderJob{UserID: "user-1", PresetID: "nope"})
	if _, err := renderHandler(context.Background(), pubSubPush(t, job), fwCtx); err == nil {
		t.Error("Expected error for missing preset")
	}
}
