package bodymap

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shared "github.com/fitglue/bodymap/pkg"
	"github.com/fitglue/bodymap/pkg/domain/body"
	"github.com/fitglue/bodymap/pkg/domain/file_generators"
	"github.com/fitglue/bodymap/pkg/testing/mocks"
	"github.com/fitglue/bodymap/pkg/types"
)

func TestSavePreset(t *testing.T) {
	store := &mocks.MockPresetStore{}
	ctx := context.Background()

	preset, err := SavePreset(ctx, store, "user-1", "legs", "", types.RenderRequest{Side: "back"})
	require.NoError(t, err)
	assert.Equal(t, "legs", preset.Name)

	got, err := store.GetPreset(ctx, "user-1", "legs")
	require.NoError(t, err)
	assert.Equal(t, "back", got.Request.Side)

	tests := []struct {
		name     string
		userID   string
		presetID string
		req      types.RenderRequest
	}{
		{name: "Missing user", presetID: "a"},
		{name: "Missing preset id", userID: "u"},
		{name: "Slash in id", userID: "u", presetID: "a/b"},
		{name: "Invalid request", userID: "u", presetID: "a", req: types.RenderRequest{Scale: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SavePreset(ctx, store, tt.userID, tt.presetID, "", tt.req)
			assert.ErrorIs(t, err, types.ErrInvalidRequest)
		})
	}
}

func TestResolveJob(t *testing.T) {
	ctx := context.Background()
	store := &mocks.MockPresetStore{}
	require.NoError(t, store.SetPreset(ctx, &types.Preset{
		ID: "arms", UserID: "user-1", Request: types.RenderRequest{Gender: "female"},
	}))

	inline := &types.RenderRequest{Side: "back"}
	got, err := ResolveJob(ctx, store, &types.RenderJob{Request: inline, PresetID: "arms", UserID: "user-1"})
	require.NoError(t, err)
	assert.Same(t, inline, got)

	got, err = ResolveJob(ctx, store, &types.RenderJob{PresetID: "arms", UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, "female", got.Gender)

	_, err = ResolveJob(ctx, store, &types.RenderJob{PresetID: "missing", UserID: "user-1"})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = ResolveJob(ctx, store, &types.RenderJob{PresetID: "arms"})
	assert.ErrorIs(t, err, types.ErrInvalidRequest)

	_, err = ResolveJob(ctx, store, &types.RenderJob{})
	assert.ErrorIs(t, err, types.ErrInvalidRequest)
}

func TestParseFormats(t *testing.T) {
	got, err := ParseFormats(nil)
	require.NoError(t, err)
	assert.Equal(t, []file_generators.Format{file_generators.FormatSVG}, got)

	got, err = ParseFormats([]string{"WEBP", "svg", "webp"})
	require.NoError(t, err)
	assert.Equal(t, []file_generators.Format{file_generators.FormatWebP, file_generators.FormatSVG}, got)

	_, err = ParseFormats([]string{"gif"})
	assert.ErrorIs(t, err, types.ErrInvalidRequest)
}

func TestRunJob(t *testing.T) {
	r, store, pub := newTestRenderer()

	result, err := r.RunJob(context.Background(), &mocks.MockPresetStore{}, &types.RenderJob{
		UserID:  "user-1",
		Request: &types.RenderRequest{Data: []body.Override{{Slug: body.SlugAbs, Color: "#ff0000"}}},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.JobID)
	assert.Equal(t, "user-1", result.UserID)
	require.Contains(t, result.Assets, "svg")
	assert.Len(t, store.Objects, 1)
	assert.Len(t, pub.Published, 1)
}

func TestEnqueueJob(t *testing.T) {
	r, _, pub := newTestRenderer()

	queued, err := r.EnqueueJob(context.Background(), &types.RenderJob{
		UserID: "user-1", PresetID: "arms", Formats: []string{"png"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, queued.JobID)

	require.Len(t, pub.Published, 1)
	published := pub.Published[0]
	assert.Equal(t, shared.TopicRenderJobs, published.Topic)
	assert.Equal(t, shared.EventTypeRenderJob, published.Event.Type())
	assert.Equal(t, queued.JobID, published.Event.Subject())

	var job types.RenderJob
	require.NoError(t, json.Unmarshal(published.Event.Data(), &job))
	assert.Equal(t, *queued, job)
}

func TestEnqueueJob_Invalid(t *testing.T) {
	tests := []struct {
		name string
		job  types.RenderJob
	}{
		{name: "Empty job"},
		{name: "Preset without user", job: types.RenderJob{PresetID: "arms"}},
		{name: "Invalid inline request", job: types.RenderJob{Request: &types.RenderRequest{Scale: 1000}}},
		{name: "Unknown format", job: types.RenderJob{Request: &types.RenderRequest{}, Formats: []string{"gif"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, pub := newTestRenderer()
			_, err := r.EnqueueJob(context.Background(), &tt.job)
			assert.ErrorIs(t, err, types.ErrInvalidRequest)
			assert.Empty(t, pub.Published)
		})
	}
}
