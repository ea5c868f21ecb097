package shared

import (
	"context"
	"errors"

	"github.com/cloudevents/sdk-go/v2/event"

	"github.com/fitglue/bodymap/pkg/types"
)

var (
	// ErrNotFound is returned by stores when a document or object does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a request is valid but cannot be applied
	// to the current state.
	ErrConflict = errors.New("conflict")
)

// --- Persistence Interfaces ---

type PresetStore interface {
	GetPreset(ctx context.Context, userID, presetID string) (*types.Preset, error)
	SetPreset(ctx context.Context, preset *types.Preset) error
	ListPresets(ctx context.Context, userID string) ([]*types.Preset, error)
	DeletePreset(ctx context.Context, userID, presetID string) error
}

// --- Messaging Interfaces ---

type Publisher interface {
	PublishCloudEvent(ctx context.Context, topic string, e event.Event) (string, error)
}

// --- Storage Interfaces ---

type BlobStore interface {
	Write(ctx context.Context, bucket, object string, data []byte) error
	Read(ctx context.Context, bucket, object string) ([]byte, error)
}
