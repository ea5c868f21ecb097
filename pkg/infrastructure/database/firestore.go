package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	shared "github.com/fitglue/bodymap/pkg"
	storage "github.com/fitglue/bodymap/pkg/storage/firestore"
	"github.com/fitglue/bodymap/pkg/types"
)

// FirestoreAdapter implements shared.PresetStore on top of the typed
// storage client.
type FirestoreAdapter struct {
	storage *storage.Client
	now     func() time.Time
}

func NewFirestoreAdapter(client *firestore.Client) *FirestoreAdapter {
	return &FirestoreAdapter{
		storage: storage.NewClient(client),
		now:     time.Now,
	}
}

func (a *FirestoreAdapter) GetPreset(ctx context.Context, userID, presetID string) (*types.Preset, error) {
	preset, err := a.storage.Presets(userID).Doc(presetID).Get(ctx)
	if err != nil {
		return nil, mapError(err, "preset %s/%s", userID, presetID)
	}
	preset.UserID = userID
	return preset, nil
}

// SetPreset stores a preset, keeping the original creation time when the
// preset already exists.
func (a *FirestoreAdapter) SetPreset(ctx context.Context, preset *types.Preset) error {
	if preset.UserID == "" || preset.ID == "" {
		return fmt.Errorf("preset requires user and id")
	}

	now := a.now().UTC()
	preset.UpdatedAt = now
	if preset.CreatedAt.IsZero() {
		existing, err := a.GetPreset(ctx, preset.UserID, preset.ID)
		switch {
		case err == nil:
			preset.CreatedAt = existing.CreatedAt
		case IsNotFound(err):
			preset.CreatedAt = now
		default:
			return err
		}
	}

	if err := a.storage.Presets(preset.UserID).Doc(preset.ID).Set(ctx, preset); err != nil {
		return fmt.Errorf("set preset %s/%s: %w", preset.UserID, preset.ID, err)
	}
	return nil
}

func (a *FirestoreAdapter) ListPresets(ctx context.Context, userID string) ([]*types.Preset, error) {
	presets, err := a.storage.Presets(userID).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list presets for %s: %w", userID, err)
	}
	return presets, nil
}

func (a *FirestoreAdapter) DeletePreset(ctx context.Context, userID, presetID string) error {
	if err := a.storage.Presets(userID).Doc(presetID).Delete(ctx); err != nil {
		return mapError(err, "preset %s/%s", userID, presetID)
	}
	return nil
}

// mapError converts gRPC NotFound into shared.ErrNotFound.
func mapError(err error, format string, args ...interface{}) error {
	what := fmt.Sprintf(format, args...)
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("%s: %w", what, shared.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}

// IsNotFound reports whether err means the document does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, shared.ErrNotFound) || status.Code(err) == codes.NotFound
}
