package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloudevents/sdk-go/v2/event"

	shared "github.com/fitglue/bodymap/pkg"
	"github.com/fitglue/bodymap/pkg/types"
)

// --- Mock Preset Store ---

// MockPresetStore keeps presets in memory unless a Func override is set.
type MockPresetStore struct {
	GetPresetFunc    func(ctx context.Context, userID, presetID string) (*types.Preset, error)
	SetPresetFunc    func(ctx context.Context, preset *types.Preset) error
	ListPresetsFunc  func(ctx context.Context, userID string) ([]*types.Preset, error)
	DeletePresetFunc func(ctx context.Context, userID, presetID string) error

	mu      sync.Mutex
	presets map[string]*types.Preset
}

func presetKey(userID, presetID string) string {
	return userID + "/" + presetID
}

func (m *MockPresetStore) GetPreset(ctx context.Context, userID, presetID string) (*types.Preset, error) {
	if m.GetPresetFunc != nil {
		return m.GetPresetFunc(ctx, userID, presetID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.presets[presetKey(userID, presetID)]
	if !ok {
		return nil, fmt.Errorf("preset %s: %w", presetID, shared.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (m *MockPresetStore) SetPreset(ctx context.Context, preset *types.Preset) error {
	if m.SetPresetFunc != nil {
		return m.SetPresetFunc(ctx, preset)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.presets == nil {
		m.presets = map[string]*types.Preset{}
	}
	cp := *preset
	m.presets[presetKey(preset.UserID, preset.ID)] = &cp
	return nil
}

func (m *MockPresetStore) ListPresets(ctx context.Context, userID string) ([]*types.Preset, error) {
	if m.ListPresetsFunc != nil {
		return m.ListPresetsFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*types.Preset
	for _, p := range m.presets {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockPresetStore) DeletePreset(ctx context.Context, userID, presetID string) error {
	if m.DeletePresetFunc != nil {
		return m.DeletePresetFunc(ctx, userID, presetID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := presetKey(userID, presetID)
	if _, ok := m.presets[key]; !ok {
		return fmt.Errorf("preset %s: %w", presetID, shared.ErrNotFound)
	}
	delete(m.presets, key)
	return nil
}

// --- Mock Publisher ---

// PublishedEvent records one PublishCloudEvent call.
type PublishedEvent struct {
	Topic string
	Event event.Event
}

type MockPublisher struct {
	PublishCloudEventFunc func(ctx context.Context, topic string, e event.Event) (string, error)

	mu        sync.Mutex
	Published []PublishedEvent
}

func (m *MockPublisher) PublishCloudEvent(ctx context.Context, topic string, e event.Event) (string, error) {
	m.mu.Lock()
	m.Published = append(m.Published, PublishedEvent{Topic: topic, Event: e})
	m.mu.Unlock()
	if m.PublishCloudEventFunc != nil {
		return m.PublishCloudEventFunc(ctx, topic, e)
	}
	return "msg-id", nil
}

// --- Mock Storage ---

// MockBlobStore records writes in Objects, keyed by "bucket/object".
type MockBlobStore struct {
	WriteFunc func(ctx context.Context, bucket, object string, data []byte) error
	ReadFunc  func(ctx context.Context, bucket, object string) ([]byte, error)

	mu      sync.Mutex
	Objects map[string][]byte
}

func (m *MockBlobStore) Write(ctx context.Context, bucket, object string, data []byte) error {
	if m.WriteFunc != nil {
		return m.WriteFunc(ctx, bucket, object, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Objects == nil {
		m.Objects = map[string][]byte{}
	}
	m.Objects[bucket+"/"+object] = append([]byte(nil), data...)
	return nil
}

func (m *MockBlobStore) Read(ctx context.Context, bucket, object string) ([]byte, error) {
	if m.ReadFunc != nil {
		return m.ReadFunc(ctx, bucket, object)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.Objects[bucket+"/"+object]
	if !ok {
		return nil, fmt.Errorf("gs://%s/%s: %w", bucket, object, shared.ErrNotFound)
	}
	return data, nil
}
