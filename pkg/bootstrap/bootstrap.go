package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/pubsub"

	shared "github.com/fitglue/bodymap/pkg"
	"github.com/fitglue/bodymap/pkg/assets"
	"github.com/fitglue/bodymap/pkg/infrastructure/database"
	infrapubsub "github.com/fitglue/bodymap/pkg/infrastructure/pubsub"
	infrastorage "github.com/fitglue/bodymap/pkg/infrastructure/storage"
)

// Config holds standard configuration for all services
type Config struct {
	ProjectID       string
	EnablePublish   bool
	AssetsBucket    string
	AssetsBaseURL   string
	CatalogueBucket string
	StorageEndpoint string
	Port            string
}

// Service holds initialized dependencies
type Service struct {
	Presets   shared.PresetStore
	Store     shared.BlobStore
	Pub       shared.Publisher
	Catalogue *assets.Catalogue
	Config    *Config
}

// LoadConfig reads configuration from environment variables
func LoadConfig() *Config {
	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		projectID = shared.ProjectID // Fallback
	}

	bucket := os.Getenv("BODYMAP_ASSETS_BUCKET")
	if bucket == "" {
		bucket = shared.DefaultAssetsBucket
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		ProjectID:       projectID,
		EnablePublish:   os.Getenv("ENABLE_PUBLISH") == "true",
		AssetsBucket:    bucket,
		AssetsBaseURL:   strings.TrimSuffix(os.Getenv("ASSETS_BASE_URL"), "/"),
		CatalogueBucket: os.Getenv("CATALOGUE_BUCKET"),
		StorageEndpoint: os.Getenv("STORAGE_ENDPOINT"),
		Port:            port,
	}
}

// GetSlogHandlerOptions returns standard handler options for GCP
func GetSlogHandlerOptions(level slog.Level) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Map standard keys to Cloud Logging keys
			if a.Key == slog.MessageKey {
				return slog.Attr{Key: "message", Value: a.Value}
			}
			if a.Key == slog.LevelKey {
				return slog.Attr{Key: "severity", Value: a.Value}
			}
			return a
		},
	}
}

// ParseLevel maps a LOG_LEVEL value to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// ComponentHandler wraps a slog.Handler to prepend [component] to the message
type ComponentHandler struct {
	slog.Handler
	component string
}

// WithGroup implements slog.Handler
func (h *ComponentHandler) WithGroup(name string) slog.Handler {
	return &ComponentHandler{
		Handler:   h.Handler.WithGroup(name),
		component: h.component,
	}
}

// WithAttrs implements slog.Handler
func (h *ComponentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	comp := h.component
	for _, a := range attrs {
		if a.Key == "component" {
			comp = a.Value.String()
		}
	}
	return &ComponentHandler{
		Handler:   h.Handler.WithAttrs(attrs),
		component: comp,
	}
}

// Handle implements slog.Handler
func (h *ComponentHandler) Handle(ctx context.Context, r slog.Record) error {
	comp := h.component

	// A component attribute on the record overrides the handler's
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "component" {
			comp = a.Value.String()
			return false
		}
		return true
	})

	if comp != "" {
		// The component attribute stays in the structured payload as well
		prefixed := slog.NewRecord(r.Time, r.Level, fmt.Sprintf("[%s] %s", comp, r.Message), r.PC)
		r.Attrs(func(a slog.Attr) bool {
			prefixed.AddAttrs(a)
			return true
		})
		r = prefixed
	}

	return h.Handler.Handle(ctx, r)
}

// InitLogger configures structured logging with Cloud Logging compatible keys
func InitLogger() {
	slog.SetDefault(slog.New(&ComponentHandler{
		Handler: slog.NewJSONHandler(os.Stdout, GetSlogHandlerOptions(ParseLevel(os.Getenv("LOG_LEVEL")))),
	}))
}

// NewLogger creates a configured logger instance
func NewLogger(serviceName string) *slog.Logger {
	opts := GetSlogHandlerOptions(ParseLevel(os.Getenv("LOG_LEVEL")))
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(&ComponentHandler{Handler: handler}).With("service", serviceName)
}

// NewService initializes all standard dependencies
func NewService(ctx context.Context) (*Service, error) {
	InitLogger()
	cfg := LoadConfig()

	slog.Info("Initializing service", "project_id", cfg.ProjectID, "assets_bucket", cfg.AssetsBucket)

	// Firestore
	fsClient, err := firestore.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		slog.Error("Firestore init failed", "error", err)
		return nil, fmt.Errorf("firestore init: %w", err)
	}

	// Pub/Sub
	var pubAdapter shared.Publisher
	if cfg.EnablePublish {
		psClient, err := pubsub.NewClient(ctx, cfg.ProjectID)
		if err != nil {
			slog.Error("PubSub init failed", "error", err)
			return nil, fmt.Errorf("pubsub init: %w", err)
		}
		pubAdapter = &infrapubsub.PubSubAdapter{Client: psClient}
		slog.Info("Pub/Sub: REAL (ENABLE_PUBLISH=true)")
	} else {
		pubAdapter = &infrapubsub.LogPublisher{}
		slog.Info("Pub/Sub: MOCK (LogPublisher)")
	}

	// Storage
	store, err := infrastorage.NewStorageAdapter(ctx, cfg.StorageEndpoint)
	if err != nil {
		slog.Error("Storage init failed", "error", err)
		return nil, fmt.Errorf("storage init: %w", err)
	}

	catalogue, err := LoadCatalogue(ctx, store, cfg.CatalogueBucket)
	if err != nil {
		slog.Error("Catalogue load failed", "error", err)
		return nil, err
	}

	return &Service{
		Presets:   database.NewFirestoreAdapter(fsClient),
		Pub:       pubAdapter,
		Store:     store,
		Catalogue: catalogue,
		Config:    cfg,
	}, nil
}

// LoadCatalogue reads the outline catalogue from bucket, or falls back to
// the embedded one when no bucket is configured.
func LoadCatalogue(ctx context.Context, store shared.BlobStore, bucket string) (*assets.Catalogue, error) {
	if bucket == "" {
		cat, err := assets.Embedded()
		if err != nil {
			return nil, fmt.Errorf("embedded catalogue: %w", err)
		}
		return cat, nil
	}
	cat, err := assets.Load(ctx, store, bucket)
	if err != nil {
		return nil, fmt.Errorf("catalogue from gs://%s: %w", bucket, err)
	}
	slog.Info("Catalogue loaded from bucket", "bucket", bucket)
	return cat, nil
}
