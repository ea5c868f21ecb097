package framework

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/cloudevents/sdk-go/v2/event"
	"github.com/google/uuid"

	"github.com/fitglue/bodymap/pkg/bootstrap"
	"github.com/fitglue/bodymap/pkg/infrastructure/sentry"
	"github.com/fitglue/bodymap/pkg/types"
)

// FrameworkContext contains dependencies injected by the framework
type FrameworkContext struct {
	Service     *bootstrap.Service
	Logger      *slog.Logger
	ExecutionID string
}

// HandlerFunc is the signature for a cloud function handler
type HandlerFunc func(ctx context.Context, e event.Event, fwCtx *FrameworkContext) (interface{}, error)

// WrapCloudEvent wraps a handler with execution logging and error capture.
// Handles both HTTP and Pub/Sub triggers.
func WrapCloudEvent(serviceName string, svc *bootstrap.Service, handler HandlerFunc) func(context.Context, event.Event) error {
	return func(ctx context.Context, e event.Event) error {
		userID, testRunID := extractEventMetadata(e)

		triggerType := "pubsub"
		if e.Type() == "google.cloud.functions.http" {
			triggerType = "http"
		}

		execID := uuid.NewString()

		opts := bootstrap.GetSlogHandlerOptions(bootstrap.ParseLevel(os.Getenv("LOG_LEVEL")))
		logger := slog.New(&bootstrap.ComponentHandler{Handler: slog.NewJSONHandler(os.Stdout, opts)}).
			With("service", serviceName, "execution_id", execID, "trigger", triggerType)
		if userID != "" {
			logger = logger.With("user_id", userID)
		}
		if testRunID != "" {
			logger = logger.With("test_run_id", testRunID)
		}

		defer sentry.RecoverAndCapture(logger)

		logger.Info("Function started")
		start := time.Now()

		fwCtx := &FrameworkContext{
			Service:     svc,
			Logger:      logger,
			ExecutionID: execID,
		}

		outputs, handlerErr := handler(ctx, e, fwCtx)
		if handlerErr != nil {
			logger.Error("Function failed", "error", handlerErr, "duration_ms", time.Since(start).Milliseconds())
			sentry.CaptureException(handlerErr, map[string]string{
				"service":      serviceName,
				"execution_id": execID,
				"user_id":      userID,
			}, logger)
			return handlerErr
		}

		logger.Info("Function completed successfully",
			"status", outputStatus(outputs),
			"duration_ms", time.Since(start).Milliseconds())
		return nil
	}
}

// outputStatus reads an optional "status" field from handler outputs,
// defaulting to "success".
func outputStatus(outputs interface{}) string {
	if m, ok := outputs.(map[string]interface{}); ok {
		if s, ok := m["status"].(string); ok && s != "" {
			return s
		}
	}
	return "success"
}

// extractEventMetadata extracts user_id and test_run_id from the event.
// Handles both Pub/Sub messages and HTTP requests.
func extractEventMetadata(e event.Event) (userID string, testRunID string) {
	var msg types.PubSubMessage
	if err := e.DataAs(&msg); err == nil {
		var payload map[string]interface{}
		if err := json.Unmarshal(msg.Message.Data, &payload); err == nil {
			if uid, ok := payload["user_id"].(string); ok {
				userID = uid
			}
			if uid, ok := payload["userId"].(string); ok {
				userID = uid
			}
		}

		if msg.Message.Attributes != nil {
			if trid, ok := msg.Message.Attributes["test_run_id"]; ok {
				testRunID = trid
			}
		}
	}

	// HTTP headers are mapped to extensions by the Functions Framework
	if testRunID == "" {
		extensions := e.Extensions()
		if trid, ok := extensions["test_run_id"].(string); ok {
			testRunID = trid
		}
		if trid, ok := extensions["testrunid"].(string); ok {
			testRunID = trid
		}
	}

	return userID, testRunID
}
