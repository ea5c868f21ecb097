package shared

const (
	ProjectID = "fitglue-project" // Can be overridden by env var in main if needed

	TopicRenderJobs    = "topic-bodymap-render-jobs"
	TopicBodyMapEvents = "topic-bodymap-events"

	EventSource            = "/fitglue/bodymap"
	EventTypeRenderJob     = "com.fitglue.bodymap.render.requested"
	EventTypeRendered      = "com.fitglue.bodymap.rendered"
	EventTypeRegionPressed = "com.fitglue.bodymap.region.pressed"

	CollectionUsers   = "users"
	CollectionPresets = "bodymap_presets"

	// DefaultAssetsBucket is used when BODYMAP_ASSETS_BUCKET is unset (local development).
	DefaultAssetsBucket = "fitglue-server-dev-bodymap-assets"
)
