package events

const (
	// SourceBackend is the event source stamped on published entries
	SourceBackend = "insight.backend"
)
