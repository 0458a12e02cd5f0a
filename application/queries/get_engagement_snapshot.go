package queries

import "insight-backend/domain/analytics"

// GetEngagementSnapshotQuery represents a query for the engagement
// dashboard: totals, a trailing daily activity series and the
// highest-engagement content items.
type GetEngagementSnapshotQuery struct {
	// WindowDays is the trailing series length; non-positive values fall
	// back to the aggregator default.
	WindowDays int

	// TopN bounds the content ranking; non-positive values fall back to
	// the aggregator default.
	TopN int
}

// Validate validates the GetEngagementSnapshotQuery. Out-of-range window
// parameters are normalized downstream rather than rejected, so there is
// nothing to fail on.
func (q GetEngagementSnapshotQuery) Validate() error {
	return nil
}

// GetEngagementSnapshotResult wraps the computed snapshot together with
// the parameters that produced it
type GetEngagementSnapshotResult struct {
	Snapshot   analytics.Snapshot `json:"snapshot"`
	WindowDays int                `json:"windowDays"`
	TopN       int                `json:"topN"`
	ComputedAt string             `json:"computedAt"`
}
