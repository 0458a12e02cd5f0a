package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)

func TestCompute_EmptyInputs(t *testing.T) {
	// Act
	snapshot := Compute(nil, nil, nil, testNow, 0, 0)

	// Assert
	assert.Equal(t, 0, snapshot.Totals.ContentCount)
	assert.Equal(t, 0, snapshot.Totals.CommentCount)
	assert.Equal(t, 0, snapshot.Totals.ReactionCount)
	assert.Empty(t, snapshot.Totals.ContentCountByKind)
	assert.Empty(t, snapshot.TopContent)

	// The series is fully zeroed but still has the default window length
	require.Len(t, snapshot.DailySeries, DefaultWindowDays)
	for _, bucket := range snapshot.DailySeries {
		assert.Equal(t, 0, bucket.Total)
	}
}

func TestCompute_Totals(t *testing.T) {
	// Arrange
	items := []ContentItem{
		{ID: "a", Title: "First article", Kind: "article"},
		{ID: "b", Title: "Second article", Kind: "article"},
		{ID: "p", Title: "A paper", Kind: "paper"},
	}
	comments := []Comment{
		{ID: "c1", ParentID: "a", CreatedAt: "2025-03-15T10:00:00Z"},
		{ID: "c2", ParentID: "b", CreatedAt: "2025-03-14T10:00:00Z"},
	}
	reactions := []Reaction{
		{ID: "r1", ParentID: "a", Type: "like", CreatedAt: "2025-03-15T11:00:00Z"},
	}

	// Act
	snapshot := Compute(items, comments, reactions, testNow, 7, 5)

	// Assert
	assert.Equal(t, 3, snapshot.Totals.ContentCount)
	assert.Equal(t, 2, snapshot.Totals.ContentCountByKind["article"])
	assert.Equal(t, 1, snapshot.Totals.ContentCountByKind["paper"])
	assert.Equal(t, 2, snapshot.Totals.CommentCount)
	assert.Equal(t, 1, snapshot.Totals.ReactionCount)
}

func TestCompute_Deterministic(t *testing.T) {
	// Arrange
	items := []ContentItem{{ID: "a", Title: "Article", Kind: "article"}}
	comments := []Comment{{ID: "c1", ParentID: "a", CreatedAt: "2025-03-15T10:00:00Z"}}
	reactions := []Reaction{{ID: "r1", ParentID: "a", Type: "like", CreatedAt: "2025-03-15T11:00:00Z"}}

	// Act
	first := Compute(items, comments, reactions, testNow, 7, 5)
	second := Compute(items, comments, reactions, testNow, 7, 5)

	// Assert
	assert.Equal(t, first, second)
}

func TestComputeDailySeries_WindowShape(t *testing.T) {
	// Act
	snapshot := Compute(nil, nil, nil, testNow, 14, 5)

	// Assert: 14 consecutive calendar days, oldest first, ending today
	require.Len(t, snapshot.DailySeries, 14)
	assert.Equal(t, "2025-03-02", snapshot.DailySeries[0].Date)
	assert.Equal(t, "2025-03-15", snapshot.DailySeries[13].Date)
	for i := 1; i < len(snapshot.DailySeries); i++ {
		prev, err := time.Parse("2006-01-02", snapshot.DailySeries[i-1].Date)
		require.NoError(t, err)
		cur, err := time.Parse("2006-01-02", snapshot.DailySeries[i].Date)
		require.NoError(t, err)
		assert.Equal(t, 24*time.Hour, cur.Sub(prev))
	}
}

func TestComputeDailySeries_BucketsByDatePrefix(t *testing.T) {
	// Arrange: timestamps on the window edges and outside it
	comments := []Comment{
		{ID: "c1", ParentID: "a", CreatedAt: "2025-03-15T23:59:59Z"}, // today
		{ID: "c2", ParentID: "a", CreatedAt: "2025-03-09T00:00:00Z"}, // oldest day in a 7-day window
		{ID: "c3", ParentID: "a", CreatedAt: "2025-03-08T23:59:59Z"}, // just before the window
		{ID: "c4", ParentID: "a", CreatedAt: "2025-03-09"},           // date-only form
	}
	reactions := []Reaction{
		{ID: "r1", ParentID: "a", Type: "like", CreatedAt: "2025-03-15T01:00:00Z"},
		{ID: "r2", ParentID: "a", Type: "like", CreatedAt: "2025-04-01T00:00:00Z"}, // future, out of window
	}

	// Act
	snapshot := Compute(nil, comments, reactions, testNow, 7, 5)

	// Assert
	require.Len(t, snapshot.DailySeries, 7)
	oldest := snapshot.DailySeries[0]
	today := snapshot.DailySeries[6]

	assert.Equal(t, "2025-03-09", oldest.Date)
	assert.Equal(t, 2, oldest.CommentCount)
	assert.Equal(t, 2, oldest.Total)

	assert.Equal(t, "2025-03-15", today.Date)
	assert.Equal(t, 1, today.CommentCount)
	assert.Equal(t, 1, today.ReactionCount)
	assert.Equal(t, 2, today.Total)

	// Out-of-window records count toward totals but no bucket
	assert.Equal(t, 4, snapshot.Totals.CommentCount)
	assert.Equal(t, 2, snapshot.Totals.ReactionCount)
	windowTotal := 0
	for _, bucket := range snapshot.DailySeries {
		windowTotal += bucket.Total
	}
	assert.Equal(t, 4, windowTotal)
}

func TestComputeDailySeries_MalformedTimestampsSkipped(t *testing.T) {
	// Arrange
	comments := []Comment{
		{ID: "c1", ParentID: "a", CreatedAt: "not-a-date"},
		{ID: "c2", ParentID: "a", CreatedAt: ""},
		{ID: "c3", ParentID: "a", CreatedAt: "2025-03-15T10:00:00Z"},
	}

	// Act
	snapshot := Compute(nil, comments, nil, testNow, 7, 5)

	// Assert: the bad records still count, they just land in no bucket
	assert.Equal(t, 3, snapshot.Totals.CommentCount)
	assert.Equal(t, 1, snapshot.DailySeries[6].CommentCount)
	windowTotal := 0
	for _, bucket := range snapshot.DailySeries {
		windowTotal += bucket.Total
	}
	assert.Equal(t, 1, windowTotal)
}

func TestComputeTopContent_RankingAndTruncation(t *testing.T) {
	// Arrange
	items := []ContentItem{
		{ID: "a", Title: "Quiet", Kind: "article"},
		{ID: "b", Title: "Busy", Kind: "article"},
		{ID: "c", Title: "Middling", Kind: "paper"},
	}
	comments := []Comment{
		{ID: "c1", ParentID: "b", CreatedAt: "2025-03-15T10:00:00Z"},
		{ID: "c2", ParentID: "b", CreatedAt: "2025-03-15T10:01:00Z"},
		{ID: "c3", ParentID: "c", CreatedAt: "2025-03-15T10:02:00Z"},
	}
	reactions := []Reaction{
		{ID: "r1", ParentID: "b", Type: "like", CreatedAt: "2025-03-15T10:00:00Z"},
	}

	// Act
	snapshot := Compute(items, comments, reactions, testNow, 7, 2)

	// Assert
	require.Len(t, snapshot.TopContent, 2)
	assert.Equal(t, "b", snapshot.TopContent[0].ID)
	assert.Equal(t, 3, snapshot.TopContent[0].EngagementScore)
	assert.Equal(t, 2, snapshot.TopContent[0].CommentCount)
	assert.Equal(t, 1, snapshot.TopContent[0].ReactionCount)
	assert.Equal(t, "c", snapshot.TopContent[1].ID)
	assert.Equal(t, 1, snapshot.TopContent[1].EngagementScore)
}

func TestComputeTopContent_StableTiesAndZeroScorePadding(t *testing.T) {
	// Arrange: nothing has any engagement
	items := []ContentItem{
		{ID: "a", Title: "First", Kind: "article"},
		{ID: "b", Title: "Second", Kind: "article"},
		{ID: "c", Title: "Third", Kind: "paper"},
	}

	// Act
	snapshot := Compute(items, nil, nil, testNow, 7, 5)

	// Assert: zero-score items are padded in, input order preserved
	require.Len(t, snapshot.TopContent, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{
		snapshot.TopContent[0].ID,
		snapshot.TopContent[1].ID,
		snapshot.TopContent[2].ID,
	})
	for _, row := range snapshot.TopContent {
		assert.Equal(t, 0, row.EngagementScore)
	}
}

func TestComputeTopContent_OrphanedInteractions(t *testing.T) {
	// Arrange: interactions pointing at a deleted item
	items := []ContentItem{{ID: "a", Title: "Survivor", Kind: "article"}}
	comments := []Comment{
		{ID: "c1", ParentID: "gone", CreatedAt: "2025-03-15T10:00:00Z"},
		{ID: "c2", ParentID: "a", CreatedAt: "2025-03-15T10:01:00Z"},
	}

	// Act
	snapshot := Compute(items, comments, nil, testNow, 7, 5)

	// Assert: orphans count toward totals and the series, not the ranking
	assert.Equal(t, 2, snapshot.Totals.CommentCount)
	assert.Equal(t, 2, snapshot.DailySeries[6].CommentCount)
	require.Len(t, snapshot.TopContent, 1)
	assert.Equal(t, 1, snapshot.TopContent[0].EngagementScore)
}

func TestCompute_DefaultsApplied(t *testing.T) {
	// Arrange
	items := make([]ContentItem, 10)
	for i := range items {
		items[i] = ContentItem{ID: string(rune('a' + i)), Kind: "article"}
	}

	// Act
	snapshot := Compute(items, nil, nil, testNow, -3, -1)

	// Assert
	assert.Len(t, snapshot.DailySeries, DefaultWindowDays)
	assert.Len(t, snapshot.TopContent, DefaultTopN)
}

func TestCompute_ClampsOversizedWindow(t *testing.T) {
	// Act
	snapshot := Compute(nil, nil, nil, testNow, 100000000, 100000000)

	// Assert: the series never exceeds the ceiling
	assert.Len(t, snapshot.DailySeries, MaxWindowDays)
}

func TestNormalizeParams(t *testing.T) {
	tests := []struct {
		name           string
		windowDays     int
		topN           int
		wantWindowDays int
		wantTopN       int
	}{
		{"defaults on non-positive", 0, -1, DefaultWindowDays, DefaultTopN},
		{"explicit values pass through", 30, 10, 30, 10},
		{"oversized values clamp", MaxWindowDays + 1, MaxTopN + 1, MaxWindowDays, MaxTopN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			windowDays, topN := NormalizeParams(tt.windowDays, tt.topN)
			assert.Equal(t, tt.wantWindowDays, windowDays)
			assert.Equal(t, tt.wantTopN, topN)
		})
	}
}
