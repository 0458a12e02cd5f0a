// Package analytics turns raw content and interaction collections into
// the engagement snapshot rendered on the admin dashboard. Every
// computation here is deterministic and side-effect free: inputs are
// passed by value, outputs are freshly constructed, and repeated calls
// with the same arguments produce identical snapshots. The package
// performs no I/O; callers materialize the collections first.
//
// No operation in this package returns an error. A malformed individual
// record is skipped for the computation it would have corrupted and
// nothing else: partial data must never blank the whole dashboard.
package analytics

import (
	"sort"
	"time"

	"insight-backend/pkg/utils"
)

// ContentItem is a published unit eligible for engagement scoring.
// Kind distinguishes articles from research papers.
type ContentItem struct {
	ID    string
	Title string
	Kind  string
}

// Comment is a comment record correlated to an item via ParentID.
// CreatedAt is an ISO-8601 date or date-time string.
type Comment struct {
	ID        string
	ParentID  string
	AuthorID  string
	CreatedAt string
}

// Reaction is a reaction record correlated to an item via ParentID.
type Reaction struct {
	ID        string
	ParentID  string
	UserID    string
	Type      string
	CreatedAt string
}

// Totals holds the plain counts per input collection
type Totals struct {
	ContentCount       int            `json:"contentCount"`
	ContentCountByKind map[string]int `json:"contentCountByKind"`
	CommentCount       int            `json:"commentCount"`
	ReactionCount      int            `json:"reactionCount"`
}

// DayBucket is one calendar day of the trailing window
type DayBucket struct {
	Date          string `json:"date"`
	CommentCount  int    `json:"commentCount"`
	ReactionCount int    `json:"reactionCount"`
	Total         int    `json:"total"`
}

// RankedItem is one row of the top-content ranking
type RankedItem struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Kind            string `json:"kind"`
	EngagementScore int    `json:"engagementScore"`
	CommentCount    int    `json:"commentCount"`
	ReactionCount   int    `json:"reactionCount"`
}

// Snapshot is the derived dashboard payload. It is recomputed from the
// source collections, never mutated in place; callers may cache the
// value freely.
type Snapshot struct {
	Totals      Totals       `json:"totals"`
	DailySeries []DayBucket  `json:"dailySeries"`
	TopContent  []RankedItem `json:"topContent"`
}

const (
	// DefaultWindowDays is the trailing window length when the caller
	// passes a non-positive value.
	DefaultWindowDays = 7

	// DefaultTopN bounds the top-content ranking when the caller passes
	// a non-positive value.
	DefaultTopN = 5

	// MaxWindowDays caps the trailing series length. A leap year is the
	// longest window the dashboard renders.
	MaxWindowDays = 366

	// MaxTopN caps the content ranking size.
	MaxTopN = 100
)

// NormalizeParams resolves window parameters to their effective values:
// non-positive inputs fall back to the defaults, oversized inputs are
// clamped to the maximums.
func NormalizeParams(windowDays, topN int) (int, int) {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	if windowDays > MaxWindowDays {
		windowDays = MaxWindowDays
	}
	if topN <= 0 {
		topN = DefaultTopN
	}
	if topN > MaxTopN {
		topN = MaxTopN
	}
	return windowDays, topN
}

// Compute aggregates the three collections into a snapshot. Empty inputs
// yield all-zero totals, a fully zeroed series and an empty ranking;
// they are never an error. Orphaned interactions (ParentID referencing a
// deleted item) still count toward totals and the series but contribute
// to no ranking row.
func Compute(items []ContentItem, comments []Comment, reactions []Reaction, now time.Time, windowDays, topN int) Snapshot {
	windowDays, topN = NormalizeParams(windowDays, topN)

	return Snapshot{
		Totals:      computeTotals(items, comments, reactions),
		DailySeries: computeDailySeries(comments, reactions, now, windowDays),
		TopContent:  computeTopContent(items, comments, reactions, topN),
	}
}

func computeTotals(items []ContentItem, comments []Comment, reactions []Reaction) Totals {
	byKind := make(map[string]int, 2)
	for _, item := range items {
		byKind[item.Kind]++
	}
	return Totals{
		ContentCount:       len(items),
		ContentCountByKind: byKind,
		CommentCount:       len(comments),
		ReactionCount:      len(reactions),
	}
}

// computeDailySeries builds windowDays consecutive calendar-day buckets
// ending at now's date inclusive, oldest first. Bucket order is a hard
// contract for trend-line consumers. An interaction lands in the bucket
// whose date equals the date prefix of its CreatedAt; records whose
// timestamp does not carry a resolvable day are left out of the series
// without aborting the aggregation.
func computeDailySeries(comments []Comment, reactions []Reaction, now time.Time, windowDays int) []DayBucket {
	series := make([]DayBucket, windowDays)
	index := make(map[string]int, windowDays)
	for i := 0; i < windowDays; i++ {
		day := utils.Day(now.AddDate(0, 0, i-windowDays+1))
		series[i] = DayBucket{Date: day}
		index[day] = i
	}

	for _, c := range comments {
		if day, ok := utils.DayOf(c.CreatedAt); ok {
			if i, inWindow := index[day]; inWindow {
				series[i].CommentCount++
			}
		}
	}
	for _, r := range reactions {
		if day, ok := utils.DayOf(r.CreatedAt); ok {
			if i, inWindow := index[day]; inWindow {
				series[i].ReactionCount++
			}
		}
	}

	for i := range series {
		series[i].Total = series[i].CommentCount + series[i].ReactionCount
	}
	return series
}

// computeTopContent ranks every item by commentCount + reactionCount,
// descending, ties broken by input order, truncated to topN. Zero-score
// items are padded in rather than filtered: a consumer distinguishes
// "no items yet" (empty list) from "items with no engagement" (full
// list of zero-score rows).
func computeTopContent(items []ContentItem, comments []Comment, reactions []Reaction, topN int) []RankedItem {
	commentsByParent := make(map[string]int, len(items))
	for _, c := range comments {
		commentsByParent[c.ParentID]++
	}
	reactionsByParent := make(map[string]int, len(items))
	for _, r := range reactions {
		reactionsByParent[r.ParentID]++
	}

	ranked := make([]RankedItem, 0, len(items))
	for _, item := range items {
		cc := commentsByParent[item.ID]
		rc := reactionsByParent[item.ID]
		ranked = append(ranked, RankedItem{
			ID:              item.ID,
			Title:           item.Title,
			Kind:            item.Kind,
			EngagementScore: cc + rc,
			CommentCount:    cc,
			ReactionCount:   rc,
		})
	}

	// SliceStable keeps input order on equal scores
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].EngagementScore > ranked[j].EngagementScore
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}
