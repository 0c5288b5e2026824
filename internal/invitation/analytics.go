package invitation

import (
	"sort"
	"time"
)

// recentActivityLimit caps the activity feed length.
const recentActivityLimit = 10

// SourcePerformance is the completion rate for one invitation source.
type SourcePerformance struct {
	Source         Source  `json:"source"`
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	CompletionRate float64 `json:"completion_rate"`
}

// Analytics is a funnel rollup over the repository contents at one moment.
type Analytics struct {
	TotalSent                int                 `json:"total_sent"`
	TotalOpened              int                 `json:"total_opened"`
	TotalStarted             int                 `json:"total_started"`
	TotalCompleted           int                 `json:"total_completed"`
	ConversionRate           float64             `json:"conversion_rate"`
	AverageTimeToCompleteHrs float64             `json:"average_time_to_complete_hours"`
	TopPerformingSources     []SourcePerformance `json:"top_performing_sources"`
	RecentActivity           []*Invitation       `json:"recent_activity"`
}

// Aggregator computes funnel metrics from a repository. Every call reads the
// live records; nothing is cached or maintained incrementally.
type Aggregator struct {
	repo *Repository
}

// NewAggregator creates an aggregator over the given repository.
func NewAggregator(repo *Repository) *Aggregator {
	return &Aggregator{repo: repo}
}

// Snapshot computes the current funnel rollup.
//
// Opened and started totals count non-nil timestamps rather than current
// status: a record that progressed further down the funnel still opened and
// started, and the timestamps are never cleared.
func (a *Aggregator) Snapshot() Analytics {
	records := a.repo.ListAll()

	stats := Analytics{TotalSent: len(records)}

	var completeDur time.Duration
	var completeCount int

	type sourceBucket struct {
		total     int
		completed int
	}
	buckets := make(map[Source]*sourceBucket)
	var sourceOrder []Source

	// ListAll returns newest-first; walk oldest-first so rate ties below
	// keep the order sources first appeared.
	for i := len(records) - 1; i >= 0; i-- {
		inv := records[i]
		if inv.OpenedDate != nil {
			stats.TotalOpened++
		}
		if inv.StartedDate != nil {
			stats.TotalStarted++
		}
		if inv.Status == StatusCompleted {
			stats.TotalCompleted++
		}
		if inv.CompletedDate != nil {
			completeDur += inv.CompletedDate.Sub(inv.SentDate)
			completeCount++
		}

		bucket, ok := buckets[inv.Source]
		if !ok {
			bucket = &sourceBucket{}
			buckets[inv.Source] = bucket
			sourceOrder = append(sourceOrder, inv.Source)
		}
		bucket.total++
		if inv.Status == StatusCompleted {
			bucket.completed++
		}
	}

	if stats.TotalSent > 0 {
		stats.ConversionRate = float64(stats.TotalCompleted) / float64(stats.TotalSent) * 100
	}
	if completeCount > 0 {
		stats.AverageTimeToCompleteHrs = completeDur.Hours() / float64(completeCount)
	}

	stats.TopPerformingSources = make([]SourcePerformance, 0, len(sourceOrder))
	for _, src := range sourceOrder {
		bucket := buckets[src]
		stats.TopPerformingSources = append(stats.TopPerformingSources, SourcePerformance{
			Source:         src,
			Total:          bucket.total,
			Completed:      bucket.completed,
			CompletionRate: float64(bucket.completed) / float64(bucket.total) * 100,
		})
	}
	// Stable sort keeps first-appearance order on rate ties.
	sort.SliceStable(stats.TopPerformingSources, func(i, j int) bool {
		return stats.TopPerformingSources[i].CompletionRate > stats.TopPerformingSources[j].CompletionRate
	})

	// ListAll is already sentDate-descending.
	if len(records) > recentActivityLimit {
		records = records[:recentActivityLimit]
	}
	stats.RecentActivity = records

	return stats
}
