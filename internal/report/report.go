package report

import (
	"github.com/rs/zerolog/log"

	"github.com/lanelink/lanelink/internal/invitation"
)

// LogFunnelSnapshot computes the current analytics rollup and writes it to
// the log. The job is read-only: expiration stays a query-time check and no
// record is mutated here. It is idempotent and safe to run repeatedly.
func LogFunnelSnapshot(agg *invitation.Aggregator) {
	snapshot := agg.Snapshot()

	event := log.Info().
		Int("total_sent", snapshot.TotalSent).
		Int("total_opened", snapshot.TotalOpened).
		Int("total_started", snapshot.TotalStarted).
		Int("total_completed", snapshot.TotalCompleted).
		Float64("conversion_rate", snapshot.ConversionRate).
		Float64("avg_hours_to_complete", snapshot.AverageTimeToCompleteHrs)

	if len(snapshot.TopPerformingSources) > 0 {
		top := snapshot.TopPerformingSources[0]
		event = event.
			Str("top_source", string(top.Source)).
			Float64("top_source_rate", top.CompletionRate)
	}

	event.Msg("Invitation funnel snapshot")
}
