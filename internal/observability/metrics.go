package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glimpse_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// NotificationInsertFailures counts swallowed notification fan-out failures.
	// Notification inserts are best-effort side actions and never fail the
	// triggering request.
	NotificationInsertFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glimpse_notification_insert_failures_total",
		Help: "Total number of notification inserts that failed and were dropped",
	}, []string{"type"})

	// MediaCleanupFailures counts orphaned files left behind by failed
	// best-effort deletions.
	MediaCleanupFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glimpse_media_cleanup_failures_total",
		Help: "Total number of media file deletions that failed",
	})

	// StoryViewsRecorded counts story view upserts.
	StoryViewsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glimpse_story_views_recorded_total",
		Help: "Total number of story views recorded",
	})
)
