package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var RunsSubmittedCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "speedrun_runs_submitted_total",
	Help: "The total number of submitted runs by metric type",
}, []string{"metric"})

var RunsReviewedCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "speedrun_runs_reviewed_total",
	Help: "The total number of reviewed runs by resulting status",
}, []string{"status"})

var WorldRecordsCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "speedrun_world_records_total",
	Help: "Number of approvals that produced a new world record",
})

var ReviewConflictsCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "speedrun_review_conflicts_total",
	Help: "Number of reviews rejected because the run was changed concurrently",
})

var NotificationErrorCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "speedrun_notification_errors_total",
	Help: "Number of failed outbound notifications by sink",
}, []string{"sink"})
