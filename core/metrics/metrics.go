package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	AssignmentRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "taruf_assignment_runs_total", Help: "Auto-assignment runs by outcome"},
		[]string{"outcome"},
	)
	AssignedPairs = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "taruf_assignment_assigned_pairs_total", Help: "Pairs placed into a slot by auto-assignment"},
	)
	UnassignedPairs = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "taruf_assignment_unassigned_pairs_total", Help: "Qualifying pairs left without a slot after the search bound"},
	)
	AssignmentDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "taruf_assignment_duration_seconds", Help: "Auto-assignment run duration", Buckets: prometheus.DefBuckets},
	)
	LoginFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "taruf_login_failures_total", Help: "Rejected logins by role"},
		[]string{"role"},
	)
)

const (
	OutcomeSuccess  = "success"
	OutcomeFailed   = "failed"
	OutcomeConflict = "conflict"
)

var registerOnce sync.Once

func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(AssignmentRuns, AssignedPairs, UnassignedPairs, AssignmentDuration, LoginFailures)
	})
}
