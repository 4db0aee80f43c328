package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// JobMetrics records outcomes of scheduled housekeeping jobs.
type JobMetrics struct {
	duration *prometheus.HistogramVec
	runs     *prometheus.CounterVec
	removed  *prometheus.CounterVec
}

func NewJobMetrics(reg prometheus.Registerer) *JobMetrics {
	if reg == nil {
		return &JobMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sweetslice_job_duration_seconds",
		Help:    "Duration of housekeeping jobs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sweetslice_job_runs_total",
		Help: "Housekeeping job executions by result.",
	}, []string{"job", "result"})
	removed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sweetslice_job_removed_total",
		Help: "Records removed by housekeeping jobs.",
	}, []string{"job"})
	reg.MustRegister(duration, runs, removed)
	return &JobMetrics{duration: duration, runs: runs, removed: removed}
}

func (j *JobMetrics) ObserveDuration(job string, elapsed time.Duration) {
	if j == nil || j.duration == nil {
		return
	}
	j.duration.WithLabelValues(normalizeLabel(job)).Observe(elapsed.Seconds())
}

func (j *JobMetrics) IncSuccess(job string) {
	if j == nil || j.runs == nil {
		return
	}
	j.runs.WithLabelValues(normalizeLabel(job), "success").Inc()
}

func (j *JobMetrics) IncFailure(job string) {
	if j == nil || j.runs == nil {
		return
	}
	j.runs.WithLabelValues(normalizeLabel(job), "failure").Inc()
}

// Removed adds n to the job's removal counter.
func (j *JobMetrics) Removed(job string, n int) {
	if j == nil || j.removed == nil || n <= 0 {
		return
	}
	j.removed.WithLabelValues(normalizeLabel(job)).Add(float64(n))
}
