package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
	SubmissionTotal            = "challenge_submissions_total"
	UploadTargetTotal          = "challenge_upload_targets_total"
	CommerceLookupTotal        = "commerce_customer_lookups_total"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"method", "path", "status_code"}),
		SubmissionTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: SubmissionTotal,
			Help: "Count of accepted challenge submissions",
		}, []string{"type"}),
		UploadTargetTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: UploadTargetTotal,
			Help: "Count of issued photo upload targets",
		}, []string{"backend"}),
		CommerceLookupTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: CommerceLookupTotal,
			Help: "Count of commerce customer lookups",
		}, []string{"result"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"method", "path", "status_code"}),
	}
)
