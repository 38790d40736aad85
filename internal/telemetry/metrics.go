package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ExecutionsStarted counts flow runs created.
	ExecutionsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flow_manager_executions_started_total",
		Help: "Total flow executions started",
	})

	// ExecutionsFinished counts flow runs reaching a terminal status,
	// labeled by that status.
	ExecutionsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flow_manager_executions_finished_total",
		Help: "Total flow executions finished, by terminal status",
	}, []string{"status"})

	// StepsExecuted counts individual task invocations across all runs.
	StepsExecuted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flow_manager_steps_executed_total",
		Help: "Total task invocations across all executions",
	})

	// HTTPRequests counts requests handled by the API, labeled by
	// method, route and status code.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flow_manager_http_requests_total",
		Help: "Total HTTP requests handled",
	}, []string{"method", "path", "status"})
)
