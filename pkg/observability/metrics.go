package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// prometheus metrics
type Metrics struct {
	RouteRequests   *prometheus.CounterVec // labels: mode, strategy
	BlockedEdges    prometheus.Counter
	RiskAssessments *prometheus.CounterVec // label: tier
	GraphLoads      *prometheus.CounterVec // labels: source
	HTTPDuration    *prometheus.HistogramVec
	TotalRequests   *prometheus.CounterVec
	StatusCode      *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RouteRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crowdshield",
			Name:      "route_requests_total",
			Help:      "Evacuation route computations by mode and resulting strategy.",
		}, []string{"mode", "strategy"}),
		BlockedEdges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crowdshield",
			Name:      "blocked_edges_total",
			Help:      "Edges removed by the hazard mask across all requests.",
		}),
		RiskAssessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crowdshield",
			Name:      "risk_assessments_total",
			Help:      "Risk fusions by resulting severity tier.",
		}, []string{"tier"}),
		GraphLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crowdshield",
			Name:      "graph_loads_total",
			Help:      "Graphs obtained by source (network, grid, cache).",
		}, []string{"source"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "crowdshield",
			Name:      "request_duration_seconds",
			Help:      "The duration of request",
			Buckets:   []float64{0.05, 0.1, 0.15, 0.2, 0.25, 0.3},
		}, []string{"method", "path"}),
		TotalRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crowdshield",
			Name:      "total_requests",
			Help:      "The total number of requests",
		}, []string{"path", "method", "status"}),
		StatusCode: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crowdshield",
			Name:      "response_status_code",
			Help:      "The status code of http response",
		}, []string{"status", "method", "path"}),
	}
	reg.MustRegister(m.RouteRequests, m.BlockedEdges, m.RiskAssessments, m.GraphLoads,
		m.HTTPDuration, m.TotalRequests, m.StatusCode)
	return m
}
