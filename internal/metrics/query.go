package metrics

import "github.com/prometheus/client_golang/prometheus"

// Query pipeline Prometheus metrics.
var (
	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "compass",
			Name:      "queries_total",
			Help:      "Total number of processed caregiver queries",
		},
		[]string{"query_type"},
	)

	GateRejectionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "compass",
			Name:      "gate_rejections_total",
			Help:      "Total number of queries rejected as out of domain",
		},
	)

	RetrievalDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "compass",
			Name:      "retrieval_duration_seconds",
			Help:      "Retrieval phase duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"strategy"},
	)

	RetrievedDocumentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "compass",
			Name:      "retrieved_documents_total",
			Help:      "Total documents returned by retrieval after diversification",
		},
		[]string{"strategy"},
	)

	AnswerConfidenceTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "compass",
			Name:      "answer_confidence_total",
			Help:      "Answers bucketed by confidence label",
		},
		[]string{"confidence"},
	)
)

var queryMetricsRegistered bool

// RegisterQueryMetrics registers Prometheus query pipeline metrics. Must be called once from main.
func RegisterQueryMetrics() {
	if queryMetricsRegistered {
		return
	}
	prometheus.MustRegister(QueriesTotal)
	prometheus.MustRegister(GateRejectionsTotal)
	prometheus.MustRegister(RetrievalDuration)
	prometheus.MustRegister(RetrievedDocumentsTotal)
	prometheus.MustRegister(AnswerConfidenceTotal)
	queryMetricsRegistered = true
}
