package metrics

import "github.com/prometheus/client_golang/prometheus"

// AnalysisMetrics exposes counters/histograms for the triage pipeline.
type AnalysisMetrics struct {
	analysisTotal   *prometheus.CounterVec
	analysisLatency *prometheus.HistogramVec
	mediaIngest     *prometheus.CounterVec
}

func NewAnalysisMetrics(reg prometheus.Registerer) *AnalysisMetrics {
	m := &AnalysisMetrics{
		analysisTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "truthguard",
			Name:      "analysis_total",
			Help:      "Total classification submissions",
		}, []string{"detector", "severity", "status"}),
		analysisLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "truthguard",
			Name:      "analysis_latency_seconds",
			Help:      "Latency of model classification calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"detector"}),
		mediaIngest: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "truthguard",
			Name:      "media_ingest_total",
			Help:      "Media items settled by the normalizer",
		}, []string{"origin", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.analysisTotal, m.analysisLatency, m.mediaIngest)
	return m
}

func (m *AnalysisMetrics) ObserveAnalysis(detector, severity, status string) {
	if m == nil {
		return
	}
	m.analysisTotal.WithLabelValues(detector, severity, status).Inc()
}

func (m *AnalysisMetrics) ObserveAnalysisLatency(detector string, seconds float64) {
	if m == nil {
		return
	}
	m.analysisLatency.WithLabelValues(detector).Observe(seconds)
}

// ObserveIngest satisfies the media normalizer's observer hook.
func (m *AnalysisMetrics) ObserveIngest(origin, status string) {
	if m == nil {
		return
	}
	m.mediaIngest.WithLabelValues(origin, status).Inc()
}
