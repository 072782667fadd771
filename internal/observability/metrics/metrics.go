package metrics

import "github.com/prometheus/client_golang/prometheus"

// PipelineMetrics exposes counters/histograms for the message pipeline.
type PipelineMetrics struct {
	messagesTotal   *prometheus.CounterVec
	routeLatency    *prometheus.HistogramVec
	llmReplies      *prometheus.CounterVec
	persistFailures prometheus.Counter
}

func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	m := &PipelineMetrics{
		messagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "evbot",
			Subsystem: "pipeline",
			Name:      "messages_total",
			Help:      "Total messages handled, by matched route",
		}, []string{"route"}),
		routeLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "evbot",
			Subsystem: "pipeline",
			Name:      "route_latency_seconds",
			Help:      "Latency of message handling per route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		llmReplies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "evbot",
			Subsystem: "pipeline",
			Name:      "llm_replies_total",
			Help:      "LLM fallback replies, by outcome",
		}, []string{"outcome"}),
		persistFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "evbot",
			Subsystem: "pipeline",
			Name:      "persist_failures_total",
			Help:      "Conversation persistence failures that were swallowed",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.messagesTotal, m.routeLatency, m.llmReplies, m.persistFailures)
	return m
}

func (m *PipelineMetrics) ObserveMessage(route string, seconds float64) {
	if m == nil {
		return
	}
	m.messagesTotal.WithLabelValues(route).Inc()
	m.routeLatency.WithLabelValues(route).Observe(seconds)
}

func (m *PipelineMetrics) ObserveLLMReply(outcome string) {
	if m == nil {
		return
	}
	m.llmReplies.WithLabelValues(outcome).Inc()
}

func (m *PipelineMetrics) ObservePersistFailure() {
	if m == nil {
		return
	}
	m.persistFailures.Inc()
}
