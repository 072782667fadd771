package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestPipelineMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPipelineMetrics(reg)
	m.ObserveMessage("availability", 0.05)
	m.ObserveLLMReply("ok")
	m.ObservePersistFailure()
}

func TestPipelineMetricsNilSafe(t *testing.T) {
	var m *PipelineMetrics
	m.ObserveMessage("comparison", 0.1)
	m.ObserveLLMReply("error")
	m.ObservePersistFailure()
}
