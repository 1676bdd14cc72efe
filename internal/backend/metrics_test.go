package backend

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsObserver_CountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs := NewMetricsObserver(reg)

	obs.OnCallComplete(CallEvent{Call: CallList, Status: 200, Success: true, LatencyMs: 12})
	obs.OnCallComplete(CallEvent{Call: CallList, Status: 200, Success: true, LatencyMs: 40})
	obs.OnCallComplete(CallEvent{Call: CallSave, Status: 500, Success: false, ErrorCode: "HTTP_500"})

	assert.Equal(t, 2.0, testutil.ToFloat64(obs.requests.WithLabelValues("list", "200", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(obs.requests.WithLabelValues("save", "500", "error")))
	assert.Equal(t, 2, testutil.CollectAndCount(obs.duration))
}
