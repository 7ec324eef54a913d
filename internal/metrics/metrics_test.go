package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/sandevgo/intake/internal/core"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.Turn("template", core.IntentServiceInquiry, 10*time.Millisecond)
	r.Turn("template", core.IntentServiceInquiry, 20*time.Millisecond)
	r.Turn("collect", core.IntentServiceInquiry, time.Millisecond)
	r.CacheLookup(true)
	r.CacheLookup(false)
	r.CacheLookup(false)
	r.ExternalFailure("persistence")
	r.InquirySaved()

	assert.Equal(t, 2.0, testutil.ToFloat64(r.turns.WithLabelValues("template", "service_inquiry")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.turns.WithLabelValues("collect", "service_inquiry")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.cacheLookups.WithLabelValues("true")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.cacheLookups.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.externalFailures.WithLabelValues("persistence")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.inquiriesSaved))
	assert.Equal(t, 2, testutil.CollectAndCount(r.turnDuration))
}

func TestSessionGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	n := 3
	SessionGauge(reg, func() int { return n })

	count, err := testutil.GatherAndCount(reg, "intake_sessions_active")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}
