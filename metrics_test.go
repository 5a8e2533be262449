package edunet

import (
	"testing"

	"github.com/joy-dx/edunet/dto"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics("edunet_test", reg)
	require.NoError(t, err)

	m.observeRequest("GET", dto.Response{StatusCode: 200})
	m.observeRequest("GET", dto.Response{StatusCode: 200})
	m.observeRequest("POST", dto.Response{StatusCode: 408, Failure: dto.FAILURE_TIMEOUT})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "200", "")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("POST", "408", "timeout")))

	m.downloadStarted()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.inProgress))
	m.downloadFinished(dto.COMPLETE, true, 1024)
	m.downloadFinished(dto.COMPLETE, false, 0)
	m.downloadFinished(dto.FAILED, false, 0)

	assert.Equal(t, 0.0, testutil.ToFloat64(m.inProgress))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.downloadsTotal.WithLabelValues("complete")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.downloadsTotal.WithLabelValues("failed")))
	assert.Equal(t, 1024.0, testutil.ToFloat64(m.downloadedBytes))
}

func TestMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics("dup", reg)
	require.NoError(t, err)

	_, err = NewMetrics("dup", reg)
	assert.Error(t, err)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.observeRequest("GET", dto.Response{StatusCode: 200})
		m.downloadStarted()
		m.downloadFinished(dto.CANCELLED, true, 0)
	})
}
