package edunet

import (
	"strconv"

	"github.com/joy-dx/edunet/dto"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics prometheus collectors for requests and transfers. A nil *Metrics
// records nothing.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	downloadsTotal  *prometheus.CounterVec
	downloadedBytes prometheus.Counter
	inProgress      prometheus.Gauge
}

// NewMetrics builds collectors prefixed with namespace and registers them on reg
func NewMetrics(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Requests sent by status code and failure kind",
			},
			[]string{"method", "code", "failure"},
		),
		downloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "downloads_total",
				Help:      "Finished downloads by terminal state",
			},
			[]string{"state"},
		),
		downloadedBytes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "downloaded_bytes_total",
				Help:      "Bytes written by completed downloads",
			},
		),
		inProgress: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "downloads_in_progress",
				Help:      "Downloads currently streaming",
			},
		),
	}

	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{m.requestsTotal, m.downloadsTotal, m.downloadedBytes, m.inProgress} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observeRequest(method string, resp dto.Response) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode), string(resp.Failure)).Inc()
}

func (m *Metrics) downloadStarted() {
	if m == nil {
		return
	}
	m.inProgress.Inc()
}

func (m *Metrics) downloadFinished(state dto.TransferStatus, streamed bool, written int64) {
	if m == nil {
		return
	}
	if streamed {
		m.inProgress.Dec()
	}
	m.downloadsTotal.WithLabelValues(string(state)).Inc()
	if state == dto.COMPLETE && written > 0 {
		m.downloadedBytes.Add(float64(written))
	}
}
