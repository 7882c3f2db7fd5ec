package db

import (
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type EventListener interface {
	OnIO(write bool, duration time.Duration)
}

type SelectiveListener struct {
	OnIOCb func(write bool, duration time.Duration)
}

func (l *SelectiveListener) OnIO(write bool, duration time.Duration) {
	if l.OnIOCb != nil {
		l.OnIOCb(write, duration)
	}
}

// NewMetricsListener returns a listener that records read and write latencies in
// microseconds. The histograms are registered with registerer.
func NewMetricsListener(registerer prometheus.Registerer) EventListener {
	latencyBuckets := []float64{
		25,
		50,
		75,
		100,
		250,
		500,
		1000, // 1ms
		2000,
		3000,
		4000,
		5000,
		10000,
		50000,
		500000,
		math.Inf(0),
	}
	readLatencyHistogram := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "db",
		Name:      "read_latency",
		Buckets:   latencyBuckets,
	})
	writeLatencyHistogram := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "db",
		Name:      "write_latency",
		Buckets:   latencyBuckets,
	})
	registerer.MustRegister(readLatencyHistogram, writeLatencyHistogram)

	return &SelectiveListener{
		OnIOCb: func(write bool, duration time.Duration) {
			if write {
				writeLatencyHistogram.Observe(float64(duration.Microseconds()))
			} else {
				readLatencyHistogram.Observe(float64(duration.Microseconds()))
			}
		},
	}
}
