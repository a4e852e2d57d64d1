// Package metrics exposes Prometheus instrumentation for the refresh
// pipeline. The collector owns an explicit registry so tests and embedders
// never touch global state.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	FeedFetches  *prometheus.CounterVec // outcome label: ok|error
	BoardFetches *prometheus.CounterVec // outcome label: ok|error

	VehiclesDecoded prometheus.Gauge
	PredictionRows  *prometheus.GaugeVec // per stop code

	CycleDuration prometheus.Histogram
	StaleCommits  prometheus.Counter
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		FeedFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "busboard_feed_fetches_total",
			Help: "Vehicle feed fetch attempts by outcome.",
		}, []string{"outcome"}),
		BoardFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "busboard_board_fetches_total",
			Help: "Arrival board fetch attempts by outcome.",
		}, []string{"outcome"}),
		VehiclesDecoded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "busboard_vehicles_decoded",
			Help: "Vehicles decoded in the most recent committed cycle.",
		}),
		PredictionRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "busboard_prediction_rows",
			Help: "Predictions extracted per stop in the most recent committed cycle.",
		}, []string{"stop"}),
		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "busboard_cycle_duration_seconds",
			Help:    "Duration of one fetch+decode refresh cycle.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		StaleCommits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "busboard_stale_commits_total",
			Help: "Refresh results discarded because a newer cycle already committed.",
		}),
	}

	reg.MustRegister(
		c.FeedFetches, c.BoardFetches,
		c.VehiclesDecoded, c.PredictionRows,
		c.CycleDuration, c.StaleCommits,
	)
	return c
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}
