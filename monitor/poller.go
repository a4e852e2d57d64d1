package monitor

import (
	"context"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/coastaltransit/busboard/board"
	"github.com/coastaltransit/busboard/config"
	"github.com/coastaltransit/busboard/feed"
	"github.com/coastaltransit/busboard/metrics"
)

// Poller refreshes the vehicle feed and every configured stop's arrival
// board on a fixed interval, committing each completed cycle to the store.
type Poller struct {
	feed     *feed.Client
	board    *board.Client
	stops    []config.StopConfig
	interval time.Duration
	store    *Store
	metrics  *metrics.Collector
}

func NewPoller(cfg config.AppConfig, store *Store, mc *metrics.Collector) *Poller {
	return &Poller{
		feed:     feed.NewClient(cfg.Feed.VehiclePositionsURL, cfg.FeedTimeout()),
		board:    board.NewClient(cfg.Board.ArrivalsURL, cfg.BoardTimeout()),
		stops:    cfg.Stops,
		interval: cfg.ReadInterval(),
		store:    store,
		metrics:  mc,
	}
}

// Run refreshes immediately and then on every tick until ctx is cancelled.
// Cancellation stops scheduling; a cycle already in flight finishes and its
// result is dropped by the store if a newer one committed meanwhile.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	p.RunOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.RunOnce(ctx)
		}
	}
}

// RunOnce executes one full fetch+decode cycle. Per-request failures narrow
// the result (a feed or stop shows no data for this cycle); nothing here is
// fatal to the process.
func (p *Poller) RunOnce(ctx context.Context) {
	gen := p.store.NextGeneration()
	start := time.Now()

	var vehicles []feed.VehicleLocation
	raw, err := p.fetchFeed(ctx)
	if err != nil {
		p.metrics.FeedFetches.WithLabelValues("error").Inc()
		log.Printf("vehicle feed fetch failed: %v", err)
	} else {
		p.metrics.FeedFetches.WithLabelValues("ok").Inc()
		vehicles = feed.Decode(raw)
	}

	arrivals := make(map[string][]board.Prediction, len(p.stops))
	for _, stop := range p.stops {
		preds, err := p.board.Arrivals(ctx, stop.Code)
		if err != nil {
			p.metrics.BoardFetches.WithLabelValues("error").Inc()
			log.Printf("arrival board fetch failed for stop %s: %v", stop.Code, err)
			continue
		}
		p.metrics.BoardFetches.WithLabelValues("ok").Inc()
		preds = board.FilterPredictions(preds, stop.Routes, stop.Headsign)
		board.SortByEta(preds)
		arrivals[stop.Code] = preds
	}

	if !p.store.Commit(gen, vehicles, arrivals, time.Now()) {
		p.metrics.StaleCommits.Inc()
		return
	}
	p.metrics.VehiclesDecoded.Set(float64(len(vehicles)))
	for code, preds := range arrivals {
		p.metrics.PredictionRows.WithLabelValues(code).Set(float64(len(preds)))
	}
	p.metrics.CycleDuration.Observe(time.Since(start).Seconds())
}

// fetchFeed retries transient feed failures with exponential backoff, capped
// so one cycle can never outlive the refresh interval by much.
func (p *Poller) fetchFeed(ctx context.Context) ([]byte, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxElapsedTime = p.interval
	if bo.MaxElapsedTime <= 0 {
		bo.MaxElapsedTime = 10 * time.Second
	}
	return backoff.RetryNotifyWithData(
		func() ([]byte, error) { return p.feed.Fetch(ctx) },
		backoff.WithContext(bo, ctx),
		func(err error, d time.Duration) {
			log.Printf("retrying vehicle feed in %s: %v", d, err)
		},
	)
}
