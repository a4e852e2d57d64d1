// Package busboard wires the decoding and extraction packages into a small
// read-only HTTP surface over the poller's committed snapshots.
package busboard

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/coastaltransit/busboard/board"
	"github.com/coastaltransit/busboard/catalog"
	"github.com/coastaltransit/busboard/config"
	"github.com/coastaltransit/busboard/feed"
	"github.com/coastaltransit/busboard/metrics"
	"github.com/coastaltransit/busboard/monitor"
)

// Server serves committed snapshot data. It never triggers fetches of its
// own; the poller owns all refresh policy.
type Server struct {
	cfg     config.AppConfig
	store   *monitor.Store
	catalog *catalog.Catalog
	metrics *metrics.Collector
	httpSrv *http.Server
}

// NewServer creates a server. cat may be nil when no stop table is
// configured.
func NewServer(cfg config.AppConfig, store *monitor.Store, cat *catalog.Catalog, mc *metrics.Collector) *Server {
	return &Server{cfg: cfg, store: store, catalog: cat, metrics: mc}
}

func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/arrivals", s.handleArrivals)
	mux.HandleFunc("/api/vehicles", s.handleVehicles)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.Handle("/metrics", s.metrics.Handler())
	return mux
}

// Start begins listening in the background.
func (s *Server) Start() {
	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("server listening on %s", addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

type arrivalsResponse struct {
	Stop         string             `json:"stop"`
	StopName     string             `json:"stop_name,omitempty"`
	UpdatedEpoch int64              `json:"updated_epoch"`
	Arrivals     []board.Prediction `json:"arrivals"`
}

type vehiclesResponse struct {
	Count        int                    `json:"count"`
	UpdatedEpoch int64                  `json:"updated_epoch"`
	Vehicles     []feed.VehicleLocation `json:"vehicles"`
}

type healthResponse struct {
	Status             string `json:"status"`
	LatestRefreshEpoch int64  `json:"latest_refresh_epoch"`
}

func (s *Server) handleArrivals(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	stop := r.URL.Query().Get("stop")
	if stop == "" {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write(errorPayload("stop query parameter required"))
		return
	}
	// A stop that failed or was never fetched shows an empty board, not an
	// error.
	preds, _ := s.store.Arrivals(stop)
	if preds == nil {
		preds = []board.Prediction{}
	}
	preds = board.Top(preds, s.cfg.Board.MaxPredictions)

	resp := arrivalsResponse{
		Stop:         stop,
		UpdatedEpoch: epochOrZero(s.store.UpdatedAt()),
		Arrivals:     preds,
	}
	if s.catalog != nil {
		if st, ok := s.catalog.Lookup(stop); ok {
			resp.StopName = st.Name
		}
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleVehicles(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vehicles := feed.Filter(s.store.Vehicles(), r.URL.Query().Get("route"))
	resp := vehiclesResponse{
		Count:        len(vehicles),
		UpdatedEpoch: epochOrZero(s.store.UpdatedAt()),
		Vehicles:     vehicles,
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(healthResponse{
		Status:             "ok",
		LatestRefreshEpoch: epochOrZero(s.store.UpdatedAt()),
	})
}

func errorPayload(msg string) []byte {
	b, _ := json.Marshal(map[string]string{"error": msg})
	return b
}

func epochOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}
