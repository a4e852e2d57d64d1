package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	busboard "github.com/coastaltransit/busboard"
	"github.com/coastaltransit/busboard/board"
	"github.com/coastaltransit/busboard/catalog"
	"github.com/coastaltransit/busboard/config"
	"github.com/coastaltransit/busboard/feed"
	"github.com/coastaltransit/busboard/metrics"
	"github.com/coastaltransit/busboard/monitor"
)

func main() {
	mode := flag.String("mode", "oneshot", "oneshot|serve")
	configPath := flag.String("config", "", "path to config.yml (overrides BUSBOARD_CONFIG)")
	stop := flag.String("stop", "", "stop code: oneshot prints this stop's arrivals instead of the fleet")
	route := flag.String("route", "", "route or trip substring filter for the fleet")
	flag.Parse()

	_ = godotenv.Load()
	busboard.InitLogging()

	if *configPath == "" {
		*configPath = os.Getenv("BUSBOARD_CONFIG")
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	switch *mode {
	case "oneshot":
		runOneshot(cfg, *stop, *route)
	case "serve":
		runServe(cfg)
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}

func runOneshot(cfg config.AppConfig, stop, route string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if stop != "" {
		c := board.NewClient(cfg.Board.ArrivalsURL, cfg.BoardTimeout())
		preds, err := c.Arrivals(ctx, stop)
		if err != nil {
			log.Fatalf("arrival board: %v", err)
		}
		if sc, ok := cfg.StopByCode(stop); ok {
			preds = board.FilterPredictions(preds, sc.Routes, sc.Headsign)
		}
		board.SortByEta(preds)
		printJSON(board.Top(preds, cfg.Board.MaxPredictions))
		return
	}

	c := feed.NewClient(cfg.Feed.VehiclePositionsURL, cfg.FeedTimeout())
	raw, err := c.Fetch(ctx)
	if err != nil {
		log.Fatalf("vehicle feed: %v", err)
	}
	printJSON(feed.Filter(feed.Decode(raw), route))
}

func runServe(cfg config.AppConfig) {
	var cat *catalog.Catalog
	if cfg.Catalog.Path != "" {
		var err error
		cat, err = catalog.Load(cfg.Catalog.Path)
		if err != nil {
			log.Fatalf("catalog: %v", err)
		}
		log.Printf("loaded %d stops from %s", cat.Len(), cfg.Catalog.Path)
	}

	mc := metrics.NewCollector()
	store := monitor.NewStore()

	ctx, cancel := context.WithCancel(context.Background())
	go monitor.NewPoller(cfg, store, mc).Run(ctx)

	srv := busboard.NewServer(cfg, store, cat, mc)
	srv.Start()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Printf("shutdown signal received")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
