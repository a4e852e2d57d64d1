package monitor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	gtfsrt "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/coastaltransit/busboard/config"
	"github.com/coastaltransit/busboard/metrics"
)

func ptr[T any](v T) *T { return &v }

func encodeFeed(t *testing.T) []byte {
	t.Helper()
	msg := &gtfsrt.FeedMessage{
		Header: &gtfsrt.FeedHeader{
			GtfsRealtimeVersion: ptr("2.0"),
			Timestamp:           ptr(uint64(1700000000)),
		},
		Entity: []*gtfsrt.FeedEntity{
			{
				Id: ptr("e1"),
				Vehicle: &gtfsrt.VehiclePosition{
					Trip:     &gtfsrt.TripDescriptor{RouteId: ptr("11")},
					Position: &gtfsrt.Position{Latitude: ptr(float32(34.42)), Longitude: ptr(float32(-119.70))},
				},
			},
			{
				Id: ptr("e2"),
				Vehicle: &gtfsrt.VehiclePosition{
					Position: &gtfsrt.Position{Latitude: ptr(float32(34.41)), Longitude: ptr(float32(-119.84))},
				},
			},
		},
	}
	data, err := proto.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal feed: %v", err)
	}
	return data
}

func testConfig(feedURL, boardURL string) config.AppConfig {
	return config.AppConfig{
		Feed:  config.FeedConfig{VehiclePositionsURL: feedURL, TimeoutMS: 2000, ReadIntervalMS: 1000},
		Board: config.BoardConfig{ArrivalsURL: boardURL + "/arrivals?stop={stop}", TimeoutMS: 2000, MaxPredictions: 6},
		Stops: []config.StopConfig{{Code: "1234", Routes: []string{"11", "24X"}}},
	}
}

func TestPollerRunOnce(t *testing.T) {
	feedSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(encodeFeed(t))
	}))
	defer feedSrv.Close()

	boardSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("stop") != "1234" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("<tr><td>#11</td><td>Downtown SB</td><td>5&nbsp;MIN</td></tr>" +
			"<tr><td>#24X</td><td>UCSB North Hall</td><td>APPROACHING</td></tr>" +
			"<tr><td>#6</td><td>Airport</td><td>3 MIN</td></tr>"))
	}))
	defer boardSrv.Close()

	store := NewStore()
	p := NewPoller(testConfig(feedSrv.URL, boardSrv.URL), store, metrics.NewCollector())
	p.RunOnce(context.Background())

	vehicles := store.Vehicles()
	if len(vehicles) != 2 {
		t.Fatalf("got %d vehicles, want 2", len(vehicles))
	}

	preds, ok := store.Arrivals("1234")
	if !ok {
		t.Fatal("no arrivals committed for stop 1234")
	}
	// Route 6 is filtered out by the allow-list; the rest sort by ETA.
	if len(preds) != 2 {
		t.Fatalf("got %d predictions, want 2: %+v", len(preds), preds)
	}
	if preds[0].Route != "24X" || preds[1].Route != "11" {
		t.Errorf("order = %s, %s; want 24X, 11", preds[0].Route, preds[1].Route)
	}
	if store.UpdatedAt().IsZero() {
		t.Error("UpdatedAt not set after commit")
	}
}

func TestPollerBoardFailure(t *testing.T) {
	feedSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(encodeFeed(t))
	}))
	defer feedSrv.Close()

	boardSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer boardSrv.Close()

	store := NewStore()
	p := NewPoller(testConfig(feedSrv.URL, boardSrv.URL), store, metrics.NewCollector())
	p.RunOnce(context.Background())

	// The failed stop shows no data; the vehicle feed still commits.
	if _, ok := store.Arrivals("1234"); ok {
		t.Error("arrivals should be absent after a board failure")
	}
	if len(store.Vehicles()) != 2 {
		t.Errorf("got %d vehicles, want 2", len(store.Vehicles()))
	}
}
