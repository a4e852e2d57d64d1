package config

// ServerConfig contains the HTTP server configuration.
type ServerConfig struct {
	Port int `yaml:"port" validate:"gte=0"`
}

// FeedConfig points at the GTFS-RT vehicle positions endpoint.
type FeedConfig struct {
	VehiclePositionsURL string `yaml:"vehiclePositionsURL" validate:"required,url"`
	ReadIntervalMS      int    `yaml:"readIntervalMS" validate:"gte=0"`
	TimeoutMS           int    `yaml:"timeoutMS" validate:"gte=0"`
}

// BoardConfig points at the scraped arrival-board endpoint. ArrivalsURL must
// contain the {stop} placeholder, substituted per request with a stop code.
type BoardConfig struct {
	ArrivalsURL    string `yaml:"arrivalsURL" validate:"required,contains={stop}"`
	TimeoutMS      int    `yaml:"timeoutMS" validate:"gte=0"`
	MaxPredictions int    `yaml:"maxPredictions" validate:"gte=0"`
}

// CatalogConfig locates the static stop-code table.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// StopConfig is one monitored stop with its display preferences: a route
// allow-list (empty allows every route) and an optional headsign substring.
type StopConfig struct {
	Code     string   `yaml:"code" validate:"required"`
	Routes   []string `yaml:"routes"`
	Headsign string   `yaml:"headsign"`
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	Server  ServerConfig  `yaml:"server"`
	Feed    FeedConfig    `yaml:"feed" validate:"required"`
	Board   BoardConfig   `yaml:"board" validate:"required"`
	Catalog CatalogConfig `yaml:"catalog"`
	Stops   []StopConfig  `yaml:"stops"`
}
