package feed

// VehicleLocation is one decoded vehicle position. A location is never
// constructed without both latitude and longitude; every other field is
// optional and independently absent.
type VehicleLocation struct {
	ID        string   `json:"id"`
	RouteID   *string  `json:"route_id,omitempty"`
	TripID    *string  `json:"trip_id,omitempty"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Bearing   *float64 `json:"bearing,omitempty"`
	SpeedMPS  *float64 `json:"speed_mps,omitempty"`
	Timestamp *uint64  `json:"timestamp,omitempty"`
}
