package feed

import "strings"

// Filter returns the vehicles whose route or trip id contains query,
// case-insensitively. An empty query keeps the whole fleet.
func Filter(locs []VehicleLocation, query string) []VehicleLocation {
	if query == "" {
		return locs
	}
	q := strings.ToLower(query)
	out := make([]VehicleLocation, 0, len(locs))
	for _, loc := range locs {
		if loc.RouteID != nil && strings.Contains(strings.ToLower(*loc.RouteID), q) {
			out = append(out, loc)
			continue
		}
		if loc.TripID != nil && strings.Contains(strings.ToLower(*loc.TripID), q) {
			out = append(out, loc)
		}
	}
	return out
}
