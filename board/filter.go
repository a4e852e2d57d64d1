package board

import "strings"

// FilterPredictions applies per-stop display preferences supplied by the
// caller as plain data: a route allow-list (empty allows every route) and an
// optional case-insensitive headsign substring. It never mutates its input.
func FilterPredictions(preds []Prediction, routes []string, headsign string) []Prediction {
	allowed := make(map[string]struct{}, len(routes))
	for _, r := range routes {
		allowed[strings.ToUpper(strings.TrimSpace(r))] = struct{}{}
	}
	sub := strings.ToLower(headsign)

	out := make([]Prediction, 0, len(preds))
	for _, p := range preds {
		if len(allowed) > 0 {
			if _, ok := allowed[p.Route]; !ok {
				continue
			}
		}
		if sub != "" && !strings.Contains(strings.ToLower(p.Headsign), sub) {
			continue
		}
		out = append(out, p)
	}
	return out
}
