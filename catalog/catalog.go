// Package catalog loads the static stop-code table from a delimited text
// file. The catalog is an explicit object constructed once by its owner and
// passed by handle to consumers; there is no package-level state.
package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Stop is one catalog row. Lat/Lon are zero when the source file carries no
// coordinate columns.
type Stop struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Lat  float64 `json:"lat,omitempty"`
	Lon  float64 `json:"lon,omitempty"`
}

// Catalog maps stop codes to stops.
type Catalog struct {
	stops map[string]Stop
}

// Load reads a header-first delimited file. Column order is not assumed;
// stop_code falls back to stop_id, and coordinate columns are optional.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stop catalog: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rec, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read stop catalog %s: %w", path, err)
	}
	if len(rec) == 0 {
		return &Catalog{stops: map[string]Stop{}}, nil
	}

	head := rec[0]
	idx := func(col string) int {
		for i, h := range head {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				return i
			}
		}
		return -1
	}
	code := idx("stop_code")
	if code < 0 {
		code = idx("stop_id")
	}
	name := idx("stop_name")
	lat := idx("stop_lat")
	lon := idx("stop_lon")
	if code < 0 || name < 0 {
		return nil, fmt.Errorf("stop catalog %s: missing stop_code/stop_id or stop_name column", path)
	}

	stops := make(map[string]Stop, len(rec)-1)
	for _, row := range rec[1:] {
		if code >= len(row) || name >= len(row) {
			continue
		}
		s := Stop{Code: strings.TrimSpace(row[code]), Name: strings.TrimSpace(row[name])}
		if s.Code == "" {
			continue
		}
		if lat >= 0 && lat < len(row) {
			s.Lat, _ = strconv.ParseFloat(row[lat], 64)
		}
		if lon >= 0 && lon < len(row) {
			s.Lon, _ = strconv.ParseFloat(row[lon], 64)
		}
		stops[s.Code] = s
	}
	return &Catalog{stops: stops}, nil
}

// Lookup returns the stop for a code.
func (c *Catalog) Lookup(code string) (Stop, bool) {
	s, ok := c.stops[strings.TrimSpace(code)]
	return s, ok
}

// Len reports how many stops were loaded.
func (c *Catalog) Len() int { return len(c.stops) }
