package board

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var digitRun = regexp.MustCompile(`\d+`)

// etaNever sorts unknown ETAs after every known value.
const etaNever = math.MaxInt32

// EtaMinutes maps an extracted eta token to minutes. The keywords
// approaching, due and arriving mean the vehicle is imminent and map to 0;
// otherwise the first digit run in the token is the minutes value. A token
// with no digits is unknown and maps to nil, never an error.
func EtaMinutes(token string) *int {
	lower := strings.ToLower(token)
	for _, kw := range []string{"approaching", "due", "arriving"} {
		if strings.Contains(lower, kw) {
			zero := 0
			return &zero
		}
	}
	if digits := digitRun.FindString(token); digits != "" {
		if v, err := strconv.Atoi(digits); err == nil {
			return &v
		}
	}
	return nil
}

// SortByEta orders predictions ascending by ETA. Unknown ETAs sort after
// every known value; ties keep their original extraction order.
func SortByEta(preds []Prediction) {
	sort.SliceStable(preds, func(i, j int) bool {
		return etaRank(preds[i]) < etaRank(preds[j])
	})
}

func etaRank(p Prediction) int {
	if p.EtaMinutes == nil {
		return etaNever
	}
	return *p.EtaMinutes
}

// Top returns at most n predictions from the front of the list.
func Top(preds []Prediction, n int) []Prediction {
	if n < 0 || n >= len(preds) {
		return preds
	}
	return preds[:n]
}
