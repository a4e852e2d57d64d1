package board

import (
	"regexp"
	"strings"
)

// etaToken matches the arrival estimate column: a keyword for an imminent
// vehicle, or a digit run with a minutes unit.
const etaToken = `approaching|due|arriving|\d+\s*min(?:ute)?s?\.?`

// strategies is the ordered extraction cascade. Each pattern captures three
// groups: route (1-2 digits plus an optional letter), headsign (shortest run
// of non-newline text) and the eta token. The first strategy with one or more
// matches wins; later strategies are never consulted and results are never
// merged across strategies.
var strategies = []*regexp.Regexp{
	// Hash-prefixed rows, the populated-table layout: "#24X UCSB 5 MIN".
	regexp.MustCompile(`(?i)#\s*(\d{1,2}[A-Za-z]?)\s+(.+?)\s+(` + etaToken + `)`),
	// Line-anchored rows without the hash, seen on the fallback layout.
	regexp.MustCompile(`(?im)^\s*(\d{1,2}[A-Za-z]?)\s+(.+?)\s+(` + etaToken + `)\s*$`),
}

// Extract runs the cascade over normalized text. Matches are returned in
// order of appearance; zero matches across every strategy is an empty result,
// not an error.
func Extract(text string) []Prediction {
	for _, re := range strategies {
		matches := re.FindAllStringSubmatch(text, -1)
		if len(matches) == 0 {
			continue
		}
		preds := make([]Prediction, 0, len(matches))
		for _, m := range matches {
			preds = append(preds, Prediction{
				Route:      strings.ToUpper(strings.TrimSpace(m[1])),
				Headsign:   collapseSpaces(m[2]),
				EtaMinutes: EtaMinutes(m[3]),
			})
		}
		return preds
	}
	return nil
}

// ExtractMarkup is the whole pipeline: normalize the raw page, then extract.
func ExtractMarkup(markup string) []Prediction {
	return Extract(Normalize(markup))
}
