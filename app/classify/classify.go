// Package classify assigns urgency levels and region tags to news text using
// fixed keyword lists (Hebrew + English). Matching is substring based, not
// tokenized: a keyword inside a longer word still matches.
package classify

import (
	"strings"

	"golang.org/x/text/cases"
)

// Keyword lists in strict priority order. Level 3 is checked first; the first
// list with a match decides the level.
var level3Keywords = []string{
	"אזעקה", "טיל", "פצצה", "התקפה", "פיגוע", "הפצצה",
	"missile", "attack", "explosion", "rocket", "alert", "strike",
	"nuclear", "גרעין", "נשק", "כיפת ברזל",
}

var level2Keywords = []string{
	"איראן", "iran", "חיזבאללה", "hezbollah", "חמאס", "hamas",
	"צבא", "military", "idf", "צה\"ל", "לחימה", "combat",
	"חרבות ברזל", "מלחמה", "war", "sanctions", "סנקציות",
}

var level1Keywords = []string{
	"ישראל", "israel", "מזרח תיכון", "middle east",
	"דיפלומטיה", "diplomatic", "ביידן", "biden", "נתניהו",
	"נשק", "weapons", "הסכם", "deal", "משא ומתן",
}

type regionKeywords struct {
	region   string
	keywords []string
}

// Ordered region table; first region with a match wins. "all" is the default
// and doubles as a wildcard in filters.
var regionTable = []regionKeywords{
	{"north", []string{"צפון", "חיפה", "גליל", "לבנון", "north", "haifa", "galilee"}},
	{"south", []string{"דרום", "עזה", "באר שבע", "south", "gaza", "beer sheva"}},
	{"center", []string{"תל אביב", "מרכז", "tel aviv", "center", "jerusalem", "ירושלים"}},
}

// Fold lower-cases text for matching using Unicode case folding.
func Fold(text string) string {
	return cases.Fold().String(text)
}

// DetectLevel returns the urgency level for the given text, 3 to 0.
// It is total and deterministic: a level-3 keyword always yields 3 regardless
// of lower-level keyword co-occurrence.
func DetectLevel(text string) int {
	folded := Fold(text)
	if matchesAny(folded, level3Keywords) {
		return 3
	}
	if matchesAny(folded, level2Keywords) {
		return 2
	}
	if matchesAny(folded, level1Keywords) {
		return 1
	}
	return 0
}

// DetectRegion returns the region tag for the given text, "all" when no
// region keyword matches.
func DetectRegion(text string) string {
	folded := Fold(text)
	for _, entry := range regionTable {
		if matchesAny(folded, entry.keywords) {
			return entry.region
		}
	}
	return "all"
}

func matchesAny(folded string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(folded, Fold(keyword)) {
			return true
		}
	}
	return false
}

// LevelEmoji returns the marker used in outbound alert messages.
func LevelEmoji(level int) string {
	switch level {
	case 3:
		return "🔴"
	case 2:
		return "🟠"
	case 1:
		return "🟡"
	default:
		return "⚪"
	}
}

// LevelLabel returns the Hebrew label for an urgency level.
func LevelLabel(level int) string {
	switch level {
	case 3:
		return "קריטי"
	case 2:
		return "דחוף"
	case 1:
		return "רגיל"
	default:
		return "כללי"
	}
}
