package classify

import (
	"testing"
)

func TestDetectLevel_PriorityOrder(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{"critical keyword", "Missile fired toward the coast", 3},
		{"critical hebrew keyword", "אזעקה נשמעה בעיר", 3},
		{"urgent keyword", "Military convoy spotted near the border", 2},
		{"regular keyword", "Diplomatic talks resume in Israel", 1},
		{"no keyword", "Local bakery opens a second branch", 0},
		{"empty text", "", 0},
		{"critical wins over urgent", "IDF intercepts rocket over the north", 3},
		{"critical wins over regular", "Israel reports explosion near plant", 3},
		{"case insensitive", "ROCKET ATTACK reported", 3},
		{"substring inside longer word", "the rocketry club meets today", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectLevel(tt.text); got != tt.expected {
				t.Errorf("DetectLevel(%q) = %d, expected %d", tt.text, got, tt.expected)
			}
		})
	}
}

func TestDetectRegion_FirstMatch(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"north english", "Sirens heard in Haifa this morning", "north"},
		{"north hebrew", "דיווחים מהצפון", "north"},
		{"south", "Strike reported near Gaza", "south"},
		{"center", "Protest in Tel Aviv", "center"},
		{"no region keyword", "Cabinet meeting scheduled", "all"},
		{"empty text", "", "all"},
		{"north listed before south", "from the north toward the south", "north"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectRegion(tt.text); got != tt.expected {
				t.Errorf("DetectRegion(%q) = %q, expected %q", tt.text, got, tt.expected)
			}
		})
	}
}

func TestClassify_RocketAtNorthernBorder(t *testing.T) {
	text := "Rocket fired at northern border"

	if level := DetectLevel(text); level != 3 {
		t.Errorf("Expected level 3, got %d", level)
	}
	if region := DetectRegion(text); region != "north" {
		t.Errorf("Expected region north, got %q", region)
	}
}

func TestLevelLabels(t *testing.T) {
	for level := -1; level <= 4; level++ {
		if LevelEmoji(level) == "" {
			t.Errorf("LevelEmoji(%d) should not be empty", level)
		}
		if LevelLabel(level) == "" {
			t.Errorf("LevelLabel(%d) should not be empty", level)
		}
	}

	if LevelEmoji(3) != "🔴" {
		t.Errorf("Expected critical emoji, got %q", LevelEmoji(3))
	}
	if LevelLabel(0) != "כללי" {
		t.Errorf("Expected default label, got %q", LevelLabel(0))
	}
}
