package strategy

import "strings"

// IconMultipliers maps the conviction marker in the screener's P column to a
// scalar in (0, 1]. The set is exhaustive: any other marker (or none) means
// the row is not actionable.
var IconMultipliers = map[string]float64{
	"💎": 1.0,
	"💥": 0.9,
	"🚀": 0.8,
	"✨": 0.7,
	"📊": 0.6,
}

// ResolveIcon trims the raw cell and looks up its multiplier.
// Unrecognized icons are a skip signal, not an error.
func ResolveIcon(raw string) (float64, bool) {
	m, ok := IconMultipliers[strings.TrimSpace(raw)]
	return m, ok
}
