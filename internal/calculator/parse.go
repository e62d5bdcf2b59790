package calculator

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber converts a raw spreadsheet cell into a float. The screener sheet
// mixes plain numbers with percent-formatted cells, so any "%" characters are
// stripped before parsing. Empty, whitespace-only, or unparseable input
// returns ok=false; callers treat that as a missing value, never as an error.
func ParseNumber(raw string) (float64, bool) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0, false
	}
	v = strings.ReplaceAll(v, "%", "")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
