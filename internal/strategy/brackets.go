package strategy

// Brackets maps "% down from all-time high" ranges to the fraction of buying
// power used as the base allocation. Ranges are contiguous and closed on the
// upper bound, so 25/50/75 exactly resolve to the lower bracket.
var Brackets = []struct {
	MaxPercentDown float64
	Fraction       float64
}{
	{25, 0.05},
	{50, 0.10},
	{75, 0.15},
}

// TopBracketFraction covers everything above the last bracket bound,
// including percent-down readings of 100 or more.
const TopBracketFraction = 0.20

// ResolveBracket maps a percent-down value to its funding fraction.
// Negative input is invalid and returns ok=false; the caller skips the row.
func ResolveBracket(percentDown float64) (float64, bool) {
	if percentDown < 0 {
		return 0, false
	}
	for _, b := range Brackets {
		if percentDown <= b.MaxPercentDown {
			return b.Fraction, true
		}
	}
	return TopBracketFraction, true
}
