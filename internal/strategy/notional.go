package strategy

import (
	"strings"

	"ScreenerBot/internal/calculator"
	"ScreenerBot/internal/model"
)

// DefaultSentimentMultiplier applies when the sentiment cell is blank,
// unparseable, or non-positive.
const DefaultSentimentMultiplier = 0.1

// Inputs carries everything the notional composition needs for one symbol.
type Inputs struct {
	BuyingPower  float64
	PercentDown  float64
	Icon         string
	LongMA       float64
	Price        float64
	SentimentRaw string
}

// ComputeNotional composes the order size for one row:
//
//	buyingPower * bracketFraction * iconMultiplier * (longMA / price) * sentiment
//
// The first failed check short-circuits with a SkipReason. The returned
// notional is unrounded; the pipeline owns the minimum-size floor and
// rounding. The MA/price factor is deliberately unbounded in both directions.
func ComputeNotional(in Inputs) (float64, model.SkipReason) {
	fraction, ok := ResolveBracket(in.PercentDown)
	if !ok {
		return 0, model.SkipInvalidPercentDown
	}

	iconMult, ok := ResolveIcon(in.Icon)
	if !ok {
		return 0, model.SkipUnknownIcon
	}

	if in.Price <= 0 {
		return 0, model.SkipNonPositivePrice
	}
	maFactor := in.LongMA / in.Price

	notional := in.BuyingPower * fraction * iconMult * maFactor * resolveSentiment(in.SentimentRaw)
	return notional, model.SkipNone
}

// resolveSentiment returns the parsed positive sentiment value, uncapped, or
// the fixed default for anything blank, unparseable, or <= 0.
func resolveSentiment(raw string) float64 {
	if strings.TrimSpace(raw) == "" {
		return DefaultSentimentMultiplier
	}
	v, ok := calculator.ParseNumber(raw)
	if !ok || v <= 0 {
		return DefaultSentimentMultiplier
	}
	return v
}
