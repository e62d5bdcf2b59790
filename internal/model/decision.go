package model

// SkipReason explains why a row produced no order. Skips are normal control
// flow, not errors.
type SkipReason string

const (
	SkipNone               SkipReason = ""
	SkipEmptySymbol        SkipReason = "EMPTY_SYMBOL"
	SkipDuplicateSymbol    SkipReason = "DUPLICATE_SYMBOL"
	SkipMissingNumeric     SkipReason = "MISSING_NUMERIC"
	SkipInvalidPercentDown SkipReason = "INVALID_PERCENT_DOWN"
	SkipUnknownIcon        SkipReason = "UNKNOWN_ICON"
	SkipNonPositivePrice   SkipReason = "NON_POSITIVE_PRICE"
	SkipBelowMinNotional   SkipReason = "BELOW_MIN_NOTIONAL"
)

// OrderDecision is one validated buy decision produced by the pipeline.
// Symbol is uppercase and unique within a run; Notional is rounded to cents.
type OrderDecision struct {
	Symbol   string
	Notional float64
}

// RowSkip records a rejected row with enough context to diagnose it.
type RowSkip struct {
	SheetRow int
	Symbol   string
	Reason   SkipReason
	Detail   string
}
