package model

import "time"

// SubmittedOrder records the outcome of handing one decision to the broker.
type SubmittedOrder struct {
	Symbol   string
	Notional float64
	OrderID  string
	Err      string // empty on success
}

// RunReport summarizes a single pipeline execution.
type RunReport struct {
	StartedAt       time.Time
	Source          string
	BuyingPower     float64
	RowsProcessed   int
	Decisions       []OrderDecision
	Skips           []RowSkip
	Orders          []SubmittedOrder
	OrdersSubmitted int
	OrdersFailed    int
}
