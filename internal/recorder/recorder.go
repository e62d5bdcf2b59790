package recorder

import "ScreenerBot/internal/model"

// RunRecord summarizes one completed screener run.
type RunRecord struct {
	Source          string
	BuyingPower     float64
	RowsProcessed   int
	Decisions       int
	Skips           int
	OrdersSubmitted int
	OrdersFailed    int
}

// OrderRecord is the journal entry for one submission attempt.
type OrderRecord struct {
	Symbol   string
	Notional float64
	OrderID  string
	Status   string // "SUBMITTED" or "FAILED"
	Err      string
}

// Recorder journals run outcomes for later inspection. It is write-only from
// the bot's point of view: nothing in the decision path ever reads it back.
type Recorder interface {
	RecordRun(rec *RunRecord) error
	RecordOrder(ord *OrderRecord) error
	RecordSkip(s *model.RowSkip) error
	Close() error
}
