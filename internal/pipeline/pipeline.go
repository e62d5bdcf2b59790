package pipeline

import (
	"fmt"
	"log"
	"strings"

	"ScreenerBot/internal/calculator"
	"ScreenerBot/internal/model"
	"ScreenerBot/internal/strategy"
)

// DefaultMinNotional is the smallest order the broker will accept.
const DefaultMinNotional = 1.0

// Result is the ordered outcome of one pipeline run.
type Result struct {
	Decisions []model.OrderDecision
	Skips     []model.RowSkip
}

// runState is the per-invocation dedup set and counter. It is created inside
// Run and discarded with it, so repeated runs and tests stay independent.
type runState struct {
	seen    map[string]bool
	emitted int
}

// Run walks the mapped screener rows in order and turns them into validated,
// deduplicated order decisions. Rows that fail any check are recorded as
// skips and logged; they never abort the run. Run holds no state between
// invocations.
func Run(rows []model.ScreenerRow, buyingPower, minNotional float64) *Result {
	if minNotional <= 0 {
		minNotional = DefaultMinNotional
	}
	res := &Result{}
	state := &runState{seen: make(map[string]bool)}

	for _, row := range rows {
		decide(row, buyingPower, minNotional, state, res)
	}

	log.Printf("[INFO] pipeline done: %d decisions, %d skips from %d rows",
		state.emitted, len(res.Skips), len(rows))
	return res
}

func decide(row model.ScreenerRow, buyingPower, minNotional float64, state *runState, res *Result) {
	symbol := strings.ToUpper(strings.TrimSpace(row.Symbol))
	if symbol == "" {
		skip(res, row.SheetRow, "", model.SkipEmptySymbol, "no symbol in ticker column")
		return
	}
	if state.seen[symbol] {
		skip(res, row.SheetRow, symbol, model.SkipDuplicateSymbol, "symbol already processed, first occurrence wins")
		return
	}

	price, okP := calculator.ParseNumber(row.Price)
	percentDown, okD := calculator.ParseNumber(row.PercentDown)
	longMA, okM := calculator.ParseNumber(row.LongMA)
	if !okP || !okD || !okM {
		skip(res, row.SheetRow, symbol, model.SkipMissingNumeric,
			fmt.Sprintf("price=%q pctDown=%q longMA=%q", row.Price, row.PercentDown, row.LongMA))
		return
	}

	notional, reason := strategy.ComputeNotional(strategy.Inputs{
		BuyingPower:  buyingPower,
		PercentDown:  percentDown,
		Icon:         row.Icon,
		LongMA:       longMA,
		Price:        price,
		SentimentRaw: row.SentimentRaw,
	})
	if reason != model.SkipNone {
		skip(res, row.SheetRow, symbol, reason, "")
		return
	}

	// Floor check runs on the raw notional; exactly the floor is kept.
	if notional < minNotional {
		skip(res, row.SheetRow, symbol, model.SkipBelowMinNotional,
			fmt.Sprintf("notional %.2f below minimum %.2f", notional, minNotional))
		return
	}

	res.Decisions = append(res.Decisions, model.OrderDecision{
		Symbol:   symbol,
		Notional: calculator.Round2(notional),
	})
	state.seen[symbol] = true
	state.emitted++
}

func skip(res *Result, sheetRow int, symbol string, reason model.SkipReason, detail string) {
	res.Skips = append(res.Skips, model.RowSkip{
		SheetRow: sheetRow,
		Symbol:   symbol,
		Reason:   reason,
		Detail:   detail,
	})
	if detail != "" {
		log.Printf("[INFO] row %d %s: skipped (%s): %s", sheetRow, symbol, reason, detail)
	} else {
		log.Printf("[INFO] row %d %s: skipped (%s)", sheetRow, symbol, reason)
	}
}
