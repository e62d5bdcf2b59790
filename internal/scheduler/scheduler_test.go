package scheduler

import (
	"context"
	"errors"
	"testing"

	"ScreenerBot/internal/broker"
	"ScreenerBot/internal/notifier"
	"ScreenerBot/internal/recorder"
	"ScreenerBot/internal/sheet"
)

func testGrid() [][]string {
	header := make([]string, 17)
	header[0] = "Ticker"
	row := func(symbol, price, pctDown, longMA, icon, sentiment string) []string {
		r := make([]string, 17)
		r[0], r[1], r[2], r[9], r[15], r[16] = symbol, price, pctDown, longMA, icon, sentiment
		return r
	}
	return [][]string{
		header,
		row("AAPL", "100", "10", "110", "💎", "2"),
		row("TSLA", "100", "10", "110", "🔥", "2"), // unknown icon
		row("MSFT", "200", "60", "50", "✨", ""),
	}
}

func newTestScheduler(src sheet.Source, brk broker.Broker) *Scheduler {
	return NewScheduler(context.Background(), src, brk,
		notifier.NewNoopNotifier(), recorder.NewNoopRecorder(), 1.0)
}

func TestRunNow_EndToEnd(t *testing.T) {
	brk := &broker.MockBroker{Power: 100000}
	s := newTestScheduler(&sheet.MockSource{Grid: testGrid()}, brk)

	report := s.RunNow()
	if report.OrdersSubmitted != 2 || report.OrdersFailed != 0 {
		t.Fatalf("submitted/failed = %d/%d, want 2/0 (orders: %+v)",
			report.OrdersSubmitted, report.OrdersFailed, report.Orders)
	}
	if len(brk.Submitted) != 2 {
		t.Fatalf("broker saw %d orders, want 2", len(brk.Submitted))
	}
	if brk.Submitted[0].Symbol != "AAPL" || brk.Submitted[0].Notional != 11000.00 {
		t.Errorf("first order = %+v", brk.Submitted[0])
	}
	if brk.Submitted[1].Symbol != "MSFT" || brk.Submitted[1].Notional != 262.50 {
		t.Errorf("second order = %+v", brk.Submitted[1])
	}
	if len(report.Skips) != 1 {
		t.Errorf("expected 1 skip, got %+v", report.Skips)
	}
}

func TestRunNow_OrderFailureIsolated(t *testing.T) {
	brk := &broker.MockBroker{
		Power:   100000,
		FailFor: map[string]error{"AAPL": errors.New("rejected")},
	}
	s := newTestScheduler(&sheet.MockSource{Grid: testGrid()}, brk)

	report := s.RunNow()
	if report.OrdersFailed != 1 {
		t.Errorf("OrdersFailed = %d, want 1", report.OrdersFailed)
	}
	// MSFT still went through after AAPL failed.
	if report.OrdersSubmitted != 1 || len(brk.Submitted) != 1 || brk.Submitted[0].Symbol != "MSFT" {
		t.Errorf("expected MSFT submitted after AAPL failure: %+v", brk.Submitted)
	}
}

func TestRunNow_FetchFailureAbortsBeforeOrders(t *testing.T) {
	brk := &broker.MockBroker{Power: 100000}
	s := newTestScheduler(&sheet.MockSource{Err: errors.New("sheet unavailable")}, brk)

	report := s.RunNow()
	if len(report.Decisions) != 0 || len(brk.Submitted) != 0 {
		t.Errorf("no orders should be placed when the sheet fetch fails: %+v", report)
	}
}

func TestRunNow_BuyingPowerFailureAbortsRun(t *testing.T) {
	brk := &broker.MockBroker{PowerErr: errors.New("account unavailable")}
	s := newTestScheduler(&sheet.MockSource{Grid: testGrid()}, brk)

	report := s.RunNow()
	if len(report.Decisions) != 0 || len(brk.Submitted) != 0 {
		t.Errorf("no orders should be placed when the account call fails: %+v", report)
	}
}

func TestRunNow_HeaderOnlySheet(t *testing.T) {
	brk := &broker.MockBroker{Power: 100000}
	s := newTestScheduler(&sheet.MockSource{Grid: [][]string{{"Ticker"}}}, brk)

	report := s.RunNow()
	if report.RowsProcessed != 0 || len(brk.Submitted) != 0 {
		t.Errorf("header-only sheet should produce nothing: %+v", report)
	}
}

func TestRunNow_RunsAreIndependent(t *testing.T) {
	// The dedup set must not leak between invocations: the same symbol is
	// orderable again on the next run.
	brk := &broker.MockBroker{Power: 100000}
	s := newTestScheduler(&sheet.MockSource{Grid: testGrid()}, brk)

	first := s.RunNow()
	second := s.RunNow()
	if first.OrdersSubmitted != second.OrdersSubmitted {
		t.Errorf("second run submitted %d orders, first %d", second.OrdersSubmitted, first.OrdersSubmitted)
	}
}

func TestRegister_BadCronExpression(t *testing.T) {
	s := newTestScheduler(&sheet.MockSource{}, &broker.MockBroker{})
	if err := s.Register("not a cron"); err == nil {
		t.Error("expected error for malformed cron expression")
	}
	if err := s.Register("0 45 14 * * 1-5"); err != nil {
		t.Errorf("valid cron rejected: %v", err)
	}
}
