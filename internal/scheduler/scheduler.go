package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"ScreenerBot/internal/broker"
	"ScreenerBot/internal/model"
	"ScreenerBot/internal/notifier"
	"ScreenerBot/internal/pipeline"
	"ScreenerBot/internal/recorder"
	"ScreenerBot/internal/sheet"

	"github.com/robfig/cron/v3"
)

// Scheduler owns the cron wiring and the per-run orchestration. Each tick is
// a single pass: fetch the sheet, read buying power, run the pipeline, submit
// the resulting orders one by one.
type Scheduler struct {
	Cron        *cron.Cron
	Source      sheet.Source
	Broker      broker.Broker
	Notifier    notifier.Notifier
	Recorder    recorder.Recorder
	MinNotional float64
	Ctx         context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, src sheet.Source, brk broker.Broker, nt notifier.Notifier, rec recorder.Recorder, minNotional float64) *Scheduler {
	return &Scheduler{
		Cron:        cron.New(cron.WithSeconds()),
		Source:      src,
		Broker:      brk,
		Notifier:    nt,
		Recorder:    rec,
		MinNotional: minNotional,
		Ctx:         ctx,
	}
}

// Register registers the screener run on the given cron expression.
func (s *Scheduler) Register(runCron string) error {
	if _, err := s.Cron.AddFunc(runCron, func() { s.runTask() }); err != nil {
		return fmt.Errorf("register run task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the screener task immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() *model.RunReport {
	return s.runTask()
}

func (s *Scheduler) runTask() *model.RunReport {
	log.Println("[INFO] running screener task")
	report := &model.RunReport{
		StartedAt: time.Now(),
		Source:    s.Source.Name(),
	}

	grid, err := s.Source.FetchRows()
	if err != nil {
		log.Printf("[ERROR] fetch sheet: %v", err)
		s.trySend(fmt.Sprintf("❌ Screener run failed: fetch sheet: %v", err))
		return report
	}
	if len(grid) < 2 {
		log.Println("[INFO] no data rows found (only header or empty sheet)")
		return report
	}
	log.Printf("[INFO] fetched %d sheet rows (source: %s)", len(grid), s.Source.Name())

	buyingPower, err := s.Broker.BuyingPower()
	if err != nil {
		log.Printf("[ERROR] fetch buying power: %v", err)
		s.trySend(fmt.Sprintf("❌ Screener run failed: buying power: %v", err))
		return report
	}
	log.Printf("[INFO] buying power: %.2f (broker: %s)", buyingPower, s.Broker.Name())
	report.BuyingPower = buyingPower

	rows := sheet.MapRows(grid)
	report.RowsProcessed = len(rows)

	res := pipeline.Run(rows, buyingPower, s.MinNotional)
	report.Decisions = res.Decisions
	report.Skips = res.Skips

	// Hand each decision to the broker; one failed submission never aborts
	// the remaining symbols.
	for _, d := range res.Decisions {
		order, err := s.Broker.SubmitOrder(d.Symbol, d.Notional)
		if err != nil {
			log.Printf("[ERROR] submit order for %s: %v", d.Symbol, err)
			report.Orders = append(report.Orders, model.SubmittedOrder{
				Symbol: d.Symbol, Notional: d.Notional, Err: err.Error(),
			})
			report.OrdersFailed++
			s.recordOrder(&recorder.OrderRecord{
				Symbol: d.Symbol, Notional: d.Notional, Status: "FAILED", Err: err.Error(),
			})
			continue
		}
		log.Printf("[INFO] order submitted for %s: id=%s, notional=%.2f", d.Symbol, order.ID, d.Notional)
		report.Orders = append(report.Orders, model.SubmittedOrder{
			Symbol: d.Symbol, Notional: d.Notional, OrderID: order.ID,
		})
		report.OrdersSubmitted++
		s.recordOrder(&recorder.OrderRecord{
			Symbol: d.Symbol, Notional: d.Notional, OrderID: order.ID, Status: "SUBMITTED",
		})
	}

	for i := range res.Skips {
		if err := s.Recorder.RecordSkip(&res.Skips[i]); err != nil {
			log.Printf("[ERROR] record skip: %v", err)
		}
	}
	if err := s.Recorder.RecordRun(&recorder.RunRecord{
		Source:          report.Source,
		BuyingPower:     buyingPower,
		RowsProcessed:   report.RowsProcessed,
		Decisions:       len(res.Decisions),
		Skips:           len(res.Skips),
		OrdersSubmitted: report.OrdersSubmitted,
		OrdersFailed:    report.OrdersFailed,
	}); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}

	log.Printf("[INFO] finished run. orders submitted: %d, failed: %d", report.OrdersSubmitted, report.OrdersFailed)
	s.trySend(notifier.FormatRunReport(report))
	return report
}

func (s *Scheduler) recordOrder(ord *recorder.OrderRecord) {
	if err := s.Recorder.RecordOrder(ord); err != nil {
		log.Printf("[ERROR] record order: %v", err)
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
