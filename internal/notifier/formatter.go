package notifier

import (
	"fmt"
	"strings"

	"ScreenerBot/internal/model"
)

// FormatRunReport formats a completed run into a Telegram message.
func FormatRunReport(report *model.RunReport) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📋 <b>Screener run</b> | %s\n\n", report.StartedAt.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Source: %s\n", report.Source))
	b.WriteString(fmt.Sprintf("Buying power: $%.2f\n", report.BuyingPower))
	b.WriteString(fmt.Sprintf("Rows processed: %d | decisions: %d | skipped: %d\n\n",
		report.RowsProcessed, len(report.Decisions), len(report.Skips)))

	if len(report.Orders) > 0 {
		b.WriteString("💰 <b>Orders:</b>\n")
		for _, o := range report.Orders {
			if o.Err != "" {
				b.WriteString(fmt.Sprintf("  ❌ %s $%.2f: %s\n", o.Symbol, o.Notional, o.Err))
			} else {
				b.WriteString(fmt.Sprintf("  ✅ %s $%.2f (id=%s)\n", o.Symbol, o.Notional, o.OrderID))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("Submitted: %d | failed: %d\n", report.OrdersSubmitted, report.OrdersFailed))

	if counts := skipCounts(report.Skips); counts != "" {
		b.WriteString(fmt.Sprintf("Skip reasons: %s\n", counts))
	}
	return b.String()
}

// skipCounts collapses skip diagnostics into "REASON×N" pairs in encounter
// order, so the report stays deterministic.
func skipCounts(skips []model.RowSkip) string {
	if len(skips) == 0 {
		return ""
	}
	order := []model.SkipReason{}
	counts := map[model.SkipReason]int{}
	for _, s := range skips {
		if counts[s.Reason] == 0 {
			order = append(order, s.Reason)
		}
		counts[s.Reason]++
	}
	parts := make([]string, 0, len(order))
	for _, r := range order {
		parts = append(parts, fmt.Sprintf("%s×%d", r, counts[r]))
	}
	return strings.Join(parts, ", ")
}
