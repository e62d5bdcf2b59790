package model

// ScreenerRow is one data row of the screener worksheet, mapped to named
// fields at the sheet boundary. Numeric cells stay raw strings here; parsing
// happens in the pipeline so a bad cell skips one row instead of failing a run.
type ScreenerRow struct {
	SheetRow     int // 1-based row number in the worksheet, header included
	Symbol       string
	Price        string
	PercentDown  string
	LongMA       string
	Icon         string
	SentimentRaw string
}
