package sheet

import "ScreenerBot/internal/model"

// Fixed column layout of the screener worksheet (0-based). Everything else on
// the sheet is ignored.
const (
	colTicker      = 0  // A
	colPrice       = 1  // B
	colPercentDown = 2  // C: % down from all-time high
	colLongMA      = 9  // J: long moving average
	colIcon        = 15 // P: conviction icon
	colSentiment   = 16 // Q: sentiment score, optional
)

// MapRows converts the raw worksheet grid into named-field records, dropping
// the header row. Cells beyond a short row's length read as empty strings.
// SheetRow is the 1-based worksheet row number, so diagnostics line up with
// what an operator sees in the spreadsheet UI.
func MapRows(grid [][]string) []model.ScreenerRow {
	if len(grid) < 2 {
		return nil
	}
	rows := make([]model.ScreenerRow, 0, len(grid)-1)
	for i, raw := range grid[1:] {
		cell := func(idx int) string {
			if idx < len(raw) {
				return raw[idx]
			}
			return ""
		}
		rows = append(rows, model.ScreenerRow{
			SheetRow:     i + 2,
			Symbol:       cell(colTicker),
			Price:        cell(colPrice),
			PercentDown:  cell(colPercentDown),
			LongMA:       cell(colLongMA),
			Icon:         cell(colIcon),
			SentimentRaw: cell(colSentiment),
		})
	}
	return rows
}
