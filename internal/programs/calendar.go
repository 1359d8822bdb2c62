package programs

import "time"

// GridCells is the fixed calendar grid size: 6 rows of 7 days. The fixed
// size keeps the month view layout stable regardless of how many weeks a
// month spans.
const GridCells = 42

type DayCell struct {
	Date         time.Time `json:"date"`
	CurrentMonth bool      `json:"isCurrentMonth"`
}

// MonthGrid produces exactly 42 day cells for the given month: leading
// cells from the previous month pad to the first weekday (weeks start on
// Sunday), then the full month, then trailing cells from the next month.
func MonthGrid(year int, month time.Month) []DayCell {
	firstDay := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	startPadding := int(firstDay.Weekday())

	cells := make([]DayCell, 0, GridCells)

	for i := startPadding; i > 0; i-- {
		cells = append(cells, DayCell{
			Date: firstDay.AddDate(0, 0, -i),
		})
	}

	// day 0 of the next month is the last day of this one
	totalDays := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	for i := 0; i < totalDays; i++ {
		cells = append(cells, DayCell{
			Date:         firstDay.AddDate(0, 0, i),
			CurrentMonth: true,
		})
	}

	nextMonth := firstDay.AddDate(0, 1, 0)
	for i := 0; len(cells) < GridCells; i++ {
		cells = append(cells, DayCell{
			Date: nextMonth.AddDate(0, 0, i),
		})
	}

	return cells
}
