package services

import (
	"strconv"

	"github.com/aokimura/coursenavi/internal/dto"
)

// Weekdays is the fixed timetable axis; weekends have no periods.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// Period counts per view. These are presentation parameters, not domain
// invariants: stored items outside the rendered range simply don't show.
const (
	DefaultPeriods  = 7
	ExtendedPeriods = 8
)

// SlotKey formats the grid key for one timetable cell.
func SlotKey(day string, period int) string {
	return day + "-" + strconv.Itoa(period)
}

// ProjectTimetable maps enriched schedule entries by "Day-Period" so the grid
// renderer can look up each cell in O(1).
func ProjectTimetable(entries []dto.ScheduleEntry) map[string]dto.ScheduleEntry {
	grid := make(map[string]dto.ScheduleEntry, len(entries))
	for _, e := range entries {
		grid[SlotKey(e.Day, e.Period)] = e
	}
	return grid
}
