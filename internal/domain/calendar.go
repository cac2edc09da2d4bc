package domain

var (
	standardMonthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	leapMonthDays     = [12]int{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
)

// DaysPerMonth returns the calendar month lengths for a standard or leap year.
func DaysPerMonth(leap bool) [12]int {
	if leap {
		return leapMonthDays
	}
	return standardMonthDays
}

// monthOfDay maps a zero-based day of year to its calendar month (1-12).
func monthOfDay(dayIndex int, leap bool) int {
	month, _ := calendarDate(dayIndex, leap)
	return month
}

// calendarDate maps a zero-based day of year to its month (1-12) and day of
// month (1-31). Indexes past the year end clamp to December 31.
func calendarDate(dayIndex int, leap bool) (month, day int) {
	for m, n := range DaysPerMonth(leap) {
		if dayIndex < n {
			return m + 1, dayIndex + 1
		}
		dayIndex -= n
	}
	return 12, 31
}
