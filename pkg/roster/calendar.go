package roster

import "time"

// MonthWeeks expands a target (year, month) into Monday-starting weeks of 7
// consecutive dates fully covering the month. The first and last weeks are
// padded with days from the neighboring months so no week is partial.
func MonthWeeks(year int, month time.Month) ([][]time.Time, error) {
	if year < 1 || month < time.January || month > time.December {
		return nil, ErrInvalidPeriod
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	// Back up to the Monday on or before the 1st.
	startOffset := (int(first.Weekday()) + 6) % 7
	cur := first.AddDate(0, 0, -startOffset)

	// Extend to the Sunday on or after the last day.
	end := last.AddDate(0, 0, (7-int(last.Weekday()))%7)

	var weeks [][]time.Time
	for !cur.After(end) {
		week := make([]time.Time, 7)
		for i := 0; i < 7; i++ {
			week[i] = cur
			cur = cur.AddDate(0, 0, 1)
		}
		weeks = append(weeks, week)
	}
	return weeks, nil
}

func isoDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func weekdayName(t time.Time) string {
	return t.Weekday().String()
}
