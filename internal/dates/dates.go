// Package dates holds the calendar math shared by the views: day keys,
// trailing windows and ISO week identifiers.
package dates

import (
	"fmt"
	"regexp"
	"time"
)

// DayKey formats a time as the canonical YYYY-MM-DD record key.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// WindowStart returns the day key n months before t. Used for the
// trailing three-month history and suggestion windows.
func WindowStart(t time.Time, months int) string {
	return DayKey(t.AddDate(0, -months, 0))
}

var weekIDRe = regexp.MustCompile(`^(\d{4})-W(\d{2})$`)

// WeekIDAt returns the ISO week identifier (YYYY-Www) containing t.
func WeekIDAt(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// ParseWeekID splits a YYYY-Www identifier into year and week number.
func ParseWeekID(weekID string) (year, week int, err error) {
	m := weekIDRe.FindStringSubmatch(weekID)
	if m == nil {
		return 0, 0, fmt.Errorf("invalid week id %q", weekID)
	}
	fmt.Sscanf(m[1], "%d", &year)
	fmt.Sscanf(m[2], "%d", &week)
	if week < 1 || week > WeeksInYear(year) {
		return 0, 0, fmt.Errorf("invalid week id %q: year %d has %d weeks", weekID, year, WeeksInYear(year))
	}
	return year, week, nil
}

// WeeksInYear returns the number of ISO weeks in the given year (52 or
// 53). December 28th always falls in the last ISO week of its year.
func WeeksInYear(year int) int {
	_, w := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return w
}

// PrevWeekID returns the identifier of the week before weekID, rolling
// into the last ISO week of the previous year at the boundary.
func PrevWeekID(weekID string) (string, error) {
	year, week, err := ParseWeekID(weekID)
	if err != nil {
		return "", err
	}
	if week > 1 {
		return fmt.Sprintf("%d-W%02d", year, week-1), nil
	}
	return fmt.Sprintf("%d-W%02d", year-1, WeeksInYear(year-1)), nil
}

// NextWeekID returns the identifier of the week after weekID.
func NextWeekID(weekID string) (string, error) {
	year, week, err := ParseWeekID(weekID)
	if err != nil {
		return "", err
	}
	if week < WeeksInYear(year) {
		return fmt.Sprintf("%d-W%02d", year, week+1), nil
	}
	return fmt.Sprintf("%d-W01", year+1), nil
}

// WeekBounds resolves a week identifier to its Monday start and Sunday
// end day keys.
func WeekBounds(weekID string) (start, end string, err error) {
	year, week, err := ParseWeekID(weekID)
	if err != nil {
		return "", "", err
	}
	// January 4th is always in ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	monday := jan4.AddDate(0, 0, 1-weekday+(week-1)*7)
	return DayKey(monday), DayKey(monday.AddDate(0, 0, 6)), nil
}
