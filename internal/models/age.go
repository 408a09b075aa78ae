package models

import "time"

// UnknownAge is returned when the birth date is not known.
const UnknownAge = -1

// AgeAt returns whole years between birth and the date of now shifted by
// tzHours. Every February 29 lying between the two dates is taken out before
// dividing by 365, so the age changes on the birthday itself whether or not
// the birth year was a leap year. Someone born on February 29 turns a year
// older on February 28 of common years.
func AgeAt(birth *time.Time, tzHours int, now time.Time) int {
	if birth == nil {
		return UnknownAge
	}

	today := dateOf(now.UTC().Add(time.Duration(tzHours) * time.Hour))
	birthday := dateOf(*birth)

	days := int(today.Sub(birthday) / (24 * time.Hour))
	leap := feb29sBetween(birthday, today) - feb29sBetween(today, birthday)
	return floorDiv(days-leap, 365)
}

// feb29sBetween counts February 29 dates in (from, to]; zero when to is not
// after from.
func feb29sBetween(from, to time.Time) int {
	if !to.After(from) {
		return 0
	}
	n := leapDays(from.Year(), to.Year()+1)
	if isLeap(from.Year()) && !from.Before(feb29(from.Year())) {
		n--
	}
	if isLeap(to.Year()) && to.Before(feb29(to.Year())) {
		n--
	}
	return n
}

// leapDays counts leap years in [y1, y2).
func leapDays(y1, y2 int) int {
	y1--
	y2--
	return (floorDiv(y2, 4) - floorDiv(y1, 4)) -
		(floorDiv(y2, 100) - floorDiv(y1, 100)) +
		(floorDiv(y2, 400) - floorDiv(y1, 400))
}

func isLeap(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

func feb29(y int) time.Time {
	return time.Date(y, time.February, 29, 0, 0, 0, 0, time.UTC)
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
