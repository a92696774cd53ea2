package timezone

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const DefaultTimezone = "Europe/Berlin"

var site = DefaultTimezone

// SetSite changes the timezone calendar dates are evaluated in.
// Invalid names are ignored.
func SetSite(tz string) {
	if IsValid(tz) {
		site = tz
	}
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Site() *time.Location {
	return Location(site)
}

func Now() time.Time {
	return time.Now().In(Site())
}

// DayStart returns midnight of t's calendar date in loc.
func DayStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// SameDate reports whether a and b fall on the same calendar date in loc.
func SameDate(a, b time.Time, loc *time.Location) bool {
	a, b = a.In(loc), b.In(loc)
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// Weekday numbers days Monday=0 ... Sunday=6.
func Weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// ParseWeekdays reads a comma separated list such as "0,2,4".
func ParseWeekdays(csv string) (map[int]bool, error) {
	days := make(map[int]bool)
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil || d < 0 || d > 6 {
			return nil, fmt.Errorf("invalid weekday %q", part)
		}
		days[d] = true
	}
	return days, nil
}

// AllWeekdays is the default day list for coupons.
const AllWeekdays = "0,1,2,3,4,5,6"
