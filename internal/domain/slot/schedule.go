package slot

import (
	"time"

	"github.com/BruksfildServices01/escape-booking/internal/models"
	"github.com/BruksfildServices01/escape-booking/internal/timezone"
)

// ValidateSchedule checks a recurrence rule before it is stored.
func ValidateSchedule(s *models.Schedule) error {
	if s.RoomID == 0 || s.DurationMinutes <= 0 || s.BufferMinutes < 0 || s.RepeatTimes <= 0 {
		return ErrInvalidSchedule
	}
	if s.EndDate.Before(s.StartDate) {
		return ErrInvalidSchedule
	}
	if _, err := time.Parse("15:04", s.StartTime); err != nil {
		return ErrInvalidSchedule
	}
	if _, err := timezone.ParseWeekdays(s.DaysOfWeek); err != nil {
		return ErrInvalidSchedule
	}
	return nil
}

// ExpandSchedule turns a rule into candidate slots, one run of RepeatTimes
// back-to-back slots per matching day. Days before today are skipped.
// Calendar dates are read in today's location.
func ExpandSchedule(s *models.Schedule, today time.Time) ([]models.Slot, error) {
	if err := ValidateSchedule(s); err != nil {
		return nil, err
	}

	loc := today.Location()
	days, _ := timezone.ParseWeekdays(s.DaysOfWeek)
	clock, _ := time.Parse("15:04", s.StartTime)
	step := time.Duration(s.DurationMinutes+s.BufferMinutes) * time.Minute

	first := timezone.DayStart(s.StartDate, loc)
	if t := timezone.DayStart(today, loc); t.After(first) {
		first = t
	}
	last := timezone.DayStart(s.EndDate, loc)

	var out []models.Slot
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		if !days[timezone.Weekday(day)] {
			continue
		}

		cursor := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, loc)
		for i := 0; i < s.RepeatTimes; i++ {
			id := s.ID
			sl := models.Slot{
				RoomID:     s.RoomID,
				ScheduleID: &id,
				Start:      cursor,
				Duration:   s.DurationMinutes,
				Buffer:     s.BufferMinutes,
				IsEnabled:  true,
			}
			if err := Normalize(&sl); err != nil {
				return nil, err
			}
			out = append(out, sl)
			cursor = cursor.Add(step)
		}
	}

	return out, nil
}
