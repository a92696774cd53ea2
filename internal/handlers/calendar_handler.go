package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/escape-booking/internal/domain/slot"
	"github.com/BruksfildServices01/escape-booking/internal/dto"
	"github.com/BruksfildServices01/escape-booking/internal/httperr"
	"github.com/BruksfildServices01/escape-booking/internal/httpresp"
	"github.com/BruksfildServices01/escape-booking/internal/timezone"
	ucSlot "github.com/BruksfildServices01/escape-booking/internal/usecase/slot"
)

// ======================================================
// HANDLER
// ======================================================

type CalendarHandler struct {
	calendar *ucSlot.Calendar
}

func NewCalendarHandler(calendar *ucSlot.Calendar) *CalendarHandler {
	return &CalendarHandler{calendar: calendar}
}

// ======================================================
// MAPPING
// ======================================================

func publicSlot(ev ucSlot.Evaluation) dto.PublicSlotDTO {
	return dto.PublicSlotDTO{
		ID:                ev.Slot.ID,
		RoomID:            ev.Slot.RoomID,
		Start:             ev.Slot.Start,
		AppointmentEnd:    ev.Slot.AppointmentEnd,
		Visible:           ev.Visible,
		Available:         ev.State == domain.StateFree && !ev.Reserved,
		FromPrice:         ev.FromPrice,
		IncentiveDiscount: ev.IncentiveDiscount,
	}
}

func staffSlot(ev ucSlot.Evaluation) dto.StaffSlotDTO {
	return dto.StaffSlotDTO{
		PublicSlotDTO: publicSlot(ev),
		ScheduleID:    ev.Slot.ScheduleID,
		BlockEnd:      ev.Slot.BlockEnd,
		IsEnabled:     ev.Slot.IsEnabled,
		State:         string(ev.State),
		Booked:        ev.Booked,
		Reserved:      ev.Reserved,
	}
}

func (h *CalendarHandler) day(c *gin.Context) ([]ucSlot.Evaluation, bool) {
	day := timezone.Now()
	if d := c.Query("date"); d != "" {
		parsed, err := parseDate(d)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Use YYYY-MM-DD.")
			return nil, false
		}
		day = parsed
	}

	var roomID uint
	if r := c.Query("room_id"); r != "" {
		id, err := strconv.ParseUint(r, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_room_id", "Invalid room.")
			return nil, false
		}
		roomID = uint(id)
	}

	evs, err := h.calendar.Day(c.Request.Context(), day, roomID)
	if err != nil {
		writeError(c, err, "calendar_failed")
		return nil, false
	}
	return evs, true
}

// ======================================================
// PUBLIC
// ======================================================

// Day lists the slots of one date as customers see them. Unavailable slots
// are left out.
func (h *CalendarHandler) Day(c *gin.Context) {
	evs, ok := h.day(c)
	if !ok {
		return
	}

	out := make([]dto.PublicSlotDTO, 0, len(evs))
	for _, ev := range evs {
		if ev.State == domain.StateUnavailable {
			continue
		}
		out = append(out, publicSlot(ev))
	}
	httpresp.List(c, out)
}

// Days lists the dates of a month that still have a bookable slot.
func (h *CalendarHandler) Days(c *gin.Context) {
	now := timezone.Now()
	year, month := now.Year(), now.Month()

	if m := c.Query("month"); m != "" {
		parsed, err := time.ParseInLocation("2006-01", m, timezone.Site())
		if err != nil {
			httperr.BadRequest(c, "invalid_month", "Use YYYY-MM.")
			return
		}
		year, month = parsed.Year(), parsed.Month()
	}

	days, err := h.calendar.DaysAvailable(c.Request.Context(), year, month)
	if err != nil {
		writeError(c, err, "calendar_failed")
		return
	}

	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, d.Format("2006-01-02"))
	}
	httpresp.List(c, out)
}

// ======================================================
// STAFF
// ======================================================

func (h *CalendarHandler) StaffDay(c *gin.Context) {
	evs, ok := h.day(c)
	if !ok {
		return
	}

	out := make([]dto.StaffSlotDTO, 0, len(evs))
	for _, ev := range evs {
		out = append(out, staffSlot(ev))
	}
	httpresp.List(c, out)
}
