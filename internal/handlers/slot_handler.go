package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/escape-booking/internal/dto"
	"github.com/BruksfildServices01/escape-booking/internal/httperr"
	"github.com/BruksfildServices01/escape-booking/internal/models"
	ucSchedule "github.com/BruksfildServices01/escape-booking/internal/usecase/schedule"
	ucSlot "github.com/BruksfildServices01/escape-booking/internal/usecase/slot"
)

const (
	defaultDurationMinutes = 60
	defaultBufferMinutes   = 30
)

// ======================================================
// HANDLER
// ======================================================

type SlotHandler struct {
	saveSlot       *ucSlot.SaveSlot
	deleteSlot     *ucSlot.DeleteSlot
	saveSchedule   *ucSchedule.SaveSchedule
	deleteSchedule *ucSchedule.DeleteSchedule
}

func NewSlotHandler(
	saveSlot *ucSlot.SaveSlot,
	deleteSlot *ucSlot.DeleteSlot,
	saveSchedule *ucSchedule.SaveSchedule,
	deleteSchedule *ucSchedule.DeleteSchedule,
) *SlotHandler {
	return &SlotHandler{
		saveSlot:       saveSlot,
		deleteSlot:     deleteSlot,
		saveSchedule:   saveSchedule,
		deleteSchedule: deleteSchedule,
	}
}

// ======================================================
// INPUT
// ======================================================

func slotFromInput(in dto.SlotInput) (*models.Slot, bool) {
	start, err := parseDateTime(in.Date, in.Time)
	if err != nil {
		return nil, false
	}

	s := &models.Slot{
		RoomID:    in.RoomID,
		Start:     start,
		Duration:  defaultDurationMinutes,
		Buffer:    defaultBufferMinutes,
		IsEnabled: true,
	}
	if in.Duration != 0 {
		s.Duration = in.Duration
	}
	if in.Buffer != nil {
		s.Buffer = *in.Buffer
	}
	if in.IsEnabled != nil {
		s.IsEnabled = *in.IsEnabled
	}
	return s, true
}

func scheduleFromInput(in dto.ScheduleInput) (*models.Schedule, bool) {
	startDate, err := parseDate(in.StartDate)
	if err != nil {
		return nil, false
	}
	endDate, err := parseDate(in.EndDate)
	if err != nil {
		return nil, false
	}

	s := &models.Schedule{
		RoomID:          in.RoomID,
		StartDate:       startDate,
		EndDate:         endDate,
		DaysOfWeek:      in.DaysOfWeek,
		StartTime:       in.StartTime,
		DurationMinutes: defaultDurationMinutes,
		BufferMinutes:   defaultBufferMinutes,
		RepeatTimes:     1,
	}
	if in.DurationMinutes != 0 {
		s.DurationMinutes = in.DurationMinutes
	}
	if in.BufferMinutes != nil {
		s.BufferMinutes = *in.BufferMinutes
	}
	if in.RepeatTimes != 0 {
		s.RepeatTimes = in.RepeatTimes
	}
	return s, true
}

// ======================================================
// SLOTS
// ======================================================

func (h *SlotHandler) CreateSlot(c *gin.Context) {
	h.writeSlot(c, 0)
}

func (h *SlotHandler) UpdateSlot(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_slot_id", "Invalid slot.")
		return
	}
	h.writeSlot(c, id)
}

func (h *SlotHandler) writeSlot(c *gin.Context, id uint) {
	var req dto.SlotInput
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	s, ok := slotFromInput(req)
	if !ok {
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
		return
	}
	s.ID = id

	if err := h.saveSlot.Execute(c.Request.Context(), s, "manual"); err != nil {
		writeError(c, err, "failed_to_save_slot")
		return
	}

	status := http.StatusOK
	if id == 0 {
		status = http.StatusCreated
	}
	c.JSON(status, s)
}

func (h *SlotHandler) DeleteSlot(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_slot_id", "Invalid slot.")
		return
	}

	if err := h.deleteSlot.Execute(c.Request.Context(), id); err != nil {
		writeError(c, err, "failed_to_delete_slot")
		return
	}
	c.Status(http.StatusNoContent)
}

// ======================================================
// SCHEDULES
// ======================================================

func (h *SlotHandler) CreateSchedule(c *gin.Context) {
	h.writeSchedule(c, 0)
}

func (h *SlotHandler) UpdateSchedule(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_schedule_id", "Invalid schedule.")
		return
	}
	h.writeSchedule(c, id)
}

func (h *SlotHandler) writeSchedule(c *gin.Context, id uint) {
	var req dto.ScheduleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	s, ok := scheduleFromInput(req)
	if !ok {
		httperr.BadRequest(c, "invalid_date", "Use YYYY-MM-DD.")
		return
	}
	s.ID = id

	res, err := h.saveSchedule.Execute(c.Request.Context(), s)
	if err != nil {
		writeError(c, err, "failed_to_save_schedule")
		return
	}

	status := http.StatusOK
	if id == 0 {
		status = http.StatusCreated
	}
	c.JSON(status, res)
}

func (h *SlotHandler) DeleteSchedule(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_schedule_id", "Invalid schedule.")
		return
	}

	if err := h.deleteSchedule.Execute(c.Request.Context(), id); err != nil {
		writeError(c, err, "failed_to_delete_schedule")
		return
	}
	c.Status(http.StatusNoContent)
}
