package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BruksfildServices01/escape-booking/internal/dbtest"
	"github.com/BruksfildServices01/escape-booking/internal/domain/cart"
	domain "github.com/BruksfildServices01/escape-booking/internal/domain/slot"
	"github.com/BruksfildServices01/escape-booking/internal/infra/repository"
	"github.com/BruksfildServices01/escape-booking/internal/models"
	slotuc "github.com/BruksfildServices01/escape-booking/internal/usecase/slot"
)

func TestScheduleLifecycle(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	repo := repository.NewSlotGormRepository(db)
	save := NewSaveSchedule(slotuc.NewSaveSlot(repo, nil, nil), nil)
	del := NewDeleteSchedule(repo, nil)

	room := dbtest.Room(t, db, "Vault")
	p := dbtest.AppointmentProduct(t, db, room, "90.00")
	manual := dbtest.Slot(t, db, room, dbtest.Day(3).Add(19*time.Hour+30*time.Minute))

	// --------------------------------------------------
	// create: three days, two runs a day, one clash
	// --------------------------------------------------
	s := &models.Schedule{
		RoomID:          room.ID,
		StartDate:       dbtest.Day(2),
		EndDate:         dbtest.Day(4),
		DaysOfWeek:      "0,1,2,3,4,5,6",
		StartTime:       "18:00",
		DurationMinutes: 60,
		BufferMinutes:   30,
		RepeatTimes:     2,
	}
	res, err := save.Execute(ctx, s)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if res.Created != 5 || res.Skipped != 1 || res.Removed != 0 {
		t.Fatalf("create result = %+v", res)
	}

	// --------------------------------------------------
	// book the first generated slot
	// --------------------------------------------------
	generated, err := repo.ListScheduleSlots(ctx, s.ID)
	if err != nil || len(generated) != 5 {
		t.Fatalf("generated slots = %d, err = %v", len(generated), err)
	}
	booked := generated[0]
	if !booked.Start.Equal(dbtest.Day(2).Add(18 * time.Hour)) {
		t.Fatalf("first generated slot starts at %s", booked.Start)
	}
	c := &models.Cart{Token: "done", Status: string(cart.StatusCompleted)}
	db.Create(c)
	id := booked.ID
	db.Omit("Cart", "Product", "Slot").Create(&models.CartItem{CartID: c.ID, ProductID: p.ID, Kind: models.CartItemAppointment, SlotID: &id})

	// --------------------------------------------------
	// update: one run at 17:00; the booked slot survives
	// --------------------------------------------------
	s.StartTime = "17:00"
	s.RepeatTimes = 1
	res, err = save.Execute(ctx, s)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if res.Removed != 4 || res.Created != 2 || res.Skipped != 1 {
		t.Fatalf("update result = %+v", res)
	}

	kept, err := repo.GetSlot(ctx, booked.ID)
	if err != nil || !domain.IsBooked(kept) {
		t.Fatalf("booked slot lost: %v", err)
	}

	// --------------------------------------------------
	// delete: only booked and manual slots remain
	// --------------------------------------------------
	if err := del.Execute(ctx, s.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var left []models.Slot
	db.Order("start ASC").Find(&left)
	if len(left) != 2 || left[0].ID != booked.ID || left[1].ID != manual.ID {
		t.Fatalf("slots left = %+v", left)
	}
	if left[0].ScheduleID != nil {
		t.Fatal("booked slot still points at the deleted schedule")
	}

	if err := del.Execute(ctx, s.ID); err != domain.ErrScheduleNotFound {
		t.Fatalf("second delete: err = %v", err)
	}
}

func TestSaveScheduleRejectsInvalidRule(t *testing.T) {
	db := dbtest.Open(t)
	repo := repository.NewSlotGormRepository(db)
	save := NewSaveSchedule(slotuc.NewSaveSlot(repo, nil, nil), nil)

	room := dbtest.Room(t, db, "Vault")
	_, err := save.Execute(context.Background(), &models.Schedule{
		RoomID:          room.ID,
		StartDate:       dbtest.Day(4),
		EndDate:         dbtest.Day(2),
		DaysOfWeek:      "0",
		StartTime:       "18:00",
		DurationMinutes: 60,
		RepeatTimes:     1,
	})
	if err != domain.ErrInvalidSchedule {
		t.Fatalf("err = %v", err)
	}
}

// failingCreates lets the first n slot inserts through and fails the rest.
type failingCreates struct {
	domain.Repository
	left *int
}

func (r failingCreates) Transaction(ctx context.Context, fn func(tx domain.Repository) error) error {
	return r.Repository.Transaction(ctx, func(tx domain.Repository) error {
		return fn(failingCreates{Repository: tx, left: r.left})
	})
}

func (r failingCreates) CreateSlot(ctx context.Context, s *models.Slot) error {
	if *r.left == 0 {
		return errors.New("insert refused")
	}
	*r.left--
	return r.Repository.CreateSlot(ctx, s)
}

func TestSaveScheduleRollsBackFailedUpdate(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	repo := repository.NewSlotGormRepository(db)

	room := dbtest.Room(t, db, "Vault")
	dbtest.AppointmentProduct(t, db, room, "90.00")

	s := &models.Schedule{
		RoomID:          room.ID,
		StartDate:       dbtest.Day(2),
		EndDate:         dbtest.Day(3),
		DaysOfWeek:      "0,1,2,3,4,5,6",
		StartTime:       "18:00",
		DurationMinutes: 60,
		BufferMinutes:   30,
		RepeatTimes:     1,
	}
	if _, err := NewSaveSchedule(slotuc.NewSaveSlot(repo, nil, nil), nil).Execute(ctx, s); err != nil {
		t.Fatalf("create: %v", err)
	}

	// second generated slot fails to insert
	left := 1
	flaky := failingCreates{Repository: repo, left: &left}
	update := &models.Schedule{}
	*update = *s
	update.StartTime = "17:00"

	if _, err := NewSaveSchedule(slotuc.NewSaveSlot(flaky, nil, nil), nil).Execute(ctx, update); err == nil {
		t.Fatal("update succeeded with a failing insert")
	}

	stored, err := repo.GetSchedule(ctx, s.ID)
	if err != nil {
		t.Fatalf("schedule lost: %v", err)
	}
	if stored.StartTime != "18:00" {
		t.Fatalf("rule changed to %s", stored.StartTime)
	}

	slots, err := repo.ListScheduleSlots(ctx, s.ID)
	if err != nil || len(slots) != 2 {
		t.Fatalf("slots = %d, err = %v", len(slots), err)
	}
	for _, sl := range slots {
		if sl.Start.UTC().Hour() != 18 {
			t.Fatalf("slot at %s survived the rollback", sl.Start)
		}
	}
}
