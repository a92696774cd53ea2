package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/escape-booking/internal/dbtest"
	domain "github.com/BruksfildServices01/escape-booking/internal/domain/slot"
	"github.com/BruksfildServices01/escape-booking/internal/models"
)

func TestSlotQueryFilters(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	repo := NewSlotGormRepository(db)

	room := dbtest.Room(t, db, "Vault")
	day := dbtest.Day(3)
	a := dbtest.Slot(t, db, room, day.Add(10*time.Hour))             // 10:00-11:30
	b := dbtest.Slot(t, db, room, day.Add(12*time.Hour))             // 12:00-13:30
	c := dbtest.Slot(t, db, room, day.AddDate(0, 0, 1).Add(time.Hour)) // next day

	got, err := repo.OnDay(ctx, day.Add(15*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != a.ID || got[1].ID != b.ID {
		t.Fatalf("OnDay = %v", slotIDs(got))
	}

	got, _ = repo.StartBetween(ctx, day.Add(12*time.Hour), day.Add(26*time.Hour))
	if len(got) != 2 || got[0].ID != b.ID || got[1].ID != c.ID {
		t.Fatalf("StartBetween = %v", slotIDs(got))
	}

	got, _ = repo.BlockEndBetween(ctx, day.Add(11*time.Hour+30*time.Minute), day.Add(12*time.Hour))
	if len(got) != 1 || got[0].ID != a.ID {
		t.Fatalf("BlockEndBetween = %v", slotIDs(got))
	}

	// both ends inclusive: a ends at 11:30, b starts at 12:00
	got, _ = repo.Touching(ctx, day.Add(11*time.Hour+30*time.Minute), day.Add(12*time.Hour))
	if len(got) != 2 {
		t.Fatalf("Touching = %v", slotIDs(got))
	}
}

func TestListSameRoomOverlapping(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	repo := NewSlotGormRepository(db)

	vault := dbtest.Room(t, db, "Vault")
	lab := dbtest.Room(t, db, "Lab")
	day := dbtest.Day(3)
	a := dbtest.Slot(t, db, vault, day.Add(10*time.Hour))
	dbtest.Slot(t, db, lab, day.Add(10*time.Hour))

	got, err := repo.ListSameRoomOverlapping(ctx, vault.ID, domain.Block{
		Start: day.Add(11 * time.Hour),
		End:   day.Add(12 * time.Hour),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != a.ID {
		t.Fatalf("overlapping = %v", slotIDs(got))
	}

	// touching the block end is not an overlap
	got, _ = repo.ListSameRoomOverlapping(ctx, vault.ID, domain.Block{
		Start: day.Add(11*time.Hour + 30*time.Minute),
		End:   day.Add(13 * time.Hour),
	})
	if len(got) != 0 {
		t.Fatalf("touching counted as overlap: %v", slotIDs(got))
	}
}

func TestDeleteSlotDropsReservation(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	repo := NewSlotGormRepository(db)

	room := dbtest.Room(t, db, "Vault")
	p := dbtest.AppointmentProduct(t, db, room, "90.00")
	s := dbtest.Slot(t, db, room, dbtest.Day(3).Add(18*time.Hour))

	cart := &models.Cart{Token: "t-1", Status: "open"}
	db.Create(cart)
	slotID := s.ID
	item := &models.CartItem{CartID: cart.ID, ProductID: p.ID, Kind: models.CartItemAppointment, SlotID: &slotID}
	if err := db.Omit("Cart", "Product", "Slot").Create(item).Error; err != nil {
		t.Fatal(err)
	}

	loaded, err := repo.GetSlot(ctx, s.ID)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.AppointmentItem == nil || loaded.AppointmentItem.Cart == nil {
		t.Fatal("appointment item not preloaded")
	}

	if err := repo.DeleteSlot(ctx, s.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var n int64
	db.Model(&models.CartItem{}).Count(&n)
	if n != 0 {
		t.Fatalf("%d cart items left", n)
	}
}

func TestDeleteSlotRefusesCompletedCart(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	repo := NewSlotGormRepository(db)

	room := dbtest.Room(t, db, "Vault")
	p := dbtest.AppointmentProduct(t, db, room, "90.00")
	s := dbtest.Slot(t, db, room, dbtest.Day(3).Add(18*time.Hour))

	paid := &models.Cart{Token: "t-paid", Status: "completed"}
	db.Create(paid)
	slotID := s.ID
	item := &models.CartItem{CartID: paid.ID, ProductID: p.ID, Kind: models.CartItemAppointment, SlotID: &slotID}
	if err := db.Omit("Cart", "Product", "Slot").Create(item).Error; err != nil {
		t.Fatal(err)
	}

	if err := repo.DeleteSlot(ctx, s.ID); err != domain.ErrSlotBooked {
		t.Fatalf("err = %v", err)
	}

	var n int64
	db.Model(&models.CartItem{}).Where("slot_id = ?", s.ID).Count(&n)
	if n != 1 {
		t.Fatalf("%d cart items left", n)
	}
	if _, err := repo.GetSlot(ctx, s.ID); err != nil {
		t.Fatalf("slot gone: %v", err)
	}
}

func TestDeleteScheduleKeepsSlots(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	repo := NewSlotGormRepository(db)

	room := dbtest.Room(t, db, "Vault")
	sched := &models.Schedule{
		RoomID:          room.ID,
		StartDate:       dbtest.Day(1),
		EndDate:         dbtest.Day(2),
		DaysOfWeek:      "0,1,2,3,4,5,6",
		StartTime:       "18:00",
		DurationMinutes: 60,
		BufferMinutes:   30,
		RepeatTimes:     1,
	}
	if err := repo.SaveSchedule(ctx, sched); err != nil {
		t.Fatal(err)
	}

	s := dbtest.Slot(t, db, room, dbtest.Day(1).Add(18*time.Hour))
	db.Model(s).Update("schedule_id", sched.ID)

	if err := repo.DeleteSchedule(ctx, sched.ID); err != nil {
		t.Fatalf("delete schedule: %v", err)
	}

	kept, err := repo.GetSlot(ctx, s.ID)
	if err != nil {
		t.Fatalf("slot gone: %v", err)
	}
	if kept.ScheduleID != nil {
		t.Fatalf("schedule id = %v", *kept.ScheduleID)
	}
}

func TestListRoomProducts(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewSlotGormRepository(db)

	vault := dbtest.Room(t, db, "Vault")
	lab := dbtest.Room(t, db, "Lab")
	dbtest.AppointmentProduct(t, db, vault, "120.00")
	dbtest.AppointmentProduct(t, db, vault, "89.00")
	dbtest.AppointmentProduct(t, db, lab, "50.00")
	dbtest.CouponProduct(t, db, "20.00", "0")

	got, err := repo.ListRoomProducts(context.Background(), vault.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || !got[0].BasePrice.Equal(decimal.RequireFromString("89")) {
		t.Fatalf("products = %+v", got)
	}
}

func slotIDs(slots []models.Slot) []uint {
	out := make([]uint, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.ID)
	}
	return out
}
