package slot

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/escape-booking/internal/dbtest"
	domain "github.com/BruksfildServices01/escape-booking/internal/domain/slot"
	"github.com/BruksfildServices01/escape-booking/internal/httperr"
	"github.com/BruksfildServices01/escape-booking/internal/infra/repository"
	"github.com/BruksfildServices01/escape-booking/internal/models"
)

func newSlot(roomID uint, start time.Time) *models.Slot {
	return &models.Slot{RoomID: roomID, Start: start, Duration: 60, Buffer: 30, IsEnabled: true}
}

func TestSaveSlotRejectsOverlap(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	uc := NewSaveSlot(repository.NewSlotGormRepository(db), nil, nil)

	vault := dbtest.Room(t, db, "Vault")
	lab := dbtest.Room(t, db, "Lab")
	day := dbtest.Day(5)

	first := newSlot(vault.ID, day.Add(18*time.Hour+30*time.Second))
	if err := uc.Execute(ctx, first, "manual"); err != nil {
		t.Fatalf("first slot: %v", err)
	}
	if first.Start.Second() != 0 || !first.BlockEnd.Equal(day.Add(19*time.Hour+30*time.Minute)) {
		t.Fatalf("not normalized: start %v block end %v", first.Start, first.BlockEnd)
	}

	clash := newSlot(vault.ID, day.Add(19*time.Hour))
	if err := uc.Execute(ctx, clash, "manual"); !httperr.IsBusiness(err, "slot_overlaps") {
		t.Fatalf("overlap: err = %v", err)
	}
	if clash.ID != 0 {
		t.Fatal("rejected slot kept an id")
	}

	// starts exactly at the previous block end
	touching := newSlot(vault.ID, day.Add(19*time.Hour+30*time.Minute))
	if err := uc.Execute(ctx, touching, "manual"); err != nil {
		t.Fatalf("touching slot: %v", err)
	}

	// other rooms are independent
	parallel := newSlot(lab.ID, day.Add(18*time.Hour))
	if err := uc.Execute(ctx, parallel, "manual"); err != nil {
		t.Fatalf("parallel slot: %v", err)
	}

	var n int64
	db.Model(&models.Slot{}).Count(&n)
	if n != 3 {
		t.Fatalf("%d slots stored, want 3", n)
	}
}

func TestSaveSlotUpdateIgnoresItself(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	uc := NewSaveSlot(repository.NewSlotGormRepository(db), nil, nil)

	room := dbtest.Room(t, db, "Vault")
	day := dbtest.Day(5)

	s := newSlot(room.ID, day.Add(18*time.Hour))
	if err := uc.Execute(ctx, s, "manual"); err != nil {
		t.Fatal(err)
	}

	moved := newSlot(room.ID, day.Add(18*time.Hour+15*time.Minute))
	moved.ID = s.ID
	if err := uc.Execute(ctx, moved, "manual"); err != nil {
		t.Fatalf("move onto own block: %v", err)
	}

	missing := newSlot(room.ID, day.Add(10*time.Hour))
	missing.ID = 999
	if err := uc.Execute(ctx, missing, "manual"); err != domain.ErrSlotNotFound {
		t.Fatalf("unknown id: err = %v", err)
	}
}

func TestSaveSlotUnknownRoom(t *testing.T) {
	db := dbtest.Open(t)
	uc := NewSaveSlot(repository.NewSlotGormRepository(db), nil, nil)

	err := uc.Execute(context.Background(), newSlot(42, dbtest.Day(5).Add(18*time.Hour)), "manual")
	if err != ErrRoomNotFound {
		t.Fatalf("err = %v", err)
	}
}

func TestDeleteSlotRefusesBooked(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	repo := repository.NewSlotGormRepository(db)
	del := NewDeleteSlot(repo, nil)

	room := dbtest.Room(t, db, "Vault")
	p := dbtest.AppointmentProduct(t, db, room, "90.00")
	booked := dbtest.Slot(t, db, room, dbtest.Day(5).Add(18*time.Hour))
	free := dbtest.Slot(t, db, room, dbtest.Day(5).Add(20*time.Hour))

	cart := &models.Cart{Token: "done", Status: "completed"}
	db.Create(cart)
	id := booked.ID
	db.Omit("Cart", "Product", "Slot").Create(&models.CartItem{CartID: cart.ID, ProductID: p.ID, Kind: models.CartItemAppointment, SlotID: &id})

	if err := del.Execute(ctx, booked.ID); err != domain.ErrSlotBooked {
		t.Fatalf("booked: err = %v", err)
	}
	if err := del.Execute(ctx, free.ID); err != nil {
		t.Fatalf("free: %v", err)
	}
	if err := del.Execute(ctx, free.ID); err != domain.ErrSlotNotFound {
		t.Fatalf("gone: err = %v", err)
	}
}

func TestCalendarDay(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	repo := repository.NewSlotGormRepository(db)
	cal := NewCalendar(repo)

	vault := dbtest.Room(t, db, "Vault")
	lab := dbtest.Room(t, db, "Lab")
	dbtest.AppointmentProduct(t, db, vault, "120.00")
	dbtest.AppointmentProduct(t, db, vault, "89.00")

	day := dbtest.Day(5)
	a := dbtest.Slot(t, db, vault, day.Add(18*time.Hour))
	b := dbtest.Slot(t, db, lab, day.Add(18*time.Hour))
	off := dbtest.Slot(t, db, vault, day.Add(21*time.Hour))
	db.Model(off).Update("is_enabled", false)
	dbtest.Slot(t, db, vault, day.AddDate(0, 0, 1).Add(18*time.Hour))

	evs, err := cal.Day(ctx, day, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(evs) != 3 {
		t.Fatalf("%d slots, want 3", len(evs))
	}

	byID := map[uint]Evaluation{}
	for _, ev := range evs {
		byID[ev.Slot.ID] = ev
	}

	if ev := byID[a.ID]; ev.State != domain.StateFree || ev.FromPrice == nil || !ev.FromPrice.Equal(decimal.RequireFromString("89")) {
		t.Fatalf("vault slot = %+v", ev)
	}
	if ev := byID[b.ID]; ev.FromPrice != nil {
		t.Fatalf("lab has no products, from price = %v", ev.FromPrice)
	}
	if ev := byID[off.ID]; ev.State != domain.StateHidden || ev.Visible {
		t.Fatalf("disabled slot = %s visible %v", ev.State, ev.Visible)
	}

	only, _ := cal.Day(ctx, day, lab.ID)
	if len(only) != 1 || only[0].Slot.ID != b.ID {
		t.Fatalf("room filter = %+v", only)
	}

	days, err := cal.DaysAvailable(ctx, day.Year(), day.Month())
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, d := range days {
		if d.Equal(day) {
			found = true
		}
	}
	if !found {
		t.Fatalf("%s missing from %v", day.Format("2006-01-02"), days)
	}
}
