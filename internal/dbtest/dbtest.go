// Package dbtest opens throwaway sqlite databases for repository and use
// case tests.
package dbtest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/escape-booking/internal/db"
	"github.com/BruksfildServices01/escape-booking/internal/models"
	"github.com/BruksfildServices01/escape-booking/internal/timezone"
)

// Open returns a migrated in-memory database with both settings rows.
// sqlite compares stored times as text, so the site timezone is switched
// to UTC for the whole test binary.
func Open(t *testing.T) *gorm.DB {
	t.Helper()
	timezone.SetSite("UTC")

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name)

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.EnsureSettings(gdb, timezone.Now()); err != nil {
		t.Fatalf("settings: %v", err)
	}
	return gdb
}

// Day returns midnight UTC n days from today.
func Day(n int) time.Time {
	return timezone.DayStart(timezone.Now(), time.UTC).AddDate(0, 0, n)
}

// ======================================================
// FIXTURES
// ======================================================

func Room(t *testing.T, gdb *gorm.DB, name string) *models.Room {
	t.Helper()
	r := &models.Room{Name: name, IsActive: true}
	if err := gdb.Create(r).Error; err != nil {
		t.Fatalf("create room: %v", err)
	}
	return r
}

// AppointmentProduct creates a product group for the room with one
// purchasable product.
func AppointmentProduct(t *testing.T, gdb *gorm.DB, room *models.Room, price string) *models.Product {
	t.Helper()
	roomID := room.ID
	g := &models.ProductGroup{
		Name:         room.Name,
		Kind:         models.ProductGroupAppointment,
		RoomID:       &roomID,
		ShippingCost: decimal.Zero,
	}
	if err := gdb.Create(g).Error; err != nil {
		t.Fatalf("create group: %v", err)
	}
	return product(t, gdb, g, room.Name+" ticket", price)
}

func CouponProduct(t *testing.T, gdb *gorm.DB, price, shipping string) *models.Product {
	t.Helper()
	g := &models.ProductGroup{
		Name:         "Vouchers",
		Kind:         models.ProductGroupCoupon,
		ShippingCost: decimal.RequireFromString(shipping),
	}
	if err := gdb.Create(g).Error; err != nil {
		t.Fatalf("create group: %v", err)
	}
	return product(t, gdb, g, "Voucher "+price, price)
}

func product(t *testing.T, gdb *gorm.DB, g *models.ProductGroup, name, price string) *models.Product {
	t.Helper()
	p := &models.Product{
		ProductGroupID: g.ID,
		Name:           name,
		BasePrice:      decimal.RequireFromString(price),
		VatFactor:      decimal.RequireFromString("0.19"),
		IsPurchasable:  true,
	}
	if err := gdb.Omit("ProductGroup").Create(p).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	p.ProductGroup = *g
	return p
}

// Slot stores a 60+30 minute slot directly, bypassing overlap checks.
func Slot(t *testing.T, gdb *gorm.DB, room *models.Room, start time.Time) *models.Slot {
	t.Helper()
	s := &models.Slot{
		RoomID:         room.ID,
		Start:          start,
		Duration:       60,
		Buffer:         30,
		IsEnabled:      true,
		AppointmentEnd: start.Add(60 * time.Minute),
		BlockEnd:       start.Add(90 * time.Minute),
	}
	if err := gdb.Omit("Room", "Schedule", "AppointmentItem").Create(s).Error; err != nil {
		t.Fatalf("create slot: %v", err)
	}
	return s
}
