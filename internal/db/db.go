package db

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/escape-booking/internal/config"
	"github.com/BruksfildServices01/escape-booking/internal/models"
	"github.com/BruksfildServices01/escape-booking/internal/timezone"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	if err := addSlotExclusionConstraint(db); err != nil {
		log.Fatal().Err(err).Msg("failed to add slot exclusion constraint")
	}

	if err := EnsureSettings(db, timezone.Now()); err != nil {
		log.Fatal().Err(err).Msg("failed to bootstrap settings")
	}

	return db
}

// Migrate creates or updates every table. Tests run it against sqlite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Schedule{},
		&models.Slot{},
		&models.AppointmentsSettings{},
		&models.ShopSettings{},
		&models.ProductGroup{},
		&models.Product{},
		&models.Coupon{},
		&models.Cart{},
		&models.CartItem{},
		&models.CartCoupon{},
		&models.Order{},
		&models.OrderItem{},
		&models.AuditLog{},
	)
}

// Two slots of the same room may never share a minute of their block range.
// The use case checks this first; the constraint catches concurrent writers.
func addSlotExclusionConstraint(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return errors.Wrap(err, "btree_gist")
	}

	return db.Exec(`
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_constraint WHERE conname = 'slots_no_overlap'
			) THEN
				ALTER TABLE slots
				ADD CONSTRAINT slots_no_overlap
				EXCLUDE USING gist (room_id WITH =, tstzrange(start, block_end, '[)') WITH &&);
			END IF;
		END $$;
	`).Error
}

// EnsureSettings creates both singleton settings rows with their defaults
// when they are missing.
func EnsureSettings(db *gorm.DB, now time.Time) error {
	appt := models.DefaultAppointmentsSettings(timezone.DayStart(now, now.Location()))
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&appt).Error; err != nil {
		return errors.Wrap(err, "appointments settings")
	}

	shop := models.DefaultShopSettings()
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&shop).Error; err != nil {
		return errors.Wrap(err, "shop settings")
	}

	return nil
}
