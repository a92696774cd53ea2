package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/escape-booking/internal/domain/room"
	"github.com/BruksfildServices01/escape-booking/internal/models"
)

type RoomGormRepository struct {
	db *gorm.DB
}

func NewRoomGormRepository(db *gorm.DB) *RoomGormRepository {
	return &RoomGormRepository{db: db}
}

// --------------------------------------------------
// Room
// --------------------------------------------------

func (r *RoomGormRepository) ListRooms(ctx context.Context, activeOnly bool) ([]models.Room, error) {
	q := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var rooms []models.Room
	if err := q.Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *RoomGormRepository) GetRoom(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *RoomGormRepository) SaveRoom(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *RoomGormRepository) GetProductGroup(ctx context.Context, id uint) (*models.ProductGroup, error) {
	var g models.ProductGroup
	if err := r.db.WithContext(ctx).First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *RoomGormRepository) SaveProductGroup(ctx context.Context, g *models.ProductGroup) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(g).Error
}

func (r *RoomGormRepository) SaveProduct(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error
}

func (r *RoomGormRepository) ListProductGroups(ctx context.Context, kind models.ProductGroupKind) ([]models.ProductGroup, error) {
	var groups []models.ProductGroup
	if err := r.db.WithContext(ctx).
		Preload("Products", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_purchasable = ?", true).Order("base_price ASC")
		}).
		Where("kind = ?", kind).
		Order("name ASC").
		Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// Compile-time check
var _ domain.Repository = (*RoomGormRepository)(nil)
