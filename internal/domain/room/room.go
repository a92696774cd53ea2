package room

import (
	"context"
	"regexp"
	"strings"

	"github.com/BruksfildServices01/escape-booking/internal/httperr"
	"github.com/BruksfildServices01/escape-booking/internal/models"
)

var (
	ErrRoomNotFound    = httperr.ErrBusiness("room_not_found")
	ErrInvalidRoom     = httperr.ErrBusiness("invalid_room")
	ErrInvalidProduct  = httperr.ErrBusiness("invalid_product")
	ErrGroupNotFound   = httperr.ErrBusiness("product_group_not_found")
	ErrProductNotFound = httperr.ErrBusiness("product_not_found")
	ErrInvalidPhoto    = httperr.ErrBusiness("invalid_photo")
)

var hexColour = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

type Repository interface {
	// -------- Room --------
	ListRooms(ctx context.Context, activeOnly bool) ([]models.Room, error)
	GetRoom(ctx context.Context, id uint) (*models.Room, error)
	SaveRoom(ctx context.Context, r *models.Room) error

	// -------- Catalog --------
	GetProductGroup(ctx context.Context, id uint) (*models.ProductGroup, error)
	SaveProductGroup(ctx context.Context, g *models.ProductGroup) error
	SaveProduct(ctx context.Context, p *models.Product) error
	ListProductGroups(ctx context.Context, kind models.ProductGroupKind) ([]models.ProductGroup, error)
}

func ValidateRoom(r *models.Room) error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" || len(r.Name) > 50 {
		return ErrInvalidRoom
	}
	if r.ThemeColour != "" && !hexColour.MatchString(r.ThemeColour) {
		return ErrInvalidRoom
	}
	return nil
}

func ValidateProductGroup(g *models.ProductGroup) error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrInvalidProduct
	}
	switch g.Kind {
	case models.ProductGroupAppointment:
		if g.RoomID == nil {
			return ErrInvalidProduct
		}
	case models.ProductGroupCoupon:
		if g.ShippingCost.IsNegative() {
			return ErrInvalidProduct
		}
	default:
		return ErrInvalidProduct
	}
	return nil
}

func ValidateProduct(p *models.Product) error {
	if strings.TrimSpace(p.Name) == "" || p.BasePrice.IsNegative() || p.VatFactor.IsNegative() {
		return ErrInvalidProduct
	}
	return nil
}
