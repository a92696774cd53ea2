package room

import (
	"context"
	"errors"
	"io"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/escape-booking/internal/audit"
	domain "github.com/BruksfildServices01/escape-booking/internal/domain/room"
	"github.com/BruksfildServices01/escape-booking/internal/httperr"
	"github.com/BruksfildServices01/escape-booking/internal/infra/storage"
	"github.com/BruksfildServices01/escape-booking/internal/models"
)

var ErrStorageDisabled = httperr.ErrBusiness("photo_storage_disabled")

// PhotoStore uploads encoded room photos.
type PhotoStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	URL(key string) string
}

func notFound(err error, business error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return business
	}
	return pkgerrors.Wrap(err, msg)
}

// ======================================================
// ROOMS
// ======================================================

type ListRooms struct {
	repo domain.Repository
}

func NewListRooms(repo domain.Repository) *ListRooms {
	return &ListRooms{repo: repo}
}

func (uc *ListRooms) Execute(ctx context.Context, activeOnly bool) ([]models.Room, error) {
	rooms, err := uc.repo.ListRooms(ctx, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list rooms")
	}
	return rooms, nil
}

type SaveRoom struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSaveRoom(repo domain.Repository, audit *audit.Dispatcher) *SaveRoom {
	return &SaveRoom{repo: repo, audit: audit}
}

// Execute creates the room when r.ID is zero and replaces it otherwise.
// The photo key is owned by UploadRoomPhoto and survives updates.
func (uc *SaveRoom) Execute(ctx context.Context, r *models.Room, userID *uint) error {
	if err := domain.ValidateRoom(r); err != nil {
		return err
	}

	action := "room_created"
	if r.ID != 0 {
		existing, err := uc.repo.GetRoom(ctx, r.ID)
		if err != nil {
			return notFound(err, domain.ErrRoomNotFound, "load room")
		}
		r.PhotoKey = existing.PhotoKey
		r.CreatedAt = existing.CreatedAt
		action = "room_updated"
	}

	if err := uc.repo.SaveRoom(ctx, r); err != nil {
		return pkgerrors.Wrap(err, "save room")
	}

	uc.audit.Dispatch(audit.Event{UserID: userID, Action: action, Entity: "room", EntityID: &r.ID})
	return nil
}

// UploadRoomPhoto re-encodes an uploaded image and stores it as the
// room's photo.
type UploadRoomPhoto struct {
	repo  domain.Repository
	store PhotoStore
	audit *audit.Dispatcher
}

func NewUploadRoomPhoto(repo domain.Repository, store PhotoStore, audit *audit.Dispatcher) *UploadRoomPhoto {
	return &UploadRoomPhoto{repo: repo, store: store, audit: audit}
}

func (uc *UploadRoomPhoto) Execute(ctx context.Context, roomID uint, photo io.Reader, alt string, userID *uint) (string, error) {
	if uc.store == nil {
		return "", ErrStorageDisabled
	}

	r, err := uc.repo.GetRoom(ctx, roomID)
	if err != nil {
		return "", notFound(err, domain.ErrRoomNotFound, "load room")
	}

	body, err := storage.EncodeRoomPhoto(photo, storage.MaxPhotoWidth)
	if err != nil {
		return "", domain.ErrInvalidPhoto
	}

	key := storage.RoomPhotoKey(r.ID)
	if err := uc.store.Put(ctx, key, body, "image/webp"); err != nil {
		return "", pkgerrors.Wrap(err, "store photo")
	}

	r.PhotoKey = key
	if alt != "" {
		r.PhotoAlt = alt
	}
	if err := uc.repo.SaveRoom(ctx, r); err != nil {
		return "", pkgerrors.Wrap(err, "save room")
	}

	uc.audit.Dispatch(audit.Event{UserID: userID, Action: "room_photo_uploaded", Entity: "room", EntityID: &r.ID})
	return uc.store.URL(key), nil
}

// ======================================================
// CATALOG
// ======================================================

type SaveProductGroup struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSaveProductGroup(repo domain.Repository, audit *audit.Dispatcher) *SaveProductGroup {
	return &SaveProductGroup{repo: repo, audit: audit}
}

func (uc *SaveProductGroup) Execute(ctx context.Context, g *models.ProductGroup, userID *uint) error {
	if err := domain.ValidateProductGroup(g); err != nil {
		return err
	}
	if g.RoomID != nil {
		if _, err := uc.repo.GetRoom(ctx, *g.RoomID); err != nil {
			return notFound(err, domain.ErrRoomNotFound, "load room")
		}
	}
	if g.ID != 0 {
		if _, err := uc.repo.GetProductGroup(ctx, g.ID); err != nil {
			return notFound(err, domain.ErrGroupNotFound, "load product group")
		}
	}

	if err := uc.repo.SaveProductGroup(ctx, g); err != nil {
		return pkgerrors.Wrap(err, "save product group")
	}

	uc.audit.Dispatch(audit.Event{UserID: userID, Action: "product_group_saved", Entity: "product_group", EntityID: &g.ID})
	return nil
}

type SaveProduct struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSaveProduct(repo domain.Repository, audit *audit.Dispatcher) *SaveProduct {
	return &SaveProduct{repo: repo, audit: audit}
}

func (uc *SaveProduct) Execute(ctx context.Context, p *models.Product, userID *uint) error {
	if err := domain.ValidateProduct(p); err != nil {
		return err
	}
	if _, err := uc.repo.GetProductGroup(ctx, p.ProductGroupID); err != nil {
		return notFound(err, domain.ErrGroupNotFound, "load product group")
	}

	if err := uc.repo.SaveProduct(ctx, p); err != nil {
		return pkgerrors.Wrap(err, "save product")
	}

	uc.audit.Dispatch(audit.Event{UserID: userID, Action: "product_saved", Entity: "product", EntityID: &p.ID})
	return nil
}

// ListCatalog returns the purchasable products grouped by product group.
type ListCatalog struct {
	repo domain.Repository
}

func NewListCatalog(repo domain.Repository) *ListCatalog {
	return &ListCatalog{repo: repo}
}

func (uc *ListCatalog) Execute(ctx context.Context, kind models.ProductGroupKind) ([]models.ProductGroup, error) {
	groups, err := uc.repo.ListProductGroups(ctx, kind)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list product groups")
	}
	return groups, nil
}
