package room

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/escape-booking/internal/dbtest"
	domain "github.com/BruksfildServices01/escape-booking/internal/domain/room"
	"github.com/BruksfildServices01/escape-booking/internal/infra/repository"
	"github.com/BruksfildServices01/escape-booking/internal/models"
)

type memStore struct {
	objects map[string][]byte
	fail    error
}

func (m *memStore) Put(_ context.Context, key string, body []byte, _ string) error {
	if m.fail != nil {
		return m.fail
	}
	m.objects[key] = body
	return nil
}

func (m *memStore) URL(key string) string {
	return "https://cdn.test/" + key
}

func pngBytes(t *testing.T) *bytes.Reader {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for x := 0; x < 40; x++ {
		img.Set(x, 10, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestUploadRoomPhoto(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	repo := repository.NewRoomGormRepository(db)
	store := &memStore{objects: map[string][]byte{}}

	r := dbtest.Room(t, db, "Vault")
	upload := NewUploadRoomPhoto(repo, store, nil)

	url, err := upload.Execute(ctx, r.ID, pngBytes(t), "The vault door", nil)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !strings.HasSuffix(url, ".webp") {
		t.Fatalf("url = %s", url)
	}
	if len(store.objects) != 1 {
		t.Fatalf("stored objects = %d", len(store.objects))
	}

	// a later edit keeps the photo
	if err := NewSaveRoom(repo, nil).Execute(ctx, &models.Room{ID: r.ID, Name: "Vault II", IsActive: true}, nil); err != nil {
		t.Fatalf("save room: %v", err)
	}
	got, _ := repo.GetRoom(ctx, r.ID)
	if got.PhotoKey == "" || got.Name != "Vault II" {
		t.Fatalf("room after update = %+v", got)
	}

	if _, err := upload.Execute(ctx, r.ID, strings.NewReader("not an image"), "", nil); err != domain.ErrInvalidPhoto {
		t.Fatalf("garbage: err = %v", err)
	}
	if _, err := upload.Execute(ctx, 999, pngBytes(t), "", nil); err != domain.ErrRoomNotFound {
		t.Fatalf("unknown room: err = %v", err)
	}

	store.fail = errors.New("bucket gone")
	if _, err := upload.Execute(ctx, r.ID, pngBytes(t), "", nil); err == nil {
		t.Fatal("store failure swallowed")
	}
}

func TestUploadWithoutStorage(t *testing.T) {
	db := dbtest.Open(t)
	upload := NewUploadRoomPhoto(repository.NewRoomGormRepository(db), nil, nil)
	if _, err := upload.Execute(context.Background(), 1, pngBytes(t), "", nil); err != ErrStorageDisabled {
		t.Fatalf("err = %v", err)
	}
}

func TestCatalogValidation(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	repo := repository.NewRoomGormRepository(db)

	missing := uint(42)
	err := NewSaveProductGroup(repo, nil).Execute(ctx, &models.ProductGroup{
		Name:   "Tickets",
		Kind:   models.ProductGroupAppointment,
		RoomID: &missing,
	}, nil)
	if err != domain.ErrRoomNotFound {
		t.Fatalf("group for unknown room: err = %v", err)
	}

	err = NewSaveProduct(repo, nil).Execute(ctx, &models.Product{
		ProductGroupID: 42,
		Name:           "Ticket",
		BasePrice:      decimal.NewFromInt(90),
	}, nil)
	if err != domain.ErrGroupNotFound {
		t.Fatalf("product for unknown group: err = %v", err)
	}

	r := dbtest.Room(t, db, "Vault")
	dbtest.AppointmentProduct(t, db, r, "90.00")
	dbtest.CouponProduct(t, db, "25.00", "0")

	groups, err := NewListCatalog(repo).Execute(ctx, models.ProductGroupCoupon)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if len(groups) != 1 || groups[0].Kind != models.ProductGroupCoupon {
		t.Fatalf("groups = %+v", groups)
	}
}
