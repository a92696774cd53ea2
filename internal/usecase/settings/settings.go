package settings

import (
	"context"

	pkgerrors "github.com/pkg/errors"

	"github.com/BruksfildServices01/escape-booking/internal/audit"
	domain "github.com/BruksfildServices01/escape-booking/internal/domain/settings"
	"github.com/BruksfildServices01/escape-booking/internal/models"
)

type Settings struct {
	Appointments *models.AppointmentsSettings `json:"appointments"`
	Shop         *models.ShopSettings         `json:"shop"`
}

// ManageSettings reads and replaces the two singleton rows. There is no
// delete: the rows always exist.
type ManageSettings struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewManageSettings(repo domain.Repository, audit *audit.Dispatcher) *ManageSettings {
	return &ManageSettings{repo: repo, audit: audit}
}

func (uc *ManageSettings) Get(ctx context.Context) (*Settings, error) {
	appt, err := uc.repo.GetAppointmentsSettings(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "appointments settings")
	}
	shop, err := uc.repo.GetShopSettings(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "shop settings")
	}
	return &Settings{Appointments: appt, Shop: shop}, nil
}

func (uc *ManageSettings) UpdateAppointments(ctx context.Context, s *models.AppointmentsSettings, userID *uint) error {
	if err := domain.ValidateAppointments(s); err != nil {
		return err
	}
	s.ID = models.SettingsRowID
	if err := uc.repo.SaveAppointmentsSettings(ctx, s); err != nil {
		return pkgerrors.Wrap(err, "save appointments settings")
	}

	uc.audit.Dispatch(audit.Event{UserID: userID, Action: "appointments_settings_updated", Entity: "settings", Metadata: s})
	return nil
}

func (uc *ManageSettings) UpdateShop(ctx context.Context, s *models.ShopSettings, userID *uint) error {
	if err := domain.ValidateShop(s); err != nil {
		return err
	}
	s.ID = models.SettingsRowID
	if err := uc.repo.SaveShopSettings(ctx, s); err != nil {
		return pkgerrors.Wrap(err, "save shop settings")
	}

	uc.audit.Dispatch(audit.Event{UserID: userID, Action: "shop_settings_updated", Entity: "settings", Metadata: s})
	return nil
}
