package user

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/escape-booking/internal/httperr"
	"github.com/BruksfildServices01/escape-booking/internal/models"
)

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

var (
	ErrInvalidCredentials = httperr.ErrBusiness("invalid_credentials")
	ErrEmailTaken         = httperr.ErrBusiness("email_already_exists")
	ErrInvalidUser        = httperr.ErrBusiness("invalid_user")
)

type Repository interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleStaff
}
