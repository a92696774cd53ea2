package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	pkgerrors "github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/escape-booking/internal/audit"
	domain "github.com/BruksfildServices01/escape-booking/internal/domain/user"
	"github.com/BruksfildServices01/escape-booking/internal/httperr"
	"github.com/BruksfildServices01/escape-booking/internal/models"
	"github.com/BruksfildServices01/escape-booking/internal/validators"
)

const TokenTTL = 24 * time.Hour

// Claims is what the staff middleware reads back out of a token.
type Claims struct {
	UserID uint
	Role   string
}

// IssueToken signs an HS256 token for u.
func IssueToken(u *models.User, secret string, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":  u.ID,
		"role": u.Role,
		"exp":  now.Add(TokenTTL).Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates signature and expiry and extracts the claims.
func ParseToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	sub, ok := mc["sub"].(float64)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	role, _ := mc["role"].(string)

	return &Claims{UserID: uint(sub), Role: role}, nil
}

// ======================================================
// LOGIN
// ======================================================

type Login struct {
	repo   domain.Repository
	secret string
}

func NewLogin(repo domain.Repository, secret string) *Login {
	return &Login{repo: repo, secret: secret}
}

func (uc *Login) Execute(ctx context.Context, email, password string) (*models.User, string, error) {
	u, err := uc.repo.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", pkgerrors.Wrap(err, "load user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := IssueToken(u, uc.secret, time.Now())
	if err != nil {
		return nil, "", pkgerrors.Wrap(err, "sign token")
	}
	return u, token, nil
}

// ======================================================
// CREATE STAFF
// ======================================================

type CreateStaff struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateStaff(repo domain.Repository, audit *audit.Dispatcher) *CreateStaff {
	return &CreateStaff{repo: repo, audit: audit}
}

func (uc *CreateStaff) Execute(ctx context.Context, name, email, password, role string, by *uint) (*models.User, error) {
	email = domain.NormalizeEmail(email)
	if name == "" || len(password) < 8 || !validators.IsEmailSyntaxValid(email) {
		return nil, domain.ErrInvalidUser
	}
	if role == "" {
		role = domain.RoleStaff
	}
	if !domain.IsValidRole(role) {
		return nil, domain.ErrInvalidUser
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "hash password")
	}

	u := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, pkgerrors.Wrap(err, "create user")
	}

	uc.audit.Dispatch(audit.Event{UserID: by, Action: "staff_created", Entity: "user", EntityID: &u.ID})
	return u, nil
}

// EnsureAdmin creates the bootstrap admin account unless the email is
// already taken.
func (uc *CreateStaff) EnsureAdmin(ctx context.Context, email, password string) error {
	_, err := uc.repo.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(err, "load admin")
	}

	_, err = uc.Execute(ctx, "Admin", email, password, domain.RoleAdmin, nil)
	return err
}
