package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AnshRaj112/portfolio-admin/internal/models"
	"github.com/AnshRaj112/portfolio-admin/pkg/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AdminAuth signs back office users in and out.
type AdminAuth struct {
	db       *gorm.DB
	sessions SessionStore
	log      *zap.Logger
}

func NewAdminAuth(db *gorm.DB, sessions SessionStore, log *zap.Logger) *AdminAuth {
	return &AdminAuth{db: db, sessions: sessions, log: log}
}

// SignIn accepts a username or an email as identifier.
func (a *AdminAuth) SignIn(ctx context.Context, identifier, password string) (string, *models.Admin, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	var admin models.Admin
	err := a.db.WithContext(ctx).
		Where("username = ? OR email = ?", identifier, strings.ToLower(identifier)).
		First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if !admin.IsActive {
		return "", nil, ErrInvalidCredentials
	}

	ok, err := utils.VerifyPassword(password, admin.PasswordHash)
	if err != nil {
		a.log.Error("stored admin password hash is unreadable", zap.String("admin_id", admin.ID.String()), zap.Error(err))
		return "", nil, ErrInvalidCredentials
	}
	if !ok {
		return "", nil, ErrInvalidCredentials
	}

	token, err := a.sessions.Create(ctx, admin.ID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create session: %w", err)
	}
	return token, &admin, nil
}

func (a *AdminAuth) SignOut(ctx context.Context, token string) error {
	return a.sessions.Invalidate(ctx, token)
}

// Authenticate resolves a session token to an active admin and slides
// the session expiry.
func (a *AdminAuth) Authenticate(ctx context.Context, token string) (*models.Admin, error) {
	adminID, ok, err := a.sessions.Validate(ctx, token)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	var admin models.Admin
	if err := a.db.WithContext(ctx).First(&admin, "id = ?", adminID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !admin.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := a.sessions.Refresh(ctx, token); err != nil {
		a.log.Warn("failed to refresh admin session", zap.Error(err))
	}
	return &admin, nil
}

// EnsureAdmin creates the first admin account when the table is empty.
// It returns true when an account was created.
func (a *AdminAuth) EnsureAdmin(ctx context.Context, username, email, password string) (bool, error) {
	var count int64
	if err := a.db.WithContext(ctx).Model(&models.Admin{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if username == "" || email == "" || password == "" {
		return false, nil
	}
	if len(password) < 8 {
		return false, &ValidationError{Msg: "admin password must be at least 8 characters long"}
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return false, err
	}

	now := time.Now()
	admin := models.Admin{
		ID:           uuid.New(),
		CreatedAt:    now,
		UpdatedAt:    now,
		Username:     username,
		Email:        strings.ToLower(email),
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := a.db.WithContext(ctx).Create(&admin).Error; err != nil {
		return false, err
	}
	a.log.Info("✅ Bootstrapped admin account", zap.String("username", username))
	return true, nil
}
