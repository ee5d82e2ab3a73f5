package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"complianceai/internal/auth"
	"complianceai/internal/models"
)

var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrInvalidRole       = errors.New("role must be customer, employee or admin")
	ErrUserNotFound      = errors.New("user not found")
	ErrBadCredential     = errors.New("bad credential")
)

// Users is the credential store. It owns identity records and password
// verification; the plaintext password never leaves this package.
type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

// Register validates the identity fields, hashes the password and
// creates the user. Username and normalized email must be unique.
func (s *Users) Register(ctx context.Context, username, email, password, role string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("username required")
	}
	normalized, err := auth.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := auth.ValidatePassword(password); err != nil {
		return nil, err
	}
	switch role {
	case models.RoleCustomer, models.RoleEmployee, models.RoleAdmin:
	default:
		return nil, ErrInvalidRole
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateUsername
	}
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", normalized).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateEmail
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := models.User{
		Username:     username,
		Email:        normalized,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// VerifyCredentials checks username/password and returns the user.
// Lookup failure and password mismatch are distinct errors internally;
// the login handler reports both as 401.
func (s *Users) VerifyCredentials(ctx context.Context, username, password string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if err := auth.CheckPassword(u.PasswordHash, password); err != nil {
		return nil, ErrBadCredential
	}
	return &u, nil
}

// TouchLastLogin stamps the user's last successful login.
func (s *Users) TouchLastLogin(ctx context.Context, userID string) error {
	now := time.Now()
	return s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("last_login", &now).Error
}

func (s *Users) FindByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
