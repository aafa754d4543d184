package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mealwise/backend/internal/domain"
)

// UserStore implements domain.UserRepository on the primary database.
type UserStore struct {
	db *gorm.DB
}

// NewUserStore constructs a database-backed user repository.
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Create persists a new user.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

// FindByEmail looks up a user by email, case-insensitively. Returns nil with
// no error when no such user exists.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
