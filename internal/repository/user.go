package repository

import (
	"context"

	"devmatch/internal/domain"
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	// ListExcluding returns users whose ids are not in excludeIDs, ordered by
	// id ascending so pagination stays stable across calls.
	ListExcluding(ctx context.Context, excludeIDs []int64, offset, limit int) ([]domain.User, error)
}
