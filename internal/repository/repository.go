package repository

import (
	"context"

	"github.com/adudhe01/runroom/internal/domain"
)

// User defines the interface for user data access. Update writes the whole
// document (points, inventory, layout, credentials) in a single row update.
type User interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	GetAll(ctx context.Context) ([]domain.User, error)
}

// Item defines the interface for catalog data access.
type Item interface {
	UpsertBySKU(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id string) (*domain.Item, error)
	GetBySKUs(ctx context.Context, skus []string) ([]domain.Item, error)
	GetAll(ctx context.Context) ([]domain.Item, error)
	DeleteAll(ctx context.Context) error
}
