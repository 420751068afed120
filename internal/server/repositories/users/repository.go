package users

import (
	"context"

	"github.com/sparks/noteapp/internal/server/models"
)

// Repository is the credential store: the sole source of truth for user
// identity. Nothing above it caches.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Delete(ctx context.Context, id int64) error
}
