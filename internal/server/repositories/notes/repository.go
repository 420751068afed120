package notes

import (
	"context"

	"github.com/sparks/noteapp/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	GetByID(ctx context.Context, id int64) (*models.Note, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Note, error)
	Update(ctx context.Context, note *models.Note) (*models.Note, error)
	SetAttachmentKey(ctx context.Context, id int64, key string) error
	Delete(ctx context.Context, id int64) error
}
