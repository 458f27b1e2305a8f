package contract

import (
	"context"

	"mycloud-drive/internal/entity"
	"mycloud-drive/internal/repository/specification"

	"github.com/google/uuid"
)

type FileRepository interface {
	// Upsert inserts the file or refreshes size for an existing (owner, filename).
	Upsert(ctx context.Context, file *entity.File) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.File, error)
	// FindAll returns matches in creation order.
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.File, error)
}
