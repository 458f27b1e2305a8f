package contract

import (
	"context"

	"mycloud-drive/internal/entity"
	"mycloud-drive/internal/repository/specification"
)

type AccessLogRepository interface {
	Create(ctx context.Context, log *entity.AccessLog) error
	// FindAll returns matches newest first.
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AccessLog, error)
}
