package unitofwork

import (
	"context"

	"mycloud-drive/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	FileRepository() contract.FileRepository
	AccessLogRepository() contract.AccessLogRepository
}
