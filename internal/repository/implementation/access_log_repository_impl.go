package implementation

import (
	"context"

	"mycloud-drive/internal/entity"
	"mycloud-drive/internal/mapper"
	"mycloud-drive/internal/model"
	"mycloud-drive/internal/repository/contract"
	"mycloud-drive/internal/repository/scope"
	"mycloud-drive/internal/repository/specification"

	"gorm.io/gorm"
)

type AccessLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AccessLogMapper
}

func NewAccessLogRepository(db *gorm.DB) contract.AccessLogRepository {
	return &AccessLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewAccessLogMapper(),
	}
}

func (r *AccessLogRepositoryImpl) Create(ctx context.Context, log *entity.AccessLog) error {
	m := r.mapper.ToModel(log)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*log = *r.mapper.ToEntity(m)
	return nil
}

func (r *AccessLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AccessLog, error) {
	var models []*model.AccessLog
	query := applySpecifications(r.db.WithContext(ctx).Scopes(scope.OrderByOccurredDesc), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
