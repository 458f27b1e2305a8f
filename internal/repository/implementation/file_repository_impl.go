package implementation

import (
	"context"
	"errors"

	"mycloud-drive/internal/entity"
	"mycloud-drive/internal/mapper"
	"mycloud-drive/internal/model"
	"mycloud-drive/internal/repository/contract"
	"mycloud-drive/internal/repository/scope"
	"mycloud-drive/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FileRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FileMapper
}

func NewFileRepository(db *gorm.DB) contract.FileRepository {
	return &FileRepositoryImpl{
		db:     db,
		mapper: mapper.NewFileMapper(),
	}
}

func (r *FileRepositoryImpl) Upsert(ctx context.Context, file *entity.File) error {
	m := r.mapper.ToModel(file)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_id"}, {Name: "filename"}},
			DoUpdates: clause.AssignmentColumns([]string{"size_bytes"}),
		}).
		Omit("Owner").
		Create(m).Error
	if err != nil {
		return err
	}

	// On conflict the stored row keeps its original id and created_at.
	stored, err := r.FindOne(ctx,
		specification.FileOwnedBy{OwnerID: file.OwnerId},
		specification.ByFilename{Filename: file.Filename},
	)
	if err != nil {
		return err
	}
	if stored != nil {
		*file = *stored
	}
	return nil
}

func (r *FileRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.File{}).Error
}

func (r *FileRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.File, error) {
	var m model.File
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *FileRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.File, error) {
	var models []*model.File
	query := applySpecifications(r.db.WithContext(ctx).Scopes(scope.OrderByCreatedAsc), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
