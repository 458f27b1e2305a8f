package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"mycloud-drive/internal/dto"
	"mycloud-drive/internal/entity"
	"mycloud-drive/internal/pkg/logger"
	"mycloud-drive/internal/repository/memory"
	"mycloud-drive/internal/repository/specification"
	"mycloud-drive/internal/repository/unitofwork"
	"mycloud-drive/pkg/events"

	"github.com/google/uuid"
)

type IFileService interface {
	Upload(ctx context.Context, userID uuid.UUID, filename string, content io.Reader) (*dto.UploadFileResponse, error)
	// Open returns the blob for an owned file; the caller closes it.
	Open(ctx context.Context, userID uuid.UUID, filename string) (*os.File, error)
	// List returns owned filenames whose blobs exist, in upload order.
	List(ctx context.Context, userID uuid.UUID) ([]string, error)
	Delete(ctx context.Context, userID uuid.UUID, filename string) error
}

type fileService struct {
	uowFactory unitofwork.RepositoryFactory
	blobs      BlobStore
	cache      *memory.CatalogCache
	publisher  IPublisherService
	accessLog  IAccessLogService
	logger     logger.ILogger
}

func NewFileService(
	uowFactory unitofwork.RepositoryFactory,
	blobs BlobStore,
	cache *memory.CatalogCache,
	publisher IPublisherService,
	accessLog IAccessLogService,
	log logger.ILogger,
) IFileService {
	return &fileService{
		uowFactory: uowFactory,
		blobs:      blobs,
		cache:      cache,
		publisher:  publisher,
		accessLog:  accessLog,
		logger:     log,
	}
}

func (s *fileService) Upload(ctx context.Context, userID uuid.UUID, filename string, content io.Reader) (*dto.UploadFileResponse, error) {
	name, err := CleanFilename(filename)
	if err != nil {
		return nil, err
	}

	size, err := s.blobs.Save(userID, name, content)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	file := &entity.File{
		Id:        uuid.New(),
		OwnerId:   userID,
		Filename:  name,
		SizeBytes: size,
		CreatedAt: time.Now(),
	}
	if err := uow.FileRepository().Upsert(ctx, file); err != nil {
		return nil, fmt.Errorf("record file: %w", err)
	}

	s.logger.Info("FileService", "File uploaded", map[string]interface{}{
		"user_id":  userID.String(),
		"filename": name,
		"size":     size,
	})
	s.afterChange(ctx, userID, file, entity.AccessActionUpload)
	return &dto.UploadFileResponse{Filename: name}, nil
}

func (s *fileService) owned(ctx context.Context, userID uuid.UUID, filename string) (*entity.File, error) {
	name, err := CleanFilename(filename)
	if err != nil {
		return nil, ErrFileNotFound
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	file, err := uow.FileRepository().FindOne(ctx,
		specification.FileOwnedBy{OwnerID: userID},
		specification.ByFilename{Filename: name},
	)
	if err != nil {
		return nil, fmt.Errorf("lookup file: %w", err)
	}
	if file == nil {
		return nil, ErrFileNotFound
	}
	return file, nil
}

func (s *fileService) Open(ctx context.Context, userID uuid.UUID, filename string) (*os.File, error) {
	file, err := s.owned(ctx, userID, filename)
	if err != nil {
		return nil, err
	}
	f, err := s.blobs.Open(userID, file.Filename)
	if err != nil {
		return nil, err
	}

	s.accessLog.Record(ctx, s.accessEvent(userID, file, entity.AccessActionDownload))
	return f, nil
}

func (s *fileService) List(ctx context.Context, userID uuid.UUID) ([]string, error) {
	if files, ok := s.cache.Get(userID); ok {
		return files, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.FileRepository().FindAll(ctx, specification.FileOwnedBy{OwnerID: userID})
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	files := make([]string, 0, len(rows))
	for _, row := range rows {
		if s.blobs.Exists(userID, row.Filename) {
			files = append(files, row.Filename)
		}
	}
	s.cache.Set(userID, files)
	return files, nil
}

func (s *fileService) Delete(ctx context.Context, userID uuid.UUID, filename string) error {
	file, err := s.owned(ctx, userID, filename)
	if err != nil {
		return err
	}

	if err := s.blobs.Remove(userID, file.Filename); err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.FileRepository().Delete(ctx, file.Id); err != nil {
		return fmt.Errorf("delete file row: %w", err)
	}

	s.logger.Info("FileService", "File deleted", map[string]interface{}{
		"user_id":  userID.String(),
		"filename": file.Filename,
	})
	s.afterChange(ctx, userID, file, entity.AccessActionDelete)
	return nil
}

// afterChange invalidates the listing before returning, then audits the action and
// raises files-changed.
func (s *fileService) afterChange(ctx context.Context, userID uuid.UUID, file *entity.File, action entity.AccessAction) {
	s.cache.Invalidate(userID)

	evt := s.accessEvent(userID, file, action)
	if action == entity.AccessActionDelete {
		evt.FileID = nil
	}
	s.accessLog.Record(ctx, evt)

	if err := s.publisher.PublishFilesChanged(events.FilesChanged{
		UserID:   userID,
		Filename: file.Filename,
		Action:   string(action),
	}); err != nil {
		s.logger.Warn("FileService", "Failed to raise files changed", map[string]interface{}{
			"user_id": userID.String(),
			"error":   err.Error(),
		})
	}
}

func (s *fileService) accessEvent(userID uuid.UUID, file *entity.File, action entity.AccessAction) events.FileAccessed {
	fileID := file.Id
	return events.FileAccessed{
		UserID:     userID,
		FileID:     &fileID,
		Filename:   file.Filename,
		Action:     string(action),
		OccurredAt: time.Now(),
	}
}
