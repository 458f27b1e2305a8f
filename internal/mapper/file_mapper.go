package mapper

import (
	"mycloud-drive/internal/entity"
	"mycloud-drive/internal/model"
)

type FileMapper struct{}

func NewFileMapper() *FileMapper {
	return &FileMapper{}
}

func (m *FileMapper) ToEntity(f *model.File) *entity.File {
	if f == nil {
		return nil
	}
	return &entity.File{
		Id:        f.Id,
		OwnerId:   f.OwnerId,
		Filename:  f.Filename,
		SizeBytes: f.SizeBytes,
		CreatedAt: f.CreatedAt,
	}
}

func (m *FileMapper) ToModel(f *entity.File) *model.File {
	if f == nil {
		return nil
	}
	return &model.File{
		Id:        f.Id,
		OwnerId:   f.OwnerId,
		Filename:  f.Filename,
		SizeBytes: f.SizeBytes,
		CreatedAt: f.CreatedAt,
	}
}

func (m *FileMapper) ToEntities(files []*model.File) []*entity.File {
	out := make([]*entity.File, 0, len(files))
	for _, f := range files {
		out = append(out, m.ToEntity(f))
	}
	return out
}
