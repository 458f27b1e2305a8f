package mapper

import (
	"mycloud-drive/internal/entity"
	"mycloud-drive/internal/model"
)

type AccessLogMapper struct{}

func NewAccessLogMapper() *AccessLogMapper {
	return &AccessLogMapper{}
}

func (m *AccessLogMapper) ToEntity(l *model.AccessLog) *entity.AccessLog {
	if l == nil {
		return nil
	}
	return &entity.AccessLog{
		Id:         l.Id,
		UserId:     l.UserId,
		FileId:     l.FileId,
		Filename:   l.Filename,
		Action:     entity.AccessAction(l.Action),
		OccurredAt: l.OccurredAt,
	}
}

func (m *AccessLogMapper) ToModel(l *entity.AccessLog) *model.AccessLog {
	if l == nil {
		return nil
	}
	return &model.AccessLog{
		Id:         l.Id,
		UserId:     l.UserId,
		FileId:     l.FileId,
		Filename:   l.Filename,
		Action:     string(l.Action),
		OccurredAt: l.OccurredAt,
	}
}

func (m *AccessLogMapper) ToEntities(logs []*model.AccessLog) []*entity.AccessLog {
	out := make([]*entity.AccessLog, 0, len(logs))
	for _, l := range logs {
		out = append(out, m.ToEntity(l))
	}
	return out
}
