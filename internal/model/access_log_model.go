package model

import (
	"time"

	"github.com/google/uuid"
)

type AccessLog struct {
	Id         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID  `gorm:"type:uuid;not null;index"`
	FileId     *uuid.UUID `gorm:"type:uuid;index"`
	Filename   string     `gorm:"type:varchar(512);not null"`
	Action     string     `gorm:"type:varchar(20);not null"`
	OccurredAt time.Time  `gorm:"not null;index"`
}

func (AccessLog) TableName() string {
	return "access_logs"
}
