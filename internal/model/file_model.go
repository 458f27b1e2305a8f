package model

import (
	"time"

	"github.com/google/uuid"
)

type File struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerId   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_files_owner_filename"`
	Filename  string    `gorm:"type:varchar(512);not null;uniqueIndex:idx_files_owner_filename"`
	SizeBytes int64     `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Owner User `gorm:"foreignKey:OwnerId;constraint:OnDelete:CASCADE"`
}

func (File) TableName() string {
	return "files"
}
