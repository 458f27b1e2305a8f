package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FileOwnedBy struct {
	OwnerID uuid.UUID
}

func (s FileOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("owner_id = ?", s.OwnerID)
}

type ByFilename struct {
	Filename string
}

func (s ByFilename) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("filename = ?", s.Filename)
}

type ByFilenames struct {
	Filenames []string
}

func (s ByFilenames) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("filename IN ?", s.Filenames)
}

type ByAction struct {
	Action string
}

func (s ByAction) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("action = ?", s.Action)
}
