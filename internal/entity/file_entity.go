package entity

import (
	"time"

	"github.com/google/uuid"
)

// File is one uploaded blob owned by a user. Filenames are unique per owner.
type File struct {
	Id        uuid.UUID
	OwnerId   uuid.UUID
	Filename  string
	SizeBytes int64
	CreatedAt time.Time
}
