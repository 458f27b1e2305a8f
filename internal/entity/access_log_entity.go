package entity

import (
	"time"

	"github.com/google/uuid"
)

type AccessAction string

const (
	AccessActionUpload   AccessAction = "upload"
	AccessActionDownload AccessAction = "download"
	AccessActionDelete   AccessAction = "delete"
)

// AccessLog records one file operation. FileId is nil once the file row is gone,
// so Filename is kept alongside it.
type AccessLog struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	FileId     *uuid.UUID
	Filename   string
	Action     AccessAction
	OccurredAt time.Time
}
