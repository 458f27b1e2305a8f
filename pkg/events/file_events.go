package events

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	TypeFileAccessed = "FILE_ACCESSED"

	// TopicFilesChanged is the in-process topic raised after uploads and deletes.
	TopicFilesChanged = "files.changed"
)

// FileAccessed is published for every upload, download and delete.
type FileAccessed struct {
	UserID     uuid.UUID
	FileID     *uuid.UUID
	Filename   string
	Action     string
	OccurredAt time.Time
}

func (e FileAccessed) EventType() string {
	return TypeFileAccessed
}

func (e FileAccessed) Payload() map[string]interface{} {
	p := map[string]interface{}{
		"user_id":     e.UserID.String(),
		"filename":    e.Filename,
		"action":      e.Action,
		"occurred_at": e.OccurredAt.UTC().Format(time.RFC3339Nano),
	}
	if e.FileID != nil {
		p["file_id"] = e.FileID.String()
	}
	return p
}

func (e FileAccessed) Timestamp() time.Time {
	return e.OccurredAt
}

// FileAccessedFrom rebuilds a FileAccessed from a decoded payload.
func FileAccessedFrom(evt Event) (FileAccessed, error) {
	data := evt.Payload()
	str := func(key string) string {
		s, _ := data[key].(string)
		return s
	}

	userID, err := uuid.Parse(str("user_id"))
	if err != nil {
		return FileAccessed{}, fmt.Errorf("user_id: %w", err)
	}
	out := FileAccessed{
		UserID:     userID,
		Filename:   str("filename"),
		Action:     str("action"),
		OccurredAt: evt.Timestamp(),
	}
	if out.Filename == "" || out.Action == "" {
		return FileAccessed{}, fmt.Errorf("incomplete %s payload", TypeFileAccessed)
	}
	if raw := str("file_id"); raw != "" {
		fileID, err := uuid.Parse(raw)
		if err != nil {
			return FileAccessed{}, fmt.Errorf("file_id: %w", err)
		}
		out.FileID = &fileID
	}
	if ts, err := time.Parse(time.RFC3339Nano, str("occurred_at")); err == nil {
		out.OccurredAt = ts
	}
	return out, nil
}

// FilesChanged is the payload of TopicFilesChanged.
type FilesChanged struct {
	UserID   uuid.UUID `json:"user_id"`
	Filename string    `json:"filename"`
	Action   string    `json:"action"`
}
