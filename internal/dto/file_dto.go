package dto

import "time"

type ListFilesResponse struct {
	Files []string `json:"files"`
}

type UploadFileResponse struct {
	Filename string `json:"filename"`
}

type DeleteFileResponse struct {
	Detail string `json:"detail"`
}

type AccessLogResponse struct {
	Filename   string    `json:"filename"`
	Action     string    `json:"action"`
	OccurredAt time.Time `json:"occurred_at"`
}
