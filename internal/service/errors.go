package service

import "errors"

var (
	ErrUnauthorized    = errors.New("invalid username or password")
	ErrUsernameTaken   = errors.New("username already exists")
	ErrFileNotFound    = errors.New("file not found or not owned by user")
	ErrInvalidFilename = errors.New("invalid filename")
	ErrEmptyChatQuery  = errors.New("query is required")
)
