package controller

import (
	"errors"

	"mycloud-drive/internal/service"

	"github.com/gofiber/fiber/v2"
)

// httpError maps service sentinels onto statuses; anything else is left for
// the error handler to report as a 500.
func httpError(err error) error {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrFileNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrInvalidFilename),
		errors.Is(err, service.ErrEmptyChatQuery):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return err
}
