package serverutils

import (
	"errors"

	"mycloud-drive/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders every returned error in the response envelope. Errors that
// are not *fiber.Error become 500s and are logged; their text is not exposed.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			if fiberErr.Code == fiber.StatusUnauthorized {
				ctx.Set(fiber.HeaderWWWAuthenticate, `Basic realm="mycloud"`)
			}
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		log.Error("HTTP", "Unhandled error", map[string]interface{}{
			"method": ctx.Method(),
			"path":   ctx.Path(),
			"error":  err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, "internal server error"))
	}
}
