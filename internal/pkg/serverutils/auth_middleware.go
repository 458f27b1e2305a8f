package serverutils

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const userIDKey = "user_id"

// CredentialVerifier resolves Basic credentials to a user id.
type CredentialVerifier interface {
	Authenticate(ctx context.Context, username, password string) (uuid.UUID, error)
}

// BasicCredentials extracts the username and password of an Authorization: Basic header.
func BasicCredentials(ctx *fiber.Ctx) (string, string, bool) {
	header := ctx.Get(fiber.HeaderAuthorization)
	const prefix = "Basic "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", "", false
	}
	raw, err := base64.StdEncoding.DecodeString(header[len(prefix):])
	if err != nil {
		return "", "", false
	}
	username, password, ok := strings.Cut(string(raw), ":")
	if !ok {
		return "", "", false
	}
	return username, password, true
}

func bearerToken(ctx *fiber.Ctx) string {
	header := ctx.Get(fiber.HeaderAuthorization)
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return ""
}

// AuthMiddleware accepts Basic credentials or a Bearer token. With allowQueryToken
// a "token" query parameter is also read, for websocket handshakes from browsers.
func AuthMiddleware(verifier CredentialVerifier, tokens *TokenIssuer, allowQueryToken bool) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if username, password, ok := BasicCredentials(ctx); ok {
			userID, err := verifier.Authenticate(ctx.UserContext(), username, password)
			if err != nil {
				return fiber.NewError(fiber.StatusUnauthorized, "Invalid username or password")
			}
			ctx.Locals(userIDKey, userID)
			return ctx.Next()
		}

		token := bearerToken(ctx)
		if token == "" && allowQueryToken {
			token = ctx.Query("token")
		}
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Missing credentials")
		}

		userID, err := tokens.Parse(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}
		ctx.Locals(userIDKey, userID)
		return ctx.Next()
	}
}

// UserID returns the id AuthMiddleware stored on the request.
func UserID(ctx *fiber.Ctx) (uuid.UUID, error) {
	userID, ok := ctx.Locals(userIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	return userID, nil
}
