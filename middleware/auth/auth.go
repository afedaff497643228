package auth

import (
	"strings"

	log "github.com/acikkaynak/reliefhub-go/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

const ApiKeyHeaderName = "X-Api-Key"

// New guards POST requests and pprof endpoints with the X-Api-Key header.
// An empty apiKey disables the check.
func New(apiKey string) fiber.Handler {
	if apiKey == "" {
		log.Logger().Warn("ApiKey is empty, write endpoints are not protected")
	}

	return func(ctx *fiber.Ctx) error {
		if apiKey == "" {
			return ctx.Next()
		}

		apiKeyNeeded := false
		if strings.Contains(ctx.Path(), "pprof") || ctx.Method() == fiber.MethodPost {
			apiKeyNeeded = true
		}

		if apiKeyNeeded && ctx.Get(ApiKeyHeaderName) != apiKey {
			return ctx.SendStatus(fiber.StatusUnauthorized)
		}

		return ctx.Next()
	}
}
