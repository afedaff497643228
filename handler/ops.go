package handler

import (
	"github.com/acikkaynak/reliefhub-go/cache"
	"github.com/gofiber/fiber/v2"
)

func RedirectSwagger(ctx *fiber.Ctx) error {
	return ctx.Redirect("/swagger/index.html", fiber.StatusPermanentRedirect)
}

// HealthCheck godoc
// @Summary            Show the status of server.
// @Description        get the status of server.
// @Tags               Healthcheck
// @Accept             */*
// @Produce            json
// @Success            200 {string} map[string]interface{}
// @Router             /healthcheck [GET]
func HealthCheck(ctx *fiber.Ctx) error {
	return ctx.SendStatus(fiber.StatusOK)
}

// InvalidateCache godoc
// @Summary            Drop every cached response
// @Tags               Cache
// @Success            200
// @Router             /caches/prune [GET]
func InvalidateCache(c cache.Cache) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if err := c.Prune(); err != nil {
			ctx.Status(fiber.StatusInternalServerError)
			return ctx.SendString(err.Error())
		}

		return ctx.SendStatus(fiber.StatusOK)
	}
}
