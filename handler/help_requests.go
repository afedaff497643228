package handler

import (
	"fmt"
	"time"

	"github.com/acikkaynak/reliefhub-go/broker"
	"github.com/acikkaynak/reliefhub-go/helprequests"
	log "github.com/acikkaynak/reliefhub-go/pkg/logger"
	"github.com/acikkaynak/reliefhub-go/pkg/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateHelpRequest godoc
// @Summary            Send an emergency help request to the configured emergency numbers
// @Tags               HelpRequest
// @Accept             json
// @Produce            json
// @Success            202 {object} helprequests.Accepted
// @Failure            400 {object} hubs.ErrorResponse
// @Param              body body helprequests.CreateHelpRequest true "RequestBody"
// @Security           ApiKeyAuth
// @Router             /help-requests [POST]
func CreateHelpRequest(publisher Publisher) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		var req helprequests.CreateHelpRequest
		if err := ctx.BodyParser(&req); err != nil {
			return errorResponse(ctx, fiber.StatusBadRequest, fmt.Errorf("failed to decode request: %w", err))
		}
		if err := validation.Struct(req); err != nil {
			return errorResponse(ctx, fiber.StatusBadRequest, err)
		}

		hr := helprequests.New(uuid.NewString(), req, time.Now())
		if err := publisher.Publish(broker.HelpRequestsTopic, hr.ID, hr); err != nil {
			log.Logger().Error("could not publish help request", zap.String("id", hr.ID), zap.Error(err))
			return errorResponse(ctx, fiber.StatusServiceUnavailable, fmt.Errorf("could not send help request"))
		}

		return ctx.Status(fiber.StatusAccepted).JSON(helprequests.Accepted{ID: hr.ID})
	}
}
