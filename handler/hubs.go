package handler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/acikkaynak/reliefhub-go/broker"
	"github.com/acikkaynak/reliefhub-go/hubs"
	"github.com/acikkaynak/reliefhub-go/metrics"
	log "github.com/acikkaynak/reliefhub-go/pkg/logger"
	"github.com/acikkaynak/reliefhub-go/pkg/validation"
	"github.com/acikkaynak/reliefhub-go/repository"
	masker "github.com/ggwhite/go-masker"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errBadBoundingBox = errors.New("sw_lat, sw_lng, ne_lat and ne_lng must all be numbers")

// parseBoundingBox returns nil when no corner is given.
func parseBoundingBox(ctx *fiber.Ctx) (*repository.BoundingBox, error) {
	keys := []string{"sw_lat", "sw_lng", "ne_lat", "ne_lng"}
	values := make([]float64, len(keys))
	given := 0
	for i, k := range keys {
		raw := ctx.Query(k)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errBadBoundingBox
		}
		values[i] = v
		given++
	}
	switch given {
	case 0:
		return nil, nil
	case len(keys):
		return &repository.BoundingBox{SwLat: values[0], SwLng: values[1], NeLat: values[2], NeLng: values[3]}, nil
	}
	return nil, errBadBoundingBox
}

// GetReliefHubs godoc
// @Summary            List relief hubs, optionally inside a bounding box
// @Tags               ReliefHub
// @Produce            json
// @Success            200 {object} []hubs.ReliefHub
// @Param              sw_lat query number false "Sw Lat"
// @Param              sw_lng query number false "Sw Lng"
// @Param              ne_lat query number false "Ne Lat"
// @Param              ne_lng query number false "Ne Lng"
// @Param              masked query bool false "Mask phone numbers"
// @Router             /api/reliefhubs [GET]
func GetReliefHubs(store HubStore) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		box, err := parseBoundingBox(ctx)
		if err != nil {
			return errorResponse(ctx, fiber.StatusBadRequest, err)
		}

		data, err := store.ListHubs(ctx.UserContext(), box)
		if err != nil {
			log.Logger().Error("could not list relief hubs", zap.Error(err))
			return errorResponse(ctx, fiber.StatusInternalServerError, hubs.ErrListFailed)
		}

		if masked, _ := strconv.ParseBool(ctx.Query("masked")); masked {
			for i := range data {
				data[i].Phone = masker.Telephone(data[i].Phone)
			}
		}

		return ctx.JSON(data)
	}
}

// RegisterReliefHub godoc
// @Summary            Register a relief hub
// @Tags               ReliefHub
// @Accept             json
// @Produce            json
// @Success            200 {object} hubs.ReliefHub
// @Failure            400 {object} hubs.ErrorResponse
// @Param              body body hubs.ReliefHub true "RequestBody"
// @Security           ApiKeyAuth
// @Router             /api/reliefhub/register [POST]
func RegisterReliefHub(store HubStore, publisher Publisher) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		var hub hubs.ReliefHub
		if err := ctx.BodyParser(&hub); err != nil {
			metrics.HubRegistrations.WithLabelValues("invalid").Inc()
			return errorResponse(ctx, fiber.StatusBadRequest, fmt.Errorf("failed to decode request: %w", err))
		}
		if err := validation.Struct(hub); err != nil {
			metrics.HubRegistrations.WithLabelValues("invalid").Inc()
			return errorResponse(ctx, fiber.StatusBadRequest, err)
		}
		if _, ok := hub.Coordinate(); !ok {
			metrics.HubRegistrations.WithLabelValues("invalid").Inc()
			return errorResponse(ctx, fiber.StatusBadRequest, hubs.ErrUnresolvedCoordinates)
		}
		if hub.ID == "" {
			hub.ID = uuid.NewString()
		}
		if hub.AreasCovered == nil {
			hub.AreasCovered = hubs.AreaList{}
		}
		if hub.AidTypes == nil {
			hub.AidTypes = hubs.AidTypes{}
		}

		if err := store.CreateHub(ctx.UserContext(), hub); err != nil {
			metrics.HubRegistrations.WithLabelValues("error").Inc()
			log.Logger().Error("could not store relief hub", zap.String("id", hub.ID), zap.Error(err))
			return errorResponse(ctx, fiber.StatusInternalServerError, hubs.ErrRegistrationFailed)
		}
		metrics.HubRegistrations.WithLabelValues("ok").Inc()

		if err := publisher.Publish(broker.HubRegisteredTopic, hub.ID, hub); err != nil {
			log.Logger().Warn("could not publish hub registration", zap.String("id", hub.ID), zap.Error(err))
		}

		return ctx.JSON(hub)
	}
}

type AidTypesResponse struct {
	AidTypes []hubs.AidType `json:"aidTypes"`
}

// GetAidTypes godoc
// @Summary            List the aid types a hub can offer
// @Tags               ReliefHub
// @Produce            json
// @Success            200 {object} AidTypesResponse
// @Router             /aid-types [GET]
func GetAidTypes(ctx *fiber.Ctx) error {
	return ctx.JSON(AidTypesResponse{AidTypes: hubs.AidTypeVocabulary})
}
