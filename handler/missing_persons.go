package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/acikkaynak/reliefhub-go/geocode"
	"github.com/acikkaynak/reliefhub-go/missingpersons"
	log "github.com/acikkaynak/reliefhub-go/pkg/logger"
	"github.com/acikkaynak/reliefhub-go/pkg/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MissingPersonsHandler struct {
	repo      MissingPersonStore
	geocoder  geocode.Geocoder
	minLength int
	now       func() time.Time
}

// NewMissingPersonsHandler resolves lastSeen through geocoder when a report carries no
// coordinates. A nil geocoder stores reports as given.
func NewMissingPersonsHandler(repo MissingPersonStore, geocoder geocode.Geocoder, minLength int) *MissingPersonsHandler {
	if minLength <= 0 {
		minLength = geocode.DefaultMinLength
	}
	return &MissingPersonsHandler{repo: repo, geocoder: geocoder, minLength: minLength, now: time.Now}
}

// HandleList godoc
// @Summary            Get missing person reports
// @Tags               MissingPerson
// @Produce            json
// @Success            200 {object} missingpersons.Response
// @Failure            400 {object} hubs.ErrorResponse
// @Param              status query string false "All, Missing or Found"
// @Router             /missing-persons [GET]
func (h *MissingPersonsHandler) HandleList(ctx *fiber.Ctx) error {
	status, ok := missingpersons.ParseStatus(ctx.Query("status"))
	if !ok {
		return errorResponse(ctx, fiber.StatusBadRequest, fmt.Errorf("unknown status %q", ctx.Query("status")))
	}

	data, err := h.repo.ListMissingPersons(ctx.UserContext(), status)
	if err != nil {
		log.Logger().Error("could not list missing persons", zap.Error(err))
		return errorResponse(ctx, fiber.StatusInternalServerError, fmt.Errorf("could not list missing persons"))
	}

	for i := range data {
		data[i] = data[i].Masked()
	}

	return ctx.JSON(&missingpersons.Response{
		Count:   len(data),
		Results: data,
	})
}

// HandleCreate godoc
// @Summary            Report a missing person
// @Tags               MissingPerson
// @Accept             json
// @Produce            json
// @Success            201 {object} missingpersons.Report
// @Failure            400 {object} hubs.ErrorResponse
// @Param              body body missingpersons.CreateReportRequest true "RequestBody"
// @Security           ApiKeyAuth
// @Router             /missing-persons [POST]
func (h *MissingPersonsHandler) HandleCreate(ctx *fiber.Ctx) error {
	var req missingpersons.CreateReportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errorResponse(ctx, fiber.StatusBadRequest, fmt.Errorf("failed to decode request: %w", err))
	}
	if err := validation.Struct(req); err != nil {
		return errorResponse(ctx, fiber.StatusBadRequest, err)
	}

	report := missingpersons.NewReport(uuid.NewString(), req, h.now())
	report = h.locate(ctx.UserContext(), report)

	if err := h.repo.CreateMissingPerson(ctx.UserContext(), report); err != nil {
		log.Logger().Error("could not store missing person", zap.String("id", report.ID), zap.Error(err))
		return errorResponse(ctx, fiber.StatusInternalServerError, fmt.Errorf("could not store missing person report"))
	}

	return ctx.Status(fiber.StatusCreated).JSON(report)
}

// locate fills in coordinates from lastSeen. Failures leave the report unplaced.
func (h *MissingPersonsHandler) locate(ctx context.Context, r missingpersons.Report) missingpersons.Report {
	if h.geocoder == nil || r.HasCoordinate() || !geocode.ReadyToGeocode(r.LastSeen, h.minLength) {
		return r
	}
	ctx, cancel := context.WithTimeout(ctx, geocode.DefaultTimeout)
	defer cancel()

	c, err := h.geocoder.Geocode(ctx, r.LastSeen)
	if err != nil {
		log.Logger().Info("could not geocode last seen location",
			zap.String("id", r.ID), zap.String("lastSeen", r.LastSeen), zap.Error(err))
		return r
	}
	return r.WithCoordinate(c)
}
