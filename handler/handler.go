package handler

import (
	"context"
	"errors"

	"github.com/acikkaynak/reliefhub-go/hubs"
	"github.com/acikkaynak/reliefhub-go/missingpersons"
	"github.com/acikkaynak/reliefhub-go/pkg/validation"
	"github.com/acikkaynak/reliefhub-go/repository"
	"github.com/gofiber/fiber/v2"
)

type HubStore interface {
	ListHubs(ctx context.Context, box *repository.BoundingBox) ([]hubs.ReliefHub, error)
	CreateHub(ctx context.Context, h hubs.ReliefHub) error
}

type MissingPersonStore interface {
	ListMissingPersons(ctx context.Context, status missingpersons.Status) ([]missingpersons.Report, error)
	CreateMissingPerson(ctx context.Context, r missingpersons.Report) error
}

type Publisher interface {
	Publish(topic, key string, v interface{}) error
}

func errorResponse(ctx *fiber.Ctx, status int, err error) error {
	resp := hubs.ErrorResponse{Message: err.Error()}
	var verr *validation.Error
	if errors.As(err, &verr) {
		resp.Fields = verr.Fields
	}
	return ctx.Status(status).JSON(resp)
}
