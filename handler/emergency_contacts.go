package handler

import (
	"github.com/acikkaynak/reliefhub-go/contacts"
	"github.com/gofiber/fiber/v2"
)

// GetEmergencyContacts godoc
// @Summary            List emergency services with dial links
// @Tags               EmergencyContact
// @Produce            json
// @Success            200 {object} []contacts.Contact
// @Router             /emergency-contacts [GET]
func GetEmergencyContacts(ctx *fiber.Ctx) error {
	return ctx.JSON(contacts.Directory())
}
