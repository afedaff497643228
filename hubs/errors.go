package hubs

import (
	"errors"

	"github.com/acikkaynak/reliefhub-go/pkg/validation"
)

var (
	ErrValidation            = validation.ErrInvalid
	ErrGeocodeFailed         = errors.New("could not resolve location")
	ErrRegistrationFailed    = errors.New("could not register relief hub")
	ErrListFailed            = errors.New("could not list relief hubs")
	ErrUnresolvedCoordinates = errors.New("relief hub coordinates are not resolved")
)
