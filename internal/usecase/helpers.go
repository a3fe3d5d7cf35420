package usecase

import (
	"errors"
	"strings"
	"time"

	"hostal-booking/internal/data/repository"
	"hostal-booking/internal/dto/request"
	"hostal-booking/pkg/daterange"
	"hostal-booking/pkg/utils"

	"github.com/google/uuid"
)

// now is the service clock; tests pin it.
var now = time.Now

func validateRequest(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return &Error{
			Kind:    KindValidation,
			Reason:  "invalid_request",
			Message: "validation failed: " + utils.FormatValidationErrors(errs),
			Fields:  errs,
		}
	}
	return nil
}

func parseID(what, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil, validationError("invalid %s ID format %q", what, value)
	}
	return id, nil
}

func parseStay(checkIn, checkOut string) (daterange.Range, error) {
	stay, err := daterange.Parse(checkIn, checkOut)
	if err != nil {
		return daterange.Range{}, &Error{Kind: KindValidation, Reason: "invalid_dates", Message: err.Error()}
	}
	return stay, nil
}

func normalizePage(p *request.PaginatedRequest) {
	p.Normalize()
}

// serviceError converts whatever escaped a transaction into a service error.
func serviceError(op string, err error) error {
	if err == nil {
		return nil
	}
	if e, ok := AsError(err); ok {
		return e
	}
	switch {
	case errors.Is(err, repository.ErrOverlap):
		return &Error{Kind: KindConflict, Reason: ErrRoomUnavailable.Reason, Message: "room is not available for the requested dates", Err: err}
	case errors.Is(err, repository.ErrVersionConflict):
		return &Error{Kind: KindConflict, Reason: ErrConcurrentUpdate.Reason, Message: "reservation was modified concurrently, reload and retry", Err: err}
	}
	return dependency(op, err)
}
