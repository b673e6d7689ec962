package handlers

import (
	"errors"

	"antrian-fm/internal/status"

	"github.com/pocketbase/pocketbase/apis"
)

// mapError converts service sentinels into API errors. Anything unexpected
// surfaces as a generic bad request with the cause attached for logging.
func mapError(err error) error {
	switch {
	case errors.Is(err, status.ErrNotFound):
		return apis.NewNotFoundError("Record not found", err)
	case errors.Is(err, status.ErrInvalidCredentials):
		return apis.NewUnauthorizedError("Invalid username or password", nil)
	case errors.Is(err, status.ErrSessionExpired):
		return apis.NewUnauthorizedError("Session expired", nil)
	case errors.Is(err, status.ErrValidation),
		errors.Is(err, status.ErrInvalidServiceType),
		errors.Is(err, status.ErrInvalidTransition),
		errors.Is(err, status.ErrMissingCounter),
		errors.Is(err, status.ErrTerminalState),
		errors.Is(err, status.ErrCounterInactive):
		return apis.NewBadRequestError(err.Error(), nil)
	}
	return apis.NewBadRequestError("Request failed", err)
}
