package status

import "errors"

var (
	ErrValidation         = errors.New("validation: missing or invalid field")
	ErrNotFound           = errors.New("record: not found")
	ErrInvalidServiceType = errors.New("service type: unknown service type")
	ErrInvalidTransition  = errors.New("ticket: invalid status transition")
	ErrMissingCounter     = errors.New("ticket: counter required to call a ticket")
	ErrTerminalState      = errors.New("ticket: ticket already completed")
	ErrCounterInactive    = errors.New("counter: counter is not active")
	ErrInvalidCredentials = errors.New("auth: invalid username or password")
	ErrSessionExpired     = errors.New("auth: session expired or revoked")
)
