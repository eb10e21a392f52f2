package project

import "errors"

var (
	ErrValidation              = errors.New("validation error")
	ErrNotFound                = errors.New("not_found")
	ErrInvalidStatusTransition = errors.New("invalid_status_transition")
)
