package consultation

import "errors"

var (
	ErrValidation              = errors.New("validation error")
	ErrNotFound                = errors.New("not_found")
	ErrSlotTaken               = errors.New("slot already taken")
	ErrOverbooking             = errors.New("overbooking constraint violation")
	ErrInvalidStatusTransition = errors.New("invalid_status_transition")
)
