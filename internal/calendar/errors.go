package calendar

import "errors"

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrDuplicateID     = errors.New("duplicate event id")
	ErrIndexOutOfRange = errors.New("event index out of range")
	ErrTitleRequired   = errors.New("title is required")
	ErrTimeRequired    = errors.New("start and end are required")
	ErrInvalidRange    = errors.New("end must not be before start")
	ErrInvalidState    = errors.New("operation not allowed in current state")
	ErrNoInteraction   = errors.New("no interaction available to resolve prompt")
	ErrCorruptSnapshot = errors.New("stored event list is malformed")
)
