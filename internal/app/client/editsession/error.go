package editsession

import "errors"

var (
	ErrInvalidValue    = errors.New("invalid value")
	ErrUnknownField    = errors.New("unknown field")
	ErrIndexOutOfRange = errors.New("row index out of range")
	ErrIncompletePlan  = errors.New("incomplete row")
)
