package billing

import "errors"

var (
	ErrInvalidClock        = errors.New("invalid clock time, expected HH:MM")
	ErrInvalidDate         = errors.New("invalid date, expected YYYY-MM-DD")
	ErrUnknownPosition     = errors.New("unknown staff position")
	ErrUnknownDiscountType = errors.New("unknown discount type")
	ErrUnknownStatus       = errors.New("unknown invoice status")
	ErrUnknownPaymentTerms = errors.New("unknown payment terms")
)
