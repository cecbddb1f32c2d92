package invoice

import (
	"errors"
)

var (
	ErrStaffNotFound    = errors.New("staff requirement not found")
	ErrLineItemNotFound = errors.New("custom line item not found")
	ErrRequestNotFound  = errors.New("request not found")
	ErrInvoiceNotFound  = errors.New("invoice not found")
	ErrInvalidData      = errors.New("invalid invoice data")
	ErrPONumberLocked   = errors.New("PO number has already been edited")
	ErrNothingToPay     = errors.New("invoice has no outstanding balance")
	ErrNothingToRefund  = errors.New("invoice has no payment to refund")
)
