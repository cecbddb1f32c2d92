package apierror

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"shiftbill/internal/domain/invoice"
)

// CodePONumberLocked машиночитаемый код отказа при повторной правке номера PO.
// Передается в errors[].value с location "code".
const CodePONumberLocked = "po_number_locked"

// From переводит ошибку сервиса в ответ huma.
func From(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, invoice.ErrPONumberLocked):
		return huma.Error409Conflict(invoice.ErrPONumberLocked.Error(), &huma.ErrorDetail{
			Message:  invoice.ErrPONumberLocked.Error(),
			Location: "code",
			Value:    CodePONumberLocked,
		})
	case errors.Is(err, invoice.ErrStaffNotFound),
		errors.Is(err, invoice.ErrLineItemNotFound),
		errors.Is(err, invoice.ErrRequestNotFound),
		errors.Is(err, invoice.ErrInvoiceNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, invoice.ErrInvalidData):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, invoice.ErrNothingToPay), errors.Is(err, invoice.ErrNothingToRefund):
		return huma.Error409Conflict(err.Error())
	}
	return huma.Error500InternalServerError("internal server error")
}

// ParseID разбирает идентификатор из пути.
func ParseID(name, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, huma.Error422UnprocessableEntity("invalid "+name, &huma.ErrorDetail{
			Message:  "must be a UUID",
			Location: "path." + name,
			Value:    raw,
		})
	}
	return id, nil
}
