package invoice

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) getOp() huma.Operation {
	return huma.Operation{
		OperationID: "invoice-get-by-request",
		Method:      http.MethodGet,
		Path:        "/api/invoices/request/{requestId}",
		Summary:     "Счет заявки",
		Tags:        []string{"invoices"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "invoice-update",
		Method:      http.MethodPut,
		Path:        "/api/invoices/{id}",
		Summary:     "Обновить счет",
		Description: "Номер PO можно изменить один раз. Повторная попытка возвращает 409 с кодом po_number_locked.",
		Tags:        []string{"invoices"},
		Errors:      []int{http.StatusNotFound, http.StatusConflict, http.StatusUnprocessableEntity},
		Middlewares: h.middleware,
	}
}

func (h *Handler) ratesOp() huma.Operation {
	return huma.Operation{
		OperationID: "invoice-rates",
		Method:      http.MethodPut,
		Path:        "/api/rates/{requestId}",
		Summary:     "Сохранить произвольные строки и пересчитать итоги",
		Tags:        []string{"invoices"},
		Errors:      []int{http.StatusNotFound, http.StatusUnprocessableEntity},
		Middlewares: h.middleware,
	}
}
