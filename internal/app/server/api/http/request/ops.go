package request

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) getOp() huma.Operation {
	return huma.Operation{
		OperationID: "request-get",
		Method:      http.MethodGet,
		Path:        "/api/requests/{id}",
		Summary:     "Получить заявку",
		Tags:        []string{"requests"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "request-update",
		Method:      http.MethodPut,
		Path:        "/api/requests/{id}",
		Summary:     "Обновить данные клиента",
		Description: "Меняет только контактные поля клиента. Номер PO хранится в счете.",
		Tags:        []string{"requests"},
		Middlewares: h.middleware,
	}
}
