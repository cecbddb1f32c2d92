package lineitem

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "line-item-list",
		Method:      http.MethodGet,
		Path:        "/api/custom-line-items/request/{requestId}",
		Summary:     "Произвольные строки заявки",
		Tags:        []string{"line-items"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "line-item-create",
		Method:        http.MethodPost,
		Path:          "/api/custom-line-items",
		Summary:       "Создать произвольную строку",
		Tags:          []string{"line-items"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID:   "line-item-delete",
		Method:        http.MethodDelete,
		Path:          "/api/custom-line-items/{id}",
		Summary:       "Удалить произвольную строку",
		Tags:          []string{"line-items"},
		DefaultStatus: http.StatusNoContent,
		Middlewares:   h.middleware,
	}
}
