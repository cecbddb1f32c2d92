package staff

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "staff-list",
		Method:      http.MethodGet,
		Path:        "/api/staff-requirements/request/{requestId}",
		Summary:     "Строки персонала заявки",
		Tags:        []string{"staff"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "staff-create",
		Method:        http.MethodPost,
		Path:          "/api/staff-requirements",
		Summary:       "Создать строку персонала",
		Description:   "Сумма строки вычисляется сервером по часам смены в опорном часовом поясе.",
		Tags:          []string{"staff"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "staff-update",
		Method:      http.MethodPut,
		Path:        "/api/staff-requirements/{id}",
		Summary:     "Обновить строку персонала",
		Tags:        []string{"staff"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID:   "staff-delete",
		Method:        http.MethodDelete,
		Path:          "/api/staff-requirements/{id}",
		Summary:       "Удалить строку персонала",
		Tags:          []string{"staff"},
		DefaultStatus: http.StatusNoContent,
		Middlewares:   h.middleware,
	}
}
