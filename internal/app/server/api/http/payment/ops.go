package payment

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) checkoutOp() huma.Operation {
	return huma.Operation{
		OperationID: "payment-checkout",
		Method:      http.MethodPost,
		Path:        "/api/payments/checkout/{invoiceId}",
		Summary:     "Создать ссылку на оплату",
		Tags:        []string{"payments"},
		Errors:      []int{http.StatusNotFound, http.StatusConflict},
		Middlewares: h.middleware,
	}
}

func (h *Handler) refundOp() huma.Operation {
	return huma.Operation{
		OperationID: "payment-refund",
		Method:      http.MethodPost,
		Path:        "/api/payments/refund/{invoiceId}",
		Summary:     "Оформить возврат",
		Tags:        []string{"payments"},
		Errors:      []int{http.StatusNotFound, http.StatusConflict},
		Middlewares: h.middleware,
	}
}
