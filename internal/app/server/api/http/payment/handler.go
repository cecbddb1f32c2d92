package payment

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"shiftbill/internal/app/server/api/http/apierror"
)

type Service interface {
	Checkout(ctx context.Context, invoiceID uuid.UUID) (string, error)
	Refund(ctx context.Context, invoiceID uuid.UUID) (string, error)
}

type Handler struct {
	service    Service
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service Service, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.checkoutOp(), h.checkout)
	huma.Register(api, h.refundOp(), h.refund)
}

func (h *Handler) checkout(ctx context.Context, in *input) (*output, error) {
	return h.reference(ctx, in, h.service.Checkout)
}

func (h *Handler) refund(ctx context.Context, in *input) (*output, error) {
	return h.reference(ctx, in, h.service.Refund)
}

func (h *Handler) reference(
	ctx context.Context,
	in *input,
	call func(context.Context, uuid.UUID) (string, error),
) (*output, error) {
	id, err := apierror.ParseID("invoiceId", in.InvoiceID)
	if err != nil {
		return nil, err
	}

	ref, err := call(ctx, id)
	if err != nil {
		return nil, apierror.From(err)
	}
	return &output{Body: ReferenceBody{Reference: ref}}, nil
}
