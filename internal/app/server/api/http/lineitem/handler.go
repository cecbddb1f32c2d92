package lineitem

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"shiftbill/internal/app/server/api/http/apierror"
	"shiftbill/internal/domain/invoice"
)

type Service interface {
	ListLineItems(ctx context.Context, requestID uuid.UUID) ([]invoice.CustomLineItem, error)
	CreateLineItem(ctx context.Context, item *invoice.CustomLineItem) error
	DeleteLineItem(ctx context.Context, id uuid.UUID) error
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
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	requestID, err := apierror.ParseID("requestId", input.RequestID)
	if err != nil {
		return nil, err
	}

	items, err := h.service.ListLineItems(ctx, requestID)
	if err != nil {
		return nil, apierror.From(err)
	}
	return &listOutput{Body: items}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*output, error) {
	requestID, err := apierror.ParseID("request_id", input.Body.RequestID)
	if err != nil {
		return nil, err
	}

	item := &invoice.CustomLineItem{
		RequestID:   requestID,
		Description: input.Body.Description,
		Quantity:    input.Body.Quantity,
		Rate:        input.Body.Rate,
	}
	if err := h.service.CreateLineItem(ctx, item); err != nil {
		return nil, apierror.From(err)
	}
	return &output{Body: *item}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*struct{}, error) {
	id, err := apierror.ParseID("id", input.ID)
	if err != nil {
		return nil, err
	}

	if err := h.service.DeleteLineItem(ctx, id); err != nil {
		return nil, apierror.From(err)
	}
	return nil, nil
}
