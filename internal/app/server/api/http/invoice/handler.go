package invoice

import (
	"context"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"shiftbill/internal/app/server/api/http/apierror"
	"shiftbill/internal/domain/invoice"
)

type Service interface {
	GetInvoiceByRequest(ctx context.Context, requestID uuid.UUID) (*invoice.Invoice, error)
	UpdateInvoice(ctx context.Context, id uuid.UUID, upd invoice.InvoiceUpdate) (*invoice.Invoice, error)
	Recompute(ctx context.Context, requestID uuid.UUID, items []invoice.CustomLineItem) (*invoice.Recomputation, error)
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
	huma.Register(api, h.getOp(), h.get)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.ratesOp(), h.rates)
}

func (h *Handler) get(ctx context.Context, input *getInput) (*output, error) {
	requestID, err := apierror.ParseID("requestId", input.RequestID)
	if err != nil {
		return nil, err
	}

	inv, err := h.service.GetInvoiceByRequest(ctx, requestID)
	if err != nil {
		return nil, apierror.From(err)
	}
	return &output{Body: *inv}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*output, error) {
	id, err := apierror.ParseID("id", input.ID)
	if err != nil {
		return nil, err
	}

	inv, err := h.service.UpdateInvoice(ctx, id, input.Body)
	if err != nil {
		return nil, apierror.From(err)
	}
	return &output{Body: *inv}, nil
}

func (h *Handler) rates(ctx context.Context, input *ratesInput) (*ratesOutput, error) {
	requestID, err := apierror.ParseID("requestId", input.RequestID)
	if err != nil {
		return nil, err
	}

	items := make([]invoice.CustomLineItem, 0, len(input.Body))
	for i, it := range input.Body {
		item := invoice.CustomLineItem{
			RequestID:   requestID,
			Description: it.Description,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
		}
		if it.UUID != "" {
			id, err := apierror.ParseID(fmt.Sprintf("body[%d].uuid", i), it.UUID)
			if err != nil {
				return nil, err
			}
			item.ID = id
		}
		items = append(items, item)
	}

	res, err := h.service.Recompute(ctx, requestID, items)
	if err != nil {
		return nil, apierror.From(err)
	}
	return &ratesOutput{Body: *res}, nil
}
