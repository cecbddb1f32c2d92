package request

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"shiftbill/internal/app/server/api/http/apierror"
	"shiftbill/internal/domain/invoice"
)

type Service interface {
	GetRequest(ctx context.Context, id uuid.UUID) (*invoice.Request, error)
	UpdateRequest(ctx context.Context, id uuid.UUID, upd invoice.RequestUpdate) (*invoice.Request, error)
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
}

func (h *Handler) get(ctx context.Context, input *getInput) (*output, error) {
	id, err := apierror.ParseID("id", input.ID)
	if err != nil {
		return nil, err
	}

	req, err := h.service.GetRequest(ctx, id)
	if err != nil {
		return nil, apierror.From(err)
	}
	return &output{Body: *req}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*output, error) {
	id, err := apierror.ParseID("id", input.ID)
	if err != nil {
		return nil, err
	}

	req, err := h.service.UpdateRequest(ctx, id, input.Body)
	if err != nil {
		return nil, apierror.From(err)
	}
	return &output{Body: *req}, nil
}
