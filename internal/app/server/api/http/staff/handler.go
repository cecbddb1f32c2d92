package staff

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"shiftbill/internal/app/server/api/http/apierror"
	"shiftbill/internal/domain/invoice"
)

type Service interface {
	ListStaff(ctx context.Context, requestID uuid.UUID) ([]invoice.StaffRequirement, error)
	CreateStaff(ctx context.Context, staff *invoice.StaffRequirement) error
	UpdateStaff(ctx context.Context, staff *invoice.StaffRequirement) error
	DeleteStaff(ctx context.Context, id uuid.UUID) error
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
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	requestID, err := apierror.ParseID("requestId", input.RequestID)
	if err != nil {
		return nil, err
	}

	staff, err := h.service.ListStaff(ctx, requestID)
	if err != nil {
		return nil, apierror.From(err)
	}
	return &listOutput{Body: staff}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*output, error) {
	staff, err := fromRequest(input.Body)
	if err != nil {
		return nil, err
	}

	if err := h.service.CreateStaff(ctx, staff); err != nil {
		return nil, apierror.From(err)
	}
	return &output{Body: *staff}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*output, error) {
	id, err := apierror.ParseID("id", input.ID)
	if err != nil {
		return nil, err
	}

	staff, err := fromRequest(input.Body)
	if err != nil {
		return nil, err
	}
	staff.ID = id

	if err := h.service.UpdateStaff(ctx, staff); err != nil {
		return nil, apierror.From(err)
	}
	return &output{Body: *staff}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*struct{}, error) {
	id, err := apierror.ParseID("id", input.ID)
	if err != nil {
		return nil, err
	}

	if err := h.service.DeleteStaff(ctx, id); err != nil {
		return nil, apierror.From(err)
	}
	return nil, nil
}

func fromRequest(r staffBody) (*invoice.StaffRequirement, error) {
	staff := &invoice.StaffRequirement{
		Position:  r.Position,
		Date:      r.Date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Rate:      r.Rate,
		Count:     r.Count,
	}
	if r.RequestID != "" {
		requestID, err := apierror.ParseID("request_id", r.RequestID)
		if err != nil {
			return nil, err
		}
		staff.RequestID = requestID
	}
	return staff, nil
}
