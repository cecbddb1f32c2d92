package invoice

import (
	"context"

	"github.com/google/uuid"

	"shiftbill/internal/domain/billing"
)

type StaffRepository interface {
	ListStaff(ctx context.Context, requestID uuid.UUID) ([]StaffRequirement, error)
	GetStaff(ctx context.Context, id uuid.UUID) (*StaffRequirement, error)
	CreateStaff(ctx context.Context, staff *StaffRequirement) error
	UpdateStaff(ctx context.Context, staff *StaffRequirement) error
	DeleteStaff(ctx context.Context, id uuid.UUID) error
}

type LineItemRepository interface {
	ListLineItems(ctx context.Context, requestID uuid.UUID) ([]CustomLineItem, error)
	// UpsertLineItem создает строку или обновляет существующую с тем же ID.
	UpsertLineItem(ctx context.Context, item *CustomLineItem) error
	DeleteLineItem(ctx context.Context, id uuid.UUID) error
}

type RequestRepository interface {
	GetRequest(ctx context.Context, id uuid.UUID) (*Request, error)
	UpdateRequest(ctx context.Context, req *Request) error
}

type InvoiceRepository interface {
	GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	GetInvoiceByRequest(ctx context.Context, requestID uuid.UUID) (*Invoice, error)
	// UpdateInvoice сохраняет счет, только если счетчик правок PO в базе
	// все еще равен expectedCounter; иначе ErrPONumberLocked.
	UpdateInvoice(ctx context.Context, inv *Invoice, expectedCounter int) error
	UpdatePayment(ctx context.Context, id uuid.UUID, intent string, status billing.Status) error
}
