package invoice

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"shiftbill/internal/domain/billing"
)

const (
	checkoutPrefix = "cs_"
	refundPrefix   = "re_"
)

// Servicer business operations behind the REST collaborators of the invoice editor.
type Servicer interface {
	ListStaff(ctx context.Context, requestID uuid.UUID) ([]StaffRequirement, error)
	CreateStaff(ctx context.Context, staff *StaffRequirement) error
	UpdateStaff(ctx context.Context, staff *StaffRequirement) error
	DeleteStaff(ctx context.Context, id uuid.UUID) error

	ListLineItems(ctx context.Context, requestID uuid.UUID) ([]CustomLineItem, error)
	CreateLineItem(ctx context.Context, item *CustomLineItem) error
	DeleteLineItem(ctx context.Context, id uuid.UUID) error

	GetRequest(ctx context.Context, id uuid.UUID) (*Request, error)
	UpdateRequest(ctx context.Context, id uuid.UUID, upd RequestUpdate) (*Request, error)

	GetInvoiceByRequest(ctx context.Context, requestID uuid.UUID) (*Invoice, error)
	UpdateInvoice(ctx context.Context, id uuid.UUID, upd InvoiceUpdate) (*Invoice, error)
	Recompute(ctx context.Context, requestID uuid.UUID, items []CustomLineItem) (*Recomputation, error)

	Checkout(ctx context.Context, invoiceID uuid.UUID) (string, error)
	Refund(ctx context.Context, invoiceID uuid.UUID) (string, error)
}

var _ Servicer = (*Service)(nil)

// Service implements Servicer on top of the repositories.
type Service struct {
	staff    StaffRepository
	items    LineItemRepository
	requests RequestRepository
	invoices InvoiceRepository
	loc      *time.Location
	log      *slog.Logger
}

// NewService creates the invoice service. loc is the reference time zone used
// to turn stored instants into wall-clock shift hours.
func NewService(
	staff StaffRepository,
	items LineItemRepository,
	requests RequestRepository,
	invoices InvoiceRepository,
	loc *time.Location,
	log *slog.Logger,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		staff:    staff,
		items:    items,
		requests: requests,
		invoices: invoices,
		loc:      loc,
		log:      log.With("component", "invoice_service"),
	}
}

func (s *Service) ListStaff(ctx context.Context, requestID uuid.UUID) ([]StaffRequirement, error) {
	staff, err := s.staff.ListStaff(ctx, requestID)
	if err != nil {
		s.log.Error("failed to list staff requirements", "request_id", requestID, "error", err)
		return nil, fmt.Errorf("list staff requirements: %w", err)
	}
	return staff, nil
}

// CreateStaff stores a new staff requirement with a server-computed amount.
func (s *Service) CreateStaff(ctx context.Context, staff *StaffRequirement) error {
	if err := s.prepareStaff(staff); err != nil {
		return err
	}
	staff.ID = uuid.New()

	if err := s.staff.CreateStaff(ctx, staff); err != nil {
		s.log.Error("failed to create staff requirement",
			"request_id", staff.RequestID, "position", staff.Position, "error", err)
		return fmt.Errorf("create staff requirement: %w", err)
	}

	s.log.Info("staff requirement created",
		"id", staff.ID, "request_id", staff.RequestID, "amount", staff.Amount)
	return nil
}

// UpdateStaff replaces an existing staff requirement and recomputes its amount.
func (s *Service) UpdateStaff(ctx context.Context, staff *StaffRequirement) error {
	current, err := s.staff.GetStaff(ctx, staff.ID)
	if err != nil {
		if errors.Is(err, ErrStaffNotFound) {
			return ErrStaffNotFound
		}
		return fmt.Errorf("get staff requirement for update: %w", err)
	}
	if staff.RequestID == uuid.Nil {
		staff.RequestID = current.RequestID
	}

	if err := s.prepareStaff(staff); err != nil {
		return err
	}

	if err := s.staff.UpdateStaff(ctx, staff); err != nil {
		if errors.Is(err, ErrStaffNotFound) {
			return ErrStaffNotFound
		}
		s.log.Error("failed to update staff requirement", "id", staff.ID, "error", err)
		return fmt.Errorf("update staff requirement: %w", err)
	}

	s.log.Info("staff requirement updated", "id", staff.ID, "amount", staff.Amount)
	return nil
}

func (s *Service) DeleteStaff(ctx context.Context, id uuid.UUID) error {
	if err := s.staff.DeleteStaff(ctx, id); err != nil {
		if errors.Is(err, ErrStaffNotFound) {
			return ErrStaffNotFound
		}
		s.log.Error("failed to delete staff requirement", "id", id, "error", err)
		return fmt.Errorf("delete staff requirement: %w", err)
	}
	s.log.Info("staff requirement deleted", "id", id)
	return nil
}

// prepareStaff validates the line and fills derived fields. The calendar date
// follows the start instant in the reference zone.
func (s *Service) prepareStaff(staff *StaffRequirement) error {
	if staff.RequestID == uuid.Nil {
		return fmt.Errorf("%w: request_id is required", ErrInvalidData)
	}
	if err := staff.Position.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	if staff.StartTime.IsZero() || staff.EndTime.IsZero() {
		return fmt.Errorf("%w: start_time and end_time are required", ErrInvalidData)
	}
	if !validAmount(staff.Rate) || staff.Count < 0 {
		return fmt.Errorf("%w: rate and count must be non-negative", ErrInvalidData)
	}

	line := staff.Line(s.loc)
	staff.StartTime = staff.StartTime.UTC()
	staff.EndTime = staff.EndTime.UTC()
	staff.Date = line.Date
	staff.Amount = billing.StaffLineAmount(line)
	return nil
}

func (s *Service) ListLineItems(ctx context.Context, requestID uuid.UUID) ([]CustomLineItem, error) {
	items, err := s.items.ListLineItems(ctx, requestID)
	if err != nil {
		s.log.Error("failed to list custom line items", "request_id", requestID, "error", err)
		return nil, fmt.Errorf("list custom line items: %w", err)
	}
	return items, nil
}

func (s *Service) CreateLineItem(ctx context.Context, item *CustomLineItem) error {
	if item.RequestID == uuid.Nil {
		return fmt.Errorf("%w: request_id is required", ErrInvalidData)
	}
	if err := prepareLineItem(item); err != nil {
		return err
	}
	item.ID = uuid.New()

	if err := s.items.UpsertLineItem(ctx, item); err != nil {
		s.log.Error("failed to create custom line item", "request_id", item.RequestID, "error", err)
		return fmt.Errorf("create custom line item: %w", err)
	}
	return nil
}

func (s *Service) DeleteLineItem(ctx context.Context, id uuid.UUID) error {
	if err := s.items.DeleteLineItem(ctx, id); err != nil {
		if errors.Is(err, ErrLineItemNotFound) {
			return ErrLineItemNotFound
		}
		s.log.Error("failed to delete custom line item", "id", id, "error", err)
		return fmt.Errorf("delete custom line item: %w", err)
	}
	s.log.Info("custom line item deleted", "id", id)
	return nil
}

func prepareLineItem(item *CustomLineItem) error {
	if strings.TrimSpace(item.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidData)
	}
	if !validAmount(item.Rate) || item.Quantity < 0 {
		return fmt.Errorf("%w: quantity and rate must be non-negative", ErrInvalidData)
	}
	item.Total = billing.CustomLineTotal(billing.CustomLine{Quantity: item.Quantity, Rate: item.Rate})
	return nil
}

func (s *Service) GetRequest(ctx context.Context, id uuid.UUID) (*Request, error) {
	req, err := s.requests.GetRequest(ctx, id)
	if err != nil {
		if errors.Is(err, ErrRequestNotFound) {
			return nil, ErrRequestNotFound
		}
		s.log.Error("failed to get request", "id", id, "error", err)
		return nil, fmt.Errorf("get request: %w", err)
	}
	return req, nil
}

// UpdateRequest overwrites the client contact fields of a request.
func (s *Service) UpdateRequest(ctx context.Context, id uuid.UUID, upd RequestUpdate) (*Request, error) {
	req, err := s.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	req.FirstName = upd.FirstName
	req.LastName = upd.LastName
	req.Email = upd.Email
	req.CompanyName = upd.CompanyName
	req.EventLocation = upd.EventLocation

	if err := s.requests.UpdateRequest(ctx, req); err != nil {
		s.log.Error("failed to update request", "id", id, "error", err)
		return nil, fmt.Errorf("update request: %w", err)
	}
	return req, nil
}

func (s *Service) GetInvoiceByRequest(ctx context.Context, requestID uuid.UUID) (*Invoice, error) {
	inv, err := s.invoices.GetInvoiceByRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, ErrInvoiceNotFound) {
			return nil, ErrInvoiceNotFound
		}
		s.log.Error("failed to get invoice by request", "request_id", requestID, "error", err)
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// UpdateInvoice applies an invoice update. The PO number may change at most once:
// a differing number on an invoice whose counter is already 1 yields ErrPONumberLocked.
// Balance is always derived from Amount and the stored AmountPaid.
func (s *Service) UpdateInvoice(ctx context.Context, id uuid.UUID, upd InvoiceUpdate) (*Invoice, error) {
	if err := validateInvoiceUpdate(&upd); err != nil {
		return nil, err
	}

	inv, err := s.invoices.GetInvoice(ctx, id)
	if err != nil {
		if errors.Is(err, ErrInvoiceNotFound) {
			return nil, ErrInvoiceNotFound
		}
		s.log.Error("failed to get invoice for update", "id", id, "error", err)
		return nil, fmt.Errorf("get invoice for update: %w", err)
	}

	expectedCounter := inv.POEditCounter
	if upd.PONumber != nil && *upd.PONumber != inv.PONumber {
		if inv.POEditCounter >= 1 {
			s.log.Warn("PO number edit rejected", "id", id, "po_edit_counter", inv.POEditCounter)
			return nil, ErrPONumberLocked
		}
		inv.PONumber = *upd.PONumber
		inv.POEditCounter = 1
	}

	if upd.DueDate != nil {
		due := billing.DateOf(*upd.DueDate)
		inv.DueDate = &due
	}
	if upd.PaymentTerms != "" {
		inv.PaymentTerms = upd.PaymentTerms
	}
	if upd.Status != "" {
		inv.Status = upd.Status
	}
	inv.DiscountType = upd.DiscountType
	inv.DiscountValue = upd.DiscountValue
	inv.ShippingCost = upd.ShippingCost
	inv.Subtotal = upd.Subtotal
	inv.DiscountAmount = upd.DiscountAmount
	inv.TransactionFee = upd.TransactionFee
	inv.ServiceFee = upd.ServiceFee
	inv.Amount = upd.Amount
	inv.Balance = billing.Round(upd.Amount - inv.AmountPaid)
	inv.Notes = upd.Notes
	inv.ShipTo = upd.ShipTo
	inv.TermsAndConditions = upd.TermsAndConditions

	if err := s.invoices.UpdateInvoice(ctx, inv, expectedCounter); err != nil {
		if errors.Is(err, ErrPONumberLocked) {
			return nil, ErrPONumberLocked
		}
		s.log.Error("failed to update invoice", "id", id, "error", err)
		return nil, fmt.Errorf("update invoice: %w", err)
	}

	s.log.Info("invoice updated", "id", id, "amount", inv.Amount, "balance", inv.Balance)
	return inv, nil
}

func validateInvoiceUpdate(upd *InvoiceUpdate) error {
	upd.DiscountType = upd.DiscountType.Normalize()
	if err := upd.DiscountType.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	if upd.PaymentTerms != "" {
		if err := upd.PaymentTerms.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidData, err)
		}
	}
	if upd.Status != "" {
		if err := upd.Status.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidData, err)
		}
	}
	if !validAmount(upd.DiscountValue) || !validAmount(upd.ShippingCost) {
		return fmt.Errorf("%w: discount and shipping must be non-negative", ErrInvalidData)
	}
	if upd.DiscountType == billing.DiscountPercentage && upd.DiscountValue > 100 {
		return fmt.Errorf("%w: percentage discount above 100", ErrInvalidData)
	}
	return nil
}

// Recompute upserts the submitted custom lines and returns authoritative totals:
// stored staff amounts plus submitted custom totals, with the invoice's discount,
// shipping and fees applied.
func (s *Service) Recompute(ctx context.Context, requestID uuid.UUID, items []CustomLineItem) (*Recomputation, error) {
	for i := range items {
		if err := prepareLineItem(&items[i]); err != nil {
			return nil, fmt.Errorf("line item %d: %w", i, err)
		}
		items[i].RequestID = requestID
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
	}

	inv, err := s.GetInvoiceByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	staff, err := s.ListStaff(ctx, requestID)
	if err != nil {
		return nil, err
	}

	subtotal := 0.0
	for _, st := range staff {
		subtotal += st.Amount
	}

	for i := range items {
		if err := s.items.UpsertLineItem(ctx, &items[i]); err != nil {
			s.log.Error("failed to upsert custom line item",
				"id", items[i].ID, "request_id", requestID, "error", err)
			return nil, fmt.Errorf("upsert custom line item: %w", err)
		}
		subtotal += items[i].Total
	}

	totals := billing.AggregateSubtotal(billing.Round(subtotal), inv.DiscountType, inv.DiscountValue, inv.ShippingCost)

	s.log.Debug("rates recomputed",
		"request_id", requestID, "subtotal", totals.Subtotal, "amount", totals.GrandTotal)

	if items == nil {
		items = []CustomLineItem{}
	}
	return &Recomputation{
		Subtotal:       totals.Subtotal,
		DiscountAmount: totals.DiscountAmount,
		TransactionFee: totals.TransactionFee,
		ServiceFee:     totals.ServiceFee,
		Amount:         totals.GrandTotal,
		LineItems:      items,
	}, nil
}

// Checkout generates a checkout reference for the outstanding balance.
func (s *Service) Checkout(ctx context.Context, invoiceID uuid.UUID) (string, error) {
	inv, err := s.getInvoice(ctx, invoiceID)
	if err != nil {
		return "", err
	}
	if inv.Balance <= 0 || inv.Status == billing.StatusPaid {
		return "", ErrNothingToPay
	}

	ref := reference(checkoutPrefix)
	if err := s.invoices.UpdatePayment(ctx, invoiceID, ref, inv.Status); err != nil {
		s.log.Error("failed to store checkout reference", "id", invoiceID, "error", err)
		return "", fmt.Errorf("store checkout reference: %w", err)
	}

	s.log.Info("checkout reference generated", "id", invoiceID, "balance", inv.Balance)
	return ref, nil
}

// Refund generates a refund reference and marks the invoice refunded.
func (s *Service) Refund(ctx context.Context, invoiceID uuid.UUID) (string, error) {
	inv, err := s.getInvoice(ctx, invoiceID)
	if err != nil {
		return "", err
	}
	if inv.AmountPaid <= 0 || inv.Status == billing.StatusRefunded {
		return "", ErrNothingToRefund
	}

	ref := reference(refundPrefix)
	if err := s.invoices.UpdatePayment(ctx, invoiceID, inv.PaymentIntent, billing.StatusRefunded); err != nil {
		s.log.Error("failed to mark invoice refunded", "id", invoiceID, "error", err)
		return "", fmt.Errorf("mark invoice refunded: %w", err)
	}

	s.log.Info("refund reference generated", "id", invoiceID, "amount_paid", inv.AmountPaid)
	return ref, nil
}

func (s *Service) getInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	inv, err := s.invoices.GetInvoice(ctx, id)
	if err != nil {
		if errors.Is(err, ErrInvoiceNotFound) {
			return nil, ErrInvoiceNotFound
		}
		s.log.Error("failed to get invoice", "id", id, "error", err)
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

func reference(prefix string) string {
	return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func validAmount(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
