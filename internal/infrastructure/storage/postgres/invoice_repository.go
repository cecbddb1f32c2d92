package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"shiftbill/internal/domain/billing"
	"shiftbill/internal/domain/invoice"
)

type InvoiceRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewInvoiceRepository(pool *pgxpool.Pool, log *slog.Logger) *InvoiceRepository {
	return &InvoiceRepository{
		pool: pool,
		log:  log.With("component", "invoice_repository"),
	}
}

const invoiceColumns = `
	id, request_id, due_date, payment_terms, discount_type, discount_value, shipping_cost,
	subtotal, discount_amount, transaction_fee, service_fee, amount, balance, amount_paid,
	status, po_number, po_edit_counter, notes, ship_to, terms_and_conditions, payment_intent,
	updated_at`

func (r *InvoiceRepository) GetInvoice(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	const query = `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`

	inv, err := scanInvoice(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, invoice.ErrInvoiceNotFound
		}
		r.log.Error("failed to get invoice", "id", id, "error", err)
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

func (r *InvoiceRepository) GetInvoiceByRequest(ctx context.Context, requestID uuid.UUID) (*invoice.Invoice, error) {
	const query = `SELECT ` + invoiceColumns + ` FROM invoices WHERE request_id = $1`

	inv, err := scanInvoice(r.pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, invoice.ErrInvoiceNotFound
		}
		r.log.Error("failed to get invoice by request", "request_id", requestID, "error", err)
		return nil, fmt.Errorf("get invoice by request: %w", err)
	}
	return inv, nil
}

// UpdateInvoice пишет счет при условии, что po_edit_counter не изменился с момента
// чтения. Если строки нет совсем - ErrInvoiceNotFound, если счетчик уже другой -
// ErrPONumberLocked.
func (r *InvoiceRepository) UpdateInvoice(ctx context.Context, inv *invoice.Invoice, expectedCounter int) error {
	const query = `
		UPDATE invoices
		SET due_date = $3, payment_terms = $4, discount_type = $5, discount_value = $6,
		    shipping_cost = $7, subtotal = $8, discount_amount = $9, transaction_fee = $10,
		    service_fee = $11, amount = $12, balance = $13, status = $14, po_number = $15,
		    po_edit_counter = $16, notes = $17, ship_to = $18, terms_and_conditions = $19,
		    updated_at = NOW()
		WHERE id = $1 AND po_edit_counter = $2
		RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		inv.ID, expectedCounter,
		inv.DueDate, inv.PaymentTerms, inv.DiscountType, inv.DiscountValue,
		inv.ShippingCost, inv.Subtotal, inv.DiscountAmount, inv.TransactionFee,
		inv.ServiceFee, inv.Amount, inv.Balance, inv.Status, inv.PONumber,
		inv.POEditCounter, inv.Notes, inv.ShipTo, inv.TermsAndConditions,
	).Scan(&inv.UpdatedAt)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		r.log.Error("failed to update invoice", "id", inv.ID, "error", err)
		return fmt.Errorf("update invoice: %w", err)
	}

	if _, getErr := r.GetInvoice(ctx, inv.ID); getErr != nil {
		return getErr
	}
	r.log.Warn("invoice PO counter changed concurrently", "id", inv.ID, "expected", expectedCounter)
	return invoice.ErrPONumberLocked
}

func (r *InvoiceRepository) UpdatePayment(ctx context.Context, id uuid.UUID, intent string, status billing.Status) error {
	const query = `
		UPDATE invoices
		SET payment_intent = $2, status = $3, updated_at = NOW()
		WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, intent, status)
	if err != nil {
		r.log.Error("failed to update invoice payment", "id", id, "error", err)
		return fmt.Errorf("update invoice payment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return invoice.ErrInvoiceNotFound
	}
	return nil
}

func scanInvoice(row pgx.Row) (*invoice.Invoice, error) {
	var inv invoice.Invoice
	err := row.Scan(
		&inv.ID, &inv.RequestID, &inv.DueDate, &inv.PaymentTerms, &inv.DiscountType,
		&inv.DiscountValue, &inv.ShippingCost, &inv.Subtotal, &inv.DiscountAmount,
		&inv.TransactionFee, &inv.ServiceFee, &inv.Amount, &inv.Balance, &inv.AmountPaid,
		&inv.Status, &inv.PONumber, &inv.POEditCounter, &inv.Notes, &inv.ShipTo,
		&inv.TermsAndConditions, &inv.PaymentIntent, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if inv.DueDate != nil {
		due := inv.DueDate.UTC()
		inv.DueDate = &due
	}
	return &inv, nil
}
