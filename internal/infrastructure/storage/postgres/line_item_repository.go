package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"shiftbill/internal/domain/invoice"
)

type LineItemRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewLineItemRepository(pool *pgxpool.Pool, log *slog.Logger) *LineItemRepository {
	return &LineItemRepository{
		pool: pool,
		log:  log.With("component", "line_item_repository"),
	}
}

func (r *LineItemRepository) ListLineItems(ctx context.Context, requestID uuid.UUID) ([]invoice.CustomLineItem, error) {
	const query = `
		SELECT id, request_id, description, quantity, rate, total, created_at
		FROM custom_line_items
		WHERE request_id = $1
		ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query, requestID)
	if err != nil {
		r.log.Error("failed to list custom line items", "request_id", requestID, "error", err)
		return nil, fmt.Errorf("list custom line items: %w", err)
	}
	defer rows.Close()

	items := make([]invoice.CustomLineItem, 0)
	for rows.Next() {
		var it invoice.CustomLineItem
		if err := rows.Scan(
			&it.ID, &it.RequestID, &it.Description, &it.Quantity, &it.Rate, &it.Total, &it.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan custom line item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate custom line items: %w", err)
	}
	return items, nil
}

func (r *LineItemRepository) UpsertLineItem(ctx context.Context, it *invoice.CustomLineItem) error {
	const query = `
		INSERT INTO custom_line_items (id, request_id, description, quantity, rate, total)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			description = EXCLUDED.description,
			quantity = EXCLUDED.quantity,
			rate = EXCLUDED.rate,
			total = EXCLUDED.total
		RETURNING created_at`

	err := r.pool.QueryRow(ctx, query,
		it.ID, it.RequestID, it.Description, it.Quantity, it.Rate, it.Total,
	).Scan(&it.CreatedAt)
	if err != nil {
		r.log.Error("failed to upsert custom line item",
			"id", it.ID, "request_id", it.RequestID, "error", err)
		return fmt.Errorf("upsert custom line item: %w", err)
	}
	return nil
}

func (r *LineItemRepository) DeleteLineItem(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM custom_line_items WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("failed to delete custom line item", "id", id, "error", err)
		return fmt.Errorf("delete custom line item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return invoice.ErrLineItemNotFound
	}
	return nil
}
