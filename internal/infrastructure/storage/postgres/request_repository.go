package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"shiftbill/internal/domain/invoice"
)

type RequestRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewRequestRepository(pool *pgxpool.Pool, log *slog.Logger) *RequestRepository {
	return &RequestRepository{
		pool: pool,
		log:  log.With("component", "request_repository"),
	}
}

func (r *RequestRepository) GetRequest(ctx context.Context, id uuid.UUID) (*invoice.Request, error) {
	const query = `
		SELECT id, first_name, last_name, email, company_name, event_location, created_at
		FROM requests
		WHERE id = $1`

	var req invoice.Request
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.FirstName, &req.LastName, &req.Email,
		&req.CompanyName, &req.EventLocation, &req.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, invoice.ErrRequestNotFound
		}
		r.log.Error("failed to get request", "id", id, "error", err)
		return nil, fmt.Errorf("get request: %w", err)
	}
	return &req, nil
}

func (r *RequestRepository) UpdateRequest(ctx context.Context, req *invoice.Request) error {
	const query = `
		UPDATE requests
		SET first_name = $2, last_name = $3, email = $4, company_name = $5, event_location = $6
		WHERE id = $1`

	result, err := r.pool.Exec(ctx, query,
		req.ID, req.FirstName, req.LastName, req.Email, req.CompanyName, req.EventLocation,
	)
	if err != nil {
		r.log.Error("failed to update request", "id", req.ID, "error", err)
		return fmt.Errorf("update request: %w", err)
	}
	if result.RowsAffected() == 0 {
		return invoice.ErrRequestNotFound
	}
	return nil
}
