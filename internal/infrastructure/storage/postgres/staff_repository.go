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

type StaffRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewStaffRepository(pool *pgxpool.Pool, log *slog.Logger) *StaffRepository {
	return &StaffRepository{
		pool: pool,
		log:  log.With("component", "staff_repository"),
	}
}

const staffColumns = `id, request_id, position, shift_date, start_time, end_time, rate, staff_count, amount`

func (r *StaffRepository) ListStaff(ctx context.Context, requestID uuid.UUID) ([]invoice.StaffRequirement, error) {
	const query = `
		SELECT ` + staffColumns + `
		FROM staff_requirements
		WHERE request_id = $1
		ORDER BY start_time, position`

	rows, err := r.pool.Query(ctx, query, requestID)
	if err != nil {
		r.log.Error("failed to list staff requirements", "request_id", requestID, "error", err)
		return nil, fmt.Errorf("list staff requirements: %w", err)
	}
	defer rows.Close()

	staff := make([]invoice.StaffRequirement, 0)
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("scan staff requirement: %w", err)
		}
		staff = append(staff, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate staff requirements: %w", err)
	}
	return staff, nil
}

func (r *StaffRepository) GetStaff(ctx context.Context, id uuid.UUID) (*invoice.StaffRequirement, error) {
	const query = `
		SELECT ` + staffColumns + `
		FROM staff_requirements
		WHERE id = $1`

	s, err := scanStaff(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, invoice.ErrStaffNotFound
		}
		r.log.Error("failed to get staff requirement", "id", id, "error", err)
		return nil, fmt.Errorf("get staff requirement: %w", err)
	}
	return s, nil
}

func (r *StaffRepository) CreateStaff(ctx context.Context, s *invoice.StaffRequirement) error {
	const query = `
		INSERT INTO staff_requirements (` + staffColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		s.ID, s.RequestID, s.Position, s.Date, s.StartTime, s.EndTime, s.Rate, s.Count, s.Amount,
	)
	if err != nil {
		r.log.Error("failed to create staff requirement",
			"request_id", s.RequestID, "position", s.Position, "error", err)
		return fmt.Errorf("create staff requirement: %w", err)
	}
	return nil
}

func (r *StaffRepository) UpdateStaff(ctx context.Context, s *invoice.StaffRequirement) error {
	const query = `
		UPDATE staff_requirements
		SET request_id = $2, position = $3, shift_date = $4, start_time = $5,
		    end_time = $6, rate = $7, staff_count = $8, amount = $9
		WHERE id = $1`

	result, err := r.pool.Exec(ctx, query,
		s.ID, s.RequestID, s.Position, s.Date, s.StartTime, s.EndTime, s.Rate, s.Count, s.Amount,
	)
	if err != nil {
		r.log.Error("failed to update staff requirement", "id", s.ID, "error", err)
		return fmt.Errorf("update staff requirement: %w", err)
	}
	if result.RowsAffected() == 0 {
		return invoice.ErrStaffNotFound
	}
	return nil
}

func (r *StaffRepository) DeleteStaff(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM staff_requirements WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("failed to delete staff requirement", "id", id, "error", err)
		return fmt.Errorf("delete staff requirement: %w", err)
	}
	if result.RowsAffected() == 0 {
		return invoice.ErrStaffNotFound
	}
	return nil
}

func scanStaff(row pgx.Row) (*invoice.StaffRequirement, error) {
	var s invoice.StaffRequirement
	err := row.Scan(
		&s.ID, &s.RequestID, &s.Position, &s.Date, &s.StartTime, &s.EndTime,
		&s.Rate, &s.Count, &s.Amount,
	)
	if err != nil {
		return nil, err
	}
	s.Date = s.Date.UTC()
	s.StartTime = s.StartTime.UTC()
	s.EndTime = s.EndTime.UTC()
	return &s, nil
}
