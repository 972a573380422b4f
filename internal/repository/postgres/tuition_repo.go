package postgres

import (
	"context"
	"database/sql"
	"time"

	"clubscheduler/internal/domain"
)

const tuitionColumns = `id, user_id, amount, payment_date`

var tuitionViolations = violations{"tuitions_user_id_fkey": domain.ErrUserNotFound}

type tuitionRepository struct {
	DB *sql.DB
}

func NewTuitionRepository(db *sql.DB) domain.TuitionRepository {
	return &tuitionRepository{DB: db}
}

func scanTuition(s scanner) (*domain.Tuition, error) {
	t := &domain.Tuition{}
	if err := s.Scan(&t.ID, &t.UserID, &t.Amount, &t.PaymentDate); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *tuitionRepository) Create(ctx context.Context, t *domain.Tuition) error {
	query := `
		INSERT INTO tuitions (user_id, amount, payment_date)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, t.UserID, t.Amount, t.PaymentDate).Scan(&t.ID)
	return mapWriteError(err, tuitionViolations)
}

func (r *tuitionRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Tuition, error) {
	query := `SELECT ` + tuitionColumns + ` FROM tuitions WHERE user_id = $1 ORDER BY payment_date DESC`
	return queryAll(ctx, r.DB, scanTuition, query, userID)
}

func (r *tuitionRepository) ListPaidSince(ctx context.Context, userID string, since time.Time) ([]*domain.Tuition, error) {
	query := `
		SELECT ` + tuitionColumns + `
		FROM tuitions
		WHERE user_id = $1 AND payment_date > $2
		ORDER BY payment_date DESC
	`
	return queryAll(ctx, r.DB, scanTuition, query, userID, since)
}

func (r *tuitionRepository) List(ctx context.Context, p domain.PaginationParams) ([]*domain.Tuition, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM tuitions`).Scan(&total); err != nil {
		return nil, 0, err
	}
	query := `SELECT ` + tuitionColumns + ` FROM tuitions ORDER BY payment_date DESC, id LIMIT $1 OFFSET $2`
	list, err := queryAll(ctx, r.DB, scanTuition, query, p.PageSize, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}
