package postgres

import (
	"context"
	"database/sql"

	"clubscheduler/internal/domain"
)

const courtColumns = `id, name, created_at, updated_at`

var courtViolations = violations{"courts_name_key": domain.ErrCourtNameExists}

type courtRepository struct {
	DB *sql.DB
}

func NewCourtRepository(db *sql.DB) domain.CourtRepository {
	return &courtRepository{DB: db}
}

func scanCourt(s scanner) (*domain.Court, error) {
	c := &domain.Court{}
	if err := s.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *courtRepository) Create(ctx context.Context, c *domain.Court) error {
	query := `
		INSERT INTO courts (name, created_at, updated_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, c.Name, c.CreatedAt, c.UpdatedAt).Scan(&c.ID)
	return mapWriteError(err, courtViolations)
}

func (r *courtRepository) GetByID(ctx context.Context, id string) (*domain.Court, error) {
	return queryOne(ctx, r.DB, scanCourt, `SELECT `+courtColumns+` FROM courts WHERE id = $1 AND NOT deleted`, id)
}

func (r *courtRepository) GetByName(ctx context.Context, name string) (*domain.Court, error) {
	return queryOne(ctx, r.DB, scanCourt, `SELECT `+courtColumns+` FROM courts WHERE name = $1 AND NOT deleted`, name)
}

func (r *courtRepository) List(ctx context.Context) ([]*domain.Court, error) {
	return queryAll(ctx, r.DB, scanCourt, `SELECT `+courtColumns+` FROM courts WHERE NOT deleted ORDER BY name`)
}

func (r *courtRepository) Update(ctx context.Context, c *domain.Court) error {
	query := `UPDATE courts SET name = $2, updated_at = $3 WHERE id = $1 AND NOT deleted`
	return mapWriteError(execOne(ctx, r.DB, query, c.ID, c.Name, c.UpdatedAt), courtViolations)
}

func (r *courtRepository) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.DB, `UPDATE courts SET deleted = TRUE WHERE id = $1 AND NOT deleted`, id)
}
