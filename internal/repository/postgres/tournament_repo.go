package postgres

import (
	"context"
	"database/sql"

	"clubscheduler/internal/domain"
)

const tournamentColumns = `id, name, category_id, start_datetime, end_datetime, created_at, updated_at`

var tournamentViolations = violations{"tournaments_category_id_fkey": domain.ErrCategoryNotFound}

type tournamentRepository struct {
	DB *sql.DB
}

func NewTournamentRepository(db *sql.DB) domain.TournamentRepository {
	return &tournamentRepository{DB: db}
}

func scanTournament(s scanner) (*domain.Tournament, error) {
	t := &domain.Tournament{}
	if err := s.Scan(&t.ID, &t.Name, &t.CategoryID, &t.StartDatetime, &t.EndDatetime, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *tournamentRepository) Create(ctx context.Context, t *domain.Tournament) error {
	query := `
		INSERT INTO tournaments (name, category_id, start_datetime, end_datetime, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		t.Name, t.CategoryID, t.StartDatetime, t.EndDatetime, t.CreatedAt, t.UpdatedAt,
	).Scan(&t.ID)
	return mapWriteError(err, tournamentViolations)
}

func (r *tournamentRepository) GetByID(ctx context.Context, id string) (*domain.Tournament, error) {
	return queryOne(ctx, r.DB, scanTournament, `SELECT `+tournamentColumns+` FROM tournaments WHERE id = $1 AND NOT deleted`, id)
}

func (r *tournamentRepository) List(ctx context.Context) ([]*domain.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE NOT deleted ORDER BY start_datetime`
	return queryAll(ctx, r.DB, scanTournament, query)
}

func (r *tournamentRepository) Update(ctx context.Context, t *domain.Tournament) error {
	query := `
		UPDATE tournaments
		SET name = $2, category_id = $3, start_datetime = $4, end_datetime = $5, updated_at = $6
		WHERE id = $1 AND NOT deleted
	`
	err := execOne(ctx, r.DB, query, t.ID, t.Name, t.CategoryID, t.StartDatetime, t.EndDatetime, t.UpdatedAt)
	return mapWriteError(err, tournamentViolations)
}

func (r *tournamentRepository) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.DB, `UPDATE tournaments SET deleted = TRUE WHERE id = $1 AND NOT deleted`, id)
}
