package postgres

import (
	"context"
	"database/sql"

	"clubscheduler/internal/domain"
)

const trainingColumns = `id, name, category_id, trainer_id, start_datetime, end_datetime, minimum_payment, created_at, updated_at`

var trainingViolations = violations{
	"trainings_category_id_fkey": domain.ErrCategoryNotFound,
	"trainings_trainer_id_fkey":  domain.ErrTrainerNotFound,
}

type trainingRepository struct {
	DB *sql.DB
}

func NewTrainingRepository(db *sql.DB) domain.TrainingRepository {
	return &trainingRepository{DB: db}
}

func scanTraining(s scanner) (*domain.Training, error) {
	t := &domain.Training{}
	err := s.Scan(&t.ID, &t.Name, &t.CategoryID, &t.TrainerID, &t.StartDatetime, &t.EndDatetime,
		&t.MinimumPayment, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *trainingRepository) Create(ctx context.Context, t *domain.Training) error {
	query := `
		INSERT INTO trainings (name, category_id, trainer_id, start_datetime, end_datetime, minimum_payment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		t.Name, t.CategoryID, t.TrainerID, t.StartDatetime, t.EndDatetime, t.MinimumPayment, t.CreatedAt, t.UpdatedAt,
	).Scan(&t.ID)
	return mapWriteError(err, trainingViolations)
}

func (r *trainingRepository) GetByID(ctx context.Context, id string) (*domain.Training, error) {
	return queryOne(ctx, r.DB, scanTraining, `SELECT `+trainingColumns+` FROM trainings WHERE id = $1 AND NOT deleted`, id)
}

func (r *trainingRepository) List(ctx context.Context) ([]*domain.Training, error) {
	query := `SELECT ` + trainingColumns + ` FROM trainings WHERE NOT deleted ORDER BY start_datetime`
	return queryAll(ctx, r.DB, scanTraining, query)
}

func (r *trainingRepository) ListByTrainer(ctx context.Context, trainerID string) ([]*domain.Training, error) {
	query := `SELECT ` + trainingColumns + ` FROM trainings WHERE trainer_id = $1 AND NOT deleted ORDER BY start_datetime`
	return queryAll(ctx, r.DB, scanTraining, query, trainerID)
}

func (r *trainingRepository) Update(ctx context.Context, t *domain.Training) error {
	query := `
		UPDATE trainings
		SET name = $2, category_id = $3, trainer_id = $4, start_datetime = $5, end_datetime = $6,
			minimum_payment = $7, updated_at = $8
		WHERE id = $1 AND NOT deleted
	`
	err := execOne(ctx, r.DB, query,
		t.ID, t.Name, t.CategoryID, t.TrainerID, t.StartDatetime, t.EndDatetime, t.MinimumPayment, t.UpdatedAt)
	return mapWriteError(err, trainingViolations)
}

func (r *trainingRepository) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.DB, `UPDATE trainings SET deleted = TRUE WHERE id = $1 AND NOT deleted`, id)
}
