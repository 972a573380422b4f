package postgres

import (
	"context"
	"database/sql"
	"time"

	"clubscheduler/internal/domain"
)

const trainingRegistrationColumns = `training_id, user_id, registration_datetime, attended, attendance_datetime`

var trainingRegistrationViolations = violations{
	"training_registrations_pair_key":         domain.ErrUserAlreadyRegistered,
	"training_registrations_training_id_fkey": domain.ErrTrainingNotFound,
	"training_registrations_user_id_fkey":     domain.ErrUserNotFound,
}

type trainingRegistrationRepository struct {
	DB *sql.DB
}

func NewTrainingRegistrationRepository(db *sql.DB) domain.TrainingRegistrationRepository {
	return &trainingRegistrationRepository{DB: db}
}

func scanTrainingRegistration(s scanner) (*domain.TrainingRegistration, error) {
	reg := &domain.TrainingRegistration{}
	var attendedAt sql.NullTime
	if err := s.Scan(&reg.TrainingID, &reg.UserID, &reg.RegistrationDatetime, &reg.Attended, &attendedAt); err != nil {
		return nil, err
	}
	reg.AttendanceDatetime = timePtr(attendedAt)
	return reg, nil
}

func (r *trainingRegistrationRepository) Create(ctx context.Context, reg *domain.TrainingRegistration) error {
	query := `
		INSERT INTO training_registrations (training_id, user_id, registration_datetime, attended, attendance_datetime)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.DB.ExecContext(ctx, query, reg.TrainingID, reg.UserID, reg.RegistrationDatetime, reg.Attended, reg.AttendanceDatetime)
	return mapWriteError(err, trainingRegistrationViolations)
}

func (r *trainingRegistrationRepository) Get(ctx context.Context, trainingID, userID string) (*domain.TrainingRegistration, error) {
	query := `
		SELECT ` + trainingRegistrationColumns + `
		FROM training_registrations
		WHERE training_id = $1 AND user_id = $2 AND NOT deleted
	`
	return queryOne(ctx, r.DB, scanTrainingRegistration, query, trainingID, userID)
}

func (r *trainingRegistrationRepository) ListByTraining(ctx context.Context, trainingID string) ([]*domain.TrainingRegistration, error) {
	query := `
		SELECT ` + trainingRegistrationColumns + `
		FROM training_registrations
		WHERE training_id = $1 AND NOT deleted
		ORDER BY registration_datetime
	`
	return queryAll(ctx, r.DB, scanTrainingRegistration, query, trainingID)
}

func (r *trainingRegistrationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.TrainingRegistration, error) {
	query := `
		SELECT ` + trainingRegistrationColumns + `
		FROM training_registrations
		WHERE user_id = $1 AND NOT deleted
		ORDER BY registration_datetime DESC
	`
	return queryAll(ctx, r.DB, scanTrainingRegistration, query, userID)
}

func (r *trainingRegistrationRepository) MarkAttendance(ctx context.Context, trainingID, userID string, attended bool, at *time.Time) error {
	query := `
		UPDATE training_registrations SET attended = $3, attendance_datetime = $4
		WHERE training_id = $1 AND user_id = $2 AND NOT deleted
	`
	return execOne(ctx, r.DB, query, trainingID, userID, attended, at)
}

func (r *trainingRegistrationRepository) Delete(ctx context.Context, trainingID, userID string) error {
	query := `UPDATE training_registrations SET deleted = TRUE WHERE training_id = $1 AND user_id = $2 AND NOT deleted`
	return execOne(ctx, r.DB, query, trainingID, userID)
}

const tournamentRegistrationColumns = `tournament_id, user_id, registration_datetime`

var tournamentRegistrationViolations = violations{
	"tournament_registrations_pair_key":           domain.ErrUserAlreadyRegistered,
	"tournament_registrations_tournament_id_fkey": domain.ErrTournamentNotFound,
	"tournament_registrations_user_id_fkey":       domain.ErrUserNotFound,
}

type tournamentRegistrationRepository struct {
	DB *sql.DB
}

func NewTournamentRegistrationRepository(db *sql.DB) domain.TournamentRegistrationRepository {
	return &tournamentRegistrationRepository{DB: db}
}

func scanTournamentRegistration(s scanner) (*domain.TournamentRegistration, error) {
	reg := &domain.TournamentRegistration{}
	if err := s.Scan(&reg.TournamentID, &reg.UserID, &reg.RegistrationDatetime); err != nil {
		return nil, err
	}
	return reg, nil
}

func (r *tournamentRegistrationRepository) Create(ctx context.Context, reg *domain.TournamentRegistration) error {
	query := `
		INSERT INTO tournament_registrations (tournament_id, user_id, registration_datetime)
		VALUES ($1, $2, $3)
	`
	_, err := r.DB.ExecContext(ctx, query, reg.TournamentID, reg.UserID, reg.RegistrationDatetime)
	return mapWriteError(err, tournamentRegistrationViolations)
}

func (r *tournamentRegistrationRepository) Get(ctx context.Context, tournamentID, userID string) (*domain.TournamentRegistration, error) {
	query := `
		SELECT ` + tournamentRegistrationColumns + `
		FROM tournament_registrations
		WHERE tournament_id = $1 AND user_id = $2 AND NOT deleted
	`
	return queryOne(ctx, r.DB, scanTournamentRegistration, query, tournamentID, userID)
}

func (r *tournamentRegistrationRepository) ListByTournament(ctx context.Context, tournamentID string) ([]*domain.TournamentRegistration, error) {
	query := `
		SELECT ` + tournamentRegistrationColumns + `
		FROM tournament_registrations
		WHERE tournament_id = $1 AND NOT deleted
		ORDER BY registration_datetime
	`
	return queryAll(ctx, r.DB, scanTournamentRegistration, query, tournamentID)
}

func (r *tournamentRegistrationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.TournamentRegistration, error) {
	query := `
		SELECT ` + tournamentRegistrationColumns + `
		FROM tournament_registrations
		WHERE user_id = $1 AND NOT deleted
		ORDER BY registration_datetime DESC
	`
	return queryAll(ctx, r.DB, scanTournamentRegistration, query, userID)
}

func (r *tournamentRegistrationRepository) Delete(ctx context.Context, tournamentID, userID string) error {
	query := `UPDATE tournament_registrations SET deleted = TRUE WHERE tournament_id = $1 AND user_id = $2 AND NOT deleted`
	return execOne(ctx, r.DB, query, tournamentID, userID)
}
