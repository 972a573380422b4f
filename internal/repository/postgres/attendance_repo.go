package postgres

import (
	"context"
	"database/sql"

	"clubscheduler/internal/domain"
)

const attendanceColumns = `tournament_id, user_id, attendance_datetime, position`

var attendanceViolations = violations{
	"tournament_attendance_pair_key":           domain.ErrAttendanceExists,
	"tournament_attendance_position_key":       domain.ErrPositionAlreadyTaken,
	"tournament_attendance_tournament_id_fkey": domain.ErrTournamentNotFound,
	"tournament_attendance_user_id_fkey":       domain.ErrUserNotFound,
}

type attendanceRepository struct {
	DB *sql.DB
}

func NewTournamentAttendanceRepository(db *sql.DB) domain.TournamentAttendanceRepository {
	return &attendanceRepository{DB: db}
}

func scanAttendance(s scanner) (*domain.TournamentAttendance, error) {
	a := &domain.TournamentAttendance{}
	if err := s.Scan(&a.TournamentID, &a.UserID, &a.AttendanceDatetime, &a.Position); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *attendanceRepository) Create(ctx context.Context, a *domain.TournamentAttendance) error {
	query := `
		INSERT INTO tournament_attendance (tournament_id, user_id, attendance_datetime, position)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.DB.ExecContext(ctx, query, a.TournamentID, a.UserID, a.AttendanceDatetime, a.Position)
	return mapWriteError(err, attendanceViolations)
}

func (r *attendanceRepository) Get(ctx context.Context, tournamentID, userID string) (*domain.TournamentAttendance, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM tournament_attendance
		WHERE tournament_id = $1 AND user_id = $2 AND NOT deleted
	`
	return queryOne(ctx, r.DB, scanAttendance, query, tournamentID, userID)
}

func (r *attendanceRepository) GetByPosition(ctx context.Context, tournamentID string, position int) (*domain.TournamentAttendance, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM tournament_attendance
		WHERE tournament_id = $1 AND position = $2 AND NOT deleted
	`
	return queryOne(ctx, r.DB, scanAttendance, query, tournamentID, position)
}

func (r *attendanceRepository) ListByTournament(ctx context.Context, tournamentID string) ([]*domain.TournamentAttendance, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM tournament_attendance
		WHERE tournament_id = $1 AND NOT deleted
		ORDER BY position
	`
	return queryAll(ctx, r.DB, scanAttendance, query, tournamentID)
}

func (r *attendanceRepository) UpdatePosition(ctx context.Context, tournamentID, userID string, position int) error {
	query := `
		UPDATE tournament_attendance SET position = $3
		WHERE tournament_id = $1 AND user_id = $2 AND NOT deleted
	`
	return mapWriteError(execOne(ctx, r.DB, query, tournamentID, userID, position), attendanceViolations)
}

func (r *attendanceRepository) Delete(ctx context.Context, tournamentID, userID string) error {
	query := `UPDATE tournament_attendance SET deleted = TRUE WHERE tournament_id = $1 AND user_id = $2 AND NOT deleted`
	return execOne(ctx, r.DB, query, tournamentID, userID)
}
