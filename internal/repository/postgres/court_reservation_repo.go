package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"clubscheduler/internal/domain"
)

const reservationColumns = `id, court_id, start_datetime, end_datetime, training_id, tournament_id, created_at`

var reservationViolations = violations{
	"court_reservations_no_overlap":         domain.ErrCourtUnavailable,
	"court_reservations_training_key":       domain.ErrEventAlreadyReserved,
	"court_reservations_tournament_key":     domain.ErrEventAlreadyReserved,
	"court_reservations_single_purpose":     domain.ErrReservationPurposeConflict,
	"court_reservations_court_id_fkey":      domain.ErrCourtNotFound,
	"court_reservations_training_id_fkey":   domain.ErrLinkedEventNotFound,
	"court_reservations_tournament_id_fkey": domain.ErrLinkedEventNotFound,
}

type courtReservationRepository struct {
	DB *sql.DB
}

func NewCourtReservationRepository(db *sql.DB) domain.CourtReservationRepository {
	return &courtReservationRepository{DB: db}
}

func scanReservation(s scanner) (*domain.CourtReservation, error) {
	res := &domain.CourtReservation{}
	var trainingID, tournamentID sql.NullString
	if err := s.Scan(&res.ID, &res.CourtID, &res.Start, &res.End, &trainingID, &tournamentID, &res.CreatedAt); err != nil {
		return nil, err
	}
	res.TrainingID = stringPtr(trainingID)
	res.TournamentID = stringPtr(tournamentID)
	return res, nil
}

// Create inserts the reservation. The exclusion constraint on the table is the
// final guard against overlapping bookings that pass the availability check concurrently.
func (r *courtReservationRepository) Create(ctx context.Context, res *domain.CourtReservation) error {
	query := `
		INSERT INTO court_reservations (court_id, start_datetime, end_datetime, training_id, tournament_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		res.CourtID, res.Start, res.End, nullString(res.TrainingID), nullString(res.TournamentID), res.CreatedAt,
	).Scan(&res.ID)
	return mapWriteError(err, reservationViolations)
}

func (r *courtReservationRepository) GetByID(ctx context.Context, id string) (*domain.CourtReservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM court_reservations WHERE id = $1 AND NOT deleted`
	return queryOne(ctx, r.DB, scanReservation, query, id)
}

func (r *courtReservationRepository) GetByEvent(ctx context.Context, kind domain.EventKind, eventID string) (*domain.CourtReservation, error) {
	var column string
	switch kind {
	case domain.EventKindTraining:
		column = "training_id"
	case domain.EventKindTournament:
		column = "tournament_id"
	default:
		return nil, fmt.Errorf("unknown event kind %q", kind)
	}
	query := `SELECT ` + reservationColumns + ` FROM court_reservations WHERE ` + column + ` = $1 AND NOT deleted`
	return queryOne(ctx, r.DB, scanReservation, query, eventID)
}

// ListOverlapping returns live reservations of courtID sharing at least one
// instant with window. Reservations that only touch window are excluded.
func (r *courtReservationRepository) ListOverlapping(ctx context.Context, courtID string, window domain.Interval) ([]*domain.CourtReservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM court_reservations
		WHERE court_id = $1 AND NOT deleted
			AND start_datetime < $3 AND end_datetime > $2
		ORDER BY start_datetime
	`
	return queryAll(ctx, r.DB, scanReservation, query, courtID, window.Start, window.End)
}

func (r *courtReservationRepository) CountByCourt(ctx context.Context, courtID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM court_reservations WHERE court_id = $1 AND NOT deleted`, courtID).Scan(&n)
	return n, err
}

func (r *courtReservationRepository) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.DB, `UPDATE court_reservations SET deleted = TRUE WHERE id = $1 AND NOT deleted`, id)
}
