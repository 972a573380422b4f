package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubscheduler/internal/domain"
)

var reservationCols = []string{"id", "court_id", "start_datetime", "end_datetime", "training_id", "tournament_id", "created_at"}

func TestCourtReservationRepository_Create(t *testing.T) {
	ctx := context.Background()
	trainingID := "training-1"

	tests := []struct {
		name   string
		mock   func(mock sqlmock.Sqlmock)
		wantID string
		errIs  error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO court_reservations`).
					WithArgs("court-1", ts, ts.Add(time.Hour), "training-1", nil, ts).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("res-1"))
			},
			wantID: "res-1",
		},
		{
			name: "overlap rejected by exclusion constraint",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO court_reservations`).
					WillReturnError(&pq.Error{Code: "23P01", Constraint: "court_reservations_no_overlap"})
			},
			errIs: domain.ErrCourtUnavailable,
		},
		{
			name: "event already reserved",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO court_reservations`).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "court_reservations_training_key"})
			},
			errIs: domain.ErrEventAlreadyReserved,
		},
		{
			name: "linked event missing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO court_reservations`).
					WillReturnError(&pq.Error{Code: "23503", Constraint: "court_reservations_training_id_fkey"})
			},
			errIs: domain.ErrLinkedEventNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			res := &domain.CourtReservation{CourtID: "court-1", Start: ts, End: ts.Add(time.Hour), TrainingID: &trainingID, CreatedAt: ts}
			err = NewCourtReservationRepository(db).Create(ctx, res)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, res.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCourtReservationRepository_ListOverlapping(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	window := domain.NewInterval(ts, ts.Add(2*time.Hour))
	mock.ExpectQuery(`WHERE court_id = \$1 AND NOT deleted\s+AND start_datetime < \$3 AND end_datetime > \$2`).
		WithArgs("court-1", window.Start, window.End).
		WillReturnRows(sqlmock.NewRows(reservationCols).
			AddRow("res-1", "court-1", ts.Add(time.Hour), ts.Add(3*time.Hour), nil, "tournament-1", ts))

	list, err := NewCourtReservationRepository(db).ListOverlapping(context.Background(), "court-1", window)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].TrainingID)
	require.NotNil(t, list[0].TournamentID)
	assert.Equal(t, "tournament-1", *list[0].TournamentID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourtReservationRepository_GetByEvent(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewCourtReservationRepository(db)

	mock.ExpectQuery(`FROM court_reservations WHERE tournament_id = \$1 AND NOT deleted`).
		WithArgs("tournament-1").
		WillReturnRows(sqlmock.NewRows(reservationCols).
			AddRow("res-1", "court-1", ts, ts.Add(time.Hour), nil, "tournament-1", ts))
	mock.ExpectQuery(`FROM court_reservations WHERE training_id = \$1 AND NOT deleted`).
		WithArgs("training-9").
		WillReturnRows(sqlmock.NewRows(reservationCols))

	res, err := repo.GetByEvent(ctx, domain.EventKindTournament, "tournament-1")
	require.NoError(t, err)
	assert.Equal(t, "res-1", res.ID)

	_, err = repo.GetByEvent(ctx, domain.EventKindTraining, "training-9")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.GetByEvent(ctx, domain.EventKind("party"), "x")
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourtReservationRepository_CountAndDelete(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewCourtReservationRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM court_reservations WHERE court_id = \$1 AND NOT deleted`).
		WithArgs("court-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectExec(`UPDATE court_reservations SET deleted = TRUE`).
		WithArgs("res-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.CountByCourt(ctx, "court-1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.ErrorIs(t, repo.Delete(ctx, "res-1"), domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourtRepository_DuplicateName(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE courts SET name = \$2, updated_at = \$3 WHERE id = \$1 AND NOT deleted`).
		WithArgs("court-1", "Center Court", ts).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "courts_name_key"})

	err = NewCourtRepository(db).Update(context.Background(), &domain.Court{ID: "court-1", Name: "Center Court", UpdatedAt: ts})
	require.ErrorIs(t, err, domain.ErrCourtNameExists)
}
