package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubscheduler/internal/domain"
)

func TestCreateTournament_BookedCourtLeavesNoEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.trainingSvc.CreateTraining(ctx, f.training(at(10, 0), at(11, 0)), &f.court.ID)
	require.NoError(t, err)

	_, err = f.tournamentSvc.CreateTournament(ctx, f.tournament(at(10, 30), at(11, 30)), &f.court.ID)
	require.ErrorIs(t, err, domain.ErrCourtUnavailable)
	assert.Empty(t, f.tournaments.byID)

	g, err := f.tournamentSvc.CreateTournament(ctx, f.tournament(at(11, 0), at(12, 0)), &f.court.ID)
	require.NoError(t, err)
	res, err := f.courtSvc.GetReservationForEvent(ctx, domain.EventKindTournament, g.ID)
	require.NoError(t, err)
	assert.True(t, res.Start.Equal(at(11, 0)))
	assert.Nil(t, res.TrainingID)
}

func TestUpdateTournament_ChangedCategoryIsChecked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g, err := f.tournamentSvc.CreateTournament(ctx, f.tournament(at(10, 0), at(12, 0)), nil)
	require.NoError(t, err)

	missing := "cat-missing"
	_, err = f.tournamentSvc.UpdateTournament(ctx, g.ID, domain.TournamentUpdate{CategoryID: &missing}, nil)
	require.ErrorIs(t, err, domain.ErrCategoryNotFound)

	other := f.categories.add("Open", 16, 99)
	updated, err := f.tournamentSvc.UpdateTournament(ctx, g.ID, domain.TournamentUpdate{CategoryID: &other.ID}, nil)
	require.NoError(t, err)
	assert.Equal(t, other.ID, updated.CategoryID)
}

func TestDeleteTournament(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g, err := f.tournamentSvc.CreateTournament(ctx, f.tournament(at(10, 0), at(12, 0)), &f.court.ID)
	require.NoError(t, err)

	require.NoError(t, f.tournamentSvc.DeleteTournament(ctx, g.ID))
	assert.Empty(t, f.reservations.list)
	_, err = f.tournamentSvc.GetTournament(ctx, g.ID)
	assert.ErrorIs(t, err, domain.ErrTournamentNotFound)
}

func TestTournamentRegisterUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g, err := f.tournamentSvc.CreateTournament(ctx, f.tournament(at(10, 0), at(12, 0)), nil)
	require.NoError(t, err)

	reg, err := f.tournamentSvc.RegisterUser(ctx, g.ID, f.member.ID)
	require.NoError(t, err)
	assert.True(t, reg.RegistrationDatetime.Equal(baseNow))
	require.Len(t, f.email.registrations, 1)
	assert.Equal(t, domain.EventKindTournament, f.email.registrations[0].EventKind)

	_, err = f.tournamentSvc.RegisterUser(ctx, g.ID, f.member.ID)
	require.ErrorIs(t, err, domain.ErrUserAlreadyRegistered)

	_, err = f.tournamentSvc.RegisterUser(ctx, "tournament-missing", f.member.ID)
	require.ErrorIs(t, err, domain.ErrTournamentNotFound)

	f.tournamentSvc.guard.now = fixedClock(at(11, 0))
	_, err = f.tournamentSvc.RegisterUser(ctx, g.ID, f.trainer.ID)
	require.ErrorIs(t, err, domain.ErrRegistrationClosed)
}

// attendanceFixture schedules a 10:00-12:00 tournament with two registered users.
func attendanceFixture(t *testing.T) (*fixture, *domain.Tournament, *domain.User) {
	t.Helper()
	f := newFixture(t)
	ctx := context.Background()
	g, err := f.tournamentSvc.CreateTournament(ctx, f.tournament(at(10, 0), at(12, 0)), nil)
	require.NoError(t, err)
	second := f.users.add(&domain.User{
		FirstName: "Ana",
		Email:     "ana@example.com",
		BirthDate: time.Date(1998, 4, 4, 0, 0, 0, 0, time.UTC),
	})
	for _, u := range []string{f.member.ID, second.ID} {
		_, err := f.tournamentSvc.RegisterUser(ctx, g.ID, u)
		require.NoError(t, err)
	}
	return f, g, second
}

func TestRecordAttendance(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		user     func(f *fixture) string
		position int
		wantErr  error
	}{
		{"during tournament", at(11, 0), func(f *fixture) string { return f.member.ID }, 1, nil},
		{"at start", at(10, 0), func(f *fixture) string { return f.member.ID }, 1, nil},
		{"before start", at(9, 59), func(f *fixture) string { return f.member.ID }, 1, domain.ErrInvalidAssistanceDate},
		{"at end", at(12, 0), func(f *fixture) string { return f.member.ID }, 1, domain.ErrInvalidAssistanceDate},
		{"not registered", at(11, 0), func(f *fixture) string { return f.trainer.ID }, 1, domain.ErrUserNotRegistered},
		{"zero position", at(11, 0), func(f *fixture) string { return f.member.ID }, 0, domain.ErrInvalidPosition},
		{"negative position", at(11, 0), func(f *fixture) string { return f.member.ID }, -3, domain.ErrInvalidPosition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, g, _ := attendanceFixture(t)
			f.tournamentSvc.guard.now = fixedClock(tt.now)

			a, err := f.tournamentSvc.RecordAttendance(context.Background(), g.ID, tt.user(f), tt.position)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, f.attendance.rows)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.position, a.Position)
			assert.True(t, a.AttendanceDatetime.Equal(tt.now))
		})
	}
}

func TestRecordAttendance_PositionUniqueness(t *testing.T) {
	f, g, second := attendanceFixture(t)
	ctx := context.Background()
	f.tournamentSvc.guard.now = fixedClock(at(11, 0))

	_, err := f.tournamentSvc.RecordAttendance(ctx, g.ID, f.member.ID, 1)
	require.NoError(t, err)

	_, err = f.tournamentSvc.RecordAttendance(ctx, g.ID, second.ID, 1)
	require.ErrorIs(t, err, domain.ErrPositionAlreadyTaken)

	_, err = f.tournamentSvc.RecordAttendance(ctx, g.ID, f.member.ID, 2)
	require.ErrorIs(t, err, domain.ErrAttendanceExists)

	_, err = f.tournamentSvc.RecordAttendance(ctx, g.ID, second.ID, 2)
	require.NoError(t, err)
}

func TestUpdatePosition(t *testing.T) {
	f, g, second := attendanceFixture(t)
	ctx := context.Background()
	f.tournamentSvc.guard.now = fixedClock(at(11, 0))

	_, err := f.tournamentSvc.UpdatePosition(ctx, g.ID, f.member.ID, 1)
	require.ErrorIs(t, err, domain.ErrUserDidNotAttend)

	_, err = f.tournamentSvc.RecordAttendance(ctx, g.ID, f.member.ID, 1)
	require.NoError(t, err)
	_, err = f.tournamentSvc.RecordAttendance(ctx, g.ID, second.ID, 2)
	require.NoError(t, err)

	_, err = f.tournamentSvc.UpdatePosition(ctx, g.ID, second.ID, 1)
	require.ErrorIs(t, err, domain.ErrPositionAlreadyTaken)

	_, err = f.tournamentSvc.UpdatePosition(ctx, g.ID, second.ID, 0)
	require.ErrorIs(t, err, domain.ErrInvalidPosition)

	a, err := f.tournamentSvc.UpdatePosition(ctx, g.ID, f.member.ID, 1)
	require.NoError(t, err, "keeping one's own position is not a collision")
	assert.Equal(t, 1, a.Position)

	a, err = f.tournamentSvc.UpdatePosition(ctx, g.ID, second.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, a.Position)

	list, err := f.tournamentSvc.ListAttendance(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, f.member.ID, list[0].UserID)

	require.NoError(t, f.tournamentSvc.DeleteAttendance(ctx, g.ID, second.ID))
	assert.ErrorIs(t, f.tournamentSvc.DeleteAttendance(ctx, g.ID, second.ID), domain.ErrUserDidNotAttend)
}
