package services

import (
	"context"
	"testing"
	"time"

	"clubscheduler/internal/domain"
)

// baseNow is the fixed clock of every fixture: two hours before the default
// event window.
var baseNow = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
}

// fixture wires the real services over in-memory repositories.
type fixture struct {
	categories    *fakeCategoryRepo
	requirements  *fakeRequirementRepo
	userCats      *fakeUserCategoryRepo
	users         *fakeUserRepo
	courtRepo     *fakeCourtRepo
	reservations  *fakeReservationRepo
	trainings     *fakeTrainingRepo
	trainingRegs  *fakeTrainingRegRepo
	tournaments   *fakeTournamentRepo
	tourneyRegs   *fakeTournamentRegRepo
	attendance    *fakeAttendanceRepo
	tuition       *fakeTuitionChecker
	publisher     *fakePublisher
	email         *fakeEmailService
	locker        *fakeLocker
	categorySvc   *categoryService
	courtSvc      *courtService
	trainingSvc   *trainingService
	tournamentSvc *tournamentService

	category *domain.Category
	trainer  *domain.User
	member   *domain.User
	court    *domain.Court
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		categories:   newFakeCategoryRepo(),
		requirements: &fakeRequirementRepo{},
		userCats:     newFakeUserCategoryRepo(),
		users:        newFakeUserRepo(),
		courtRepo:    newFakeCourtRepo(),
		reservations: &fakeReservationRepo{},
		trainings:    newFakeTrainingRepo(),
		trainingRegs: newFakeTrainingRegRepo(),
		tournaments:  newFakeTournamentRepo(),
		tourneyRegs:  newFakeTournamentRegRepo(),
		attendance:   newFakeAttendanceRepo(),
		tuition:      &fakeTuitionChecker{ok: true},
		publisher:    &fakePublisher{},
		email:        &fakeEmailService{},
		locker:       &fakeLocker{},
	}
	logger := testLogger()

	f.categorySvc = NewCategoryService(f.categories, f.requirements, f.userCats, f.users, logger).(*categoryService)
	f.categorySvc.now = fixedClock(baseNow)

	f.courtSvc = NewCourtService(f.courtRepo, f.reservations, f.locker, f.publisher, logger).(*courtService)
	f.courtSvc.now = fixedClock(baseNow)

	f.trainingSvc = NewTrainingService(TrainingDeps{
		Trainings:     f.trainings,
		Registrations: f.trainingRegs,
		Categories:    f.categories,
		UserCategory:  f.userCats,
		Users:         f.users,
		Courts:        f.courtSvc,
		Eligibility:   f.categorySvc,
		Tuition:       f.tuition,
		Email:         f.email,
		Publisher:     f.publisher,
		Currency:      "USD",
	}, logger, time.Second).(*trainingService)
	f.trainingSvc.guard.now = fixedClock(baseNow)

	f.tournamentSvc = NewTournamentService(TournamentDeps{
		Tournaments:   f.tournaments,
		Registrations: f.tourneyRegs,
		Attendance:    f.attendance,
		Categories:    f.categories,
		UserCategory:  f.userCats,
		Users:         f.users,
		Courts:        f.courtSvc,
		Eligibility:   f.categorySvc,
		Email:         f.email,
		Publisher:     f.publisher,
	}, logger, time.Second).(*tournamentService)
	f.tournamentSvc.guard.now = fixedClock(baseNow)

	f.category = f.categories.add("Senior", 18, 40)
	f.trainer = f.users.add(&domain.User{
		FirstName: "Tara",
		Email:     "trainer@example.com",
		Role:      domain.RoleTrainer,
		BirthDate: time.Date(1985, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	f.member = f.users.add(&domain.User{
		FirstName: "Max",
		Email:     "member@example.com",
		Role:      domain.RoleUser,
		BirthDate: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	f.court = f.courtRepo.add("Center Court")
	return f
}

func (f *fixture) training(start, end time.Time) *domain.Training {
	return &domain.Training{
		Name:          "Morning drills",
		CategoryID:    f.category.ID,
		TrainerID:     f.trainer.ID,
		StartDatetime: start,
		EndDatetime:   end,
	}
}

func (f *fixture) tournament(start, end time.Time) *domain.Tournament {
	return &domain.Tournament{
		Name:          "Spring Open",
		CategoryID:    f.category.ID,
		StartDatetime: start,
		EndDatetime:   end,
	}
}

// bookForTournament stores a reservation on court linked to an unrelated tournament.
func (f *fixture) bookForTournament(courtID string, start, end time.Time) *domain.CourtReservation {
	r := &domain.CourtReservation{CourtID: courtID, Start: start, End: end, TournamentID: strPtr("tournament-other")}
	_ = f.reservations.Create(context.Background(), r)
	return r
}
