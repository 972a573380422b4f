package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"clubscheduler/internal/domain"
)

type tournamentService struct {
	tournamentRepo   domain.TournamentRepository
	registrationRepo domain.TournamentRegistrationRepository
	attendanceRepo   domain.TournamentAttendanceRepository
	categoryRepo     domain.CategoryRepository
	userCategoryRepo domain.UserCategoryRepository
	users            domain.UserReader
	emailService     domain.EmailService
	publisher        domain.EventPublisher
	logger           *slog.Logger
	contextTimeout   time.Duration

	orchestrator *eventOrchestrator[*domain.Tournament]
	guard        registrationGuard
}

// TournamentDeps groups the collaborators of the tournament service.
type TournamentDeps struct {
	Tournaments   domain.TournamentRepository
	Registrations domain.TournamentRegistrationRepository
	Attendance    domain.TournamentAttendanceRepository
	Categories    domain.CategoryRepository
	UserCategory  domain.UserCategoryRepository
	Users         domain.UserReader
	Courts        domain.CourtService
	Eligibility   domain.EligibilityChecker
	Email         domain.EmailService
	Publisher     domain.EventPublisher
}

// NewTournamentService creates a TournamentService. Email and Publisher may be nil.
func NewTournamentService(deps TournamentDeps, logger *slog.Logger, timeout time.Duration) domain.TournamentService {
	return &tournamentService{
		tournamentRepo:   deps.Tournaments,
		registrationRepo: deps.Registrations,
		attendanceRepo:   deps.Attendance,
		categoryRepo:     deps.Categories,
		userCategoryRepo: deps.UserCategory,
		users:            deps.Users,
		emailService:     deps.Email,
		publisher:        deps.Publisher,
		logger:           logger,
		contextTimeout:   timeout,
		orchestrator: newEventOrchestrator[*domain.Tournament](
			domain.EventKindTournament, deps.Tournaments, deps.Courts, domain.ErrTournamentNotFound, logger, deps.Publisher,
		),
		guard: registrationGuard{eligibility: deps.Eligibility, now: time.Now},
	}
}

func (s *tournamentService) CreateTournament(ctx context.Context, t *domain.Tournament, courtID *string) (*domain.Tournament, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return nil, domain.ErrMissingName
	}
	now := s.guard.now()
	t.CreatedAt = now
	t.UpdatedAt = now
	return s.orchestrator.Create(ctx, t, courtID, func(ctx context.Context, t *domain.Tournament) error {
		return s.checkCategory(ctx, t.CategoryID)
	})
}

func (s *tournamentService) GetTournament(ctx context.Context, id string) (*domain.Tournament, error) {
	return s.orchestrator.load(ctx, id)
}

func (s *tournamentService) ListTournaments(ctx context.Context) ([]*domain.Tournament, error) {
	list, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}
	return list, nil
}

// ListEligibleTournaments returns the tournaments in categories the user holds.
func (s *tournamentService) ListEligibleTournaments(ctx context.Context, userID string) ([]*domain.Tournament, error) {
	held, err := heldCategories(ctx, s.userCategoryRepo, userID)
	if err != nil {
		return nil, err
	}
	all, err := s.ListTournaments(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Tournament, 0, len(all))
	for _, t := range all {
		if held[t.CategoryID] {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *tournamentService) UpdateTournament(ctx context.Context, id string, upd domain.TournamentUpdate, courtID *string) (*domain.Tournament, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	change := func(cur *domain.Tournament) *domain.Tournament {
		next := *cur
		if upd.Name != nil {
			next.Name = strings.TrimSpace(*upd.Name)
		}
		if upd.CategoryID != nil {
			next.CategoryID = *upd.CategoryID
		}
		if upd.StartDatetime != nil {
			next.StartDatetime = *upd.StartDatetime
		}
		if upd.EndDatetime != nil {
			next.EndDatetime = *upd.EndDatetime
		}
		next.UpdatedAt = s.guard.now()
		return &next
	}
	validate := func(ctx context.Context, next, cur *domain.Tournament) error {
		if next.Name == "" {
			return domain.ErrMissingName
		}
		if next.CategoryID != cur.CategoryID {
			return s.checkCategory(ctx, next.CategoryID)
		}
		return nil
	}
	return s.orchestrator.Update(ctx, id, courtID, change, validate)
}

func (s *tournamentService) DeleteTournament(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.orchestrator.Delete(ctx, id)
}

func (s *tournamentService) RegisterUser(ctx context.Context, tournamentID, userID string) (*domain.TournamentRegistration, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	t, err := s.GetTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	registered := exists(func(ctx context.Context) (*domain.TournamentRegistration, error) {
		return s.registrationRepo.Get(ctx, tournamentID, userID)
	})
	if err := s.guard.canRegister(ctx, t, userID, registered, 0); err != nil {
		return nil, err
	}

	reg := &domain.TournamentRegistration{
		TournamentID:         tournamentID,
		UserID:               userID,
		RegistrationDatetime: s.guard.now(),
	}
	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		return nil, fmt.Errorf("create tournament registration: %w", err)
	}

	publish(ctx, s.logger, s.publisher, domain.TopicRegistrationCreated, domain.RegistrationMessage{
		Kind: domain.EventKindTournament, EventID: tournamentID, UserID: userID,
	})
	s.confirm(ctx, t, userID)
	return reg, nil
}

func (s *tournamentService) ListRegistrations(ctx context.Context, tournamentID string) ([]*domain.TournamentRegistration, error) {
	if _, err := s.GetTournament(ctx, tournamentID); err != nil {
		return nil, err
	}
	list, err := s.registrationRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list tournament registrations: %w", err)
	}
	return list, nil
}

func (s *tournamentService) ListUserRegistrations(ctx context.Context, userID string) ([]*domain.TournamentRegistration, error) {
	list, err := s.registrationRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user tournament registrations: %w", err)
	}
	return list, nil
}

func (s *tournamentService) DeleteRegistration(ctx context.Context, tournamentID, userID string) error {
	if err := s.registrationRepo.Delete(ctx, tournamentID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrRegistrationNotFound
		}
		return fmt.Errorf("delete tournament registration: %w", err)
	}
	return nil
}

// RecordAttendance stores a registered user's final position. It is only
// accepted while the tournament is running.
func (s *tournamentService) RecordAttendance(ctx context.Context, tournamentID, userID string, position int) (*domain.TournamentAttendance, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	t, err := s.GetTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.canAttend(t); err != nil {
		return nil, err
	}
	if _, err := s.registrationRepo.Get(ctx, tournamentID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotRegistered
		}
		return nil, fmt.Errorf("get tournament registration: %w", err)
	}
	if _, err := s.attendanceRepo.Get(ctx, tournamentID, userID); err == nil {
		return nil, domain.ErrAttendanceExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get attendance: %w", err)
	}
	if err := positionFree(ctx, s.attendanceRepo, tournamentID, userID, position); err != nil {
		return nil, err
	}

	a := &domain.TournamentAttendance{
		TournamentID:       tournamentID,
		UserID:             userID,
		AttendanceDatetime: s.guard.now(),
		Position:           position,
	}
	if err := s.attendanceRepo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create attendance: %w", err)
	}
	return a, nil
}

func (s *tournamentService) UpdatePosition(ctx context.Context, tournamentID, userID string, position int) (*domain.TournamentAttendance, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.GetTournament(ctx, tournamentID); err != nil {
		return nil, err
	}
	a, err := s.attendanceRepo.Get(ctx, tournamentID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserDidNotAttend
		}
		return nil, fmt.Errorf("get attendance: %w", err)
	}
	if err := positionFree(ctx, s.attendanceRepo, tournamentID, userID, position); err != nil {
		return nil, err
	}
	if err := s.attendanceRepo.UpdatePosition(ctx, tournamentID, userID, position); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserDidNotAttend
		}
		return nil, fmt.Errorf("update position: %w", err)
	}
	a.Position = position
	return a, nil
}

func (s *tournamentService) ListAttendance(ctx context.Context, tournamentID string) ([]*domain.TournamentAttendance, error) {
	if _, err := s.GetTournament(ctx, tournamentID); err != nil {
		return nil, err
	}
	list, err := s.attendanceRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return list, nil
}

func (s *tournamentService) DeleteAttendance(ctx context.Context, tournamentID, userID string) error {
	if err := s.attendanceRepo.Delete(ctx, tournamentID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrUserDidNotAttend
		}
		return fmt.Errorf("delete attendance: %w", err)
	}
	return nil
}

func (s *tournamentService) checkCategory(ctx context.Context, categoryID string) error {
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrCategoryNotFound
		}
		return fmt.Errorf("get category: %w", err)
	}
	return nil
}

// confirm emails a registration confirmation. Failures are logged only.
func (s *tournamentService) confirm(ctx context.Context, t *domain.Tournament, userID string) {
	if s.emailService == nil {
		return
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.logger.WarnContext(ctx, "load user for confirmation failed", "user_id", userID, "err", err)
		return
	}
	data := &domain.RegistrationEmailData{
		Email:     u.Email,
		FirstName: u.FirstName,
		EventKind: domain.EventKindTournament,
		EventName: t.Name,
		Start:     t.StartDatetime,
		End:       t.EndDatetime,
	}
	if err := s.emailService.SendRegistrationConfirmation(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "send registration confirmation failed", "user_id", userID, "err", err)
	}
}
