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

type trainingService struct {
	trainingRepo     domain.TrainingRepository
	registrationRepo domain.TrainingRegistrationRepository
	categoryRepo     domain.CategoryRepository
	userCategoryRepo domain.UserCategoryRepository
	users            domain.UserReader
	emailService     domain.EmailService
	publisher        domain.EventPublisher
	logger           *slog.Logger
	contextTimeout   time.Duration
	currency         string

	orchestrator *eventOrchestrator[*domain.Training]
	guard        registrationGuard
}

// TrainingDeps groups the collaborators of the training service.
type TrainingDeps struct {
	Trainings     domain.TrainingRepository
	Registrations domain.TrainingRegistrationRepository
	Categories    domain.CategoryRepository
	UserCategory  domain.UserCategoryRepository
	Users         domain.UserReader
	Courts        domain.CourtService
	Eligibility   domain.EligibilityChecker
	Tuition       domain.TuitionChecker
	Email         domain.EmailService
	Publisher     domain.EventPublisher
	// Currency formats minimum payments in confirmation emails.
	Currency string
}

// NewTrainingService creates a TrainingService. Email and Publisher may be nil.
func NewTrainingService(deps TrainingDeps, logger *slog.Logger, timeout time.Duration) domain.TrainingService {
	return &trainingService{
		trainingRepo:     deps.Trainings,
		registrationRepo: deps.Registrations,
		categoryRepo:     deps.Categories,
		userCategoryRepo: deps.UserCategory,
		users:            deps.Users,
		emailService:     deps.Email,
		publisher:        deps.Publisher,
		logger:           logger,
		contextTimeout:   timeout,
		currency:         deps.Currency,
		orchestrator: newEventOrchestrator[*domain.Training](
			domain.EventKindTraining, deps.Trainings, deps.Courts, domain.ErrTrainingNotFound, logger, deps.Publisher,
		),
		guard: registrationGuard{eligibility: deps.Eligibility, tuition: deps.Tuition, now: time.Now},
	}
}

func (s *trainingService) CreateTraining(ctx context.Context, t *domain.Training, courtID *string) (*domain.Training, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return nil, domain.ErrMissingName
	}
	now := s.guard.now()
	t.CreatedAt = now
	t.UpdatedAt = now
	return s.orchestrator.Create(ctx, t, courtID, func(ctx context.Context, t *domain.Training) error {
		if t.MinimumPayment < 0 {
			return domain.ErrInvalidPayment
		}
		if err := s.checkCategory(ctx, t.CategoryID); err != nil {
			return err
		}
		return s.checkTrainer(ctx, t.TrainerID)
	})
}

func (s *trainingService) GetTraining(ctx context.Context, id string) (*domain.Training, error) {
	return s.orchestrator.load(ctx, id)
}

func (s *trainingService) ListTrainings(ctx context.Context) ([]*domain.Training, error) {
	list, err := s.trainingRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list trainings: %w", err)
	}
	return list, nil
}

func (s *trainingService) ListTrainingsByTrainer(ctx context.Context, trainerID string) ([]*domain.Training, error) {
	list, err := s.trainingRepo.ListByTrainer(ctx, trainerID)
	if err != nil {
		return nil, fmt.Errorf("list trainings by trainer: %w", err)
	}
	return list, nil
}

// ListEligibleTrainings returns the trainings in categories the user holds.
func (s *trainingService) ListEligibleTrainings(ctx context.Context, userID string) ([]*domain.Training, error) {
	held, err := heldCategories(ctx, s.userCategoryRepo, userID)
	if err != nil {
		return nil, err
	}
	all, err := s.ListTrainings(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Training, 0, len(all))
	for _, t := range all {
		if held[t.CategoryID] {
			out = append(out, t)
		}
	}
	return out, nil
}

// UpdateTraining applies upd and, when courtID is set, keeps the training's
// court reservation aligned with its window. Category and trainer are
// re-checked only when they change.
func (s *trainingService) UpdateTraining(ctx context.Context, id string, upd domain.TrainingUpdate, courtID *string) (*domain.Training, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	change := func(cur *domain.Training) *domain.Training {
		next := *cur
		if upd.Name != nil {
			next.Name = strings.TrimSpace(*upd.Name)
		}
		if upd.CategoryID != nil {
			next.CategoryID = *upd.CategoryID
		}
		if upd.TrainerID != nil {
			next.TrainerID = *upd.TrainerID
		}
		if upd.StartDatetime != nil {
			next.StartDatetime = *upd.StartDatetime
		}
		if upd.EndDatetime != nil {
			next.EndDatetime = *upd.EndDatetime
		}
		if upd.MinimumPayment != nil {
			next.MinimumPayment = *upd.MinimumPayment
		}
		next.UpdatedAt = s.guard.now()
		return &next
	}
	validate := func(ctx context.Context, next, cur *domain.Training) error {
		if next.Name == "" {
			return domain.ErrMissingName
		}
		if next.MinimumPayment < 0 {
			return domain.ErrInvalidPayment
		}
		if next.CategoryID != cur.CategoryID {
			if err := s.checkCategory(ctx, next.CategoryID); err != nil {
				return err
			}
		}
		if next.TrainerID != cur.TrainerID {
			return s.checkTrainer(ctx, next.TrainerID)
		}
		return nil
	}
	return s.orchestrator.Update(ctx, id, courtID, change, validate)
}

func (s *trainingService) DeleteTraining(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.orchestrator.Delete(ctx, id)
}

func (s *trainingService) RegisterUser(ctx context.Context, trainingID, userID string) (*domain.TrainingRegistration, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	t, err := s.GetTraining(ctx, trainingID)
	if err != nil {
		return nil, err
	}
	registered := exists(func(ctx context.Context) (*domain.TrainingRegistration, error) {
		return s.registrationRepo.Get(ctx, trainingID, userID)
	})
	if err := s.guard.canRegister(ctx, t, userID, registered, t.MinimumPayment); err != nil {
		return nil, err
	}

	reg := &domain.TrainingRegistration{
		TrainingID:           trainingID,
		UserID:               userID,
		RegistrationDatetime: s.guard.now(),
		Attended:             false,
	}
	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		return nil, fmt.Errorf("create training registration: %w", err)
	}

	publish(ctx, s.logger, s.publisher, domain.TopicRegistrationCreated, domain.RegistrationMessage{
		Kind: domain.EventKindTraining, EventID: trainingID, UserID: userID,
	})
	s.confirm(ctx, t, userID)
	return reg, nil
}

func (s *trainingService) ListRegistrations(ctx context.Context, trainingID string) ([]*domain.TrainingRegistration, error) {
	if _, err := s.GetTraining(ctx, trainingID); err != nil {
		return nil, err
	}
	list, err := s.registrationRepo.ListByTraining(ctx, trainingID)
	if err != nil {
		return nil, fmt.Errorf("list training registrations: %w", err)
	}
	return list, nil
}

func (s *trainingService) ListUserRegistrations(ctx context.Context, userID string) ([]*domain.TrainingRegistration, error) {
	list, err := s.registrationRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user training registrations: %w", err)
	}
	return list, nil
}

func (s *trainingService) DeleteRegistration(ctx context.Context, trainingID, userID string) error {
	if err := s.registrationRepo.Delete(ctx, trainingID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrRegistrationNotFound
		}
		return fmt.Errorf("delete training registration: %w", err)
	}
	return nil
}

// MarkAttendance records whether a registered user attended. Marking a user
// absent clears the attendance time.
func (s *trainingService) MarkAttendance(ctx context.Context, trainingID, userID string, attended bool) (*domain.TrainingRegistration, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.GetTraining(ctx, trainingID); err != nil {
		return nil, err
	}
	reg, err := s.registrationRepo.Get(ctx, trainingID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotRegistered
		}
		return nil, fmt.Errorf("get training registration: %w", err)
	}
	var at *time.Time
	if attended {
		now := s.guard.now()
		at = &now
	}
	if err := s.registrationRepo.MarkAttendance(ctx, trainingID, userID, attended, at); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotRegistered
		}
		return nil, fmt.Errorf("mark attendance: %w", err)
	}
	reg.Attended = attended
	reg.AttendanceDatetime = at
	return reg, nil
}

func (s *trainingService) checkCategory(ctx context.Context, categoryID string) error {
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrCategoryNotFound
		}
		return fmt.Errorf("get category: %w", err)
	}
	return nil
}

func (s *trainingService) checkTrainer(ctx context.Context, trainerID string) error {
	u, err := s.users.GetByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrTrainerNotFound
		}
		return fmt.Errorf("get trainer: %w", err)
	}
	if u.Role != domain.RoleTrainer {
		return domain.ErrUserIsNotTrainer
	}
	return nil
}

// confirm emails a registration confirmation. Failures are logged only.
func (s *trainingService) confirm(ctx context.Context, t *domain.Training, userID string) {
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
		EventKind: domain.EventKindTraining,
		EventName: t.Name,
		Start:     t.StartDatetime,
		End:       t.EndDatetime,
	}
	if t.MinimumPayment > 0 {
		data.MinimumPayment = formatAmount(t.MinimumPayment, s.currency)
	}
	if err := s.emailService.SendRegistrationConfirmation(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "send registration confirmation failed", "user_id", userID, "err", err)
	}
}

// heldCategories returns the set of category ids the user currently holds.
func heldCategories(ctx context.Context, repo domain.UserCategoryRepository, userID string) (map[string]bool, error) {
	ucs, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user categories: %w", err)
	}
	held := make(map[string]bool, len(ucs))
	for _, uc := range ucs {
		held[uc.CategoryID] = true
	}
	return held, nil
}
