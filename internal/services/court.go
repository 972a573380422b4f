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

type courtService struct {
	courtRepo       domain.CourtRepository
	reservationRepo domain.CourtReservationRepository
	locker          domain.Locker
	publisher       domain.EventPublisher
	logger          *slog.Logger
	now             func() time.Time
}

// NewCourtService creates a CourtService. locker serialises bookings of the
// same court across instances and may be nil; the store's exclusion
// constraint remains the final guard either way.
func NewCourtService(
	courtRepo domain.CourtRepository,
	reservationRepo domain.CourtReservationRepository,
	locker domain.Locker,
	publisher domain.EventPublisher,
	logger *slog.Logger,
) domain.CourtService {
	return &courtService{
		courtRepo:       courtRepo,
		reservationRepo: reservationRepo,
		locker:          locker,
		publisher:       publisher,
		logger:          logger,
		now:             time.Now,
	}
}

func (s *courtService) CreateCourt(ctx context.Context, name string) (*domain.Court, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrMissingName
	}
	if err := s.ensureNameFree(ctx, name, ""); err != nil {
		return nil, err
	}
	now := s.now()
	c := &domain.Court{Name: name, CreatedAt: now, UpdatedAt: now}
	if err := s.courtRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create court: %w", err)
	}
	return c, nil
}

func (s *courtService) GetCourt(ctx context.Context, id string) (*domain.Court, error) {
	c, err := s.courtRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrCourtNotFound
		}
		return nil, fmt.Errorf("get court: %w", err)
	}
	return c, nil
}

func (s *courtService) ListCourts(ctx context.Context) ([]*domain.Court, error) {
	list, err := s.courtRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courts: %w", err)
	}
	return list, nil
}

func (s *courtService) RenameCourt(ctx context.Context, id, name string) (*domain.Court, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrMissingName
	}
	c, err := s.GetCourt(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, name, id); err != nil {
		return nil, err
	}
	c.Name = name
	c.UpdatedAt = s.now()
	if err := s.courtRepo.Update(ctx, c); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrCourtNotFound
		}
		return nil, fmt.Errorf("update court: %w", err)
	}
	return c, nil
}

// DeleteCourt soft-deletes a court that has no active reservations.
func (s *courtService) DeleteCourt(ctx context.Context, id string) error {
	if _, err := s.GetCourt(ctx, id); err != nil {
		return err
	}
	n, err := s.reservationRepo.CountByCourt(ctx, id)
	if err != nil {
		return fmt.Errorf("count reservations: %w", err)
	}
	if n > 0 {
		return domain.ErrReservationExists
	}
	if err := s.courtRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrCourtNotFound
		}
		return fmt.Errorf("delete court: %w", err)
	}
	return nil
}

func (s *courtService) ensureNameFree(ctx context.Context, name, selfID string) error {
	other, err := s.courtRepo.GetByName(ctx, name)
	if err == nil {
		if other.ID != selfID {
			return domain.ErrCourtNameExists
		}
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("get court by name: %w", err)
	}
	return nil
}

// IsAvailable assumes window is valid; callers reject start >= end first.
func (s *courtService) IsAvailable(ctx context.Context, courtID string, window domain.Interval, excludeReservationID string) (bool, error) {
	overlapping, err := s.reservationRepo.ListOverlapping(ctx, courtID, window)
	if err != nil {
		return false, fmt.Errorf("list overlapping reservations: %w", err)
	}
	for _, r := range overlapping {
		if excludeReservationID != "" && r.ID == excludeReservationID {
			continue
		}
		if domain.Overlaps(r.Window(), window) {
			return false, nil
		}
	}
	return true, nil
}

// CreateReservation books a court. Shape errors (window, linkage) are
// reported before the court is looked up.
func (s *courtService) CreateReservation(ctx context.Context, req domain.ReservationRequest) (*domain.CourtReservation, error) {
	window := req.Window()
	if !window.Valid() {
		return nil, domain.ErrInvalidReservationTime
	}
	if err := req.CheckLinkage(); err != nil {
		return nil, err
	}
	if _, err := s.GetCourt(ctx, req.CourtID); err != nil {
		return nil, err
	}

	kind, eventID := linkedEvent(req)
	if _, err := s.reservationRepo.GetByEvent(ctx, kind, eventID); err == nil {
		return nil, domain.ErrEventAlreadyReserved
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get reservation for %s: %w", kind, err)
	}

	if s.locker != nil {
		release, err := s.locker.Acquire(ctx, "court:"+req.CourtID)
		if err != nil {
			if errors.Is(err, domain.ErrLockNotAcquired) {
				return nil, domain.ErrCourtBusy
			}
			return nil, fmt.Errorf("lock court: %w", err)
		}
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				s.logger.WarnContext(ctx, "release court lock failed", "court_id", req.CourtID, "err", err)
			}
		}()
	}

	available, err := s.IsAvailable(ctx, req.CourtID, window, "")
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, domain.ErrCourtUnavailable
	}

	res := &domain.CourtReservation{
		CourtID:      req.CourtID,
		Start:        req.Start,
		End:          req.End,
		TrainingID:   req.TrainingID,
		TournamentID: req.TournamentID,
		CreatedAt:    s.now(),
	}
	if err := s.reservationRepo.Create(ctx, res); err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}
	publish(ctx, s.logger, s.publisher, domain.TopicReservationCreated, reservationMessage(res))
	return res, nil
}

func (s *courtService) GetReservation(ctx context.Context, id string) (*domain.CourtReservation, error) {
	r, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	return r, nil
}

func (s *courtService) GetReservationForEvent(ctx context.Context, kind domain.EventKind, eventID string) (*domain.CourtReservation, error) {
	r, err := s.reservationRepo.GetByEvent(ctx, kind, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, fmt.Errorf("get reservation for %s: %w", kind, err)
	}
	return r, nil
}

func (s *courtService) ListReservations(ctx context.Context, courtID string, window domain.Interval) ([]*domain.CourtReservation, error) {
	if !window.Valid() {
		return nil, domain.ErrInvalidReservationTime
	}
	if _, err := s.GetCourt(ctx, courtID); err != nil {
		return nil, err
	}
	list, err := s.reservationRepo.ListOverlapping(ctx, courtID, window)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return list, nil
}

func (s *courtService) DeleteReservation(ctx context.Context, id string) error {
	res, err := s.GetReservation(ctx, id)
	if err != nil {
		return err
	}
	if err := s.reservationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrReservationNotFound
		}
		return fmt.Errorf("delete reservation: %w", err)
	}
	publish(ctx, s.logger, s.publisher, domain.TopicReservationReleased, reservationMessage(res))
	return nil
}

// linkedEvent returns the event a linkage-checked request points at.
func linkedEvent(req domain.ReservationRequest) (domain.EventKind, string) {
	if req.TrainingID != nil && *req.TrainingID != "" {
		return domain.EventKindTraining, *req.TrainingID
	}
	return domain.EventKindTournament, *req.TournamentID
}

func reservationMessage(r *domain.CourtReservation) domain.ReservationMessage {
	return domain.ReservationMessage{
		ReservationID: r.ID,
		CourtID:       r.CourtID,
		Window:        r.Window(),
		TrainingID:    r.TrainingID,
		TournamentID:  r.TournamentID,
	}
}
