package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Rhymond/go-money"

	"clubscheduler/internal/domain"
)

// DefaultCurrency is used when no tuition currency is configured.
const DefaultCurrency = money.USD

type tuitionService struct {
	tuitionRepo domain.TuitionRepository
	currency    string
	logger      *slog.Logger
	now         func() time.Time
}

// NewTuitionService creates a TuitionService. Amounts are minor units of currency.
func NewTuitionService(tuitionRepo domain.TuitionRepository, currency string, logger *slog.Logger) domain.TuitionService {
	if money.GetCurrency(currency) == nil {
		currency = DefaultCurrency
	}
	return &tuitionService{
		tuitionRepo: tuitionRepo,
		currency:    currency,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *tuitionService) PayTuition(ctx context.Context, userID string, amount int64) (*domain.Tuition, error) {
	if !money.New(amount, s.currency).IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	t := &domain.Tuition{UserID: userID, Amount: amount, PaymentDate: s.now()}
	if err := s.tuitionRepo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create tuition: %w", err)
	}
	s.logger.InfoContext(ctx, "tuition paid", "user_id", userID, "amount", formatAmount(amount, s.currency))
	return t, nil
}

func (s *tuitionService) HasActiveTuition(ctx context.Context, userID string) (bool, error) {
	active, err := s.active(ctx, userID)
	if err != nil {
		return false, err
	}
	return len(active) > 0, nil
}

// HasActiveTuitionAtLeast reports whether a single active payment covers amount.
func (s *tuitionService) HasActiveTuitionAtLeast(ctx context.Context, userID string, amount int64) (bool, error) {
	active, err := s.active(ctx, userID)
	if err != nil {
		return false, err
	}
	want := money.New(amount, s.currency)
	for _, t := range active {
		ok, err := money.New(t.Amount, s.currency).GreaterThanOrEqual(want)
		if err != nil {
			return false, fmt.Errorf("compare tuition: %w", err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func (s *tuitionService) ListUserTuitions(ctx context.Context, userID string) ([]*domain.Tuition, error) {
	list, err := s.tuitionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user tuitions: %w", err)
	}
	return list, nil
}

func (s *tuitionService) ListTuitions(ctx context.Context, p domain.PaginationParams) ([]*domain.Tuition, int, error) {
	list, total, err := s.tuitionRepo.List(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list tuitions: %w", err)
	}
	return list, total, nil
}

func (s *tuitionService) active(ctx context.Context, userID string) ([]*domain.Tuition, error) {
	now := s.now()
	list, err := s.tuitionRepo.ListPaidSince(ctx, userID, now.Add(-domain.TuitionValidity))
	if err != nil {
		return nil, fmt.Errorf("list active tuitions: %w", err)
	}
	active := make([]*domain.Tuition, 0, len(list))
	for _, t := range list {
		if t.ActiveAt(now) {
			active = append(active, t)
		}
	}
	return active, nil
}

// formatAmount renders minor units for display, e.g. 1500 USD as "$15.00".
func formatAmount(amount int64, currency string) string {
	if money.GetCurrency(currency) == nil {
		currency = DefaultCurrency
	}
	return money.New(amount, currency).Display()
}
