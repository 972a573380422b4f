package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clubscheduler/internal/domain"
)

// registrationGuard holds the enrollment and attendance rules shared by the
// training and tournament services.
type registrationGuard struct {
	eligibility domain.EligibilityChecker
	tuition     domain.TuitionChecker
	now         func() time.Time
}

// canRegister runs the checks that precede an enrollment, in order:
// category eligibility, no existing registration, registration before the
// event starts, then the tuition minimum when one applies.
func (g *registrationGuard) canRegister(
	ctx context.Context,
	ev domain.Scheduled,
	userID string,
	alreadyRegistered func(ctx context.Context) (bool, error),
	minimumPayment int64,
) error {
	if err := g.eligibility.CanJoin(ctx, userID, ev.CategoryRef()); err != nil {
		return err
	}
	registered, err := alreadyRegistered(ctx)
	if err != nil {
		return err
	}
	if registered {
		return domain.ErrUserAlreadyRegistered
	}
	if !g.now().Before(ev.Window().Start) {
		return domain.ErrRegistrationClosed
	}
	if minimumPayment > 0 {
		if g.tuition == nil {
			return domain.ErrInsufficientTuition
		}
		ok, err := g.tuition.HasActiveTuitionAtLeast(ctx, userID, minimumPayment)
		if err != nil {
			return domain.Upstream("tuition", err)
		}
		if !ok {
			return domain.ErrInsufficientTuition
		}
	}
	return nil
}

// canAttend requires now to fall within the event window.
func (g *registrationGuard) canAttend(ev domain.Scheduled) error {
	if !ev.Window().Contains(g.now()) {
		return domain.ErrInvalidAssistanceDate
	}
	return nil
}

// positionFree reports ErrPositionAlreadyTaken when another user already
// holds position in the tournament.
func positionFree(ctx context.Context, repo domain.TournamentAttendanceRepository, tournamentID, userID string, position int) error {
	if position < 1 {
		return domain.ErrInvalidPosition
	}
	holder, err := repo.GetByPosition(ctx, tournamentID, position)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("get attendance by position: %w", err)
	}
	if holder.UserID != userID {
		return domain.ErrPositionAlreadyTaken
	}
	return nil
}

// exists adapts a repository lookup into the "already registered" probe used
// by canRegister.
func exists[T any](get func(ctx context.Context) (T, error)) func(ctx context.Context) (bool, error) {
	return func(ctx context.Context) (bool, error) {
		if _, err := get(ctx); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return false, nil
			}
			return false, fmt.Errorf("get registration: %w", err)
		}
		return true, nil
	}
}
