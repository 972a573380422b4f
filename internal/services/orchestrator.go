package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"clubscheduler/internal/domain"
)

// eventStore is the storage the orchestrator needs for one event kind.
// domain.TrainingRepository and domain.TournamentRepository satisfy it.
type eventStore[T domain.Scheduled] interface {
	Create(ctx context.Context, ev T) error
	GetByID(ctx context.Context, id string) (T, error)
	Update(ctx context.Context, ev T) error
	Delete(ctx context.Context, id string) error
}

// eventOrchestrator sequences writes to an event store and the court
// subsystem. The two stores commit independently, so every multi-store
// workflow runs as a saga with explicit compensation.
type eventOrchestrator[T domain.Scheduled] struct {
	kind      domain.EventKind
	events    eventStore[T]
	courts    domain.CourtService
	notFound  error
	logger    *slog.Logger
	publisher domain.EventPublisher
}

func newEventOrchestrator[T domain.Scheduled](
	kind domain.EventKind,
	events eventStore[T],
	courts domain.CourtService,
	notFound error,
	logger *slog.Logger,
	publisher domain.EventPublisher,
) *eventOrchestrator[T] {
	return &eventOrchestrator[T]{
		kind:      kind,
		events:    events,
		courts:    courts,
		notFound:  notFound,
		logger:    logger,
		publisher: publisher,
	}
}

// Create validates ev, inserts it and, when courtID is set, reserves the
// court for the event's window. A failed reservation deletes the new event.
func (o *eventOrchestrator[T]) Create(ctx context.Context, ev T, courtID *string, validate func(context.Context, T) error) (T, error) {
	var zero T
	if err := domain.ValidEventDuration(ev.Window()); err != nil {
		return zero, err
	}
	if validate != nil {
		if err := validate(ctx, ev); err != nil {
			return zero, err
		}
	}

	sg := newSaga("create_"+string(o.kind), o.logger, o.publisher).
		step("insert_event",
			func(ctx context.Context) error {
				if err := o.events.Create(ctx, ev); err != nil {
					return fmt.Errorf("create %s: %w", o.kind, err)
				}
				return nil
			},
			func(ctx context.Context) error {
				return o.events.Delete(ctx, ev.EventID())
			})
	if courtID != nil {
		sg.step("reserve_court", func(ctx context.Context) error {
			_, err := o.reserve(ctx, ev, *courtID)
			return err
		}, nil)
	}
	if err := sg.run(ctx); err != nil {
		return zero, err
	}

	publish(ctx, o.logger, o.publisher, domain.TopicEventCreated, o.message(ev))
	return ev, nil
}

// Update loads the event, applies change to a copy and re-validates it.
// The court reservation is released and re-acquired as needed before the
// event row is persisted, so a reservation failure leaves the stored event
// untouched. change must return a new value rather than modify cur.
func (o *eventOrchestrator[T]) Update(
	ctx context.Context,
	id string,
	courtID *string,
	change func(cur T) T,
	validate func(ctx context.Context, next, cur T) error,
) (T, error) {
	var zero T
	cur, err := o.load(ctx, id)
	if err != nil {
		return zero, err
	}
	next := change(cur)
	if err := domain.ValidEventDuration(next.Window()); err != nil {
		return zero, err
	}
	if validate != nil {
		if err := validate(ctx, next, cur); err != nil {
			return zero, err
		}
	}

	existing, err := o.currentReservation(ctx, id)
	if err != nil {
		return zero, err
	}

	sg := newSaga("update_"+string(o.kind), o.logger, o.publisher)
	var acquired *domain.CourtReservation
	if existing != nil && needsRelease(existing, next.Window(), courtID) {
		held := existing
		sg.step("release_reservation",
			func(ctx context.Context) error {
				if err := o.courts.DeleteReservation(ctx, held.ID); err != nil {
					return domain.Upstream("court", err)
				}
				return nil
			},
			func(ctx context.Context) error {
				restore := domain.ReservationFor(o.kind, id, held.CourtID, held.Window())
				_, err := o.courts.CreateReservation(ctx, restore)
				return err
			})
		existing = nil
	}
	if courtID != nil && existing == nil {
		sg.step("reserve_court",
			func(ctx context.Context) error {
				res, err := o.reserve(ctx, next, *courtID)
				if err != nil {
					return err
				}
				acquired = res
				return nil
			},
			func(ctx context.Context) error {
				return o.courts.DeleteReservation(ctx, acquired.ID)
			})
	}
	sg.step("persist_event", func(ctx context.Context) error {
		if err := o.events.Update(ctx, next); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return o.notFound
			}
			return fmt.Errorf("update %s: %w", o.kind, err)
		}
		return nil
	}, nil)

	if err := sg.run(ctx); err != nil {
		return zero, err
	}

	publish(ctx, o.logger, o.publisher, domain.TopicEventUpdated, o.message(next))
	return next, nil
}

// Delete soft-deletes the event. Releasing its reservation is best-effort:
// a failure is logged and the deletion still goes ahead.
func (o *eventOrchestrator[T]) Delete(ctx context.Context, id string) error {
	ev, err := o.load(ctx, id)
	if err != nil {
		return err
	}

	res, err := o.courts.GetReservationForEvent(ctx, o.kind, id)
	switch {
	case err == nil:
		if derr := o.courts.DeleteReservation(ctx, res.ID); derr != nil {
			o.logger.WarnContext(ctx, "release reservation failed",
				"kind", o.kind, "event_id", id, "reservation_id", res.ID, "err", derr)
		}
	case !errors.Is(err, domain.ErrReservationNotFound):
		o.logger.WarnContext(ctx, "lookup reservation failed", "kind", o.kind, "event_id", id, "err", err)
	}

	if err := o.events.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return o.notFound
		}
		return fmt.Errorf("delete %s: %w", o.kind, err)
	}
	publish(ctx, o.logger, o.publisher, domain.TopicEventDeleted, o.message(ev))
	return nil
}

func (o *eventOrchestrator[T]) load(ctx context.Context, id string) (T, error) {
	ev, err := o.events.GetByID(ctx, id)
	if err != nil {
		var zero T
		if errors.Is(err, domain.ErrNotFound) {
			return zero, o.notFound
		}
		return zero, fmt.Errorf("get %s: %w", o.kind, err)
	}
	return ev, nil
}

func (o *eventOrchestrator[T]) currentReservation(ctx context.Context, id string) (*domain.CourtReservation, error) {
	res, err := o.courts.GetReservationForEvent(ctx, o.kind, id)
	if err != nil {
		if errors.Is(err, domain.ErrReservationNotFound) {
			return nil, nil
		}
		return nil, domain.Upstream("court", err)
	}
	return res, nil
}

func (o *eventOrchestrator[T]) reserve(ctx context.Context, ev T, courtID string) (*domain.CourtReservation, error) {
	req := domain.ReservationFor(o.kind, ev.EventID(), courtID, ev.Window())
	res, err := o.courts.CreateReservation(ctx, req)
	if err != nil {
		return nil, domain.Upstream("court", err)
	}
	return res, nil
}

func (o *eventOrchestrator[T]) message(ev T) domain.EventMessage {
	return domain.EventMessage{
		Kind:       o.kind,
		EventID:    ev.EventID(),
		CategoryID: ev.CategoryRef(),
		Window:     ev.Window(),
	}
}

// needsRelease reports whether res no longer matches the requested court
// and window. No requested court always releases.
func needsRelease(res *domain.CourtReservation, window domain.Interval, courtID *string) bool {
	if courtID == nil || res.CourtID != *courtID {
		return true
	}
	return !res.Start.Equal(window.Start) || !res.End.Equal(window.End)
}
