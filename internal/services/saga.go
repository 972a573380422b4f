package services

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"clubscheduler/internal/domain"
)

var tracer = otel.Tracer("clubscheduler/internal/services")

// sagaStep is one action of a multi-store workflow. compensate, when set,
// undoes action and only runs if action succeeded and a later step failed.
type sagaStep struct {
	name       string
	action     func(ctx context.Context) error
	compensate func(ctx context.Context) error
}

// saga runs steps in order. On the first failing step it compensates the
// completed steps in reverse order and returns the failing step's error.
type saga struct {
	name      string
	logger    *slog.Logger
	publisher domain.EventPublisher
	steps     []sagaStep
}

func newSaga(name string, logger *slog.Logger, publisher domain.EventPublisher) *saga {
	return &saga{name: name, logger: logger, publisher: publisher}
}

func (s *saga) step(name string, action, compensate func(ctx context.Context) error) *saga {
	s.steps = append(s.steps, sagaStep{name: name, action: action, compensate: compensate})
	return s
}

func (s *saga) run(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "saga."+s.name)
	defer span.End()

	for i, st := range s.steps {
		span.AddEvent("step", attributeStep(st.name))
		if err := st.action(ctx); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, st.name)
			s.rollback(ctx, s.steps[:i], st.name, err)
			return err
		}
	}
	return nil
}

// rollback compensates done in reverse. Compensation runs even if the request
// context was cancelled; a failed compensation is reported as an inconsistency.
func (s *saga) rollback(ctx context.Context, done []sagaStep, failedStep string, cause error) {
	ctx = context.WithoutCancel(ctx)
	for i := len(done) - 1; i >= 0; i-- {
		st := done[i]
		if st.compensate == nil {
			continue
		}
		if err := st.compensate(ctx); err != nil {
			s.reportInconsistency(ctx, st.name, failedStep, err, cause)
			continue
		}
		s.logger.InfoContext(ctx, "saga step compensated", "saga", s.name, "step", st.name, "failed_step", failedStep)
	}
}

func (s *saga) reportInconsistency(ctx context.Context, step, failedStep string, err, cause error) {
	s.logger.ErrorContext(ctx, "saga compensation failed",
		"inconsistency", true,
		"saga", s.name,
		"step", step,
		"failed_step", failedStep,
		"err", err,
		"cause", cause,
	)
	if s.publisher == nil {
		return
	}
	msg := domain.InconsistencyMessage{Saga: s.name, Step: step, Error: err.Error(), Cause: cause.Error()}
	if perr := s.publisher.Publish(ctx, domain.TopicInconsistency, msg); perr != nil {
		s.logger.WarnContext(ctx, "publish inconsistency failed", "saga", s.name, "err", perr)
	}
}

func attributeStep(name string) trace.EventOption {
	return trace.WithAttributes(attribute.String("saga.step", name))
}
