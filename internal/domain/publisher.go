package domain

import "context"

// Routing keys for scheduling domain events.
const (
	TopicEventCreated        = "scheduling.event.created"
	TopicEventUpdated        = "scheduling.event.updated"
	TopicEventDeleted        = "scheduling.event.deleted"
	TopicReservationCreated  = "scheduling.reservation.created"
	TopicReservationReleased = "scheduling.reservation.released"
	TopicRegistrationCreated = "scheduling.registration.created"
	TopicInconsistency       = "scheduling.inconsistency"
)

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// EventMessage is the payload published for event lifecycle changes.
type EventMessage struct {
	Kind       EventKind `json:"kind"`
	EventID    string    `json:"event_id"`
	CategoryID string    `json:"category_id,omitempty"`
	Window     Interval  `json:"window"`
}

// ReservationMessage is the payload published for reservation changes.
type ReservationMessage struct {
	ReservationID string   `json:"reservation_id"`
	CourtID       string   `json:"court_id"`
	Window        Interval `json:"window"`
	TrainingID    *string  `json:"training_id,omitempty"`
	TournamentID  *string  `json:"tournament_id,omitempty"`
}

// RegistrationMessage is the payload published when a user enrolls in an event.
type RegistrationMessage struct {
	Kind    EventKind `json:"kind"`
	EventID string    `json:"event_id"`
	UserID  string    `json:"user_id"`
}

// InconsistencyMessage reports a failed compensation that left dangling state.
type InconsistencyMessage struct {
	Saga  string `json:"saga"`
	Step  string `json:"step"`
	Error string `json:"error"`
	Cause string `json:"cause"`
}
