package domain

import (
	"context"
	"time"
)

// Court is a bookable physical resource.
// swagger:model Court
type Court struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CourtReservation is an exclusive claim on a court for [Start, End),
// linked to exactly one training or tournament.
// swagger:model CourtReservation
type CourtReservation struct {
	ID           string    `json:"id"`
	CourtID      string    `json:"court_id"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	TrainingID   *string   `json:"training_id,omitempty"`
	TournamentID *string   `json:"tournament_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Window returns the reserved interval.
func (r *CourtReservation) Window() Interval {
	return Interval{Start: r.Start, End: r.End}
}

// ReservationRequest is the input for booking a court.
type ReservationRequest struct {
	CourtID      string
	Start        time.Time
	End          time.Time
	TrainingID   *string
	TournamentID *string
}

// Window returns the requested interval.
func (r ReservationRequest) Window() Interval {
	return Interval{Start: r.Start, End: r.End}
}

// CheckLinkage enforces that exactly one of TrainingID and TournamentID is set.
func (r ReservationRequest) CheckLinkage() error {
	hasTraining := r.TrainingID != nil && *r.TrainingID != ""
	hasTournament := r.TournamentID != nil && *r.TournamentID != ""
	switch {
	case !hasTraining && !hasTournament:
		return ErrReservationPurposeMissing
	case hasTraining && hasTournament:
		return ErrReservationPurposeConflict
	}
	return nil
}

// ReservationFor builds a request linking a reservation to the given event.
func ReservationFor(kind EventKind, eventID, courtID string, window Interval) ReservationRequest {
	req := ReservationRequest{CourtID: courtID, Start: window.Start, End: window.End}
	id := eventID
	switch kind {
	case EventKindTraining:
		req.TrainingID = &id
	case EventKindTournament:
		req.TournamentID = &id
	}
	return req
}

// CourtRepository defines storage operations for courts.
type CourtRepository interface {
	Create(ctx context.Context, c *Court) error
	GetByID(ctx context.Context, id string) (*Court, error)
	GetByName(ctx context.Context, name string) (*Court, error)
	List(ctx context.Context) ([]*Court, error)
	Update(ctx context.Context, c *Court) error
	Delete(ctx context.Context, id string) error
}

// CourtReservationRepository defines storage operations for reservations.
// Create returns ErrConflict when the store rejects an overlapping or
// duplicate reservation.
type CourtReservationRepository interface {
	Create(ctx context.Context, r *CourtReservation) error
	GetByID(ctx context.Context, id string) (*CourtReservation, error)
	GetByEvent(ctx context.Context, kind EventKind, eventID string) (*CourtReservation, error)
	ListOverlapping(ctx context.Context, courtID string, window Interval) ([]*CourtReservation, error)
	CountByCourt(ctx context.Context, courtID string) (int, error)
	Delete(ctx context.Context, id string) error
}

// CourtService defines court administration, availability and reservations.
type CourtService interface {
	CreateCourt(ctx context.Context, name string) (*Court, error)
	GetCourt(ctx context.Context, id string) (*Court, error)
	ListCourts(ctx context.Context) ([]*Court, error)
	RenameCourt(ctx context.Context, id, name string) (*Court, error)
	DeleteCourt(ctx context.Context, id string) error

	// IsAvailable reports whether no reservation other than excludeReservationID
	// overlaps window. An empty excludeReservationID excludes nothing.
	IsAvailable(ctx context.Context, courtID string, window Interval, excludeReservationID string) (bool, error)
	CreateReservation(ctx context.Context, req ReservationRequest) (*CourtReservation, error)
	GetReservation(ctx context.Context, id string) (*CourtReservation, error)
	GetReservationForEvent(ctx context.Context, kind EventKind, eventID string) (*CourtReservation, error)
	ListReservations(ctx context.Context, courtID string, window Interval) ([]*CourtReservation, error)
	DeleteReservation(ctx context.Context, id string) error
}
