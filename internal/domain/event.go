package domain

import (
	"context"
	"time"
)

// EventKind distinguishes the two schedulable event types.
type EventKind string

const (
	EventKindTraining   EventKind = "training"
	EventKindTournament EventKind = "tournament"
)

// Scheduled is implemented by events that occupy a time window and may hold
// a court reservation.
type Scheduled interface {
	EventID() string
	Kind() EventKind
	CategoryRef() string
	Window() Interval
}

// Training is a coached session for members of a category.
// MinimumPayment is expressed in minor currency units.
// swagger:model Training
type Training struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	CategoryID     string    `json:"category_id"`
	TrainerID      string    `json:"trainer_id"`
	StartDatetime  time.Time `json:"start_datetime"`
	EndDatetime    time.Time `json:"end_datetime"`
	MinimumPayment int64     `json:"minimum_payment"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (t *Training) EventID() string     { return t.ID }
func (t *Training) Kind() EventKind     { return EventKindTraining }
func (t *Training) CategoryRef() string { return t.CategoryID }
func (t *Training) Window() Interval    { return Interval{Start: t.StartDatetime, End: t.EndDatetime} }

// TrainingUpdate carries the fields to change; nil fields are left as they are.
type TrainingUpdate struct {
	Name           *string
	CategoryID     *string
	TrainerID      *string
	StartDatetime  *time.Time
	EndDatetime    *time.Time
	MinimumPayment *int64
}

// Tournament is a competition for members of a category.
// swagger:model Tournament
type Tournament struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	CategoryID    string    `json:"category_id"`
	StartDatetime time.Time `json:"start_datetime"`
	EndDatetime   time.Time `json:"end_datetime"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (t *Tournament) EventID() string     { return t.ID }
func (t *Tournament) Kind() EventKind     { return EventKindTournament }
func (t *Tournament) CategoryRef() string { return t.CategoryID }
func (t *Tournament) Window() Interval    { return Interval{Start: t.StartDatetime, End: t.EndDatetime} }

// TournamentUpdate carries the fields to change; nil fields are left as they are.
type TournamentUpdate struct {
	Name          *string
	CategoryID    *string
	StartDatetime *time.Time
	EndDatetime   *time.Time
}

// TrainingRegistration is a user's enrollment in a training.
// swagger:model TrainingRegistration
type TrainingRegistration struct {
	TrainingID           string     `json:"training_id"`
	UserID               string     `json:"user_id"`
	RegistrationDatetime time.Time  `json:"registration_datetime"`
	Attended             bool       `json:"attended"`
	AttendanceDatetime   *time.Time `json:"attendance_datetime"`
}

// TournamentRegistration is a user's enrollment in a tournament.
// swagger:model TournamentRegistration
type TournamentRegistration struct {
	TournamentID         string    `json:"tournament_id"`
	UserID               string    `json:"user_id"`
	RegistrationDatetime time.Time `json:"registration_datetime"`
}

// TournamentAttendance records a user's participation and final position.
// swagger:model TournamentAttendance
type TournamentAttendance struct {
	TournamentID       string    `json:"tournament_id"`
	UserID             string    `json:"user_id"`
	AttendanceDatetime time.Time `json:"attendance_datetime"`
	Position           int       `json:"position"`
}

// TrainingRepository defines storage operations for trainings.
// Delete is a soft delete; deleted trainings are not returned.
type TrainingRepository interface {
	Create(ctx context.Context, t *Training) error
	GetByID(ctx context.Context, id string) (*Training, error)
	List(ctx context.Context) ([]*Training, error)
	ListByTrainer(ctx context.Context, trainerID string) ([]*Training, error)
	Update(ctx context.Context, t *Training) error
	Delete(ctx context.Context, id string) error
}

// TournamentRepository defines storage operations for tournaments.
// Delete is a soft delete; deleted tournaments are not returned.
type TournamentRepository interface {
	Create(ctx context.Context, t *Tournament) error
	GetByID(ctx context.Context, id string) (*Tournament, error)
	List(ctx context.Context) ([]*Tournament, error)
	Update(ctx context.Context, t *Tournament) error
	Delete(ctx context.Context, id string) error
}

// TrainingRegistrationRepository defines storage operations for training enrollments.
// Create returns ErrConflict when a non-deleted registration already exists.
type TrainingRegistrationRepository interface {
	Create(ctx context.Context, reg *TrainingRegistration) error
	Get(ctx context.Context, trainingID, userID string) (*TrainingRegistration, error)
	ListByTraining(ctx context.Context, trainingID string) ([]*TrainingRegistration, error)
	ListByUser(ctx context.Context, userID string) ([]*TrainingRegistration, error)
	MarkAttendance(ctx context.Context, trainingID, userID string, attended bool, at *time.Time) error
	Delete(ctx context.Context, trainingID, userID string) error
}

// TournamentRegistrationRepository defines storage operations for tournament enrollments.
// Create returns ErrConflict when a non-deleted registration already exists.
type TournamentRegistrationRepository interface {
	Create(ctx context.Context, reg *TournamentRegistration) error
	Get(ctx context.Context, tournamentID, userID string) (*TournamentRegistration, error)
	ListByTournament(ctx context.Context, tournamentID string) ([]*TournamentRegistration, error)
	ListByUser(ctx context.Context, userID string) ([]*TournamentRegistration, error)
	Delete(ctx context.Context, tournamentID, userID string) error
}

// TournamentAttendanceRepository defines storage operations for results.
// Create and UpdatePosition return ErrConflict when the position is taken.
type TournamentAttendanceRepository interface {
	Create(ctx context.Context, a *TournamentAttendance) error
	Get(ctx context.Context, tournamentID, userID string) (*TournamentAttendance, error)
	GetByPosition(ctx context.Context, tournamentID string, position int) (*TournamentAttendance, error)
	ListByTournament(ctx context.Context, tournamentID string) ([]*TournamentAttendance, error)
	UpdatePosition(ctx context.Context, tournamentID, userID string, position int) error
	Delete(ctx context.Context, tournamentID, userID string) error
}

// TrainingService defines training scheduling, enrollment and attendance.
type TrainingService interface {
	CreateTraining(ctx context.Context, t *Training, courtID *string) (*Training, error)
	GetTraining(ctx context.Context, id string) (*Training, error)
	ListTrainings(ctx context.Context) ([]*Training, error)
	ListTrainingsByTrainer(ctx context.Context, trainerID string) ([]*Training, error)
	ListEligibleTrainings(ctx context.Context, userID string) ([]*Training, error)
	UpdateTraining(ctx context.Context, id string, upd TrainingUpdate, courtID *string) (*Training, error)
	DeleteTraining(ctx context.Context, id string) error

	RegisterUser(ctx context.Context, trainingID, userID string) (*TrainingRegistration, error)
	ListRegistrations(ctx context.Context, trainingID string) ([]*TrainingRegistration, error)
	ListUserRegistrations(ctx context.Context, userID string) ([]*TrainingRegistration, error)
	DeleteRegistration(ctx context.Context, trainingID, userID string) error
	MarkAttendance(ctx context.Context, trainingID, userID string, attended bool) (*TrainingRegistration, error)
}

// TournamentService defines tournament scheduling, enrollment and results.
type TournamentService interface {
	CreateTournament(ctx context.Context, t *Tournament, courtID *string) (*Tournament, error)
	GetTournament(ctx context.Context, id string) (*Tournament, error)
	ListTournaments(ctx context.Context) ([]*Tournament, error)
	ListEligibleTournaments(ctx context.Context, userID string) ([]*Tournament, error)
	UpdateTournament(ctx context.Context, id string, upd TournamentUpdate, courtID *string) (*Tournament, error)
	DeleteTournament(ctx context.Context, id string) error

	RegisterUser(ctx context.Context, tournamentID, userID string) (*TournamentRegistration, error)
	ListRegistrations(ctx context.Context, tournamentID string) ([]*TournamentRegistration, error)
	ListUserRegistrations(ctx context.Context, userID string) ([]*TournamentRegistration, error)
	DeleteRegistration(ctx context.Context, tournamentID, userID string) error

	RecordAttendance(ctx context.Context, tournamentID, userID string, position int) (*TournamentAttendance, error)
	UpdatePosition(ctx context.Context, tournamentID, userID string, position int) (*TournamentAttendance, error)
	ListAttendance(ctx context.Context, tournamentID string) ([]*TournamentAttendance, error)
	DeleteAttendance(ctx context.Context, tournamentID, userID string) error
}
