package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies domain errors independently of the reason that produced them.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindNotFound
	KindValidation
	KindConflict
	KindPermission
	KindUpstream
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation_failed"
	case KindConflict:
		return "conflict"
	case KindPermission:
		return "permission_denied"
	case KindUpstream:
		return "upstream_failed"
	default:
		return "internal"
	}
}

// Error is a typed domain error. Code is stable and unique per reason;
// Message is the user-facing text for that reason.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same Code, so wrapped copies still compare
// equal to the sentinel they were built from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func newError(kind ErrorKind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Upstream wraps an error returned by a collaborating subsystem. The original
// error stays in the chain, so errors.Is against its sentinel keeps working.
func Upstream(subsystem string, err error) error {
	if err == nil {
		return nil
	}
	var de *Error
	if !errors.As(err, &de) {
		return fmt.Errorf("%s: %w", subsystem, err)
	}
	return &Error{
		Kind:    KindUpstream,
		Code:    "upstream_failed",
		Message: subsystem + ": " + de.Message,
		Err:     err,
	}
}

// KindOf returns the kind of the outermost domain error in err's chain,
// or KindInternal if there is none.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// Cause returns the innermost domain error in err's chain. Upstream wrappers
// are skipped so callers can classify by the collaborator's own reason.
func Cause(err error) *Error {
	var found *Error
	for err != nil {
		if de, ok := err.(*Error); ok {
			found = de
		}
		err = errors.Unwrap(err)
	}
	return found
}

// Generic repository errors.
var (
	ErrNotFound     = newError(KindNotFound, "not_found", "resource not found")
	ErrConflict     = newError(KindConflict, "conflict", "resource conflicts with existing data")
	ErrInvalidInput = newError(KindValidation, "invalid_input", "invalid input")
	ErrForbidden    = newError(KindPermission, "forbidden", "operation not allowed")
)

// Category subsystem.
var (
	ErrCategoryNotFound            = newError(KindNotFound, "category_not_found", "category not found")
	ErrCategoryNameExists          = newError(KindConflict, "category_name_exists", "a category with this name already exists")
	ErrMissingName                 = newError(KindValidation, "missing_name", "name is required")
	ErrInvalidAgeRange             = newError(KindValidation, "invalid_age_range", "min_age must be lower than max_age")
	ErrInvalidUserAge              = newError(KindPermission, "invalid_user_age", "user age is outside the category age range")
	ErrUserDoesNotMeetRequirements = newError(KindPermission, "user_does_not_meet_requirements", "user does not meet the category requirements")
	ErrInvalidRequirementLevel     = newError(KindPermission, "invalid_requirement_level", "user level is below the required level")
	ErrUserAlreadyHasCategory      = newError(KindConflict, "user_already_has_category", "user already belongs to this category")
	ErrUserCategoryNotFound        = newError(KindNotFound, "user_category_not_found", "user does not belong to this category")
	ErrRequirementNotFound         = newError(KindNotFound, "requirement_not_found", "category requirement not found")
	ErrRequirementExists           = newError(KindConflict, "requirement_exists", "category already requires this prerequisite")
	ErrSelfRequirement             = newError(KindValidation, "self_requirement", "a category cannot require itself")
	ErrInvalidLevel                = newError(KindValidation, "invalid_level", "level must be BEGINNER, AMATEUR or PROFESSIONAL")
)

// Court subsystem.
var (
	ErrCourtNotFound              = newError(KindNotFound, "court_not_found", "court not found")
	ErrCourtNameExists            = newError(KindConflict, "court_name_exists", "a court with this name already exists")
	ErrCourtUnavailable           = newError(KindConflict, "court_unavailable", "court is not available for the requested time")
	ErrCourtBusy                  = newError(KindConflict, "court_busy", "court is being booked by another request, try again")
	ErrReservationExists          = newError(KindConflict, "reservation_exists", "court has active reservations")
	ErrReservationNotFound        = newError(KindNotFound, "reservation_not_found", "reservation not found")
	ErrInvalidReservationTime     = newError(KindValidation, "invalid_reservation_time", "reservation start must be before its end")
	ErrReservationPurposeMissing  = newError(KindValidation, "reservation_purpose_missing", "reservation must be linked to a training or a tournament")
	ErrReservationPurposeConflict = newError(KindValidation, "reservation_purpose_conflict", "reservation cannot be linked to both a training and a tournament")
	ErrEventAlreadyReserved       = newError(KindConflict, "event_already_reserved", "event already has a court reservation")
	ErrLinkedEventNotFound        = newError(KindNotFound, "linked_event_not_found", "linked training or tournament not found")
)

// Training and tournament subsystems.
var (
	ErrTrainingNotFound      = newError(KindNotFound, "training_not_found", "training not found")
	ErrTournamentNotFound    = newError(KindNotFound, "tournament_not_found", "tournament not found")
	ErrInvalidEventDates     = newError(KindValidation, "invalid_event_dates", "event must last between 10 minutes and 5 hours and start before it ends")
	ErrTrainerNotFound       = newError(KindNotFound, "trainer_not_found", "trainer not found")
	ErrUserIsNotTrainer      = newError(KindPermission, "user_is_not_trainer", "user is not a trainer")
	ErrInvalidPayment        = newError(KindValidation, "invalid_minimum_payment", "minimum payment cannot be negative")
	ErrUserAlreadyRegistered = newError(KindConflict, "user_already_registered", "user is already registered for this event")
	ErrRegistrationClosed    = newError(KindValidation, "registration_closed", "registration is only possible before the event starts")
	ErrInsufficientTuition   = newError(KindPermission, "insufficient_tuition", "user has no active tuition covering the minimum payment")
	ErrRegistrationNotFound  = newError(KindNotFound, "registration_not_found", "registration not found")
	ErrUserNotRegistered     = newError(KindValidation, "user_not_registered", "user is not registered for this event")
	ErrInvalidAssistanceDate = newError(KindValidation, "invalid_assistance_date", "attendance can only be recorded while the event is running")
	ErrInvalidPosition       = newError(KindValidation, "invalid_position", "position must be greater than zero")
	ErrPositionAlreadyTaken  = newError(KindConflict, "position_already_taken", "position is already taken by another user")
	ErrUserDidNotAttend      = newError(KindValidation, "user_did_not_attend", "user has no attendance record for this event")
	ErrAttendanceExists      = newError(KindConflict, "attendance_exists", "attendance already recorded for this user")
)

// Tuition, requests and users.
var (
	ErrInvalidAmount           = newError(KindValidation, "invalid_amount", "amount must be greater than zero")
	ErrRequestNotFound         = newError(KindNotFound, "request_not_found", "request not found")
	ErrRequestAlreadyCompleted = newError(KindConflict, "request_already_completed", "request already completed")
	ErrSelfApprovalNotAllowed  = newError(KindPermission, "self_approval_not_allowed", "cannot approve or reject your own request")
	ErrUserNotFound            = newError(KindNotFound, "user_not_found", "user not found")
	ErrDuplicateEmail          = newError(KindConflict, "email_exists", "email already in use")
	ErrDuplicatePhone          = newError(KindConflict, "phone_exists", "phone number already in use")
	ErrDuplicateDocument       = newError(KindConflict, "document_exists", "identification document already in use")
	ErrInvalidCredentials      = newError(KindPermission, "invalid_credentials", "invalid identifier or password")
	ErrInvalidRole             = newError(KindValidation, "invalid_role", "role must be USER, ADMIN or TRAINER")
)
