package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"clubscheduler/internal/delivery/http/helpers"
	"clubscheduler/internal/delivery/http/middleware"
	"clubscheduler/internal/domain"
)

// principal returns the authenticated caller or writes 401.
func principal(w http.ResponseWriter, r *http.Request) (*domain.Principal, bool) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return nil, false
	}
	return p, true
}

// actingFor returns the caller when they act on their own behalf or are an admin; otherwise it writes 403.
func actingFor(w http.ResponseWriter, r *http.Request, userID string) (*domain.Principal, bool) {
	p, ok := principal(w, r)
	if !ok {
		return nil, false
	}
	if p.UserID != userID && p.Role != domain.RoleAdmin {
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "cannot act on behalf of another user")
		return nil, false
	}
	return p, true
}

// queryWindow reads the RFC 3339 "start" and "end" query parameters and
// rejects a window whose start is not before its end.
func queryWindow(w http.ResponseWriter, r *http.Request) (domain.Interval, bool) {
	q := r.URL.Query()
	start, err := time.Parse(time.RFC3339, q.Get("start"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "start must be an RFC 3339 timestamp")
		return domain.Interval{}, false
	}
	end, err := time.Parse(time.RFC3339, q.Get("end"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "end must be an RFC 3339 timestamp")
		return domain.Interval{}, false
	}
	window := domain.NewInterval(start, end)
	if !window.Valid() {
		inv := domain.ErrInvalidReservationTime
		helpers.WriteJSONError(w, http.StatusBadRequest, inv.Code, inv.Message)
		return domain.Interval{}, false
	}
	return window, true
}

func requireField(errs []string, value, name string) []string {
	if value == "" {
		return append(errs, name+" is required")
	}
	return errs
}

// requireID rejects a missing or malformed UUID in a request body.
func requireID(errs []string, value, name string) []string {
	if value == "" {
		return append(errs, name+" is required")
	}
	return optionalID(errs, &value, name)
}

func optionalID(errs []string, value *string, name string) []string {
	if value == nil {
		return errs
	}
	if _, err := uuid.Parse(*value); err != nil {
		return append(errs, name+" must be a valid UUID")
	}
	return errs
}

func requireTimes(errs []string, start, end time.Time) []string {
	if start.IsZero() {
		errs = append(errs, "start_datetime is required")
	}
	if end.IsZero() {
		errs = append(errs, "end_datetime is required")
	}
	return errs
}
