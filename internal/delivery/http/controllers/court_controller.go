package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"clubscheduler/internal/delivery/http/helpers"
	"clubscheduler/internal/domain"
)

// CourtRequest is the request body for creating or renaming a court.
type CourtRequest struct {
	Name string `json:"name"`
}

// Validate implements Validator.
func (req CourtRequest) Validate() []string {
	return requireField(nil, strings.TrimSpace(req.Name), "name")
}

// ReservationRequest is the request body for POST /reservations.
// Exactly one of training_id and tournament_id must be set; the service enforces it.
type ReservationRequest struct {
	CourtID      string    `json:"court_id"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	TrainingID   *string   `json:"training_id,omitempty"`
	TournamentID *string   `json:"tournament_id,omitempty"`
}

// Validate implements Validator.
func (req ReservationRequest) Validate() []string {
	var errs []string
	errs = requireID(errs, req.CourtID, "court_id")
	errs = optionalID(errs, req.TrainingID, "training_id")
	errs = optionalID(errs, req.TournamentID, "tournament_id")
	if req.Start.IsZero() {
		errs = append(errs, "start is required")
	}
	if req.End.IsZero() {
		errs = append(errs, "end is required")
	}
	return errs
}

// AvailabilityResponse is the data returned by GET /courts/{courtID}/availability.
type AvailabilityResponse struct {
	CourtID   string    `json:"court_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
}

type CourtController struct {
	Logger  *slog.Logger
	Service domain.CourtService
}

func NewCourtController(logger *slog.Logger, svc domain.CourtService) *CourtController {
	return &CourtController{Logger: logger, Service: svc}
}

// CreateCourt godoc
// @Summary Create a court (admin)
// @Tags courts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CourtRequest true "Court"
// @Success 201 {object} helpers.APIResponse "data contains the court"
// @Failure 409 {object} helpers.APIResponse "error.code: court_name_exists"
// @Router /courts [post]
func (c *CourtController) CreateCourt(w http.ResponseWriter, r *http.Request) {
	var req CourtRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	court, err := c.Service.CreateCourt(r.Context(), strings.TrimSpace(req.Name))
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, court)
}

// ListCourts godoc
// @Summary List courts
// @Tags courts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the courts"
// @Router /courts [get]
func (c *CourtController) ListCourts(w http.ResponseWriter, r *http.Request) {
	courts, err := c.Service.ListCourts(r.Context())
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, courts)
}

// GetCourt godoc
// @Summary Get a court
// @Tags courts
// @Produce json
// @Security BearerAuth
// @Param courtID path string true "Court ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the court"
// @Failure 404 {object} helpers.APIResponse "error.code: court_not_found"
// @Router /courts/{courtID} [get]
func (c *CourtController) GetCourt(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "courtID")
	if !ok {
		return
	}
	court, err := c.Service.GetCourt(r.Context(), id)
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, court)
}

// RenameCourt godoc
// @Summary Rename a court (admin)
// @Tags courts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courtID path string true "Court ID (UUID)"
// @Param body body CourtRequest true "Court"
// @Success 200 {object} helpers.APIResponse "data contains the court"
// @Failure 404 {object} helpers.APIResponse "error.code: court_not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: court_name_exists"
// @Router /courts/{courtID} [put]
func (c *CourtController) RenameCourt(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "courtID")
	if !ok {
		return
	}
	var req CourtRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	court, err := c.Service.RenameCourt(r.Context(), id, strings.TrimSpace(req.Name))
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, court)
}

// DeleteCourt godoc
// @Summary Delete a court without reservations (admin)
// @Tags courts
// @Security BearerAuth
// @Param courtID path string true "Court ID (UUID)"
// @Success 204 "No Content"
// @Failure 409 {object} helpers.APIResponse "error.code: reservation_exists"
// @Router /courts/{courtID} [delete]
func (c *CourtController) DeleteCourt(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "courtID")
	if !ok {
		return
	}
	if err := c.Service.DeleteCourt(r.Context(), id); err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Availability godoc
// @Summary Check whether a court is free for a window
// @Description The window is half-open: a reservation ending at start does not conflict.
// @Tags courts
// @Produce json
// @Security BearerAuth
// @Param courtID path string true "Court ID (UUID)"
// @Param start query string true "Window start (RFC 3339)"
// @Param end query string true "Window end (RFC 3339)"
// @Param exclude query string false "Reservation ID to ignore"
// @Success 200 {object} helpers.APIResponse "data contains the availability"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or invalid_reservation_time"
// @Router /courts/{courtID}/availability [get]
func (c *CourtController) Availability(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "courtID")
	if !ok {
		return
	}
	window, ok := queryWindow(w, r)
	if !ok {
		return
	}
	available, err := c.Service.IsAvailable(r.Context(), id, window, r.URL.Query().Get("exclude"))
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, AvailabilityResponse{
		CourtID: id, Start: window.Start, End: window.End, Available: available,
	})
}

// ListReservations godoc
// @Summary List a court's reservations overlapping a window
// @Tags courts
// @Produce json
// @Security BearerAuth
// @Param courtID path string true "Court ID (UUID)"
// @Param start query string true "Window start (RFC 3339)"
// @Param end query string true "Window end (RFC 3339)"
// @Success 200 {object} helpers.APIResponse "data contains the reservations"
// @Router /courts/{courtID}/reservations [get]
func (c *CourtController) ListReservations(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "courtID")
	if !ok {
		return
	}
	window, ok := queryWindow(w, r)
	if !ok {
		return
	}
	res, err := c.Service.ListReservations(r.Context(), id, window)
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, res)
}

// CreateReservation godoc
// @Summary Reserve a court for a training or tournament (admin or trainer)
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ReservationRequest true "Reservation"
// @Success 201 {object} helpers.APIResponse "data contains the reservation"
// @Failure 400 {object} helpers.APIResponse "error.code: reservation_purpose_missing, reservation_purpose_conflict or invalid_reservation_time"
// @Failure 409 {object} helpers.APIResponse "error.code: court_unavailable, court_busy or event_already_reserved"
// @Router /reservations [post]
func (c *CourtController) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req ReservationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	res, err := c.Service.CreateReservation(r.Context(), domain.ReservationRequest{
		CourtID:      req.CourtID,
		Start:        req.Start,
		End:          req.End,
		TrainingID:   req.TrainingID,
		TournamentID: req.TournamentID,
	})
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, res)
}

// GetReservation godoc
// @Summary Get a reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param reservationID path string true "Reservation ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the reservation"
// @Failure 404 {object} helpers.APIResponse "error.code: reservation_not_found"
// @Router /reservations/{reservationID} [get]
func (c *CourtController) GetReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "reservationID")
	if !ok {
		return
	}
	res, err := c.Service.GetReservation(r.Context(), id)
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, res)
}

// DeleteReservation godoc
// @Summary Cancel a reservation (admin or trainer)
// @Tags reservations
// @Security BearerAuth
// @Param reservationID path string true "Reservation ID (UUID)"
// @Success 204 "No Content"
// @Failure 404 {object} helpers.APIResponse "error.code: reservation_not_found"
// @Router /reservations/{reservationID} [delete]
func (c *CourtController) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "reservationID")
	if !ok {
		return
	}
	if err := c.Service.DeleteReservation(r.Context(), id); err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
