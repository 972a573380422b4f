package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"clubscheduler/internal/delivery/http/helpers"
	"clubscheduler/internal/domain"
)

// CreateTournamentRequest is the request body for POST /tournaments.
type CreateTournamentRequest struct {
	Name          string    `json:"name"`
	CategoryID    string    `json:"category_id"`
	StartDatetime time.Time `json:"start_datetime"`
	EndDatetime   time.Time `json:"end_datetime"`
	CourtID       *string   `json:"court_id,omitempty"`
}

// Validate implements Validator.
func (req CreateTournamentRequest) Validate() []string {
	var errs []string
	errs = requireField(errs, strings.TrimSpace(req.Name), "name")
	errs = requireID(errs, req.CategoryID, "category_id")
	errs = optionalID(errs, req.CourtID, "court_id")
	return requireTimes(errs, req.StartDatetime, req.EndDatetime)
}

// UpdateTournamentRequest is the request body for PATCH /tournaments/{tournamentID}.
// Omitted fields are left unchanged, except court_id: omitting it releases any reservation.
type UpdateTournamentRequest struct {
	Name          *string    `json:"name,omitempty"`
	CategoryID    *string    `json:"category_id,omitempty"`
	StartDatetime *time.Time `json:"start_datetime,omitempty"`
	EndDatetime   *time.Time `json:"end_datetime,omitempty"`
	CourtID       *string    `json:"court_id,omitempty"`
}

// Validate implements Validator.
func (req UpdateTournamentRequest) Validate() []string {
	var errs []string
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errs = append(errs, "name cannot be empty")
	}
	errs = optionalID(errs, req.CategoryID, "category_id")
	return optionalID(errs, req.CourtID, "court_id")
}

// PositionRequest is the request body for recording or changing a final position.
type PositionRequest struct {
	Position int `json:"position"`
}

// Validate implements Validator.
func (req PositionRequest) Validate() []string {
	if req.Position <= 0 {
		return []string{"position must be greater than zero"}
	}
	return nil
}

type TournamentController struct {
	Logger  *slog.Logger
	Service domain.TournamentService
}

func NewTournamentController(logger *slog.Logger, svc domain.TournamentService) *TournamentController {
	return &TournamentController{Logger: logger, Service: svc}
}

// CreateTournament godoc
// @Summary Schedule a tournament (admin or trainer)
// @Tags tournaments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateTournamentRequest true "Tournament"
// @Success 201 {object} helpers.APIResponse "data contains the tournament"
// @Failure 400 {object} helpers.APIResponse "error.code: invalid_event_dates"
// @Failure 409 {object} helpers.APIResponse "error.code: court_unavailable or court_busy"
// @Router /tournaments [post]
func (c *TournamentController) CreateTournament(w http.ResponseWriter, r *http.Request) {
	var req CreateTournamentRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	t, err := c.Service.CreateTournament(r.Context(), &domain.Tournament{
		Name:          strings.TrimSpace(req.Name),
		CategoryID:    req.CategoryID,
		StartDatetime: req.StartDatetime,
		EndDatetime:   req.EndDatetime,
	}, req.CourtID)
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, t)
}

// ListTournaments godoc
// @Summary List tournaments
// @Tags tournaments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the tournaments"
// @Router /tournaments [get]
func (c *TournamentController) ListTournaments(w http.ResponseWriter, r *http.Request) {
	ts, err := c.Service.ListTournaments(r.Context())
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ts)
}

// ListEligibleTournaments godoc
// @Summary List tournaments in the caller's categories
// @Tags tournaments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the tournaments"
// @Router /tournaments/eligible [get]
func (c *TournamentController) ListEligibleTournaments(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	ts, err := c.Service.ListEligibleTournaments(r.Context(), p.UserID)
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ts)
}

// GetTournament godoc
// @Summary Get a tournament
// @Tags tournaments
// @Produce json
// @Security BearerAuth
// @Param tournamentID path string true "Tournament ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the tournament"
// @Failure 404 {object} helpers.APIResponse "error.code: tournament_not_found"
// @Router /tournaments/{tournamentID} [get]
func (c *TournamentController) GetTournament(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "tournamentID")
	if !ok {
		return
	}
	t, err := c.Service.GetTournament(r.Context(), id)
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, t)
}

// UpdateTournament godoc
// @Summary Update a tournament (admin or trainer)
// @Description A new window or court_id moves the court reservation; the tournament is unchanged if the move fails. Omitting court_id releases the current reservation.
// @Tags tournaments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tournamentID path string true "Tournament ID (UUID)"
// @Param body body UpdateTournamentRequest true "Fields to change"
// @Success 200 {object} helpers.APIResponse "data contains the tournament"
// @Failure 404 {object} helpers.APIResponse "error.code: tournament_not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: court_unavailable or court_busy"
// @Router /tournaments/{tournamentID} [patch]
func (c *TournamentController) UpdateTournament(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "tournamentID")
	if !ok {
		return
	}
	var req UpdateTournamentRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	t, err := c.Service.UpdateTournament(r.Context(), id, domain.TournamentUpdate{
		Name:          req.Name,
		CategoryID:    req.CategoryID,
		StartDatetime: req.StartDatetime,
		EndDatetime:   req.EndDatetime,
	}, req.CourtID)
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, t)
}

// DeleteTournament godoc
// @Summary Delete a tournament and release its court (admin or trainer)
// @Tags tournaments
// @Security BearerAuth
// @Param tournamentID path string true "Tournament ID (UUID)"
// @Success 204 "No Content"
// @Failure 404 {object} helpers.APIResponse "error.code: tournament_not_found"
// @Router /tournaments/{tournamentID} [delete]
func (c *TournamentController) DeleteTournament(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "tournamentID")
	if !ok {
		return
	}
	if err := c.Service.DeleteTournament(r.Context(), id); err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Register godoc
// @Summary Register a user for a tournament
// @Tags tournaments
// @Produce json
// @Security BearerAuth
// @Param tournamentID path string true "Tournament ID (UUID)"
// @Param userID path string true "User ID (UUID)"
// @Success 201 {object} helpers.APIResponse "data contains the registration"
// @Failure 400 {object} helpers.APIResponse "error.code: registration_closed"
// @Failure 409 {object} helpers.APIResponse "error.code: user_already_registered"
// @Router /tournaments/{tournamentID}/registrations/{userID} [post]
func (c *TournamentController) Register(w http.ResponseWriter, r *http.Request) {
	tournamentID, ok := helpers.PathID(w, r, "tournamentID")
	if !ok {
		return
	}
	userID, ok := helpers.PathID(w, r, "userID")
	if !ok {
		return
	}
	if _, ok := actingFor(w, r, userID); !ok {
		return
	}
	reg, err := c.Service.RegisterUser(r.Context(), tournamentID, userID)
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, reg)
}

// ListRegistrations godoc
// @Summary List a tournament's registrations
// @Tags tournaments
// @Produce json
// @Security BearerAuth
// @Param tournamentID path string true "Tournament ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the registrations"
// @Router /tournaments/{tournamentID}/registrations [get]
func (c *TournamentController) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "tournamentID")
	if !ok {
		return
	}
	regs, err := c.Service.ListRegistrations(r.Context(), id)
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, regs)
}

// ListUserRegistrations godoc
// @Summary List a user's tournament registrations
// @Tags tournaments
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the registrations"
// @Router /users/{userID}/tournament-registrations [get]
func (c *TournamentController) ListUserRegistrations(w http.ResponseWriter, r *http.Request) {
	userID, ok := helpers.PathID(w, r, "userID")
	if !ok {
		return
	}
	if _, ok := actingFor(w, r, userID); !ok {
		return
	}
	regs, err := c.Service.ListUserRegistrations(r.Context(), userID)
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, regs)
}

// Unregister godoc
// @Summary Cancel a tournament registration
// @Tags tournaments
// @Security BearerAuth
// @Param tournamentID path string true "Tournament ID (UUID)"
// @Param userID path string true "User ID (UUID)"
// @Success 204 "No Content"
// @Failure 404 {object} helpers.APIResponse "error.code: registration_not_found"
// @Router /tournaments/{tournamentID}/registrations/{userID} [delete]
func (c *TournamentController) Unregister(w http.ResponseWriter, r *http.Request) {
	tournamentID, ok := helpers.PathID(w, r, "tournamentID")
	if !ok {
		return
	}
	userID, ok := helpers.PathID(w, r, "userID")
	if !ok {
		return
	}
	if _, ok := actingFor(w, r, userID); !ok {
		return
	}
	if err := c.Service.DeleteRegistration(r.Context(), tournamentID, userID); err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RecordAttendance godoc
// @Summary Record a registered user's attendance and final position (admin or trainer)
// @Tags tournaments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tournamentID path string true "Tournament ID (UUID)"
// @Param userID path string true "User ID (UUID)"
// @Param body body PositionRequest true "Position"
// @Success 201 {object} helpers.APIResponse "data contains the attendance"
// @Failure 400 {object} helpers.APIResponse "error.code: user_not_registered or invalid_assistance_date"
// @Failure 409 {object} helpers.APIResponse "error.code: position_already_taken or attendance_exists"
// @Router /tournaments/{tournamentID}/attendance/{userID} [post]
func (c *TournamentController) RecordAttendance(w http.ResponseWriter, r *http.Request) {
	tournamentID, ok := helpers.PathID(w, r, "tournamentID")
	if !ok {
		return
	}
	userID, ok := helpers.PathID(w, r, "userID")
	if !ok {
		return
	}
	var req PositionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	a, err := c.Service.RecordAttendance(r.Context(), tournamentID, userID, req.Position)
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, a)
}

// UpdatePosition godoc
// @Summary Change a user's final position (admin or trainer)
// @Tags tournaments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tournamentID path string true "Tournament ID (UUID)"
// @Param userID path string true "User ID (UUID)"
// @Param body body PositionRequest true "Position"
// @Success 200 {object} helpers.APIResponse "data contains the attendance"
// @Failure 400 {object} helpers.APIResponse "error.code: user_did_not_attend"
// @Failure 409 {object} helpers.APIResponse "error.code: position_already_taken"
// @Router /tournaments/{tournamentID}/attendance/{userID} [put]
func (c *TournamentController) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	tournamentID, ok := helpers.PathID(w, r, "tournamentID")
	if !ok {
		return
	}
	userID, ok := helpers.PathID(w, r, "userID")
	if !ok {
		return
	}
	var req PositionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	a, err := c.Service.UpdatePosition(r.Context(), tournamentID, userID, req.Position)
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, a)
}

// ListAttendance godoc
// @Summary List a tournament's results
// @Tags tournaments
// @Produce json
// @Security BearerAuth
// @Param tournamentID path string true "Tournament ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the attendance records"
// @Router /tournaments/{tournamentID}/attendance [get]
func (c *TournamentController) ListAttendance(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "tournamentID")
	if !ok {
		return
	}
	as, err := c.Service.ListAttendance(r.Context(), id)
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, as)
}

// DeleteAttendance godoc
// @Summary Delete a user's attendance record (admin or trainer)
// @Tags tournaments
// @Security BearerAuth
// @Param tournamentID path string true "Tournament ID (UUID)"
// @Param userID path string true "User ID (UUID)"
// @Success 204 "No Content"
// @Failure 400 {object} helpers.APIResponse "error.code: user_did_not_attend"
// @Router /tournaments/{tournamentID}/attendance/{userID} [delete]
func (c *TournamentController) DeleteAttendance(w http.ResponseWriter, r *http.Request) {
	tournamentID, ok := helpers.PathID(w, r, "tournamentID")
	if !ok {
		return
	}
	userID, ok := helpers.PathID(w, r, "userID")
	if !ok {
		return
	}
	if err := c.Service.DeleteAttendance(r.Context(), tournamentID, userID); err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
