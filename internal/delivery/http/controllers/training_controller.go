package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"clubscheduler/internal/delivery/http/helpers"
	"clubscheduler/internal/domain"
)

// CreateTrainingRequest is the request body for POST /trainings.
// CourtID is optional; when set the court is reserved for the training window.
type CreateTrainingRequest struct {
	Name           string    `json:"name"`
	CategoryID     string    `json:"category_id"`
	TrainerID      string    `json:"trainer_id"`
	StartDatetime  time.Time `json:"start_datetime"`
	EndDatetime    time.Time `json:"end_datetime"`
	MinimumPayment int64     `json:"minimum_payment"`
	CourtID        *string   `json:"court_id,omitempty"`
}

// Validate implements Validator.
func (req CreateTrainingRequest) Validate() []string {
	var errs []string
	errs = requireField(errs, strings.TrimSpace(req.Name), "name")
	errs = requireID(errs, req.CategoryID, "category_id")
	errs = requireID(errs, req.TrainerID, "trainer_id")
	errs = optionalID(errs, req.CourtID, "court_id")
	errs = requireTimes(errs, req.StartDatetime, req.EndDatetime)
	if req.MinimumPayment < 0 {
		errs = append(errs, "minimum_payment cannot be negative")
	}
	return errs
}

// UpdateTrainingRequest is the request body for PATCH /trainings/{trainingID}.
// Omitted fields are left unchanged, except court_id: the body names the court
// the training should hold afterwards, so omitting it releases any reservation.
type UpdateTrainingRequest struct {
	Name           *string    `json:"name,omitempty"`
	CategoryID     *string    `json:"category_id,omitempty"`
	TrainerID      *string    `json:"trainer_id,omitempty"`
	StartDatetime  *time.Time `json:"start_datetime,omitempty"`
	EndDatetime    *time.Time `json:"end_datetime,omitempty"`
	MinimumPayment *int64     `json:"minimum_payment,omitempty"`
	CourtID        *string    `json:"court_id,omitempty"`
}

// Validate implements Validator.
func (req UpdateTrainingRequest) Validate() []string {
	var errs []string
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errs = append(errs, "name cannot be empty")
	}
	if req.MinimumPayment != nil && *req.MinimumPayment < 0 {
		errs = append(errs, "minimum_payment cannot be negative")
	}
	errs = optionalID(errs, req.CategoryID, "category_id")
	errs = optionalID(errs, req.TrainerID, "trainer_id")
	return optionalID(errs, req.CourtID, "court_id")
}

// AttendanceRequest is the request body for PUT /trainings/{trainingID}/registrations/{userID}/attendance.
type AttendanceRequest struct {
	Attended bool `json:"attended"`
}

type TrainingController struct {
	Logger  *slog.Logger
	Service domain.TrainingService
}

func NewTrainingController(logger *slog.Logger, svc domain.TrainingService) *TrainingController {
	return &TrainingController{Logger: logger, Service: svc}
}

// CreateTraining godoc
// @Summary Schedule a training (admin or trainer)
// @Description When court_id is set the court is reserved for the same window; if the reservation fails nothing is kept.
// @Tags trainings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateTrainingRequest true "Training"
// @Success 201 {object} helpers.APIResponse "data contains the training"
// @Failure 400 {object} helpers.APIResponse "error.code: invalid_event_dates or invalid_minimum_payment"
// @Failure 403 {object} helpers.APIResponse "error.code: user_is_not_trainer"
// @Failure 409 {object} helpers.APIResponse "error.code: court_unavailable or court_busy"
// @Router /trainings [post]
func (c *TrainingController) CreateTraining(w http.ResponseWriter, r *http.Request) {
	var req CreateTrainingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	training, err := c.Service.CreateTraining(r.Context(), &domain.Training{
		Name:           strings.TrimSpace(req.Name),
		CategoryID:     req.CategoryID,
		TrainerID:      req.TrainerID,
		StartDatetime:  req.StartDatetime,
		EndDatetime:    req.EndDatetime,
		MinimumPayment: req.MinimumPayment,
	}, req.CourtID)
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, training)
}

// ListTrainings godoc
// @Summary List trainings
// @Tags trainings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the trainings"
// @Router /trainings [get]
func (c *TrainingController) ListTrainings(w http.ResponseWriter, r *http.Request) {
	trainings, err := c.Service.ListTrainings(r.Context())
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, trainings)
}

// ListEligibleTrainings godoc
// @Summary List trainings in the caller's categories
// @Tags trainings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the trainings"
// @Router /trainings/eligible [get]
func (c *TrainingController) ListEligibleTrainings(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	trainings, err := c.Service.ListEligibleTrainings(r.Context(), p.UserID)
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, trainings)
}

// ListTrainerTrainings godoc
// @Summary List the trainings led by a trainer
// @Tags trainings
// @Produce json
// @Security BearerAuth
// @Param trainerID path string true "Trainer user ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the trainings"
// @Router /trainers/{trainerID}/trainings [get]
func (c *TrainingController) ListTrainerTrainings(w http.ResponseWriter, r *http.Request) {
	trainerID, ok := helpers.PathID(w, r, "trainerID")
	if !ok {
		return
	}
	trainings, err := c.Service.ListTrainingsByTrainer(r.Context(), trainerID)
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, trainings)
}

// GetTraining godoc
// @Summary Get a training
// @Tags trainings
// @Produce json
// @Security BearerAuth
// @Param trainingID path string true "Training ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the training"
// @Failure 404 {object} helpers.APIResponse "error.code: training_not_found"
// @Router /trainings/{trainingID} [get]
func (c *TrainingController) GetTraining(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "trainingID")
	if !ok {
		return
	}
	training, err := c.Service.GetTraining(r.Context(), id)
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, training)
}

// UpdateTraining godoc
// @Summary Update a training (admin or trainer)
// @Description A new window or court_id moves the court reservation; the training is unchanged if the move fails. Omitting court_id releases the current reservation.
// @Tags trainings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param trainingID path string true "Training ID (UUID)"
// @Param body body UpdateTrainingRequest true "Fields to change"
// @Success 200 {object} helpers.APIResponse "data contains the training"
// @Failure 404 {object} helpers.APIResponse "error.code: training_not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: court_unavailable or court_busy"
// @Router /trainings/{trainingID} [patch]
func (c *TrainingController) UpdateTraining(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "trainingID")
	if !ok {
		return
	}
	var req UpdateTrainingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	training, err := c.Service.UpdateTraining(r.Context(), id, domain.TrainingUpdate{
		Name:           req.Name,
		CategoryID:     req.CategoryID,
		TrainerID:      req.TrainerID,
		StartDatetime:  req.StartDatetime,
		EndDatetime:    req.EndDatetime,
		MinimumPayment: req.MinimumPayment,
	}, req.CourtID)
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, training)
}

// DeleteTraining godoc
// @Summary Delete a training and release its court (admin or trainer)
// @Tags trainings
// @Security BearerAuth
// @Param trainingID path string true "Training ID (UUID)"
// @Success 204 "No Content"
// @Failure 404 {object} helpers.APIResponse "error.code: training_not_found"
// @Router /trainings/{trainingID} [delete]
func (c *TrainingController) DeleteTraining(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "trainingID")
	if !ok {
		return
	}
	if err := c.Service.DeleteTraining(r.Context(), id); err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Register godoc
// @Summary Register a user for a training
// @Description Members register themselves; admins may register anyone. Requires category membership and an active tuition covering the minimum payment.
// @Tags trainings
// @Produce json
// @Security BearerAuth
// @Param trainingID path string true "Training ID (UUID)"
// @Param userID path string true "User ID (UUID)"
// @Success 201 {object} helpers.APIResponse "data contains the registration"
// @Failure 400 {object} helpers.APIResponse "error.code: registration_closed"
// @Failure 403 {object} helpers.APIResponse "error.code: insufficient_tuition or user_does_not_meet_requirements"
// @Failure 409 {object} helpers.APIResponse "error.code: user_already_registered"
// @Router /trainings/{trainingID}/registrations/{userID} [post]
func (c *TrainingController) Register(w http.ResponseWriter, r *http.Request) {
	trainingID, ok := helpers.PathID(w, r, "trainingID")
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
	reg, err := c.Service.RegisterUser(r.Context(), trainingID, userID)
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, reg)
}

// ListRegistrations godoc
// @Summary List a training's registrations
// @Tags trainings
// @Produce json
// @Security BearerAuth
// @Param trainingID path string true "Training ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the registrations"
// @Router /trainings/{trainingID}/registrations [get]
func (c *TrainingController) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "trainingID")
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
// @Summary List a user's training registrations
// @Tags trainings
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the registrations"
// @Router /users/{userID}/training-registrations [get]
func (c *TrainingController) ListUserRegistrations(w http.ResponseWriter, r *http.Request) {
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
// @Summary Cancel a training registration
// @Tags trainings
// @Security BearerAuth
// @Param trainingID path string true "Training ID (UUID)"
// @Param userID path string true "User ID (UUID)"
// @Success 204 "No Content"
// @Failure 404 {object} helpers.APIResponse "error.code: registration_not_found"
// @Router /trainings/{trainingID}/registrations/{userID} [delete]
func (c *TrainingController) Unregister(w http.ResponseWriter, r *http.Request) {
	trainingID, ok := helpers.PathID(w, r, "trainingID")
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
	if err := c.Service.DeleteRegistration(r.Context(), trainingID, userID); err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarkAttendance godoc
// @Summary Mark a registered user as attended or absent (admin or trainer)
// @Description Only allowed while the training is running.
// @Tags trainings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param trainingID path string true "Training ID (UUID)"
// @Param userID path string true "User ID (UUID)"
// @Param body body AttendanceRequest true "Attendance"
// @Success 200 {object} helpers.APIResponse "data contains the registration"
// @Failure 400 {object} helpers.APIResponse "error.code: invalid_assistance_date or user_not_registered"
// @Router /trainings/{trainingID}/registrations/{userID}/attendance [put]
func (c *TrainingController) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	trainingID, ok := helpers.PathID(w, r, "trainingID")
	if !ok {
		return
	}
	userID, ok := helpers.PathID(w, r, "userID")
	if !ok {
		return
	}
	var req AttendanceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	reg, err := c.Service.MarkAttendance(r.Context(), trainingID, userID, req.Attended)
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}
