package controllers

import (
	"log/slog"
	"net/http"

	"clubscheduler/internal/delivery/http/helpers"
	"clubscheduler/internal/domain"
)

// PayTuitionRequest is the request body for POST /users/{userID}/tuitions.
// Amount is in minor currency units.
type PayTuitionRequest struct {
	Amount int64 `json:"amount"`
}

// Validate implements Validator.
func (req PayTuitionRequest) Validate() []string {
	if req.Amount <= 0 {
		return []string{"amount must be greater than zero"}
	}
	return nil
}

// TuitionStatusResponse is the data returned by GET /users/{userID}/tuition-status.
type TuitionStatusResponse struct {
	UserID string `json:"user_id"`
	Active bool   `json:"active"`
}

type TuitionController struct {
	Logger  *slog.Logger
	Service domain.TuitionService
}

func NewTuitionController(logger *slog.Logger, svc domain.TuitionService) *TuitionController {
	return &TuitionController{Logger: logger, Service: svc}
}

// PayTuition godoc
// @Summary Record a tuition payment
// @Tags tuitions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID (UUID)"
// @Param body body PayTuitionRequest true "Payment"
// @Success 201 {object} helpers.APIResponse "data contains the tuition"
// @Failure 400 {object} helpers.APIResponse "error.code: invalid_amount"
// @Router /users/{userID}/tuitions [post]
func (c *TuitionController) PayTuition(w http.ResponseWriter, r *http.Request) {
	userID, ok := helpers.PathID(w, r, "userID")
	if !ok {
		return
	}
	if _, ok := actingFor(w, r, userID); !ok {
		return
	}
	var req PayTuitionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	t, err := c.Service.PayTuition(r.Context(), userID, req.Amount)
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, t)
}

// ListUserTuitions godoc
// @Summary List a user's tuition payments
// @Tags tuitions
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the payments"
// @Router /users/{userID}/tuitions [get]
func (c *TuitionController) ListUserTuitions(w http.ResponseWriter, r *http.Request) {
	userID, ok := helpers.PathID(w, r, "userID")
	if !ok {
		return
	}
	if _, ok := actingFor(w, r, userID); !ok {
		return
	}
	ts, err := c.Service.ListUserTuitions(r.Context(), userID)
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ts)
}

// TuitionStatus godoc
// @Summary Report whether a user has an active tuition
// @Tags tuitions
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the status"
// @Router /users/{userID}/tuition-status [get]
func (c *TuitionController) TuitionStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := helpers.PathID(w, r, "userID")
	if !ok {
		return
	}
	if _, ok := actingFor(w, r, userID); !ok {
		return
	}
	active, err := c.Service.HasActiveTuition(r.Context(), userID)
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, TuitionStatusResponse{UserID: userID, Active: active})
}

// ListTuitions godoc
// @Summary List all tuition payments (admin)
// @Tags tuitions
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains items and pagination"
// @Router /tuitions [get]
func (c *TuitionController) ListTuitions(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	ts, total, err := c.Service.ListTuitions(r.Context(), params)
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.PagedData[*domain.Tuition]{
		Items:      ts,
		Pagination: helpers.NewPaginationMeta(params, total),
	})
}
