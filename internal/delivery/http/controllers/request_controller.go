package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"clubscheduler/internal/delivery/http/helpers"
	"clubscheduler/internal/domain"
)

// CreateRequestRequest is the request body for POST /requests.
type CreateRequestRequest struct {
	Command       string `json:"requested_command"`
	Justification string `json:"justification"`
}

// Validate implements Validator.
func (req CreateRequestRequest) Validate() []string {
	return requireField(nil, strings.TrimSpace(req.Command), "requested_command")
}

// CompleteRequestRequest is the request body for POST /requests/{requestID}/complete.
type CompleteRequestRequest struct {
	Approved *bool `json:"approved"`
}

// Validate implements Validator.
func (req CompleteRequestRequest) Validate() []string {
	if req.Approved == nil {
		return []string{"approved is required"}
	}
	return nil
}

type RequestController struct {
	Logger  *slog.Logger
	Service domain.RequestService
}

func NewRequestController(logger *slog.Logger, svc domain.RequestService) *RequestController {
	return &RequestController{Logger: logger, Service: svc}
}

// CreateRequest godoc
// @Summary File an approval request
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateRequestRequest true "Request"
// @Success 201 {object} helpers.APIResponse "data contains the request"
// @Router /requests [post]
func (c *RequestController) CreateRequest(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	var req CreateRequestRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	created, err := c.Service.CreateRequest(r.Context(), p.UserID, req.Command, req.Justification)
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// ListRequests godoc
// @Summary List all requests (admin)
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the requests"
// @Router /requests [get]
func (c *RequestController) ListRequests(w http.ResponseWriter, r *http.Request) {
	reqs, err := c.Service.ListRequests(r.Context())
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reqs)
}

// ListMyRequests godoc
// @Summary List the caller's requests
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the requests"
// @Router /users/me/requests [get]
func (c *RequestController) ListMyRequests(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	reqs, err := c.Service.ListUserRequests(r.Context(), p.UserID)
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reqs)
}

// GetRequest godoc
// @Summary Get a request
// @Description Visible to its requester and to admins.
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param requestID path string true "Request ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the request"
// @Failure 404 {object} helpers.APIResponse "error.code: request_not_found"
// @Router /requests/{requestID} [get]
func (c *RequestController) GetRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "requestID")
	if !ok {
		return
	}
	got, err := c.Service.GetRequest(r.Context(), id)
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	if _, ok := actingFor(w, r, got.RequesterID); !ok {
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, got)
}

// CompleteRequest godoc
// @Summary Approve or reject a request (admin)
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param requestID path string true "Request ID (UUID)"
// @Param body body CompleteRequestRequest true "Decision"
// @Success 200 {object} helpers.APIResponse "data contains the completed request"
// @Failure 403 {object} helpers.APIResponse "error.code: self_approval_not_allowed"
// @Failure 409 {object} helpers.APIResponse "error.code: request_already_completed"
// @Router /requests/{requestID}/complete [post]
func (c *RequestController) CompleteRequest(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := helpers.PathID(w, r, "requestID")
	if !ok {
		return
	}
	var req CompleteRequestRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	done, err := c.Service.CompleteRequest(r.Context(), id, p.UserID, *req.Approved)
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, done)
}
