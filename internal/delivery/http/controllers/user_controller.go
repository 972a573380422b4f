package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"clubscheduler/internal/delivery/http/helpers"
	"clubscheduler/internal/domain"
)

// RegisterRequest is the request body for POST /auth/register.
type RegisterRequest struct {
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	BirthDate            string `json:"birth_date"` // YYYY-MM-DD
	Email                string `json:"email"`
	Password             string `json:"password"`
	PhoneNumber          string `json:"phone_number"`
	CountryCode          string `json:"country_code"`
	IdentificationNumber string `json:"identification_number"`
	IdentificationType   string `json:"identification_type"`
}

// Validate implements Validator. Format rules are enforced by the user service.
func (req RegisterRequest) Validate() []string {
	var errs []string
	errs = requireField(errs, strings.TrimSpace(req.FirstName), "first_name")
	errs = requireField(errs, strings.TrimSpace(req.Email), "email")
	errs = requireField(errs, req.Password, "password")
	if _, err := time.Parse(time.DateOnly, req.BirthDate); err != nil {
		errs = append(errs, "birth_date must be YYYY-MM-DD")
	}
	return errs
}

// LoginRequest is the request body for POST /auth/login. Identifier is an email or a phone number.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Validate implements Validator.
func (req LoginRequest) Validate() []string {
	var errs []string
	errs = requireField(errs, strings.TrimSpace(req.Identifier), "identifier")
	return requireField(errs, req.Password, "password")
}

// LoginResponse is the data returned by POST /auth/login.
type LoginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// ChangeRoleRequest is the request body for PUT /users/{userID}/role.
type ChangeRoleRequest struct {
	Role string `json:"role"`
}

// Validate implements Validator.
func (req ChangeRoleRequest) Validate() []string {
	if _, err := domain.ParseRole(req.Role); err != nil {
		return []string{"role must be USER, ADMIN or TRAINER"}
	}
	return nil
}

type UserController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

func NewUserController(logger *slog.Logger, svc domain.UserService) *UserController {
	return &UserController{Logger: logger, Service: svc}
}

// Register godoc
// @Summary Register a member account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Account data"
// @Success 201 {object} helpers.APIResponse "data contains the created user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or invalid_input"
// @Failure 409 {object} helpers.APIResponse "error.code: email_exists, phone_exists or document_exists"
// @Router /auth/register [post]
func (c *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	birth, _ := time.Parse(time.DateOnly, req.BirthDate)
	user, err := c.Service.Register(r.Context(), &domain.UserRegistration{
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		BirthDate:            birth,
		Email:                req.Email,
		PhoneNumber:          req.PhoneNumber,
		CountryCode:          req.CountryCode,
		IdentificationNumber: req.IdentificationNumber,
		IdentificationType:   req.IdentificationType,
		Password:             req.Password,
	})
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, user)
}

// Login godoc
// @Summary Log in with email or phone number
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} helpers.APIResponse "data contains token and user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: invalid_credentials"
// @Router /auth/login [post]
func (c *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	token, user, err := c.Service.Login(r.Context(), req.Identifier, req.Password)
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, LoginResponse{Token: token, User: user})
}

// GetMe godoc
// @Summary Get the authenticated user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the user"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /users/me [get]
func (c *UserController) GetMe(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	user, err := c.Service.GetByID(r.Context(), p.UserID)
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// ListUsers godoc
// @Summary List users (admin)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains items and pagination"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /users [get]
func (c *UserController) ListUsers(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	users, total, err := c.Service.List(r.Context(), params)
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.PagedData[*domain.User]{
		Items:      users,
		Pagination: helpers.NewPaginationMeta(params, total),
	})
}

// ChangeRole godoc
// @Summary Change a user's role (admin)
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID (UUID)"
// @Param body body ChangeRoleRequest true "New role"
// @Success 200 {object} helpers.APIResponse "data contains the updated user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: user_not_found"
// @Router /users/{userID}/role [put]
func (c *UserController) ChangeRole(w http.ResponseWriter, r *http.Request) {
	userID, ok := helpers.PathID(w, r, "userID")
	if !ok {
		return
	}
	var req ChangeRoleRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	role, _ := domain.ParseRole(req.Role)
	user, err := c.Service.ChangeRole(r.Context(), userID, role)
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}
