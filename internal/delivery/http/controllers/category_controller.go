package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"clubscheduler/internal/delivery/http/helpers"
	"clubscheduler/internal/domain"
)

// CategoryRequest is the request body for creating or replacing a category.
type CategoryRequest struct {
	Name   string `json:"name"`
	MinAge int    `json:"min_age"`
	MaxAge int    `json:"max_age"`
}

// Validate implements Validator.
func (req CategoryRequest) Validate() []string {
	var errs []string
	errs = requireField(errs, strings.TrimSpace(req.Name), "name")
	if req.MinAge < 0 || req.MinAge >= req.MaxAge {
		errs = append(errs, "min_age must be non-negative and lower than max_age")
	}
	return errs
}

// RequirementRequest is the request body for POST /categories/{categoryID}/requirements.
type RequirementRequest struct {
	PrerequisiteID string       `json:"prerequisite_category_id"`
	RequiredLevel  domain.Level `json:"required_level"`
	Description    string       `json:"description"`
}

// Validate implements Validator.
func (req RequirementRequest) Validate() []string {
	var errs []string
	errs = requireID(errs, req.PrerequisiteID, "prerequisite_category_id")
	if !req.RequiredLevel.Valid() {
		errs = append(errs, "required_level is required")
	}
	return errs
}

// MembershipRequest is the request body for POST /users/{userID}/categories.
type MembershipRequest struct {
	CategoryID string `json:"category_id"`
}

// Validate implements Validator.
func (req MembershipRequest) Validate() []string {
	return requireID(nil, req.CategoryID, "category_id")
}

// LevelRequest is the request body for PUT /users/{userID}/categories/{categoryID}.
type LevelRequest struct {
	Level domain.Level `json:"level"`
}

// Validate implements Validator.
func (req LevelRequest) Validate() []string {
	if !req.Level.Valid() {
		return []string{"level is required"}
	}
	return nil
}

type CategoryController struct {
	Logger  *slog.Logger
	Service domain.CategoryService
}

func NewCategoryController(logger *slog.Logger, svc domain.CategoryService) *CategoryController {
	return &CategoryController{Logger: logger, Service: svc}
}

// CreateCategory godoc
// @Summary Create a category (admin)
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CategoryRequest true "Category"
// @Success 201 {object} helpers.APIResponse "data contains the category"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or invalid_age_range"
// @Failure 409 {object} helpers.APIResponse "error.code: category_name_exists"
// @Router /categories [post]
func (c *CategoryController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	cat := &domain.Category{Name: strings.TrimSpace(req.Name), MinAge: req.MinAge, MaxAge: req.MaxAge}
	if err := c.Service.CreateCategory(r.Context(), cat); err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, cat)
}

// ListCategories godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the categories"
// @Router /categories [get]
func (c *CategoryController) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := c.Service.ListCategories(r.Context())
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, cats)
}

// GetCategory godoc
// @Summary Get a category
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param categoryID path string true "Category ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the category"
// @Failure 404 {object} helpers.APIResponse "error.code: category_not_found"
// @Router /categories/{categoryID} [get]
func (c *CategoryController) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "categoryID")
	if !ok {
		return
	}
	cat, err := c.Service.GetCategory(r.Context(), id)
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, cat)
}

// UpdateCategory godoc
// @Summary Replace a category (admin)
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param categoryID path string true "Category ID (UUID)"
// @Param body body CategoryRequest true "Category"
// @Success 200 {object} helpers.APIResponse "data contains the category"
// @Failure 404 {object} helpers.APIResponse "error.code: category_not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: category_name_exists"
// @Router /categories/{categoryID} [put]
func (c *CategoryController) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "categoryID")
	if !ok {
		return
	}
	var req CategoryRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	cat, err := c.Service.UpdateCategory(r.Context(), &domain.Category{
		ID: id, Name: strings.TrimSpace(req.Name), MinAge: req.MinAge, MaxAge: req.MaxAge,
	})
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, cat)
}

// DeleteCategory godoc
// @Summary Delete a category (admin)
// @Tags categories
// @Security BearerAuth
// @Param categoryID path string true "Category ID (UUID)"
// @Success 204 "No Content"
// @Failure 404 {object} helpers.APIResponse "error.code: category_not_found"
// @Router /categories/{categoryID} [delete]
func (c *CategoryController) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "categoryID")
	if !ok {
		return
	}
	if err := c.Service.DeleteCategory(r.Context(), id); err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddRequirement godoc
// @Summary Add a prerequisite to a category (admin)
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param categoryID path string true "Category ID (UUID)"
// @Param body body RequirementRequest true "Requirement"
// @Success 201 {object} helpers.APIResponse "data contains the requirement"
// @Failure 400 {object} helpers.APIResponse "error.code: self_requirement or invalid_level"
// @Failure 409 {object} helpers.APIResponse "error.code: requirement_exists"
// @Router /categories/{categoryID}/requirements [post]
func (c *CategoryController) AddRequirement(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "categoryID")
	if !ok {
		return
	}
	var req RequirementRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	reqm := &domain.CategoryRequirement{
		CategoryID:     id,
		PrerequisiteID: req.PrerequisiteID,
		RequiredLevel:  req.RequiredLevel,
		Description:    req.Description,
	}
	if err := c.Service.AddRequirement(r.Context(), reqm); err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, reqm)
}

// ListRequirements godoc
// @Summary List a category's prerequisites
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param categoryID path string true "Category ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the requirements in insertion order"
// @Router /categories/{categoryID}/requirements [get]
func (c *CategoryController) ListRequirements(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "categoryID")
	if !ok {
		return
	}
	reqs, err := c.Service.ListRequirements(r.Context(), id)
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reqs)
}

// DeleteRequirement godoc
// @Summary Delete a category prerequisite (admin)
// @Tags categories
// @Security BearerAuth
// @Param requirementID path string true "Requirement ID (UUID)"
// @Success 204 "No Content"
// @Failure 404 {object} helpers.APIResponse "error.code: requirement_not_found"
// @Router /requirements/{requirementID} [delete]
func (c *CategoryController) DeleteRequirement(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "requirementID")
	if !ok {
		return
	}
	if err := c.Service.DeleteRequirement(r.Context(), id); err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// JoinCategory godoc
// @Summary Add a user to a category
// @Description Members may join on their own behalf; admins may add anyone. Age and prerequisites are checked.
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID (UUID)"
// @Param body body MembershipRequest true "Category"
// @Success 201 {object} helpers.APIResponse "data contains the membership at BEGINNER level"
// @Failure 403 {object} helpers.APIResponse "error.code: invalid_user_age, user_does_not_meet_requirements or invalid_requirement_level"
// @Failure 409 {object} helpers.APIResponse "error.code: user_already_has_category"
// @Router /users/{userID}/categories [post]
func (c *CategoryController) JoinCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := helpers.PathID(w, r, "userID")
	if !ok {
		return
	}
	if _, ok := actingFor(w, r, userID); !ok {
		return
	}
	var req MembershipRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	uc, err := c.Service.AddUserToCategory(r.Context(), userID, req.CategoryID)
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, uc)
}

// ListUserCategories godoc
// @Summary List a user's categories and levels
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the memberships"
// @Router /users/{userID}/categories [get]
func (c *CategoryController) ListUserCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := helpers.PathID(w, r, "userID")
	if !ok {
		return
	}
	ucs, err := c.Service.ListUserCategories(r.Context(), userID)
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ucs)
}

// UpdateLevel godoc
// @Summary Set a user's level in a category (admin or trainer)
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID (UUID)"
// @Param categoryID path string true "Category ID (UUID)"
// @Param body body LevelRequest true "Level"
// @Success 200 {object} helpers.APIResponse "data contains the membership"
// @Failure 404 {object} helpers.APIResponse "error.code: user_category_not_found"
// @Router /users/{userID}/categories/{categoryID} [put]
func (c *CategoryController) UpdateLevel(w http.ResponseWriter, r *http.Request) {
	userID, ok := helpers.PathID(w, r, "userID")
	if !ok {
		return
	}
	categoryID, ok := helpers.PathID(w, r, "categoryID")
	if !ok {
		return
	}
	var req LevelRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	uc, err := c.Service.UpdateUserLevel(r.Context(), userID, categoryID, req.Level)
	if err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, uc)
}

// LeaveCategory godoc
// @Summary Remove a user from a category
// @Tags categories
// @Security BearerAuth
// @Param userID path string true "User ID (UUID)"
// @Param categoryID path string true "Category ID (UUID)"
// @Success 204 "No Content"
// @Failure 404 {object} helpers.APIResponse "error.code: user_category_not_found"
// @Router /users/{userID}/categories/{categoryID} [delete]
func (c *CategoryController) LeaveCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := helpers.PathID(w, r, "userID")
	if !ok {
		return
	}
	categoryID, ok := helpers.PathID(w, r, "categoryID")
	if !ok {
		return
	}
	if _, ok := actingFor(w, r, userID); !ok {
		return
	}
	if err := c.Service.RemoveUserFromCategory(r.Context(), userID, categoryID); err != nil {
		helpers.WriteError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
