package postgres

import (
	"context"
	"database/sql"

	"clubscheduler/internal/domain"
)

const requirementColumns = `id, category_id, prerequisite_category_id, description, required_level, created_at`

var requirementViolations = violations{
	"category_requirements_pair_key":                      domain.ErrRequirementExists,
	"category_requirements_category_id_fkey":              domain.ErrCategoryNotFound,
	"category_requirements_prerequisite_category_id_fkey": domain.ErrCategoryNotFound,
}

type requirementRepository struct {
	DB *sql.DB
}

func NewCategoryRequirementRepository(db *sql.DB) domain.CategoryRequirementRepository {
	return &requirementRepository{DB: db}
}

func scanRequirement(s scanner) (*domain.CategoryRequirement, error) {
	req := &domain.CategoryRequirement{}
	var level string
	if err := s.Scan(&req.ID, &req.CategoryID, &req.PrerequisiteID, &req.Description, &level, &req.CreatedAt); err != nil {
		return nil, err
	}
	parsed, err := domain.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	req.RequiredLevel = parsed
	return req, nil
}

func (r *requirementRepository) Create(ctx context.Context, req *domain.CategoryRequirement) error {
	query := `
		INSERT INTO category_requirements (category_id, prerequisite_category_id, description, required_level, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		req.CategoryID, req.PrerequisiteID, req.Description, req.RequiredLevel.String(), req.CreatedAt,
	).Scan(&req.ID)
	return mapWriteError(err, requirementViolations)
}

func (r *requirementRepository) GetByID(ctx context.Context, id string) (*domain.CategoryRequirement, error) {
	query := `SELECT ` + requirementColumns + ` FROM category_requirements WHERE id = $1 AND NOT deleted`
	return queryOne(ctx, r.DB, scanRequirement, query, id)
}

// ListByCategory returns requirements in insertion order; the eligibility
// check reports the first unmet requirement in this order.
func (r *requirementRepository) ListByCategory(ctx context.Context, categoryID string) ([]*domain.CategoryRequirement, error) {
	query := `
		SELECT ` + requirementColumns + `
		FROM category_requirements
		WHERE category_id = $1 AND NOT deleted
		ORDER BY created_at, id
	`
	return queryAll(ctx, r.DB, scanRequirement, query, categoryID)
}

func (r *requirementRepository) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.DB, `UPDATE category_requirements SET deleted = TRUE WHERE id = $1 AND NOT deleted`, id)
}
