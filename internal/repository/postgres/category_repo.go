package postgres

import (
	"context"
	"database/sql"

	"clubscheduler/internal/domain"
)

const categoryColumns = `id, name, min_age, max_age, created_at, updated_at`

var categoryViolations = violations{"categories_name_key": domain.ErrCategoryNameExists}

type categoryRepository struct {
	DB *sql.DB
}

func NewCategoryRepository(db *sql.DB) domain.CategoryRepository {
	return &categoryRepository{DB: db}
}

func scanCategory(s scanner) (*domain.Category, error) {
	c := &domain.Category{}
	if err := s.Scan(&c.ID, &c.Name, &c.MinAge, &c.MaxAge, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *categoryRepository) Create(ctx context.Context, c *domain.Category) error {
	query := `
		INSERT INTO categories (name, min_age, max_age, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, c.Name, c.MinAge, c.MaxAge, c.CreatedAt, c.UpdatedAt).Scan(&c.ID)
	return mapWriteError(err, categoryViolations)
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1 AND NOT deleted`
	return queryOne(ctx, r.DB, scanCategory, query, id)
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE name = $1 AND NOT deleted`
	return queryOne(ctx, r.DB, scanCategory, query, name)
}

func (r *categoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE NOT deleted ORDER BY name`
	return queryAll(ctx, r.DB, scanCategory, query)
}

func (r *categoryRepository) Update(ctx context.Context, c *domain.Category) error {
	query := `
		UPDATE categories SET name = $2, min_age = $3, max_age = $4, updated_at = $5
		WHERE id = $1 AND NOT deleted
	`
	return mapWriteError(execOne(ctx, r.DB, query, c.ID, c.Name, c.MinAge, c.MaxAge, c.UpdatedAt), categoryViolations)
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.DB, `UPDATE categories SET deleted = TRUE WHERE id = $1 AND NOT deleted`, id)
}
