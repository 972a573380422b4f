package postgres

import (
	"context"
	"database/sql"

	"clubscheduler/internal/domain"
)

const userCategoryColumns = `user_id, category_id, level, created_at, updated_at`

var userCategoryViolations = violations{
	"user_categories_pair_key":         domain.ErrUserAlreadyHasCategory,
	"user_categories_user_id_fkey":     domain.ErrUserNotFound,
	"user_categories_category_id_fkey": domain.ErrCategoryNotFound,
}

type userCategoryRepository struct {
	DB *sql.DB
}

func NewUserCategoryRepository(db *sql.DB) domain.UserCategoryRepository {
	return &userCategoryRepository{DB: db}
}

func scanUserCategory(s scanner) (*domain.UserCategory, error) {
	uc := &domain.UserCategory{}
	var level string
	if err := s.Scan(&uc.UserID, &uc.CategoryID, &level, &uc.CreatedAt, &uc.UpdatedAt); err != nil {
		return nil, err
	}
	parsed, err := domain.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	uc.Level = parsed
	return uc, nil
}

func (r *userCategoryRepository) Create(ctx context.Context, uc *domain.UserCategory) error {
	query := `
		INSERT INTO user_categories (user_id, category_id, level, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.DB.ExecContext(ctx, query, uc.UserID, uc.CategoryID, uc.Level.String(), uc.CreatedAt, uc.UpdatedAt)
	return mapWriteError(err, userCategoryViolations)
}

func (r *userCategoryRepository) Get(ctx context.Context, userID, categoryID string) (*domain.UserCategory, error) {
	query := `
		SELECT ` + userCategoryColumns + `
		FROM user_categories
		WHERE user_id = $1 AND category_id = $2 AND NOT deleted
	`
	return queryOne(ctx, r.DB, scanUserCategory, query, userID, categoryID)
}

func (r *userCategoryRepository) ListByUser(ctx context.Context, userID string) ([]*domain.UserCategory, error) {
	query := `
		SELECT ` + userCategoryColumns + `
		FROM user_categories
		WHERE user_id = $1 AND NOT deleted
		ORDER BY created_at
	`
	return queryAll(ctx, r.DB, scanUserCategory, query, userID)
}

func (r *userCategoryRepository) UpdateLevel(ctx context.Context, userID, categoryID string, level domain.Level) error {
	query := `
		UPDATE user_categories SET level = $3, updated_at = NOW()
		WHERE user_id = $1 AND category_id = $2 AND NOT deleted
	`
	return execOne(ctx, r.DB, query, userID, categoryID, level.String())
}

func (r *userCategoryRepository) Delete(ctx context.Context, userID, categoryID string) error {
	query := `UPDATE user_categories SET deleted = TRUE WHERE user_id = $1 AND category_id = $2 AND NOT deleted`
	return execOne(ctx, r.DB, query, userID, categoryID)
}
