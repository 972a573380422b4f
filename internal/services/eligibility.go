package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clubscheduler/internal/domain"
)

// eligibilityResolver decides whether a user may join a category: the user's
// age must be within the category range and every prerequisite category must
// be held at or above its required level.
type eligibilityResolver struct {
	categoryRepo     domain.CategoryRepository
	requirementRepo  domain.CategoryRequirementRepository
	userCategoryRepo domain.UserCategoryRepository
	users            domain.UserReader
	now              func() time.Time
}

func (e *eligibilityResolver) CanJoin(ctx context.Context, userID, categoryID string) error {
	category, err := e.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrCategoryNotFound
		}
		return fmt.Errorf("get category: %w", err)
	}

	user, err := e.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("get user: %w", err)
	}
	if !category.AllowsAge(user.AgeAt(e.now())) {
		return domain.ErrInvalidUserAge
	}

	requirements, err := e.requirementRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("list requirements: %w", err)
	}
	for _, req := range requirements {
		held, err := e.userCategoryRepo.Get(ctx, userID, req.PrerequisiteID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrUserDoesNotMeetRequirements
			}
			return fmt.Errorf("get user category: %w", err)
		}
		if !held.Level.AtLeast(req.RequiredLevel) {
			return domain.ErrInvalidRequirementLevel
		}
	}
	return nil
}
