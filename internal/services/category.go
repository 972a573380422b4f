package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"clubscheduler/internal/domain"
)

type categoryService struct {
	eligibilityResolver
	logger *slog.Logger
}

// NewCategoryService creates a CategoryService with the given repositories.
// users is the user collaborator consulted for birth dates.
func NewCategoryService(
	categoryRepo domain.CategoryRepository,
	requirementRepo domain.CategoryRequirementRepository,
	userCategoryRepo domain.UserCategoryRepository,
	users domain.UserReader,
	logger *slog.Logger,
) domain.CategoryService {
	return &categoryService{
		eligibilityResolver: eligibilityResolver{
			categoryRepo:     categoryRepo,
			requirementRepo:  requirementRepo,
			userCategoryRepo: userCategoryRepo,
			users:            users,
			now:              time.Now,
		},
		logger: logger,
	}
}

func (s *categoryService) CreateCategory(ctx context.Context, c *domain.Category) error {
	c.Name = strings.TrimSpace(c.Name)
	if err := c.Validate(); err != nil {
		return err
	}
	if err := s.ensureNameFree(ctx, c.Name, ""); err != nil {
		return err
	}
	now := s.now()
	c.CreatedAt = now
	c.UpdatedAt = now
	if err := s.categoryRepo.Create(ctx, c); err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (s *categoryService) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	c, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (s *categoryService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	list, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return list, nil
}

// UpdateCategory replaces name and age range, re-validating both invariants.
func (s *categoryService) UpdateCategory(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	existing, err := s.GetCategory(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	updated := *existing
	updated.Name = strings.TrimSpace(c.Name)
	updated.MinAge = c.MinAge
	updated.MaxAge = c.MaxAge
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	if !strings.EqualFold(updated.Name, existing.Name) {
		if err := s.ensureNameFree(ctx, updated.Name, existing.ID); err != nil {
			return nil, err
		}
	}
	updated.UpdatedAt = s.now()
	if err := s.categoryRepo.Update(ctx, &updated); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	return &updated, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrCategoryNotFound
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (s *categoryService) ensureNameFree(ctx context.Context, name, selfID string) error {
	other, err := s.categoryRepo.GetByName(ctx, name)
	if err == nil {
		if other.ID != selfID {
			return domain.ErrCategoryNameExists
		}
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("get category by name: %w", err)
	}
	return nil
}

func (s *categoryService) AddRequirement(ctx context.Context, r *domain.CategoryRequirement) error {
	if !r.RequiredLevel.Valid() {
		return domain.ErrInvalidLevel
	}
	if r.CategoryID == r.PrerequisiteID {
		return domain.ErrSelfRequirement
	}
	if _, err := s.GetCategory(ctx, r.CategoryID); err != nil {
		return err
	}
	if _, err := s.GetCategory(ctx, r.PrerequisiteID); err != nil {
		return err
	}
	r.CreatedAt = s.now()
	if err := s.requirementRepo.Create(ctx, r); err != nil {
		return fmt.Errorf("create requirement: %w", err)
	}
	return nil
}

func (s *categoryService) ListRequirements(ctx context.Context, categoryID string) ([]*domain.CategoryRequirement, error) {
	if _, err := s.GetCategory(ctx, categoryID); err != nil {
		return nil, err
	}
	list, err := s.requirementRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list requirements: %w", err)
	}
	return list, nil
}

func (s *categoryService) DeleteRequirement(ctx context.Context, id string) error {
	if err := s.requirementRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrRequirementNotFound
		}
		return fmt.Errorf("delete requirement: %w", err)
	}
	return nil
}

// AddUserToCategory enrolls the user at BEGINNER level once the eligibility
// rules pass.
func (s *categoryService) AddUserToCategory(ctx context.Context, userID, categoryID string) (*domain.UserCategory, error) {
	if _, err := s.userCategoryRepo.Get(ctx, userID, categoryID); err == nil {
		return nil, domain.ErrUserAlreadyHasCategory
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get user category: %w", err)
	}

	if err := s.CanJoin(ctx, userID, categoryID); err != nil {
		return nil, err
	}

	now := s.now()
	uc := &domain.UserCategory{
		UserID:     userID,
		CategoryID: categoryID,
		Level:      domain.LevelBeginner,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.userCategoryRepo.Create(ctx, uc); err != nil {
		return nil, fmt.Errorf("create user category: %w", err)
	}
	s.logger.InfoContext(ctx, "user joined category", "user_id", userID, "category_id", categoryID)
	return uc, nil
}

func (s *categoryService) ListUserCategories(ctx context.Context, userID string) ([]*domain.UserCategory, error) {
	list, err := s.userCategoryRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user categories: %w", err)
	}
	return list, nil
}

func (s *categoryService) UpdateUserLevel(ctx context.Context, userID, categoryID string, level domain.Level) (*domain.UserCategory, error) {
	if !level.Valid() {
		return nil, domain.ErrInvalidLevel
	}
	uc, err := s.userCategoryRepo.Get(ctx, userID, categoryID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserCategoryNotFound
		}
		return nil, fmt.Errorf("get user category: %w", err)
	}
	if err := s.userCategoryRepo.UpdateLevel(ctx, userID, categoryID, level); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserCategoryNotFound
		}
		return nil, fmt.Errorf("update user level: %w", err)
	}
	uc.Level = level
	uc.UpdatedAt = s.now()
	return uc, nil
}

func (s *categoryService) RemoveUserFromCategory(ctx context.Context, userID, categoryID string) error {
	if err := s.userCategoryRepo.Delete(ctx, userID, categoryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrUserCategoryNotFound
		}
		return fmt.Errorf("delete user category: %w", err)
	}
	return nil
}
