package domain

import (
	"context"
	"time"
)

// Category is a skill and age classification. MinAge and MaxAge are inclusive.
// swagger:model Category
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	MinAge    int       `json:"min_age"`
	MaxAge    int       `json:"max_age"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the name and age range invariants.
func (c *Category) Validate() error {
	if c.Name == "" {
		return ErrMissingName
	}
	if c.MinAge < 0 || c.MinAge >= c.MaxAge {
		return ErrInvalidAgeRange
	}
	return nil
}

// AllowsAge reports whether age lies within [MinAge, MaxAge].
func (c *Category) AllowsAge(age int) bool {
	return age >= c.MinAge && age <= c.MaxAge
}

// CategoryRequirement makes membership of PrerequisiteID at RequiredLevel
// a condition for joining CategoryID.
// swagger:model CategoryRequirement
type CategoryRequirement struct {
	ID             string    `json:"id"`
	CategoryID     string    `json:"category_id"`
	PrerequisiteID string    `json:"prerequisite_category_id"`
	Description    string    `json:"description"`
	RequiredLevel  Level     `json:"required_level"`
	CreatedAt      time.Time `json:"created_at"`
}

// UserCategory is a user's current level within a category.
// swagger:model UserCategory
type UserCategory struct {
	UserID     string    `json:"user_id"`
	CategoryID string    `json:"category_id"`
	Level      Level     `json:"level"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CategoryRepository defines storage operations for categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, id string) (*Category, error)
	GetByName(ctx context.Context, name string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id string) error
}

// CategoryRequirementRepository defines storage operations for requirements.
// ListByCategory returns requirements in insertion order.
type CategoryRequirementRepository interface {
	Create(ctx context.Context, r *CategoryRequirement) error
	GetByID(ctx context.Context, id string) (*CategoryRequirement, error)
	ListByCategory(ctx context.Context, categoryID string) ([]*CategoryRequirement, error)
	Delete(ctx context.Context, id string) error
}

// UserCategoryRepository defines storage operations for user levels.
// Only non-deleted rows are visible.
type UserCategoryRepository interface {
	Create(ctx context.Context, uc *UserCategory) error
	Get(ctx context.Context, userID, categoryID string) (*UserCategory, error)
	ListByUser(ctx context.Context, userID string) ([]*UserCategory, error)
	UpdateLevel(ctx context.Context, userID, categoryID string, level Level) error
	Delete(ctx context.Context, userID, categoryID string) error
}

// EligibilityChecker decides whether a user may be associated with a category.
type EligibilityChecker interface {
	CanJoin(ctx context.Context, userID, categoryID string) error
}

// CategoryService defines category administration and membership operations.
type CategoryService interface {
	EligibilityChecker
	CreateCategory(ctx context.Context, c *Category) error
	GetCategory(ctx context.Context, id string) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)
	UpdateCategory(ctx context.Context, c *Category) (*Category, error)
	DeleteCategory(ctx context.Context, id string) error

	AddRequirement(ctx context.Context, r *CategoryRequirement) error
	ListRequirements(ctx context.Context, categoryID string) ([]*CategoryRequirement, error)
	DeleteRequirement(ctx context.Context, id string) error

	AddUserToCategory(ctx context.Context, userID, categoryID string) (*UserCategory, error)
	ListUserCategories(ctx context.Context, userID string) ([]*UserCategory, error)
	UpdateUserLevel(ctx context.Context, userID, categoryID string, level Level) (*UserCategory, error)
	RemoveUserFromCategory(ctx context.Context, userID, categoryID string) error
}
