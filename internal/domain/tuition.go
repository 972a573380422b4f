package domain

import (
	"context"
	"time"
)

// TuitionValidity is how long a tuition payment keeps a member active.
const TuitionValidity = 30 * 24 * time.Hour

// Tuition is a membership payment. Amount is expressed in minor currency units.
// swagger:model Tuition
type Tuition struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Amount      int64     `json:"amount"`
	PaymentDate time.Time `json:"payment_date"`
}

// ActiveAt reports whether the payment still covers now.
func (t *Tuition) ActiveAt(now time.Time) bool {
	return !now.Before(t.PaymentDate) && now.Sub(t.PaymentDate) < TuitionValidity
}

// TuitionRepository defines storage operations for tuition payments.
type TuitionRepository interface {
	Create(ctx context.Context, t *Tuition) error
	ListByUser(ctx context.Context, userID string) ([]*Tuition, error)
	ListPaidSince(ctx context.Context, userID string, since time.Time) ([]*Tuition, error)
	List(ctx context.Context, p PaginationParams) ([]*Tuition, int, error)
}

// TuitionChecker answers whether a user currently holds a tuition of at least amount.
type TuitionChecker interface {
	HasActiveTuitionAtLeast(ctx context.Context, userID string, amount int64) (bool, error)
}

// TuitionService defines tuition payment operations.
type TuitionService interface {
	TuitionChecker
	PayTuition(ctx context.Context, userID string, amount int64) (*Tuition, error)
	HasActiveTuition(ctx context.Context, userID string) (bool, error)
	ListUserTuitions(ctx context.Context, userID string) ([]*Tuition, error)
	ListTuitions(ctx context.Context, p PaginationParams) ([]*Tuition, int, error)
}
