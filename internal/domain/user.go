package domain

import (
	"context"
	"strings"
	"time"
)

// Role is the single application role held by a user.
type Role string

const (
	RoleUser    Role = "USER"
	RoleAdmin   Role = "ADMIN"
	RoleTrainer Role = "TRAINER"
)

// ParseRole parses a role name, case-insensitively.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleUser, RoleAdmin, RoleTrainer:
		return r, nil
	}
	return "", ErrInvalidRole
}

// User represents a club member.
// swagger:model User
type User struct {
	ID                   string    `json:"id"`
	FirstName            string    `json:"first_name"`
	LastName             string    `json:"last_name"`
	BirthDate            time.Time `json:"birth_date"`
	Email                string    `json:"email"`
	EmailVerified        bool      `json:"email_verified"`
	PhoneNumber          string    `json:"phone_number"`
	CountryCode          string    `json:"country_code"`
	IdentificationNumber string    `json:"identification_number"`
	IdentificationType   string    `json:"identification_type"`
	Role                 Role      `json:"role"`
	PasswordHash         string    `json:"-"`
	Salt                 string    `json:"-"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// AgeAt returns the user's age in whole years on the date of now.
func (u *User) AgeAt(now time.Time) int {
	by, bm, bd := u.BirthDate.Date()
	ny, nm, nd := now.Date()
	age := ny - by
	if nm < bm || (nm == bm && nd < bd) {
		age--
	}
	return age
}

// UserRegistration is the input for creating a member account.
type UserRegistration struct {
	FirstName            string
	LastName             string
	BirthDate            time.Time
	Email                string
	PhoneNumber          string
	CountryCode          string
	IdentificationNumber string
	IdentificationType   string
	Password             string
}

// Principal is the authenticated caller extracted from a token.
type Principal struct {
	UserID string
	Role   Role
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, role Role, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated principal.
type TokenVerifier interface {
	Verify(token string) (*Principal, error)
}

// UserReader is the read side of user storage used by other subsystems.
type UserReader interface {
	GetByID(ctx context.Context, id string) (*User, error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	UserReader
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByPhone(ctx context.Context, phone string) (*User, error)
	GetByIdentification(ctx context.Context, number, idType string) (*User, error)
	List(ctx context.Context, p PaginationParams) ([]*User, int, error)
	UpdateRole(ctx context.Context, id string, role Role) error
}

// UserService defines member registration, login and administration.
type UserService interface {
	Register(ctx context.Context, reg *UserRegistration) (*User, error)
	Login(ctx context.Context, identifier, password string) (token string, user *User, err error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, p PaginationParams) ([]*User, int, error)
	ChangeRole(ctx context.Context, id string, role Role) (*User, error)
}
