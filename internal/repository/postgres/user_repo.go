package postgres

import (
	"context"
	"database/sql"

	"clubscheduler/internal/domain"
)

const userColumns = `id, first_name, last_name, birth_date, email, email_verified, phone_number, country_code,
	identification_number, identification_type, role, password_hash, salt, created_at, updated_at`

var userViolations = violations{
	"users_email_key":          domain.ErrDuplicateEmail,
	"users_phone_key":          domain.ErrDuplicatePhone,
	"users_identification_key": domain.ErrDuplicateDocument,
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

func scanUser(s scanner) (*domain.User, error) {
	u := &domain.User{}
	var role string
	err := s.Scan(&u.ID, &u.FirstName, &u.LastName, &u.BirthDate, &u.Email, &u.EmailVerified, &u.PhoneNumber,
		&u.CountryCode, &u.IdentificationNumber, &u.IdentificationType, &role, &u.PasswordHash, &u.Salt,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if u.Role, err = domain.ParseRole(role); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (first_name, last_name, birth_date, email, email_verified, phone_number, country_code,
			identification_number, identification_type, role, password_hash, salt, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		u.FirstName, u.LastName, u.BirthDate, u.Email, u.EmailVerified, u.PhoneNumber, u.CountryCode,
		u.IdentificationNumber, u.IdentificationType, string(u.Role), u.PasswordHash, u.Salt, u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	return mapWriteError(err, userViolations)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return queryOne(ctx, r.DB, scanUser, `SELECT `+userColumns+` FROM users WHERE id = $1 AND NOT deleted`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return queryOne(ctx, r.DB, scanUser, `SELECT `+userColumns+` FROM users WHERE email = $1 AND NOT deleted`, email)
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return queryOne(ctx, r.DB, scanUser, `SELECT `+userColumns+` FROM users WHERE phone_number = $1 AND NOT deleted`, phone)
}

func (r *userRepository) GetByIdentification(ctx context.Context, number, idType string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE identification_number = $1 AND identification_type = $2 AND NOT deleted
	`
	return queryOne(ctx, r.DB, scanUser, query, number, idType)
}

func (r *userRepository) List(ctx context.Context, p domain.PaginationParams) ([]*domain.User, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE NOT deleted`).Scan(&total); err != nil {
		return nil, 0, err
	}
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE NOT deleted
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2
	`
	users, err := queryAll(ctx, r.DB, scanUser, query, p.PageSize, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	return execOne(ctx, r.DB, `UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1 AND NOT deleted`, id, string(role))
}
