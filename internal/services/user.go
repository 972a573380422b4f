package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"clubscheduler/internal/domain"
)

const minPasswordLen = 8

var (
	emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegexp = regexp.MustCompile(`^\+?[0-9]{6,15}$`)
)

// identifierLookup resolves a login identifier to a user. ok is false when
// the identifier does not have the shape this lookup handles.
type identifierLookup func(ctx context.Context, identifier string) (user *domain.User, ok bool, err error)

type userService struct {
	userRepo     domain.UserRepository
	hasher       domain.PasswordHasher
	tokenIssuer  domain.TokenIssuer
	tokenExpiry  time.Duration
	emailService domain.EmailService
	logger       *slog.Logger
	lookups      []identifierLookup
	now          func() time.Time
}

// NewUserService creates a UserService with the given repository and auth ports.
// Login identifiers are tried as an email address first, then as a phone number.
func NewUserService(
	userRepo domain.UserRepository,
	hasher domain.PasswordHasher,
	tokenIssuer domain.TokenIssuer,
	tokenExpiry time.Duration,
	emailService domain.EmailService,
	logger *slog.Logger,
) domain.UserService {
	s := &userService{
		userRepo:     userRepo,
		hasher:       hasher,
		tokenIssuer:  tokenIssuer,
		tokenExpiry:  tokenExpiry,
		emailService: emailService,
		logger:       logger,
		now:          time.Now,
	}
	s.lookups = []identifierLookup{s.byEmail, s.byPhone}
	return s
}

func (s *userService) Register(ctx context.Context, reg *domain.UserRegistration) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(reg.Email))
	if !emailRegexp.MatchString(email) {
		return nil, domain.ErrInvalidInput
	}
	phone := normalizePhone(reg.PhoneNumber)
	if phone != "" && !phoneRegexp.MatchString(phone) {
		return nil, domain.ErrInvalidInput
	}
	if len(reg.Password) < minPasswordLen {
		return nil, domain.ErrInvalidInput
	}
	if strings.TrimSpace(reg.FirstName) == "" || reg.BirthDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	if err := s.ensureUnique(ctx, email, phone, reg.IdentificationNumber, reg.IdentificationType); err != nil {
		return nil, err
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, reg.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user := &domain.User{
		FirstName:            strings.TrimSpace(reg.FirstName),
		LastName:             strings.TrimSpace(reg.LastName),
		BirthDate:            reg.BirthDate,
		Email:                email,
		PhoneNumber:          phone,
		CountryCode:          strings.TrimSpace(reg.CountryCode),
		IdentificationNumber: strings.TrimSpace(reg.IdentificationNumber),
		IdentificationType:   strings.TrimSpace(reg.IdentificationType),
		Role:                 domain.RoleUser,
		PasswordHash:         hash,
		Salt:                 salt,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.emailService != nil {
		data := &domain.WelcomeMessageEmailData{Email: user.Email, FirstName: user.FirstName}
		if err := s.emailService.SendWelcomeMessage(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "send welcome email failed", "user_id", user.ID, "err", err)
		}
	}
	return user, nil
}

func (s *userService) ensureUnique(ctx context.Context, email, phone, idNumber, idType string) error {
	checks := []struct {
		skip   bool
		lookup func() (*domain.User, error)
		dup    error
	}{
		{false, func() (*domain.User, error) { return s.userRepo.GetByEmail(ctx, email) }, domain.ErrDuplicateEmail},
		{phone == "", func() (*domain.User, error) { return s.userRepo.GetByPhone(ctx, phone) }, domain.ErrDuplicatePhone},
		{idNumber == "", func() (*domain.User, error) { return s.userRepo.GetByIdentification(ctx, idNumber, idType) }, domain.ErrDuplicateDocument},
	}
	for _, c := range checks {
		if c.skip {
			continue
		}
		if _, err := c.lookup(); err == nil {
			return c.dup
		} else if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("failed to check user uniqueness: %w", err)
		}
	}
	return nil
}

// Login resolves identifier through the configured lookups in order and
// verifies the password. Unknown users and wrong passwords are reported the
// same way.
func (s *userService) Login(ctx context.Context, identifier, password string) (string, *domain.User, error) {
	identifier = strings.TrimSpace(identifier)
	user, err := s.resolve(ctx, identifier)
	if err != nil {
		return "", nil, err
	}
	if err := s.hasher.Compare(user.PasswordHash, user.Salt, password); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	token, err := s.tokenIssuer.Issue(user.ID, user.Email, user.Role, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, user, nil
}

func (s *userService) resolve(ctx context.Context, identifier string) (*domain.User, error) {
	for _, lookup := range s.lookups {
		user, ok, err := lookup(ctx, identifier)
		if err != nil {
			return nil, err
		}
		if ok {
			return user, nil
		}
	}
	return nil, domain.ErrInvalidCredentials
}

func (s *userService) byEmail(ctx context.Context, identifier string) (*domain.User, bool, error) {
	email := strings.ToLower(strings.TrimSpace(identifier))
	if !emailRegexp.MatchString(email) {
		return nil, false, nil
	}
	return found(s.userRepo.GetByEmail(ctx, email))
}

func (s *userService) byPhone(ctx context.Context, identifier string) (*domain.User, bool, error) {
	phone := normalizePhone(identifier)
	if !phoneRegexp.MatchString(phone) {
		return nil, false, nil
	}
	return found(s.userRepo.GetByPhone(ctx, phone))
}

// found turns a repository miss into "not this lookup" so the next one runs.
func found(u *domain.User, err error) (*domain.User, bool, error) {
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get user: %w", err)
	}
	return u, true, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, p domain.PaginationParams) ([]*domain.User, int, error) {
	users, total, err := s.userRepo.List(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

func (s *userService) ChangeRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	if _, err := domain.ParseRole(string(role)); err != nil {
		return nil, err
	}
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateRole(ctx, id, role); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	s.logger.InfoContext(ctx, "user role changed", "user_id", id, "from", user.Role, "to", role)
	user.Role = role
	user.UpdatedAt = s.now()
	return user, nil
}

func normalizePhone(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(s))
}
