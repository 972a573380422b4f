package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubscheduler/internal/delivery/http/helpers"
	"clubscheduler/internal/domain"
)

// fakeUserService implements domain.UserService for handler tests.
type fakeUserService struct {
	user       *domain.User
	token      string
	err        error
	lastReg    *domain.UserRegistration
	lastLogin  string
	lastRole   domain.Role
	listTotal  int
	listParams domain.PaginationParams
}

func (f *fakeUserService) Register(ctx context.Context, reg *domain.UserRegistration) (*domain.User, error) {
	f.lastReg = reg
	return f.user, f.err
}

func (f *fakeUserService) Login(ctx context.Context, identifier, password string) (string, *domain.User, error) {
	f.lastLogin = identifier
	if f.err != nil {
		return "", nil, f.err
	}
	return f.token, f.user, nil
}

func (f *fakeUserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeUserService) List(ctx context.Context, p domain.PaginationParams) ([]*domain.User, int, error) {
	f.listParams = p
	return []*domain.User{f.user}, f.listTotal, f.err
}

func (f *fakeUserService) ChangeRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	f.lastRole = role
	if f.err != nil {
		return nil, f.err
	}
	return &domain.User{ID: id, Role: role}, nil
}

func TestUserController_Register(t *testing.T) {
	valid := map[string]any{
		"first_name": "Max", "last_name": "Power", "birth_date": "2000-01-02",
		"email": "max@example.com", "password": "supersecret", "phone_number": "+5491112345678",
	}
	tests := []struct {
		name       string
		body       any
		svcErr     error
		wantStatus int
		wantCode   string
	}{
		{name: "created", body: valid, wantStatus: http.StatusCreated},
		{name: "bad birth date", body: map[string]any{"first_name": "Max", "email": "a@b.c", "password": "x", "birth_date": "02/01/2000"}, wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
		{name: "unknown field", body: `{"nickname":"max"}`, wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
		{name: "duplicate email", body: valid, svcErr: domain.ErrDuplicateEmail, wantStatus: http.StatusConflict, wantCode: "email_exists"},
		{name: "service validation", body: valid, svcErr: domain.ErrInvalidInput, wantStatus: http.StatusBadRequest, wantCode: "invalid_input"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeUserService{user: &domain.User{ID: memberID, Email: "max@example.com"}, err: tt.svcErr}
			c := NewUserController(testLogger(), svc)
			rec := httptest.NewRecorder()
			c.Register(rec, newRequest(t, http.MethodPost, "/auth/register", tt.body, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, errorCode(t, rec))
				return
			}
			u := decodeData[domain.User](t, rec)
			assert.Equal(t, memberID, u.ID)
			require.NotNil(t, svc.lastReg)
			assert.Equal(t, 2, svc.lastReg.BirthDate.Day())
		})
	}
}

func TestUserController_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeUserService{token: "tok", user: &domain.User{ID: memberID}}
		rec := httptest.NewRecorder()
		NewUserController(testLogger(), svc).Login(rec, newRequest(t, http.MethodPost, "/auth/login",
			LoginRequest{Identifier: "+5491112345678", Password: "supersecret"}, nil))

		require.Equal(t, http.StatusOK, rec.Code)
		got := decodeData[LoginResponse](t, rec)
		assert.Equal(t, "tok", got.Token)
		assert.Equal(t, "+5491112345678", svc.lastLogin)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		svc := &fakeUserService{err: domain.ErrInvalidCredentials}
		rec := httptest.NewRecorder()
		NewUserController(testLogger(), svc).Login(rec, newRequest(t, http.MethodPost, "/auth/login",
			LoginRequest{Identifier: "max@example.com", Password: "nope"}, nil))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "invalid_credentials", errorCode(t, rec))
	})

	t.Run("missing password", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewUserController(testLogger(), &fakeUserService{}).Login(rec, newRequest(t, http.MethodPost, "/auth/login",
			LoginRequest{Identifier: "max@example.com"}, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUserController_GetMe(t *testing.T) {
	tests := []struct {
		name       string
		caller     *domain.Principal
		svcErr     error
		wantStatus int
		wantCode   string
	}{
		{name: "success", caller: member, wantStatus: http.StatusOK},
		{name: "no principal", wantStatus: http.StatusUnauthorized, wantCode: helpers.ErrCodeUnauthorized},
		{name: "not found", caller: member, svcErr: domain.ErrUserNotFound, wantStatus: http.StatusNotFound, wantCode: "user_not_found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeUserService{user: &domain.User{ID: memberID}, err: tt.svcErr}
			rec := httptest.NewRecorder()
			NewUserController(testLogger(), svc).GetMe(rec, newRequest(t, http.MethodGet, "/users/me", nil, tt.caller))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, errorCode(t, rec))
			}
		})
	}
}

func TestUserController_ListUsers(t *testing.T) {
	svc := &fakeUserService{user: &domain.User{ID: memberID}, listTotal: 41}
	rec := httptest.NewRecorder()
	NewUserController(testLogger(), svc).ListUsers(rec, newRequest(t, http.MethodGet, "/users?page=2&page_size=20", nil, admin))

	require.Equal(t, http.StatusOK, rec.Code)
	page := decodeData[helpers.PagedData[domain.User]](t, rec)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.Equal(t, domain.PaginationParams{Page: 2, PageSize: 20}, svc.listParams)
}

func TestUserController_ChangeRole(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		body       any
		wantStatus int
	}{
		{name: "success", userID: memberID, body: ChangeRoleRequest{Role: "trainer"}, wantStatus: http.StatusOK},
		{name: "invalid role", userID: memberID, body: ChangeRoleRequest{Role: "owner"}, wantStatus: http.StatusBadRequest},
		{name: "invalid id", userID: notAnUUID, body: ChangeRoleRequest{Role: "ADMIN"}, wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeUserService{}
			rec := httptest.NewRecorder()
			NewUserController(testLogger(), svc).ChangeRole(rec,
				newRequest(t, http.MethodPut, "/users/"+tt.userID+"/role", tt.body, admin, "userID", tt.userID))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, domain.RoleTrainer, svc.lastRole)
			}
		})
	}
}
