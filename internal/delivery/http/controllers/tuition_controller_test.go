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

type fakeTuitionService struct {
	domain.TuitionService
	active     bool
	err        error
	lastAmount int64
}

func (f *fakeTuitionService) PayTuition(ctx context.Context, userID string, amount int64) (*domain.Tuition, error) {
	f.lastAmount = amount
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Tuition{ID: entityID, UserID: userID, Amount: amount}, nil
}

func (f *fakeTuitionService) HasActiveTuition(ctx context.Context, userID string) (bool, error) {
	return f.active, f.err
}

func (f *fakeTuitionService) ListTuitions(ctx context.Context, p domain.PaginationParams) ([]*domain.Tuition, int, error) {
	return []*domain.Tuition{{ID: entityID}}, 1, f.err
}

func TestTuitionController_PayTuition(t *testing.T) {
	tests := []struct {
		name       string
		caller     *domain.Principal
		userID     string
		body       any
		wantStatus int
	}{
		{name: "self", caller: member, userID: memberID, body: PayTuitionRequest{Amount: 1500}, wantStatus: http.StatusCreated},
		{name: "admin for member", caller: admin, userID: memberID, body: PayTuitionRequest{Amount: 1500}, wantStatus: http.StatusCreated},
		{name: "zero amount", caller: member, userID: memberID, body: PayTuitionRequest{}, wantStatus: http.StatusBadRequest},
		{name: "other member", caller: member, userID: otherID, body: PayTuitionRequest{Amount: 1500}, wantStatus: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeTuitionService{}
			rec := httptest.NewRecorder()
			NewTuitionController(testLogger(), svc).PayTuition(rec, newRequest(t, http.MethodPost, "/",
				tt.body, tt.caller, "userID", tt.userID))

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusCreated {
				assert.Equal(t, int64(1500), svc.lastAmount)
				assert.Equal(t, tt.userID, decodeData[domain.Tuition](t, rec).UserID)
			}
		})
	}
}

func TestTuitionController_TuitionStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	NewTuitionController(testLogger(), &fakeTuitionService{active: true}).TuitionStatus(rec, newRequest(t, http.MethodGet, "/",
		nil, member, "userID", memberID))

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeData[TuitionStatusResponse](t, rec)
	assert.True(t, got.Active)
	assert.Equal(t, memberID, got.UserID)
}

func TestTuitionController_ListTuitions(t *testing.T) {
	rec := httptest.NewRecorder()
	NewTuitionController(testLogger(), &fakeTuitionService{}).ListTuitions(rec, newRequest(t, http.MethodGet, "/tuitions", nil, admin))

	require.Equal(t, http.StatusOK, rec.Code)
	page := decodeData[helpers.PagedData[domain.Tuition]](t, rec)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.Pagination.Total)
}
