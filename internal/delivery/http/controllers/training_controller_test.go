package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubscheduler/internal/domain"
)

// fakeTrainingService implements the parts of domain.TrainingService exercised by these tests.
type fakeTrainingService struct {
	domain.TrainingService
	err          error
	lastCourtID  *string
	lastUpdate   domain.TrainingUpdate
	lastUserID   string
	lastAttended bool
}

func (f *fakeTrainingService) CreateTraining(ctx context.Context, t *domain.Training, courtID *string) (*domain.Training, error) {
	f.lastCourtID = courtID
	if f.err != nil {
		return nil, f.err
	}
	t.ID = eventID
	return t, nil
}

func (f *fakeTrainingService) UpdateTraining(ctx context.Context, id string, upd domain.TrainingUpdate, courtID *string) (*domain.Training, error) {
	f.lastUpdate, f.lastCourtID = upd, courtID
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Training{ID: id}, nil
}

func (f *fakeTrainingService) ListEligibleTrainings(ctx context.Context, userID string) ([]*domain.Training, error) {
	f.lastUserID = userID
	return []*domain.Training{{ID: eventID}}, f.err
}

func (f *fakeTrainingService) RegisterUser(ctx context.Context, trainingID, userID string) (*domain.TrainingRegistration, error) {
	f.lastUserID = userID
	if f.err != nil {
		return nil, f.err
	}
	return &domain.TrainingRegistration{TrainingID: trainingID, UserID: userID}, nil
}

func (f *fakeTrainingService) MarkAttendance(ctx context.Context, trainingID, userID string, attended bool) (*domain.TrainingRegistration, error) {
	f.lastAttended = attended
	if f.err != nil {
		return nil, f.err
	}
	return &domain.TrainingRegistration{TrainingID: trainingID, UserID: userID, Attended: attended}, nil
}

func TestTrainingController_CreateTraining(t *testing.T) {
	start := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	court := courtID
	valid := CreateTrainingRequest{
		Name: "Juniors", CategoryID: entityID, TrainerID: otherID,
		StartDatetime: start, EndDatetime: start.Add(90 * time.Minute), MinimumPayment: 1500, CourtID: &court,
	}
	tests := []struct {
		name       string
		body       any
		svcErr     error
		wantStatus int
		wantCode   string
	}{
		{name: "created with court", body: valid, wantStatus: http.StatusCreated},
		{name: "negative payment", body: func() CreateTrainingRequest { r := valid; r.MinimumPayment = -1; return r }(), wantStatus: http.StatusBadRequest},
		{name: "missing start", body: func() CreateTrainingRequest { r := valid; r.StartDatetime = time.Time{}; return r }(), wantStatus: http.StatusBadRequest},
		{name: "malformed category", body: func() CreateTrainingRequest { r := valid; r.CategoryID = notAnUUID; return r }(), wantStatus: http.StatusBadRequest, wantCode: "bad_request"},
		{name: "malformed court", body: func() CreateTrainingRequest { r := valid; bad := notAnUUID; r.CourtID = &bad; return r }(), wantStatus: http.StatusBadRequest, wantCode: "bad_request"},
		{name: "court taken", body: valid, svcErr: domain.ErrCourtUnavailable, wantStatus: http.StatusConflict, wantCode: "court_unavailable"},
		{name: "court busy", body: valid, svcErr: domain.ErrCourtBusy, wantStatus: http.StatusConflict, wantCode: "court_busy"},
		{name: "bad dates", body: valid, svcErr: domain.ErrInvalidEventDates, wantStatus: http.StatusBadRequest, wantCode: "invalid_event_dates"},
		{name: "not a trainer", body: valid, svcErr: domain.ErrUserIsNotTrainer, wantStatus: http.StatusForbidden, wantCode: "user_is_not_trainer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeTrainingService{err: tt.svcErr}
			rec := httptest.NewRecorder()
			NewTrainingController(testLogger(), svc).CreateTraining(rec, newRequest(t, http.MethodPost, "/trainings", tt.body, admin))

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, errorCode(t, rec))
			}
			if tt.wantStatus == http.StatusCreated {
				got := decodeData[domain.Training](t, rec)
				assert.Equal(t, eventID, got.ID)
				assert.Equal(t, int64(1500), got.MinimumPayment)
				require.NotNil(t, svc.lastCourtID)
				assert.Equal(t, courtID, *svc.lastCourtID)
			}
		})
	}
}

func TestTrainingController_UpdateTraining(t *testing.T) {
	svc := &fakeTrainingService{}
	rec := httptest.NewRecorder()
	NewTrainingController(testLogger(), svc).UpdateTraining(rec, newRequest(t, http.MethodPatch, "/trainings/"+eventID,
		`{"end_datetime":"2026-03-01T20:00:00Z"}`, admin, "trainingID", eventID))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.lastUpdate.EndDatetime)
	assert.Nil(t, svc.lastUpdate.StartDatetime)
	assert.Nil(t, svc.lastUpdate.Name)
	assert.Nil(t, svc.lastCourtID)
}

func TestTrainingController_UpdateTraining_MalformedIDs(t *testing.T) {
	for _, body := range []string{`{"court_id":"` + notAnUUID + `"}`, `{"trainer_id":"` + notAnUUID + `"}`} {
		svc := &fakeTrainingService{}
		rec := httptest.NewRecorder()
		NewTrainingController(testLogger(), svc).UpdateTraining(rec, newRequest(t, http.MethodPatch, "/trainings/"+eventID,
			body, admin, "trainingID", eventID))

		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Nil(t, svc.lastUpdate.Name)
		assert.Nil(t, svc.lastCourtID)
	}
}

func TestTrainingController_ListEligible(t *testing.T) {
	svc := &fakeTrainingService{}
	rec := httptest.NewRecorder()
	NewTrainingController(testLogger(), svc).ListEligibleTrainings(rec, newRequest(t, http.MethodGet, "/trainings/eligible", nil, member))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeData[[]domain.Training](t, rec), 1)
	assert.Equal(t, memberID, svc.lastUserID)
}

func TestTrainingController_Register(t *testing.T) {
	tests := []struct {
		name       string
		caller     *domain.Principal
		userID     string
		svcErr     error
		wantStatus int
		wantCode   string
	}{
		{name: "self", caller: member, userID: memberID, wantStatus: http.StatusCreated},
		{name: "admin for member", caller: admin, userID: memberID, wantStatus: http.StatusCreated},
		{name: "member for someone else", caller: member, userID: otherID, wantStatus: http.StatusForbidden, wantCode: "forbidden"},
		{name: "no tuition", caller: member, userID: memberID, svcErr: domain.ErrInsufficientTuition, wantStatus: http.StatusForbidden, wantCode: "insufficient_tuition"},
		{name: "already started", caller: member, userID: memberID, svcErr: domain.ErrRegistrationClosed, wantStatus: http.StatusBadRequest, wantCode: "registration_closed"},
		{name: "twice", caller: member, userID: memberID, svcErr: domain.ErrUserAlreadyRegistered, wantStatus: http.StatusConflict, wantCode: "user_already_registered"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeTrainingService{err: tt.svcErr}
			rec := httptest.NewRecorder()
			NewTrainingController(testLogger(), svc).Register(rec, newRequest(t, http.MethodPost,
				"/trainings/"+eventID+"/registrations/"+tt.userID, nil, tt.caller, "trainingID", eventID, "userID", tt.userID))

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, errorCode(t, rec))
				return
			}
			assert.Equal(t, tt.userID, svc.lastUserID)
		})
	}
}

func TestTrainingController_MarkAttendance(t *testing.T) {
	t.Run("attended", func(t *testing.T) {
		svc := &fakeTrainingService{}
		rec := httptest.NewRecorder()
		NewTrainingController(testLogger(), svc).MarkAttendance(rec, newRequest(t, http.MethodPut, "/",
			AttendanceRequest{Attended: true}, admin, "trainingID", eventID, "userID", memberID))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, decodeData[domain.TrainingRegistration](t, rec).Attended)
		assert.True(t, svc.lastAttended)
	})

	t.Run("outside the window", func(t *testing.T) {
		svc := &fakeTrainingService{err: domain.ErrInvalidAssistanceDate}
		rec := httptest.NewRecorder()
		NewTrainingController(testLogger(), svc).MarkAttendance(rec, newRequest(t, http.MethodPut, "/",
			AttendanceRequest{Attended: true}, admin, "trainingID", eventID, "userID", memberID))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid_assistance_date", errorCode(t, rec))
	})
}
