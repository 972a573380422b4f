package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"clubscheduler/internal/delivery/http/helpers"
	"clubscheduler/internal/delivery/http/middleware"
	"clubscheduler/internal/domain"
)

const (
	memberID  = "11111111-1111-1111-1111-111111111111"
	otherID   = "22222222-2222-2222-2222-222222222222"
	adminID   = "33333333-3333-3333-3333-333333333333"
	courtID   = "44444444-4444-4444-4444-444444444444"
	eventID   = "55555555-5555-5555-5555-555555555555"
	entityID  = "66666666-6666-6666-6666-666666666666"
	notAnUUID = "not-a-uuid"
)

var (
	member = &domain.Principal{UserID: memberID, Role: domain.RoleUser}
	admin  = &domain.Principal{UserID: adminID, Role: domain.RoleAdmin}
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newRequest builds a request with an optional JSON body, path values and caller.
func newRequest(t *testing.T, method, target string, body any, p *domain.Principal, pathValues ...string) *http.Request {
	t.Helper()
	var r io.Reader = http.NoBody
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			b, err := json.Marshal(body)
			require.NoError(t, err)
			raw = string(b)
		}
		r = bytes.NewBufferString(raw)
	}
	req := httptest.NewRequest(method, target, r)
	for i := 0; i+1 < len(pathValues); i += 2 {
		req.SetPathValue(pathValues[i], pathValues[i+1])
	}
	if p != nil {
		req = req.WithContext(middleware.WithPrincipal(req.Context(), p))
	}
	return req
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var resp struct {
		Data  T                 `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Nil(t, resp.Error)
	return resp.Data
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp helpers.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}
