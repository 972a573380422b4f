package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubscheduler/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) APIError {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.Error)
	assert.Nil(t, resp.Data)
	return *resp.Error
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", domain.ErrCourtNotFound, http.StatusNotFound, "court_not_found"},
		{"validation", domain.ErrInvalidEventDates, http.StatusBadRequest, "invalid_event_dates"},
		{"conflict wrapped", fmt.Errorf("create reservation: %w", domain.ErrCourtUnavailable), http.StatusConflict, "court_unavailable"},
		{"permission", domain.ErrInvalidUserAge, http.StatusForbidden, "invalid_user_age"},
		{"upstream takes collaborator kind", domain.Upstream("court", domain.ErrCourtUnavailable), http.StatusConflict, "court_unavailable"},
		{"upstream eligibility", domain.Upstream("category", domain.ErrInvalidRequirementLevel), http.StatusForbidden, "invalid_requirement_level"},
		{"untyped", errors.New("connection reset"), http.StatusInternalServerError, ErrCodeInternalError},
		{"upstream untyped", domain.Upstream("court", errors.New("timeout")), http.StatusInternalServerError, ErrCodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, httptest.NewRequest(http.MethodGet, "/x", nil), testLogger, tt.err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			got := decodeError(t, rec)
			assert.Equal(t, tt.wantCode, got.Code)
			if tt.wantStatus == http.StatusInternalServerError {
				assert.NotContains(t, got.Message, "connection reset")
			}
		})
	}
}

type createThing struct {
	Name string `json:"name"`
}

func (c createThing) Validate() []string {
	if c.Name == "" {
		return []string{"name is required"}
	}
	return nil
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantOK     bool
		wantSubstr string
	}{
		{"valid", `{"name":"x"}`, true, ""},
		{"invalid json", `{`, false, "unexpected EOF"},
		{"unknown field", `{"name":"x","id":"y"}`, false, "unknown field"},
		{"validation", `{}`, false, "name is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dest createThing
			ok := DecodeAndValidate(rec, req, &dest)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Contains(t, decodeError(t, rec).Message, tt.wantSubstr)
			}
		})
	}
}

func TestPathID(t *testing.T) {
	mux := http.NewServeMux()
	var got string
	mux.HandleFunc("GET /courts/{courtID}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := PathID(w, r, "courtID")
		if ok {
			got = id
			w.WriteHeader(http.StatusNoContent)
		}
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/courts/2f1c3d4e-5a6b-4c7d-8e9f-0a1b2c3d4e5f", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "2f1c3d4e-5a6b-4c7d-8e9f-0a1b2c3d4e5f", got)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/courts/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query string
		want  domain.PaginationParams
	}{
		{"", domain.PaginationParams{Page: 1, PageSize: domain.DefaultPageSize}},
		{"page=3&page_size=10", domain.PaginationParams{Page: 3, PageSize: 10}},
		{"page=0&page_size=-1", domain.PaginationParams{Page: 1, PageSize: domain.DefaultPageSize}},
		{"page_size=1000", domain.PaginationParams{Page: 1, PageSize: domain.MaxPageSize}},
		{"page=two&page_size=x", domain.PaginationParams{Page: 1, PageSize: domain.DefaultPageSize}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			assert.Equal(t, tt.want, ParsePagination(r))
		})
	}
}

func TestNewPaginationMeta(t *testing.T) {
	meta := NewPaginationMeta(domain.PaginationParams{Page: 1, PageSize: 2}, 5)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)

	last := NewPaginationMeta(domain.PaginationParams{Page: 3, PageSize: 2}, 5)
	assert.False(t, last.HasNext)

	empty := NewPaginationMeta(domain.PaginationParams{Page: 1, PageSize: 20}, 0)
	assert.Zero(t, empty.TotalPages)
	assert.False(t, empty.HasNext)
}
