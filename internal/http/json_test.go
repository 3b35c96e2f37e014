package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/lifewood/adminhub/internal/errors"
)

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", apperrors.Validation("bad input"), http.StatusBadRequest, "validation"},
		{"authentication", apperrors.Authentication("nope"), http.StatusUnauthorized, "authentication"},
		{"authorization", apperrors.Authorization("denied"), http.StatusForbidden, "authorization"},
		{"not found", apperrors.NotFound("missing"), http.StatusNotFound, "not_found"},
		{"conflict", apperrors.Conflict("already decided"), http.StatusConflict, "conflict"},
		{"notification", apperrors.Notification(errors.New("relay"), "send failed"), http.StatusBadGateway, "notification"},
		{"wrapped persistence is opaque", apperrors.Persistence(errors.New("pq: boom"), "insert"), http.StatusInternalServerError, "internal"},
		{"plain error is opaque", errors.New("pq: connection refused"), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteServiceError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantCode)
		})
	}
}

func TestWriteServiceError_NeverLeaksInternals(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteServiceError(rec, errors.New("password=hunter2 dial tcp"))

	assert.NotContains(t, rec.Body.String(), "hunter2")
}

func TestWriteError_IncludesValidationField(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteServiceError(rec, apperrors.ValidationField("email", "Please fill in all required fields."))

	assert.Contains(t, rec.Body.String(), `"field":"email"`)
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nope": 1}`))
	rec := httptest.NewRecorder()

	var dst struct {
		Name string `json:"name"`
	}
	ok := DecodeJSON(rec, req, &dst)

	require.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_json")
}
