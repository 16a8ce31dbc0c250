package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pribylovaa/celebrations-service/internal/service"
	"github.com/stretchr/testify/require"
)

func detailed(kind error, msg string) error {
	return fmt.Errorf("service/x: %w", &service.DetailError{Kind: kind, Detail: msg})
}

func TestToHTTP_BaseMapping(t *testing.T) {
	tcs := []struct {
		name       string
		in         error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"invalid_argument", detailed(service.ErrInvalidArgument, "limit must be in [1, 100]"), http.StatusBadRequest, "invalid_argument", "limit must be in [1, 100]"},
		{"not_found", detailed(service.ErrNotFound, `celebration "x" not found`), http.StatusNotFound, "not_found", `celebration "x" not found`},
		{"perm_denied", detailed(service.ErrPermissionDenied, "closed"), http.StatusForbidden, "permission_denied", "closed"},
		{"conflict", detailed(service.ErrConflict, "retry later"), http.StatusConflict, "conflict", "retry later"},
		{"canceled", context.Canceled, StatusClientClosedRequest, "canceled", "canceled"},
		{"deadline", fmt.Errorf("op: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded"},
		{"internal", fmt.Errorf("op: %w", service.ErrInternal), http.StatusInternalServerError, "internal", "internal error"},
		{"raw", errors.New("pgx: conn closed"), http.StatusInternalServerError, "internal", "internal error"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			gotStatus, resp := ToHTTP(tc.in)
			require.Equal(t, tc.wantStatus, gotStatus)
			require.Equal(t, tc.wantCode, resp.Error.Code)
			require.Equal(t, tc.wantMsg, resp.Error.Message)
		})
	}
}

func TestToHTTP_NilError_Returns500Internal(t *testing.T) {
	gotStatus, resp := ToHTTP(nil)
	require.Equal(t, http.StatusInternalServerError, gotStatus)
	require.Equal(t, "internal", resp.Error.Code)
	require.Equal(t, "internal error", resp.Error.Message)
}

func TestWriteError_Envelope(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", nil)
	req.Header.Set("X-Request-Id", "rid-1")
	rec := httptest.NewRecorder()

	WriteError(rec, req, InvalidBody("malformed JSON body"))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Equal(t, APIError{Code: "invalid_argument", Message: "malformed JSON body", RequestID: "rid-1"}, got.Error)
}
