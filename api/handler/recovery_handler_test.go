package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"smcbi/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	request.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	recorder := httptest.NewRecorder()
	return e.NewContext(request, recorder), recorder
}

func TestIssueCodeRejectsBadPayloads(t *testing.T) {
	h := NewRecoveryHandler(nil, validator.New())

	cases := map[string]string{
		"not json":      "{",
		"missing email": `{}`,
		"bad email":     `{"email":"not-an-email"}`,
		"unknown field": `{"email":"a@b.com","extra":1}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			c, recorder := newTestContext(t, body)
			require.NoError(t, h.IssueCode(c))
			require.Equal(t, http.StatusBadRequest, recorder.Code)

			var response map[string]any
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
			require.Equal(t, false, response["success"])
			require.NotEmpty(t, response["message"])
		})
	}
}

func TestServiceErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{service.ErrInvalidInput, http.StatusBadRequest},
		{service.ErrUserNotFound, http.StatusNotFound},
		{service.ErrCodeNotFound, http.StatusNotFound},
		{service.ErrRateLimited, http.StatusTooManyRequests},
		{service.ErrCodeExpired, http.StatusGone},
		{service.ErrAttemptsExceeded, http.StatusLocked},
		{service.ErrDependencyUnavailable, http.StatusServiceUnavailable},
		{service.ErrNotConfigured, http.StatusServiceUnavailable},
		{fmt.Errorf("wrapped: %w", service.ErrRateLimited), http.StatusTooManyRequests},
		{fmt.Errorf("unexpected"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		c, recorder := newTestContext(t, "")
		require.NoError(t, writeServiceError(c, tc.err))
		require.Equal(t, tc.status, recorder.Code, tc.err.Error())
	}
}
