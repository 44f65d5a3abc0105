package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"smcbi/internal/dto"
	"smcbi/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type RecoveryHandler struct {
	Service  *service.RecoveryService
	Validate *validator.Validate
}

func NewRecoveryHandler(svc *service.RecoveryService, validate *validator.Validate) *RecoveryHandler {
	return &RecoveryHandler{
		Service:  svc,
		Validate: validate,
	}
}

func (h *RecoveryHandler) IssueCode(c echo.Context) error {
	var req dto.IssueCodeRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	result, err := h.Service.IssueCode(c.Request().Context(), req.Email)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.IssueCodeResponseFromResult(result))
}

func (h *RecoveryHandler) VerifyCode(c echo.Context) error {
	var req dto.VerifyCodeRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	result, err := h.Service.VerifyCode(c.Request().Context(), req.Email, req.Code)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.VerifyCodeResponseFromResult(result))
}

func (h *RecoveryHandler) ResetPassword(c echo.Context) error {
	var req dto.ResetPasswordRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	result, err := h.Service.ResetPassword(c.Request().Context(), req.Email, req.NewPassword)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ResetPasswordResponseFromResult(result))
}

func (h *RecoveryHandler) Usage(c echo.Context) error {
	report, err := h.Service.Usage(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UsageResponseFromReport(report))
}

func (h *RecoveryHandler) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}

func decodeJSON(c echo.Context, target any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeError(c echo.Context, status int, err error) error {
	return c.JSON(status, dto.ErrorResponse{Success: false, Message: err.Error()})
}

func writeServiceError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrCodeNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrRateLimited):
		status = http.StatusTooManyRequests
	case errors.Is(err, service.ErrCodeExpired):
		status = http.StatusGone
	case errors.Is(err, service.ErrAttemptsExceeded):
		status = http.StatusLocked
	case errors.Is(err, service.ErrNotConfigured), errors.Is(err, service.ErrDependencyUnavailable):
		status = http.StatusServiceUnavailable
	}
	return writeError(c, status, err)
}
