package dto

import (
	"time"

	"smcbi/internal/service"
)

type IssueCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type IssueCodeResponse struct {
	Success          bool      `json:"success"`
	Email            string    `json:"email"`
	VerificationCode string    `json:"verificationCode"`
	ExpiresAt        time.Time `json:"expiresAt"`
	EmailID          string    `json:"emailId,omitempty"`
}

type VerifyCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

type VerifyCodeResponse struct {
	Success        bool      `json:"success"`
	Email          string    `json:"email"`
	VerificationID string    `json:"verificationId"`
	VerifiedAt     time.Time `json:"verifiedAt"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type ResetUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type ResetPasswordResponse struct {
	Success bool      `json:"success"`
	User    ResetUser `json:"user"`
	ResetAt time.Time `json:"resetAt"`
	Method  string    `json:"method,omitempty"`
}

type UsageResponse struct {
	Success           bool   `json:"success"`
	TotalEmailsSent   int64  `json:"totalEmailsSent"`
	EmailsLastDay     int64  `json:"emailsLastDay"`
	EmailsLast30Days  int64  `json:"emailsLast30Days"`
	QuotaLimit        int64  `json:"quotaLimit"`
	QuotaRemaining    int64  `json:"quotaRemaining"`
	QuotaUsagePercent string `json:"quotaUsagePercent"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func IssueCodeResponseFromResult(result *service.IssueResult) IssueCodeResponse {
	return IssueCodeResponse{
		Success:          true,
		Email:            result.Email,
		VerificationCode: result.Code,
		ExpiresAt:        result.ExpiresAt,
		EmailID:          result.EmailID,
	}
}

func VerifyCodeResponseFromResult(result *service.VerifyResult) VerifyCodeResponse {
	return VerifyCodeResponse{
		Success:        true,
		Email:          result.Email,
		VerificationID: result.VerificationID.String(),
		VerifiedAt:     result.VerifiedAt,
	}
}

func ResetPasswordResponseFromResult(result *service.ResetResult) ResetPasswordResponse {
	return ResetPasswordResponse{
		Success: true,
		User:    ResetUser{ID: result.UserID, Email: result.Email},
		ResetAt: result.ResetAt,
		Method:  string(result.Method),
	}
}

func UsageResponseFromReport(report *service.UsageReport) UsageResponse {
	return UsageResponse{
		Success:           true,
		TotalEmailsSent:   report.TotalIssued,
		EmailsLastDay:     report.IssuedLast24h,
		EmailsLast30Days:  report.IssuedLast30d,
		QuotaLimit:        report.QuotaLimit,
		QuotaRemaining:    report.QuotaRemaining,
		QuotaUsagePercent: report.QuotaUsagePercent,
	}
}
