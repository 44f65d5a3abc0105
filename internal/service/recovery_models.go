package service

import (
	"time"

	"github.com/google/uuid"
)

type IssueResult struct {
	Email     string
	Code      string
	ExpiresAt time.Time
	EmailID   string
}

type VerifyResult struct {
	Email          string
	VerificationID uuid.UUID
	VerifiedAt     time.Time
}

type ResetResult struct {
	UserID  string
	Email   string
	ResetAt time.Time
	Method  ResolveSource
}

type UsageReport struct {
	TotalIssued    int64
	IssuedLast24h  int64
	IssuedLast30d  int64
	QuotaLimit     int64
	QuotaRemaining int64
	// Percent of the monthly quota consumed, formatted to two decimals.
	QuotaUsagePercent string
}
