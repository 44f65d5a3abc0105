package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"smcbi/internal/entity"
	"smcbi/internal/repository"
	"smcbi/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// RecoveryService owns the password-reset code lifecycle: issuing a code,
// verifying a submitted code, and consuming a verified code to change the
// credential held by the external identity provider.
type RecoveryService struct {
	codes        repository.VerificationCodeRepository
	recoveryLogs repository.RecoveryLogRepository

	resolver    UserResolver
	emailSender EmailSender
	identity    IdentityProvider
	generator   CodeGenerator
	clock       Clock
	logger      logrus.FieldLogger
	config      RecoveryConfig
}

func NewRecoveryService(
	codes repository.VerificationCodeRepository,
	recoveryLogs repository.RecoveryLogRepository,
	resolver UserResolver,
	emailSender EmailSender,
	identity IdentityProvider,
	generator CodeGenerator,
	clock Clock,
	logger logrus.FieldLogger,
	config RecoveryConfig,
) *RecoveryService {
	return &RecoveryService{
		codes:        codes,
		recoveryLogs: recoveryLogs,
		resolver:     resolver,
		emailSender:  emailSender,
		identity:     identity,
		generator:    generator,
		clock:        clock,
		logger:       logger,
		config:       config,
	}
}

func (s *RecoveryService) IssueCode(ctx context.Context, email string) (*IssueResult, error) {
	submitted := strings.TrimSpace(email)
	if !utils.ValidEmail(submitted) {
		return nil, fmt.Errorf("%w: malformed email address", ErrInvalidInput)
	}

	now := s.now()
	windowStart := now.Add(-s.issueWindow())

	count, err := s.codes.CountIssuedSince(ctx, submitted, entity.PurposePasswordReset, windowStart)
	if err != nil {
		// Fail open: a count failure must not block issuance. The insert
		// below fails anyway if the store is truly down.
		s.log().WithError(err).WithField("email", submitted).Warn("rate-limit count failed, issuing anyway")
	} else if count >= int64(s.maxIssuePerWindow()) {
		_ = s.logRecovery(ctx, submitted, nil, entity.IssueRateLimited, map[string]any{"issued_in_window": count})
		return nil, ErrRateLimited
	}

	user, err := s.resolver.Resolve(ctx, submitted)
	if err != nil {
		return nil, err
	}

	code, err := s.generator.Generate()
	if err != nil {
		return nil, err
	}

	record := &entity.VerificationCode{
		Email:         submitted,
		Code:          code,
		Purpose:       entity.PurposePasswordReset,
		Status:        entity.CodeStatusPending,
		MaxAttempts:   s.maxAttempts(),
		UserProfileID: user.ProfileID,
		ExpiresAt:     now.Add(s.codeTTL()),
		CreatedAt:     now,
	}
	err = s.codes.Locked(ctx, submitted, func(codes repository.VerificationCodeRepository) error {
		// The count is re-run under the per-email lock so two concurrent
		// requests cannot both slip under the limit.
		recount, countErr := codes.CountIssuedSince(ctx, submitted, entity.PurposePasswordReset, windowStart)
		if countErr == nil && recount >= int64(s.maxIssuePerWindow()) {
			return ErrRateLimited
		}
		return codes.Create(ctx, record)
	})
	if err != nil {
		if errors.Is(err, ErrRateLimited) {
			_ = s.logRecovery(ctx, submitted, nil, entity.IssueRateLimited, nil)
			return nil, ErrRateLimited
		}
		s.log().WithError(err).WithField("email", submitted).Error("persisting verification code failed")
		return nil, fmt.Errorf("%w: could not persist verification code", ErrDependencyUnavailable)
	}

	emailID, err := s.emailSender.SendRecoveryCode(ctx, user.Email, user.DisplayName(), code)
	if err != nil {
		// The pending row stays behind and keeps its rate-limit slot;
		// there is no rollback once the code is persisted.
		s.log().WithError(err).WithField("email", submitted).Warn("recovery email dispatch failed, pending code orphaned")
		return nil, fmt.Errorf("%w: email dispatch failed", ErrDependencyUnavailable)
	}

	_ = s.logRecovery(ctx, submitted, user.ProfileID, entity.CodeIssued, map[string]any{
		"verification_id": record.ID.String(),
		"email_id":        emailID,
	})
	return &IssueResult{
		Email:     submitted,
		Code:      code,
		ExpiresAt: record.ExpiresAt,
		EmailID:   emailID,
	}, nil
}

func (s *RecoveryService) VerifyCode(ctx context.Context, email string, code string) (*VerifyResult, error) {
	submitted := strings.TrimSpace(email)
	if submitted == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if !s.plausibleCode(normalized) {
		return nil, fmt.Errorf("%w: malformed verification code", ErrInvalidInput)
	}

	now := s.now()
	for tries := 0; tries < 2; tries++ {
		record, err := s.codes.FindLatestPending(ctx, submitted, normalized, entity.PurposePasswordReset)
		if err != nil {
			s.log().WithError(err).WithField("email", submitted).Error("verification code lookup failed")
			return nil, fmt.Errorf("%w: code lookup failed", ErrDependencyUnavailable)
		}
		if record == nil {
			return nil, ErrCodeNotFound
		}
		if now.After(record.ExpiresAt) {
			return nil, ErrCodeExpired
		}
		if record.Attempts >= record.MaxAttempts {
			return nil, ErrAttemptsExceeded
		}

		// Attempts counts verification calls, so it advances on the
		// successful transition as well.
		ok, err := s.codes.MarkVerified(ctx, record.ID, record.Attempts, now)
		if err != nil {
			s.log().WithError(err).WithField("email", submitted).Error("verification code update failed")
			return nil, fmt.Errorf("%w: code update failed", ErrDependencyUnavailable)
		}
		if !ok {
			// Lost a concurrent transition; re-read to produce the
			// correct rejection.
			continue
		}

		_ = s.logRecovery(ctx, submitted, record.UserProfileID, entity.CodeVerified, map[string]any{
			"verification_id": record.ID.String(),
			"attempts":        record.Attempts + 1,
		})
		return &VerifyResult{
			Email:          submitted,
			VerificationID: record.ID,
			VerifiedAt:     now,
		}, nil
	}
	return nil, ErrCodeNotFound
}

func (s *RecoveryService) ResetPassword(ctx context.Context, email string, newPassword string) (*ResetResult, error) {
	submitted := strings.TrimSpace(email)
	if submitted == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if len(newPassword) < s.minPasswordLen() {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, s.minPasswordLen())
	}

	record, err := s.codes.FindLatestVerified(ctx, submitted, entity.PurposePasswordReset)
	if err != nil {
		s.log().WithError(err).WithField("email", submitted).Error("verified code lookup failed")
		return nil, fmt.Errorf("%w: code lookup failed", ErrDependencyUnavailable)
	}
	if record == nil || record.VerifiedAt == nil {
		return nil, fmt.Errorf("%w: no verified code for this address", ErrCodeNotFound)
	}

	// Freshness is judged at update time, not from an earlier read.
	now := s.now()
	if now.Sub(*record.VerifiedAt) > s.resetWindow() {
		return nil, fmt.Errorf("%w: verified code is no longer fresh", ErrCodeExpired)
	}

	user, err := s.resolver.Resolve(ctx, submitted)
	if err != nil {
		return nil, err
	}

	if err := s.identity.UpdatePassword(ctx, user.IdentityID, newPassword); err != nil {
		s.log().WithError(err).WithField("email", submitted).Error("identity credential update failed")
		return nil, fmt.Errorf("%w: credential update failed", ErrDependencyUnavailable)
	}

	// Best effort: the credential already changed, so a failure here is
	// an accepted inconsistency window, not a reset failure.
	if ok, markErr := s.codes.MarkUsed(ctx, record.ID, now); markErr != nil || !ok {
		s.log().WithError(markErr).
			WithField("email", submitted).
			WithField("verification_id", record.ID.String()).
			Warn("failed to mark verification code used after reset")
	}

	_ = s.logRecovery(ctx, submitted, user.ProfileID, entity.PasswordReset, map[string]any{
		"verification_id": record.ID.String(),
		"method":          string(user.Source),
	})
	return &ResetResult{
		UserID:  user.IdentityID,
		Email:   user.Email,
		ResetAt: now,
		Method:  user.Source,
	}, nil
}

func (s *RecoveryService) Usage(ctx context.Context) (*UsageReport, error) {
	now := s.now()

	total, err := s.codes.CountByPurpose(ctx, entity.PurposePasswordReset)
	if err != nil {
		return nil, fmt.Errorf("%w: usage counts unavailable", ErrDependencyUnavailable)
	}
	lastDay, err := s.codes.CountByPurposeSince(ctx, entity.PurposePasswordReset, now.Add(-24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("%w: usage counts unavailable", ErrDependencyUnavailable)
	}
	lastMonth, err := s.codes.CountByPurposeSince(ctx, entity.PurposePasswordReset, now.Add(-30*24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("%w: usage counts unavailable", ErrDependencyUnavailable)
	}

	quota := s.monthlyQuota()
	return &UsageReport{
		TotalIssued:   total,
		IssuedLast24h: lastDay,
		IssuedLast30d: lastMonth,
		QuotaLimit:    quota,
		// Unclamped: goes negative once usage exceeds the quota.
		QuotaRemaining:    quota - lastMonth,
		QuotaUsagePercent: fmt.Sprintf("%.2f", float64(lastMonth)/float64(quota)*100),
	}, nil
}

func (s *RecoveryService) plausibleCode(code string) bool {
	prefix := strings.ToUpper(s.codePrefix())
	minLength := len(prefix) + 1 + s.codeDigits()
	return strings.HasPrefix(code, prefix) && len(code) >= minLength
}

func (s *RecoveryService) logRecovery(
	ctx context.Context,
	email string,
	profileID *uuid.UUID,
	action entity.RecoveryAction,
	metadata map[string]any,
) error {
	if s.recoveryLogs == nil {
		return nil
	}
	var payload datatypes.JSON
	if metadata != nil {
		bytes, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		payload = datatypes.JSON(bytes)
	}

	log := &entity.RecoveryLog{
		Email:         email,
		UserProfileID: profileID,
		Action:        action,
		Metadata:      payload,
	}
	return s.recoveryLogs.Log(ctx, log)
}

func (s *RecoveryService) log() logrus.FieldLogger {
	if s.logger == nil {
		return logrus.StandardLogger()
	}
	return s.logger
}

func (s *RecoveryService) now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock.Now()
}

func (s *RecoveryService) codeTTL() time.Duration {
	if s.config.CodeTTL > 0 {
		return s.config.CodeTTL
	}
	return 15 * time.Minute
}

func (s *RecoveryService) resetWindow() time.Duration {
	if s.config.ResetWindow > 0 {
		return s.config.ResetWindow
	}
	return 30 * time.Minute
}

func (s *RecoveryService) issueWindow() time.Duration {
	if s.config.IssueWindow > 0 {
		return s.config.IssueWindow
	}
	return 24 * time.Hour
}

func (s *RecoveryService) maxAttempts() int {
	if s.config.MaxAttempts > 0 {
		return s.config.MaxAttempts
	}
	return 3
}

func (s *RecoveryService) maxIssuePerWindow() int {
	if s.config.MaxIssuePerWindow > 0 {
		return s.config.MaxIssuePerWindow
	}
	return 3
}

func (s *RecoveryService) minPasswordLen() int {
	if s.config.MinPasswordLen > 0 {
		return s.config.MinPasswordLen
	}
	return 6
}

func (s *RecoveryService) monthlyQuota() int64 {
	if s.config.MonthlyQuota > 0 {
		return s.config.MonthlyQuota
	}
	return 3000
}

func (s *RecoveryService) codePrefix() string {
	if s.config.CodePrefix != "" {
		return s.config.CodePrefix
	}
	return "SMCBI"
}

func (s *RecoveryService) codeDigits() int {
	if s.config.CodeDigits > 0 {
		return s.config.CodeDigits
	}
	return 6
}
