package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"smcbi/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VerificationCodeRepository interface {
	Create(ctx context.Context, code *entity.VerificationCode) error
	CountIssuedSince(ctx context.Context, email string, purpose entity.CodePurpose, since time.Time) (int64, error)
	FindLatestPending(ctx context.Context, email string, code string, purpose entity.CodePurpose) (*entity.VerificationCode, error)
	FindLatestVerified(ctx context.Context, email string, purpose entity.CodePurpose) (*entity.VerificationCode, error)
	// MarkVerified transitions pending -> verified with a conditional
	// update guarded by the attempts value read by the caller. Returns
	// false when a concurrent caller won the transition first.
	MarkVerified(ctx context.Context, id uuid.UUID, expectedAttempts int, verifiedAt time.Time) (bool, error)
	// MarkUsed transitions verified -> used; false when the row is no
	// longer in the verified state.
	MarkUsed(ctx context.Context, id uuid.UUID, usedAt time.Time) (bool, error)
	CountByPurpose(ctx context.Context, purpose entity.CodePurpose) (int64, error)
	CountByPurposeSince(ctx context.Context, purpose entity.CodePurpose, since time.Time) (int64, error)
	// Locked runs fn inside a transaction serialized per email address,
	// closing the count-then-insert window during issuance.
	Locked(ctx context.Context, email string, fn func(repo VerificationCodeRepository) error) error
}

type verificationCodeRepository struct {
	db *gorm.DB
}

func NewVerificationCodeRepository(db *gorm.DB) VerificationCodeRepository {
	return &verificationCodeRepository{db: db}
}

func (r *verificationCodeRepository) Create(ctx context.Context, code *entity.VerificationCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *verificationCodeRepository) CountIssuedSince(
	ctx context.Context,
	email string,
	purpose entity.CodePurpose,
	since time.Time,
) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.VerificationCode{}).
		Where("LOWER(email) = LOWER(?) AND purpose = ? AND created_at >= ?", email, purpose, since).
		Count(&count).Error
	return count, err
}

func (r *verificationCodeRepository) FindLatestPending(
	ctx context.Context,
	email string,
	code string,
	purpose entity.CodePurpose,
) (*entity.VerificationCode, error) {

	var record entity.VerificationCode
	err := r.db.WithContext(ctx).
		Where(`
			LOWER(email) = LOWER(?) AND
			code = ? AND
			purpose = ? AND
			status = ?
		`, email, code, purpose, entity.CodeStatusPending).
		Order("created_at DESC").
		First(&record).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &record, err
}

func (r *verificationCodeRepository) FindLatestVerified(
	ctx context.Context,
	email string,
	purpose entity.CodePurpose,
) (*entity.VerificationCode, error) {

	var record entity.VerificationCode
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?) AND purpose = ? AND status = ?", email, purpose, entity.CodeStatusVerified).
		Order("verified_at DESC").
		First(&record).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &record, err
}

func (r *verificationCodeRepository) MarkVerified(
	ctx context.Context,
	id uuid.UUID,
	expectedAttempts int,
	verifiedAt time.Time,
) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.VerificationCode{}).
		Where("id = ? AND status = ? AND attempts = ?", id, entity.CodeStatusPending, expectedAttempts).
		Updates(map[string]any{
			"status":      entity.CodeStatusVerified,
			"attempts":    expectedAttempts + 1,
			"verified_at": &verifiedAt,
		})
	return result.RowsAffected > 0, result.Error
}

func (r *verificationCodeRepository) MarkUsed(ctx context.Context, id uuid.UUID, usedAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.VerificationCode{}).
		Where("id = ? AND status = ?", id, entity.CodeStatusVerified).
		Updates(map[string]any{
			"status":  entity.CodeStatusUsed,
			"used_at": &usedAt,
		})
	return result.RowsAffected > 0, result.Error
}

func (r *verificationCodeRepository) CountByPurpose(ctx context.Context, purpose entity.CodePurpose) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.VerificationCode{}).
		Where("purpose = ?", purpose).
		Count(&count).Error
	return count, err
}

func (r *verificationCodeRepository) CountByPurposeSince(
	ctx context.Context,
	purpose entity.CodePurpose,
	since time.Time,
) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.VerificationCode{}).
		Where("purpose = ? AND created_at >= ?", purpose, since).
		Count(&count).Error
	return count, err
}

func (r *verificationCodeRepository) Locked(
	ctx context.Context,
	email string,
	fn func(repo VerificationCodeRepository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", strings.ToLower(email)).Error; err != nil {
			return err
		}
		return fn(&verificationCodeRepository{db: tx})
	})
}
