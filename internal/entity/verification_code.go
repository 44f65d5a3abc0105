package entity

import (
	"time"

	"github.com/google/uuid"
)

type CodePurpose string

const (
	PurposePasswordReset CodePurpose = "password_reset"
)

type CodeStatus string

const (
	CodeStatusPending  CodeStatus = "pending"
	CodeStatusVerified CodeStatus = "verified"
	CodeStatusUsed     CodeStatus = "used"
)

// VerificationCode is a single-use emailed code. Status only ever moves
// forward: pending -> verified -> used. Rows are kept after use for audit
// and rolling-window rate counting.
type VerificationCode struct {
	ID      uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email   string      `gorm:"type:varchar(255);not null;index"`
	Code    string      `gorm:"type:varchar(32);not null;index"`
	Purpose CodePurpose `gorm:"type:varchar(32);not null;index"`
	Status  CodeStatus  `gorm:"type:varchar(16);not null;default:'pending'"`

	Attempts    int `gorm:"not null;default:0"`
	MaxAttempts int `gorm:"not null;default:3"`

	// Weak reference; nil when the user was resolved only through the
	// identity provider listing.
	UserProfileID *uuid.UUID `gorm:"type:uuid"`

	ExpiresAt  time.Time `gorm:"not null"`
	VerifiedAt *time.Time
	UsedAt     *time.Time

	CreatedAt time.Time `gorm:"index"`
}
