package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type RecoveryAction string

const (
	CodeIssued       RecoveryAction = "code_issued"
	CodeVerified     RecoveryAction = "code_verified"
	PasswordReset    RecoveryAction = "password_reset"
	IssueRateLimited RecoveryAction = "issue_rate_limited"
)

type RecoveryLog struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	Email         string     `gorm:"type:varchar(255);index"`
	UserProfileID *uuid.UUID `gorm:"type:uuid;index"`

	Action RecoveryAction `gorm:"type:varchar(32);not null"`

	Metadata datatypes.JSON

	CreatedAt time.Time
}
