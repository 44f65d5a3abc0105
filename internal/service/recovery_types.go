package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type RecoveryConfig struct {
	CodePrefix        string
	CodeDigits        int
	CodeTTL           time.Duration
	ResetWindow       time.Duration
	MaxAttempts       int
	MaxIssuePerWindow int
	IssueWindow       time.Duration
	MinPasswordLen    int
	MonthlyQuota      int64
}

// EmailSender delivers the recovery code and returns the provider's
// message id when it exposes one.
type EmailSender interface {
	SendRecoveryCode(ctx context.Context, email string, displayName string, code string) (string, error)
}

// IdentityProvider is the external system that owns credentials.
type IdentityProvider interface {
	ListUsers(ctx context.Context) ([]IdentityUser, error)
	UpdatePassword(ctx context.Context, identityID string, newPassword string) error
}

type IdentityUser struct {
	ID       string           `json:"id"`
	Email    string           `json:"email"`
	Metadata IdentityMetadata `json:"user_metadata"`
}

type IdentityMetadata struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UserResolver maps an email address to an account, trying the profile
// store first and the identity provider listing as fallback.
type UserResolver interface {
	Resolve(ctx context.Context, email string) (*ResolvedUser, error)
}

type ResolveSource string

const (
	ResolvedFromProfile  ResolveSource = "profile"
	ResolvedFromIdentity ResolveSource = "identity"
)

type ResolvedUser struct {
	IdentityID string
	ProfileID  *uuid.UUID
	Email      string
	FirstName  string
	LastName   string
	Source     ResolveSource
}

func (u *ResolvedUser) DisplayName() string {
	if u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.FirstName
}

type CodeGenerator interface {
	Generate() (string, error)
}

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}
