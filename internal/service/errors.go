package service

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrUserNotFound          = errors.New("user not found")
	ErrCodeNotFound          = errors.New("verification code not found")
	ErrRateLimited           = errors.New("maximum number of verification codes reached, try again later")
	ErrCodeExpired           = errors.New("verification code expired")
	ErrAttemptsExceeded      = errors.New("maximum verification attempts exceeded")
	ErrNotConfigured         = errors.New("recovery service not configured")
	ErrDependencyUnavailable = errors.New("upstream dependency unavailable")
)
