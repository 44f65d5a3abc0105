package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile is the primary profile row for a school account. The
// credential itself lives in the external identity provider; IdentityID
// links the two.
type UserProfile struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	IdentityID string    `gorm:"type:uuid;uniqueIndex;not null"`
	Email      string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	FirstName  string    `gorm:"type:varchar(120)"`
	LastName   string    `gorm:"type:varchar(120)"`

	IsActive bool `gorm:"default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
