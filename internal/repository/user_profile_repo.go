package repository

import (
	"context"
	"errors"

	"smcbi/internal/entity"

	"gorm.io/gorm"
)

type UserProfileRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.UserProfile, error)
}

type userProfileRepository struct {
	db *gorm.DB
}

func NewUserProfileRepository(db *gorm.DB) UserProfileRepository {
	return &userProfileRepository{db: db}
}

func (r *userProfileRepository) FindByEmail(ctx context.Context, email string) (*entity.UserProfile, error) {
	var profile entity.UserProfile
	err := r.db.WithContext(ctx).
		Where("email = ? AND is_active = true", email).
		First(&profile).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &profile, err
}
