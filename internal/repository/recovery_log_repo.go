package repository

import (
	"context"

	"smcbi/internal/entity"

	"gorm.io/gorm"
)

type RecoveryLogRepository interface {
	Log(ctx context.Context, log *entity.RecoveryLog) error
}

type recoveryLogRepository struct {
	db *gorm.DB
}

func NewRecoveryLogRepository(db *gorm.DB) RecoveryLogRepository {
	return &recoveryLogRepository{db: db}
}

func (r *recoveryLogRepository) Log(ctx context.Context, log *entity.RecoveryLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}
