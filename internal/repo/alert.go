package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/soltrack/candle-sentry/internal/entity"
)

type AlertRepo interface {
	Create(ctx context.Context, alert entity.Alert) (int64, error)
	FindSince(ctx context.Context, since time.Time) ([]entity.Alert, error)
}

type alertRepo struct {
	db *gorm.DB
}

func NewAlertRepo(db *gorm.DB) AlertRepo {
	return &alertRepo{
		db: db,
	}
}

func (r *alertRepo) Create(ctx context.Context, alert entity.Alert) (int64, error) {
	err := r.db.WithContext(ctx).Create(&alert).Error
	if err != nil {
		return 0, err
	}
	return alert.Id, nil
}

func (r *alertRepo) FindSince(ctx context.Context, since time.Time) ([]entity.Alert, error) {
	var alerts []entity.Alert
	err := r.db.WithContext(ctx).
		Where("candle_closed_at >= ?", since).
		Order("candle_closed_at").
		Find(&alerts).Error
	if err != nil {
		return nil, err
	}
	return alerts, nil
}
