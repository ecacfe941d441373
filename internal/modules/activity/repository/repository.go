package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weavr-net/weavr-server/internal/entity"
)

type ActivityRepository interface {
	CreateActivity(ctx context.Context, activity *entity.UserActivity) error
	HasActivityOn(ctx context.Context, userID uuid.UUID, date time.Time) (bool, error)
	ActivityDates(ctx context.Context, userID uuid.UUID) ([]time.Time, error)

	CreatePointLog(ctx context.Context, log *entity.UserPointLog) error
	SumPoints(ctx context.Context, userID uuid.UUID) (int64, error)
	PointLogs(ctx context.Context, userID uuid.UUID) ([]*entity.UserPointLog, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) CreateActivity(ctx context.Context, activity *entity.UserActivity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *activityRepository) HasActivityOn(ctx context.Context, userID uuid.UUID, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.UserActivity{}).
		Where("user_id = ? AND date = ?", userID, date).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ActivityDates returns the user's activity dates newest-first.
func (r *activityRepository) ActivityDates(ctx context.Context, userID uuid.UUID) ([]time.Time, error) {
	var dates []time.Time
	if err := r.db.WithContext(ctx).
		Model(&entity.UserActivity{}).
		Where("user_id = ?", userID).
		Order("date DESC").
		Pluck("date", &dates).Error; err != nil {
		return nil, err
	}
	return dates, nil
}

func (r *activityRepository) CreatePointLog(ctx context.Context, log *entity.UserPointLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *activityRepository) SumPoints(ctx context.Context, userID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&entity.UserPointLog{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total).Error
	return total, err
}

func (r *activityRepository) PointLogs(ctx context.Context, userID uuid.UUID) ([]*entity.UserPointLog, error) {
	var logs []*entity.UserPointLog
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
