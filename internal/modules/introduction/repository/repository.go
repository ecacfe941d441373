package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weavr-net/weavr-server/internal/entity"
)

type IntroductionRepository interface {
	Create(ctx context.Context, intro *entity.Introduction) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Introduction, error)
	FindByIntroducer(ctx context.Context, introducerID uuid.UUID, status entity.IntroductionStatus) ([]*entity.Introduction, error)
	FindReceived(ctx context.Context, userID uuid.UUID, status entity.IntroductionStatus) ([]*entity.Introduction, error)
	CountAcceptedByIntroducer(ctx context.Context, introducerID uuid.UUID) (int64, error)
	Update(ctx context.Context, intro *entity.Introduction) error
}

type introductionRepository struct {
	db *gorm.DB
}

func NewIntroductionRepository(db *gorm.DB) IntroductionRepository {
	return &introductionRepository{db: db}
}

func (r *introductionRepository) Create(ctx context.Context, intro *entity.Introduction) error {
	return r.db.WithContext(ctx).Create(intro).Error
}

func (r *introductionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Introduction, error) {
	var intro entity.Introduction
	if err := r.db.WithContext(ctx).First(&intro, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &intro, nil
}

func (r *introductionRepository) FindByIntroducer(ctx context.Context, introducerID uuid.UUID, status entity.IntroductionStatus) ([]*entity.Introduction, error) {
	query := r.db.WithContext(ctx).Where("introducer_id = ?", introducerID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var intros []*entity.Introduction
	if err := query.Order("created_at DESC").Find(&intros).Error; err != nil {
		return nil, err
	}
	return intros, nil
}

func (r *introductionRepository) FindReceived(ctx context.Context, userID uuid.UUID, status entity.IntroductionStatus) ([]*entity.Introduction, error) {
	query := r.db.WithContext(ctx).
		Where("introduced_user_id = ? OR target_user_id = ?", userID, userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var intros []*entity.Introduction
	if err := query.Order("created_at DESC").Find(&intros).Error; err != nil {
		return nil, err
	}
	return intros, nil
}

func (r *introductionRepository) CountAcceptedByIntroducer(ctx context.Context, introducerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Introduction{}).
		Where("introducer_id = ? AND status = ?", introducerID, entity.IntroductionAccepted).
		Count(&count).Error
	return count, err
}

func (r *introductionRepository) Update(ctx context.Context, intro *entity.Introduction) error {
	return r.db.WithContext(ctx).Save(intro).Error
}
