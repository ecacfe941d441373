package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weavr-net/weavr-server/internal/entity"
)

type WisdomRepository interface {
	Create(ctx context.Context, wisdom *entity.WeavrWisdom) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.WeavrWisdom, error)
	FindAll(ctx context.Context, category, search string) ([]*entity.WeavrWisdom, error)
	Update(ctx context.Context, wisdom *entity.WeavrWisdom) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type wisdomRepository struct {
	db *gorm.DB
}

func NewWisdomRepository(db *gorm.DB) WisdomRepository {
	return &wisdomRepository{db: db}
}

func (r *wisdomRepository) Create(ctx context.Context, wisdom *entity.WeavrWisdom) error {
	return r.db.WithContext(ctx).Create(wisdom).Error
}

func (r *wisdomRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.WeavrWisdom, error) {
	var wisdom entity.WeavrWisdom
	if err := r.db.WithContext(ctx).First(&wisdom, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &wisdom, nil
}

func (r *wisdomRepository) FindAll(ctx context.Context, category, search string) ([]*entity.WeavrWisdom, error) {
	query := r.db.WithContext(ctx)

	if category != "" {
		query = query.Where("category = ?", category)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
	}

	var articles []*entity.WeavrWisdom
	if err := query.Order("created_at DESC").Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *wisdomRepository) Update(ctx context.Context, wisdom *entity.WeavrWisdom) error {
	return r.db.WithContext(ctx).Save(wisdom).Error
}

func (r *wisdomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.WeavrWisdom{}, "id = ?", id).Error
}
