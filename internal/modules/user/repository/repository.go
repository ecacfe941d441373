package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weavr-net/weavr-server/internal/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindAll(ctx context.Context, page, limit int) ([]*entity.User, int64, error)
	FindByPassionName(ctx context.Context, passionName string) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error

	FindPassionByName(ctx context.Context, name string) (*entity.Passion, error)
	CreatePassion(ctx context.Context, passion *entity.Passion) error
	AttachPassion(ctx context.Context, user *entity.User, passion *entity.Passion) error
	DetachPassion(ctx context.Context, user *entity.User, passion *entity.Passion) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).
		Preload("Passions").
		Preload("Goals").
		First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAll(ctx context.Context, page, limit int) ([]*entity.User, int64, error) {
	var users []*entity.User
	var total int64

	if err := r.db.WithContext(ctx).Model(&entity.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Preload("Passions").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepository) FindByPassionName(ctx context.Context, passionName string) ([]*entity.User, error) {
	var users []*entity.User
	if err := r.db.WithContext(ctx).
		Joins("JOIN user_passions up ON up.user_id = users.id").
		Joins("JOIN passions p ON p.id = up.passion_id").
		Where("p.name ILIKE ?", passionName).
		Preload("Passions").
		Order("users.id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.User{}, "id = ?", id).Error
}

func (r *userRepository) FindPassionByName(ctx context.Context, name string) (*entity.Passion, error) {
	var passion entity.Passion
	if err := r.db.WithContext(ctx).Where("name ILIKE ?", name).First(&passion).Error; err != nil {
		return nil, err
	}
	return &passion, nil
}

func (r *userRepository) CreatePassion(ctx context.Context, passion *entity.Passion) error {
	return r.db.WithContext(ctx).Create(passion).Error
}

func (r *userRepository) AttachPassion(ctx context.Context, user *entity.User, passion *entity.Passion) error {
	return r.db.WithContext(ctx).Model(user).Association("Passions").Append(passion)
}

func (r *userRepository) DetachPassion(ctx context.Context, user *entity.User, passion *entity.Passion) error {
	return r.db.WithContext(ctx).Model(user).Association("Passions").Delete(passion)
}
