package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weavr-net/weavr-server/internal/entity"
)

type GroupRepository interface {
	Create(ctx context.Context, group *entity.Group) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Group, error)
	FindByName(ctx context.Context, name string) (*entity.Group, error)
	FindAll(ctx context.Context) ([]*entity.Group, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AddMember(ctx context.Context, membership *entity.GroupMembership) error
	RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error
	FindMembership(ctx context.Context, groupID, userID uuid.UUID) (*entity.GroupMembership, error)
	FindMembers(ctx context.Context, groupID uuid.UUID) ([]*entity.GroupMembership, error)
	GroupIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type groupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(ctx context.Context, group *entity.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *groupRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Group, error) {
	var group entity.Group
	if err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) FindByName(ctx context.Context, name string) (*entity.Group, error) {
	var group entity.Group
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) FindAll(ctx context.Context) ([]*entity.Group, error) {
	var groups []*entity.Group
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *groupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Group{}, "id = ?", id).Error
}

func (r *groupRepository) AddMember(ctx context.Context, membership *entity.GroupMembership) error {
	return r.db.WithContext(ctx).Create(membership).Error
}

func (r *groupRepository) RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&entity.GroupMembership{}).Error
}

func (r *groupRepository) FindMembership(ctx context.Context, groupID, userID uuid.UUID) (*entity.GroupMembership, error) {
	var membership entity.GroupMembership
	if err := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&membership).Error; err != nil {
		return nil, err
	}
	return &membership, nil
}

func (r *groupRepository) FindMembers(ctx context.Context, groupID uuid.UUID) ([]*entity.GroupMembership, error) {
	var members []*entity.GroupMembership
	if err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("joined_at ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *groupRepository) GroupIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&entity.GroupMembership{}).
		Where("user_id = ?", userID).
		Pluck("group_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
