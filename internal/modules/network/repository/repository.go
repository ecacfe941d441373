package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weavr-net/weavr-server/internal/entity"
)

// GraphRepository is the read surface of the social graph: neighbor sets,
// profile attributes and group memberships used by the analytics engine.
type GraphRepository interface {
	UserExists(ctx context.Context, id uuid.UUID) (bool, error)
	NeighborIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error)
	PassionsOf(ctx context.Context, id uuid.UUID) ([]entity.Passion, error)
	GoalsOf(ctx context.Context, id uuid.UUID) ([]entity.Goal, error)
	GroupIDsOf(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error)
	CandidateUsers(ctx context.Context, excludeID uuid.UUID) ([]*entity.User, error)
}

type graphRepository struct {
	db *gorm.DB
}

func NewGraphRepository(db *gorm.DB) GraphRepository {
	return &graphRepository{db: db}
}

func (r *graphRepository) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *graphRepository) NeighborIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	var conns []entity.Connection
	if err := r.db.WithContext(ctx).
		Where("user_id = ? OR connected_user_id = ?", id, id).
		Find(&conns).Error; err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{}, len(conns))
	ids := make([]uuid.UUID, 0, len(conns))
	for _, conn := range conns {
		other := conn.ConnectedUserID
		if other == id {
			other = conn.UserID
		}
		if _, ok := seen[other]; ok {
			continue
		}
		seen[other] = struct{}{}
		ids = append(ids, other)
	}
	return ids, nil
}

func (r *graphRepository) PassionsOf(ctx context.Context, id uuid.UUID) ([]entity.Passion, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).
		Preload("Passions").
		First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return user.Passions, nil
}

func (r *graphRepository) GoalsOf(ctx context.Context, id uuid.UUID) ([]entity.Goal, error) {
	var goals []entity.Goal
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", id).
		Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *graphRepository) GroupIDsOf(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&entity.GroupMembership{}).
		Where("user_id = ?", id).
		Pluck("group_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *graphRepository) CandidateUsers(ctx context.Context, excludeID uuid.UUID) ([]*entity.User, error) {
	var users []*entity.User
	if err := r.db.WithContext(ctx).
		Preload("Passions").
		Where("id <> ? AND is_active = ?", excludeID, true).
		Order("id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
