package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weavr-net/weavr-server/internal/entity"
)

// ConnectionRepository reads connections as mutual: every lookup queries both
// directions of the stored pair.
type ConnectionRepository interface {
	Create(ctx context.Context, conn *entity.Connection) error
	Exists(ctx context.Context, userID, otherID uuid.UUID) (bool, error)
	FindForUser(ctx context.Context, userID uuid.UUID) ([]*entity.Connection, error)
	NeighborIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	CountForUser(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, userID, otherID uuid.UUID) error
}

type connectionRepository struct {
	db *gorm.DB
}

func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &connectionRepository{db: db}
}

func (r *connectionRepository) Create(ctx context.Context, conn *entity.Connection) error {
	return r.db.WithContext(ctx).Create(conn).Error
}

func (r *connectionRepository) Exists(ctx context.Context, userID, otherID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Connection{}).
		Where("(user_id = ? AND connected_user_id = ?) OR (user_id = ? AND connected_user_id = ?)",
			userID, otherID, otherID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *connectionRepository) FindForUser(ctx context.Context, userID uuid.UUID) ([]*entity.Connection, error) {
	var conns []*entity.Connection
	if err := r.db.WithContext(ctx).
		Where("user_id = ? OR connected_user_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&conns).Error; err != nil {
		return nil, err
	}
	return conns, nil
}

func (r *connectionRepository) NeighborIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	conns, err := r.FindForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{}, len(conns))
	ids := make([]uuid.UUID, 0, len(conns))
	for _, conn := range conns {
		other := conn.ConnectedUserID
		if other == userID {
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

func (r *connectionRepository) CountForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Connection{}).
		Where("user_id = ? OR connected_user_id = ?", userID, userID).
		Count(&count).Error
	return count, err
}

func (r *connectionRepository) Delete(ctx context.Context, userID, otherID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("(user_id = ? AND connected_user_id = ?) OR (user_id = ? AND connected_user_id = ?)",
			userID, otherID, otherID, userID).
		Delete(&entity.Connection{}).Error
}
