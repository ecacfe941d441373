package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weavr-net/weavr-server/internal/entity"
)

type LeaderboardRepository interface {
	Create(ctx context.Context, board *entity.Leaderboard) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Leaderboard, error)
	FindAll(ctx context.Context) ([]*entity.Leaderboard, error)
	Delete(ctx context.Context, id uuid.UUID) error

	CreateEntry(ctx context.Context, entry *entity.LeaderboardEntry) error
	FindEntry(ctx context.Context, leaderboardID, userID uuid.UUID) (*entity.LeaderboardEntry, error)
	FindEntries(ctx context.Context, leaderboardID uuid.UUID) ([]*entity.LeaderboardEntry, error)
	UpdateEntries(ctx context.Context, entries []*entity.LeaderboardEntry) error
}

type leaderboardRepository struct {
	db *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

func (r *leaderboardRepository) Create(ctx context.Context, board *entity.Leaderboard) error {
	return r.db.WithContext(ctx).Create(board).Error
}

func (r *leaderboardRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Leaderboard, error) {
	var board entity.Leaderboard
	if err := r.db.WithContext(ctx).First(&board, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

func (r *leaderboardRepository) FindAll(ctx context.Context) ([]*entity.Leaderboard, error) {
	var boards []*entity.Leaderboard
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

func (r *leaderboardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Leaderboard{}, "id = ?", id).Error
}

func (r *leaderboardRepository) CreateEntry(ctx context.Context, entry *entity.LeaderboardEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *leaderboardRepository) FindEntry(ctx context.Context, leaderboardID, userID uuid.UUID) (*entity.LeaderboardEntry, error) {
	var entry entity.LeaderboardEntry
	if err := r.db.WithContext(ctx).
		Where("leaderboard_id = ? AND user_id = ?", leaderboardID, userID).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindEntries returns entries in insertion order so recompute input is
// deterministic before sorting.
func (r *leaderboardRepository) FindEntries(ctx context.Context, leaderboardID uuid.UUID) ([]*entity.LeaderboardEntry, error) {
	var entries []*entity.LeaderboardEntry
	if err := r.db.WithContext(ctx).
		Where("leaderboard_id = ?", leaderboardID).
		Order("id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// UpdateEntries persists recomputed scores and ranks atomically: either all
// entries reflect the new standings or none do.
func (r *leaderboardRepository) UpdateEntries(ctx context.Context, entries []*entity.LeaderboardEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, entry := range entries {
			if err := tx.Model(&entity.LeaderboardEntry{}).
				Where("id = ?", entry.ID).
				Updates(map[string]interface{}{
					"score": entry.Score,
					"rank":  entry.Rank,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
