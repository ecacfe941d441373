package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Leaderboard criteria recognized by the recompute engine. Any other value
// is rejected with apperror.ErrUnsupportedCriteria.
const (
	CriteriaWeavrReputation   = "Weavr Reputation"
	CriteriaIntroductionsMade = "Introductions Made"
)

type Leaderboard struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string     `gorm:"size:100;not null" json:"name"`
	Criteria  string     `gorm:"size:100;not null" json:"criteria"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`

	Entries []LeaderboardEntry `gorm:"foreignKey:LeaderboardID;constraint:OnDelete:CASCADE" json:"entries,omitempty"`
}

func (l *Leaderboard) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// LeaderboardEntry holds the recomputed score and 1-based rank for one user
// on one leaderboard. Score and rank are owned by the recompute pass; the
// entry itself is created once per (leaderboard, user) pair and never
// deleted by the engine.
type LeaderboardEntry struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	LeaderboardID uuid.UUID `gorm:"type:uuid;index:idx_board_user,unique,priority:1;not null" json:"leaderboard_id"`
	UserID        uuid.UUID `gorm:"type:uuid;index:idx_board_user,unique,priority:2;not null" json:"user_id"`
	Score         int       `gorm:"default:0" json:"score"`
	Rank          int       `gorm:"default:0" json:"rank"`

	Leaderboard Leaderboard `gorm:"foreignKey:LeaderboardID" json:"-"`
	User        User        `gorm:"foreignKey:UserID" json:"-"`
}
