package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserActivity marks that a user performed a qualifying activity on a
// calendar date. One row per (user, date); rows are append-only and streaks
// are derived by walking them newest-first.
type UserActivity struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index:idx_activity_user_date,unique,priority:1;not null" json:"user_id"`
	Date   time.Time `gorm:"type:date;index:idx_activity_user_date,unique,priority:2;not null" json:"date"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// UserPointLog is the append-only point ledger. Totals are derived by
// summing rows on demand; no aggregate table is maintained.
type UserPointLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;index:idx_points_user_date,priority:1;not null" json:"user_id"`
	ActionType string    `gorm:"size:50;not null" json:"action_type"`
	Points     int       `gorm:"not null" json:"points"`
	Date       time.Time `gorm:"type:date;index:idx_points_user_date,priority:2;not null" json:"date"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
