package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Connection is stored as a directed pair but treated as mutual everywhere:
// readers must query both directions. At most one row exists per ordered pair.
type Connection struct {
	UserID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	ConnectedUserID uuid.UUID `gorm:"type:uuid;primaryKey" json:"connected_user_id"`
	Strength        int       `gorm:"column:connection_strength;default:1" json:"connection_strength"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`

	User          User `gorm:"foreignKey:UserID" json:"-"`
	ConnectedUser User `gorm:"foreignKey:ConnectedUserID" json:"-"`
}

type IntroductionStatus string

const (
	IntroductionPending  IntroductionStatus = "pending"
	IntroductionAccepted IntroductionStatus = "accepted"
	IntroductionRejected IntroductionStatus = "rejected"
)

func (s IntroductionStatus) IsValid() bool {
	switch s {
	case IntroductionPending, IntroductionAccepted, IntroductionRejected:
		return true
	}
	return false
}

// Introduction records one user introducing another to a target user.
type Introduction struct {
	ID               uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	IntroducerID     uuid.UUID          `gorm:"type:uuid;index;not null" json:"introducer_id"`
	IntroducedUserID uuid.UUID          `gorm:"type:uuid;index;not null" json:"introduced_user_id"`
	TargetUserID     uuid.UUID          `gorm:"type:uuid;index;not null" json:"target_user_id"`
	Message          *string            `gorm:"type:text" json:"message,omitempty"`
	Status           IntroductionStatus `gorm:"size:20;default:pending" json:"status"`
	CreatedAt        time.Time          `gorm:"autoCreateTime" json:"created_at"`

	Introducer     User `gorm:"foreignKey:IntroducerID" json:"-"`
	IntroducedUser User `gorm:"foreignKey:IntroducedUserID" json:"-"`
	TargetUser     User `gorm:"foreignKey:TargetUserID" json:"-"`
}

func (i *Introduction) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
