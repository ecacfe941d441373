package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email             string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash      string    `gorm:"size:255;not null" json:"-"`
	FirstName         string    `gorm:"size:100;not null" json:"first_name"`
	LastName          string    `gorm:"size:100;not null" json:"last_name"`
	Location          *string   `gorm:"size:100" json:"location,omitempty"`
	Headline          *string   `gorm:"size:150" json:"headline,omitempty"`
	Bio               *string   `gorm:"type:text" json:"bio,omitempty"`
	ProfilePictureURL *string   `gorm:"type:text" json:"profile_picture_url,omitempty"`
	IsActive          bool      `gorm:"default:true" json:"is_active"`
	IsSuperuser       bool      `gorm:"default:false" json:"-"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Passions []Passion `gorm:"many2many:user_passions" json:"passions,omitempty"`
	Goals    []Goal    `gorm:"foreignKey:UserID" json:"goals,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Passion is a named interest tag, shared across users (many-to-many).
type Passion struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`

	Users []User `gorm:"many2many:user_passions" json:"-"`
}

type GoalType string

const (
	GoalTypeCareer        GoalType = "career"
	GoalTypeMentorship    GoalType = "mentorship"
	GoalTypeCollaboration GoalType = "collaboration"
	GoalTypeOther         GoalType = "other"
)

func (t GoalType) IsValid() bool {
	switch t {
	case GoalTypeCareer, GoalTypeMentorship, GoalTypeCollaboration, GoalTypeOther:
		return true
	}
	return false
}

type Goal struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Description string    `gorm:"type:text;not null" json:"description"`
	GoalType    GoalType  `gorm:"size:20;default:other" json:"goal_type"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
