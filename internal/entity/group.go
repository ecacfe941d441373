package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GroupPrivacy string

const (
	GroupPublic  GroupPrivacy = "public"
	GroupPrivate GroupPrivacy = "private"
)

type GroupMemberRole string

const (
	GroupRoleMember    GroupMemberRole = "member"
	GroupRoleAdmin     GroupMemberRole = "admin"
	GroupRoleModerator GroupMemberRole = "moderator"
)

func (r GroupMemberRole) IsValid() bool {
	switch r {
	case GroupRoleMember, GroupRoleAdmin, GroupRoleModerator:
		return true
	}
	return false
}

type Group struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string       `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description *string      `gorm:"type:text" json:"description,omitempty"`
	Privacy     GroupPrivacy `gorm:"size:10;default:public" json:"privacy"`
	CreatedAt   time.Time    `gorm:"autoCreateTime" json:"created_at"`

	Members []GroupMembership `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
}

func (g *Group) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

type GroupMembership struct {
	UserID   uuid.UUID       `gorm:"type:uuid;primaryKey" json:"user_id"`
	GroupID  uuid.UUID       `gorm:"type:uuid;primaryKey" json:"group_id"`
	Role     GroupMemberRole `gorm:"size:20;default:member" json:"role"`
	JoinedAt time.Time       `gorm:"autoCreateTime" json:"joined_at"`

	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Group Group `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"-"`
}
