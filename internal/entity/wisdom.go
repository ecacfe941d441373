package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WisdomCategory string

const (
	WisdomNetworking WisdomCategory = "networking"
	WisdomCareer     WisdomCategory = "career"
	WisdomCommunity  WisdomCategory = "community"
	WisdomOther      WisdomCategory = "other"
)

func (c WisdomCategory) IsValid() bool {
	switch c {
	case WisdomNetworking, WisdomCareer, WisdomCommunity, WisdomOther:
		return true
	}
	return false
}

// WeavrWisdom is a knowledge-base article. Articles are mirrored into the
// Meilisearch index for client-side search; the database row is the source
// of truth.
type WeavrWisdom struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string         `gorm:"size:200;not null" json:"title"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	Category  WisdomCategory `gorm:"size:20;default:other" json:"category"`
	AuthorID  uuid.UUID      `gorm:"type:uuid;index" json:"author_id"`
	UpVotes   int            `gorm:"default:0" json:"up_votes"`
	DownVotes int            `gorm:"default:0" json:"down_votes"`
	Tags      *string        `gorm:"size:255" json:"tags,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	Author User `gorm:"foreignKey:AuthorID" json:"-"`
}

func (w *WeavrWisdom) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
