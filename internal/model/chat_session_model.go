package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"` // User ownership for data isolation
	User      *User     `gorm:"constraint:OnDelete:CASCADE"`
	Title     string    `gorm:"type:text;not null;default:'New Chat'"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;index"` // recency cursor for listing
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
