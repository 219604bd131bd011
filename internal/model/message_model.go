package model

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	Id            uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Content       string       `gorm:"type:text;not null"`
	Role          string       `gorm:"type:varchar(50);not null;index"`
	UserId        uuid.UUID    `gorm:"type:uuid;not null;index"`
	User          *User        `gorm:"constraint:OnDelete:CASCADE"`
	ChatSessionId uuid.UUID    `gorm:"type:uuid;not null;index"`
	ChatSession   *ChatSession `gorm:"constraint:OnDelete:CASCADE"`
	FileId        *uuid.UUID   `gorm:"type:uuid;index"`
	File          *File        `gorm:"constraint:OnDelete:SET NULL"`
	CreatedAt     time.Time    `gorm:"autoCreateTime;index"`
}

func (Message) TableName() string {
	return "messages"
}
