package model

import (
	"time"

	"github.com/google/uuid"
)

type Survey struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE"`
	Rating    int       `gorm:"not null"`
	Feedback  string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (Survey) TableName() string {
	return "surveys"
}
