package model

import (
	"time"

	"github.com/google/uuid"
)

type File struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID `gorm:"type:uuid;not null;index"`
	User       *User     `gorm:"constraint:OnDelete:CASCADE"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Type       string    `gorm:"type:varchar(255);not null"`
	Size       int64     `gorm:"not null"`
	URL        string    `gorm:"type:text;not null"`
	StorageKey string    `gorm:"type:text;not null"`
	Status     string    `gorm:"type:varchar(50);not null;default:'uploading';index"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (File) TableName() string {
	return "files"
}
