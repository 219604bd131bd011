package entity

import (
	"time"

	"github.com/google/uuid"
)

type File struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	Name       string
	Type       string
	Size       int64
	URL        string
	StorageKey string
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
